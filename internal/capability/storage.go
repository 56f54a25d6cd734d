package capability

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const storageSchemaVersion = 1

const storageSchemaV1 = `
CREATE TABLE IF NOT EXISTS schema_meta (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS contracts (
	id           TEXT PRIMARY KEY,
	title        TEXT NOT NULL,
	counterparty TEXT NOT NULL DEFAULT '',
	status       TEXT NOT NULL DEFAULT 'draft',
	document     TEXT NOT NULL DEFAULT '',
	created_at   TEXT NOT NULL DEFAULT (datetime('now')),
	updated_at   TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS attachments (
	id          TEXT PRIMARY KEY,
	contract_id TEXT NOT NULL REFERENCES contracts(id) ON DELETE CASCADE,
	file_name   TEXT NOT NULL,
	created_at  TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS backups (
	id         TEXT PRIMARY KEY,
	file_name  TEXT NOT NULL,
	byte_count INTEGER NOT NULL DEFAULT 0,
	created_at TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_contracts_updated ON contracts(updated_at);
CREATE INDEX IF NOT EXISTS idx_attachments_contract ON attachments(contract_id);
`

// ErrStorageClosed is returned when an operation runs before Open or
// after Close.
var ErrStorageClosed = errors.New("storage is not open")

// Contract is a sale contract record.
type Contract struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Counterparty string `json:"counterparty"`
	Status       string `json:"status"`
	Document     string `json:"document"`
	CreatedAt    string `json:"createdAt"`
	UpdatedAt    string `json:"updatedAt"`
}

// Attachment links a stored file to a contract.
type Attachment struct {
	ID         string `json:"id"`
	ContractID string `json:"contractId"`
	FileName   string `json:"fileName"`
	CreatedAt  string `json:"createdAt"`
}

// BackupRecord logs one backup written to the backups subdirectory.
type BackupRecord struct {
	ID        string `json:"id"`
	FileName  string `json:"fileName"`
	ByteCount int64  `json:"byteCount"`
	CreatedAt string `json:"createdAt"`
}

// StorageService is the persistent SQL storage capability. It owns the
// SQLite database under the data root. Open runs during bootstrap and a
// failure there is fatal to startup.
type StorageService struct {
	mu sync.Mutex
	db *sql.DB
}

// NewStorageService creates an unopened storage service.
func NewStorageService() *StorageService {
	return &StorageService{}
}

// Open opens (or creates) the SQLite database at path and ensures the
// schema is at the current version. Opening twice is an error.
func (s *StorageService) Open(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db != nil {
		return fmt.Errorf("storage already open")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	// PRAGMAs apply per connection; keep the pool at one so every
	// statement sees them.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return fmt.Errorf("enable foreign keys: %w", err)
	}
	if err := ensureSchema(db); err != nil {
		_ = db.Close()
		return fmt.Errorf("ensure schema: %w", err)
	}

	s.db = db
	return nil
}

// Close closes the database. Closing an unopened service is a no-op.
func (s *StorageService) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *StorageService) handle() (*sql.DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil, ErrStorageClosed
	}
	return s.db, nil
}

func ensureSchema(db *sql.DB) error {
	if _, err := db.Exec(storageSchemaV1); err != nil {
		return err
	}

	var version int
	err := db.QueryRow("SELECT version FROM schema_meta LIMIT 1").Scan(&version)
	switch {
	case err == sql.ErrNoRows:
		_, err = db.Exec("INSERT INTO schema_meta (version) VALUES (?)", storageSchemaVersion)
		return err
	case err != nil:
		return err
	case version > storageSchemaVersion:
		return fmt.Errorf("database schema version %d is newer than supported %d", version, storageSchemaVersion)
	default:
		return nil
	}
}

const nowFormat = "2006-01-02 15:04:05"

// SaveContract inserts a new contract or updates an existing one. A
// contract with an empty ID gets a fresh one. Returns the stored record.
func (s *StorageService) SaveContract(c Contract) (Contract, error) {
	db, err := s.handle()
	if err != nil {
		return Contract{}, err
	}
	if c.Title == "" {
		return Contract{}, fmt.Errorf("contract title is required")
	}
	if c.Status == "" {
		c.Status = "draft"
	}
	now := time.Now().UTC().Format(nowFormat)
	if c.ID == "" {
		c.ID = uuid.NewString()
		c.CreatedAt = now
	}
	c.UpdatedAt = now

	_, err = db.Exec(`
		INSERT INTO contracts (id, title, counterparty, status, document, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			counterparty = excluded.counterparty,
			status = excluded.status,
			document = excluded.document,
			updated_at = excluded.updated_at`,
		c.ID, c.Title, c.Counterparty, c.Status, c.Document, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return Contract{}, fmt.Errorf("save contract: %w", err)
	}
	return s.GetContract(c.ID)
}

// GetContract returns one contract by ID.
func (s *StorageService) GetContract(id string) (Contract, error) {
	db, err := s.handle()
	if err != nil {
		return Contract{}, err
	}
	var c Contract
	err = db.QueryRow(`
		SELECT id, title, counterparty, status, document, created_at, updated_at
		FROM contracts WHERE id = ?`, id).
		Scan(&c.ID, &c.Title, &c.Counterparty, &c.Status, &c.Document, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return Contract{}, fmt.Errorf("contract %s not found", id)
	}
	if err != nil {
		return Contract{}, fmt.Errorf("get contract: %w", err)
	}
	return c, nil
}

// ListContracts returns all contracts, most recently updated first.
func (s *StorageService) ListContracts() ([]Contract, error) {
	db, err := s.handle()
	if err != nil {
		return nil, err
	}
	rows, err := db.Query(`
		SELECT id, title, counterparty, status, document, created_at, updated_at
		FROM contracts ORDER BY updated_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list contracts: %w", err)
	}
	defer rows.Close()

	var contracts []Contract
	for rows.Next() {
		var c Contract
		if err := rows.Scan(&c.ID, &c.Title, &c.Counterparty, &c.Status, &c.Document, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan contract: %w", err)
		}
		contracts = append(contracts, c)
	}
	return contracts, rows.Err()
}

// DeleteContract removes a contract and its attachment records.
func (s *StorageService) DeleteContract(id string) error {
	db, err := s.handle()
	if err != nil {
		return err
	}
	if _, err := db.Exec("DELETE FROM contracts WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete contract: %w", err)
	}
	return nil
}

// AddAttachment records a stored file against a contract.
func (s *StorageService) AddAttachment(contractID, fileName string) (Attachment, error) {
	db, err := s.handle()
	if err != nil {
		return Attachment{}, err
	}
	a := Attachment{
		ID:         uuid.NewString(),
		ContractID: contractID,
		FileName:   fileName,
		CreatedAt:  time.Now().UTC().Format(nowFormat),
	}
	_, err = db.Exec(`
		INSERT INTO attachments (id, contract_id, file_name, created_at)
		VALUES (?, ?, ?, ?)`,
		a.ID, a.ContractID, a.FileName, a.CreatedAt)
	if err != nil {
		return Attachment{}, fmt.Errorf("add attachment: %w", err)
	}
	return a, nil
}

// ListAttachments returns the attachment records for a contract.
func (s *StorageService) ListAttachments(contractID string) ([]Attachment, error) {
	db, err := s.handle()
	if err != nil {
		return nil, err
	}
	rows, err := db.Query(`
		SELECT id, contract_id, file_name, created_at
		FROM attachments WHERE contract_id = ? ORDER BY created_at, id`, contractID)
	if err != nil {
		return nil, fmt.Errorf("list attachments: %w", err)
	}
	defer rows.Close()

	var attachments []Attachment
	for rows.Next() {
		var a Attachment
		if err := rows.Scan(&a.ID, &a.ContractID, &a.FileName, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan attachment: %w", err)
		}
		attachments = append(attachments, a)
	}
	return attachments, rows.Err()
}

// RecordBackup logs a backup file written to the backups subdirectory.
func (s *StorageService) RecordBackup(fileName string, byteCount int64) (BackupRecord, error) {
	db, err := s.handle()
	if err != nil {
		return BackupRecord{}, err
	}
	b := BackupRecord{
		ID:        uuid.NewString(),
		FileName:  fileName,
		ByteCount: byteCount,
		CreatedAt: time.Now().UTC().Format(nowFormat),
	}
	_, err = db.Exec(`
		INSERT INTO backups (id, file_name, byte_count, created_at)
		VALUES (?, ?, ?, ?)`,
		b.ID, b.FileName, b.ByteCount, b.CreatedAt)
	if err != nil {
		return BackupRecord{}, fmt.Errorf("record backup: %w", err)
	}
	return b, nil
}

// ListBackups returns backup records, newest first.
func (s *StorageService) ListBackups() ([]BackupRecord, error) {
	db, err := s.handle()
	if err != nil {
		return nil, err
	}
	rows, err := db.Query(`
		SELECT id, file_name, byte_count, created_at
		FROM backups ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list backups: %w", err)
	}
	defer rows.Close()

	var backups []BackupRecord
	for rows.Next() {
		var b BackupRecord
		if err := rows.Scan(&b.ID, &b.FileName, &b.ByteCount, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan backup: %w", err)
		}
		backups = append(backups, b)
	}
	return backups, rows.Err()
}
