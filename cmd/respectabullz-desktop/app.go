package main

import (
	"context"
	"log"
	"sync/atomic"

	"github.com/LeftHandVoodoo/Respectabullz/internal/appdata"
	"github.com/LeftHandVoodoo/Respectabullz/internal/capability"
)

// Version is set at build time via ldflags.
var Version = "0.1.0-dev"

// App struct holds the application state.
type App struct {
	ctx      context.Context
	registry *capability.Registry
	settings *SettingsManager // set during bootstrap, once the root is known
	root     string
	phase    atomic.Int32
}

// NewApp creates a new App application struct. The capability registry
// is assembled here, before the serving loop; the root-dependent modules
// are wired during startup.
func NewApp() *App {
	return &App{
		registry: capability.Build(),
	}
}

func (a *App) setPhase(p Phase) { a.phase.Store(int32(p)) }

// Phase returns the current startup phase.
func (a *App) Phase() Phase { return Phase(a.phase.Load()) }

// startup is called when the app starts. A bootstrap failure here is
// unrecoverable: without a data root nothing downstream can function.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
	if err := a.bootstrap(); err != nil {
		log.Fatalf("startup: %v", err)
	}
}

// shutdown is called when the app is closing.
func (a *App) shutdown(ctx context.Context) {
	if err := a.registry.Storage.Close(); err != nil {
		log.Printf("warning: close storage: %v", err)
	}
}

// GetVersion returns the application version.
func (a *App) GetVersion() string {
	return Version
}

// GetDataRoot returns the application data root.
func (a *App) GetDataRoot() string {
	return a.root
}

// IsReady reports whether bootstrap completed.
func (a *App) IsReady() bool {
	return a.Phase() == PhaseReady
}

// SelectContractsDirectory opens a native folder picker and blocks until
// the user responds. Returns the chosen path, or empty string if the
// user cancelled. Concurrent invocations each open their own dialog.
func (a *App) SelectContractsDirectory() (string, error) {
	return a.registry.Dialog.SelectDirectory(a.ctx, "Select Contracts Directory")
}

// ==================== Filesystem Methods ====================

// ListManagedFiles returns the files stored in one of the managed
// subdirectories (photos, attachments, backups, contracts).
func (a *App) ListManagedFiles(subdir string) ([]capability.ManagedFile, error) {
	return a.registry.Filesystem.List(subdir)
}

// ImportPhoto copies an external image into the photos directory and
// returns its stored name.
func (a *App) ImportPhoto(sourcePath string) (string, error) {
	return a.registry.Filesystem.Import(appdata.SubdirPhotos, sourcePath)
}

// ImportAttachment copies an external file into the attachments
// directory and records it against the contract.
func (a *App) ImportAttachment(contractID, sourcePath string) (capability.Attachment, error) {
	name, err := a.registry.Filesystem.Import(appdata.SubdirAttachments, sourcePath)
	if err != nil {
		return capability.Attachment{}, err
	}
	return a.registry.Storage.AddAttachment(contractID, name)
}

// RemoveManagedFile deletes one file from a managed subdirectory.
func (a *App) RemoveManagedFile(subdir, name string) error {
	return a.registry.Filesystem.Remove(subdir, name)
}

// ==================== Contract Storage Methods ====================

// SaveContract creates or updates a contract record.
func (a *App) SaveContract(c capability.Contract) (capability.Contract, error) {
	return a.registry.Storage.SaveContract(c)
}

// GetContract returns one contract by ID.
func (a *App) GetContract(id string) (capability.Contract, error) {
	return a.registry.Storage.GetContract(id)
}

// ListContracts returns all contracts, most recently updated first.
func (a *App) ListContracts() ([]capability.Contract, error) {
	return a.registry.Storage.ListContracts()
}

// DeleteContract removes a contract and its attachment records.
func (a *App) DeleteContract(id string) error {
	return a.registry.Storage.DeleteContract(id)
}

// ListContractAttachments returns the attachment records for a contract.
func (a *App) ListContractAttachments(contractID string) ([]capability.Attachment, error) {
	return a.registry.Storage.ListAttachments(contractID)
}

// RecordBackup logs a backup file written to the backups directory.
func (a *App) RecordBackup(fileName string, byteCount int64) (capability.BackupRecord, error) {
	return a.registry.Storage.RecordBackup(fileName, byteCount)
}

// ListBackups returns backup records, newest first.
func (a *App) ListBackups() ([]capability.BackupRecord, error) {
	return a.registry.Storage.ListBackups()
}

// ==================== Notification / Shell Methods ====================

// Notify shows a desktop notification.
func (a *App) Notify(title, message string) error {
	return a.registry.Notification.Send(title, message)
}

// OpenInFileManager reveals a path with the platform file manager.
func (a *App) OpenInFileManager(path string) error {
	return a.registry.Shell.OpenPath(path)
}

// OpenDataDirectory reveals the application data root.
func (a *App) OpenDataDirectory() error {
	return a.registry.Shell.OpenPath(a.root)
}

// OpenURL opens an http(s) URL in the default browser.
func (a *App) OpenURL(url string) error {
	return a.registry.Shell.OpenURL(url)
}

// ==================== Desktop Settings Methods ====================

// GetTheme returns the desktop theme preference: "dark", "light" or
// "auto".
func (a *App) GetTheme() string {
	if a.settings == nil {
		return "dark"
	}
	theme, err := a.settings.GetTheme()
	if err != nil {
		return "dark"
	}
	return theme
}

// SetTheme sets the desktop theme preference.
func (a *App) SetTheme(theme string) error {
	if a.settings == nil {
		return nil
	}
	return a.settings.SetTheme(theme)
}

// GetWindowGeometry returns the persisted window geometry.
func (a *App) GetWindowGeometry() WindowConfig {
	if a.settings == nil {
		return defaultWindow
	}
	geom, err := a.settings.GetWindowGeometry()
	if err != nil {
		return defaultWindow
	}
	return geom
}

// SaveWindowGeometry persists the window geometry for the next launch.
func (a *App) SaveWindowGeometry(width, height int, maximized bool) error {
	if a.settings == nil {
		return nil
	}
	return a.settings.SetWindowGeometry(WindowConfig{Width: width, Height: height, Maximized: maximized})
}
