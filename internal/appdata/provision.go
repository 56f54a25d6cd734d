package appdata

import (
	"fmt"
	"os"
	"path/filepath"
)

// Subdirectory names under the data root. The set is part of the
// application's contract: each area of the app stores its files in
// exactly one of these.
const (
	SubdirPhotos      = "photos"
	SubdirAttachments = "attachments"
	SubdirBackups     = "backups"
	SubdirContracts   = "contracts"
)

// Subdirectories is the fixed set of managed children created under the
// data root on every launch.
var Subdirectories = []string{
	SubdirPhotos,
	SubdirAttachments,
	SubdirBackups,
	SubdirContracts,
}

// EnsureRoot creates the data root and any missing parent directories.
// Creating an already-existing root is a no-op. A failure here is fatal
// to startup: nothing downstream can function without the root.
func EnsureRoot(root string) error {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return fmt.Errorf("create data root %s: %w", root, err)
	}
	return nil
}

// EnsureSubdirectory creates one managed subdirectory under the root.
// Creating an already-existing directory is a no-op. A failure degrades
// only the feature area that stores files there, so callers tolerate it.
func EnsureSubdirectory(root, name string) error {
	if err := os.MkdirAll(filepath.Join(root, name), 0o755); err != nil {
		return fmt.Errorf("create %s directory: %w", name, err)
	}
	return nil
}

// Subdir returns the absolute path of a managed subdirectory.
func Subdir(root, name string) string {
	return filepath.Join(root, name)
}
