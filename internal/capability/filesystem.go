package capability

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/LeftHandVoodoo/Respectabullz/internal/appdata"
)

// ErrNotScoped is returned when a filesystem operation runs before
// bootstrap has provided the data root.
var ErrNotScoped = errors.New("filesystem service not scoped to a data root")

// ManagedFile describes one entry inside a managed subdirectory.
type ManagedFile struct {
	Name    string    `json:"name"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"modTime"`
}

// FilesystemService exposes file operations confined to the managed
// subdirectories under the application data root. It never reaches
// outside the root: subdirectory names are validated against the fixed
// managed set and file names must be bare names.
type FilesystemService struct {
	root string
}

// NewFilesystemService creates an unscoped filesystem service. Bootstrap
// calls Scope once the data root has been resolved and provisioned.
func NewFilesystemService() *FilesystemService {
	return &FilesystemService{}
}

// Scope confines all subsequent operations to the given data root.
func (f *FilesystemService) Scope(root string) {
	f.root = root
}

// Root returns the data root, or "" before Scope.
func (f *FilesystemService) Root() string {
	return f.root
}

// resolve validates subdir and name and returns the absolute path.
// An empty name addresses the subdirectory itself.
func (f *FilesystemService) resolve(subdir, name string) (string, error) {
	if f.root == "" {
		return "", ErrNotScoped
	}
	managed := false
	for _, s := range appdata.Subdirectories {
		if s == subdir {
			managed = true
			break
		}
	}
	if !managed {
		return "", fmt.Errorf("%q is not a managed subdirectory", subdir)
	}
	if name == "" {
		return appdata.Subdir(f.root, subdir), nil
	}
	if name != filepath.Base(name) || name == "." || name == ".." {
		return "", fmt.Errorf("invalid file name %q", name)
	}
	return filepath.Join(f.root, subdir, name), nil
}

// List returns the files in a managed subdirectory, sorted by name.
// Nested directories are skipped; the managed layout is flat.
func (f *FilesystemService) List(subdir string) ([]ManagedFile, error) {
	dir, err := f.resolve(subdir, "")
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", subdir, err)
	}
	files := make([]ManagedFile, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, ManagedFile{
			Name:    e.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

// Import copies an external file into a managed subdirectory under a
// collision-free name (a UUID with the source extension preserved) and
// returns the stored name.
func (f *FilesystemService) Import(subdir, sourcePath string) (string, error) {
	name := uuid.NewString() + strings.ToLower(filepath.Ext(sourcePath))
	dest, err := f.resolve(subdir, name)
	if err != nil {
		return "", err
	}

	src, err := os.Open(sourcePath)
	if err != nil {
		return "", fmt.Errorf("open source: %w", err)
	}
	defer src.Close()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", name, err)
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		os.Remove(dest)
		return "", fmt.Errorf("copy into %s: %w", subdir, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(dest)
		return "", fmt.Errorf("close %s: %w", name, err)
	}
	return name, nil
}

// Remove deletes one file from a managed subdirectory.
func (f *FilesystemService) Remove(subdir, name string) error {
	path, err := f.resolve(subdir, name)
	if err != nil {
		return err
	}
	if name == "" {
		return fmt.Errorf("refusing to remove %s itself", subdir)
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("remove %s/%s: %w", subdir, name, err)
	}
	return nil
}

// Stat returns metadata for one file in a managed subdirectory.
func (f *FilesystemService) Stat(subdir, name string) (ManagedFile, error) {
	path, err := f.resolve(subdir, name)
	if err != nil {
		return ManagedFile{}, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return ManagedFile{}, fmt.Errorf("stat %s/%s: %w", subdir, name, err)
	}
	return ManagedFile{Name: info.Name(), Size: info.Size(), ModTime: info.ModTime()}, nil
}
