package capability

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LeftHandVoodoo/Respectabullz/internal/appdata"
)

func scopedFilesystem(t *testing.T) *FilesystemService {
	t.Helper()
	root := t.TempDir()
	for _, name := range appdata.Subdirectories {
		require.NoError(t, appdata.EnsureSubdirectory(root, name))
	}
	fs := NewFilesystemService()
	fs.Scope(root)
	return fs
}

func TestFilesystemRequiresScope(t *testing.T) {
	fs := NewFilesystemService()

	_, err := fs.List(appdata.SubdirPhotos)
	assert.ErrorIs(t, err, ErrNotScoped)
}

func TestFilesystemRejectsUnmanagedSubdirectory(t *testing.T) {
	fs := scopedFilesystem(t)

	_, err := fs.List("secrets")
	assert.Error(t, err)
}

func TestImportStoresFileUnderFreshName(t *testing.T) {
	fs := scopedFilesystem(t)

	source := filepath.Join(t.TempDir(), "puppy.JPG")
	require.NoError(t, os.WriteFile(source, []byte("image bytes"), 0o644))

	name, err := fs.Import(appdata.SubdirPhotos, source)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(name, ".jpg"), "extension should be preserved lowercase, got %s", name)

	data, err := os.ReadFile(filepath.Join(fs.Root(), appdata.SubdirPhotos, name))
	require.NoError(t, err)
	assert.Equal(t, "image bytes", string(data))
}

func TestImportedNamesDoNotCollide(t *testing.T) {
	fs := scopedFilesystem(t)

	source := filepath.Join(t.TempDir(), "contract.pdf")
	require.NoError(t, os.WriteFile(source, []byte("pdf"), 0o644))

	first, err := fs.Import(appdata.SubdirAttachments, source)
	require.NoError(t, err)
	second, err := fs.Import(appdata.SubdirAttachments, source)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestListReturnsFilesSortedByName(t *testing.T) {
	fs := scopedFilesystem(t)
	dir := filepath.Join(fs.Root(), appdata.SubdirBackups)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.zip"), []byte("b"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.zip"), []byte("a"), 0o644))

	files, err := fs.List(appdata.SubdirBackups)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "a.zip", files[0].Name)
	assert.Equal(t, "b.zip", files[1].Name)
}

func TestRemoveDeletesOnlyNamedFile(t *testing.T) {
	fs := scopedFilesystem(t)
	dir := filepath.Join(fs.Root(), appdata.SubdirPhotos)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "keep.png"), []byte("k"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "drop.png"), []byte("d"), 0o644))

	require.NoError(t, fs.Remove(appdata.SubdirPhotos, "drop.png"))

	files, err := fs.List(appdata.SubdirPhotos)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "keep.png", files[0].Name)
}

func TestPathTraversalIsRejected(t *testing.T) {
	fs := scopedFilesystem(t)

	err := fs.Remove(appdata.SubdirPhotos, "../contracts/contract.pdf")
	assert.Error(t, err)

	err = fs.Remove(appdata.SubdirPhotos, "..")
	assert.Error(t, err)

	// "." is its own base; it must not address the subdirectory itself.
	err = fs.Remove(appdata.SubdirPhotos, ".")
	assert.Error(t, err)
	info, err := os.Stat(filepath.Join(fs.Root(), appdata.SubdirPhotos))
	require.NoError(t, err, "photos subdirectory must survive")
	assert.True(t, info.IsDir())

	_, err = fs.Stat(appdata.SubdirPhotos, "/etc/passwd")
	assert.Error(t, err)
}

func TestStatReturnsMetadata(t *testing.T) {
	fs := scopedFilesystem(t)
	dir := filepath.Join(fs.Root(), appdata.SubdirContracts)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sale.pdf"), []byte("12345"), 0o644))

	info, err := fs.Stat(appdata.SubdirContracts, "sale.pdf")
	require.NoError(t, err)
	assert.Equal(t, "sale.pdf", info.Name)
	assert.Equal(t, int64(5), info.Size)
}
