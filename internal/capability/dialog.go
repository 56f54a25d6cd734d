package capability

import (
	"context"

	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"
)

// FolderPicker opens a native folder-selection dialog and blocks until
// the user responds. It returns the chosen path, or "" if the user
// cancelled. An error means the dialog subsystem itself failed, which is
// distinct from cancellation.
type FolderPicker interface {
	PickFolder(ctx context.Context, title string) (string, error)
}

// wailsFolderPicker backs FolderPicker with the Wails runtime dialog.
type wailsFolderPicker struct{}

func (wailsFolderPicker) PickFolder(ctx context.Context, title string) (string, error) {
	return wailsRuntime.OpenDirectoryDialog(ctx, wailsRuntime.OpenDialogOptions{
		Title:                title,
		CanCreateDirectories: false,
		ShowHiddenFiles:      false,
	})
}

// DialogService exposes native dialog interactions to the frontend.
type DialogService struct {
	picker FolderPicker
}

// NewDialogService creates a dialog service backed by the given picker.
// Production code passes nil to use the native Wails dialog; tests pass
// a scripted fake.
func NewDialogService(picker FolderPicker) *DialogService {
	if picker == nil {
		picker = wailsFolderPicker{}
	}
	return &DialogService{picker: picker}
}

// SelectDirectory opens a folder picker with the given title and blocks
// the calling goroutine until the user responds. Cancellation is a normal
// empty result, not an error. Concurrent calls are independent: each
// opens its own dialog instance.
func (d *DialogService) SelectDirectory(ctx context.Context, title string) (string, error) {
	return d.picker.PickFolder(ctx, title)
}
