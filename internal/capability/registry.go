// Package capability assembles the host capability modules the running
// application exposes to its frontend: filesystem access, native dialogs,
// notifications, shell access and persistent SQL storage. Each module is
// independent; the registry is built once during bootstrap and never
// mutated afterwards.
package capability

// Registry is the fixed set of capability modules. There is no
// unregister operation and no inter-module dependency; assembly order
// does not matter.
type Registry struct {
	Filesystem   *FilesystemService
	Dialog       *DialogService
	Notification *NotificationService
	Shell        *ShellService
	Storage      *StorageService
}

// Build assembles the registry. Module construction cannot fail; the
// filesystem and storage modules are wired to the data root later in
// bootstrap via Scope and Open, which is where failures surface.
func Build() *Registry {
	return &Registry{
		Filesystem:   NewFilesystemService(),
		Dialog:       NewDialogService(nil),
		Notification: NewNotificationService(nil),
		Shell:        NewShellService(),
		Storage:      NewStorageService(),
	}
}
