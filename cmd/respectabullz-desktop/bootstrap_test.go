package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/LeftHandVoodoo/Respectabullz/internal/appdata"
)

// withDataRoot points the resolver hook at a fixed root for the duration
// of a test.
func withDataRoot(t *testing.T, root string) {
	t.Helper()
	orig := resolveDataRoot
	resolveDataRoot = func() (string, error) { return root, nil }
	t.Cleanup(func() { resolveDataRoot = orig })
}

func TestBootstrapCreatesLayout(t *testing.T) {
	root := filepath.Join(t.TempDir(), "Respectabullz")
	withDataRoot(t, root)

	app := NewApp()
	if err := app.bootstrap(); err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}
	defer app.shutdown(context.Background())

	if app.Phase() != PhaseReady {
		t.Errorf("Expected phase ready, got %s", app.Phase())
	}
	for _, name := range appdata.Subdirectories {
		info, err := os.Stat(filepath.Join(root, name))
		if err != nil {
			t.Fatalf("Expected %s to exist: %v", name, err)
		}
		if !info.IsDir() {
			t.Errorf("Expected %s to be a directory", name)
		}
	}
	if _, err := os.Stat(filepath.Join(root, databaseFile)); err != nil {
		t.Errorf("Expected database file to exist: %v", err)
	}
}

func TestBootstrapIsIdempotent(t *testing.T) {
	root := filepath.Join(t.TempDir(), "Respectabullz")
	withDataRoot(t, root)

	first := NewApp()
	if err := first.bootstrap(); err != nil {
		t.Fatalf("first bootstrap failed: %v", err)
	}
	first.shutdown(context.Background())

	// Second launch against the already-populated root must behave
	// identically: no duplicate creation, no error.
	second := NewApp()
	if err := second.bootstrap(); err != nil {
		t.Fatalf("second bootstrap failed: %v", err)
	}
	defer second.shutdown(context.Background())

	if second.Phase() != PhaseReady {
		t.Errorf("Expected phase ready after relaunch, got %s", second.Phase())
	}
	for _, name := range appdata.Subdirectories {
		if _, err := os.Stat(filepath.Join(root, name)); err != nil {
			t.Errorf("Expected %s to survive relaunch: %v", name, err)
		}
	}
}

func TestBootstrapFailsWhenRootUnresolvable(t *testing.T) {
	orig := resolveDataRoot
	resolveDataRoot = func() (string, error) { return "", appdata.ErrEnvironmentUnavailable }
	t.Cleanup(func() { resolveDataRoot = orig })

	app := NewApp()
	err := app.bootstrap()
	if err == nil {
		t.Fatal("Expected bootstrap to fail")
	}
	if !errors.Is(err, appdata.ErrEnvironmentUnavailable) {
		t.Errorf("Expected ErrEnvironmentUnavailable, got %v", err)
	}
	if app.Phase() != PhaseFailed {
		t.Errorf("Expected phase failed, got %s", app.Phase())
	}
}

func TestBootstrapFailsWhenRootUncreatable(t *testing.T) {
	tmp := t.TempDir()
	blocker := filepath.Join(tmp, "blocker")
	if err := os.WriteFile(blocker, []byte("not a directory"), 0o644); err != nil {
		t.Fatal(err)
	}
	root := filepath.Join(blocker, "Respectabullz")
	withDataRoot(t, root)

	app := NewApp()
	if err := app.bootstrap(); err == nil {
		t.Fatal("Expected bootstrap to fail")
	}
	if app.Phase() != PhaseFailed {
		t.Errorf("Expected phase failed, got %s", app.Phase())
	}

	// No partial ready state: storage must not have been opened.
	if _, err := app.ListContracts(); err == nil {
		t.Error("Expected storage to remain closed after fatal bootstrap")
	}
}

func TestBootstrapToleratesSingleSubdirectoryFailure(t *testing.T) {
	root := filepath.Join(t.TempDir(), "Respectabullz")
	if err := os.MkdirAll(root, 0o755); err != nil {
		t.Fatal(err)
	}
	// A file squatting on the photos name makes that one subdirectory
	// uncreatable.
	if err := os.WriteFile(filepath.Join(root, appdata.SubdirPhotos), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	withDataRoot(t, root)

	app := NewApp()
	if err := app.bootstrap(); err != nil {
		t.Fatalf("Expected bootstrap to tolerate subdirectory failure, got: %v", err)
	}
	defer app.shutdown(context.Background())

	if app.Phase() != PhaseReady {
		t.Errorf("Expected phase ready, got %s", app.Phase())
	}
	for _, name := range []string{appdata.SubdirAttachments, appdata.SubdirBackups, appdata.SubdirContracts} {
		info, err := os.Stat(filepath.Join(root, name))
		if err != nil {
			t.Fatalf("Expected %s to exist despite photos failure: %v", name, err)
		}
		if !info.IsDir() {
			t.Errorf("Expected %s to be a directory", name)
		}
	}
}

func TestPhaseStrings(t *testing.T) {
	cases := map[Phase]string{
		PhaseUninitialized: "uninitialized",
		PhaseRootResolving: "root-resolving",
		PhaseRootResolved:  "root-resolved",
		PhaseProvisioning:  "provisioning",
		PhaseReady:         "ready",
		PhaseFailed:        "failed",
		Phase(99):          "unknown",
	}
	for phase, want := range cases {
		if got := phase.String(); got != want {
			t.Errorf("Phase(%d).String() = %q, want %q", phase, got, want)
		}
	}
}
