package main

import (
	"log"
	"path/filepath"

	"github.com/LeftHandVoodoo/Respectabullz/internal/appdata"
)

// databaseFile is the SQLite database created under the data root.
const databaseFile = "respectabullz.db"

// Package-level hook for testing. In production this uses the real
// resolver.
var resolveDataRoot = appdata.Resolve

// Phase tracks startup progress. SelectContractsDirectory and the other
// bound methods are only reachable once the app is Ready; the Wails
// serving loop does not start if bootstrap fails.
type Phase int32

const (
	PhaseUninitialized Phase = iota
	PhaseRootResolving
	PhaseRootResolved
	PhaseProvisioning
	PhaseReady
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseUninitialized:
		return "uninitialized"
	case PhaseRootResolving:
		return "root-resolving"
	case PhaseRootResolved:
		return "root-resolved"
	case PhaseProvisioning:
		return "provisioning"
	case PhaseReady:
		return "ready"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// bootstrap runs the fixed startup sequence: resolve the data root,
// create it, create the managed subdirectories, then open storage.
// A returned error is fatal; the app must not serve the frontend.
//
// Subdirectory creation failures are tolerated: a missing photos or
// backups directory degrades that feature area, not the application.
func (a *App) bootstrap() error {
	a.setPhase(PhaseRootResolving)
	root, err := resolveDataRoot()
	if err != nil {
		a.setPhase(PhaseFailed)
		return err
	}
	a.setPhase(PhaseRootResolved)

	a.setPhase(PhaseProvisioning)
	if err := appdata.EnsureRoot(root); err != nil {
		a.setPhase(PhaseFailed)
		return err
	}
	for _, name := range appdata.Subdirectories {
		if err := appdata.EnsureSubdirectory(root, name); err != nil {
			log.Printf("warning: %v", err)
		}
	}

	if err := a.registry.Storage.Open(filepath.Join(root, databaseFile)); err != nil {
		a.setPhase(PhaseFailed)
		return err
	}
	a.registry.Filesystem.Scope(root)

	a.root = root
	a.settings = NewSettingsManager(filepath.Join(root, settingsFile))
	a.setPhase(PhaseReady)
	return nil
}
