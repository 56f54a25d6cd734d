// Package appdata resolves and provisions the per-user application data
// directory that all persistent Respectabullz files live under.
package appdata

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// DirName is the directory created for this application under the
// user's config directory.
const DirName = "Respectabullz"

// ErrEnvironmentUnavailable is returned when the host environment cannot
// supply a per-user data location. There is no transient cause for this,
// so callers must treat it as fatal and abort startup.
var ErrEnvironmentUnavailable = errors.New("application data root unavailable")

// Package-level hook for testing. In production this uses the real
// implementation.
var userConfigDir = os.UserConfigDir

// Resolve returns the application data root for the current user.
// The result is stable across calls within one application identity.
func Resolve() (string, error) {
	base, err := userConfigDir()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEnvironmentUnavailable, err)
	}
	if base == "" {
		return "", ErrEnvironmentUnavailable
	}
	return filepath.Join(base, DirName), nil
}
