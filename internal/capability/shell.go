package capability

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strings"
)

// startCommand is a package-level hook for testing. In production it
// starts the command for real.
var startCommand = func(cmd *exec.Cmd) error { return cmd.Start() }

// ShellService exposes a narrow slice of host shell access to the
// frontend: opening paths and URLs with their platform default handler.
// Arbitrary command execution is deliberately not exposed.
type ShellService struct{}

// NewShellService creates a shell service.
func NewShellService() *ShellService {
	return &ShellService{}
}

// openerArgs returns the platform command that opens a file, directory
// or URL with its default handler.
func openerArgs(target string) []string {
	switch runtime.GOOS {
	case "darwin":
		return []string{"open", target}
	case "windows":
		return []string{"cmd", "/c", "start", "", target}
	default:
		return []string{"xdg-open", target}
	}
}

// OpenPath reveals a file or directory in the platform file manager.
// The handler runs detached; this call does not wait for it.
func (s *ShellService) OpenPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("path is required")
	}
	args := openerArgs(path)
	if err := startCommand(exec.Command(args[0], args[1:]...)); err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	return nil
}

// OpenURL opens an http or https URL in the default browser. Other
// schemes are rejected so the frontend cannot launch arbitrary
// protocol handlers.
func (s *ShellService) OpenURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("parse url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported url scheme %q", u.Scheme)
	}
	args := openerArgs(rawURL)
	if err := startCommand(exec.Command(args[0], args[1:]...)); err != nil {
		return fmt.Errorf("open %s: %w", rawURL, err)
	}
	return nil
}
