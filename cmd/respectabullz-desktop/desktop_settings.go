package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// settingsFile is the TOML settings file created under the data root.
const settingsFile = "config.toml"

// defaultWindow is the window geometry used on first launch.
var defaultWindow = WindowConfig{Width: 1280, Height: 800}

// WindowConfig represents persisted window geometry.
type WindowConfig struct {
	Width     int  `toml:"width" json:"width"`
	Height    int  `toml:"height" json:"height"`
	Maximized bool `toml:"maximized" json:"maximized"`
}

// DesktopConfig represents the [desktop] section of config.toml.
type DesktopConfig struct {
	Theme  string       `toml:"theme"` // "dark", "light", or "auto"
	Window WindowConfig `toml:"window"`
}

// SettingsManager manages desktop settings in config.toml.
type SettingsManager struct {
	configPath string
}

// NewSettingsManager creates a settings manager for the given file.
func NewSettingsManager(configPath string) *SettingsManager {
	return &SettingsManager{configPath: configPath}
}

// fullConfig represents the config.toml structure we care about. Other
// sections are preserved as raw TOML on save.
type fullConfig struct {
	Desktop DesktopConfig `toml:"desktop"`
}

// loadSettings loads the desktop section, applying defaults and
// validation for missing or out-of-range values.
func (sm *SettingsManager) loadSettings() (*DesktopConfig, error) {
	defaults := &DesktopConfig{Theme: "dark", Window: defaultWindow}

	data, err := os.ReadFile(sm.configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return defaults, nil
		}
		return nil, err
	}

	var config fullConfig
	if err := toml.Unmarshal(data, &config); err != nil {
		return defaults, nil // Return defaults on parse error
	}

	switch config.Desktop.Theme {
	case "dark", "light", "auto":
		// Valid
	default:
		config.Desktop.Theme = "dark"
	}

	if config.Desktop.Window.Width < 640 {
		config.Desktop.Window.Width = defaultWindow.Width
	}
	if config.Desktop.Window.Height < 480 {
		config.Desktop.Window.Height = defaultWindow.Height
	}

	return &config.Desktop, nil
}

// saveSettings saves the desktop config, preserving other sections.
func (sm *SettingsManager) saveSettings(desktop *DesktopConfig) error {
	existingData, _ := os.ReadFile(sm.configPath)

	var existingConfig map[string]interface{}
	if len(existingData) > 0 {
		if err := toml.Unmarshal(existingData, &existingConfig); err != nil {
			existingConfig = make(map[string]interface{})
		}
	} else {
		existingConfig = make(map[string]interface{})
	}

	existingConfig["desktop"] = map[string]interface{}{
		"theme": desktop.Theme,
		"window": map[string]interface{}{
			"width":     desktop.Window.Width,
			"height":    desktop.Window.Height,
			"maximized": desktop.Window.Maximized,
		},
	}

	if err := os.MkdirAll(filepath.Dir(sm.configPath), 0700); err != nil {
		return err
	}

	var buf bytes.Buffer
	if len(existingData) == 0 {
		buf.WriteString("# Respectabullz Configuration\n\n")
	}
	if err := toml.NewEncoder(&buf).Encode(existingConfig); err != nil {
		return err
	}

	return os.WriteFile(sm.configPath, buf.Bytes(), 0600)
}

// GetTheme returns the desktop theme preference.
func (sm *SettingsManager) GetTheme() (string, error) {
	config, err := sm.loadSettings()
	if err != nil {
		return "dark", err
	}
	return config.Theme, nil
}

// SetTheme sets the desktop theme preference.
func (sm *SettingsManager) SetTheme(theme string) error {
	theme = strings.ToLower(strings.TrimSpace(theme))
	switch theme {
	case "dark", "light", "auto":
		// Valid
	default:
		theme = "dark"
	}

	config, err := sm.loadSettings()
	if err != nil {
		config = &DesktopConfig{Window: defaultWindow}
	}

	config.Theme = theme
	return sm.saveSettings(config)
}

// GetWindowGeometry returns the persisted window geometry.
func (sm *SettingsManager) GetWindowGeometry() (WindowConfig, error) {
	config, err := sm.loadSettings()
	if err != nil {
		return defaultWindow, err
	}
	return config.Window, nil
}

// SetWindowGeometry persists window geometry, clamping to the minimum
// usable size.
func (sm *SettingsManager) SetWindowGeometry(geom WindowConfig) error {
	if geom.Width < 640 {
		geom.Width = 640
	}
	if geom.Height < 480 {
		geom.Height = 480
	}

	config, err := sm.loadSettings()
	if err != nil {
		config = &DesktopConfig{Theme: "dark"}
	}

	config.Window = geom
	return sm.saveSettings(config)
}
