package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// FilePermissions is the default permission mode for regular files (read/write for owner, read for others)
	FilePermissions = 0644
	// SecretFilePermissions is used for files holding tokens
	SecretFilePermissions = 0600
	// DirPermissions is the default permission mode for directories (rwxr-xr-x)
	DirPermissions = 0755
)

var (
	// ConfigDir is the global configuration directory (~/.apiconsole)
	ConfigDir string

	// DatabasePath is the SQLite database file for the activity journal
	DatabasePath string

	// SessionFile holds the signed-in session (tokens and current user)
	SessionFile string

	// SettingsFile is the YAML settings file
	SettingsFile string

	// KeybindsFile holds user keybinding overrides
	KeybindsFile string

	// LogFile receives logs while the interactive console owns the terminal
	LogFile string
)

// Initialize sets up the configuration directory and files.
// It creates ~/.apiconsole/ if it doesn't exist; APICONSOLE_HOME overrides the location.
func Initialize() error {
	dir := os.Getenv("APICONSOLE_HOME")
	if dir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		dir = filepath.Join(homeDir, ".apiconsole")
	}

	return InitializeAt(dir)
}

// InitializeAt sets the global paths under dir and creates it
func InitializeAt(dir string) error {
	ConfigDir = dir
	DatabasePath = filepath.Join(ConfigDir, "apiconsole.db")
	SessionFile = filepath.Join(ConfigDir, ".session.json")
	SettingsFile = filepath.Join(ConfigDir, "settings.yaml")
	KeybindsFile = filepath.Join(ConfigDir, "keybinds.json")
	LogFile = filepath.Join(ConfigDir, "apiconsole.log")

	if err := os.MkdirAll(ConfigDir, DirPermissions); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", ConfigDir, err)
	}

	// Create default settings file if it doesn't exist
	if _, err := os.Stat(SettingsFile); os.IsNotExist(err) {
		data, err := DefaultSettings().Marshal()
		if err != nil {
			return err
		}
		if err := os.WriteFile(SettingsFile, data, FilePermissions); err != nil {
			return fmt.Errorf("failed to create settings file: %w", err)
		}
	}

	return nil
}
