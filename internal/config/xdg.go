package config

import (
	"os"
	"path/filepath"
)

// AppName is the directory name used under the XDG base directories
const AppName = "verbbattle"

// XDGConfigHome returns the XDG config home or a default fallback
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// XDGDataHome returns the XDG data home or a default fallback
func XDGDataHome() string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".local", "share")
}

// DefaultConfigPath returns the default TOML config path
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), AppName, "config.toml")
}

// DefaultSQLitePath returns the default save database path
func DefaultSQLitePath() string {
	return filepath.Join(XDGDataHome(), AppName, "saves.db")
}

// DefaultLogPath returns where the play screen writes its log
func DefaultLogPath() string {
	return filepath.Join(XDGDataHome(), AppName, AppName+".log")
}
