// Package storage persists games in a BadgerDB database.
package storage

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "chesspos"

// GetDataDir returns the platform-specific data directory for the application.
// - macOS: ~/Library/Application Support/chesspos/
// - Linux: ~/.local/share/chesspos/
// - Windows: %APPDATA%/chesspos/
func GetDataDir() (string, error) {
	var baseDir string

	switch runtime.GOOS {
	case "darwin":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		baseDir = filepath.Join(homeDir, "Library", "Application Support")

	case "windows":
		baseDir = os.Getenv("APPDATA")
		if baseDir == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			baseDir = filepath.Join(homeDir, "AppData", "Roaming")
		}

	default:
		// Linux and other Unix-like: XDG_DATA_HOME, else ~/.local/share/
		baseDir = os.Getenv("XDG_DATA_HOME")
		if baseDir == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			baseDir = filepath.Join(homeDir, ".local", "share")
		}
	}

	return filepath.Join(baseDir, appName), nil
}

// GetDatabaseDir returns (and creates) the badger directory under dataDir.
// An empty dataDir means GetDataDir.
func GetDatabaseDir(dataDir string) (string, error) {
	if dataDir == "" {
		var err error
		if dataDir, err = GetDataDir(); err != nil {
			return "", err
		}
	}

	dbDir := filepath.Join(dataDir, "db")
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return "", err
	}
	return dbDir, nil
}
