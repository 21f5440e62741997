package database

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	AppDirName       = ".accessible-route-planner"
	SQLiteDBFileName = "planner.db"
)

// GetAppDir returns ~/.accessible-route-planner, creating it if needed
func GetAppDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	appDir := filepath.Join(homeDir, AppDirName)
	if err := os.MkdirAll(appDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create app directory: %w", err)
	}

	return appDir, nil
}

// GetSQLiteDBPath returns ~/.accessible-route-planner/planner.db
func GetSQLiteDBPath() (string, error) {
	appDir, err := GetAppDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(appDir, SQLiteDBFileName), nil
}
