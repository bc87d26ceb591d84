package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	DefaultURL = "sqlite://sqlite.db"
)

// ErrMissing is returned when an operation needs a store that does not exist.
var ErrMissing = errors.New("datastore does not exist")

// ErrIsDirectory is returned when a store location names a directory.
var ErrIsDirectory = errors.New("datastore path is a directory, expected file")

// ParseURL converts a store connection string into a filesystem path.
// Accepted forms are "sqlite://path", "sqlite:path", "file:path" and a bare path.
// Query parameters are dropped.
func ParseURL(dbURL string) (string, error) {
	path := strings.TrimSpace(dbURL)
	for _, prefix := range []string{"sqlite://", "sqlite:", "file:"} {
		if strings.HasPrefix(path, prefix) {
			path = strings.TrimPrefix(path, prefix)
			break
		}
	}
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if path == "" {
		return "", fmt.Errorf("invalid store url %q: empty path", dbURL)
	}
	if path == ":memory:" {
		return "", fmt.Errorf("invalid store url %q: in-memory stores are not file-backed", dbURL)
	}
	return filepath.Clean(path), nil
}

// CheckExists verifies if the datastore exists at the given path.
// Returns true if the store exists, false otherwise.
func CheckExists(dbPath string) (bool, error) {
	info, err := os.Stat(dbPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check store existence: %w", err)
	}
	if info.IsDir() {
		return false, fmt.Errorf("%w: %s", ErrIsDirectory, dbPath)
	}
	return true, nil
}

// Create makes an empty store file, creating parent directories as needed.
// A zero-length file is a valid SQLite database.
func Create(dbPath string) error {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create store directory: %w", err)
		}
	}
	f, err := os.OpenFile(dbPath, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create store: %w", err)
	}
	return f.Close()
}
