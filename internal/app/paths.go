package app

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	appDirName = "grit"
	dbFileName = "grit.db"
)

// DefaultDBPath is where grit keeps its food log and profile when neither
// --db nor GRIT_DB_PATH is given.
func DefaultDBPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(base, appDirName, dbFileName), nil
}

// EnsureDBDir creates the directory holding the grit database file.
func EnsureDBDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create grit database directory: %w", err)
	}
	return nil
}
