package deployer

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/sessionguard/stackctl/internal/core/domain"
)

// =============================================================================
// Environment File
// =============================================================================

// CheckEnvFile verifies the secrets file is present. Its content stays opaque
// to the sequencer; only presence is validated.
func CheckEnvFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%s: %w", path, domain.ErrMissingEnvFile)
		}
		return fmt.Errorf("stat %s: %w", path, err)
	}
	return nil
}

// LoadEnvFile loads the secrets file into the process environment so the
// orchestration tool's child processes inherit it.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// =============================================================================
// Directory Preparation
// =============================================================================

// EnsureDirectories creates the stack's required local directories. Existing
// directories are left untouched, so running this twice is harmless.
func EnsureDirectories(dirs []string) error {
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}
