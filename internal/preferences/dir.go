package preferences

import (
	"fmt"
	"os"
	"path/filepath"
)

const appDir = ".verifyboard"

// Dir returns the path to the dashboard directory in the user's home directory.
func Dir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, appDir), nil
}
