package config

import (
	"os"
	"path/filepath"
)

const defaultRuntimeDir = ".anjali"

// GetRuntimePath resolves ANJALI_RUNTIME_PATH. Relative paths are taken
// from the user's home directory.
func GetRuntimePath() string {
	return resolveRuntimePath(os.Getenv("ANJALI_RUNTIME_PATH"))
}

func resolveRuntimePath(path string) string {
	if path == "" {
		path = defaultRuntimeDir
	}
	if !filepath.IsAbs(path) {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path)
	}
	return path
}

func GetEnvFilePath() string {
	return filepath.Join(GetRuntimePath(), ".env")
}
