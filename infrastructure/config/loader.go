package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// EnvFile is the optional configuration file read at startup.
const EnvFile = ".env"

// keyDefaultDir is the only key the loader recognizes.
const keyDefaultDir = "DEFAULT_DIR"

// Config holds the application configuration. Loaded once at startup and
// read-only afterwards.
type Config struct {
	DefaultDirectory string
}

// Load reads the optional KEY=VALUE configuration file at path. A missing
// or unreadable file is not an error: the loader always succeeds and falls
// back to the built-in default directory.
func Load(path string) Config {
	cfg := Config{DefaultDirectory: defaultDirectory()}

	values, err := godotenv.Read(path)
	if err != nil {
		return cfg
	}

	if dir := strings.TrimSpace(values[keyDefaultDir]); dir != "" {
		cfg.DefaultDirectory = dir
	}

	return cfg
}

func defaultDirectory() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, "Downloads")
}
