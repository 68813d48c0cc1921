// ABOUTME: Resolves the backend API URL and the local config directory
// ABOUTME: Reads .env files via godotenv and follows the XDG spec for state

package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// DefaultAPIURL is used when no flag, env var, or .env entry is present
const DefaultAPIURL = "http://localhost:8000/api"

// EnvAPIURL is the environment variable holding the backend base URL
const EnvAPIURL = "BOOKREADER_API_URL"

// LoadEnv loads a .env file from the working directory if one exists.
// A missing file is not an error; anything else is reported to the caller.
func LoadEnv() error {
	if _, err := os.Stat(".env"); os.IsNotExist(err) {
		return nil
	}
	return godotenv.Load()
}

// APIBaseURL resolves the backend URL with flag > env > default priority
func APIBaseURL(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if envURL := os.Getenv(EnvAPIURL); envURL != "" {
		return envURL
	}
	return DefaultAPIURL
}

// DefaultConfigDir returns the config directory following the XDG spec
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "bookreader-admin")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "bookreader-admin")
}
