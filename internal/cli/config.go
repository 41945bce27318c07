// Package cli holds configuration for the notes client binary.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultServerURL is used when nothing else configures the server.
const DefaultServerURL = "http://localhost:8080"

// Config holds the client configuration
type Config struct {
	ServerURL string `yaml:"server_url"`
	LogFile   string `yaml:"log_file"`
}

// Load resolves configuration with priority: flag > env var > config file > default.
// flagServerURL is the --server flag value, empty when not given.
func Load(flagServerURL string) (*Config, error) {
	cfg := &Config{
		ServerURL: DefaultServerURL,
	}

	path, err := configPath()
	if err == nil {
		fileCfg, err := loadConfigFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if fileCfg != nil {
			if fileCfg.ServerURL != "" {
				cfg.ServerURL = fileCfg.ServerURL
			}
			if fileCfg.LogFile != "" {
				cfg.LogFile = fileCfg.LogFile
			}
		}
	}

	if env := os.Getenv("SWIFT_NOTES_SERVER"); env != "" {
		cfg.ServerURL = env
	}
	if env := os.Getenv("SWIFT_NOTES_LOG_FILE"); env != "" {
		cfg.LogFile = env
	}

	if flagServerURL != "" {
		cfg.ServerURL = flagServerURL
	}

	if cfg.LogFile == "" {
		cfg.LogFile = defaultLogFile()
	}

	return cfg, nil
}

func configPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "swift-notes", "config.yaml"), nil
}

func loadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	return &cfg, nil
}

func defaultLogFile() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "swift-notes.log")
	}
	return filepath.Join(homeDir, ".local", "state", "swift-notes", "client.log")
}
