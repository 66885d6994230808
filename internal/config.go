package internal

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultAPIURL points at a locally running classification backend
const DefaultAPIURL = "http://localhost:8000/api/v1"

// Config holds the tool's settings. Resolution order: built-in
// defaults, then the config file, then command-line flags.
type Config struct {
	APIURL   string `yaml:"api_url"`
	Provider string `yaml:"provider"`
	StateDir string `yaml:"state_dir"`
}

// DefaultConfig returns the built-in settings
func DefaultConfig() (Config, error) {
	stateDir, err := DefaultStateDir()
	if err != nil {
		return Config{}, err
	}
	return Config{
		APIURL:   DefaultAPIURL,
		StateDir: stateDir,
	}, nil
}

// DefaultStateDir is where the chat store lives unless overridden
func DefaultStateDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".mail-triage"), nil
}

// DefaultConfigPath is the config file location
func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "mail-triage", "config.yaml"), nil
}

// LoadConfig reads settings, layering the config file at path (when it
// exists) over the defaults. An empty path uses DefaultConfigPath.
func LoadConfig(path string) (Config, error) {
	cfg, err := DefaultConfig()
	if err != nil {
		return Config{}, err
	}

	if path == "" {
		path, err = DefaultConfigPath()
		if err != nil {
			return Config{}, err
		}
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	if fileCfg.APIURL != "" {
		cfg.APIURL = fileCfg.APIURL
	}
	if fileCfg.Provider != "" {
		cfg.Provider = fileCfg.Provider
	}
	if fileCfg.StateDir != "" {
		cfg.StateDir = fileCfg.StateDir
	}
	return cfg, nil
}
