package app

import (
	"fmt"
	"os"
	"path/filepath"
)

// GetDefaults returns application default paths, checking environment variables first.
// Environment variables:
//   - FLAB_CONFIG_PATH: config file location (default: ~/.config/flab.toml)
//   - FLAB_HOME: base directory for case data (default: ~/forensics)
func GetDefaults() (map[string]string, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	baseDir, err := getBaseDir()
	if err != nil {
		return nil, err
	}

	return map[string]string{
		"config_path": configPath,
		"base_dir":    baseDir,
		"log_dir":     filepath.Join(baseDir, "log"),
	}, nil
}

// getConfigPath returns the config file path, checking FLAB_CONFIG_PATH first,
// then falling back to the default ~/.config/flab.toml.
func getConfigPath() (string, error) {
	if path := os.Getenv("FLAB_CONFIG_PATH"); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "flab.toml"), nil
}

// getBaseDir returns the base directory for case data, checking FLAB_HOME
// first, then falling back to ~/forensics.
func getBaseDir() (string, error) {
	if path := os.Getenv("FLAB_HOME"); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, "forensics"), nil
}
