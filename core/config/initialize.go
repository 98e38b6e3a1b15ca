package config

import (
	"log"
	"os"
	"path/filepath"
)

// Initialize writes the default configuration into dir unless one
// already exists. It is safe to call on an initialized directory.
func Initialize(dir string, logger *log.Logger) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	configPath := filepath.Join(dir, ConfigurationName)
	if _, err := os.Stat(configPath); err == nil {
		logger.Printf("Found existing %s", configPath)
		return nil
	}

	logger.Printf("Creating %s", configPath)
	return os.WriteFile(configPath, defaultConfigData, 0644)
}
