package main

import (
	"os"

	"gopkg.in/yaml.v3"
)

// ProjectConfig holds the contents of .tokenbridge/config.yaml.
type ProjectConfig struct {
	Version       string `yaml:"version"`
	CatalogPath   string `yaml:"catalog_path"`
	VariablesPath string `yaml:"variables_path"`
	LogPath       string `yaml:"log_path"`
}

// loadProjectConfig reads .tokenbridge/config.yaml from the current directory.
// Returns nil (no error) if the file does not exist.
func loadProjectConfig() (*ProjectConfig, error) {
	data, err := os.ReadFile(".tokenbridge/config.yaml")
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// resolvePath returns the path to use for one input, applying the fallback
// chain: explicit flag value, then the config field, then the default.
func resolvePath(flagValue, configValue, fallback string) string {
	if flagValue != "" {
		return flagValue
	}
	if configValue != "" {
		return configValue
	}
	return fallback
}
