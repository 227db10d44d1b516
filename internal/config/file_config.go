package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileConfig is the shape of ~/.meetctl/config.yaml.
type FileConfig struct {
	BaseURL        string `yaml:"base_url"`
	SessionFile    string `yaml:"session_file"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	LogLevel       string `yaml:"log_level"`
	LogFile        string `yaml:"log_file"`
}

// loadConfigFile reads the config file if present. A missing or malformed
// file yields the zero config; every setting has an env or default fallback.
func loadConfigFile() FileConfig {
	var cfg FileConfig
	home, err := os.UserHomeDir()
	if err != nil {
		return cfg
	}
	data, err := os.ReadFile(filepath.Join(home, ".meetctl", "config.yaml"))
	if err != nil {
		return cfg
	}
	_ = yaml.Unmarshal(data, &cfg)
	return cfg
}
