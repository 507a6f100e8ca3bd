// Package config loads the viewer server configuration from a YAML file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the server settings.
type Config struct {
	Listen       string `yaml:"listen"`        // SSH listen address
	HostKey      string `yaml:"host_key"`      // path to the host key file
	BoardsDir    string `yaml:"boards_dir"`    // directory of *.json board records
	DefaultBoard string `yaml:"default_board"` // board shown when a session opens
	AppName      string `yaml:"app_name"`      // application name for the board store
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Listen:       ":2222",
		HostKey:      "host_key",
		BoardsDir:    "assets/boards",
		DefaultBoard: "demo",
		AppName:      "pixelboard",
	}
}

// Load reads a YAML config file. Fields absent from the file keep their
// default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Listen == "" {
		return nil, fmt.Errorf("config %s: listen address must not be empty", path)
	}
	return cfg, nil
}
