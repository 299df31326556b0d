package config

import (
	"fmt"
	"strings"
)

// LogConfig holds logger configuration
type LogConfig struct {
	Level      string
	Format     string
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// LoadLogConfig loads logger configuration from environment variables
func LoadLogConfig(getenv func(string) string) (*LogConfig, error) {
	config := &LogConfig{
		Level:      strings.ToLower(getenv("LOG_LEVEL")),
		Format:     strings.ToLower(getenv("LOG_FORMAT")),
		File:       getenv("LOG_FILE"),
		MaxSizeMB:  10,
		MaxBackups: 3,
		MaxAgeDays: 7,
	}

	if config.Level == "" {
		config.Level = "info"
	}
	switch config.Format {
	case "":
		config.Format = "console"
	case "console", "json":
	default:
		return nil, fmt.Errorf("LOG_FORMAT must be console or json: got %q", config.Format)
	}

	return config, nil
}
