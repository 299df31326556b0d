package config

import (
	"fmt"
	"strconv"
)

// ServerConfig holds configuration for the local storefront server
type ServerConfig struct {
	Port string
	// SQLitePath is the account database used when Postgres is not configured
	SQLitePath string
}

// LoadServerConfig loads server configuration from environment variables
func LoadServerConfig(getenv func(string) string) (ServerConfig, error) {
	port := getenv("PORT")
	if port == "" {
		port = "8080" // Default to port 8080
	}

	if n, err := strconv.Atoi(port); err != nil || n < 0 || n > 65535 {
		return ServerConfig{}, fmt.Errorf("PORT must be a number between 0 and 65535: got %q", port)
	}

	sqlitePath := getenv("SQLITE_PATH")
	if sqlitePath == "" {
		sqlitePath = ":memory:"
	}

	return ServerConfig{
		Port:       port,
		SQLitePath: sqlitePath,
	}, nil
}
