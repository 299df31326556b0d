package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
)

const defaultPostgresPort = 5432

// PostgresConfig holds connection settings for the storefront account store
type PostgresConfig struct {
	User     string
	Password string
	Database string
	Host     string
	Port     int
	SSLMode  string
	// SearchPath pins the session to one schema; empty keeps the server default.
	SearchPath string
}

// PostgresConfigured reports whether the environment selects a Postgres account store.
// The storefront falls back to SQLite when POSTGRES_HOSTNAME is unset.
func PostgresConfigured(getenv func(string) string) bool {
	return getenv("POSTGRES_HOSTNAME") != ""
}

// LoadPostgresConfig loads PostgreSQL configuration from environment variables. Every
// missing variable is reported, not just the first.
func LoadPostgresConfig(getenv func(string) string) (*PostgresConfig, error) {
	cfg := &PostgresConfig{
		User:       getenv("POSTGRES_USER"),
		Password:   getenv("POSTGRES_PASSWORD"),
		Database:   getenv("POSTGRES_DB"),
		Host:       getenv("POSTGRES_HOSTNAME"),
		SSLMode:    getenv("POSTGRES_SSLMODE"),
		SearchPath: getenv("POSTGRES_SEARCH_PATH"),
		Port:       defaultPostgresPort,
	}

	var errs []error
	for _, required := range []struct {
		key   string
		value string
	}{
		{"POSTGRES_USER", cfg.User},
		{"POSTGRES_PASSWORD", cfg.Password},
		{"POSTGRES_DB", cfg.Database},
		{"POSTGRES_HOSTNAME", cfg.Host},
	} {
		if required.value == "" {
			errs = append(errs, fmt.Errorf("%s is required", required.key))
		}
	}

	if raw := getenv("POSTGRES_PORT"); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil || port < 1 || port > 65535 {
			errs = append(errs, fmt.Errorf("POSTGRES_PORT must be a port number, got %q", raw))
		} else {
			cfg.Port = port
		}
	}

	switch cfg.SSLMode {
	case "":
		cfg.SSLMode = "disable"
	case "disable", "require", "verify-ca", "verify-full":
	default:
		errs = append(errs, fmt.Errorf("POSTGRES_SSLMODE %q is not supported", cfg.SSLMode))
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ConnectionString returns a postgres:// URL accepted by lib/pq. Credentials are escaped,
// so passwords may contain any character.
func (c *PostgresConfig) ConnectionString() string {
	query := url.Values{"sslmode": {c.SSLMode}}
	if c.SearchPath != "" {
		query.Set("search_path", c.SearchPath)
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Host, strconv.Itoa(c.port())),
		Path:     "/" + c.Database,
		RawQuery: query.Encode(),
	}
	return u.String()
}

// WithSearchPath returns a copy of c bound to schema
func (c PostgresConfig) WithSearchPath(schema string) *PostgresConfig {
	c.SearchPath = schema
	return &c
}

func (c *PostgresConfig) port() int {
	if c.Port == 0 {
		return defaultPostgresPort
	}
	return c.Port
}
