package db

import (
	"fmt"
	"strings"

	"corobench/internal/benchmark"
)

// DefaultSQLitePath is used when no SQLite path is configured.
const DefaultSQLitePath = ".corobench/history.db"

// DefaultJSONPath is used when no JSON history path is configured.
const DefaultJSONPath = ".corobench/history.json"

// StoreConfig holds configuration for the history backend
type StoreConfig struct {
	Type             string // "json", "sqlite" or "postgres"
	ConnectionString string // File path for JSON and SQLite, DSN for Postgres
}

// NewStore creates a benchmark.Store based on the provided configuration.
// SQL-backed stores also implement io.Closer.
func NewStore(config StoreConfig) (benchmark.Store, error) {
	switch strings.ToLower(config.Type) {
	case "postgres", "postgresql":
		if config.ConnectionString == "" {
			return nil, fmt.Errorf("postgres connection string is required")
		}
		return NewPostgresStore(config.ConnectionString)
	case "sqlite", "sqlite3":
		if config.ConnectionString == "" {
			config.ConnectionString = DefaultSQLitePath
		}
		if err := ensureDir(config.ConnectionString); err != nil {
			return nil, err
		}
		return NewSQLiteStore(config.ConnectionString)
	case "json", "":
		if config.ConnectionString == "" {
			config.ConnectionString = DefaultJSONPath
		}
		return benchmark.NewFileStore(config.ConnectionString)
	default:
		return nil, fmt.Errorf("unsupported store type: %s", config.Type)
	}
}
