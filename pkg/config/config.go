// Package config provides configuration management for wikialias.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Build: jobs_number, queue_size, ignored_namespaces
//   - Store: format
//   - Database: host, port, user, password, database, ssl_mode, batch_size
//   - Log: level, format, destination
//
// Runtime-only fields (CLI flags only):
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use WIKIALIAS_ prefix with underscores for nesting:
//
//	WIKIALIAS_JOBS_NUMBER=8
//	WIKIALIAS_STORE_FORMAT=sqlite
//	WIKIALIAS_DATABASE_HOST=localhost
//	WIKIALIAS_LOG_LEVEL=info
package config

import (
	"runtime"
)

// Config represents the complete wikialias configuration.
type Config struct {
	// JobsNumber is the number of concurrent markup extraction workers.
	// Default value is set according to the number of available threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// QueueSize is the capacity of the bounded queue between the dump
	// reader and extraction workers. The reader blocks when it is full.
	QueueSize int `mapstructure:"queue_size" yaml:"queue_size"`

	// IgnoredNamespaces are lowercase title prefixes (with a trailing colon)
	// of pages that are dropped while reading a dump.
	IgnoredNamespaces []string `mapstructure:"ignored_namespaces" yaml:"ignored_namespaces"`

	// Store determines how the alias dictionary is persisted.
	Store StoreConfig `mapstructure:"store" yaml:"store"`

	// Database contains PostgreSQL connection settings, used by the
	// 'postgres' store format.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string `mapstructure:"-" yaml:"-"`
}

// StoreConfig contains settings of the alias dictionary persistence.
type StoreConfig struct {
	// Format of the persisted dictionary.
	// Valid values: "gob", "json", "sqlite", "postgres".
	Format string `mapstructure:"format" yaml:"format"`
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`

	// BatchSize defines the number of rows sent per CopyFrom call when the
	// dictionary is saved to PostgreSQL.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// DefaultIgnoredNamespaces are title prefixes of pages that never describe
// an entity.
var DefaultIgnoredNamespaces = []string{
	"wikipedia:", "category:", "file:", "portal:", "template:",
	"mediawiki:", "user:", "help:", "book:", "draft:",
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		JobsNumber:        runtime.NumCPU(),
		QueueSize:         1_000,
		IgnoredNamespaces: append([]string(nil), DefaultIgnoredNamespaces...),
		Store: StoreConfig{
			Format: "gob",
		},
		Database: DatabaseConfig{
			Host:      "localhost",
			Port:      5432,
			User:      "postgres",
			Password:  "postgres",
			Database:  "wikialias",
			SSLMode:   "disable",
			BatchSize: 50_000,
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
	}

	return res
}
