// Package config provides configuration management for roomdb.
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
//   - Database: host, port, user, password, database, charset, pool_size,
//     connect_timeout, ssl_mode, ssl_root_cert, ssl_cert, ssl_key, batch_size
//   - Import: format
//   - Analytics: top_n
//   - Log: level, format, destination, max_size_mb, max_backups
//   - General: jobs_number
//
// Runtime-only fields (CLI flags only):
//   - Import.StudentsFile, Import.RoomsFile (per-command)
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use ROOMDB_ prefix with underscores for nesting:
//
//	ROOMDB_DATABASE_HOST=localhost
//	ROOMDB_DATABASE_PORT=5432
//	ROOMDB_LOG_LEVEL=info
//	ROOMDB_ANALYTICS_TOP_N=5
package config

import (
	"runtime"
	"time"
)

// Config represents the complete roomdb configuration.
type Config struct {
	// Database contains PostgreSQL connection settings.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	// Import contains settings of the import command.
	Import ImportConfig `mapstructure:"import" yaml:"import"`

	// Analytics contains settings of analytical reports.
	Analytics AnalyticsConfig `mapstructure:"analytics" yaml:"analytics"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of concurrent workers for parallel operations.
	// Default value is set according to the number of available threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
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

	// Charset is sent to the server as client_encoding.
	Charset string `mapstructure:"charset" yaml:"charset"`

	// PoolSize is the maximum number of pooled connections.
	PoolSize int `mapstructure:"pool_size" yaml:"pool_size"`

	// ConnectTimeout is the number of seconds to wait for a connection,
	// both when dialing and when waiting for a free pooled connection.
	ConnectTimeout int `mapstructure:"connect_timeout" yaml:"connect_timeout"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "allow", "prefer", "require", "verify-ca",
	// "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`

	// SSLRootCert is a path to the certificate authority file.
	SSLRootCert string `mapstructure:"ssl_root_cert" yaml:"ssl_root_cert"`

	// SSLCert is a path to the client certificate.
	SSLCert string `mapstructure:"ssl_cert" yaml:"ssl_cert"`

	// SSLKey is a path to the client private key.
	SSLKey string `mapstructure:"ssl_key" yaml:"ssl_key"`

	// BatchSize defines the number of records written by one upsert
	// statement and by one import transaction.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`
}

// Timeout returns ConnectTimeout as a duration.
func (d DatabaseConfig) Timeout() time.Duration {
	return time.Duration(d.ConnectTimeout) * time.Second
}

// ImportConfig contains settings specific to the import command.
type ImportConfig struct {
	// Format of the input files, for example 'json', 'yaml' or 'sqlite'.
	Format string `mapstructure:"format" yaml:"format"`

	// StudentsFile is the path to students data.
	StudentsFile string `mapstructure:"students_file" yaml:"students_file"`

	// RoomsFile is the path to rooms data.
	RoomsFile string `mapstructure:"rooms_file" yaml:"rooms_file"`
}

// AnalyticsConfig contains settings of analytical reports.
type AnalyticsConfig struct {
	// TopN limits the length of 'top rooms' reports.
	TopN int `mapstructure:"top_n" yaml:"top_n"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
	// MaxSizeMB is the size of a log file before it gets rotated.
	MaxSizeMB int `mapstructure:"max_size_mb" yaml:"max_size_mb"`
	// MaxBackups is the number of rotated log files to keep.
	MaxBackups int `mapstructure:"max_backups" yaml:"max_backups"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Database: DatabaseConfig{
			Host:           "localhost",
			Port:           5432,
			User:           "postgres",
			Password:       "postgres",
			Database:       "student_room_analytics",
			Charset:        "UTF8",
			PoolSize:       10,
			ConnectTimeout: 30,
			SSLMode:        "disable",
			BatchSize:      1000,
		},
		Import: ImportConfig{
			Format: "json",
		},
		Analytics: AnalyticsConfig{
			TopN: 5,
		},
		Log: LogConfig{
			Format:      "json",
			Level:       "info",
			Destination: "file",
			MaxSizeMB:   10,
			MaxBackups:  3,
		},
		JobsNumber: runtime.NumCPU(),
	}

	return res
}
