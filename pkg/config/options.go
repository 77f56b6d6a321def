package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptDatabaseHost sets the PostgreSQL server hostname or IP address.
func OptDatabaseHost(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Host", s) {
			c.Database.Host = s
		}
	}
}

// OptDatabasePort sets the PostgreSQL server port number.
func OptDatabasePort(i int) Option {
	return func(c *Config) {
		if isValidInt("Database Port", i) {
			c.Database.Port = i
		}
	}
}

// OptDatabaseUser sets the PostgreSQL database username.
func OptDatabaseUser(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database User", s) {
			c.Database.User = s
		}
	}
}

// OptDatabasePassword sets the PostgreSQL database password.
func OptDatabasePassword(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Password", s) {
			c.Database.Password = s
		}
	}
}

// OptDatabaseDatabase sets the PostgreSQL database name to connect to.
func OptDatabaseDatabase(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Name", s) {
			c.Database.Database = s
		}
	}
}

// OptDatabaseCharset sets the client encoding of connections.
func OptDatabaseCharset(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToUpper(s)
	return func(c *Config) {
		if isValidString("Database Charset", s) {
			c.Database.Charset = s
		}
	}
}

// OptDatabasePoolSize sets the maximum number of pooled connections.
func OptDatabasePoolSize(i int) Option {
	return func(c *Config) {
		if isValidInt("Pool Size", i) {
			c.Database.PoolSize = i
		}
	}
}

// OptDatabaseConnectTimeout sets the connection timeout in seconds.
func OptDatabaseConnectTimeout(i int) Option {
	return func(c *Config) {
		if isValidInt("Connect Timeout", i) {
			c.Database.ConnectTimeout = i
		}
	}
}

// OptDatabaseSSLMode sets the SSL connection mode.
func OptDatabaseSSLMode(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Database.SSLMode", s) {
			c.Database.SSLMode = s
		}
	}
}

// OptDatabaseSSLRootCert sets the path to the certificate authority file.
func OptDatabaseSSLRootCert(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("SSL Root Certificate", s) {
			c.Database.SSLRootCert = s
		}
	}
}

// OptDatabaseSSLCert sets the path to the client certificate.
func OptDatabaseSSLCert(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("SSL Certificate", s) {
			c.Database.SSLCert = s
		}
	}
}

// OptDatabaseSSLKey sets the path to the client private key.
func OptDatabaseSSLKey(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("SSL Key", s) {
			c.Database.SSLKey = s
		}
	}
}

// OptDatabaseBatchSize sets the number of records written per batch.
func OptDatabaseBatchSize(i int) Option {
	return func(c *Config) {
		if isValidInt("Batch Size", i) {
			c.Database.BatchSize = i
		}
	}
}

// OptImportFormat sets the format of imported files.
// The set of valid formats is owned by the loader registry,
// so here only emptiness is checked.
func OptImportFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidString("Import Format", s) {
			c.Import.Format = s
		}
	}
}

// OptImportStudentsFile sets the path to the students file.
// Runtime-only field - not in ToOptions().
func OptImportStudentsFile(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Students File", s) {
			c.Import.StudentsFile = s
		}
	}
}

// OptImportRoomsFile sets the path to the rooms file.
// Runtime-only field - not in ToOptions().
func OptImportRoomsFile(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Rooms File", s) {
			c.Import.RoomsFile = s
		}
	}
}

// OptAnalyticsTopN sets the length of 'top rooms' reports.
func OptAnalyticsTopN(i int) Option {
	return func(c *Config) {
		if isValidInt("Analytics TopN", i) {
			c.Analytics.TopN = i
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text", "tint".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptLogMaxSizeMB sets the size in megabytes at which the log file rotates.
func OptLogMaxSizeMB(i int) Option {
	return func(c *Config) {
		if isValidInt("Log Max Size", i) {
			c.Log.MaxSizeMB = i
		}
	}
}

// OptLogMaxBackups sets how many rotated log files are kept.
func OptLogMaxBackups(i int) Option {
	return func(c *Config) {
		if isValidInt("Log Max Backups", i) {
			c.Log.MaxBackups = i
		}
	}
}

// OptJobsNumber sets the number of concurrent workers for parallel operations.
// Default is runtime.NumCPU().
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptHomeDir sets the home directory for config and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}
