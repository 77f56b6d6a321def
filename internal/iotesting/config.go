// Package iotesting provides shared test utilities for integration tests.
// This is an internal package for test infrastructure only.
package iotesting

import (
	"context"
	"testing"

	"github.com/gnames/roomdb/internal/iodb"
	"github.com/gnames/roomdb/internal/ioschema"
	"github.com/gnames/roomdb/pkg/config"
	"github.com/gnames/roomdb/pkg/db"
	"github.com/spf13/viper"
)

const (
	// TestDatabaseName is the database name used for all integration tests.
	// This ensures tests never accidentally run against production databases.
	TestDatabaseName = "roomdb_test"
)

// GetTestConfig returns a configuration suitable for integration tests.
// It starts from defaults, applies ROOMDB_DATABASE_* environment
// variables and overrides the database name to TestDatabaseName for
// safety.
//
// Usage in integration tests:
//
//	func TestSomething(t *testing.T) {
//	    if testing.Short() {
//	        t.Skip("Skipping integration test")
//	    }
//	    cfg := iotesting.GetTestConfig()
//	    // ... use cfg for database operations
//	}
func GetTestConfig() *config.Config {
	v := viper.New()
	v.SetEnvPrefix("ROOMDB")
	for _, k := range []string{
		"database_host", "database_port", "database_user",
		"database_password", "database_ssl_mode",
	} {
		_ = v.BindEnv(k)
	}

	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptDatabaseConnectTimeout(5),
		config.OptDatabaseBatchSize(50),
	})
	if s := v.GetString("database_host"); s != "" {
		cfg.Update([]config.Option{config.OptDatabaseHost(s)})
	}
	if i := v.GetInt("database_port"); i > 0 {
		cfg.Update([]config.Option{config.OptDatabasePort(i)})
	}
	if s := v.GetString("database_user"); s != "" {
		cfg.Update([]config.Option{config.OptDatabaseUser(s)})
	}
	if s := v.GetString("database_password"); s != "" {
		cfg.Update([]config.Option{config.OptDatabasePassword(s)})
	}
	if s := v.GetString("database_ssl_mode"); s != "" {
		cfg.Update([]config.Option{config.OptDatabaseSSLMode(s)})
	}

	// Always use test database for safety
	cfg.Database.Database = TestDatabaseName

	return cfg
}

// GetTestDatabaseConfig returns only the database configuration for tests.
func GetTestDatabaseConfig() *config.DatabaseConfig {
	cfg := GetTestConfig()
	return &cfg.Database
}

// ConnectedOperator returns an operator for the test database and closes
// it when the test finishes. The test database is created when missing.
// The test is skipped if PostgreSQL does not answer.
func ConnectedOperator(t *testing.T) db.Operator {
	t.Helper()
	ctx := context.Background()

	op := iodb.NewPgxOperator()
	err := op.Connect(ctx, GetTestDatabaseConfig())
	if err != nil {
		t.Fatalf("Failed to configure operator: %v", err)
	}
	t.Cleanup(func() { _ = op.Close() })

	if err = ioschema.NewManager(op).CreateDatabase(ctx); err != nil {
		t.Skipf("PostgreSQL is not reachable: %v", err)
	}
	if !op.TestConnectivity(ctx) {
		t.Skip("PostgreSQL test database is not reachable")
	}
	return op
}

// FreshSchema drops and recreates tables of the test database.
func FreshSchema(t *testing.T, op db.Operator) {
	t.Helper()
	ctx := context.Background()

	sm := ioschema.NewManager(op)
	if err := sm.DropTables(ctx); err != nil {
		t.Fatalf("Failed to drop tables: %v", err)
	}
	if err := sm.CreateTables(ctx); err != nil {
		t.Fatalf("Failed to create tables: %v", err)
	}
}
