// Package testutil gives integration tests an order database of their own
package testutil

import (
	"database/sql"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/soar-qa/juiceshop-e2e/internal/config"
	"github.com/soar-qa/juiceshop-e2e/internal/database"
)

// localPostgres is used for every POSTGRES_* variable that is not set
var localPostgres = map[string]string{
	"POSTGRES_USER":     "postgres",
	"POSTGRES_PASSWORD": "postgres",
	"POSTGRES_DB":       "postgres",
	"POSTGRES_HOSTNAME": "localhost",
}

var testPool = database.Pool{MaxOpen: 5, MaxIdle: 2, MaxLifetime: 5 * time.Minute}

func getenv(key string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return localPostgres[key]
}

// TestDatabase is a migrated schema that lives as long as one test
type TestDatabase struct {
	DB         *sql.DB
	SchemaName string
	admin      *sql.DB
}

// SetupTestDatabase creates a uniquely named schema, migrates it and returns
// a connection whose search_path points at it
func SetupTestDatabase(t *testing.T) *TestDatabase {
	t.Helper()

	cfg, err := config.LoadPostgresConfig(getenv)
	if err != nil {
		t.Fatalf("Failed to load postgres config: %v", err)
	}

	admin, err := database.Open(cfg, testPool)
	if err != nil {
		t.Fatalf("Failed to connect to postgres: %v", err)
	}

	td := &TestDatabase{
		SchemaName: "orders_test_" + strings.ReplaceAll(uuid.NewString(), "-", ""),
		admin:      admin,
	}
	if _, err := admin.Exec(fmt.Sprintf("CREATE SCHEMA %s", td.SchemaName)); err != nil {
		admin.Close()
		t.Fatalf("Failed to create schema %s: %v", td.SchemaName, err)
	}

	if td.DB, err = database.Open(cfg, testPool, "search_path="+td.SchemaName); err != nil {
		td.Teardown(t)
		t.Fatalf("Failed to connect to schema %s: %v", td.SchemaName, err)
	}
	if err := database.Migrate(td.DB); err != nil {
		td.Teardown(t)
		t.Fatalf("Failed to migrate schema %s: %v", td.SchemaName, err)
	}

	return td
}

// Teardown drops the schema and closes both connections
func (td *TestDatabase) Teardown(t *testing.T) {
	t.Helper()

	if td.DB != nil {
		td.DB.Close()
	}
	if _, err := td.admin.Exec(fmt.Sprintf("DROP SCHEMA IF EXISTS %s CASCADE", td.SchemaName)); err != nil {
		t.Logf("Warning: failed to drop schema %s: %v", td.SchemaName, err)
	}
	td.admin.Close()
}
