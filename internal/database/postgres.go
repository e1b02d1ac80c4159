package database

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"github.com/soar-qa/juiceshop-e2e/internal/config"
)

// DB is the storefront's order database, set by Connect
var DB *sql.DB

// Pool holds connection pool limits
type Pool struct {
	MaxOpen     int
	MaxIdle     int
	MaxLifetime time.Duration
}

// StorefrontPool is sized for the demo storefront serving browser sessions
var StorefrontPool = Pool{MaxOpen: 25, MaxIdle: 10, MaxLifetime: 5 * time.Minute}

// Open connects to the database described by cfg and pings it. settings are
// extra libpq key=value pairs, e.g. "search_path=orders_test".
func Open(cfg *config.PostgresConfig, pool Pool, settings ...string) (*sql.DB, error) {
	connStr := strings.Join(append([]string{cfg.ConnectionString()}, settings...), " ")

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(pool.MaxOpen)
	db.SetMaxIdleConns(pool.MaxIdle)
	db.SetConnMaxLifetime(pool.MaxLifetime)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database %s on %s: %w", cfg.Database, cfg.Host, err)
	}
	return db, nil
}

// Connect opens DB from the POSTGRES_* variables
func Connect(getenv func(string) string) error {
	pgConfig, err := config.LoadPostgresConfig(getenv)
	if err != nil {
		return fmt.Errorf("failed to load postgres config: %w", err)
	}

	DB, err = Open(pgConfig, StorefrontPool)
	return err
}

// Close closes the database connection
func Close() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}
