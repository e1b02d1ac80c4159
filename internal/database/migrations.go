package database

import (
	"database/sql"
	"fmt"
	"log"
)

// Schema creates the storefront's order tables
const Schema = `
	CREATE TABLE IF NOT EXISTS orders (
		id UUID PRIMARY KEY,
		reference VARCHAR(64) UNIQUE NOT NULL,
		amount BIGINT NOT NULL,
		status VARCHAR(50) NOT NULL,
		address_name VARCHAR(255) NOT NULL,
		delivery_method VARCHAR(100) NOT NULL,
		delivery_price BIGINT NOT NULL DEFAULT 0,
		card_last_four VARCHAR(4) NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_orders_reference ON orders(reference);

	CREATE TABLE IF NOT EXISTS order_lines (
		order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		product_name VARCHAR(255) NOT NULL,
		unit_price BIGINT NOT NULL,
		quantity INTEGER NOT NULL CHECK (quantity > 0),
		PRIMARY KEY (order_id, position)
	);
`

// Migrate applies Schema to db
func Migrate(db *sql.DB) error {
	if _, err := db.Exec(Schema); err != nil {
		return fmt.Errorf("failed to create order tables: %w", err)
	}
	return nil
}

// RunMigrations creates the necessary database tables
func RunMigrations() error {
	if DB == nil {
		return fmt.Errorf("database connection not initialized")
	}

	if err := Migrate(DB); err != nil {
		return err
	}

	log.Println("Database migrations completed successfully")
	return nil
}
