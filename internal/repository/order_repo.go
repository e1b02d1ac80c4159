package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/soar-qa/juiceshop-e2e/internal/database"
	"github.com/soar-qa/juiceshop-e2e/internal/models"
)

// ErrOrderNotFound is returned when no order has the requested reference
var ErrOrderNotFound = errors.New("order not found")

// OrderRepository handles database operations for orders
type OrderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{
		db: database.DB,
	}
}

// NewOrderRepositoryWithDB creates a new order repository with a specific database connection
func NewOrderRepositoryWithDB(db *sql.DB) *OrderRepository {
	return &OrderRepository{
		db: db,
	}
}

// CreateOrder stores an order and its lines in one transaction
func (r *OrderRepository) CreateOrder(order *models.Order) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO orders (id, reference, amount, status, address_name, delivery_method,
		                    delivery_price, card_last_four, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	now := time.Now()
	_, err = tx.Exec(query,
		order.ID,
		order.Reference,
		int64(order.Amount),
		order.Status,
		order.AddressName,
		order.DeliveryMethod,
		int64(order.DeliveryPrice),
		order.CardLastFour,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	lineQuery := `
		INSERT INTO order_lines (order_id, position, product_name, unit_price, quantity)
		VALUES ($1, $2, $3, $4, $5)
	`
	for i, line := range order.Lines {
		if _, err := tx.Exec(lineQuery, order.ID, i, line.ProductName, int64(line.UnitPrice), line.Quantity); err != nil {
			return fmt.Errorf("failed to create order line %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit order: %w", err)
	}

	order.CreatedAt = now
	order.UpdatedAt = now

	return nil
}

// GetOrderByReference retrieves an order and its lines by reference
func (r *OrderRepository) GetOrderByReference(reference string) (*models.Order, error) {
	query := `
		SELECT id, reference, amount, status, address_name, delivery_method,
		       delivery_price, card_last_four, created_at, updated_at
		FROM orders
		WHERE reference = $1
	`

	order := &models.Order{}
	var amount, deliveryPrice int64
	err := r.db.QueryRow(query, reference).Scan(
		&order.ID,
		&order.Reference,
		&amount,
		&order.Status,
		&order.AddressName,
		&order.DeliveryMethod,
		&deliveryPrice,
		&order.CardLastFour,
		&order.CreatedAt,
		&order.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	order.Amount = models.Price(amount)
	order.DeliveryPrice = models.Price(deliveryPrice)

	rows, err := r.db.Query(`
		SELECT product_name, unit_price, quantity
		FROM order_lines
		WHERE order_id = $1
		ORDER BY position
	`, order.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var line models.OrderLine
		var unit int64
		if err := rows.Scan(&line.ProductName, &unit, &line.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan order line: %w", err)
		}
		line.UnitPrice = models.Price(unit)
		order.Lines = append(order.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read order lines: %w", err)
	}

	return order, nil
}
