package repository

import (
	"fmt"
	"sync"
	"time"

	"github.com/soar-qa/juiceshop-e2e/internal/models"
)

// MemoryOrderRepository keeps orders in process memory. The storefront uses
// it when no database is configured.
type MemoryOrderRepository struct {
	mu     sync.RWMutex
	orders map[string]models.Order
}

// NewMemoryOrderRepository creates an empty in-memory order repository
func NewMemoryOrderRepository() *MemoryOrderRepository {
	return &MemoryOrderRepository{orders: make(map[string]models.Order)}
}

// CreateOrder stores a copy of the order
func (r *MemoryOrderRepository) CreateOrder(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.orders[order.Reference]; exists {
		return fmt.Errorf("failed to create order: duplicate reference %s", order.Reference)
	}

	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now

	stored := *order
	stored.Lines = append([]models.OrderLine(nil), order.Lines...)
	r.orders[order.Reference] = stored
	return nil
}

// GetOrderByReference returns a copy of the stored order
func (r *MemoryOrderRepository) GetOrderByReference(reference string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.orders[reference]
	if !ok {
		return nil, ErrOrderNotFound
	}
	stored.Lines = append([]models.OrderLine(nil), stored.Lines...)
	return &stored, nil
}
