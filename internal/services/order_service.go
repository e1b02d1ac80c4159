package services

import (
	"fmt"

	"github.com/soar-qa/juiceshop-e2e/internal/models"
)

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	CreateOrder(order *models.Order) error
	GetOrderByReference(reference string) (*models.Order, error)
}

// OrderService handles order business logic
type OrderService interface {
	PlaceOrder(cart *models.Cart, addressName string, delivery models.DeliveryMethod, cardLastFour string) (*models.Order, error)
	GetOrderByReference(reference string) (*models.Order, error)
}

// OrderServiceImpl implements OrderService
type OrderServiceImpl struct {
	orderRepo OrderRepository
}

// NewOrderService creates a new order service
func NewOrderService(orderRepo OrderRepository) OrderService {
	return &OrderServiceImpl{
		orderRepo: orderRepo,
	}
}

// PlaceOrder turns a basket snapshot into a stored order
func (s *OrderServiceImpl) PlaceOrder(cart *models.Cart, addressName string, delivery models.DeliveryMethod, cardLastFour string) (*models.Order, error) {
	order, err := models.NewOrder(cart, addressName, delivery, cardLastFour)
	if err != nil {
		return nil, fmt.Errorf("invalid order: %w", err)
	}

	if err := s.orderRepo.CreateOrder(order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	return order, nil
}

// GetOrderByReference retrieves an order by its reference
func (s *OrderServiceImpl) GetOrderByReference(reference string) (*models.Order, error) {
	order, err := s.orderRepo.GetOrderByReference(reference)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return order, nil
}
