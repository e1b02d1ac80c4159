package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// OrderStatus represents valid order states
type OrderStatus string

// Order statuses
const (
	OrderStatusPlaced OrderStatus = "placed"
)

// OrderLine is a purchased product snapshot
type OrderLine struct {
	ProductName string
	UnitPrice   Price
	Quantity    int
}

// Order represents a completed storefront purchase
type Order struct {
	ID             string
	Reference      string
	Amount         Price
	Status         OrderStatus
	Lines          []OrderLine
	AddressName    string
	DeliveryMethod string
	DeliveryPrice  Price
	CardLastFour   string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Domain errors
var (
	ErrInvalidAmount         = errors.New("order amount must be positive")
	ErrInvalidAddress        = errors.New("order needs a delivery address")
	ErrInvalidDeliveryMethod = errors.New("order needs a delivery method")
	ErrInvalidCard           = errors.New("order needs a payment card")
)

// NewOrder creates a placed order from a cart snapshot. The amount is the
// cart total plus the delivery price.
func NewOrder(cart *Cart, addressName string, delivery DeliveryMethod, cardLastFour string) (*Order, error) {
	if cart == nil || cart.IsEmpty() {
		return nil, ErrEmptyCart
	}
	if err := validateOrderInput(cart.Total(), addressName, delivery.Name, cardLastFour); err != nil {
		return nil, err
	}

	id := uuid.New().String()
	now := time.Now()

	lines := make([]OrderLine, 0, len(cart.Lines))
	for _, l := range cart.Lines {
		lines = append(lines, OrderLine{
			ProductName: l.Product.Name,
			UnitPrice:   l.Product.Price,
			Quantity:    l.Quantity,
		})
	}

	return &Order{
		ID:             id,
		Reference:      orderReference(id),
		Amount:         cart.Total() + delivery.Price,
		Status:         OrderStatusPlaced,
		Lines:          lines,
		AddressName:    addressName,
		DeliveryMethod: delivery.Name,
		DeliveryPrice:  delivery.Price,
		CardLastFour:   cardLastFour,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// orderReference derives the public reference used in the completion URL,
// shaped like the shop's "5267-f9cd5882f54c75a3" order ids
func orderReference(id string) string {
	hex := strings.ReplaceAll(id, "-", "")
	return fmt.Sprintf("%s-%s", hex[:4], hex[16:])
}

// validateOrderInput validates order creation parameters
func validateOrderInput(amount Price, addressName, deliveryMethod, cardLastFour string) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if addressName == "" {
		return ErrInvalidAddress
	}
	if deliveryMethod == "" {
		return ErrInvalidDeliveryMethod
	}
	if cardLastFour == "" {
		return ErrInvalidCard
	}
	return nil
}

// IsPlaced returns true if the order is placed
func (o *Order) IsPlaced() bool {
	return o.Status == OrderStatusPlaced
}

// GetFormattedAmount returns the amount formatted the way the shop prints prices
func (o *Order) GetFormattedAmount() string {
	return o.Amount.String() + "¤"
}
