package repository

import (
	"errors"
	"testing"

	"github.com/soar-qa/juiceshop-e2e/internal/models"
)

func TestMemoryOrderRepository(t *testing.T) {
	repo := NewMemoryOrderRepository()

	order := &models.Order{
		ID:        "6a0c5267-0000-0000-f9cd-5882f54c75a3",
		Reference: "5267-f9cd5882f54c75a3",
		Amount:    547,
		Status:    models.OrderStatusPlaced,
		Lines: []models.OrderLine{
			{ProductName: "Apple Pomace", UnitPrice: 89, Quantity: 2},
		},
	}

	if err := repo.CreateOrder(order); err != nil {
		t.Fatalf("CreateOrder() unexpected error = %v", err)
	}
	if order.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
	if err := repo.CreateOrder(order); err == nil {
		t.Error("Expected duplicate reference to be rejected")
	}

	got, err := repo.GetOrderByReference(order.Reference)
	if err != nil {
		t.Fatalf("GetOrderByReference() unexpected error = %v", err)
	}
	if got.Amount != order.Amount || len(got.Lines) != 1 {
		t.Errorf("Retrieved order mismatch: %+v", got)
	}

	got.Lines[0].Quantity = 9
	again, _ := repo.GetOrderByReference(order.Reference)
	if again.Lines[0].Quantity != 2 {
		t.Error("Expected stored lines to be isolated from callers")
	}

	if _, err := repo.GetOrderByReference("missing"); !errors.Is(err, ErrOrderNotFound) {
		t.Errorf("GetOrderByReference() error = %v, want ErrOrderNotFound", err)
	}
}
