//go:build integration
// +build integration

package repository

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/soar-qa/juiceshop-e2e/internal/models"
	"github.com/soar-qa/juiceshop-e2e/internal/repository/testutil"
)

func newTestOrder(reference string, lines ...models.OrderLine) *models.Order {
	var amount models.Price
	for _, l := range lines {
		amount += l.UnitPrice.Times(l.Quantity)
	}
	return &models.Order{
		ID:             uuid.New().String(),
		Reference:      reference,
		Amount:         amount + 99,
		Status:         models.OrderStatusPlaced,
		Lines:          lines,
		AddressName:    "Jim",
		DeliveryMethod: "One Day Delivery",
		DeliveryPrice:  99,
		CardLastFour:   "1111",
	}
}

func TestOrderRepository_CreateOrder_Integration(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	defer testDB.Teardown(t)

	repo := NewOrderRepositoryWithDB(testDB.DB)

	tests := []struct {
		name    string
		order   *models.Order
		wantErr bool
	}{
		{
			name: "single line",
			order: newTestOrder("1a2b-0000000000000001",
				models.OrderLine{ProductName: "Apple Pomace", UnitPrice: 89, Quantity: 1}),
		},
		{
			name: "several lines keep their order",
			order: newTestOrder("1a2b-0000000000000002",
				models.OrderLine{ProductName: "Carrot Juice (1000ml)", UnitPrice: 299, Quantity: 2},
				models.OrderLine{ProductName: "Apple Pomace", UnitPrice: 89, Quantity: 1},
				models.OrderLine{ProductName: "Green Smoothie", UnitPrice: 199, Quantity: 3}),
		},
		{
			name: "zero quantity is rejected",
			order: newTestOrder("1a2b-0000000000000003",
				models.OrderLine{ProductName: "Apple Pomace", UnitPrice: 89, Quantity: 0}),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.CreateOrder(tt.order)

			if (err != nil) != tt.wantErr {
				t.Errorf("CreateOrder() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if tt.wantErr {
				// the transaction must not leave a header row behind
				if _, err := repo.GetOrderByReference(tt.order.Reference); !errors.Is(err, ErrOrderNotFound) {
					t.Errorf("Expected no order after failed create, got err = %v", err)
				}
				return
			}

			if tt.order.CreatedAt.IsZero() {
				t.Error("CreatedAt should be set")
			}

			retrieved, err := repo.GetOrderByReference(tt.order.Reference)
			if err != nil {
				t.Fatalf("Failed to retrieve created order: %v", err)
			}
			if retrieved.ID != tt.order.ID {
				t.Errorf("ID mismatch: got %v, want %v", retrieved.ID, tt.order.ID)
			}
			if retrieved.Amount != tt.order.Amount {
				t.Errorf("Amount mismatch: got %v, want %v", retrieved.Amount, tt.order.Amount)
			}
			if retrieved.DeliveryPrice != tt.order.DeliveryPrice {
				t.Errorf("DeliveryPrice mismatch: got %v, want %v", retrieved.DeliveryPrice, tt.order.DeliveryPrice)
			}
			if len(retrieved.Lines) != len(tt.order.Lines) {
				t.Fatalf("Expected %d lines, got %d", len(tt.order.Lines), len(retrieved.Lines))
			}
			for i, line := range tt.order.Lines {
				if retrieved.Lines[i] != line {
					t.Errorf("Line %d mismatch: got %+v, want %+v", i, retrieved.Lines[i], line)
				}
			}
		})
	}
}

func TestOrderRepository_CreateOrder_DuplicateReference_Integration(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	defer testDB.Teardown(t)

	repo := NewOrderRepositoryWithDB(testDB.DB)
	line := models.OrderLine{ProductName: "Apple Pomace", UnitPrice: 89, Quantity: 1}

	if err := repo.CreateOrder(newTestOrder("dup0-0000000000000001", line)); err != nil {
		t.Fatalf("Failed to create first order: %v", err)
	}

	if err := repo.CreateOrder(newTestOrder("dup0-0000000000000001", line)); err == nil {
		t.Error("Expected error when creating order with duplicate reference, got nil")
	}
}

func TestOrderRepository_GetOrderByReference_NotFound_Integration(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	defer testDB.Teardown(t)

	repo := NewOrderRepositoryWithDB(testDB.DB)

	if _, err := repo.GetOrderByReference("none-0000000000000000"); !errors.Is(err, ErrOrderNotFound) {
		t.Errorf("GetOrderByReference() error = %v, want ErrOrderNotFound", err)
	}
}

func TestOrderRepository_ConcurrentCreates_Integration(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	defer testDB.Teardown(t)

	repo := NewOrderRepositoryWithDB(testDB.DB)

	const numOrders = 10
	errChan := make(chan error, numOrders)

	for i := 0; i < numOrders; i++ {
		go func() {
			errChan <- repo.CreateOrder(newTestOrder(uuid.New().String()[:21],
				models.OrderLine{ProductName: "Apple Pomace", UnitPrice: 89, Quantity: 1}))
		}()
	}

	for i := 0; i < numOrders; i++ {
		if err := <-errChan; err != nil {
			t.Errorf("Concurrent create failed: %v", err)
		}
	}
}

func TestOrderRepository_SchemaIsolation_Integration(t *testing.T) {
	testDB1 := testutil.SetupTestDatabase(t)
	defer testDB1.Teardown(t)

	testDB2 := testutil.SetupTestDatabase(t)
	defer testDB2.Teardown(t)

	repo1 := NewOrderRepositoryWithDB(testDB1.DB)
	repo2 := NewOrderRepositoryWithDB(testDB2.DB)

	order := newTestOrder("iso0-0000000000000001",
		models.OrderLine{ProductName: "Apple Pomace", UnitPrice: 89, Quantity: 1})
	if err := repo1.CreateOrder(order); err != nil {
		t.Fatalf("Failed to create order in first database: %v", err)
	}

	if _, err := repo1.GetOrderByReference(order.Reference); err != nil {
		t.Errorf("Order should exist in first database: %v", err)
	}
	if _, err := repo2.GetOrderByReference(order.Reference); err == nil {
		t.Error("Order should not exist in second database (different schema)")
	}
}
