package services

import (
	"errors"
	"sync"
	"testing"

	"github.com/soar-qa/juiceshop-e2e/internal/models"
)

func newTestStorefront() (StorefrontService, *[]*models.Order) {
	var stored []*models.Order
	repo := &MockOrderRepository{
		CreateOrderFunc: func(order *models.Order) error {
			stored = append(stored, order)
			return nil
		},
	}
	return NewStorefrontService(DefaultCatalog(), NewOrderService(repo)), &stored
}

func TestDefaultCatalog_UniqueProducts(t *testing.T) {
	ids := map[string]bool{}
	names := map[string]bool{}
	for _, p := range DefaultCatalog() {
		if ids[p.ID] || names[p.Name] {
			t.Errorf("Duplicate product %s %q", p.ID, p.Name)
		}
		ids[p.ID] = true
		names[p.Name] = true
		if p.Price <= 0 {
			t.Errorf("Product %q has no price", p.Name)
		}
	}
}

func TestStorefrontService_Basket(t *testing.T) {
	shop, _ := newTestStorefront()

	if _, err := shop.AddToBasket("s1", "8"); err != nil {
		t.Fatalf("AddToBasket() unexpected error = %v", err)
	}
	if _, err := shop.AddToBasket("s1", "7"); err != nil {
		t.Fatalf("AddToBasket() unexpected error = %v", err)
	}
	if err := shop.IncrementLine("s1", "8"); err != nil {
		t.Fatalf("IncrementLine() unexpected error = %v", err)
	}

	sess := shop.Session("s1")
	if sess.Cart.Count() != 2 {
		t.Errorf("Expected 2 basket lines, got %d", sess.Cart.Count())
	}
	if got := sess.Cart.Total(); got != 89*2+299 {
		t.Errorf("Expected total 4.77, got %s", got)
	}

	if err := shop.RemoveLine("s1", "8"); err != nil {
		t.Fatalf("RemoveLine() unexpected error = %v", err)
	}
	sess = shop.Session("s1")
	if got := sess.Cart.Total(); got != 299 {
		t.Errorf("Expected total 2.99 after delete, got %s", got)
	}

	if other := shop.Session("s2"); !other.Cart.IsEmpty() {
		t.Error("Expected sessions to have separate baskets")
	}
}

func TestStorefrontService_SessionIsSnapshot(t *testing.T) {
	shop, _ := newTestStorefront()
	shop.AddToBasket("s1", "1")

	sess := shop.Session("s1")
	sess.Cart.Lines[0].Quantity = 10

	if got := shop.Session("s1").Cart.Lines[0].Quantity; got != 1 {
		t.Errorf("Expected stored quantity 1, got %d", got)
	}
}

func TestStorefrontService_Errors(t *testing.T) {
	shop, _ := newTestStorefront()

	tests := []struct {
		name    string
		call    func() error
		wantErr error
	}{
		{
			name: "unknown product",
			call: func() error {
				_, err := shop.AddToBasket("s1", "999")
				return err
			},
			wantErr: models.ErrUnknownProduct,
		},
		{
			name:    "increment missing line",
			call:    func() error { return shop.IncrementLine("s1", "1") },
			wantErr: models.ErrLineNotFound,
		},
		{
			name:    "unknown address",
			call:    func() error { return shop.SelectAddress("s1", "nope") },
			wantErr: models.ErrUnknownAddress,
		},
		{
			name:    "unknown delivery",
			call:    func() error { return shop.SelectDelivery("s1", "Teleport") },
			wantErr: models.ErrNoDelivery,
		},
		{
			name:    "unknown card",
			call:    func() error { return shop.SelectCard("s1", "nope") },
			wantErr: models.ErrUnknownCard,
		},
		{
			name: "order without address",
			call: func() error {
				_, err := shop.PlaceOrder("s1")
				return err
			},
			wantErr: models.ErrUnknownAddress,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.call(); !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestStorefrontService_PlaceOrder(t *testing.T) {
	shop, stored := newTestStorefront()

	shop.AddToBasket("s1", "8")
	shop.AddToBasket("s1", "7")
	address, err := shop.AddAddress("s1", models.Address{Name: "Jim", Country: "Estonia"})
	if err != nil {
		t.Fatalf("AddAddress() unexpected error = %v", err)
	}
	card, err := shop.AddCard("s1", models.Card{HolderName: "Jim", Number: "4111111111111111"})
	if err != nil {
		t.Fatalf("AddCard() unexpected error = %v", err)
	}
	for _, step := range []error{
		shop.SelectAddress("s1", address.ID),
		shop.SelectDelivery("s1", "One Day Delivery"),
		shop.SelectCard("s1", card.ID),
	} {
		if step != nil {
			t.Fatalf("checkout selection unexpected error = %v", step)
		}
	}

	order, err := shop.PlaceOrder("s1")
	if err != nil {
		t.Fatalf("PlaceOrder() unexpected error = %v", err)
	}
	if order.Amount != 89+299+99 {
		t.Errorf("Expected amount 4.87, got %s", order.Amount)
	}
	if order.CardLastFour != "1111" {
		t.Errorf("Expected card 1111, got %s", order.CardLastFour)
	}
	if len(*stored) != 1 {
		t.Errorf("Expected 1 stored order, got %d", len(*stored))
	}

	sess := shop.Session("s1")
	if !sess.Cart.IsEmpty() || sess.AddressID != "" || sess.CardID != "" {
		t.Errorf("Expected basket and selections to be reset, got %+v", sess)
	}
	if len(sess.Addresses) != 1 || len(sess.Cards) != 1 {
		t.Error("Expected saved addresses and cards to be kept")
	}
}

func TestStorefrontService_Accounts(t *testing.T) {
	account := models.Account{
		Email:            "jim@juice-sh.op",
		SecurityQuestion: "Company you first work for as an adult?",
		SecurityAnswer:   "Soar Inc",
	}

	tests := []struct {
		name     string
		account  models.Account
		password string
		repeat   string
		wantErr  error
	}{
		{name: "valid", account: account, password: "Secret1!", repeat: "Secret1!"},
		{name: "different passwords", account: account, password: "Secret1!", repeat: "Secret2!", wantErr: models.ErrPasswordsDifferent},
		{name: "missing answer", account: models.Account{Email: "a@b.c", SecurityQuestion: "q"}, password: "x", repeat: "x", wantErr: models.ErrIncompleteRegistration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shop, _ := newTestStorefront()
			err := shop.Register(tt.account, tt.password, tt.repeat)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Register() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Register() unexpected error = %v", err)
			}

			if err := shop.Register(tt.account, tt.password, tt.repeat); !errors.Is(err, models.ErrAccountExists) {
				t.Errorf("second Register() error = %v, want ErrAccountExists", err)
			}
			if err := shop.Login("s1", tt.account.Email, "wrong"); !errors.Is(err, models.ErrInvalidLogin) {
				t.Errorf("Login() with wrong password error = %v, want ErrInvalidLogin", err)
			}
			if err := shop.Login("s1", tt.account.Email, tt.password); err != nil {
				t.Fatalf("Login() unexpected error = %v", err)
			}
			if shop.Session("s1").Email != tt.account.Email {
				t.Error("Expected session to be signed in")
			}
			shop.Logout("s1")
			if shop.Session("s1").Email != "" {
				t.Error("Expected session to be signed out")
			}
		})
	}
}

func TestStorefrontService_ConcurrentSessions(t *testing.T) {
	shop, _ := newTestStorefront()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			shop.AddToBasket("shared", "1")
		}()
	}
	wg.Wait()

	if got := shop.Session("shared").Cart.Lines[0].Quantity; got != 20 {
		t.Errorf("Expected quantity 20, got %d", got)
	}
}
