package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/soar-qa/juiceshop-e2e/internal/models"
	"github.com/soar-qa/juiceshop-e2e/internal/page"
)

func TestHomeFlow_MaxItemsPerPage(t *testing.T) {
	ctx := context.Background()
	shop := newFakeShop()
	home := NewHomeFlow(shop, 10*time.Millisecond, fastSettle())

	if err := home.Open(ctx); err != nil {
		t.Fatalf("Open() unexpected error = %v", err)
	}
	home.DismissOverlays(ctx)

	total, err := home.MaxProductCount(ctx)
	if err != nil {
		t.Fatalf("MaxProductCount() unexpected error = %v", err)
	}
	if total != 35 {
		t.Errorf("Expected 35 products, got %d", total)
	}

	option, err := home.SelectMaxItemsPerPage(ctx)
	if err != nil {
		t.Fatalf("SelectMaxItemsPerPage() unexpected error = %v", err)
	}
	if option != "36" {
		t.Errorf("Expected last option 36, got %s", option)
	}
	if err := home.VerifyLastOptionSelected(ctx, option); err != nil {
		t.Errorf("VerifyLastOptionSelected() unexpected error = %v", err)
	}
	if err := home.VerifyAllItemsDisplayed(ctx, total); err != nil {
		t.Errorf("VerifyAllItemsDisplayed() unexpected error = %v", err)
	}
}

func TestHomeFlow_VerifyAllItemsDisplayed_TooFew(t *testing.T) {
	shop := newFakeShop()
	home := NewHomeFlow(shop, 10*time.Millisecond, fastSettle())

	err := home.VerifyAllItemsDisplayed(context.Background(), 35)
	if !errors.Is(err, models.ErrUnexpectedContent) {
		t.Fatalf("VerifyAllItemsDisplayed() error = %v, want ErrUnexpectedContent", err)
	}
}

func TestHomeFlow_InspectProduct(t *testing.T) {
	tests := []struct {
		name        string
		reviews     int
		popupSrc    string
		wantErr     error
		wantExpand  bool
		wantReviews int
	}{
		{name: "with reviews", reviews: 2, wantExpand: true, wantReviews: 2},
		{name: "without reviews", reviews: 0, wantExpand: false, wantReviews: 0},
		{name: "popup shows another image", reviews: 1, popupSrc: "assets/public/images/products/banana_juice.jpg", wantErr: models.ErrUnexpectedContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shop := newFakeShop()
			shop.reviews = tt.reviews
			shop.popupSrc = tt.popupSrc
			home := NewHomeFlow(shop, 10*time.Millisecond, fastSettle())

			reviews, err := home.InspectProduct(context.Background(), "Apple Juice (1000ml)")

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("InspectProduct() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("InspectProduct() unexpected error = %v", err)
			}
			if reviews != tt.wantReviews {
				t.Errorf("Expected %d reviews, got %d", tt.wantReviews, reviews)
			}

			expanded := false
			for _, c := range shop.clicks {
				if c.Element == page.ReviewsPanel {
					expanded = true
				}
			}
			if expanded != tt.wantExpand {
				t.Errorf("Expected reviews expanded = %v", tt.wantExpand)
			}
			if shop.popupOpen {
				t.Error("Expected popup to be closed")
			}
		})
	}
}
