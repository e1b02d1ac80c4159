package services

import (
	"context"
	"fmt"
	"log"
	"regexp"

	"github.com/soar-qa/juiceshop-e2e/internal/models"
	"github.com/soar-qa/juiceshop-e2e/internal/page"
)

var orderIDPattern = regexp.MustCompile(`/order-completion/([^/?#]+)`)

// CheckoutReconciler drives the purchase funnel after the basket and checks
// the order summary total against the basket total
type CheckoutReconciler struct {
	view      ViewPort
	tolerance models.Price
}

// NewCheckoutReconciler creates a reconciler that allows the summary total to
// differ from the basket total by at most tolerance
func NewCheckoutReconciler(view ViewPort, tolerance models.Price) *CheckoutReconciler {
	return &CheckoutReconciler{
		view:      view,
		tolerance: tolerance,
	}
}

// Checkout runs the whole funnel and returns the order id and the reconciled
// total
func (c *CheckoutReconciler) Checkout(ctx context.Context, total models.Price, details models.CheckoutDetails) (*models.CheckoutResult, error) {
	steps := []struct {
		name string
		run  func(context.Context) error
	}{
		{"proceed to checkout", c.ProceedToCheckout},
		{"add address", func(ctx context.Context) error { return c.AddAddress(ctx, details.Address) }},
		{"select address", func(ctx context.Context) error { return c.SelectAddress(ctx, details.Address.Name) }},
		{"select delivery", func(ctx context.Context) error { return c.SelectDelivery(ctx, details.DeliveryMethod) }},
		{"verify wallet", c.VerifyWalletBalance},
		{"add card", func(ctx context.Context) error { return c.AddCard(ctx, details.Card) }},
		{"select card", func(ctx context.Context) error { return c.SelectCard(ctx, details.Card) }},
		{"verify summary", func(ctx context.Context) error { return c.VerifySummaryTotal(ctx, total) }},
	}
	for _, step := range steps {
		if err := step.run(ctx); err != nil {
			return nil, fmt.Errorf("checkout step %q: %w", step.name, err)
		}
	}

	url, err := c.CompletePurchase(ctx)
	if err != nil {
		return nil, fmt.Errorf("checkout step %q: %w", "complete purchase", err)
	}

	orderID, _ := ExtractOrderID(url)
	return &models.CheckoutResult{OrderID: orderID, Total: total}, nil
}

// ProceedToCheckout leaves the basket for the address selection
func (c *CheckoutReconciler) ProceedToCheckout(ctx context.Context) error {
	if err := c.view.Click(ctx, page.T(page.CheckoutButton)); err != nil {
		return err
	}
	return c.view.WaitFor(ctx, page.T(page.AddAddress), page.Visible)
}

// AddAddress fills and submits the new address form
func (c *CheckoutReconciler) AddAddress(ctx context.Context, addr models.Address) error {
	if err := c.view.Click(ctx, page.T(page.AddAddress)); err != nil {
		return err
	}

	fields := []struct {
		element page.Element
		value   string
	}{
		{page.AddressCountry, addr.Country},
		{page.AddressName, addr.Name},
		{page.AddressMobile, addr.Mobile},
		{page.AddressZIP, addr.ZIPCode},
		{page.AddressStreet, addr.Street},
		{page.AddressCity, addr.City},
		{page.AddressState, addr.State},
	}
	for _, f := range fields {
		if err := c.view.Fill(ctx, page.T(f.element), f.value); err != nil {
			return fmt.Errorf("failed to fill %s: %w", f.element, err)
		}
	}

	if err := c.view.Click(ctx, page.T(page.FormSubmit)); err != nil {
		return err
	}
	return c.view.WaitFor(ctx, page.Of(page.AddressRadio, addr.Name), page.Visible)
}

// SelectAddress picks the address row of name and continues to delivery
func (c *CheckoutReconciler) SelectAddress(ctx context.Context, name string) error {
	if err := c.view.Click(ctx, page.Of(page.AddressRadio, name)); err != nil {
		return err
	}
	if err := c.view.Click(ctx, page.T(page.AddressContinue)); err != nil {
		return err
	}
	return c.view.WaitFor(ctx, page.T(page.DeliveryContinue), page.Visible)
}

// SelectDelivery picks the delivery method row and continues to payment
func (c *CheckoutReconciler) SelectDelivery(ctx context.Context, method string) error {
	if err := c.view.Click(ctx, page.Of(page.DeliveryRadio, method)); err != nil {
		return err
	}
	if err := c.view.Click(ctx, page.T(page.DeliveryContinue)); err != nil {
		return err
	}
	return c.view.WaitFor(ctx, page.T(page.WalletBalance), page.Visible)
}

// VerifyWalletBalance requires an empty wallet so that a card is needed
func (c *CheckoutReconciler) VerifyWalletBalance(ctx context.Context) error {
	text, err := c.view.Text(ctx, page.T(page.WalletBalance))
	if err != nil {
		return err
	}
	balance, err := models.ParsePrice("wallet balance", text)
	if err != nil {
		return err
	}
	if balance != 0 {
		return fmt.Errorf("%w: wallet balance expected 0.00, displayed %s", models.ErrUnexpectedContent, balance)
	}
	return nil
}

// AddCard fills and submits the new card form
func (c *CheckoutReconciler) AddCard(ctx context.Context, card models.Card) error {
	if err := c.view.Click(ctx, page.T(page.AddCardPanel)); err != nil {
		return err
	}
	if err := c.view.Fill(ctx, page.T(page.CardName), card.HolderName); err != nil {
		return err
	}
	if err := c.view.Fill(ctx, page.T(page.CardNumber), card.Number); err != nil {
		return err
	}
	if err := c.view.Select(ctx, page.T(page.CardExpiryMonth), card.ExpiryMonth); err != nil {
		return err
	}
	if err := c.view.Select(ctx, page.T(page.CardExpiryYear), card.ExpiryYear); err != nil {
		return err
	}
	if err := c.view.Click(ctx, page.T(page.FormSubmit)); err != nil {
		return err
	}
	return c.view.WaitFor(ctx, page.Of(page.CardRadio, card.LastFour()), page.Visible)
}

// SelectCard picks the card row by its last four digits and continues to the
// order summary
func (c *CheckoutReconciler) SelectCard(ctx context.Context, card models.Card) error {
	if err := c.view.Click(ctx, page.Of(page.CardRadio, card.LastFour())); err != nil {
		return err
	}
	if err := c.view.Click(ctx, page.T(page.PaymentContinue)); err != nil {
		return err
	}
	return c.view.WaitFor(ctx, page.T(page.SummaryTotal), page.Visible)
}

// VerifySummaryTotal compares the order summary total with the basket total
func (c *CheckoutReconciler) VerifySummaryTotal(ctx context.Context, total models.Price) error {
	text, err := c.view.Text(ctx, page.T(page.SummaryTotal))
	if err != nil {
		return err
	}
	summary, err := models.ParsePrice("order summary total", text)
	if err != nil {
		return err
	}
	if !summary.Within(total, c.tolerance) {
		return fmt.Errorf("%w: order summary expected %s, displayed %s", models.ErrTotalMismatch, total, summary)
	}
	log.Printf("Order summary total %s matches basket", summary)
	return nil
}

// CompletePurchase places the order, waits for the thank-you message and the
// completion page, and returns the completion URL
func (c *CheckoutReconciler) CompletePurchase(ctx context.Context) (string, error) {
	if err := c.view.Click(ctx, page.T(page.PlaceOrder)); err != nil {
		return "", err
	}
	if err := c.view.WaitFor(ctx, page.T(page.ThankYou), page.Visible); err != nil {
		return "", err
	}
	if err := c.view.WaitForURL(ctx, page.OrderCompletionURL); err != nil {
		return "", err
	}
	return c.view.URL(ctx)
}

// ExtractOrderID returns the id segment of an order completion URL. A URL
// without one is logged and reported as absent.
func ExtractOrderID(url string) (string, bool) {
	match := orderIDPattern.FindStringSubmatch(url)
	if match == nil {
		log.Printf("Order ID not found in URL %s", url)
		return "", false
	}
	return match[1], true
}
