package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/soar-qa/juiceshop-e2e/internal/models"
	"github.com/soar-qa/juiceshop-e2e/internal/page"
)

// BasketWorkflowConfig tunes the reconciliation checks
type BasketWorkflowConfig struct {
	Tolerance models.TolerancePolicy
	Settle    SettleOptions
}

// DefaultBasketWorkflowConfig returns the default tolerance and settle bounds
func DefaultBasketWorkflowConfig() BasketWorkflowConfig {
	return BasketWorkflowConfig{
		Tolerance: models.DefaultTolerancePolicy(),
		Settle:    DefaultSettleOptions(),
	}
}

// BasketWorkflow drives one basket scenario: it adds products while recording
// their catalog prices, verifies the basket page against the recorded prices,
// and re-checks the displayed total after every quantity change. A workflow
// belongs to a single scenario and is not safe for concurrent use.
type BasketWorkflow struct {
	view   ViewPort
	config BasketWorkflowConfig

	ledger    *models.PriceLedger
	state     models.WorkflowState
	total     models.Price
	added     int
	lastAdded string
}

// NewBasketWorkflow creates a workflow in the empty state
func NewBasketWorkflow(view ViewPort, cfg BasketWorkflowConfig) *BasketWorkflow {
	return &BasketWorkflow{
		view:   view,
		config: cfg,
		ledger: models.NewPriceLedger(),
		state:  models.WorkflowEmpty,
	}
}

// State returns the current workflow state
func (b *BasketWorkflow) State() models.WorkflowState {
	return b.state
}

// Total returns the last verified basket total
func (b *BasketWorkflow) Total() models.Price {
	return b.total
}

// Ledger returns the prices recorded so far
func (b *BasketWorkflow) Ledger() *models.PriceLedger {
	return b.ledger
}

func (b *BasketWorkflow) advance(next models.WorkflowState) error {
	state, err := b.state.Transition(next)
	if err != nil {
		return err
	}
	b.state = state
	return nil
}

func (b *BasketWorkflow) expect(state models.WorkflowState) error {
	if b.state != state {
		return fmt.Errorf("%w: expected %s, workflow is %s", models.ErrInvalidTransition, state, b.state)
	}
	return nil
}

// AddProduct records the catalog price of name, adds it to the basket and
// checks that the basket badge shows expectedCount.
func (b *BasketWorkflow) AddProduct(ctx context.Context, name string, expectedCount int) error {
	if err := b.advance(models.WorkflowPopulating); err != nil {
		return err
	}

	priceText, err := b.view.Text(ctx, page.Of(page.ProductPrice, name))
	if err != nil {
		return fmt.Errorf("failed to read catalog price of %s: %w", name, err)
	}
	price, err := models.ParsePrice(name, priceText)
	if err != nil {
		return err
	}
	b.ledger.Record(name, price)

	if err := b.view.Click(ctx, page.Of(page.AddToBasket, name)); err != nil {
		return fmt.Errorf("failed to add %s to basket: %w", name, err)
	}
	if err := b.view.WaitFor(ctx, page.Of(page.BasketAck, name), page.Visible); err != nil {
		return fmt.Errorf("no basket acknowledgment for %s: %w", name, err)
	}
	b.added++
	b.lastAdded = name

	badge, err := WaitUntil(ctx, "basket count", b.config.Settle, b.readText(page.T(page.BasketCount)), func(text string) bool {
		count, err := models.ParseQuantity("basket count", text)
		return err == nil && count == expectedCount
	})
	if err != nil {
		if badge == "" {
			return fmt.Errorf("failed to read basket count after adding %s: %w", name, err)
		}
		count, parseErr := models.ParseQuantity("basket count", badge)
		if parseErr != nil {
			return parseErr
		}
		return fmt.Errorf("%w: basket count after adding %s: expected %d, got %d", models.ErrQuantityMismatch, name, expectedCount, count)
	}

	log.Printf("Added %s at %s, basket count %d", name, price, expectedCount)
	return nil
}

// AddProducts adds each product in order, expecting the badge to count up
// from the number of products already added
func (b *BasketWorkflow) AddProducts(ctx context.Context, names []string) error {
	for _, name := range names {
		if err := b.AddProduct(ctx, name, b.added+1); err != nil {
			return err
		}
	}
	return nil
}

// GoToBasket waits for the last acknowledgment to disappear, opens the basket
// and waits for the basket URL
func (b *BasketWorkflow) GoToBasket(ctx context.Context) error {
	if err := b.advance(models.WorkflowAtBasketView); err != nil {
		return err
	}

	if b.lastAdded != "" {
		if err := b.view.WaitFor(ctx, page.Of(page.BasketAck, b.lastAdded), page.Hidden); err != nil {
			return fmt.Errorf("acknowledgment for %s did not disappear: %w", b.lastAdded, err)
		}
	}
	if err := b.view.Click(ctx, page.T(page.BasketNav)); err != nil {
		return fmt.Errorf("failed to open basket: %w", err)
	}
	if err := b.view.WaitForURL(ctx, page.BasketURL); err != nil {
		return fmt.Errorf("basket page did not load: %w", err)
	}
	return nil
}

// VerifyProductsInBasket checks that every named product has a visible row
func (b *BasketWorkflow) VerifyProductsInBasket(ctx context.Context, names []string) error {
	if err := b.expect(models.WorkflowAtBasketView); err != nil {
		return err
	}

	for _, name := range names {
		if err := b.view.WaitFor(ctx, page.Of(page.BasketRow, name), page.Visible); err != nil {
			return fmt.Errorf("no basket row for %s: %w", name, err)
		}
	}
	return nil
}

// VerifyPricesInBasket checks every rendered row against the ledger. A row
// for a product that was never added fails with models.ErrMissingLedgerEntry.
func (b *BasketWorkflow) VerifyPricesInBasket(ctx context.Context) error {
	if err := b.expect(models.WorkflowAtBasketView); err != nil {
		return err
	}

	names, err := b.view.Texts(ctx, page.T(page.BasketRowName))
	if err != nil {
		return fmt.Errorf("failed to read basket rows: %w", err)
	}
	prices, err := b.view.Texts(ctx, page.T(page.BasketRowPrice))
	if err != nil {
		return fmt.Errorf("failed to read basket prices: %w", err)
	}
	if len(names) != len(prices) {
		return fmt.Errorf("basket shows %d products but %d prices", len(names), len(prices))
	}

	for i, name := range names {
		want, err := b.ledger.Lookup(name)
		if err != nil {
			return fmt.Errorf("basket row %d: %w", i+1, err)
		}
		got, err := models.ParsePrice(name, prices[i])
		if err != nil {
			return err
		}
		if got != want {
			return fmt.Errorf("%w: %s expected %s, basket shows %s", models.ErrPriceMismatch, name, want, got)
		}
	}
	return nil
}

// VerifyTotal checks the displayed grand total against the ledger sum and
// returns it
func (b *BasketWorkflow) VerifyTotal(ctx context.Context) (models.Price, error) {
	if err := b.expect(models.WorkflowAtBasketView); err != nil {
		return 0, err
	}

	want := b.ledger.Sum()
	got, err := b.settledTotal(ctx, "basket total", func(p models.Price) bool { return p == want })
	if err != nil {
		return 0, err
	}
	if got != want {
		return got, fmt.Errorf("%w: basket total expected %s, displayed %s", models.ErrTotalMismatch, want, got)
	}

	b.total = got
	return got, nil
}

// Verify runs the presence, price and total checks in order and moves the
// workflow to verified
func (b *BasketWorkflow) Verify(ctx context.Context, names []string) (models.Price, error) {
	if err := b.VerifyProductsInBasket(ctx, names); err != nil {
		return 0, err
	}
	if err := b.VerifyPricesInBasket(ctx); err != nil {
		return 0, err
	}
	total, err := b.VerifyTotal(ctx)
	if err != nil {
		return 0, err
	}
	if err := b.advance(models.WorkflowVerified); err != nil {
		return 0, err
	}

	log.Printf("Basket verified: %s, total %s", b.ledger, total)
	return total, nil
}

// Increment raises the quantity of name by one and checks that the displayed
// total grew by exactly its unit price from previous. It returns the new
// displayed total.
func (b *BasketWorkflow) Increment(ctx context.Context, name string, previous models.Price) (models.Price, error) {
	if err := b.advance(models.WorkflowMutating); err != nil {
		return 0, err
	}

	unit, err := b.ledger.Lookup(name)
	if err != nil {
		return 0, err
	}
	quantity := page.Of(page.RowQuantity, name)
	qtyText, err := b.view.Text(ctx, quantity)
	if err != nil {
		return 0, fmt.Errorf("failed to read quantity of %s: %w", name, err)
	}
	before, err := models.ParseQuantity(name, qtyText)
	if err != nil {
		return 0, err
	}

	if err := b.view.Click(ctx, page.Of(page.RowIncrement, name)); err != nil {
		return 0, fmt.Errorf("failed to increment %s: %w", name, err)
	}

	afterText, err := WaitForChange(ctx, "quantity of "+name, qtyText, b.config.Settle, b.readText(quantity))
	if err != nil {
		if afterText == "" || !errors.Is(err, models.ErrPreconditionTimeout) {
			return 0, err
		}
		stuck, parseErr := models.ParseQuantity(name, afterText)
		if parseErr != nil {
			return 0, parseErr
		}
		return 0, fmt.Errorf("%w: %s expected quantity %d, got %d", models.ErrQuantityMismatch, name, before+1, stuck)
	}
	after, err := models.ParseQuantity(name, afterText)
	if err != nil {
		return 0, err
	}
	if after != before+1 {
		return 0, fmt.Errorf("%w: %s expected quantity %d, got %d", models.ErrQuantityMismatch, name, before+1, after)
	}

	want := previous + unit
	got, err := b.settledTotal(ctx, "basket total after incrementing "+name, func(p models.Price) bool {
		return p.Within(want, b.config.Tolerance.Increment)
	})
	if err != nil {
		return 0, err
	}
	if !got.Within(want, b.config.Tolerance.Increment) {
		return got, fmt.Errorf("%w: after incrementing %s expected %s, displayed %s", models.ErrTotalMismatch, name, want, got)
	}

	log.Printf("Incremented %s to %d, total %s", name, after, got)
	b.total = got
	return got, nil
}

// Delete removes the row of name and checks that the displayed total dropped
// by quantity times unit price from previous. It returns the new displayed
// total.
func (b *BasketWorkflow) Delete(ctx context.Context, name string, previous models.Price) (models.Price, error) {
	if err := b.advance(models.WorkflowMutating); err != nil {
		return 0, err
	}

	unit, err := b.ledger.Lookup(name)
	if err != nil {
		return 0, err
	}
	qtyText, err := b.view.Text(ctx, page.Of(page.RowQuantity, name))
	if err != nil {
		return 0, fmt.Errorf("failed to read quantity of %s: %w", name, err)
	}
	qty, err := models.ParseQuantity(name, qtyText)
	if err != nil {
		return 0, err
	}

	if err := b.view.Click(ctx, page.Of(page.RowDelete, name)); err != nil {
		return 0, fmt.Errorf("failed to delete %s: %w", name, err)
	}
	if err := b.view.WaitFor(ctx, page.Of(page.BasketRow, name), page.Hidden); err != nil {
		return 0, fmt.Errorf("row for %s was not removed: %w", name, err)
	}

	want := previous - unit.Times(qty)
	got, err := b.settledTotal(ctx, "basket total after deleting "+name, func(p models.Price) bool {
		return p.Within(want, b.config.Tolerance.Delete)
	})
	if err != nil {
		return 0, err
	}
	if !got.Within(want, b.config.Tolerance.Delete) {
		return got, fmt.Errorf("%w: after deleting %d x %s expected %s, displayed %s", models.ErrTotalMismatch, qty, name, want, got)
	}

	log.Printf("Deleted %s (quantity %d), total %s", name, qty, got)
	b.total = got
	return got, nil
}

// BeginCheckout hands the last verified total over to checkout. No further
// basket operations are allowed afterwards.
func (b *BasketWorkflow) BeginCheckout() (models.Price, error) {
	if err := b.advance(models.WorkflowCheckout); err != nil {
		return 0, err
	}
	return b.total, nil
}

func (b *BasketWorkflow) readText(target page.Target) ReadFunc {
	return func(ctx context.Context) (string, error) {
		return b.view.Text(ctx, target)
	}
}

// settledTotal reads the grand total until ok accepts it or the settle
// window ends. A total that never satisfies ok is returned without error so
// the caller can report the mismatch; only an unreadable or unparseable
// total is an error.
func (b *BasketWorkflow) settledTotal(ctx context.Context, what string, ok func(models.Price) bool) (models.Price, error) {
	text, err := WaitUntil(ctx, what, b.config.Settle, b.readText(page.T(page.BasketTotal)), func(text string) bool {
		p, err := models.ParsePrice(what, text)
		return err == nil && ok(p)
	})
	if err != nil && text == "" {
		return 0, fmt.Errorf("failed to read %s: %w", what, err)
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return 0, ctxErr
	}
	return models.ParsePrice(what, text)
}
