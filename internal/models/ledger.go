package models

import (
	"fmt"
	"strings"
)

// PriceLedger records the unit price of every product added to the basket.
// It is the ground truth for later basket and checkout verification and
// belongs to a single scenario.
type PriceLedger struct {
	prices map[string]Price
	order  []string
}

// NewPriceLedger creates an empty ledger
func NewPriceLedger() *PriceLedger {
	return &PriceLedger{
		prices: make(map[string]Price),
	}
}

// Record inserts or overwrites the unit price for a product
func (l *PriceLedger) Record(productName string, unitPrice Price) {
	key := strings.TrimSpace(productName)
	if _, ok := l.prices[key]; !ok {
		l.order = append(l.order, key)
	}
	l.prices[key] = unitPrice
}

// Lookup returns the recorded unit price. A product that was never recorded
// is an error, never a zero price.
func (l *PriceLedger) Lookup(productName string) (Price, error) {
	key := strings.TrimSpace(productName)
	price, ok := l.prices[key]
	if !ok {
		return 0, fmt.Errorf("%w: product %q was never added to the basket", ErrMissingLedgerEntry, key)
	}
	return price, nil
}

// Sum returns the total of all recorded prices, one unit each
func (l *PriceLedger) Sum() Price {
	var total Price
	for _, name := range l.order {
		total += l.prices[name]
	}
	return total
}

// Len returns the number of recorded products
func (l *PriceLedger) Len() int {
	return len(l.order)
}

// Names returns recorded product names in the order they were first recorded
func (l *PriceLedger) Names() []string {
	names := make([]string, len(l.order))
	copy(names, l.order)
	return names
}

// String renders the ledger for log output
func (l *PriceLedger) String() string {
	parts := make([]string, 0, len(l.order))
	for _, name := range l.order {
		parts = append(parts, fmt.Sprintf("%s=%s", name, l.prices[name]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
