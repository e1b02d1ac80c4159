package models

import (
	"errors"
	"fmt"
)

// Reconciliation errors. All of them abort the current scenario.
var (
	ErrMissingLedgerEntry  = errors.New("missing ledger entry")
	ErrPriceParse          = errors.New("price parse error")
	ErrQuantityMismatch    = errors.New("quantity mismatch")
	ErrTotalMismatch       = errors.New("total mismatch")
	ErrPreconditionTimeout = errors.New("precondition timeout")
	ErrInvalidTransition   = errors.New("invalid workflow transition")

	// ErrUnexpectedContent is returned when a page shows something other than
	// what the step expects. It is not a reconciliation failure.
	ErrUnexpectedContent = errors.New("unexpected page content")
)

// ErrPriceMismatch is reported when a basket row shows a unit price other than
// the one recorded at add time. It matches ErrTotalMismatch under errors.Is.
var ErrPriceMismatch = fmt.Errorf("unit price mismatch: %w", ErrTotalMismatch)

// IsReconciliationError reports whether err came from comparing a ledger-derived
// expectation with a displayed value.
func IsReconciliationError(err error) bool {
	return errors.Is(err, ErrTotalMismatch) ||
		errors.Is(err, ErrQuantityMismatch) ||
		errors.Is(err, ErrMissingLedgerEntry)
}
