package models

import "fmt"

// WorkflowState represents where a basket scenario is in its lifecycle
type WorkflowState string

// Workflow states, in the order a scenario moves through them
const (
	WorkflowEmpty        WorkflowState = "empty"
	WorkflowPopulating   WorkflowState = "populating"
	WorkflowAtBasketView WorkflowState = "at_basket_view"
	WorkflowVerified     WorkflowState = "verified"
	WorkflowMutating     WorkflowState = "mutating"
	WorkflowCheckout     WorkflowState = "checkout"
)

// allowedTransitions lists the states each state may move to
var allowedTransitions = map[WorkflowState][]WorkflowState{
	WorkflowEmpty:        {WorkflowPopulating},
	WorkflowPopulating:   {WorkflowPopulating, WorkflowAtBasketView},
	WorkflowAtBasketView: {WorkflowVerified},
	WorkflowVerified:     {WorkflowMutating, WorkflowCheckout},
	WorkflowMutating:     {WorkflowMutating, WorkflowCheckout},
}

// CanTransition returns true if the workflow may move from s to next
func (s WorkflowState) CanTransition(next WorkflowState) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Transition validates a move from s to next
func (s WorkflowState) Transition(next WorkflowState) (WorkflowState, error) {
	if !s.CanTransition(next) {
		return s, fmt.Errorf("%w: cannot move from %s to %s", ErrInvalidTransition, s, next)
	}
	return next, nil
}

// TolerancePolicy holds the allowed absolute difference between an expected
// and a displayed total for each kind of check
type TolerancePolicy struct {
	Increment Price
	Delete    Price
	Summary   Price
}

// DefaultTolerancePolicy keeps increments and the order summary exact and
// lets deletes drift by one cent.
func DefaultTolerancePolicy() TolerancePolicy {
	return TolerancePolicy{
		Increment: 0,
		Delete:    1,
		Summary:   0,
	}
}
