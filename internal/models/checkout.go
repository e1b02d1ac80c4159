package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Credentials identify a shop account. A registration step returns them and
// later scenarios take them as input.
type Credentials struct {
	Email    string
	Password string
}

// ErrMissingCredentials is returned when neither a registration result nor the
// configured defaults provide a login
var ErrMissingCredentials = errors.New("no login credentials available")

// OrDefault fills empty fields from fallback
func (c Credentials) OrDefault(fallback Credentials) Credentials {
	if c.Email == "" {
		c.Email = fallback.Email
	}
	if c.Password == "" {
		c.Password = fallback.Password
	}
	return c
}

// Validate checks that both fields are present
func (c Credentials) Validate() error {
	if c.Email == "" || c.Password == "" {
		return ErrMissingCredentials
	}
	return nil
}

// NewGeneratedCredentials creates a unique throwaway account. The password
// satisfies every password-advice rule of the registration form.
func NewGeneratedCredentials(domain string) Credentials {
	id := uuid.New().String()
	local := "e2e-" + strings.ReplaceAll(id[:13], "-", "")
	return Credentials{
		Email:    fmt.Sprintf("%s@%s", local, domain),
		Password: "Jx!" + strings.ReplaceAll(id[24:], "-", "") + "9a",
	}
}

// Address is the delivery address entered during checkout
type Address struct {
	Country string
	Name    string
	Mobile  string
	ZIPCode string
	Street  string
	City    string
	State   string
}

// Card is the payment card added during checkout
type Card struct {
	HolderName  string
	Number      string
	ExpiryMonth string
	ExpiryYear  string
}

// LastFour returns the last four digits shown in masked card listings
func (c Card) LastFour() string {
	if len(c.Number) < 4 {
		return c.Number
	}
	return c.Number[len(c.Number)-4:]
}

// CheckoutDetails groups the opaque inputs of the purchase funnel
type CheckoutDetails struct {
	Address        Address
	DeliveryMethod string
	Card           Card
}

// CheckoutResult is the outcome of a completed purchase. OrderID is empty when
// the completion URL did not carry one.
type CheckoutResult struct {
	OrderID string
	Total   Price
}
