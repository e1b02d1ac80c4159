package models

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
)

// DeliveryMethod is a shipping option offered at checkout
type DeliveryMethod struct {
	ID    string
	Name  string
	Price Price
	Days  int
}

// DeliveryMethods returns the options the storefront offers, fastest first
func DeliveryMethods() []DeliveryMethod {
	return []DeliveryMethod{
		{ID: "1", Name: "One Day Delivery", Price: 99, Days: 1},
		{ID: "2", Name: "Fast Delivery", Price: 50, Days: 3},
		{ID: "3", Name: "Standard Delivery", Price: 0, Days: 5},
	}
}

// FindDeliveryMethod looks a delivery method up by name
func FindDeliveryMethod(name string) (DeliveryMethod, bool) {
	for _, m := range DeliveryMethods() {
		if m.Name == name {
			return m, true
		}
	}
	return DeliveryMethod{}, false
}

// SavedAddress is an address stored in a shop session
type SavedAddress struct {
	ID string
	Address
}

// SavedCard is a card stored in a shop session
type SavedCard struct {
	ID string
	Card
}

// MaskedNumber renders the card number the way card listings show it
func (c SavedCard) MaskedNumber() string {
	return "************" + c.LastFour()
}

// ShopSession is one shopper's state in the storefront: basket, checkout
// choices and the signed-in account
type ShopSession struct {
	ID        string
	Cart      Cart
	Addresses []SavedAddress
	Cards     []SavedCard
	AddressID string
	Delivery  string
	CardID    string
	Email     string
}

// Session errors
var (
	ErrUnknownAddress = errors.New("unknown address")
	ErrUnknownCard    = errors.New("unknown card")
	ErrUnknownProduct = errors.New("unknown product")
	ErrNoDelivery     = errors.New("unknown delivery method")
)

// SelectedAddress returns the address chosen for checkout
func (s *ShopSession) SelectedAddress() (SavedAddress, error) {
	for _, a := range s.Addresses {
		if a.ID == s.AddressID {
			return a, nil
		}
	}
	return SavedAddress{}, ErrUnknownAddress
}

// SelectedCard returns the card chosen for checkout
func (s *ShopSession) SelectedCard() (SavedCard, error) {
	for _, c := range s.Cards {
		if c.ID == s.CardID {
			return c, nil
		}
	}
	return SavedCard{}, ErrUnknownCard
}

// Account is a registered storefront user
type Account struct {
	Email            string
	PasswordHash     string
	SecurityQuestion string
	SecurityAnswer   string
}

// Account errors
var (
	ErrAccountExists          = errors.New("email is already registered")
	ErrInvalidLogin           = errors.New("invalid email or password")
	ErrPasswordsDifferent     = errors.New("passwords do not match")
	ErrIncompleteRegistration = errors.New("registration form is incomplete")
)

// HashPassword returns the stored form of a password
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}
