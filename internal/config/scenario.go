package config

import (
	"fmt"
	"strings"

	"github.com/soar-qa/juiceshop-e2e/internal/models"
)

// DefaultProducts are the products the checkout scenario buys
var DefaultProducts = []string{
	"Apple Pomace",
	"Carrot Juice (1000ml)",
	"Green Smoothie",
	"Lemon Juice (500ml)",
	"Quince Juice (1000ml)",
}

// ScenarioConfig holds the inputs of the checkout scenario
type ScenarioConfig struct {
	Products   []string
	Increments int
	Checkout   models.CheckoutDetails
}

// LoadScenarioConfig loads scenario inputs from environment variables.
// PRODUCTS is a comma-separated list of product names.
func LoadScenarioConfig(getenv func(string) string) (*ScenarioConfig, error) {
	config := &ScenarioConfig{
		Products: DefaultProducts,
		Checkout: models.CheckoutDetails{
			Address: models.Address{
				Country: envString(getenv, "ADDRESS_COUNTRY", "Netherlands"),
				Name:    envString(getenv, "ADDRESS_NAME", "Jane Tester"),
				Mobile:  envString(getenv, "ADDRESS_MOBILE", "0612345678"),
				ZIPCode: envString(getenv, "ADDRESS_ZIP", "1011AB"),
				Street:  envString(getenv, "ADDRESS_STREET", "Damrak 1"),
				City:    envString(getenv, "ADDRESS_CITY", "Amsterdam"),
				State:   envString(getenv, "ADDRESS_STATE", "Noord-Holland"),
			},
			DeliveryMethod: envString(getenv, "DELIVERY_METHOD", "Standard Delivery"),
			Card: models.Card{
				HolderName:  envString(getenv, "CARD_NAME", "Jane Tester"),
				Number:      envString(getenv, "CARD_NUMBER", "4111111111111111"),
				ExpiryMonth: envString(getenv, "CARD_EXPIRY_MONTH", "7"),
				ExpiryYear:  envString(getenv, "CARD_EXPIRY_YEAR", "2090"),
			},
		},
	}

	if raw := getenv("PRODUCTS"); raw != "" {
		config.Products = nil
		for _, name := range strings.Split(raw, ",") {
			if name = strings.TrimSpace(name); name != "" {
				config.Products = append(config.Products, name)
			}
		}
	}
	if len(config.Products) == 0 {
		return nil, fmt.Errorf("PRODUCTS must name at least one product")
	}

	increments, err := envInt(getenv, "INCREMENTS", 3)
	if err != nil {
		return nil, err
	}
	if increments > len(config.Products) {
		increments = len(config.Products)
	}
	config.Increments = increments

	if len(config.Checkout.Card.Number) < 4 {
		return nil, fmt.Errorf("CARD_NUMBER must have at least four digits")
	}

	return config, nil
}
