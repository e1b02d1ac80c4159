package models

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// Price is a non-negative amount in minor units (cents). The shop is
// currency-agnostic, so no currency is attached.
type Price int64

// numberPattern matches the first maximal run of digits with an optional
// single decimal part, e.g. "4.48" in "Total Price: 4.48¤".
var numberPattern = regexp.MustCompile(`\d+(?:\.\d+)?`)

// ParsePrice extracts the first number from free-form display text and
// converts it to minor units. label names the product or field being read and
// is included in the error.
func ParsePrice(label, text string) (Price, error) {
	match := numberPattern.FindString(text)
	if match == "" {
		return 0, fmt.Errorf("%w: no number in %q for %s", ErrPriceParse, text, label)
	}

	value, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q for %s: %v", ErrPriceParse, match, label, err)
	}

	return Price(math.Round(value * 100)), nil
}

// ParseQuantity extracts a whole quantity from display text using the same
// numeric rule as ParsePrice.
func ParseQuantity(label, text string) (int, error) {
	match := numberPattern.FindString(text)
	if match == "" {
		return 0, fmt.Errorf("%w: no quantity in %q for %s", ErrPriceParse, text, label)
	}

	qty, err := strconv.Atoi(match)
	if err != nil {
		return 0, fmt.Errorf("%w: quantity %q for %s is not a whole number", ErrPriceParse, match, label)
	}
	return qty, nil
}

// Times returns the price multiplied by a quantity.
func (p Price) Times(qty int) Price {
	return p * Price(qty)
}

// Within reports whether p is no further than tolerance from other.
func (p Price) Within(other, tolerance Price) bool {
	diff := p - other
	if diff < 0 {
		diff = -diff
	}
	return diff <= tolerance
}

// String formats the price in major units with two decimals.
func (p Price) String() string {
	sign := ""
	v := int64(p)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

