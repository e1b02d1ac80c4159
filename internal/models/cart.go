package models

import "errors"

// Product is an item in the storefront catalog
type Product struct {
	ID          string
	Name        string
	Description string
	Price       Price
	ImageURL    string
	Reviews     []string
}

// CartLine is one product in a cart with its quantity
type CartLine struct {
	Product  Product
	Quantity int
}

// LineTotal returns quantity times unit price
func (l CartLine) LineTotal() Price {
	return l.Product.Price.Times(l.Quantity)
}

// Cart is a shopper's basket in the storefront
type Cart struct {
	ID    string
	Lines []CartLine
}

// Cart errors
var (
	ErrLineNotFound = errors.New("product is not in the basket")
	ErrEmptyCart    = errors.New("basket is empty")
)

// Add puts one unit of product into the cart
func (c *Cart) Add(product Product) {
	for i := range c.Lines {
		if c.Lines[i].Product.ID == product.ID {
			c.Lines[i].Quantity++
			return
		}
	}
	c.Lines = append(c.Lines, CartLine{Product: product, Quantity: 1})
}

// Increment adds one unit to an existing line
func (c *Cart) Increment(productID string) error {
	for i := range c.Lines {
		if c.Lines[i].Product.ID == productID {
			c.Lines[i].Quantity++
			return nil
		}
	}
	return ErrLineNotFound
}

// Remove deletes a line regardless of its quantity
func (c *Cart) Remove(productID string) error {
	for i := range c.Lines {
		if c.Lines[i].Product.ID == productID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return nil
		}
	}
	return ErrLineNotFound
}

// Total returns the sum of all line totals
func (c *Cart) Total() Price {
	var total Price
	for _, line := range c.Lines {
		total += line.LineTotal()
	}
	return total
}

// Count returns the number of distinct products, as shown on the basket badge
func (c *Cart) Count() int {
	return len(c.Lines)
}

// IsEmpty returns true if the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}
