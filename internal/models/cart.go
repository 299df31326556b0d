package models

import (
	"errors"
	"slices"
)

// ErrInvalidQuantity is returned when fewer than one unit is added to a cart
var ErrInvalidQuantity = errors.New("quantity must be at least 1")

// CartLine is one product in a cart with the number of units
type CartLine struct {
	Product  Product
	Quantity int
}

// Total returns the line price in whole rupees
func (l CartLine) Total() int {
	return l.Product.Price * l.Quantity
}

// Cart is a visitor's cart. Lines keep the order products were first added in. The zero
// value is an empty cart; a Cart is not safe for concurrent use.
type Cart struct {
	lines []CartLine
}

// Add puts quantity units of p in the cart, merging with an existing line for p
func (c *Cart) Add(p Product, quantity int) (CartLine, error) {
	if quantity < 1 {
		return CartLine{}, ErrInvalidQuantity
	}

	for i := range c.lines {
		if c.lines[i].Product.ID == p.ID {
			c.lines[i].Quantity += quantity
			return c.lines[i], nil
		}
	}

	line := CartLine{Product: p, Quantity: quantity}
	c.lines = append(c.lines, line)
	return line, nil
}

// Remove drops the line for productID and reports whether there was one
func (c *Cart) Remove(productID int) bool {
	i := slices.IndexFunc(c.lines, func(l CartLine) bool { return l.Product.ID == productID })
	if i < 0 {
		return false
	}
	c.lines = slices.Delete(c.lines, i, i+1)
	return true
}

// Lines returns a copy of the cart lines
func (c *Cart) Lines() []CartLine {
	return slices.Clone(c.lines)
}

func (c *Cart) Len() int {
	return len(c.lines)
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Total returns the price of every line in whole rupees
func (c *Cart) Total() int {
	total := 0
	for _, l := range c.lines {
		total += l.Total()
	}
	return total
}
