package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrProductNotFound is returned when no product has the requested ID
var ErrProductNotFound = errors.New("product not found")

// Product is one catalogue entry of the storefront
type Product struct {
	ID       int
	Name     string
	Category string
	Brand    string
	// Price in whole rupees
	Price int
}

// FormatPrice renders a rupee amount the way the storefront displays it
func FormatPrice(rupees int) string {
	return fmt.Sprintf("Rs. %d", rupees)
}

// FormattedPrice returns the display price, e.g. "Rs. 500"
func (p Product) FormattedPrice() string {
	return FormatPrice(p.Price)
}

// Matches reports whether term occurs, ignoring case, in the product's name, category or
// brand. An empty term matches every product.
func (p Product) Matches(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	for _, field := range []string{p.Name, p.Category, p.Brand} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

// DefaultProducts returns the catalogue the local storefront serves, in listing order
func DefaultProducts() []Product {
	return []Product{
		{ID: 1, Name: "Blue Top", Category: "Women > Tops", Brand: "Polo", Price: 500},
		{ID: 2, Name: "Men Tshirt", Category: "Men > Tshirts", Brand: "H&M", Price: 400},
		{ID: 3, Name: "Sleeveless Dress", Category: "Women > Dress", Brand: "Madame", Price: 1000},
		{ID: 4, Name: "Stylish Dress", Category: "Women > Dress", Brand: "Madame", Price: 1500},
		{ID: 5, Name: "Winter Top", Category: "Women > Tops", Brand: "Mast & Harbour", Price: 600},
		{ID: 6, Name: "Summer White Top", Category: "Women > Tops", Brand: "Mast & Harbour", Price: 400},
		{ID: 7, Name: "Madame Top For Women", Category: "Women > Tops", Brand: "Madame", Price: 1000},
		{ID: 8, Name: "Fancy Green Top", Category: "Women > Tops", Brand: "Polo", Price: 700},
		{ID: 11, Name: "Blue Cotton Indie Mickey Dress", Category: "Women > Dress", Brand: "Madame", Price: 1530},
		{ID: 12, Name: "Long Maxi Tulle Fancy Dress Up Outfits -Pink", Category: "Women > Dress", Brand: "Babyhug", Price: 1440},
		{ID: 13, Name: "Sleeve Shirt With Contrast Check", Category: "Men > Tshirts", Brand: "H&M", Price: 359},
		{ID: 21, Name: "Soft Stretch Jeans", Category: "Men > Jeans", Brand: "Allen Solly Junior", Price: 799},
		{ID: 28, Name: "Pure Cotton V-Neck T-Shirt", Category: "Men > Tshirts", Brand: "Biba", Price: 1299},
		{ID: 33, Name: "Regular Fit Straight Jeans", Category: "Men > Jeans", Brand: "Kookie Kids", Price: 1200},
	}
}
