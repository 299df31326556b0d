package services

import (
	"slices"

	"github.com/automationexercise/shopcheck/internal/models"
)

// CatalogService serves the product catalogue
type CatalogService interface {
	Products() []models.Product
	Product(id int) (models.Product, error)
	Search(term string) []models.Product
}

// CatalogServiceImpl implements CatalogService over a fixed product list
type CatalogServiceImpl struct {
	products []models.Product
}

// NewCatalogService creates a catalogue listing products in the given order
func NewCatalogService(products []models.Product) CatalogService {
	return &CatalogServiceImpl{
		products: slices.Clone(products),
	}
}

func (s *CatalogServiceImpl) Products() []models.Product {
	return slices.Clone(s.products)
}

func (s *CatalogServiceImpl) Product(id int) (models.Product, error) {
	for _, p := range s.products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, models.ErrProductNotFound
}

// Search returns the products matching term in listing order
func (s *CatalogServiceImpl) Search(term string) []models.Product {
	var found []models.Product
	for _, p := range s.products {
		if p.Matches(term) {
			found = append(found, p)
		}
	}
	return found
}
