package services

import (
	"fmt"
	"sync"

	"github.com/automationexercise/shopcheck/internal/models"
)

// CartService keeps one cart per browser session
type CartService interface {
	Add(sessionID string, productID, quantity int) (models.CartLine, error)
	Remove(sessionID string, productID int) error
	Lines(sessionID string) []models.CartLine
}

// CartServiceImpl implements CartService in memory
type CartServiceImpl struct {
	catalog CatalogService

	mu    sync.Mutex
	carts map[string]*models.Cart
}

// NewCartService creates a cart service resolving products from catalog
func NewCartService(catalog CatalogService) CartService {
	return &CartServiceImpl{
		catalog: catalog,
		carts:   make(map[string]*models.Cart),
	}
}

// Add puts quantity units of productID into the session's cart
func (s *CartServiceImpl) Add(sessionID string, productID, quantity int) (models.CartLine, error) {
	product, err := s.catalog.Product(productID)
	if err != nil {
		return models.CartLine{}, fmt.Errorf("failed to add product %d: %w", productID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[sessionID]
	if !ok {
		cart = &models.Cart{}
		s.carts[sessionID] = cart
	}
	return cart.Add(product, quantity)
}

// Remove drops productID from the session's cart
func (s *CartServiceImpl) Remove(sessionID string, productID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[sessionID]
	if !ok || !cart.Remove(productID) {
		return fmt.Errorf("product %d is not in the cart: %w", productID, models.ErrProductNotFound)
	}
	if cart.IsEmpty() {
		delete(s.carts, sessionID)
	}
	return nil
}

// Lines returns a copy of the session's cart lines
func (s *CartServiceImpl) Lines(sessionID string) []models.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[sessionID]
	if !ok {
		return nil
	}
	return cart.Lines()
}
