package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/automationexercise/shopcheck/internal/models"
	"github.com/automationexercise/shopcheck/internal/services"
)

// CartData represents the data for the cart template
type CartData struct {
	Layout
	Lines []models.CartLine
}

// CartLineResponse is the JSON body returned after a cart change
type CartLineResponse struct {
	ProductID int    `json:"productId"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Total     string `json:"total"`
}

// CartHandler serves the cart page and its add and delete endpoints
type CartHandler struct {
	site  *Site
	carts services.CartService
}

// NewCartHandler creates a new cart handler
func NewCartHandler(site *Site, carts services.CartService) *CartHandler {
	return &CartHandler{
		site:  site,
		carts: carts,
	}
}

// View renders the session's cart
func (h *CartHandler) View(w http.ResponseWriter, r *http.Request) {
	sid, layout := h.site.layout(w, r, "Checkout")
	h.site.render(w, http.StatusOK, "cart", CartData{
		Layout: layout,
		Lines:  h.carts.Lines(sid),
	})
}

// Add puts a product into the session's cart. The quantity query parameter defaults to 1.
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		sendErrorResponse(w, "Invalid product id", http.StatusBadRequest)
		return
	}

	quantity := 1
	if q := r.URL.Query().Get("quantity"); q != "" {
		quantity, err = strconv.Atoi(q)
		if err != nil {
			sendErrorResponse(w, "Invalid quantity", http.StatusBadRequest)
			return
		}
	}

	sid := sessionID(w, r)
	line, err := h.carts.Add(sid, productID, quantity)
	switch {
	case errors.Is(err, models.ErrProductNotFound):
		sendErrorResponse(w, "Product not found", http.StatusNotFound)
		return
	case errors.Is(err, models.ErrInvalidQuantity):
		sendErrorResponse(w, "Quantity must be at least 1", http.StatusBadRequest)
		return
	case err != nil:
		h.site.logger.Error("failed to add to cart", zap.Int("product_id", productID), zap.Error(err))
		sendErrorResponse(w, "Failed to add product to cart", http.StatusInternalServerError)
		return
	}

	h.site.logger.Info("product added to cart",
		zap.String("session_id", sid),
		zap.Int("product_id", productID),
		zap.Int("quantity", quantity),
		zap.Int("line_quantity", line.Quantity))

	if err := sendJSON(w, http.StatusOK, lineResponse(line)); err != nil {
		h.site.logger.Error("failed to encode response", zap.Error(err))
	}
}

// Delete removes a product from the session's cart
func (h *CartHandler) Delete(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		sendErrorResponse(w, "Invalid product id", http.StatusBadRequest)
		return
	}

	sid := sessionID(w, r)
	if err := h.carts.Remove(sid, productID); err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			sendErrorResponse(w, "Product is not in the cart", http.StatusNotFound)
			return
		}
		h.site.logger.Error("failed to delete from cart", zap.Int("product_id", productID), zap.Error(err))
		sendErrorResponse(w, "Failed to delete product from cart", http.StatusInternalServerError)
		return
	}

	h.site.logger.Info("product removed from cart",
		zap.String("session_id", sid), zap.Int("product_id", productID))

	if err := sendJSON(w, http.StatusOK, CartLineResponse{ProductID: productID}); err != nil {
		h.site.logger.Error("failed to encode response", zap.Error(err))
	}
}

func lineResponse(line models.CartLine) CartLineResponse {
	return CartLineResponse{
		ProductID: line.Product.ID,
		Name:      line.Product.Name,
		Quantity:  line.Quantity,
		Total:     models.FormatPrice(line.Total()),
	}
}
