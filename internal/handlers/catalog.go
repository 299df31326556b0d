package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/automationexercise/shopcheck/internal/models"
	"github.com/automationexercise/shopcheck/internal/services"
)

// ProductListData represents the data for the home and products templates
type ProductListData struct {
	Layout
	Heading  string
	Search   string
	Products []models.Product
}

// ProductDetailsData represents the data for the product details template
type ProductDetailsData struct {
	Layout
	Product models.Product
}

// CatalogHandler serves the product listing pages
type CatalogHandler struct {
	site    *Site
	catalog services.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(site *Site, catalog services.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		site:    site,
		catalog: catalog,
	}
}

// Home renders the landing page with every product under "Features Items"
func (h *CatalogHandler) Home(w http.ResponseWriter, r *http.Request) {
	_, layout := h.site.layout(w, r, "")
	h.site.render(w, http.StatusOK, "home", ProductListData{
		Layout:   layout,
		Heading:  "Features Items",
		Products: h.catalog.Products(),
	})
}

// Products renders the product listing, filtered by the search query parameter when set
func (h *CatalogHandler) Products(w http.ResponseWriter, r *http.Request) {
	_, layout := h.site.layout(w, r, "All Products")
	data := ProductListData{
		Layout:  layout,
		Heading: "All Products",
		Search:  r.URL.Query().Get("search"),
	}

	if term := strings.TrimSpace(data.Search); term != "" {
		data.Heading = "Searched Products"
		data.Products = h.catalog.Search(term)
		h.site.logger.Debug("product search",
			zap.String("term", term), zap.Int("results", len(data.Products)))
	} else {
		data.Products = h.catalog.Products()
	}

	h.site.render(w, http.StatusOK, "products", data)
}

// ProductDetails renders one product with its quantity picker
func (h *CatalogHandler) ProductDetails(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.Error(w, "Invalid product id", http.StatusBadRequest)
		return
	}

	product, err := h.catalog.Product(id)
	if errors.Is(err, models.ErrProductNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		h.site.logger.Error("failed to load product", zap.Int("product_id", id), zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	_, layout := h.site.layout(w, r, "Product Details")
	h.site.render(w, http.StatusOK, "product_details", ProductDetailsData{
		Layout:  layout,
		Product: product,
	})
}
