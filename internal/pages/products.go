package pages

import (
	"context"
	"strconv"

	"github.com/automationexercise/shopcheck/internal/browser"
)

// ProductsPage covers the product listing, search results and a product's details page
type ProductsPage struct {
	base *Base
	loc  Catalog
}

// NewProductsPage builds a ProductsPage on base
func NewProductsPage(base *Base) *ProductsPage {
	return &ProductsPage{
		base: base,
		loc: NewCatalog("products", map[string]browser.Locator{
			"searchInput":      `#search_product`,
			"searchButton":     `#submit_search`,
			"searchedTitle":    `.features_items h2.title`,
			"allProducts":      `.features_items .col-sm-4`,
			"productNames":     `.features_items .productinfo p`,
			"firstProduct":     `.features_items .col-sm-4:nth-child(3)`,
			"firstProductAdd":  `.features_items .col-sm-4:nth-child(3) .add-to-cart`,
			"secondProduct":    `.features_items .col-sm-4:nth-child(4)`,
			"secondProductAdd": `.features_items .col-sm-4:nth-child(4) .add-to-cart`,
			"firstProductView": `.features_items .col-sm-4:nth-child(3) a[href*="/product_details"]`,
			"modalContinue":    `.modal-footer .btn-success`,
			"modalViewCart":    `.modal-body a[href="/view_cart"]`,
			"quantityInput":    `#quantity`,
			"detailsAddToCart": `button.cart`,
			"detailsName":      `.product-information h2`,
			"detailsPrice":     `.product-information span span`,
		}),
	}
}

// Open navigates to the full product listing
func (p *ProductsPage) Open(ctx context.Context) error {
	return p.base.Open(ctx, "/products")
}

// SearchProduct submits name to the product search
func (p *ProductsPage) SearchProduct(ctx context.Context, name string) error {
	if err := p.base.SetValue(ctx, p.loc.Get("searchInput"), name); err != nil {
		return err
	}
	return p.base.Click(ctx, p.loc.Get("searchButton"))
}

func (p *ProductsPage) IsSearchedProductsTitleVisible(ctx context.Context) bool {
	return p.base.IsDisplayed(ctx, p.loc.Get("searchedTitle"))
}

func (p *ProductsPage) SearchedProductsTitle(ctx context.Context) (string, error) {
	return p.base.Text(ctx, p.loc.Get("searchedTitle"))
}

// AllProducts returns a handle per product card currently listed
func (p *ProductsPage) AllProducts(ctx context.Context) ([]browser.Element, error) {
	return p.base.All(ctx, p.loc.Get("allProducts"))
}

// AreProductsVisible reports whether at least one product card is listed
func (p *ProductsPage) AreProductsVisible(ctx context.Context) (bool, error) {
	products, err := p.AllProducts(ctx)
	if err != nil {
		return false, err
	}
	return len(products) > 0, nil
}

// AllProductNames returns the listed product names in page order
func (p *ProductsPage) AllProductNames(ctx context.Context) ([]string, error) {
	return p.base.Texts(ctx, p.loc.Get("productNames"))
}

func (p *ProductsPage) AddFirstProductToCart(ctx context.Context) error {
	return addToCart(ctx, p.base, p.loc.Get("firstProduct"), p.loc.Get("firstProductAdd"))
}

func (p *ProductsPage) AddSecondProductToCart(ctx context.Context) error {
	return addToCart(ctx, p.base, p.loc.Get("secondProduct"), p.loc.Get("secondProductAdd"))
}

// ClickContinueShopping dismisses the added-to-cart modal and waits for it to close
func (p *ProductsPage) ClickContinueShopping(ctx context.Context) error {
	return dismiss(ctx, p.base, p.loc.Get("modalContinue"))
}

func (p *ProductsPage) ClickViewCart(ctx context.Context) error {
	return waitAndClick(ctx, p.base, p.loc.Get("modalViewCart"))
}

func (p *ProductsPage) ClickViewProductOnFirst(ctx context.Context) error {
	view := p.loc.Get("firstProductView")
	if err := p.base.ScrollTo(ctx, view); err != nil {
		return err
	}
	return p.base.Click(ctx, view)
}

// SetProductQuantity replaces the quantity on the details page
func (p *ProductsPage) SetProductQuantity(ctx context.Context, quantity int) error {
	input := p.loc.Get("quantityInput")
	if err := p.base.WaitForDisplayed(ctx, input, 0); err != nil {
		return err
	}
	if err := p.base.ClearValue(ctx, input); err != nil {
		return err
	}
	return p.base.SetValue(ctx, input, strconv.Itoa(quantity))
}

// ClickAddToCart adds the product on the details page to the cart
func (p *ProductsPage) ClickAddToCart(ctx context.Context) error {
	return p.base.Click(ctx, p.loc.Get("detailsAddToCart"))
}

func (p *ProductsPage) ProductName(ctx context.Context) (string, error) {
	return p.base.Text(ctx, p.loc.Get("detailsName"))
}

// ProductPrice returns the price as displayed, e.g. "Rs. 500"
func (p *ProductsPage) ProductPrice(ctx context.Context) (string, error) {
	return p.base.Text(ctx, p.loc.Get("detailsPrice"))
}
