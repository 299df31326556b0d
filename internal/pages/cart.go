package pages

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/automationexercise/shopcheck/internal/browser"
)

// Cart read errors
var (
	ErrIndexOutOfRange      = errors.New("cart index out of range")
	ErrInconsistentSnapshot = errors.New("cart changed while it was being read")
)

// LineItem is one cart row as displayed. It is scraped fresh on every read.
type LineItem struct {
	Name       string
	Price      string
	Quantity   string
	TotalPrice string
}

// CartPage is the /view_cart page
type CartPage struct {
	base *Base
	loc  Catalog
}

// NewCartPage builds a CartPage on base
func NewCartPage(base *Base) *CartPage {
	return &CartPage{
		base: base,
		loc: NewCatalog("cart", map[string]browser.Locator{
			"rows":        `.cart_info tbody tr`,
			"names":       `.cart_description h4 a`,
			"prices":      `.cart_price p`,
			"quantities":  `.cart_quantity button`,
			"totalPrices": `.cart_total_price`,
			"delete":      `.cart_quantity_delete`,
			"emptyCart":   `#empty_cart`,
		}),
	}
}

// Open navigates to the cart
func (p *CartPage) Open(ctx context.Context) error {
	return p.base.Open(ctx, "/view_cart")
}

// CartItems returns the product rows, leaving out the column header row, in the order the
// products were added
func (p *CartPage) CartItems(ctx context.Context) ([]browser.Element, error) {
	rows, err := p.base.All(ctx, p.loc.Get("rows"))
	if err != nil {
		return nil, err
	}

	items := make([]browser.Element, 0, len(rows))
	for _, row := range rows {
		class, err := row.Attribute(ctx, "class")
		if err != nil {
			return nil, fmt.Errorf("read cart row class: %w", err)
		}
		if strings.Contains(class, "cart_menu") {
			continue
		}
		items = append(items, row)
	}
	return items, nil
}

// CartItemCount returns the number of product rows
func (p *CartPage) CartItemCount(ctx context.Context) (int, error) {
	items, err := p.CartItems(ctx)
	if err != nil {
		return 0, err
	}
	return len(items), nil
}

func (p *CartPage) AllProductNames(ctx context.Context) ([]string, error) {
	return p.base.Texts(ctx, p.loc.Get("names"))
}

func (p *CartPage) AllProductPrices(ctx context.Context) ([]string, error) {
	return p.base.Texts(ctx, p.loc.Get("prices"))
}

func (p *CartPage) AllProductQuantities(ctx context.Context) ([]string, error) {
	return p.base.Texts(ctx, p.loc.Get("quantities"))
}

func (p *CartPage) AllProductTotalPrices(ctx context.Context) ([]string, error) {
	return p.base.Texts(ctx, p.loc.Get("totalPrices"))
}

// ProductDetails returns row index. The four columns are read one after another; if their
// lengths disagree the cart changed in between and ErrInconsistentSnapshot is returned
// rather than a row stitched from two states.
func (p *CartPage) ProductDetails(ctx context.Context, index int) (LineItem, error) {
	names, err := p.AllProductNames(ctx)
	if err != nil {
		return LineItem{}, err
	}
	prices, err := p.AllProductPrices(ctx)
	if err != nil {
		return LineItem{}, err
	}
	quantities, err := p.AllProductQuantities(ctx)
	if err != nil {
		return LineItem{}, err
	}
	totals, err := p.AllProductTotalPrices(ctx)
	if err != nil {
		return LineItem{}, err
	}

	n := len(names)
	if len(prices) != n || len(quantities) != n || len(totals) != n {
		return LineItem{}, fmt.Errorf("%w: %d names, %d prices, %d quantities, %d totals",
			ErrInconsistentSnapshot, len(names), len(prices), len(quantities), len(totals))
	}
	if index < 0 || index >= n {
		return LineItem{}, fmt.Errorf("%w: %d of %d rows", ErrIndexOutOfRange, index, n)
	}

	return LineItem{
		Name:       names[index],
		Price:      prices[index],
		Quantity:   quantities[index],
		TotalPrice: totals[index],
	}, nil
}

// IsProductInCart reports whether any row's name contains name
func (p *CartPage) IsProductInCart(ctx context.Context, name string) (bool, error) {
	names, err := p.AllProductNames(ctx)
	if err != nil {
		return false, err
	}
	for _, n := range names {
		if strings.Contains(n, name) {
			return true, nil
		}
	}
	return false, nil
}

// DeleteProductByIndex removes row index and waits for the row to go. Rows below it shift
// up by one, so indexes read before the call are stale afterwards.
func (p *CartPage) DeleteProductByIndex(ctx context.Context, index int) error {
	deleteLoc := p.loc.Get("delete")

	controls, err := p.base.All(ctx, deleteLoc)
	if err != nil {
		return err
	}
	before := len(controls)
	if index < 0 || index >= before {
		return fmt.Errorf("delete cart row: %w: %d of %d rows", ErrIndexOutOfRange, index, before)
	}

	control := controls[index]
	if err := control.ScrollIntoView(ctx); err != nil {
		return browser.NewActionError("delete cart row", deleteLoc, browser.ErrNotInteractable, err)
	}
	if err := control.Click(ctx); err != nil {
		return browser.NewActionError("delete cart row", deleteLoc, browser.ErrNotInteractable, err)
	}

	err = p.base.WaitUntil(ctx, 0, func(ctx context.Context) (bool, error) {
		n, err := p.base.Count(ctx, deleteLoc)
		return n < before, err
	})
	if err != nil {
		return fmt.Errorf("delete cart row %d: %w", index, err)
	}
	return nil
}

// DeleteFirstProduct removes the first row
func (p *CartPage) DeleteFirstProduct(ctx context.Context) error {
	return p.DeleteProductByIndex(ctx, 0)
}

// WaitForLoaded blocks until the cart shows either the empty marker or a product row
func (p *CartPage) WaitForLoaded(ctx context.Context) error {
	return p.waitForContent(ctx, 0)
}

// IsCartEmpty reports whether the cart has no product rows. It first gives the page up to
// the empty-cart timeout to show either the empty marker or a row; the row count decides
// the answer either way.
func (p *CartPage) IsCartEmpty(ctx context.Context) (bool, error) {
	err := p.waitForContent(ctx, p.base.emptyCartTimeout)
	if err != nil && !errors.Is(err, browser.ErrTimeout) {
		return false, err
	}
	if err != nil {
		p.base.logger.Debug("empty cart marker not observed", zap.Error(err))
	}

	count, err := p.CartItemCount(ctx)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

func (p *CartPage) waitForContent(ctx context.Context, timeout time.Duration) error {
	marker := p.loc.Get("emptyCart")
	rows := p.loc.Get("rows")

	return p.base.WaitUntil(ctx, timeout, func(ctx context.Context) (bool, error) {
		el, err := p.base.driver.Find(ctx, marker)
		if err != nil {
			return false, err
		}
		if shown, err := el.IsDisplayed(ctx); err == nil && shown {
			return true, nil
		}
		n, err := p.base.Count(ctx, rows)
		return n > 0, err
	})
}

// ProductQuantity returns the quantity shown on row index
func (p *CartPage) ProductQuantity(ctx context.Context, index int) (string, error) {
	quantities, err := p.AllProductQuantities(ctx)
	if err != nil {
		return "", err
	}
	if index < 0 || index >= len(quantities) {
		return "", fmt.Errorf("%w: %d of %d rows", ErrIndexOutOfRange, index, len(quantities))
	}
	return quantities[index], nil
}

// VerifyProductQuantity reports whether row index shows quantity. A quantity that is not a
// number never matches.
func (p *CartPage) VerifyProductQuantity(ctx context.Context, index, quantity int) (bool, error) {
	shown, err := p.ProductQuantity(ctx, index)
	if err != nil {
		return false, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(shown))
	if err != nil {
		return false, nil
	}
	return n == quantity, nil
}

// VerifyProductTotalPrice reports whether row index shows exactly expected as its total
func (p *CartPage) VerifyProductTotalPrice(ctx context.Context, index int, expected string) (bool, error) {
	totals, err := p.AllProductTotalPrices(ctx)
	if err != nil {
		return false, err
	}
	if index < 0 || index >= len(totals) {
		return false, fmt.Errorf("%w: %d of %d rows", ErrIndexOutOfRange, index, len(totals))
	}
	return totals[index] == expected, nil
}

// CalculateExpectedTotal is the package CalculateExpectedTotal, for callers holding a page
func (p *CartPage) CalculateExpectedTotal(price string, quantity int) (string, error) {
	return CalculateExpectedTotal(price, quantity)
}
