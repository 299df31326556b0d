package journeys

import (
	"context"
	"strconv"
	"strings"

	"github.com/automationexercise/shopcheck/internal/pages"
)

// SearchProduct searches the catalogue for term and checks the results mention it
func SearchProduct(term string) Journey {
	return Journey{
		Name:  "search-product",
		Title: "TC09 Search Product",
		Steps: []Step{
			{Name: "open products", Run: func(ctx context.Context, p *Pages) error {
				if err := p.Home.Open(ctx); err != nil {
					return err
				}
				return p.Home.ClickProducts(ctx)
			}},
			{Name: "search", Run: func(ctx context.Context, p *Pages) error {
				if err := p.Products.SearchProduct(ctx, term); err != nil {
					return err
				}
				if err := expectURL(ctx, p, "search="); err != nil {
					return err
				}
				if err := expect(p.Products.IsSearchedProductsTitleVisible(ctx), "searched products title is shown"); err != nil {
					return err
				}
				title, err := p.Products.SearchedProductsTitle(ctx)
				if err != nil {
					return err
				}
				return expect(strings.Contains(strings.ToUpper(title), "SEARCHED PRODUCTS"), "title %q reads SEARCHED PRODUCTS", title)
			}},
			{Name: "results match", Run: func(ctx context.Context, p *Pages) error {
				visible, err := p.Products.AreProductsVisible(ctx)
				if err != nil {
					return err
				}
				if err := expect(visible, "search returned products"); err != nil {
					return err
				}

				names, err := p.Products.AllProductNames(ctx)
				if err != nil {
					return err
				}
				if err := expect(len(names) > 0, "product names are listed"); err != nil {
					return err
				}
				for _, n := range names {
					if strings.Contains(strings.ToLower(n), strings.ToLower(term)) {
						return nil
					}
				}
				return expect(false, "a result named like %q, got %v", term, names)
			}},
		},
	}
}

// ProductQuantity adds the first product with quantity from its details page and checks the
// cart line
func ProductQuantity(quantity int) Journey {
	return Journey{
		Name:  "product-quantity",
		Title: "TC13 Verify Product Quantity in Cart",
		Steps: []Step{
			{Name: "open first product", Run: func(ctx context.Context, p *Pages) error {
				if err := p.Home.Open(ctx); err != nil {
					return err
				}
				return p.Home.ClickViewProductOnFirst(ctx)
			}},
			{Name: "add with quantity", Run: func(ctx context.Context, p *Pages) error {
				if err := p.Products.SetProductQuantity(ctx, quantity); err != nil {
					return err
				}
				if err := p.Products.ClickAddToCart(ctx); err != nil {
					return err
				}
				if err := p.Products.ClickViewCart(ctx); err != nil {
					return err
				}
				return expectCartPage(ctx, p)
			}},
			{Name: "cart shows quantity", Run: func(ctx context.Context, p *Pages) error {
				shown, err := p.Cart.ProductQuantity(ctx, 0)
				if err != nil {
					return err
				}
				if err := expectEqual("quantity", strings.TrimSpace(shown), strconv.Itoa(quantity)); err != nil {
					return err
				}
				ok, err := p.Cart.VerifyProductQuantity(ctx, 0, quantity)
				if err != nil {
					return err
				}
				return expect(ok, "row 0 quantity verifies as %d", quantity)
			}},
			{Name: "line total", Run: func(ctx context.Context, p *Pages) error {
				item, err := p.Cart.ProductDetails(ctx, 0)
				if err != nil {
					return err
				}
				return expectLineTotal(item.Price, item.Quantity, item.TotalPrice)
			}},
		},
	}
}

// expectLineTotal checks total against price times the displayed quantity
func expectLineTotal(price, quantity, total string) error {
	q, err := strconv.Atoi(strings.TrimSpace(quantity))
	if err != nil {
		return expect(false, "quantity %q is a number", quantity)
	}
	want, err := pages.CalculateExpectedTotal(price, q)
	if err != nil {
		return err
	}
	return expectEqual("line total", total, want)
}
