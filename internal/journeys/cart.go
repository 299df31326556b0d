package journeys

import (
	"context"
	"errors"
	"strings"

	"github.com/automationexercise/shopcheck/internal/browser"
	"github.com/automationexercise/shopcheck/internal/pages"
)

// AddProductsToCart adds the first two listed products and checks each cart line
func AddProductsToCart() Journey {
	var first, second pages.LineItem

	return Journey{
		Name:  "add-products-to-cart",
		Title: "TC12 Add Products in Cart",
		Steps: []Step{
			{Name: "add first product", Run: func(ctx context.Context, p *Pages) error {
				if err := p.Home.Open(ctx); err != nil {
					return err
				}
				if err := p.Home.ClickProducts(ctx); err != nil {
					return err
				}
				if err := p.Products.AddFirstProductToCart(ctx); err != nil {
					return err
				}
				return p.Products.ClickContinueShopping(ctx)
			}},
			{Name: "add second product", Run: func(ctx context.Context, p *Pages) error {
				if err := p.Products.AddSecondProductToCart(ctx); err != nil {
					return err
				}
				if err := p.Products.ClickViewCart(ctx); err != nil {
					return err
				}
				return expectCartPage(ctx, p)
			}},
			{Name: "both products in cart", Run: func(ctx context.Context, p *Pages) error {
				n, err := p.Cart.CartItemCount(ctx)
				if err != nil {
					return err
				}
				return expect(n >= 2, "at least 2 cart rows, got %d", n)
			}},
			{Name: "first product details", Run: func(ctx context.Context, p *Pages) (err error) {
				first, err = p.Cart.ProductDetails(ctx, 0)
				if err != nil {
					return err
				}
				return expectSingleUnit(first)
			}},
			{Name: "second product details", Run: func(ctx context.Context, p *Pages) (err error) {
				second, err = p.Cart.ProductDetails(ctx, 1)
				if err != nil {
					return err
				}
				return expectSingleUnit(second)
			}},
			{Name: "first product total", Run: func(context.Context, *Pages) error {
				return expectLineTotal(first.Price, first.Quantity, first.TotalPrice)
			}},
			{Name: "second product total", Run: func(context.Context, *Pages) error {
				return expectLineTotal(second.Price, second.Quantity, second.TotalPrice)
			}},
		},
	}
}

// RemoveProductFromCart fills the cart with two products, deletes the first and checks only
// it went
func RemoveProductFromCart() Journey {
	var removed string

	return Journey{
		Name:  "remove-product-from-cart",
		Title: "TC17 Remove Products From Cart",
		Steps: []Step{
			{Name: "fill cart", Run: func(ctx context.Context, p *Pages) error {
				if err := p.Home.Open(ctx); err != nil {
					return err
				}
				if err := p.Home.ClickProducts(ctx); err != nil {
					return err
				}
				if err := p.Products.AddFirstProductToCart(ctx); err != nil {
					return err
				}
				if err := p.Products.ClickContinueShopping(ctx); err != nil {
					return err
				}
				if err := p.Products.AddSecondProductToCart(ctx); err != nil {
					return err
				}
				if err := p.Products.ClickViewCart(ctx); err != nil {
					return err
				}
				if err := expectCartPage(ctx, p); err != nil {
					return err
				}
				n, err := p.Cart.CartItemCount(ctx)
				if err != nil {
					return err
				}
				return expect(n >= 2, "at least 2 cart rows, got %d", n)
			}},
			{Name: "note first product", Run: func(ctx context.Context, p *Pages) error {
				names, err := p.Cart.AllProductNames(ctx)
				if err != nil {
					return err
				}
				if err := expect(len(names) > 0 && names[0] != "", "first cart row has a name"); err != nil {
					return err
				}
				removed = names[0]
				return nil
			}},
			{Name: "remove first product", Run: func(ctx context.Context, p *Pages) error {
				before, err := p.Cart.CartItemCount(ctx)
				if err != nil {
					return err
				}
				if err := p.Cart.DeleteFirstProduct(ctx); err != nil {
					return err
				}
				after, err := p.Cart.CartItemCount(ctx)
				if err != nil {
					return err
				}
				return expectEqual("cart rows after delete", after, before-1)
			}},
			{Name: "removed product gone", Run: func(ctx context.Context, p *Pages) error {
				in, err := p.Cart.IsProductInCart(ctx, removed)
				if err != nil {
					return err
				}
				return expect(!in, "%q is no longer in the cart", removed)
			}},
			{Name: "other products kept", Run: func(ctx context.Context, p *Pages) error {
				empty, err := p.Cart.IsCartEmpty(ctx)
				if err != nil {
					return err
				}
				if err := expect(!empty, "cart is not empty"); err != nil {
					return err
				}
				n, err := p.Cart.CartItemCount(ctx)
				if err != nil {
					return err
				}
				return expect(n >= 1, "at least 1 cart row left, got %d", n)
			}},
		},
	}
}

func expectSingleUnit(item pages.LineItem) error {
	if err := expect(item.Name != "" && item.Price != "" && item.Quantity != "" && item.TotalPrice != "",
		"every column of %+v is filled", item); err != nil {
		return err
	}
	return expectEqual("quantity of "+item.Name, strings.TrimSpace(item.Quantity), "1")
}

// expectCartPage waits for the tab to land on the cart and for the cart to render
func expectCartPage(ctx context.Context, p *Pages) error {
	if err := expectURL(ctx, p, "/view_cart"); err != nil {
		return err
	}
	return p.Cart.WaitForLoaded(ctx)
}

// expectURL waits for the tab to navigate to a URL containing path
func expectURL(ctx context.Context, p *Pages, path string) error {
	var last string
	err := p.Base.WaitUntil(ctx, 0, func(ctx context.Context) (bool, error) {
		url, err := p.Base.CurrentURL(ctx)
		last = url
		return strings.Contains(url, path), err
	})
	if errors.Is(err, browser.ErrTimeout) {
		return expect(false, "URL contains %s, got %s", path, last)
	}
	return err
}
