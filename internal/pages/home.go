package pages

import (
	"context"
	"strings"

	"github.com/automationexercise/shopcheck/internal/browser"
)

// HomePage is the landing page and the header shared by every page
type HomePage struct {
	base *Base
	loc  Catalog
}

// NewHomePage builds a HomePage on base
func NewHomePage(base *Base) *HomePage {
	return &HomePage{
		base: base,
		loc: NewCatalog("home", map[string]browser.Locator{
			"signupLogin":      `a[href="/login"]`,
			"products":         `a[href="/products"]`,
			"cart":             `a[href="/view_cart"]`,
			"logout":           `a[href="/logout"]`,
			"deleteAccount":    `a[href="/delete_account"]`,
			"home":             `a[href="/"]`,
			"loggedInUser":     `.shop-menu .fa-user`,
			"loggedInLink":     `.shop-menu a:has(.fa-user)`,
			"firstProduct":     `.features_items .col-sm-4:nth-child(3)`,
			"firstProductAdd":  `.features_items .col-sm-4:nth-child(3) .add-to-cart`,
			"firstProductView": `.features_items .col-sm-4:nth-child(3) a[href*="/product_details"]`,
			"modalContinue":    `.modal-footer .btn-success`,
			"modalViewCart":    `.modal-body a[href="/view_cart"]`,
		}),
	}
}

// Open navigates to the storefront root
func (p *HomePage) Open(ctx context.Context) error {
	return p.base.Open(ctx, "/")
}

func (p *HomePage) ClickSignupLogin(ctx context.Context) error {
	return p.base.Click(ctx, p.loc.Get("signupLogin"))
}

func (p *HomePage) ClickProducts(ctx context.Context) error {
	return p.base.Click(ctx, p.loc.Get("products"))
}

func (p *HomePage) ClickCart(ctx context.Context) error {
	return p.base.Click(ctx, p.loc.Get("cart"))
}

func (p *HomePage) ClickDeleteAccount(ctx context.Context) error {
	return p.base.Click(ctx, p.loc.Get("deleteAccount"))
}

func (p *HomePage) ClickLogout(ctx context.Context) error {
	return p.base.Click(ctx, p.loc.Get("logout"))
}

func (p *HomePage) ClickHome(ctx context.Context) error {
	return p.base.Click(ctx, p.loc.Get("home"))
}

// IsUserLoggedIn reports whether the "Logged in as" header entry shows
func (p *HomePage) IsUserLoggedIn(ctx context.Context) bool {
	return p.base.IsDisplayed(ctx, p.loc.Get("loggedInUser"))
}

// LoggedInUsername returns the name shown after "Logged in as"
func (p *HomePage) LoggedInUsername(ctx context.Context) (string, error) {
	text, err := p.base.Text(ctx, p.loc.Get("loggedInLink"))
	if err != nil {
		return "", err
	}
	if i := strings.Index(strings.ToLower(text), "logged in as"); i >= 0 {
		text = text[i+len("logged in as"):]
	}
	return strings.TrimSpace(text), nil
}

// AddFirstProductToCart reveals the first card's overlay and clicks its add-to-cart control
func (p *HomePage) AddFirstProductToCart(ctx context.Context) error {
	return addToCart(ctx, p.base, p.loc.Get("firstProduct"), p.loc.Get("firstProductAdd"))
}

func (p *HomePage) ClickViewProductOnFirst(ctx context.Context) error {
	view := p.loc.Get("firstProductView")
	if err := p.base.ScrollTo(ctx, view); err != nil {
		return err
	}
	return p.base.Click(ctx, view)
}

// ClickContinueShopping dismisses the added-to-cart modal and waits for it to close
func (p *HomePage) ClickContinueShopping(ctx context.Context) error {
	return dismiss(ctx, p.base, p.loc.Get("modalContinue"))
}

// ClickViewCart follows the added-to-cart modal's cart link
func (p *HomePage) ClickViewCart(ctx context.Context) error {
	return waitAndClick(ctx, p.base, p.loc.Get("modalViewCart"))
}

// addToCart hovers card and clicks control once it is visible
func addToCart(ctx context.Context, base *Base, card, control browser.Locator) error {
	if err := base.Hover(ctx, card); err != nil {
		return err
	}
	if err := base.WaitForDisplayed(ctx, control, base.DisplayTimeout()); err != nil {
		return err
	}
	return base.Click(ctx, control)
}

// dismiss clicks a modal control and waits until the control is gone
func dismiss(ctx context.Context, base *Base, control browser.Locator) error {
	if err := waitAndClick(ctx, base, control); err != nil {
		return err
	}
	return base.WaitForHidden(ctx, control, 0)
}

func waitAndClick(ctx context.Context, base *Base, locator browser.Locator) error {
	if err := base.WaitForDisplayed(ctx, locator, 0); err != nil {
		return err
	}
	return base.Click(ctx, locator)
}
