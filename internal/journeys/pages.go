// Package journeys sequences page-object actions into the storefront's user journeys and
// runs them step by step.
package journeys

import (
	"go.uber.org/zap"

	"github.com/automationexercise/shopcheck/internal/browser"
	"github.com/automationexercise/shopcheck/internal/config"
	"github.com/automationexercise/shopcheck/internal/pages"
)

// Pages is one page-object graph bound to one browser session
type Pages struct {
	Base     *pages.Base
	Home     *pages.HomePage
	Products *pages.ProductsPage
	Signup   *pages.SignupPage
	Cart     *pages.CartPage
}

// NewPages builds every page object on a single Base for driver
func NewPages(driver browser.Driver, baseURL string, opts ...pages.Option) (*Pages, error) {
	base, err := pages.NewBase(driver, baseURL, opts...)
	if err != nil {
		return nil, err
	}
	return &Pages{
		Base:     base,
		Home:     pages.NewHomePage(base),
		Products: pages.NewProductsPage(base),
		Signup:   pages.NewSignupPage(base),
		Cart:     pages.NewCartPage(base),
	}, nil
}

// PageOptions translates browser configuration into page options
func PageOptions(cfg config.BrowserConfig, logger *zap.Logger) []pages.Option {
	return []pages.Option{
		pages.WithWaitTimeout(cfg.WaitTimeout),
		pages.WithDisplayTimeout(cfg.DisplayTimeout),
		pages.WithEmptyCartTimeout(cfg.EmptyCartTimeout),
		pages.WithLogger(logger),
	}
}
