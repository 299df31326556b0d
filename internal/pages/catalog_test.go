package pages

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/automationexercise/shopcheck/internal/browser"
	"github.com/automationexercise/shopcheck/internal/browser/browsertest"
)

func TestCatalog(t *testing.T) {
	src := map[string]browser.Locator{
		"search": "#search_product",
		"submit": "#submit_search",
	}
	c := NewCatalog("products", src)

	assert.Equal(t, browser.Locator("#search_product"), c.Get("search"))
	assert.Equal(t, []string{"search", "submit"}, c.Names())

	src["search"] = "#changed"
	assert.Equal(t, browser.Locator("#search_product"), c.Get("search"), "catalog must not share the source map")

	assert.PanicsWithValue(t, `pages: products has no locator named "basket"`, func() {
		c.Get("basket")
	})
}

func TestPageCatalogsAreComplete(t *testing.T) {
	b := newTestBase(t, browsertest.New())

	tests := []struct {
		name  string
		cat   Catalog
		names []string
	}{
		{
			name:  "home",
			cat:   NewHomePage(b).loc,
			names: []string{"signupLogin", "products", "cart", "logout", "deleteAccount", "loggedInUser", "firstProduct", "firstProductAdd", "modalContinue", "modalViewCart"},
		},
		{
			name:  "products",
			cat:   NewProductsPage(b).loc,
			names: []string{"searchInput", "searchButton", "searchedTitle", "productNames", "secondProductAdd", "quantityInput", "detailsPrice"},
		},
		{
			name:  "signup",
			cat:   NewSignupPage(b).loc,
			names: []string{"signupName", "signupEmail", "titleMr", "titleMrs", "day", "month", "year", "country", "mobileNumber", "accountCreated", "accountDeleted"},
		},
		{
			name:  "cart",
			cat:   NewCartPage(b).loc,
			names: []string{"rows", "names", "prices", "quantities", "totalPrices", "delete", "emptyCart"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, n := range tt.names {
				assert.NotPanics(t, func() { tt.cat.Get(n) }, n)
			}
		})
	}
}
