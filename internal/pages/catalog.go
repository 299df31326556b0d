package pages

import (
	"fmt"
	"maps"
	"slices"

	"github.com/automationexercise/shopcheck/internal/browser"
)

// Catalog maps the logical element names of one page to their locators. It is fixed once
// built.
type Catalog struct {
	page     string
	locators map[string]browser.Locator
}

// NewCatalog copies locators into a Catalog for page
func NewCatalog(page string, locators map[string]browser.Locator) Catalog {
	return Catalog{
		page:     page,
		locators: maps.Clone(locators),
	}
}

// Get returns the locator registered under name. An unknown name is a programming error
// and panics.
func (c Catalog) Get(name string) browser.Locator {
	loc, ok := c.locators[name]
	if !ok {
		panic(fmt.Sprintf("pages: %s has no locator named %q", c.page, name))
	}
	return loc
}

// Names lists the registered names in sorted order
func (c Catalog) Names() []string {
	return slices.Sorted(maps.Keys(c.locators))
}
