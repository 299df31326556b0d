package journeys

import (
	"context"
	"strings"
)

// Step is one action-and-check unit of a journey. Steps share the page state left by the
// steps before them.
type Step struct {
	Name string
	Run  func(ctx context.Context, p *Pages) error
}

// Journey is an ordered list of steps. Each constructor returns fresh state, so a Journey
// value must not be run twice.
type Journey struct {
	Name  string
	Title string
	Steps []Step
}

// All returns a fresh instance of every journey
func All() []Journey {
	return []Journey{
		RegisterUser(),
		SearchProduct("Blue"),
		ProductQuantity(4),
		AddProductsToCart(),
		RemoveProductFromCart(),
		SignupWithMinimalUser(),
		SignupRejectsInvalidUser(),
	}
}

// Names lists the journey names in run order
func Names() []string {
	all := All()
	names := make([]string, len(all))
	for i, j := range all {
		names[i] = j.Name
	}
	return names
}

// Lookup returns a fresh instance of the named journey
func Lookup(name string) (Journey, bool) {
	for _, j := range All() {
		if strings.EqualFold(j.Name, name) {
			return j, true
		}
	}
	return Journey{}, false
}
