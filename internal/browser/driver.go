// Package browser defines the contract between page objects and the browser-automation
// driver, and binds it to playwright-go.
package browser

import (
	"context"
	"time"
)

// Locator is an opaque query identifying zero or more elements, usually a CSS selector.
type Locator string

func (l Locator) String() string {
	return string(l)
}

// Driver is the browser session the page objects drive. One Driver serves one tab and is
// used by one flow at a time.
type Driver interface {
	// Navigate loads url in the current tab.
	Navigate(ctx context.Context, url string) error

	// Find returns a handle to the first element matching locator. The handle is resolved
	// lazily on every action, so a missing element is reported by the action, not by Find.
	Find(ctx context.Context, locator Locator) (Element, error)

	// FindAll returns handles to every element currently matching locator, in document
	// order. No match is an empty slice, not an error.
	FindAll(ctx context.Context, locator Locator) ([]Element, error)

	// CurrentURL returns the URL of the current tab.
	CurrentURL(ctx context.Context) (string, error)

	// Screenshot captures the full page as PNG.
	Screenshot(ctx context.Context) ([]byte, error)
}

// Element is a handle to a live element. It must not be kept across actions.
type Element interface {
	WaitForDisplayed(ctx context.Context, timeout time.Duration) error
	WaitForEnabled(ctx context.Context, timeout time.Duration) error
	ScrollIntoView(ctx context.Context) error
	Click(ctx context.Context) error
	SetValue(ctx context.Context, value string) error
	ClearValue(ctx context.Context) error
	Text(ctx context.Context) (string, error)
	Attribute(ctx context.Context, name string) (string, error)
	IsDisplayed(ctx context.Context) (bool, error)
	IsSelected(ctx context.Context) (bool, error)
	Hover(ctx context.Context) error
	SelectByValue(ctx context.Context, value string) error
}
