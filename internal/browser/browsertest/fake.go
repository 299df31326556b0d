// Package browsertest provides an in-memory browser.Driver for unit tests of page objects.
package browsertest

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/automationexercise/shopcheck/internal/browser"
)

// Element is a fake DOM node. Fields may be set freely before it is registered with a
// Driver; afterwards the Driver mutates it under its own lock.
type Element struct {
	Text     string
	Value    string
	Attrs    map[string]string
	Hidden   bool
	Disabled bool
	Selected bool
	// Toggle makes a click flip Selected, like a checkbox
	Toggle bool
	// Options lists the values SelectByValue accepts
	Options []string

	Clicks int
	Hovers int

	// OnClick and OnHover run after the action, without the driver lock held
	OnClick func(d *Driver)
	OnHover func(d *Driver)
}

// Wait records one WaitForDisplayed or WaitForEnabled call
type Wait struct {
	Locator browser.Locator
	Timeout time.Duration
}

// Driver is a fake browser.Driver keyed by locator
type Driver struct {
	// OnNavigate runs after every successful navigation
	OnNavigate    func(d *Driver, url string)
	NavigateErr   error
	ScreenshotErr error

	mu       sync.Mutex
	elements map[browser.Locator][]*Element
	url      string
	visits   []string
	waits    []Wait
}

var _ browser.Driver = (*Driver)(nil)

// New returns an empty page at about:blank
func New() *Driver {
	return &Driver{
		elements: make(map[browser.Locator][]*Element),
		url:      "about:blank",
	}
}

// Set replaces every element matching locator
func (d *Driver) Set(locator browser.Locator, elements ...*Element) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.elements[locator] = elements
}

// Add appends an element matching locator
func (d *Driver) Add(locator browser.Locator, element *Element) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.elements[locator] = append(d.elements[locator], element)
}

// Remove drops the element at index. Out-of-range indexes are ignored.
func (d *Driver) Remove(locator browser.Locator, index int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	els := d.elements[locator]
	if index < 0 || index >= len(els) {
		return
	}
	d.elements[locator] = slices.Delete(slices.Clone(els), index, index+1)
}

// Elements returns the elements currently matching locator
func (d *Driver) Elements(locator browser.Locator) []*Element {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.elements[locator])
}

// Visits returns every URL navigated to, in order
func (d *Driver) Visits() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.visits)
}

// Waits returns every wait requested, in order
func (d *Driver) Waits() []Wait {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.waits)
}

// SetURL changes the current URL without recording a visit
func (d *Driver) SetURL(url string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.url = url
}

func (d *Driver) Navigate(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d.NavigateErr != nil {
		return d.NavigateErr
	}

	d.mu.Lock()
	d.url = url
	d.visits = append(d.visits, url)
	hook := d.OnNavigate
	d.mu.Unlock()

	if hook != nil {
		hook(d, url)
	}
	return nil
}

func (d *Driver) Find(ctx context.Context, locator browser.Locator) (browser.Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &handle{driver: d, locator: locator, index: 0}, nil
}

func (d *Driver) FindAll(ctx context.Context, locator browser.Locator) ([]browser.Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d.mu.Lock()
	n := len(d.elements[locator])
	d.mu.Unlock()

	handles := make([]browser.Element, n)
	for i := range handles {
		handles[i] = &handle{driver: d, locator: locator, index: i}
	}
	return handles, nil
}

func (d *Driver) CurrentURL(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.url, nil
}

// pngHeader is returned by Screenshot so callers can sniff the format
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func (d *Driver) Screenshot(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if d.ScreenshotErr != nil {
		return nil, d.ScreenshotErr
	}
	return slices.Clone(pngHeader), nil
}

// handle re-resolves its element by position on every call, like a live query
type handle struct {
	driver  *Driver
	locator browser.Locator
	index   int
}

// resolve returns the element with the driver lock held; the caller must unlock
func (h *handle) resolve() (*Element, error) {
	h.driver.mu.Lock()
	els := h.driver.elements[h.locator]
	if h.index >= len(els) || els[h.index] == nil {
		h.driver.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", browser.ErrNotFound, h.locator)
	}
	return els[h.index], nil
}

// visible resolves an element that must be displayed and enabled for an action
func (h *handle) visible() (*Element, error) {
	el, err := h.resolve()
	if err != nil {
		return nil, err
	}
	if el.Hidden {
		h.driver.mu.Unlock()
		return nil, fmt.Errorf("%w: %s is hidden", browser.ErrTimeout, h.locator)
	}
	return el, nil
}

func (h *handle) recordWait(timeout time.Duration) {
	h.driver.mu.Lock()
	h.driver.waits = append(h.driver.waits, Wait{Locator: h.locator, Timeout: timeout})
	h.driver.mu.Unlock()
}

func (h *handle) WaitForDisplayed(ctx context.Context, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	h.recordWait(timeout)

	el, err := h.resolve()
	if err != nil {
		return fmt.Errorf("%w: %s never appeared", browser.ErrTimeout, h.locator)
	}
	defer h.driver.mu.Unlock()
	if el.Hidden {
		return fmt.Errorf("%w: %s stayed hidden", browser.ErrTimeout, h.locator)
	}
	return nil
}

func (h *handle) WaitForEnabled(ctx context.Context, timeout time.Duration) error {
	if err := h.WaitForDisplayed(ctx, timeout); err != nil {
		return err
	}
	el, err := h.resolve()
	if err != nil {
		return fmt.Errorf("%w: %s detached", browser.ErrTimeout, h.locator)
	}
	defer h.driver.mu.Unlock()
	if el.Disabled {
		return fmt.Errorf("%w: %s stayed disabled", browser.ErrTimeout, h.locator)
	}
	return nil
}

func (h *handle) ScrollIntoView(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := h.resolve(); err != nil {
		return err
	}
	h.driver.mu.Unlock()
	return nil
}

func (h *handle) Click(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	el, err := h.visible()
	if err != nil {
		return err
	}
	if el.Disabled {
		h.driver.mu.Unlock()
		return fmt.Errorf("%w: %s is disabled", browser.ErrTimeout, h.locator)
	}
	el.Clicks++
	if el.Toggle {
		el.Selected = !el.Selected
	}
	hook := el.OnClick
	h.driver.mu.Unlock()

	if hook != nil {
		hook(h.driver)
	}
	return nil
}

func (h *handle) SetValue(ctx context.Context, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	el, err := h.visible()
	if err != nil {
		return err
	}
	defer h.driver.mu.Unlock()
	el.Value = value
	return nil
}

func (h *handle) ClearValue(ctx context.Context) error {
	return h.SetValue(ctx, "")
}

func (h *handle) Text(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	el, err := h.resolve()
	if err != nil {
		return "", err
	}
	defer h.driver.mu.Unlock()
	return el.Text, nil
}

func (h *handle) Attribute(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	el, err := h.resolve()
	if err != nil {
		return "", err
	}
	defer h.driver.mu.Unlock()
	if v, ok := el.Attrs[name]; ok {
		return v, nil
	}
	if name == "value" {
		return el.Value, nil
	}
	return "", nil
}

func (h *handle) IsDisplayed(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	el, err := h.resolve()
	if err != nil {
		return false, nil
	}
	defer h.driver.mu.Unlock()
	return !el.Hidden, nil
}

func (h *handle) IsSelected(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	el, err := h.resolve()
	if err != nil {
		return false, err
	}
	defer h.driver.mu.Unlock()
	return el.Selected, nil
}

func (h *handle) Hover(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	el, err := h.visible()
	if err != nil {
		return err
	}
	el.Hovers++
	hook := el.OnHover
	h.driver.mu.Unlock()

	if hook != nil {
		hook(h.driver)
	}
	return nil
}

func (h *handle) SelectByValue(ctx context.Context, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	el, err := h.visible()
	if err != nil {
		return err
	}
	defer h.driver.mu.Unlock()
	if !slices.Contains(el.Options, value) {
		return fmt.Errorf("%w: no option with value %q in %s", browser.ErrNotFound, value, h.locator)
	}
	el.Value = value
	return nil
}
