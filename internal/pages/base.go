// Package pages holds the page objects for the automationexercise.com storefront and the
// Base primitives they are built from.
package pages

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/automationexercise/shopcheck/internal/browser"
)

// Default wait bounds
const (
	DefaultWaitTimeout      = 15 * time.Second
	DefaultDisplayTimeout   = 10 * time.Second
	DefaultEmptyCartTimeout = 5 * time.Second
	DefaultPollInterval     = 100 * time.Millisecond
)

// Base is the set of primitives page objects are built from. Every primitive resolves its
// locator again on each call; no element handle outlives the call that found it.
type Base struct {
	driver  browser.Driver
	baseURL *url.URL
	logger  *zap.Logger

	waitTimeout      time.Duration
	displayTimeout   time.Duration
	emptyCartTimeout time.Duration
	pollInterval     time.Duration
}

// Option configures a Base
type Option func(*Base)

// WithWaitTimeout bounds the visibility wait that precedes every action
func WithWaitTimeout(d time.Duration) Option {
	return func(b *Base) {
		if d > 0 {
			b.waitTimeout = d
		}
	}
}

// WithDisplayTimeout bounds IsDisplayed
func WithDisplayTimeout(d time.Duration) Option {
	return func(b *Base) {
		if d > 0 {
			b.displayTimeout = d
		}
	}
}

// WithEmptyCartTimeout bounds the empty-cart fast path of CartPage.IsCartEmpty
func WithEmptyCartTimeout(d time.Duration) Option {
	return func(b *Base) {
		if d > 0 {
			b.emptyCartTimeout = d
		}
	}
}

// WithPollInterval sets how often WaitUntil re-evaluates its condition
func WithPollInterval(d time.Duration) Option {
	return func(b *Base) {
		if d > 0 {
			b.pollInterval = d
		}
	}
}

// WithLogger sets the logger primitives report to at debug level
func WithLogger(logger *zap.Logger) Option {
	return func(b *Base) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// NewBase binds the primitives to one driver session. Relative paths given to Open are
// resolved against baseURL.
func NewBase(driver browser.Driver, baseURL string, opts ...Option) (*Base, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q: scheme and host are required", baseURL)
	}

	b := &Base{
		driver:           driver,
		baseURL:          u,
		logger:           zap.NewNop(),
		waitTimeout:      DefaultWaitTimeout,
		displayTimeout:   DefaultDisplayTimeout,
		emptyCartTimeout: DefaultEmptyCartTimeout,
		pollInterval:     DefaultPollInterval,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// URL resolves path against the base URL. Absolute URLs are returned unchanged.
func (b *Base) URL(path string) string {
	ref, err := url.Parse(path)
	if err != nil {
		return b.baseURL.String() + strings.TrimLeft(path, "/")
	}
	return b.baseURL.ResolveReference(ref).String()
}

// Open navigates to path
func (b *Base) Open(ctx context.Context, path string) error {
	target := b.URL(path)
	b.logger.Debug("open", zap.String("url", target))
	if err := b.driver.Navigate(ctx, target); err != nil {
		return fmt.Errorf("open %s: %w", target, err)
	}
	return nil
}

// visible finds locator and waits for it to be displayed
func (b *Base) visible(ctx context.Context, locator browser.Locator, timeout time.Duration) (browser.Element, error) {
	el, err := b.driver.Find(ctx, locator)
	if err != nil {
		return nil, err
	}
	if err := el.WaitForDisplayed(ctx, timeout); err != nil {
		return nil, err
	}
	return el, nil
}

// Click waits for locator to be visible, scrolls it into view and clicks it
func (b *Base) Click(ctx context.Context, locator browser.Locator) error {
	b.logger.Debug("click", zap.Stringer("locator", locator))
	el, err := b.visible(ctx, locator, b.waitTimeout)
	if err != nil {
		return browser.NewActionError("click", locator, browser.ErrNotInteractable, err)
	}
	if err := el.ScrollIntoView(ctx); err != nil {
		return browser.NewActionError("click", locator, browser.ErrNotInteractable, err)
	}
	if err := el.Click(ctx); err != nil {
		return browser.NewActionError("click", locator, browser.ErrNotInteractable, err)
	}
	return nil
}

// SetValue overwrites the value of an input
func (b *Base) SetValue(ctx context.Context, locator browser.Locator, value string) error {
	b.logger.Debug("set value", zap.Stringer("locator", locator))
	el, err := b.visible(ctx, locator, b.waitTimeout)
	if err != nil {
		return browser.NewActionError("set value", locator, browser.ErrNotInteractable, err)
	}
	if err := el.ScrollIntoView(ctx); err != nil {
		return browser.NewActionError("set value", locator, browser.ErrNotInteractable, err)
	}
	if err := el.SetValue(ctx, value); err != nil {
		return browser.NewActionError("set value", locator, browser.ErrNotInteractable, err)
	}
	return nil
}

// ClearValue empties an input
func (b *Base) ClearValue(ctx context.Context, locator browser.Locator) error {
	b.logger.Debug("clear value", zap.Stringer("locator", locator))
	el, err := b.visible(ctx, locator, b.waitTimeout)
	if err != nil {
		return browser.NewActionError("clear value", locator, browser.ErrNotInteractable, err)
	}
	if err := el.ClearValue(ctx); err != nil {
		return browser.NewActionError("clear value", locator, browser.ErrNotInteractable, err)
	}
	return nil
}

// Text returns the visible text of locator
func (b *Base) Text(ctx context.Context, locator browser.Locator) (string, error) {
	el, err := b.visible(ctx, locator, b.waitTimeout)
	if err != nil {
		return "", browser.NewActionError("get text", locator, browser.ErrNotFound, err)
	}
	text, err := el.Text(ctx)
	if err != nil {
		return "", browser.NewActionError("get text", locator, nil, err)
	}
	return strings.TrimSpace(text), nil
}

// Attribute returns the named attribute of locator, or "" when it is absent
func (b *Base) Attribute(ctx context.Context, locator browser.Locator, name string) (string, error) {
	el, err := b.visible(ctx, locator, b.waitTimeout)
	if err != nil {
		return "", browser.NewActionError("get attribute "+name, locator, browser.ErrNotFound, err)
	}
	value, err := el.Attribute(ctx, name)
	if err != nil {
		return "", browser.NewActionError("get attribute "+name, locator, nil, err)
	}
	return value, nil
}

// IsDisplayed reports whether locator becomes visible within the display timeout. Absence is
// an answer here, so every failure reads as false.
func (b *Base) IsDisplayed(ctx context.Context, locator browser.Locator) bool {
	el, err := b.visible(ctx, locator, b.displayTimeout)
	if err != nil {
		b.logger.Debug("not displayed", zap.Stringer("locator", locator), zap.Error(err))
		return false
	}
	displayed, err := el.IsDisplayed(ctx)
	return err == nil && displayed
}

// WaitForDisplayed blocks until locator is visible. A timeout of zero or less uses the wait
// timeout.
func (b *Base) WaitForDisplayed(ctx context.Context, locator browser.Locator, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = b.waitTimeout
	}
	if _, err := b.visible(ctx, locator, timeout); err != nil {
		return browser.NewActionError("wait for displayed", locator, browser.ErrTimeout, err)
	}
	return nil
}

// WaitForHidden blocks until locator is absent or not displayed
func (b *Base) WaitForHidden(ctx context.Context, locator browser.Locator, timeout time.Duration) error {
	err := b.WaitUntil(ctx, timeout, func(ctx context.Context) (bool, error) {
		el, err := b.driver.Find(ctx, locator)
		if err != nil {
			return false, err
		}
		shown, err := el.IsDisplayed(ctx)
		if err != nil {
			return false, err
		}
		return !shown, nil
	})
	if err != nil {
		return browser.NewActionError("wait for hidden", locator, browser.ErrTimeout, err)
	}
	return nil
}

// Hover moves the pointer onto locator, revealing hover-only controls
func (b *Base) Hover(ctx context.Context, locator browser.Locator) error {
	b.logger.Debug("hover", zap.Stringer("locator", locator))
	el, err := b.visible(ctx, locator, b.waitTimeout)
	if err != nil {
		return browser.NewActionError("hover", locator, browser.ErrNotInteractable, err)
	}
	if err := el.ScrollIntoView(ctx); err != nil {
		return browser.NewActionError("hover", locator, browser.ErrNotInteractable, err)
	}
	if err := el.Hover(ctx); err != nil {
		return browser.NewActionError("hover", locator, browser.ErrNotInteractable, err)
	}
	return nil
}

// SelectCheckbox checks locator unless it is already checked
func (b *Base) SelectCheckbox(ctx context.Context, locator browser.Locator) error {
	el, err := b.visible(ctx, locator, b.waitTimeout)
	if err != nil {
		return browser.NewActionError("select checkbox", locator, browser.ErrNotInteractable, err)
	}
	if err := el.ScrollIntoView(ctx); err != nil {
		return browser.NewActionError("select checkbox", locator, browser.ErrNotInteractable, err)
	}

	selected, err := el.IsSelected(ctx)
	if err != nil {
		return browser.NewActionError("select checkbox", locator, browser.ErrNotInteractable, err)
	}
	if selected {
		return nil
	}

	b.logger.Debug("check", zap.Stringer("locator", locator))
	if err := el.Click(ctx); err != nil {
		return browser.NewActionError("select checkbox", locator, browser.ErrNotInteractable, err)
	}
	return nil
}

// SelectByValue picks the dropdown option whose value attribute is value
func (b *Base) SelectByValue(ctx context.Context, locator browser.Locator, value string) error {
	b.logger.Debug("select", zap.Stringer("locator", locator), zap.String("value", value))
	el, err := b.visible(ctx, locator, b.waitTimeout)
	if err != nil {
		return browser.NewActionError("select "+value, locator, browser.ErrNotInteractable, err)
	}
	if err := el.ScrollIntoView(ctx); err != nil {
		return browser.NewActionError("select "+value, locator, browser.ErrNotInteractable, err)
	}
	if err := el.SelectByValue(ctx, value); err != nil {
		return browser.NewActionError("select "+value, locator, browser.ErrNotInteractable, err)
	}
	return nil
}

// ScrollTo brings locator into the viewport without waiting for it to be visible
func (b *Base) ScrollTo(ctx context.Context, locator browser.Locator) error {
	el, err := b.driver.Find(ctx, locator)
	if err != nil {
		return browser.NewActionError("scroll", locator, browser.ErrNotFound, err)
	}
	if err := el.ScrollIntoView(ctx); err != nil {
		return browser.NewActionError("scroll", locator, browser.ErrNotFound, err)
	}
	return nil
}

// WaitForClickable blocks until locator is visible and enabled
func (b *Base) WaitForClickable(ctx context.Context, locator browser.Locator) error {
	el, err := b.driver.Find(ctx, locator)
	if err != nil {
		return browser.NewActionError("wait for clickable", locator, browser.ErrTimeout, err)
	}
	if err := el.WaitForEnabled(ctx, b.waitTimeout); err != nil {
		return browser.NewActionError("wait for clickable", locator, browser.ErrTimeout, err)
	}
	return nil
}

// All returns handles to every current match of locator
func (b *Base) All(ctx context.Context, locator browser.Locator) ([]browser.Element, error) {
	els, err := b.driver.FindAll(ctx, locator)
	if err != nil {
		return nil, browser.NewActionError("find all", locator, nil, err)
	}
	return els, nil
}

// Count returns the number of current matches of locator
func (b *Base) Count(ctx context.Context, locator browser.Locator) (int, error) {
	els, err := b.All(ctx, locator)
	if err != nil {
		return 0, err
	}
	return len(els), nil
}

// Texts returns the text of every match of locator, in document order
func (b *Base) Texts(ctx context.Context, locator browser.Locator) ([]string, error) {
	els, err := b.All(ctx, locator)
	if err != nil {
		return nil, err
	}

	texts := make([]string, 0, len(els))
	for i, el := range els {
		text, err := el.Text(ctx)
		if err != nil {
			return nil, browser.NewActionError(fmt.Sprintf("get text of match %d", i), locator, nil, err)
		}
		texts = append(texts, strings.TrimSpace(text))
	}
	return texts, nil
}

// CurrentURL returns the URL of the tab
func (b *Base) CurrentURL(ctx context.Context) (string, error) {
	return b.driver.CurrentURL(ctx)
}

// Screenshot captures the full page as PNG
func (b *Base) Screenshot(ctx context.Context) ([]byte, error) {
	return b.driver.Screenshot(ctx)
}

// WaitUntil polls cond until it reports true, returns an error, or timeout elapses. A
// timeout of zero or less uses the wait timeout.
func (b *Base) WaitUntil(ctx context.Context, timeout time.Duration, cond func(context.Context) (bool, error)) error {
	if timeout <= 0 {
		timeout = b.waitTimeout
	}
	deadline := time.Now().Add(timeout)

	ticker := time.NewTicker(b.pollInterval)
	defer ticker.Stop()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		ok, err := cond(ctx)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
		if !time.Now().Before(deadline) {
			return fmt.Errorf("%w: condition not met within %s", browser.ErrTimeout, timeout)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Settle pauses for d. Only for animations that expose no observable end state.
func (b *Base) Settle(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// DisplayTimeout returns the bound IsDisplayed waits for
func (b *Base) DisplayTimeout() time.Duration {
	return b.displayTimeout
}
