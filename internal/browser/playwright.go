package browser

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"
)

// defaultActionTimeout bounds a single driver call when the caller's context has no deadline
const defaultActionTimeout = 15 * time.Second

// PlaywrightDriver implements Driver on top of a playwright Page
type PlaywrightDriver struct {
	page   playwright.Page
	logger *zap.Logger
}

// NewPlaywrightDriver wraps page. A nil logger disables logging.
func NewPlaywrightDriver(page playwright.Page, logger *zap.Logger) *PlaywrightDriver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlaywrightDriver{
		page:   page,
		logger: logger,
	}
}

// Navigate loads url and waits for DOMContentLoaded
func (d *PlaywrightDriver) Navigate(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	d.logger.Debug("navigate", zap.String("url", url))
	_, err := d.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(timeoutMillis(ctx, 2*defaultActionTimeout)),
	})
	if err != nil {
		return fmt.Errorf("navigate to %s: %w", url, translate(err))
	}
	return nil
}

// Find returns a lazy handle on the first match, mirroring WebdriverIO's $()
func (d *PlaywrightDriver) Find(ctx context.Context, locator Locator) (Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &playwrightElement{
		locator:  d.page.Locator(string(locator)).First(),
		selector: locator,
		logger:   d.logger,
	}, nil
}

// FindAll resolves the current matches into positional handles
func (d *PlaywrightDriver) FindAll(ctx context.Context, locator Locator) ([]Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	matches, err := d.page.Locator(string(locator)).All()
	if err != nil {
		return nil, fmt.Errorf("find all %q: %w", locator, translate(err))
	}

	elements := make([]Element, 0, len(matches))
	for _, m := range matches {
		elements = append(elements, &playwrightElement{
			locator:  m,
			selector: locator,
			logger:   d.logger,
		})
	}
	return elements, nil
}

// CurrentURL returns the page URL
func (d *PlaywrightDriver) CurrentURL(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return d.page.URL(), nil
}

// Screenshot captures the full scrollable page
func (d *PlaywrightDriver) Screenshot(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	png, err := d.page.Screenshot(playwright.PageScreenshotOptions{
		FullPage: playwright.Bool(true),
		Timeout:  playwright.Float(timeoutMillis(ctx, defaultActionTimeout)),
	})
	if err != nil {
		return nil, fmt.Errorf("screenshot: %w", translate(err))
	}
	return png, nil
}

type playwrightElement struct {
	locator  playwright.Locator
	selector Locator
	logger   *zap.Logger
}

func (e *playwrightElement) WaitForDisplayed(ctx context.Context, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return translate(e.locator.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(timeoutMillis(ctx, timeout)),
	}))
}

func (e *playwrightElement) WaitForEnabled(ctx context.Context, timeout time.Duration) error {
	if err := e.WaitForDisplayed(ctx, timeout); err != nil {
		return err
	}

	deadline := time.Now().Add(timeout)
	for {
		enabled, err := e.locator.IsEnabled()
		if err != nil {
			return translate(err)
		}
		if enabled {
			return nil
		}
		if time.Now().After(deadline) {
			return ErrTimeout
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(100 * time.Millisecond):
		}
	}
}

func (e *playwrightElement) ScrollIntoView(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return translate(e.locator.ScrollIntoViewIfNeeded(playwright.LocatorScrollIntoViewIfNeededOptions{
		Timeout: playwright.Float(timeoutMillis(ctx, defaultActionTimeout)),
	}))
}

func (e *playwrightElement) Click(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e.logger.Debug("click", zap.Stringer("locator", e.selector))
	return translate(e.locator.Click(playwright.LocatorClickOptions{
		Timeout: playwright.Float(timeoutMillis(ctx, defaultActionTimeout)),
	}))
}

func (e *playwrightElement) SetValue(ctx context.Context, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e.logger.Debug("set value", zap.Stringer("locator", e.selector))
	return translate(e.locator.Fill(value, playwright.LocatorFillOptions{
		Timeout: playwright.Float(timeoutMillis(ctx, defaultActionTimeout)),
	}))
}

func (e *playwrightElement) ClearValue(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return translate(e.locator.Clear(playwright.LocatorClearOptions{
		Timeout: playwright.Float(timeoutMillis(ctx, defaultActionTimeout)),
	}))
}

func (e *playwrightElement) Text(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	text, err := e.locator.InnerText(playwright.LocatorInnerTextOptions{
		Timeout: playwright.Float(timeoutMillis(ctx, defaultActionTimeout)),
	})
	return text, translate(err)
}

func (e *playwrightElement) Attribute(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	value, err := e.locator.GetAttribute(name, playwright.LocatorGetAttributeOptions{
		Timeout: playwright.Float(timeoutMillis(ctx, defaultActionTimeout)),
	})
	return value, translate(err)
}

func (e *playwrightElement) IsDisplayed(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	visible, err := e.locator.IsVisible()
	return visible, translate(err)
}

func (e *playwrightElement) IsSelected(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	checked, err := e.locator.IsChecked(playwright.LocatorIsCheckedOptions{
		Timeout: playwright.Float(timeoutMillis(ctx, defaultActionTimeout)),
	})
	return checked, translate(err)
}

func (e *playwrightElement) Hover(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e.logger.Debug("hover", zap.Stringer("locator", e.selector))
	return translate(e.locator.Hover(playwright.LocatorHoverOptions{
		Timeout: playwright.Float(timeoutMillis(ctx, defaultActionTimeout)),
	}))
}

func (e *playwrightElement) SelectByValue(ctx context.Context, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	selected, err := e.locator.SelectOption(playwright.SelectOptionValues{
		Values: playwright.StringSlice(value),
	}, playwright.LocatorSelectOptionOptions{
		Timeout: playwright.Float(timeoutMillis(ctx, defaultActionTimeout)),
	})
	if err != nil {
		return translate(err)
	}
	if len(selected) == 0 {
		return fmt.Errorf("%w: no option with value %q", ErrNotFound, value)
	}
	return nil
}

// translate maps playwright timeouts onto ErrTimeout, keeping the original message
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, playwright.ErrTimeout) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return err
}

// timeoutMillis returns the smaller of d and the time left on ctx, in milliseconds
func timeoutMillis(ctx context.Context, d time.Duration) float64 {
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left < d {
			d = left
		}
	}
	if d < time.Millisecond {
		d = time.Millisecond
	}
	return float64(d.Milliseconds())
}
