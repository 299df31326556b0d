package browser

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"

	"github.com/automationexercise/shopcheck/internal/config"
)

// Launcher owns the Playwright driver process and one browser instance. Sessions opened
// from it are isolated from each other by their own browser context.
type Launcher struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	cfg     config.BrowserConfig
	logger  *zap.Logger
}

// Session is one isolated tab with its own cookies and storage
type Session struct {
	ID      string
	Driver  *PlaywrightDriver
	context playwright.BrowserContext
	page    playwright.Page
	logger  *zap.Logger
}

// Launch starts Playwright and the configured browser engine
func Launch(cfg config.BrowserConfig, logger *zap.Logger) (*Launcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	var engine playwright.BrowserType
	switch cfg.Browser {
	case config.BrowserFirefox:
		engine = pw.Firefox
	case config.BrowserWebKit:
		engine = pw.WebKit
	default:
		engine = pw.Chromium
	}

	opts := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(cfg.Headless),
	}
	if engine == pw.Chromium {
		opts.Args = []string{fmt.Sprintf("--window-size=%d,%d", cfg.WindowWidth, cfg.WindowHeight)}
	}

	browser, err := engine.Launch(opts)
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("failed to launch %s: %w", cfg.Browser, err)
	}

	logger.Info("browser launched",
		zap.String("browser", cfg.Browser),
		zap.Bool("headless", cfg.Headless),
		zap.String("baseURL", cfg.BaseURL),
	)

	return &Launcher{
		pw:      pw,
		browser: browser,
		cfg:     cfg,
		logger:  logger,
	}, nil
}

// NewSession opens a fresh browser context and tab sized to the configured window
func (l *Launcher) NewSession() (*Session, error) {
	ctx, err := l.browser.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  l.cfg.WindowWidth,
			Height: l.cfg.WindowHeight,
		},
		IgnoreHttpsErrors: playwright.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create browser context: %w", err)
	}

	page, err := ctx.NewPage()
	if err != nil {
		_ = ctx.Close()
		return nil, fmt.Errorf("failed to open page: %w", err)
	}

	id := uuid.NewString()
	logger := l.logger.With(zap.String("session", id))
	logger.Debug("session opened")

	return &Session{
		ID:      id,
		Driver:  NewPlaywrightDriver(page, logger),
		context: ctx,
		page:    page,
		logger:  logger,
	}, nil
}

// Close discards the session's cookies and storage along with its tab
func (s *Session) Close() error {
	if err := s.context.Close(); err != nil {
		return fmt.Errorf("failed to close session %s: %w", s.ID, err)
	}
	s.logger.Debug("session closed")
	return nil
}

// Close shuts down the browser and the Playwright driver
func (l *Launcher) Close() error {
	var errs []error
	if err := l.browser.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close browser: %w", err))
	}
	if err := l.pw.Stop(); err != nil {
		errs = append(errs, fmt.Errorf("failed to stop playwright: %w", err))
	}
	return errors.Join(errs...)
}
