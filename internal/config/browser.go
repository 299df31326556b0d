package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Supported browser engines
const (
	BrowserChromium = "chromium"
	BrowserFirefox  = "firefox"
	BrowserWebKit   = "webkit"
)

// DefaultBaseURL is the public demo storefront the suite was written against
const DefaultBaseURL = "https://automationexercise.com"

// BrowserConfig holds configuration for browser sessions and page waits
type BrowserConfig struct {
	BaseURL          string
	Browser          string
	Headless         bool
	WindowWidth      int
	WindowHeight     int
	WaitTimeout      time.Duration
	DisplayTimeout   time.Duration
	EmptyCartTimeout time.Duration
	ScreenshotDir    string
}

// LoadBrowserConfig loads browser configuration from environment variables
func LoadBrowserConfig(getenv func(string) string) (*BrowserConfig, error) {
	config := &BrowserConfig{
		BaseURL:          strings.TrimRight(getenv("BASE_URL"), "/"),
		Browser:          strings.ToLower(getenv("BROWSER")),
		Headless:         true,
		WindowWidth:      1920,
		WindowHeight:     1080,
		WaitTimeout:      15 * time.Second,
		DisplayTimeout:   10 * time.Second,
		EmptyCartTimeout: 5 * time.Second,
		ScreenshotDir:    getenv("SCREENSHOT_DIR"),
	}

	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.ScreenshotDir == "" {
		config.ScreenshotDir = "screenshots"
	}

	switch config.Browser {
	case "":
		config.Browser = BrowserChromium
	case BrowserChromium, BrowserFirefox, BrowserWebKit:
	default:
		return nil, fmt.Errorf("BROWSER must be one of chromium, firefox, webkit: got %q", config.Browser)
	}

	if v := getenv("HEADLESS"); v != "" {
		headless, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("HEADLESS must be a boolean: %w", err)
		}
		config.Headless = headless
	}

	var err error
	if config.WindowWidth, err = intEnv(getenv, "WINDOW_WIDTH", config.WindowWidth); err != nil {
		return nil, err
	}
	if config.WindowHeight, err = intEnv(getenv, "WINDOW_HEIGHT", config.WindowHeight); err != nil {
		return nil, err
	}
	if config.WaitTimeout, err = durationEnv(getenv, "WAIT_TIMEOUT", config.WaitTimeout); err != nil {
		return nil, err
	}
	if config.DisplayTimeout, err = durationEnv(getenv, "DISPLAY_TIMEOUT", config.DisplayTimeout); err != nil {
		return nil, err
	}
	if config.EmptyCartTimeout, err = durationEnv(getenv, "EMPTY_CART_TIMEOUT", config.EmptyCartTimeout); err != nil {
		return nil, err
	}

	return config, nil
}

// intEnv parses a positive integer variable, falling back to def when unset
func intEnv(getenv func(string) string, key string, def int) (int, error) {
	v := getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer: got %q", key, v)
	}
	return n, nil
}

// durationEnv parses a positive duration such as "15s", falling back to def when unset
func durationEnv(getenv func(string) string, key string, def time.Duration) (time.Duration, error) {
	v := getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s must be a positive duration: got %q", key, v)
	}
	return d, nil
}
