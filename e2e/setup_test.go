//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/automationexercise/shopcheck/internal/browser"
	"github.com/automationexercise/shopcheck/internal/cli"
	"github.com/automationexercise/shopcheck/internal/config"
	"github.com/automationexercise/shopcheck/internal/journeys"
)

var (
	launcher   *browser.Launcher
	browserCfg config.BrowserConfig
)

// TestMain launches one browser for all tests. Without BASE_URL the journeys run against a
// storefront served in-process.
//
// Browsers must be installed first:
//
//	go run github.com/playwright-community/playwright-go/cmd/playwright@latest install chromium
func TestMain(m *testing.M) {
	os.Exit(run(m))
}

func run(m *testing.M) int {
	_ = godotenv.Load("../.env")

	cfg, err := config.LoadBrowserConfig(os.Getenv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid browser configuration: %v\n", err)
		return 1
	}
	browserCfg = *cfg

	if os.Getenv("BASE_URL") == "" {
		server, err := startStorefront()
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to start storefront: %v\n", err)
			return 1
		}
		defer server.Close()
		browserCfg.BaseURL = server.URL
	}

	launcher, err = browser.Launch(browserCfg, zap.NewNop())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to launch browser: %v\n", err)
		return 1
	}
	defer launcher.Close()

	return m.Run()
}

func startStorefront() (*httptest.Server, error) {
	noEnv := func(string) string { return "" }
	serverCfg := config.ServerConfig{SQLitePath: ":memory:"}

	db, dialect, err := cli.OpenAccountStore(noEnv, serverCfg, nil)
	if err != nil {
		return nil, err
	}
	deps, err := cli.BuildStorefront(serverCfg, db, dialect, nil)
	if err != nil {
		db.Close()
		return nil, err
	}

	server := httptest.NewServer(cli.NewMux(deps))
	// the account database lives as long as the process
	return server, nil
}

// newPages opens an isolated browser session for the test
func newPages(t *testing.T, logger *zap.Logger) *journeys.Pages {
	t.Helper()

	session, err := launcher.NewSession()
	if err != nil {
		t.Fatalf("Failed to open browser session: %v", err)
	}
	t.Cleanup(func() {
		if err := session.Close(); err != nil {
			t.Logf("Failed to close browser session: %v", err)
		}
	})

	p, err := journeys.NewPages(session.Driver, browserCfg.BaseURL, journeys.PageOptions(browserCfg, logger)...)
	if err != nil {
		t.Fatalf("Failed to build pages: %v", err)
	}
	return p
}

// runJourney runs each step of j as a subtest and stops at the first failing one. A failed
// step leaves a screenshot behind.
func runJourney(t *testing.T, j journeys.Journey) {
	t.Helper()

	logger := zaptest.NewLogger(t)
	p := newPages(t, logger)
	runner := journeys.NewRunner(logger, journeys.ScreenshotOnFailure(browserCfg.ScreenshotDir, logger))
	ctx := context.Background()

	for _, step := range j.Steps {
		passed := t.Run(step.Name, func(t *testing.T) {
			if sr := runner.RunStep(ctx, j.Name, step, p); sr.Err != nil {
				t.Fatal(sr.Err)
			}
		})
		if !passed {
			break
		}
	}
}
