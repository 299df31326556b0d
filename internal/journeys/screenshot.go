package journeys

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/iancoleman/strcase"
	"go.uber.org/zap"
)

// screenshotTimeout bounds the capture even when the step failed on an expired context
const screenshotTimeout = 10 * time.Second

var unsafeFileChars = regexp.MustCompile(`[^a-z0-9-]+`)

// ScreenshotOnFailure returns a hook that saves a full-page PNG of the failed step to dir as
// {journey}-{step}-{uuid}.png
func ScreenshotOnFailure(dir string, logger *zap.Logger) FailureHook {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(ctx context.Context, f Failure) error {
		if f.Pages == nil {
			return fmt.Errorf("no page to capture for %s", f.Journey)
		}

		captureCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), screenshotTimeout)
		defer cancel()

		png, err := f.Pages.Base.Screenshot(captureCtx)
		if err != nil {
			return fmt.Errorf("failed to capture screenshot: %w", err)
		}

		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create screenshot directory: %w", err)
		}

		name := fmt.Sprintf("%s-%s-%s.png", slug(f.Journey), slug(f.Step), uuid.NewString())
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, png, 0o644); err != nil {
			return fmt.Errorf("failed to write screenshot: %w", err)
		}

		logger.Info("screenshot saved",
			zap.String("journey", f.Journey),
			zap.String("step", f.Step),
			zap.String("path", path),
		)
		return nil
	}
}

// slug kebab-cases s and drops every character that is unsafe in a file name
func slug(s string) string {
	kebab := strcase.ToKebab(strings.TrimSpace(s))
	return strings.Trim(unsafeFileChars.ReplaceAllString(kebab, ""), "-")
}
