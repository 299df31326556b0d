package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"go.uber.org/zap"

	"github.com/automationexercise/shopcheck/internal/browser"
	"github.com/automationexercise/shopcheck/internal/config"
	"github.com/automationexercise/shopcheck/internal/journeys"
)

// ErrJourneysFailed is returned when at least one journey did not pass
var ErrJourneysFailed = errors.New("journeys failed")

// SelectJourneys resolves names to fresh journeys. No names selects every journey.
func SelectJourneys(names []string) ([]journeys.Journey, error) {
	if len(names) == 0 {
		return journeys.All(), nil
	}

	selected := make([]journeys.Journey, 0, len(names))
	for _, name := range names {
		j, ok := journeys.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("unknown journey %q, known journeys: %v", name, journeys.Names())
		}
		selected = append(selected, j)
	}
	return selected, nil
}

// LauncherSessions opens every journey in a new session of launcher
func LauncherSessions(launcher *browser.Launcher, cfg config.BrowserConfig, logger *zap.Logger) journeys.SessionFactory {
	return func(ctx context.Context) (*journeys.Pages, func() error, error) {
		session, err := launcher.NewSession()
		if err != nil {
			return nil, nil, err
		}
		p, err := journeys.NewPages(session.Driver, cfg.BaseURL, journeys.PageOptions(cfg, logger)...)
		if err != nil {
			_ = session.Close()
			return nil, nil, err
		}
		return p, session.Close, nil
	}
}

// RunJourneys runs js, writes the report to out and fails with ErrJourneysFailed when any
// journey did not pass
func RunJourneys(ctx context.Context, runner *journeys.Runner, js []journeys.Journey, open journeys.SessionFactory, parallel int, out io.Writer) error {
	results, err := runner.RunAll(ctx, js, open, parallel)
	if reportErr := WriteReport(out, results); reportErr != nil {
		return reportErr
	}
	if err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if !r.Passed() {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrJourneysFailed, failed, len(results))
	}
	return nil
}

// WriteReport prints a line per journey followed by a line per step
func WriteReport(out io.Writer, results []journeys.Result) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, r := range results {
		if r.Journey == "" {
			// never ran: its session could not be opened
			continue
		}
		verdict := "PASS"
		if !r.Passed() {
			verdict = "FAIL"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", verdict, r.Journey, r.Duration.Round(time.Millisecond))
		for _, s := range r.Steps {
			line := fmt.Sprintf("  %s\t%s\t%s", s.Status, s.Name, s.Duration.Round(time.Millisecond))
			if s.Err != nil {
				line += "\t" + s.Err.Error()
			}
			fmt.Fprintln(tw, line)
		}
	}
	return tw.Flush()
}

// ListJourneys prints the name and title of every journey
func ListJourneys(out io.Writer) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, j := range journeys.All() {
		fmt.Fprintf(tw, "%s\t%s\t%d steps\n", j.Name, j.Title, len(j.Steps))
	}
	return tw.Flush()
}
