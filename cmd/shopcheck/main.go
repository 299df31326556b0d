package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/automationexercise/shopcheck/internal/browser"
	internalcli "github.com/automationexercise/shopcheck/internal/cli"
	"github.com/automationexercise/shopcheck/internal/config"
	"github.com/automationexercise/shopcheck/internal/fixtures"
	"github.com/automationexercise/shopcheck/internal/journeys"
	"github.com/automationexercise/shopcheck/internal/observability"
)

var version = "0.1.0"

func newLogger() (*zap.Logger, error) {
	logCfg, err := config.LoadLogConfig(os.Getenv)
	if err != nil {
		return nil, fmt.Errorf("invalid log configuration: %w", err)
	}
	return observability.NewLogger(*logCfg)
}

// ServeCommand returns the serve command
func ServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the local storefront the journeys can run against",
		Action: func(c *cli.Context) error {
			logger, err := newLogger()
			if err != nil {
				return err
			}
			defer logger.Sync()

			serverCfg, err := config.LoadServerConfig(os.Getenv)
			if err != nil {
				return err
			}

			db, dialect, err := internalcli.OpenAccountStore(os.Getenv, serverCfg, logger)
			if err != nil {
				return err
			}
			defer db.Close()

			deps, err := internalcli.BuildStorefront(serverCfg, db, dialect, logger)
			if err != nil {
				return err
			}

			return internalcli.RunServe(deps)
		},
	}
}

// RunCommand returns the run command
func RunCommand() *cli.Command {
	return &cli.Command{
		Name:      "run",
		Usage:     "Run user journeys in a real browser",
		ArgsUsage: "[journey...]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "list",
				Usage: "list the journeys instead of running them",
			},
			&cli.IntFlag{
				Name:  "parallel",
				Value: 1,
				Usage: "number of journeys to run at once, each in its own browser session",
			},
		},
		Action: func(c *cli.Context) error {
			if c.Bool("list") {
				return internalcli.ListJourneys(c.App.Writer)
			}

			selected, err := internalcli.SelectJourneys(c.Args().Slice())
			if err != nil {
				return err
			}

			logger, err := newLogger()
			if err != nil {
				return err
			}
			defer logger.Sync()

			browserCfg, err := config.LoadBrowserConfig(os.Getenv)
			if err != nil {
				return err
			}

			launcher, err := browser.Launch(*browserCfg, logger)
			if err != nil {
				return err
			}
			defer func() {
				if err := launcher.Close(); err != nil {
					logger.Warn("failed to close browser", zap.Error(err))
				}
			}()

			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			runner := journeys.NewRunner(logger, journeys.ScreenshotOnFailure(browserCfg.ScreenshotDir, logger))
			err = internalcli.RunJourneys(ctx, runner, selected,
				internalcli.LauncherSessions(launcher, *browserCfg, logger),
				c.Int("parallel"), c.App.Writer)
			if errors.Is(err, internalcli.ErrJourneysFailed) {
				return cli.Exit(err.Error(), 1)
			}
			return err
		},
	}
}

// FixtureCommand returns the fixture command
func FixtureCommand() *cli.Command {
	return &cli.Command{
		Name:  "fixture",
		Usage: "Print a generated signup fixture as JSON",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "kind",
				Value: internalcli.FixtureFull,
				Usage: "fixture to generate: full, minimal or invalid",
			},
			&cli.Uint64Flag{
				Name:  "seed",
				Usage: "seed for reproducible fixtures; 0 picks a random one",
			},
		},
		Action: func(c *cli.Context) error {
			gen := fixtures.DefaultGenerator()
			if seed := c.Uint64("seed"); seed != 0 {
				gen = fixtures.NewGenerator(seed)
			}
			return internalcli.WriteFixture(c.App.Writer, c.String("kind"), gen)
		},
	}
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	app := &cli.App{
		Name:    "shopcheck",
		Usage:   "Browser journeys for the Automation Exercise storefront",
		Version: version,
		Commands: []*cli.Command{
			ServeCommand(),
			RunCommand(),
			FixtureCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
