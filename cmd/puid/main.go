package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/lmousom/puid"
	"github.com/lmousom/puid/internal/commands"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	version = puid.Version
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	short := commit
	if len(commit) > 7 {
		short = commit[:7]
	}

	return fmt.Sprintf("%s (%s) %s", version, short, date)
}

func main() {
	if err := setupLogger("info"); err != nil {
		panic(err)
	}

	flags := &commands.Flags{}

	app := &cli.Command{
		Name:      "puid",
		Usage:     "Generate prefixed, time-sorted identifiers",
		UsageText: "puid [global options] command [command options]",
		Description: `puid prints identifiers such as user_lx3k2p9k0b9ttQzR7cE1aXwP.

Run 'puid new --prefix user' to generate one.
Run 'puid validate user' to check a prefix.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("PUID_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			return ctx, setupLogger(flags.LogLevel)
		},
	}

	app = commands.NewNewCmd(flags).Register(app)
	app = commands.NewValidateCmd(flags).Register(app)

	exitCode := 0
	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Error().Err(err).Msg("puid failed")
		exitCode = 1
	}

	os.Exit(exitCode)
}

func setupLogger(level string) error {
	parsedLevel, err := zerolog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %w", err)
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(parsedLevel)

	return nil
}
