package commands

import (
	"context"
	"fmt"
	"math"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/lmousom/puid"
)

type NewCmd struct {
	flags *Flags

	prefix  string
	entropy int
	count   int
	format  string
}

// NewNewCmd creates a new new command
func NewNewCmd(flags *Flags) *NewCmd {
	return &NewCmd{flags: flags}
}

// Register adds the new command to the application
func (cmd *NewCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "new",
		Usage:     "Generate prefixed identifiers",
		UsageText: "puid new --prefix user [--entropy 12] [--count 1] [--format text]",
		Description: `Generates one or more identifiers of the form
prefix_<time><counter><pid><random>.

The prefix must be 1 to 8 ASCII letters or digits.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "prefix",
				Aliases:     []string{"p"},
				Usage:       "identifier prefix (1-8 alphanumeric characters)",
				Sources:     cli.EnvVars("PUID_PREFIX"),
				Destination: &cmd.prefix,
			},
			&cli.IntFlag{
				Name:        "entropy",
				Aliases:     []string{"e"},
				Usage:       "number of random trailing characters (0-255)",
				Sources:     cli.EnvVars("PUID_ENTROPY"),
				Value:       int(puid.DefaultEntropy),
				Destination: &cmd.entropy,
			},
			&cli.IntFlag{
				Name:        "count",
				Aliases:     []string{"n"},
				Usage:       "number of identifiers to generate",
				Value:       1,
				Destination: &cmd.count,
			},
			&cli.StringFlag{
				Name:        "format",
				Aliases:     []string{"f"},
				Usage:       "output format (text, json, yaml)",
				Sources:     cli.EnvVars("PUID_FORMAT"),
				Value:       string(FormatText),
				Destination: &cmd.format,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *NewCmd) run(ctx context.Context, c *cli.Command) error {
	if cmd.entropy < 0 || cmd.entropy > math.MaxUint8 {
		return fmt.Errorf("entropy must be between 0 and %d, got %d", math.MaxUint8, cmd.entropy)
	}
	if cmd.count < 1 {
		return fmt.Errorf("count must be at least 1, got %d", cmd.count)
	}

	format, err := ParseFormat(cmd.format)
	if err != nil {
		return err
	}

	b, err := puid.NewBuilder().Prefix(cmd.prefix)
	if err != nil {
		return fmt.Errorf("prefix %q: %w", cmd.prefix, err)
	}

	ids, err := b.Entropy(uint8(cmd.entropy)).BuildBatch(cmd.count)
	if err != nil {
		return fmt.Errorf("build: %w", err)
	}

	log.Debug().
		Str("prefix", cmd.prefix).
		Int("entropy", cmd.entropy).
		Int("count", len(ids)).
		Msg("generated identifiers")

	return writeIDs(c.Root().Writer, format, ids)
}
