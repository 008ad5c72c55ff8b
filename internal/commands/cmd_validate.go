package commands

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/lmousom/puid"
)

type ValidateCmd struct {
	flags *Flags
}

// NewValidateCmd creates a new validate command
func NewValidateCmd(flags *Flags) *ValidateCmd {
	return &ValidateCmd{flags: flags}
}

// Register adds the validate command to the application
func (cmd *ValidateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "validate",
		Usage:       "Check whether prefixes are accepted",
		UsageText:   "puid validate PREFIX [PREFIX...]",
		Description: "Prints ok or invalid for each prefix and fails if any prefix is invalid.",
		Action:      cmd.run,
	})

	return app
}

func (cmd *ValidateCmd) run(ctx context.Context, c *cli.Command) error {
	prefixes := c.Args().Slice()
	if len(prefixes) == 0 {
		return fmt.Errorf("at least one prefix is required")
	}

	out := c.Root().Writer
	invalid := 0
	for _, p := range prefixes {
		status := "ok"
		if !puid.ValidPrefix(p) {
			status = "invalid"
			invalid++
			log.Debug().Str("prefix", p).Msg("rejected prefix")
		}
		_, _ = fmt.Fprintf(out, "%s\t%s\n", status, p)
	}

	if invalid > 0 {
		return fmt.Errorf("%d of %d prefixes rejected: %w", invalid, len(prefixes), puid.ErrInvalidPrefix)
	}
	return nil
}
