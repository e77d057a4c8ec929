// Package cli wires the root cobra command.
package cli

import (
	"errors"
	"os"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"github.com/whence-cli/whence/internal/commands"
	"github.com/whence-cli/whence/internal/config"
	"github.com/whence-cli/whence/internal/output"
	"github.com/whence-cli/whence/internal/version"
)

// NewRootCmd creates the root cobra command.
func NewRootCmd(app *commands.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "whence [expression...]",
		Short: "Resolve natural-language time expressions",
		Long: `whence turns English time expressions like "last friday at 19:45",
"in 3 days", or "2 hours, 32 minutes and 7 seconds ago" into concrete
dates and times, relative to the current moment or a --now override.`,
		Example: `  whence last friday
  whence "in 3 days"
  whence --now 2022-11-07T12:00:00Z next week monday
  whence --json 15 august 18:30`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ArbitraryArgs,
		RunE:          commands.NewEvalRunE(app),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "help" || cmd.Name() == "version" {
				return nil
			}
			cfg, err := config.Load()
			if err != nil {
				return output.ErrUsage(err.Error())
			}
			app.Config = cfg
			return nil
		},
	}
	cmd.SetVersionTemplate(version.Full() + "\n")

	// Expressions may start with a number ("3 days ago"), so flag parsing
	// must not eat interspersed words.
	cmd.Flags().SetInterspersed(true)

	pf := cmd.PersistentFlags()
	pf.StringVar(&app.Flags.Now, "now", "", "Reference instant (RFC3339, \"2006-01-02 15:04:05\", or 2006-01-02)")
	pf.BoolVarP(&app.Flags.JSON, "json", "j", false, "Output as JSON")
	pf.BoolVar(&app.Flags.Plain, "plain", false, "Bare result line, no styling")
	pf.BoolVar(&app.Flags.Styled, "styled", false, "Force styled output (ANSI colors)")
	pf.BoolVarP(&app.Flags.UTC, "utc", "u", false, "Resolve against UTC")

	cmd.AddCommand(commands.NewReplCmd(app))
	cmd.AddCommand(commands.NewGrammarCmd(app))

	return cmd
}

// Execute runs the root command and exits with the mapped code.
func Execute() {
	app := commands.NewApp(nil)
	cmd := NewRootCmd(app)

	if err := cmd.Execute(); err != nil {
		err = transformCobraError(err)
		structured := output.AsError(err)
		_ = app.Writer().Err(structured)
		os.Exit(structured.ExitCode())
	}
}

var shorthandRe = regexp.MustCompile(`unknown shorthand flag: '.' in (-\w)`)

// transformCobraError normalizes Cobra's flag errors into usage errors so
// they pick up exit code 1 and the envelope's usage code.
func transformCobraError(err error) error {
	var structured *output.Error
	if errors.As(err, &structured) {
		return err
	}

	msg := err.Error()
	if strings.HasPrefix(msg, "flag needs an argument: ") {
		flag := strings.TrimPrefix(msg, "flag needs an argument: ")
		return output.ErrUsage(flag + " requires a value")
	}
	if strings.HasPrefix(msg, "unknown flag: ") {
		flag := strings.TrimPrefix(msg, "unknown flag: ")
		return output.ErrUsage("Unknown option: " + flag)
	}
	if strings.HasPrefix(msg, "unknown shorthand flag: ") {
		if matches := shorthandRe.FindStringSubmatch(msg); len(matches) > 1 {
			return output.ErrUsage("Unknown option: " + matches[1])
		}
	}
	if strings.Contains(msg, "invalid argument") {
		return output.ErrUsage(msg)
	}
	return err
}
