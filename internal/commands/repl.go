package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/whence-cli/whence/humantime"
	"github.com/whence-cli/whence/internal/tui"
)

// NewReplCmd creates the repl command: a full-screen interactive loop on a
// TTY, or a plain line-at-a-time loop when stdin/stdout is piped.
func NewReplCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Evaluate expressions interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if isTerminal(os.Stdin) && isTerminal(os.Stdout) && !app.Flags.Plain {
				return tui.RunREPL(app.Clock)
			}
			in := cmd.InOrStdin()
			w := app.Stdout
			if w == nil {
				w = cmd.OutOrStdout()
			}
			return runLineLoop(app, in, w)
		},
	}
}

func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

// runLineLoop reads one expression per line and prints one result (or
// error) per line. Blank lines are skipped; EOF ends the loop.
func runLineLoop(app *App, in io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			return nil
		}
		res, err := humantime.Parse(line, app.Clock.Now())
		if err != nil {
			if _, werr := fmt.Fprintln(w, "error: "+err.Error()); werr != nil {
				return werr
			}
			continue
		}
		if _, werr := fmt.Fprintln(w, res.String()); werr != nil {
			return werr
		}
	}
	return scanner.Err()
}
