package commands

import (
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/whence-cli/whence/humantime"
	"github.com/whence-cli/whence/internal/output"
)

// NewEvalRunE returns the root command's RunE: it joins the args into one
// expression, resolves it against the reference instant, and prints the
// result. Errors are returned for the caller to render and map to an exit
// code.
func NewEvalRunE(app *App) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		expr := strings.Join(args, " ")

		now, err := app.ReferenceTime()
		if err != nil {
			return err
		}

		res, err := humantime.Parse(expr, now)
		if err != nil {
			return output.FromParse(err)
		}

		resp := &output.Response{
			Kind:   res.Kind.String(),
			Result: res.String(),
			Input:  expr,
			At:     res.At,
		}
		if res.Kind == humantime.KindDateTime && app.Config.Layout != "" {
			resp.Result = res.At.Format(app.Config.Layout)
		}
		if res.Kind != humantime.KindTime {
			resp.Delta = humanize.RelTime(res.At, now, "ago", "from now")
		}
		return app.Writer().OK(resp)
	}
}
