package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// grammarText is the user-facing phrase catalogue. The grammar is closed:
// anything not shaped like one of these lines is rejected.
const grammarText = `whence understands a closed set of English time expressions.
Matching is case-insensitive.

Dates
  today, tomorrow, overmorrow, yesterday
  2022-11-07                        ISO calendar date
  15 august, 15 august 2023         day month [year], month names may be
                                    abbreviated (jan, feb, ...)
  monday .. sunday                  the next such weekday
  this/next/last monday             weekday search (this: today if it matches)
  this/next/last week/month/day/year
  this/next/last week monday        weekday within a Monday-anchored week

Times
  13:25, 13:25:30                   24-hour clock

Combined
  today 18:30, 15:20 friday, 13:25, next tuesday, last friday at 19:45
  (a date and a time joined by a space, comma, or "at", in either order)

Offsets
  in 3 days                         forward from the reference instant
  in 5 minutes and 30 seconds
  10 seconds ago                    backward from the reference instant
  2 hours, 32 minutes and 7 seconds ago
  a year ago, an hour ago           "a"/"an" means one
  12 hours ago at 04:00             backward from an anchor expression
  7 days ago at 7 days ago

Anything else
  now                               the reference instant itself

Units: year, month, week, day, hour, minute, second (plural accepted).
Month and year steps fail rather than clamp: "in 1 month" from January 31
is an error, not February 28.`

// NewGrammarCmd creates the grammar command.
func NewGrammarCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "grammar",
		Short: "Print the supported time expressions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := app.Stdout
			if w == nil {
				w = cmd.OutOrStdout()
			}
			_, err := fmt.Fprintln(w, grammarText)
			return err
		},
	}
}
