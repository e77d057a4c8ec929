// Package commands implements the whence subcommands.
package commands

import (
	"io"
	"os"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/whence-cli/whence/internal/config"
	"github.com/whence-cli/whence/internal/output"
)

// Flags holds the global command-line flags.
type Flags struct {
	Now    string // reference instant override
	JSON   bool
	Plain  bool
	Styled bool
	UTC    bool
}

// App carries the shared command dependencies. The clock is injected so
// command tests can pin the reference instant.
type App struct {
	Clock  clockwork.Clock
	Config *config.Config
	Flags  Flags

	// Stdout defaults to os.Stdout; tests point it at a buffer.
	Stdout io.Writer
}

// NewApp creates an App with the real clock.
func NewApp(cfg *config.Config) *App {
	if cfg == nil {
		cfg = config.Default()
	}
	return &App{
		Clock:  clockwork.NewRealClock(),
		Config: cfg,
		Stdout: os.Stdout,
	}
}

// nowLayouts are the accepted --now formats, tried in order.
var nowLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ReferenceTime returns the instant expressions resolve against: the
// --now override when given, otherwise the clock's current time. --utc
// shifts the reference into UTC.
func (a *App) ReferenceTime() (time.Time, error) {
	now := a.Clock.Now()
	if a.Flags.Now != "" {
		var parsed time.Time
		var err error
		for _, layout := range nowLayouts {
			parsed, err = time.ParseInLocation(layout, a.Flags.Now, now.Location())
			if err == nil {
				break
			}
		}
		if err != nil {
			return time.Time{}, output.ErrUsageHint(
				"invalid --now value: "+a.Flags.Now,
				"Use RFC3339 (2006-01-02T15:04:05Z07:00), \"2006-01-02 15:04:05\", or 2006-01-02",
			)
		}
		now = parsed
	}
	if a.Flags.UTC {
		now = now.UTC()
	}
	return now, nil
}

// Format resolves the output format from flags and config. Flags win.
func (a *App) Format() output.Format {
	switch {
	case a.Flags.JSON:
		return output.FormatJSON
	case a.Flags.Plain:
		return output.FormatPlain
	case a.Flags.Styled:
		return output.FormatStyled
	}
	switch a.Config.Format {
	case "json":
		return output.FormatJSON
	case "plain":
		return output.FormatPlain
	case "styled":
		return output.FormatStyled
	}
	if a.Config.Color == "never" {
		return output.FormatPlain
	}
	return output.FormatAuto
}

// Writer builds the output writer for the resolved format.
func (a *App) Writer() *output.Writer {
	w := a.Stdout
	if w == nil {
		w = os.Stdout
	}
	return output.New(output.Options{
		Format: a.Format(),
		Writer: w,
	})
}
