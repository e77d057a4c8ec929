package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whence-cli/whence/internal/commands"
	"github.com/whence-cli/whence/internal/config"
	"github.com/whence-cli/whence/internal/output"
)

func newTestApp(buf *bytes.Buffer) *commands.App {
	return &commands.App{
		Clock:  clockwork.NewFakeClockAt(time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC)),
		Config: config.Default(),
		Stdout: buf,
	}
}

func execute(t *testing.T, app *commands.App, args ...string) error {
	t.Helper()
	// Point config loading at an empty location so the host machine's
	// config cannot leak into tests.
	t.Setenv("WHENCE_CONFIG", filepath.Join(t.TempDir(), "config.yml"))
	t.Setenv("WHENCE_FORMAT", "")
	t.Setenv("NO_COLOR", "")

	cmd := NewRootCmd(app)
	cmd.SetArgs(args)
	cmd.SetOut(app.Stdout)
	cmd.SetErr(app.Stdout)
	return cmd.Execute()
}

func TestRootResolvesExpression(t *testing.T) {
	var buf bytes.Buffer
	app := newTestApp(&buf)

	require.NoError(t, execute(t, app, "--plain", "last", "friday"))
	assert.Equal(t, "2009-12-25\n", buf.String())
}

func TestRootJSONEnvelope(t *testing.T) {
	var buf bytes.Buffer
	app := newTestApp(&buf)

	require.NoError(t, execute(t, app, "--json", "in 3 days"))

	var resp output.Response
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.True(t, resp.OK)
	assert.Equal(t, "datetime", resp.Kind)
	assert.Equal(t, "2010-01-04 00:00:00", resp.Result)
}

func TestRootNowOverride(t *testing.T) {
	var buf bytes.Buffer
	app := newTestApp(&buf)

	require.NoError(t, execute(t, app, "--plain", "--now", "2022-11-07T12:00:00Z", "next week monday"))
	assert.Equal(t, "2022-11-14\n", buf.String())
}

func TestRootFormatErrorCode(t *testing.T) {
	var buf bytes.Buffer
	app := newTestApp(&buf)

	err := execute(t, app, "utter nonsense")
	require.Error(t, err)
	assert.Equal(t, output.ExitFormat, output.AsError(err).ExitCode())
}

func TestRootGrammarSubcommand(t *testing.T) {
	var buf bytes.Buffer
	app := newTestApp(&buf)

	require.NoError(t, execute(t, app, "grammar"))
	assert.Contains(t, buf.String(), "overmorrow")
}

func TestTransformCobraError(t *testing.T) {
	err := transformCobraError(assertableError("unknown flag: --frob"))
	e := output.AsError(err)
	assert.Equal(t, output.CodeUsage, e.Code)
	assert.Equal(t, "Unknown option: --frob", e.Message)

	err = transformCobraError(assertableError("flag needs an argument: --now"))
	assert.Equal(t, "--now requires a value", output.AsError(err).Message)

	// Structured errors pass through unchanged.
	orig := output.ErrUsage("already structured")
	assert.Same(t, orig, transformCobraError(orig).(*output.Error))
}

type assertableError string

func (e assertableError) Error() string { return string(e) }
