package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whence-cli/whence/humantime"
)

func TestExitCodeFor(t *testing.T) {
	assert.Equal(t, ExitUsage, ExitCodeFor(CodeUsage))
	assert.Equal(t, ExitFormat, ExitCodeFor(CodeFormat))
	assert.Equal(t, ExitProcessing, ExitCodeFor(CodeClock))
	assert.Equal(t, ExitProcessing, ExitCodeFor(CodeCalendar))
	assert.Equal(t, ExitProcessing, ExitCodeFor(CodeStep))
	assert.Equal(t, ExitProcessing, ExitCodeFor(CodeAnchor))
	assert.Equal(t, ExitInternal, ExitCodeFor(CodeInternal))
	assert.Equal(t, ExitInternal, ExitCodeFor("unknown"))
}

func TestFromParse(t *testing.T) {
	ref := time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		input    string
		wantCode string
		wantExit int
	}{
		{"definitely not a date", CodeFormat, ExitFormat},
		{"25:00", CodeClock, ExitProcessing},
		{"2023-11-31", CodeCalendar, ExitProcessing},
		{"in 1 month at 2024-01-31", CodeFormat, ExitFormat}, // "in ... at" is not a phrasing
		{"1 day ago at 31:00", CodeAnchor, ExitProcessing},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := humantime.Parse(tt.input, ref)
			require.Error(t, err)
			e := FromParse(err)
			assert.Equal(t, tt.wantCode, e.Code)
			assert.Equal(t, tt.wantExit, e.ExitCode())
		})
	}
}

func TestFromParseStep(t *testing.T) {
	ref := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	_, err := humantime.Parse("in 1 month", ref)
	require.Error(t, err)
	e := FromParse(err)
	assert.Equal(t, CodeStep, e.Code)
	assert.Equal(t, ExitProcessing, e.ExitCode())
}

func TestFromParseJoined(t *testing.T) {
	// Joined date+time errors classify under one processing code but keep
	// the combined message.
	ref := time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err := humantime.Parse("2023-11-31 25:00", ref)
	require.Error(t, err)
	e := FromParse(err)
	assert.Equal(t, ExitProcessing, e.ExitCode())
	assert.Contains(t, e.Message, "calendar")
	assert.Contains(t, e.Message, "time of day")
}

func TestWriterJSONSuccess(t *testing.T) {
	var buf bytes.Buffer
	w := New(Options{Format: FormatJSON, Writer: &buf})

	at := time.Date(2009, 12, 25, 0, 0, 0, 0, time.UTC)
	err := w.OK(&Response{
		Kind:   "date",
		Result: "2009-12-25",
		Input:  "last friday",
		At:     at,
	})
	require.NoError(t, err)

	var resp Response
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.True(t, resp.OK)
	assert.Equal(t, "date", resp.Kind)
	assert.Equal(t, "2009-12-25", resp.Result)
	assert.Equal(t, "last friday", resp.Input)
	assert.True(t, at.Equal(resp.At))
}

func TestWriterJSONError(t *testing.T) {
	var buf bytes.Buffer
	w := New(Options{Format: FormatJSON, Writer: &buf})

	require.NoError(t, w.Err(&Error{Code: CodeFormat, Message: "nope", Hint: "try harder"}))

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.False(t, resp.OK)
	assert.Equal(t, CodeFormat, resp.Code)
	assert.Equal(t, "nope", resp.Error)
	assert.Equal(t, "try harder", resp.Hint)
}

func TestWriterPlain(t *testing.T) {
	var buf bytes.Buffer
	w := New(Options{Format: FormatPlain, Writer: &buf})

	require.NoError(t, w.OK(&Response{Kind: "date", Result: "2009-12-25"}))
	assert.Equal(t, "2009-12-25\n", buf.String())

	buf.Reset()
	require.NoError(t, w.Err(errors.New("boom")))
	assert.Equal(t, "error: boom\n", buf.String())
}

func TestWriterStyledCarriesContent(t *testing.T) {
	var buf bytes.Buffer
	w := New(Options{Format: FormatStyled, Writer: &buf})

	err := w.OK(&Response{Kind: "datetime", Result: "2009-12-25 04:00:00", Delta: "a week ago"})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "2009-12-25 04:00:00")
	assert.Contains(t, buf.String(), "a week ago")
}

func TestWriterAutoFallsBackToPlain(t *testing.T) {
	// A bytes.Buffer is not a TTY, so auto selects the plain rendering.
	var buf bytes.Buffer
	w := New(Options{Writer: &buf})

	require.NoError(t, w.OK(&Response{Kind: "date", Result: "2009-12-25"}))
	assert.Equal(t, "2009-12-25\n", buf.String())
}

func TestAsError(t *testing.T) {
	e := AsError(errors.New("plain"))
	assert.Equal(t, CodeUsage, e.Code)

	orig := &Error{Code: CodeFormat, Message: "m"}
	assert.Same(t, orig, AsError(orig))
}
