package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineLoop(t *testing.T) {
	var buf bytes.Buffer
	app := newTestApp(&buf)

	in := strings.NewReader("last friday\n\n12:30\nnonsense\n")
	require.NoError(t, runLineLoop(app, in, &buf))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "2009-12-25", lines[0])
	assert.Equal(t, "12:30:00", lines[1])
	assert.Contains(t, lines[2], "error: ")
}

func TestLineLoopExit(t *testing.T) {
	var buf bytes.Buffer
	app := newTestApp(&buf)

	in := strings.NewReader("today\nexit\nnever evaluated\n")
	require.NoError(t, runLineLoop(app, in, &buf))
	assert.Equal(t, "2010-01-01\n", buf.String())
}

func TestLineLoopEmptyInput(t *testing.T) {
	var buf bytes.Buffer
	app := newTestApp(&buf)

	require.NoError(t, runLineLoop(app, strings.NewReader(""), &buf))
	assert.Empty(t, buf.String())
}
