package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keyMsg(s string) tea.KeyMsg {
	if len(s) == 1 {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	panic("unknown key " + s)
}

func typeText(m replModel, text string) replModel {
	for _, r := range text {
		updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = updated.(replModel)
	}
	return m
}

func submit(m replModel, text string) replModel {
	m = typeText(m, text)
	updated, _ := m.Update(keyMsg("enter"))
	return updated.(replModel)
}

func newTestModel(t *testing.T) replModel {
	t.Helper()
	// 2010-01-01 is a Friday.
	clock := clockwork.NewFakeClockAt(time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC))
	return newReplModel(clock)
}

func TestReplEvaluatesExpression(t *testing.T) {
	m := submit(newTestModel(t), "last friday")

	require.Len(t, m.entries, 1)
	e := m.entries[0]
	assert.Equal(t, "last friday", e.Input)
	assert.Equal(t, "2009-12-25", e.Output)
	assert.False(t, e.IsErr)
	assert.NotEmpty(t, e.Delta)
	assert.Empty(t, m.input.Value())
}

func TestReplTimeResultHasNoDelta(t *testing.T) {
	m := submit(newTestModel(t), "12:30")

	require.Len(t, m.entries, 1)
	assert.Equal(t, "12:30:00", m.entries[0].Output)
	assert.Empty(t, m.entries[0].Delta)
}

func TestReplShowsErrors(t *testing.T) {
	m := submit(newTestModel(t), "not a date at all")

	require.Len(t, m.entries, 1)
	assert.True(t, m.entries[0].IsErr)
	assert.Contains(t, m.entries[0].Output, "cannot interpret")
}

func TestReplIgnoresEmptySubmission(t *testing.T) {
	m := newTestModel(t)
	updated, _ := m.Update(keyMsg("enter"))
	m = updated.(replModel)
	assert.Empty(t, m.entries)
}

func TestReplInputHistory(t *testing.T) {
	m := submit(newTestModel(t), "today")
	m = submit(m, "tomorrow")

	updated, _ := m.Update(keyMsg("up"))
	m = updated.(replModel)
	assert.Equal(t, "tomorrow", m.input.Value())

	updated, _ = m.Update(keyMsg("up"))
	m = updated.(replModel)
	assert.Equal(t, "today", m.input.Value())

	updated, _ = m.Update(keyMsg("down"))
	m = updated.(replModel)
	assert.Equal(t, "tomorrow", m.input.Value())

	updated, _ = m.Update(keyMsg("down"))
	m = updated.(replModel)
	assert.Empty(t, m.input.Value())
}

func TestReplQuit(t *testing.T) {
	m := newTestModel(t)

	updated, cmd := m.Update(keyMsg("esc"))
	m = updated.(replModel)
	assert.True(t, m.quitting)
	require.NotNil(t, cmd)
	assert.Empty(t, m.View())
}

func TestReplExitWord(t *testing.T) {
	m := typeText(newTestModel(t), "exit")
	updated, cmd := m.Update(keyMsg("enter"))
	m = updated.(replModel)
	assert.True(t, m.quitting)
	assert.NotNil(t, cmd)
	assert.Empty(t, m.entries)
}

func TestReplViewShowsScrollback(t *testing.T) {
	m := submit(newTestModel(t), "last friday")
	view := m.View()
	assert.Contains(t, view, "last friday")
	assert.Contains(t, view, "2009-12-25")
}
