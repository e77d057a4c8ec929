package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/jonboulle/clockwork"

	"github.com/whence-cli/whence/humantime"
)

// Entry is one evaluated expression in the scrollback.
type Entry struct {
	Input  string
	Output string
	Delta  string
	IsErr  bool
}

// replModel is the bubbletea model for the interactive loop. Each
// submission is evaluated against the clock at the moment of entry.
type replModel struct {
	input    textinput.Model
	entries  []Entry
	clock    clockwork.Clock
	styles   *Styles
	quitting bool

	// Submitted inputs, cycled with up/down.
	inputHistory []string
	histPos      int

	maxVisible int
}

func newReplModel(clock clockwork.Clock) replModel {
	ti := textinput.New()
	ti.Placeholder = `Try "last friday at 19:45"...`
	ti.Width = 60
	ti.Focus()

	return replModel{
		input:      ti,
		clock:      clock,
		styles:     NewStyles(),
		maxVisible: 12,
	}
}

func (m replModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c", "ctrl+d", "esc":
			m.quitting = true
			return m, tea.Quit

		case "enter":
			text := strings.TrimSpace(m.input.Value())
			if text == "" {
				return m, nil
			}
			if text == "exit" || text == "quit" {
				m.quitting = true
				return m, tea.Quit
			}
			m.entries = append(m.entries, m.evaluate(text))
			m.inputHistory = append(m.inputHistory, text)
			m.histPos = len(m.inputHistory)
			m.input.SetValue("")
			return m, nil

		case "up":
			if m.histPos > 0 {
				m.histPos--
				m.input.SetValue(m.inputHistory[m.histPos])
				m.input.CursorEnd()
			}
			return m, nil

		case "down":
			if m.histPos < len(m.inputHistory)-1 {
				m.histPos++
				m.input.SetValue(m.inputHistory[m.histPos])
				m.input.CursorEnd()
			} else {
				m.histPos = len(m.inputHistory)
				m.input.SetValue("")
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m replModel) evaluate(text string) Entry {
	now := m.clock.Now()
	res, err := humantime.Parse(text, now)
	if err != nil {
		return Entry{Input: text, Output: err.Error(), IsErr: true}
	}
	e := Entry{Input: text, Output: res.String()}
	if res.Kind != humantime.KindTime {
		e.Delta = humanize.RelTime(res.At, now, "ago", "from now")
	}
	return e
}

func (m replModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("whence") + "\n")

	visible := m.entries
	if len(visible) > m.maxVisible {
		visible = visible[len(visible)-m.maxVisible:]
	}
	for _, e := range visible {
		b.WriteString(m.styles.Prompt.Render("> "))
		b.WriteString(m.styles.Input.Render(e.Input))
		b.WriteString("\n")
		if e.IsErr {
			b.WriteString("  " + m.styles.Error.Render(e.Output))
		} else {
			b.WriteString("  " + m.styles.Result.Render(e.Output))
			if e.Delta != "" {
				b.WriteString("  " + m.styles.Muted.Render("("+e.Delta+")"))
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(m.styles.Prompt.Render("> "))
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render("enter: evaluate • up/down: history • esc: quit"))
	b.WriteString("\n")
	return b.String()
}

// RunREPL starts the interactive loop and blocks until the user quits.
func RunREPL(clock clockwork.Clock) error {
	p := tea.NewProgram(newReplModel(clock))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running repl: %w", err)
	}
	return nil
}
