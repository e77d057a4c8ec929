package output

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
)

// Renderer handles styled terminal output.
type Renderer struct {
	width  int
	styled bool // whether to emit ANSI styling

	Result lipgloss.Style
	Kind   lipgloss.Style
	Muted  lipgloss.Style
	Error  lipgloss.Style
	Hint   lipgloss.Style
}

var theme = struct {
	primary, muted, errColor lipgloss.AdaptiveColor
}{
	primary:  lipgloss.AdaptiveColor{Light: "#1a73e8", Dark: "#8ab4f8"},
	muted:    lipgloss.AdaptiveColor{Light: "#80868b", Dark: "#6e7681"},
	errColor: lipgloss.AdaptiveColor{Light: "#d93025", Dark: "#f28b82"},
}

// NewRenderer creates a renderer. Styling is enabled when writing to a
// TTY, or when forceStyled is true.
func NewRenderer(w io.Writer, forceStyled bool) *Renderer {
	width, tty := terminalInfo(w)
	styled := tty || forceStyled

	r := &Renderer{width: width, styled: styled}
	if styled {
		r.Result = lipgloss.NewStyle().Foreground(theme.primary).Bold(true)
		r.Kind = lipgloss.NewStyle().Foreground(theme.muted)
		r.Muted = lipgloss.NewStyle().Foreground(theme.muted)
		r.Error = lipgloss.NewStyle().Foreground(theme.errColor).Bold(true)
		r.Hint = lipgloss.NewStyle().Foreground(theme.muted).Italic(true)
	} else {
		r.Result = lipgloss.NewStyle()
		r.Kind = lipgloss.NewStyle()
		r.Muted = lipgloss.NewStyle()
		r.Error = lipgloss.NewStyle()
		r.Hint = lipgloss.NewStyle()
	}
	return r
}

// terminalInfo returns the terminal width and whether the writer is a TTY.
func terminalInfo(w io.Writer) (width int, isTTY bool) {
	width = 80
	if f, ok := w.(*os.File); ok {
		if tw, _, err := term.GetSize(f.Fd()); err == nil && tw >= 40 {
			width = tw
		}
		fi, err := f.Stat()
		if err == nil && (fi.Mode()&os.ModeCharDevice) != 0 {
			isTTY = true
		}
	}
	return width, isTTY
}

// RenderResponse renders a resolved expression.
func (r *Renderer) RenderResponse(w io.Writer, resp *Response) error {
	var b strings.Builder
	b.WriteString(r.Result.Render(resp.Result))
	b.WriteString("  ")
	b.WriteString(r.Kind.Render("(" + resp.Kind + ")"))
	b.WriteString("\n")
	if resp.Delta != "" {
		b.WriteString(r.Muted.Render(resp.Delta))
		b.WriteString("\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// RenderError renders an error response.
func (r *Renderer) RenderError(w io.Writer, resp *ErrorResponse) error {
	var b strings.Builder
	b.WriteString(r.Error.Render("error: " + resp.Error))
	b.WriteString("\n")
	if resp.Hint != "" {
		b.WriteString(r.Hint.Render(resp.Hint))
		b.WriteString("\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}
