package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"
)

// Response is the success envelope for JSON output, and the source record
// for the styled and plain renderings.
type Response struct {
	OK     bool   `json:"ok"`
	Kind   string `json:"kind"`
	Result string `json:"result"`
	Input  string `json:"input"`
	Delta  string `json:"delta,omitempty"`

	// At is the resolved instant; RFC3339 in JSON so callers can feed it
	// to date(1) or another parser without guessing the layout.
	At time.Time `json:"at"`
}

// ErrorResponse is the error envelope for JSON output.
type ErrorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
	Code  string `json:"code"`
	Hint  string `json:"hint,omitempty"`
}

// Format specifies the output format.
type Format int

const (
	FormatAuto   Format = iota // TTY → Styled, non-TTY → Plain
	FormatJSON                 // Machine envelope
	FormatPlain                // Bare result line, pipeable
	FormatStyled               // ANSI styled output (forced, even when piped)
)

// Options controls output behavior.
type Options struct {
	Format  Format
	Writer  io.Writer
	Verbose bool
}

// Writer handles all output formatting.
type Writer struct {
	opts Options
}

// New creates a new output writer.
func New(opts Options) *Writer {
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}
	return &Writer{opts: opts}
}

// OK outputs a success response.
func (w *Writer) OK(resp *Response) error {
	resp.OK = true
	switch w.resolveFormat() {
	case FormatJSON:
		return w.writeJSON(resp)
	case FormatPlain:
		_, err := fmt.Fprintln(w.opts.Writer, resp.Result)
		return err
	default:
		r := NewRenderer(w.opts.Writer, true)
		return r.RenderResponse(w.opts.Writer, resp)
	}
}

// Err outputs an error response.
func (w *Writer) Err(err error) error {
	e := AsError(err)
	resp := &ErrorResponse{
		OK:    false,
		Error: e.Message,
		Code:  e.Code,
		Hint:  e.Hint,
	}
	switch w.resolveFormat() {
	case FormatJSON:
		return w.writeJSON(resp)
	case FormatPlain:
		_, werr := fmt.Fprintln(w.opts.Writer, "error: "+e.Message)
		return werr
	default:
		r := NewRenderer(w.opts.Writer, true)
		return r.RenderError(w.opts.Writer, resp)
	}
}

func (w *Writer) resolveFormat() Format {
	if w.opts.Format != FormatAuto {
		return w.opts.Format
	}
	if isTTY(w.opts.Writer) {
		return FormatStyled
	}
	return FormatPlain
}

// isTTY checks if the writer is a terminal.
func isTTY(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		fi, err := f.Stat()
		if err != nil {
			return false
		}
		return (fi.Mode() & os.ModeCharDevice) != 0
	}
	return false
}

func (w *Writer) writeJSON(v any) error {
	enc := json.NewEncoder(w.opts.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
