package output

import (
	"errors"
	"fmt"

	"github.com/whence-cli/whence/humantime"
)

// Error is a structured error with code, message, and optional hint.
type Error struct {
	Code    string
	Message string
	Hint    string
	Cause   error
}

func (e *Error) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Hint)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// ExitCode returns the appropriate exit code for this error.
func (e *Error) ExitCode() int {
	return ExitCodeFor(e.Code)
}

// Error constructors for common cases.

func ErrUsage(msg string) *Error {
	return &Error{Code: CodeUsage, Message: msg}
}

func ErrUsageHint(msg, hint string) *Error {
	return &Error{Code: CodeUsage, Message: msg, Hint: hint}
}

// FromParse converts a parse failure into a structured Error. Joined
// sibling errors keep their combined message but classify under the first
// matching code.
func FromParse(err error) *Error {
	var (
		formatErr   *humantime.FormatError
		clockErr    *humantime.ClockError
		calErr      *humantime.CalendarError
		stepErr     *humantime.StepError
		anchorErr   *humantime.AnchorError
		internalErr *humantime.InternalError
	)
	switch {
	case errors.As(err, &formatErr):
		return &Error{
			Code:    CodeFormat,
			Message: err.Error(),
			Hint:    "Run: whence grammar for the supported phrasings",
			Cause:   err,
		}
	// Anchor first: it wraps the inner processing error, and errors.As
	// would otherwise see through it.
	case errors.As(err, &anchorErr):
		return &Error{Code: CodeAnchor, Message: err.Error(), Cause: err}
	case errors.As(err, &clockErr):
		return &Error{Code: CodeClock, Message: err.Error(), Cause: err}
	case errors.As(err, &calErr):
		return &Error{Code: CodeCalendar, Message: err.Error(), Cause: err}
	case errors.As(err, &stepErr):
		return &Error{Code: CodeStep, Message: err.Error(), Cause: err}
	case errors.As(err, &internalErr):
		return &Error{
			Code:    CodeInternal,
			Message: err.Error(),
			Hint:    "This is a bug in whence; please report it",
			Cause:   err,
		}
	}
	return &Error{Code: CodeProcessing, Message: err.Error(), Cause: err}
}

// AsError converts any error to a structured Error.
func AsError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return &Error{Code: CodeUsage, Message: err.Error(), Cause: err}
}
