// Package output provides result rendering, the JSON envelope, and error
// handling for the CLI.
package output

// Exit codes. Format errors and processing errors are distinct classes:
// the first means the input never matched the grammar, the second means it
// matched but named an impossible instant.
const (
	ExitOK         = 0 // Success
	ExitUsage      = 1 // Invalid arguments or flags
	ExitFormat     = 2 // Input did not match the grammar
	ExitProcessing = 3 // Matched but unresolvable (bad clock, calendar, overflow)
	ExitInternal   = 4 // Library contract violation
)

// Error codes for the JSON envelope.
const (
	CodeUsage      = "usage"
	CodeFormat     = "format"
	CodeClock      = "clock"
	CodeCalendar   = "calendar"
	CodeStep       = "step"
	CodeAnchor     = "anchor"
	CodeProcessing = "processing"
	CodeInternal   = "internal"
)

// ExitCodeFor returns the exit code for a given error code.
func ExitCodeFor(code string) int {
	switch code {
	case CodeUsage:
		return ExitUsage
	case CodeFormat:
		return ExitFormat
	case CodeClock, CodeCalendar, CodeStep, CodeAnchor, CodeProcessing:
		return ExitProcessing
	case CodeInternal:
		return ExitInternal
	default:
		return ExitInternal
	}
}
