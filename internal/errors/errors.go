// Package errors provides categorised errors so the browser can tell a stale
// session apart from a missing tmux binary.
package errors

import (
	stderrors "errors"
	"strings"
)

// Category represents the type of error for consistent handling
type Category int

const (
	// CategoryRuntime is any tmux failure without a more specific meaning
	CategoryRuntime Category = iota
	// CategoryUnavailable means tmux is not installed or not runnable
	CategoryUnavailable
	// CategoryNotFound means the target session no longer exists
	CategoryNotFound
	// CategoryConflict means the requested session name is already taken
	CategoryConflict
	// CategoryInvalidInput means local validation rejected the input
	CategoryInvalidInput
)

// CLIError is an error with a category and an optional hint for the user.
type CLIError struct {
	Category   Category
	Message    string
	Suggestion string
	Cause      error
}

func (e *CLIError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *CLIError) Unwrap() error {
	return e.Cause
}

// New creates a new CLIError
func New(category Category, message string) *CLIError {
	return &CLIError{
		Category: category,
		Message:  message,
	}
}

// Wrap wraps an existing error with a category
func Wrap(category Category, message string, cause error) *CLIError {
	return &CLIError{
		Category: category,
		Message:  message,
		Cause:    cause,
	}
}

// WithSuggestion adds a suggestion to the error
func (e *CLIError) WithSuggestion(suggestion string) *CLIError {
	e.Suggestion = suggestion
	return e
}

// CategoryOf returns the category of the first CLIError in err's chain.
// Errors that are not CLIErrors are CategoryRuntime.
func CategoryOf(err error) Category {
	var cliErr *CLIError
	if stderrors.As(err, &cliErr) {
		return cliErr.Category
	}
	return CategoryRuntime
}

// HasCategory reports whether err carries the given category.
func HasCategory(err error, category Category) bool {
	if err == nil {
		return false
	}
	return CategoryOf(err) == category
}

// Short returns a single-line message suitable for the status bar.
func Short(err error) string {
	if err == nil {
		return ""
	}
	var cliErr *CLIError
	if stderrors.As(err, &cliErr) {
		return cliErr.Message
	}
	return err.Error()
}

// Format returns a user-friendly message for stderr
func Format(err error) string {
	if err == nil {
		return ""
	}

	var sb strings.Builder

	var cliErr *CLIError
	if stderrors.As(err, &cliErr) {
		sb.WriteString(categoryPrefix(cliErr.Category))
		sb.WriteString(cliErr.Message)

		if cliErr.Cause != nil {
			sb.WriteString(": ")
			sb.WriteString(cliErr.Cause.Error())
		}

		if cliErr.Suggestion != "" {
			sb.WriteString("\n\nTry: ")
			sb.WriteString(cliErr.Suggestion)
		}
	} else {
		sb.WriteString("Error: ")
		sb.WriteString(err.Error())
	}

	return sb.String()
}

func categoryPrefix(cat Category) string {
	switch cat {
	case CategoryUnavailable:
		return "tmux unavailable: "
	case CategoryNotFound:
		return "Not found: "
	case CategoryConflict:
		return "Conflict: "
	case CategoryInvalidInput:
		return "Invalid input: "
	default:
		return "Error: "
	}
}

// TmuxNotFound is returned when tmux cannot be located or executed.
func TmuxNotFound(cause error) *CLIError {
	return Wrap(CategoryUnavailable, "tmux not found", cause).
		WithSuggestion("install tmux and make sure it is on your PATH, or set tmux_path in the config file")
}

// SessionNotFound is returned when a target session has disappeared.
func SessionNotFound(name string) *CLIError {
	return New(CategoryNotFound, "session '"+name+"' no longer exists")
}

// NameConflict is returned when a rename or create collides with an existing session.
func NameConflict(name string) *CLIError {
	return New(CategoryConflict, "a session named '"+name+"' already exists")
}

// InvalidName is returned when a session name fails local validation.
func InvalidName(reason string) *CLIError {
	return New(CategoryInvalidInput, reason)
}
