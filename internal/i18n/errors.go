package i18n

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingTranslation is returned by Lookup when a key does not resolve to a
	// displayable value in the current language. Translate never returns it; it falls back.
	ErrMissingTranslation = errors.New("missing translation")

	errNoTables = errors.New("no translation tables found")
)

// Error wraps a sentinel error with additional context
type Error struct {
	err     error
	context string
}

// Error satisfies the error interface
func (e *Error) Error() string {
	if e.context == "" {
		return e.err.Error()
	}
	return fmt.Sprintf("%s: %s", e.err.Error(), e.context)
}

// Unwrap implements the errors.Unwrap interface for compatibility with errors.Is/As
func (e *Error) Unwrap() error {
	return e.err
}

func newError(err error, format string, args ...interface{}) *Error {
	return &Error{
		err:     err,
		context: fmt.Sprintf(format, args...),
	}
}
