package asset

import "fmt"

type invariantError struct{ msg string }

func (e *invariantError) Error() string { return e.msg }

func errInvariant(format string, args ...any) error {
	return &invariantError{msg: fmt.Sprintf(format, args...)}
}
