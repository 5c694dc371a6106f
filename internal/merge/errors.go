package merge

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedHunk indicates a diff-output line that does not follow the hunk grammar.
	ErrMalformedHunk = errors.New("malformed hunk")

	// ErrHunkOutOfOrder indicates a hunk that starts before lines already written.
	ErrHunkOutOfOrder = errors.New("hunk out of order")

	// ErrInputExhausted indicates the operator's input ended before every hunk was resolved.
	ErrInputExhausted = errors.New("no more interactive input")
)

// HunkError ties a failure to a line of the diff output.
type HunkError struct {
	Line int
	Text string
	Err  error
}

func (e *HunkError) Error() string {
	return fmt.Sprintf("diff output line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *HunkError) Unwrap() error {
	return e.Err
}
