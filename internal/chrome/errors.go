package chrome

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is matched by NotFoundError.
var ErrNotFound = errors.New("no bookmarks file found")

// Attempt records a candidate path that could not be read.
type Attempt struct {
	Path string
	Err  error
}

// NotFoundError is returned when none of the candidate paths was readable.
type NotFoundError struct {
	Attempts []Attempt
}

func (e *NotFoundError) Error() string {
	paths := make([]string, len(e.Attempts))
	for i, a := range e.Attempts {
		paths[i] = a.Path
	}
	return fmt.Sprintf("%s, tried: %s", ErrNotFound, strings.Join(paths, ", "))
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// DecodeError is returned when the first readable candidate is not a
// bookmarks store. Later candidates are not tried.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
