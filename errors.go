package neonpack

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingFile is returned when a source texture or directory does
	// not exist.
	ErrMissingFile = errors.New("missing file")
	// ErrInvalidParameter is returned for an out of range opacity, an
	// unknown color name or an unknown blend mode.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrIO is returned when an output cannot be written or a directory
	// cannot be created.
	ErrIO = errors.New("i/o failure")
)

func invalidf(format string, a ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidParameter, fmt.Sprintf(format, a...))
}

// CellError records a single grid cell that could not be rendered.
type CellError struct {
	Row, Column int
	Label       string
	Err         error
}

func (e CellError) Error() string {
	return fmt.Sprintf("%s (row %d, column %d): %v", e.Label, e.Row, e.Column, e.Err)
}

func (e CellError) Unwrap() error {
	return e.Err
}

// GridError is returned alongside a usable grid when one or more cells were
// skipped. Skipped cells are left transparent (or background colored).
type GridError struct {
	Skipped []CellError
}

func (e *GridError) Error() string {
	s := make([]string, 0, len(e.Skipped))
	for _, c := range e.Skipped {
		s = append(s, c.Error())
	}
	return fmt.Sprintf("%d cell(s) skipped: %s", len(e.Skipped), strings.Join(s, "; "))
}

// Unwrap allows errors.Is to match the cause of any skipped cell.
func (e *GridError) Unwrap() []error {
	errs := make([]error, 0, len(e.Skipped))
	for _, c := range e.Skipped {
		errs = append(errs, c)
	}
	return errs
}

func (e *GridError) add(row, column int, label string, err error) {
	e.Skipped = append(e.Skipped, CellError{Row: row, Column: column, Label: label, Err: err})
}

func (e *GridError) errOrNil() error {
	if e == nil || len(e.Skipped) == 0 {
		return nil
	}
	return e
}
