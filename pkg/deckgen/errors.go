package deckgen

import (
	"errors"
	"fmt"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidInput indicates the slide description cannot be used as given.
var ErrInvalidInput = errors.New("invalid input")

// SlideError represents a failure while preparing or painting one slide.
type SlideError struct {
	Index  int    // 1-based position in the input
	Layout string // effective layout tag
	Err    error
}

func (e *SlideError) Error() string {
	return fmt.Sprintf("slide %d (%s): %v", e.Index, e.Layout, e.Err)
}

func (e *SlideError) Unwrap() error {
	return e.Err
}

// NewSlideError creates a new SlideError.
func NewSlideError(index int, layout string, err error) *SlideError {
	return &SlideError{
		Index:  index,
		Layout: layout,
		Err:    err,
	}
}
