package poolsheet

import (
	"errors"
	"fmt"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input file is not a valid xlsx workbook.
var ErrInvalidFormat = errors.New("invalid xlsx format")

// ErrSheetNotFound indicates the workbook has no sheet with the configured name.
var ErrSheetNotFound = errors.New("sheet not found")

// ErrWeekNotInTitle indicates the file name does not end with a week number.
var ErrWeekNotInTitle = errors.New("week number not found in title")

// SheetError represents a failure to extract one weekly file.
type SheetError struct {
	Path      string
	Component string // "open", "sheet", "cells", "title"
	Err       error
}

func (e *SheetError) Error() string {
	return fmt.Sprintf("extraction error in %q (%s): %v", e.Path, e.Component, e.Err)
}

func (e *SheetError) Unwrap() error {
	return e.Err
}

// NewSheetError creates a new SheetError.
func NewSheetError(path, component string, err error) *SheetError {
	return &SheetError{
		Path:      path,
		Component: component,
		Err:       err,
	}
}
