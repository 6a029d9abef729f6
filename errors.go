package main

import (
	"errors"
	"fmt"
)

// FetchError reports that the status page could not be retrieved.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("fetching %s failed: HTTP status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetching %s failed: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// StructureError reports that the document does not have the shape the page
// layout expects, e.g. missing channel tables.
type StructureError struct {
	Reason string
}

func (e *StructureError) Error() string {
	return "unexpected status page structure: " + e.Reason
}

// RowShapeError reports a channel row with fewer cells than its direction needs.
// Row counts channel rows from 1, after the header rows.
type RowShapeError struct {
	Direction Direction
	Row       int
	Columns   int
	Want      int
}

func (e *RowShapeError) Error() string {
	return fmt.Sprintf("%s channel row %d has %d columns, want at least %d", e.Direction, e.Row, e.Columns, e.Want)
}

// MalformedFieldError reports a cell whose text does not hold the expected value.
// Direction, Row and Field are filled in by the row scanner; Row counts like
// RowShapeError.Row.
type MalformedFieldError struct {
	Direction Direction
	Row       int
	Field     string
	Text      string
}

func (e *MalformedFieldError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("malformed field %q", e.Text)
	}
	return fmt.Sprintf("%s channel row %d: malformed %s field %q", e.Direction, e.Row, e.Field, e.Text)
}

const (
	kindFetch          = "fetch"
	kindStructure      = "structure"
	kindRowShape       = "row_shape"
	kindMalformedField = "malformed_field"
	kindUnknown        = "unknown"
)

var errorKinds = []string{kindFetch, kindStructure, kindRowShape, kindMalformedField, kindUnknown}

// errorKind classifies err by the scrape stage it originated from.
func errorKind(err error) string {
	var (
		fetchErr     *FetchError
		structureErr *StructureError
		rowErr       *RowShapeError
		fieldErr     *MalformedFieldError
	)
	switch {
	case errors.As(err, &fetchErr):
		return kindFetch
	case errors.As(err, &structureErr):
		return kindStructure
	case errors.As(err, &rowErr):
		return kindRowShape
	case errors.As(err, &fieldErr):
		return kindMalformedField
	default:
		return kindUnknown
	}
}
