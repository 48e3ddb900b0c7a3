package domain

import (
	"errors"
	"fmt"
)

const PlaceholderText = "Please select at least one property"

var (
	ErrEmptySelection      = errors.New("no property selected")
	ErrDivisionByZero      = errors.New("total investment is zero")
	ErrInsufficientHistory = errors.New("at least two historical periods are required")
)

// SchemaError reports a malformed input row. It is fatal at load.
type SchemaError struct {
	Line   int
	Field  string
	Value  string
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
	}
	if e.Value == "" {
		return fmt.Sprintf("line %d: field %q: %s", e.Line, e.Field, e.Reason)
	}
	return fmt.Sprintf("line %d: field %q: %s (got %q)", e.Line, e.Field, e.Reason, e.Value)
}
