package dataset

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	ErrEmptyFile        = errors.New("file has no header row")
	ErrMissingColumn    = errors.New("row has too few columns")
	ErrInvalidCommunity = errors.New("community label is not an integer")
	ErrEmptyIdentifier  = errors.New("node identifier is empty")
)

// LoadError provides structured error information for input loading.
type LoadError struct {
	Op     string // Operation that failed (e.g., "open", "read")
	Table  string // "nodes" or "edges"
	File   string
	Line   int    // 1-based line in File, 0 if unknown
	Column string // Column name, if applicable
	Cause  error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	loc := e.File
	if e.Line > 0 {
		loc = fmt.Sprintf("%s:%d", e.File, e.Line)
	}
	if e.Column != "" {
		return fmt.Sprintf("%s %s %s (column %s): %v", e.Op, e.Table, loc, e.Column, e.Cause)
	}
	return fmt.Sprintf("%s %s %s: %v", e.Op, e.Table, loc, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *LoadError) Unwrap() error {
	return e.Cause
}

// ErrorBuilder provides a fluent interface for building LoadErrors.
type ErrorBuilder struct {
	err LoadError
}

// NewError creates a new error builder for the given operation and table.
func NewError(op, table string) *ErrorBuilder {
	return &ErrorBuilder{err: LoadError{Op: op, Table: table}}
}

// File sets the file the error occurred in.
func (b *ErrorBuilder) File(name string) *ErrorBuilder {
	b.err.File = name
	return b
}

// Line sets the line number.
func (b *ErrorBuilder) Line(n int) *ErrorBuilder {
	b.err.Line = n
	return b
}

// Column sets the column name.
func (b *ErrorBuilder) Column(name string) *ErrorBuilder {
	b.err.Column = name
	return b
}

// Cause sets the underlying error cause.
func (b *ErrorBuilder) Cause(err error) *ErrorBuilder {
	b.err.Cause = err
	return b
}

// Err returns the error as an error interface.
func (b *ErrorBuilder) Err() error {
	return &b.err
}

// IsMalformed reports whether err was caused by bad row content rather
// than I/O
func IsMalformed(err error) bool {
	return errors.Is(err, ErrMissingColumn) ||
		errors.Is(err, ErrInvalidCommunity) ||
		errors.Is(err, ErrEmptyIdentifier)
}
