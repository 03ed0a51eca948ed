// Package errors provides custom error types for the tendermap system.
// These errors enable programmatic error checking and map the
// reconciliation failure taxonomy onto errors.Is/As.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the tendermap system
var (
	// ErrNormalization indicates a raw record could not be normalized
	ErrNormalization = errors.New("normalization failed")

	// ErrReferenceLookup indicates a code absent from the reference tables
	ErrReferenceLookup = errors.New("reference lookup failed")

	// ErrStructuralViolation indicates the validator found an invariant
	// broken after conflict resolution. The only fatal run condition.
	ErrStructuralViolation = errors.New("structural invariant violated")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")
)

// NormalizationError represents a raw record that failed to normalize.
// The offending record is skipped and the run continues.
type NormalizationError struct {
	Field   string
	Value   string
	Source  string
	Message string
	Err     error
}

// Error implements the error interface
func (e *NormalizationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("normalization failed for field %s (value %q, source %s): %s", e.Field, e.Value, e.Source, e.Message)
	}
	return fmt.Sprintf("normalization failed (source %s): %s", e.Source, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *NormalizationError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *NormalizationError) Is(target error) bool {
	return target == ErrNormalization || target == ErrInvalidInput
}

// NewNormalizationError creates a new NormalizationError
func NewNormalizationError(field, value, source, message string, err error) *NormalizationError {
	return &NormalizationError{Field: field, Value: value, Source: source, Message: message, Err: err}
}

// ReferenceLookupError represents a country or currency code not present
// in the reference tables. A dangling foreign key would corrupt the
// timeline, so the record is rejected rather than passed through.
type ReferenceLookupError struct {
	Table string // "country" or "currency"
	Code  string
}

// Error implements the error interface
func (e *ReferenceLookupError) Error() string {
	return fmt.Sprintf("%s code %s not found in reference table", e.Table, e.Code)
}

// Is implements errors.Is support
func (e *ReferenceLookupError) Is(target error) bool {
	return target == ErrReferenceLookup || target == ErrNotFound
}

// NewReferenceLookupError creates a new ReferenceLookupError
func NewReferenceLookupError(table, code string) *ReferenceLookupError {
	return &ReferenceLookupError{Table: table, Code: code}
}

// StructuralError represents an invariant the validator found broken
// after resolution. It indicates a bug in the builder itself and is
// treated as a hard failure of the run.
type StructuralError struct {
	CountryCode string
	Invariant   string
	Message     string
}

// Error implements the error interface
func (e *StructuralError) Error() string {
	if e.CountryCode != "" {
		return fmt.Sprintf("structural invariant %q violated for %s: %s", e.Invariant, e.CountryCode, e.Message)
	}
	return fmt.Sprintf("structural invariant %q violated: %s", e.Invariant, e.Message)
}

// Is implements errors.Is support
func (e *StructuralError) Is(target error) bool {
	return target == ErrStructuralViolation
}

// NewStructuralError creates a new StructuralError
func NewStructuralError(countryCode, invariant, message string) *StructuralError {
	return &StructuralError{CountryCode: countryCode, Invariant: invariant, Message: message}
}

// ParseError represents an error when parsing data formats
type ParseError struct {
	Format  string // "xml", "yaml", "json", "csv"
	File    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError
func NewParseError(format, file, message string, err error) *ParseError {
	return &ParseError{Format: format, File: file, Message: message, Err: err}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "create", "open", "close"
	Path      string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %v", e.Operation, e.Path, e.Err)
	}
	return fmt.Sprintf("IO error during %s: %v", e.Operation, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	return &IOError{Operation: operation, Path: path, Err: err}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{Component: component, Message: message, Err: err}
}

// Helper functions for error checking

// IsNormalization checks if an error is a normalization error
func IsNormalization(err error) bool {
	return errors.Is(err, ErrNormalization)
}

// IsReferenceLookup checks if an error is a reference lookup error
func IsReferenceLookup(err error) bool {
	return errors.Is(err, ErrReferenceLookup)
}

// IsStructuralViolation checks if an error is a structural invariant violation
func IsStructuralViolation(err error) bool {
	return errors.Is(err, ErrStructuralViolation)
}

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}
