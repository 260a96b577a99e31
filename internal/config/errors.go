// Package config loads, validates and saves footing.yaml: the default form
// values, engine tuning, report metadata, server and system settings.
// File values are layered over compiled defaults, then a .env file and
// FOOTING_* environment variables are applied.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for configuration operations.
var (
	// ErrInvalidConfig matches every *ValidationErrors.
	ErrInvalidConfig = errors.New("config: invalid configuration")

	// ErrSectionNotFound is returned for a section name outside SectionNames().
	ErrSectionNotFound = errors.New("config: section not found")

	// ErrNotInitialized is returned by ConfigManager methods called before Load.
	ErrNotInitialized = errors.New("config: manager not initialized, call Load() first")

	// ErrSectionTypeMismatch is returned by SetSection for a value of the wrong type.
	ErrSectionTypeMismatch = errors.New("config: section type mismatch")

	// ErrInvalidYAML matches every *ParseError.
	ErrInvalidYAML = errors.New("config: invalid YAML syntax")
)

// ParseError reports a footing.yaml that could not be decoded.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Is reports ErrInvalidYAML.
func (e *ParseError) Is(target error) bool {
	return target == ErrInvalidYAML
}

// ValidationError is one rejected value, addressed as "section.key".
type ValidationError struct {
	Field   string
	Message string
	Value   any
	Wrapped error
}

func (e *ValidationError) Error() string {
	if e.Value == nil {
		return e.Field + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s (got %v)", e.Field, e.Message, e.Value)
}

func (e *ValidationError) Unwrap() error {
	return e.Wrapped
}

// Section returns the section part of Field.
func (e *ValidationError) Section() string {
	section, _, _ := strings.Cut(e.Field, ".")
	return section
}

// ValidationErrors collects every problem found by Validate.
type ValidationErrors struct {
	Errors []ValidationError
}

func (e *ValidationErrors) Error() string {
	switch len(e.Errors) {
	case 0:
		return "config: no invalid values"
	case 1:
		return "config: invalid value: " + e.Errors[0].Error()
	}
	msgs := make([]string, len(e.Errors))
	for i := range e.Errors {
		msgs[i] = e.Errors[i].Error()
	}
	return fmt.Sprintf("config: %d invalid values: %s", len(e.Errors), strings.Join(msgs, "; "))
}

// Fields lists the rejected fields in report order.
func (e *ValidationErrors) Fields() []string {
	out := make([]string, len(e.Errors))
	for i := range e.Errors {
		out[i] = e.Errors[i].Field
	}
	return out
}

// Is matches ErrInvalidConfig and any sentinel wrapped by a member.
func (e *ValidationErrors) Is(target error) bool {
	if target == ErrInvalidConfig {
		return true
	}
	for i := range e.Errors {
		if errors.Is(&e.Errors[i], target) {
			return true
		}
	}
	return false
}
