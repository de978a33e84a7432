package errors

import (
	"fmt"
	"strings"
)

// DecodeReason classifies why a value failed to decode.
type DecodeReason string

const (
	ReasonSyntax   DecodeReason = "syntax"
	ReasonArity    DecodeReason = "arity"
	ReasonRange    DecodeReason = "range"
	ReasonUnit     DecodeReason = "unit"
	ReasonVariable DecodeReason = "variable"
	ReasonKind     DecodeReason = "kind"
	ReasonUnknown  DecodeReason = "unknown"
)

// DecodeError reports a value that could not be decoded from its textual form.
type DecodeError struct {
	Input   string
	Reason  DecodeReason
	Message string
	Err     error
}

// NewDecodeError constructs a DecodeError.
func NewDecodeError(input string, reason DecodeReason, message string, err error) error {
	return &DecodeError{Input: input, Reason: reason, Message: message, Err: err}
}

func (e *DecodeError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("decode error (%s): %q: %s", e.Reason, e.Input, e.Message)
}

// Unwrap exposes the underlying error.
func (e *DecodeError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ParseError represents a stylesheet deserialization failure. Rule and Property
// name the location inside the document when known.
type ParseError struct {
	Path     string
	Line     int
	Rule     string
	Property string
	Message  string
	Err      error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

// NewRuleParseError constructs a ParseError pointing at a rule and, optionally,
// one of its properties.
func NewRuleParseError(rule, property string, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Rule: rule, Property: property, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}

	var location []string
	if e.Path != "" {
		if e.Line > 0 {
			location = append(location, fmt.Sprintf("%s:%d", e.Path, e.Line))
		} else {
			location = append(location, e.Path)
		}
	}
	if e.Rule != "" {
		location = append(location, fmt.Sprintf("rule %q", e.Rule))
	}
	if e.Property != "" {
		location = append(location, fmt.Sprintf("property %q", e.Property))
	}

	if len(location) == 0 {
		return fmt.Sprintf("parse error: %s", e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", strings.Join(location, ": "), e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// WithPath returns a copy of the error annotated with a source path.
func (e *ParseError) WithPath(path string) *ParseError {
	if e == nil {
		return nil
	}
	clone := *e
	clone.Path = path
	return &clone
}

// ValidationError captures structural validation issues.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ConflictError reports a rename whose target rule already exists.
type ConflictError struct {
	Rule string
}

// NewConflictError constructs a ConflictError for the given rule key.
func NewConflictError(rule string) error {
	return &ConflictError{Rule: rule}
}

func (e *ConflictError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("conflict: rule %s already exists", e.Rule)
}

// NotFoundError reports a rule that is not part of a stylesheet.
type NotFoundError struct {
	Rule string
}

// NewNotFoundError constructs a NotFoundError for the given rule key.
func NewNotFoundError(rule string) error {
	return &NotFoundError{Rule: rule}
}

func (e *NotFoundError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("rule not found: %s", e.Rule)
}
