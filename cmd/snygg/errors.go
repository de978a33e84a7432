package main

import (
	"errors"
	"fmt"

	snyggerrors "github.com/alexisbeaulieu97/snygg/pkg/errors"
)

func newCommandError(operation, context string, cause error, suggestion string) error {
	return &commandError{operation: operation, context: context, cause: cause, suggestion: suggestion}
}

type commandError struct {
	operation  string
	context    string
	cause      error
	suggestion string
}

func (e *commandError) Error() string {
	return fmt.Sprintf("Failed to %s: %s\n\nError: %v\n\nSuggestion: %s", e.operation, e.context, e.cause, e.suggestion)
}

func (e *commandError) Unwrap() error {
	return e.cause
}

// loadError explains why a stylesheet could not be opened.
func loadError(operation, path string, err error) error {
	var parseErr *snyggerrors.ParseError
	if errors.As(err, &parseErr) {
		return newCommandError(operation, fmt.Sprintf("parsing %s", path), err,
			"Fix the reported rule or property. Values use forms such as #FF0000, rgba(255,0,0,1), 12dp, 14sp, 50% or var(--name).")
	}

	var validationErr *snyggerrors.ValidationError
	if errors.As(err, &validationErr) {
		return newCommandError(operation, fmt.Sprintf("opening %s", path), err, "Stylesheets must use a .json, .yaml or .yml extension.")
	}

	return newCommandError(operation, fmt.Sprintf("reading %s", path), err, "Check that the file exists and you have permission to read it.")
}
