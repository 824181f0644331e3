package main

import (
	"errors"

	"github.com/matsen/citecore/internal/config"
	"github.com/matsen/citecore/internal/reference"
	"github.com/matsen/citecore/internal/storage"
)

// Exit codes
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, write failure)
	ExitConfigError = 2 // Configuration error (missing or invalid settings, bad paths)
	ExitDataError   = 3 // Data error (unreadable or malformed input table)
)

// exitError attaches an exit code to an error.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func configError(err error) error { return &exitError{code: ExitConfigError, err: err} }
func dataError(err error) error   { return &exitError{code: ExitDataError, err: err} }

// exitCode maps err to the process exit code.
func exitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}

	switch {
	case errors.Is(err, config.ErrInputRequired),
		errors.Is(err, config.ErrInputNotFound),
		errors.Is(err, config.ErrOutputRequired),
		errors.Is(err, config.ErrOutputDirNotFound),
		errors.Is(err, config.ErrInvalidMembership),
		errors.Is(err, config.ErrInvalidLayout),
		errors.Is(err, storage.ErrUnsupportedFormat):
		return ExitConfigError
	case errors.Is(err, storage.ErrMissingColumn),
		errors.Is(err, reference.ErrMalformedList):
		return ExitDataError
	default:
		return ExitError
	}
}
