// SPDX-License-Identifier: MPL-2.0

package venv

import (
	"errors"
	"fmt"
)

var (
	// ErrInterpreterNotFound is the sentinel wrapped by InterpreterNotFoundError.
	ErrInterpreterNotFound = errors.New("interpreter not found")
	// ErrInvalidEnvironment is the sentinel wrapped by InvalidEnvironmentError.
	ErrInvalidEnvironment = errors.New("invalid environment")
	// ErrInvalidPath is the sentinel wrapped by InvalidPathError.
	ErrInvalidPath = errors.New("invalid path")
	// ErrPathNotFound is the sentinel wrapped by PathNotFoundError.
	ErrPathNotFound = errors.New("path not found")
)

type (
	// InterpreterNotFoundError reports that no executable matched a requested
	// interpreter spec. It carries the originally requested name and version
	// for diagnostics.
	InterpreterNotFoundError struct {
		Name    string
		Version string
	}

	// InvalidEnvironmentError reports that a directory failed structural
	// validation, optionally carrying the first violated rule.
	InvalidEnvironmentError struct {
		Path string
		Rule Rule
	}

	// InvalidPathError reports that an empty or undefined path was supplied
	// where one is required.
	InvalidPathError struct {
		Path string
	}

	// PathNotFoundError reports that an operation targeted a path expected
	// to exist. Only raised when the caller opted into strict checking.
	PathNotFoundError struct {
		Path string
	}
)

func (e *InterpreterNotFoundError) Error() string {
	if e.Version == "" {
		return fmt.Sprintf("interpreter not found: %s", e.Name)
	}
	return fmt.Sprintf("interpreter not found: %s %s", e.Name, e.Version)
}

// Unwrap supports errors.Is(err, ErrInterpreterNotFound).
func (e *InterpreterNotFoundError) Unwrap() error { return ErrInterpreterNotFound }

func (e *InvalidEnvironmentError) Error() string {
	if e.Rule != RuleNone {
		return fmt.Sprintf("invalid environment %s: %s", e.Path, e.Rule)
	}
	return fmt.Sprintf("invalid environment: %s", e.Path)
}

// Unwrap supports errors.Is(err, ErrInvalidEnvironment).
func (e *InvalidEnvironmentError) Unwrap() error { return ErrInvalidEnvironment }

func (e *InvalidPathError) Error() string {
	return fmt.Sprintf("invalid path: %q", e.Path)
}

// Unwrap supports errors.Is(err, ErrInvalidPath).
func (e *InvalidPathError) Unwrap() error { return ErrInvalidPath }

func (e *PathNotFoundError) Error() string {
	return fmt.Sprintf("path not found: %s", e.Path)
}

// Unwrap supports errors.Is(err, ErrPathNotFound).
func (e *PathNotFoundError) Unwrap() error { return ErrPathNotFound }
