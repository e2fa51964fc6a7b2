// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"fmt"
	"strings"
)

type (
	// ActionableError is an error with context for user-facing messages.
	//
	// Use the Context builder for construction:
	//
	//	err := issue.NewContext().
	//		WithOperation("enter environment").
	//		WithResource("~/.virtualenvs/demo").
	//		WithSuggestion("Run 'vsh demo' to create it first").
	//		Wrap(cause).
	//		Build()
	ActionableError struct {
		// Operation describes what was being attempted (e.g., "resolve interpreter").
		Operation string
		// Resource identifies the file, path, or entity involved (optional).
		Resource string
		// Suggestions provides hints on how to fix the issue (optional).
		Suggestions []string
		// Cause is the underlying error (optional).
		Cause error
	}

	// Context is a fluent builder for ActionableError values.
	Context struct {
		operation   string
		resource    string
		suggestions []string
		cause       error
	}
)

// NewContext creates a new builder.
func NewContext() *Context {
	return &Context{}
}

// WithOperation sets the failing operation.
func (c *Context) WithOperation(op string) *Context {
	c.operation = op
	return c
}

// WithResource sets the resource involved.
func (c *Context) WithResource(res string) *Context {
	c.resource = res
	return c
}

// WithSuggestion appends a fix-it suggestion.
func (c *Context) WithSuggestion(s string) *Context {
	c.suggestions = append(c.suggestions, s)
	return c
}

// Wrap records the underlying cause.
func (c *Context) Wrap(err error) *Context {
	c.cause = err
	return c
}

// Build assembles the ActionableError.
func (c *Context) Build() *ActionableError {
	return &ActionableError{
		Operation:   c.operation,
		Resource:    c.resource,
		Suggestions: c.suggestions,
		Cause:       c.cause,
	}
}

// BuildError returns the assembled error as a plain error value.
func (c *Context) BuildError() error {
	return c.Build()
}

// Error returns a concise message suitable for non-verbose output.
func (e *ActionableError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "failed to %s", e.Operation)
	if e.Resource != "" {
		fmt.Fprintf(&sb, ": %s", e.Resource)
	}
	if e.Cause != nil {
		fmt.Fprintf(&sb, ": %s", e.Cause.Error())
	}
	return sb.String()
}

// Unwrap exposes the cause for errors.Is / errors.As matching.
func (e *ActionableError) Unwrap() error {
	return e.Cause
}

// Format renders the error for display. In verbose mode the full cause chain
// is included; suggestions are always listed when present.
func (e *ActionableError) Format(verbose bool) string {
	var sb strings.Builder
	sb.WriteString(e.Error())
	if verbose && e.Cause != nil {
		fmt.Fprintf(&sb, "\n  cause: %v", e.Cause)
	}
	for _, s := range e.Suggestions {
		fmt.Fprintf(&sb, "\n  hint: %s", s)
	}
	return sb.String()
}
