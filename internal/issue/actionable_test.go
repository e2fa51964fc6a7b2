// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      *ActionableError
		expected string
	}{
		{
			name:     "operation only",
			err:      &ActionableError{Operation: "remove environment"},
			expected: "failed to remove environment",
		},
		{
			name:     "operation with resource",
			err:      &ActionableError{Operation: "validate environment", Resource: "/tmp/demo"},
			expected: "failed to validate environment: /tmp/demo",
		},
		{
			name: "full context",
			err: &ActionableError{
				Operation: "resolve interpreter",
				Resource:  "python3.7",
				Cause:     errors.New("not found"),
			},
			expected: "failed to resolve interpreter: python3.7: not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestContext_Builder(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")
	err := NewContext().
		WithOperation("create environment").
		WithResource("/tmp/demo").
		WithSuggestion("Check directory permissions").
		WithSuggestion("Use --path to pick another location").
		Wrap(cause).
		Build()

	if !errors.Is(err, cause) {
		t.Error("built error does not unwrap to cause")
	}
	formatted := err.Format(false)
	if !strings.Contains(formatted, "hint: Check directory permissions") {
		t.Errorf("Format() missing suggestion: %q", formatted)
	}
	if strings.Contains(formatted, "cause:") {
		t.Errorf("Format(false) should not include cause chain: %q", formatted)
	}
	if verbose := err.Format(true); !strings.Contains(verbose, "cause: boom") {
		t.Errorf("Format(true) missing cause chain: %q", verbose)
	}
}
