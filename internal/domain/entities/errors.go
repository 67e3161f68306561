package entities

import (
	"errors"
	"fmt"
	"strings"
)

// ErrHookFailed is wrapped by every error that should make the hook exit non-zero.
var ErrHookFailed = errors.New("hook failed")

// ConfigParseError describes one malformed line in commands.conf.
// The line is dropped; parsing continues.
type ConfigParseError struct {
	Line   int
	Text   string
	Reason string
}

func (e *ConfigParseError) Error() string {
	return fmt.Sprintf("commands config line %d: %s: %q", e.Line, e.Reason, e.Text)
}

// ValidationFailure is a Git-Flow rule violation. It carries the concrete
// values involved and at least one remediation command sequence.
type ValidationFailure struct {
	Rule        string
	Actual      string
	Expected    string
	Remediation []string
}

// NewValidationFailure builds a ValidationFailure.
func NewValidationFailure(rule, actual, expected string, remediation ...string) *ValidationFailure {
	return &ValidationFailure{
		Rule:        rule,
		Actual:      actual,
		Expected:    expected,
		Remediation: remediation,
	}
}

func (e *ValidationFailure) Error() string {
	var b strings.Builder
	b.WriteString(e.Rule)
	if e.Actual != "" {
		fmt.Fprintf(&b, " (actual: %s", e.Actual)
		if e.Expected != "" {
			fmt.Fprintf(&b, ", expected: %s", e.Expected)
		}
		b.WriteString(")")
	}
	return b.String()
}

// Unwrap lets errors.Is match ErrHookFailed.
func (e *ValidationFailure) Unwrap() error {
	return ErrHookFailed
}

// Report renders the failure with its remediation steps for the terminal.
func (e *ValidationFailure) Report() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Rule violated: %s\n", e.Rule)
	if e.Actual != "" {
		fmt.Fprintf(&b, "  actual:   %s\n", e.Actual)
	}
	if e.Expected != "" {
		fmt.Fprintf(&b, "  expected: %s\n", e.Expected)
	}
	if len(e.Remediation) > 0 {
		b.WriteString("How to fix:\n")
		for _, step := range e.Remediation {
			fmt.Fprintf(&b, "  %s\n", step)
		}
	}
	return b.String()
}

// AsValidationFailure extracts a ValidationFailure from an error chain.
func AsValidationFailure(err error) (*ValidationFailure, bool) {
	var failure *ValidationFailure
	if errors.As(err, &failure) {
		return failure, true
	}
	return nil, false
}
