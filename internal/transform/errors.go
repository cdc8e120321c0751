package transform

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownRule   = errors.New("unknown transformation rule")
	ErrInvalidParams = errors.New("invalid rule parameters")
	ErrPrecondition  = errors.New("rule precondition violated")
)

// RuleError is returned by Library.Apply when a rule rejects its input.
type RuleError struct {
	Rule string
	Err  error
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("rule %q: %v", e.Rule, e.Err)
}

func (e *RuleError) Unwrap() error {
	return e.Err
}

func preconditionf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrPrecondition, fmt.Sprintf(format, args...))
}

func invalidParams(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidParams, err)
}
