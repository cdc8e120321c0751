package clif

import (
	"errors"
	"fmt"

	"github.com/mijahauan/EG-HG/internal/sexpr"
)

var (
	ErrArity               = errors.New("wrong number of arguments")
	ErrEmptyTerm           = errors.New("functional term cannot be an empty list")
	ErrInvalidOperator     = errors.New("invalid operator")
	ErrInvalidVariableList = errors.New("invalid variable list")
	ErrMalformedGraph      = errors.New("malformed graph")
)

// ArityError reports a logical connective or quantifier used with the wrong
// number of arguments.
type ArityError struct {
	Operator string
	Want     string
	Got      int
	Pos      sexpr.Pos
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("%s: '%s' expects %s argument(s), got %d", e.Pos, e.Operator, e.Want, e.Got)
}

func (e *ArityError) Unwrap() error {
	return ErrArity
}

func exprError(e *sexpr.Expr, sentinel error) error {
	return fmt.Errorf("%s: %w: %s", e.Pos, sentinel, e)
}
