package sexpr

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind classifies an Expr.
type Kind int

const (
	Symbol Kind = iota
	Number
	String
	List
)

func (k Kind) String() string {
	switch k {
	case Symbol:
		return "symbol"
	case Number:
		return "number"
	case String:
		return "string"
	case List:
		return "list"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Pos is a 1-based line and column in the source text.
type Pos struct {
	Line   int
	Column int
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Expr is one node of the parsed tree. Text holds the atom's value (string
// literals without their quotes); Items holds a list's elements.
type Expr struct {
	Kind  Kind
	Text  string
	Items []*Expr
	Pos   Pos
}

// IsAtom reports whether e is a symbol, number or string.
func (e *Expr) IsAtom() bool {
	return e.Kind != List
}

// IsSymbol reports whether e is the symbol name.
func (e *Expr) IsSymbol(name string) bool {
	return e.Kind == Symbol && e.Text == name
}

// String renders e back into S-expression syntax.
func (e *Expr) String() string {
	switch e.Kind {
	case String:
		return strconv.Quote(e.Text)
	case List:
		parts := make([]string, len(e.Items))
		for i, item := range e.Items {
			parts[i] = item.String()
		}
		return "(" + strings.Join(parts, " ") + ")"
	default:
		return e.Text
	}
}

// SyntaxError reports malformed input.
type SyntaxError struct {
	Pos Pos
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at %s: %s", e.Pos, e.Msg)
}
