package clif

import (
	"fmt"
	"log/slog"

	"github.com/mijahauan/EG-HG/internal/egraph"
	"github.com/mijahauan/EG-HG/internal/sexpr"
)

// Translator turns CLIF text into graphs. It keeps no state between calls
// and may be shared.
type Translator struct {
	logger *slog.Logger
}

// Option configures a Translator.
type Option func(*Translator)

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Translator) {
		t.logger = logger
	}
}

// NewTranslator returns a Translator configured by opts.
func NewTranslator(opts ...Option) *Translator {
	t := &Translator{logger: slog.Default()}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Translate parses text and builds the graph it denotes on a fresh sheet of
// assertion. Several top-level sentences are read as their conjunction.
// Empty input yields an empty graph. Any error aborts the whole
// translation.
func (t *Translator) Translate(text string) (*egraph.Graph, error) {
	exprs, err := sexpr.ParseAll(text)
	if err != nil {
		return nil, err
	}
	t.logger.Debug("Translating CLIF text.", "sentences", len(exprs))

	b := &builder{
		g:         egraph.New(),
		constants: make(map[constantKey]egraph.ID),
	}
	for _, e := range exprs {
		if err := b.sentence(e, egraph.Sheet); err != nil {
			t.logger.Debug("Translation aborted.", "error", err)
			return nil, err
		}
	}

	t.logger.Debug("Translation finished.", "nodes", b.g.NodeCount(), "edges", b.g.EdgeCount())
	return b.g, nil
}

// Translate is a convenience wrapper around a default Translator.
func Translate(text string) (*egraph.Graph, error) {
	return NewTranslator().Translate(text)
}

type constantKey struct {
	name   string
	quoted bool
}

// builder holds the state of a single translation.
type builder struct {
	g         *egraph.Graph
	scopes    scopeStack
	constants map[constantKey]egraph.ID
}

func (b *builder) sentence(e *sexpr.Expr, ctx egraph.ID) error {
	switch e.Kind {
	case sexpr.List:
		return b.list(e, ctx)
	case sexpr.Symbol:
		return b.predicate(e, nil, ctx)
	default:
		return exprError(e, ErrInvalidOperator)
	}
}

func (b *builder) list(e *sexpr.Expr, ctx egraph.ID) error {
	if len(e.Items) == 0 {
		return nil
	}
	op, args := e.Items[0], e.Items[1:]

	if op.Kind == sexpr.List {
		if len(args) == 0 {
			return b.sentence(op, ctx)
		}
		return exprError(op, ErrInvalidOperator)
	}
	if op.Kind != sexpr.Symbol {
		return exprError(op, ErrInvalidOperator)
	}

	switch op.Text {
	case "and":
		for _, arg := range args {
			if err := b.sentence(arg, ctx); err != nil {
				return err
			}
		}
		return nil

	case "not":
		if err := arity(op, args, 1); err != nil {
			return err
		}
		cut, err := b.g.AddCut(ctx, nil)
		if err != nil {
			return err
		}
		return b.sentence(args[0], cut)

	case "or":
		if len(args) == 0 {
			return &ArityError{Operator: op.Text, Want: "at least 1", Got: 0, Pos: op.Pos}
		}
		outer, err := b.g.AddCut(ctx, egraph.Properties{egraph.PropConstruct: "or"})
		if err != nil {
			return err
		}
		for _, arg := range args {
			inner, err := b.g.AddCut(outer, nil)
			if err != nil {
				return err
			}
			if err := b.sentence(arg, inner); err != nil {
				return err
			}
		}
		return nil

	case "if":
		if err := arity(op, args, 2); err != nil {
			return err
		}
		outer, err := b.g.AddCut(ctx, egraph.Properties{egraph.PropConstruct: "if"})
		if err != nil {
			return err
		}
		if err := b.sentence(args[0], outer); err != nil {
			return err
		}
		inner, err := b.g.AddCut(outer, nil)
		if err != nil {
			return err
		}
		return b.sentence(args[1], inner)

	case "exists":
		if err := arity(op, args, 2); err != nil {
			return err
		}
		return b.quantify(args[0], ctx, func() error {
			return b.sentence(args[1], ctx)
		})

	case "forall":
		if err := arity(op, args, 2); err != nil {
			return err
		}
		outer, err := b.g.AddCut(ctx, egraph.Properties{egraph.PropConstruct: "forall"})
		if err != nil {
			return err
		}
		return b.quantify(args[0], outer, func() error {
			inner, err := b.g.AddCut(outer, nil)
			if err != nil {
				return err
			}
			return b.sentence(args[1], inner)
		})

	case "=":
		if err := arity(op, args, 2); err != nil {
			return err
		}
		left, err := b.term(args[0], ctx)
		if err != nil {
			return err
		}
		right, err := b.term(args[1], ctx)
		if err != nil {
			return err
		}
		_, err = b.g.AddEdge(&egraph.Edge{Kind: egraph.EdgeEquals, Args: []egraph.ID{left, right}}, ctx)
		return err

	default:
		return b.predicate(op, args, ctx)
	}
}

// quantify draws one variable node per name in vars inside ctx, binds them
// in a new scope for the duration of body and pops the scope afterwards.
// A name may appear only once in vars.
func (b *builder) quantify(vars *sexpr.Expr, ctx egraph.ID, body func() error) error {
	if vars.Kind != sexpr.List {
		return exprError(vars, ErrInvalidVariableList)
	}
	sc := make(scope, len(vars.Items))
	for _, v := range vars.Items {
		if v.Kind != sexpr.Symbol {
			return exprError(vars, ErrInvalidVariableList)
		}
		if _, dup := sc[v.Text]; dup {
			return exprError(vars, ErrInvalidVariableList)
		}
		id, err := b.g.AddNode(&egraph.Node{
			Kind:  egraph.NodeVariable,
			Props: egraph.Properties{egraph.PropName: v.Text},
		}, ctx)
		if err != nil {
			return err
		}
		sc[v.Text] = id
	}

	b.scopes.push(sc)
	defer b.scopes.pop()
	return body()
}

func (b *builder) predicate(op *sexpr.Expr, args []*sexpr.Expr, ctx egraph.ID) error {
	ids := make([]egraph.ID, 0, len(args))
	for _, arg := range args {
		id, err := b.term(arg, ctx)
		if err != nil {
			return err
		}
		ids = append(ids, id)
	}
	_, err := b.g.AddEdge(&egraph.Edge{
		Kind:  egraph.EdgePredicate,
		Args:  ids,
		Props: egraph.Properties{egraph.PropName: op.Text},
	}, ctx)
	return err
}

// term resolves e to the node standing for the individual it denotes.
func (b *builder) term(e *sexpr.Expr, ctx egraph.ID) (egraph.ID, error) {
	switch e.Kind {
	case sexpr.List:
		return b.function(e, ctx)
	case sexpr.Symbol:
		if id, ok := b.scopes.lookup(e.Text); ok {
			return id, nil
		}
	}
	return b.constant(e, ctx)
}

func (b *builder) constant(e *sexpr.Expr, ctx egraph.ID) (egraph.ID, error) {
	key := constantKey{name: e.Text, quoted: e.Kind == sexpr.String}
	if id, ok := b.constants[key]; ok {
		return id, nil
	}
	props := egraph.Properties{egraph.PropName: e.Text}
	if key.quoted {
		props[egraph.PropQuoted] = "true"
	}
	id, err := b.g.AddNode(&egraph.Node{Kind: egraph.NodeConstant, Props: props}, ctx)
	if err != nil {
		return egraph.Sheet, err
	}
	b.constants[key] = id
	return id, nil
}

// function draws a functional term: an anonymous variable for the value and
// a function edge whose first argument is that variable.
func (b *builder) function(e *sexpr.Expr, ctx egraph.ID) (egraph.ID, error) {
	if len(e.Items) == 0 {
		return egraph.Sheet, exprError(e, ErrEmptyTerm)
	}
	fn := e.Items[0]
	if fn.Kind != sexpr.Symbol {
		return egraph.Sheet, exprError(fn, ErrInvalidOperator)
	}

	args := make([]egraph.ID, 0, len(e.Items))
	for _, sub := range e.Items[1:] {
		id, err := b.term(sub, ctx)
		if err != nil {
			return egraph.Sheet, err
		}
		args = append(args, id)
	}

	value, err := b.g.AddNode(&egraph.Node{
		Kind:  egraph.NodeVariable,
		Props: egraph.Properties{egraph.PropSourceFunction: fn.Text},
	}, ctx)
	if err != nil {
		return egraph.Sheet, err
	}
	_, err = b.g.AddEdge(&egraph.Edge{
		Kind:  egraph.EdgeFunction,
		Args:  append([]egraph.ID{value}, args...),
		Props: egraph.Properties{egraph.PropName: fn.Text},
	}, ctx)
	if err != nil {
		return egraph.Sheet, err
	}
	return value, nil
}

func arity(op *sexpr.Expr, args []*sexpr.Expr, want int) error {
	if len(args) != want {
		return &ArityError{Operator: op.Text, Want: fmt.Sprint(want), Got: len(args), Pos: op.Pos}
	}
	return nil
}
