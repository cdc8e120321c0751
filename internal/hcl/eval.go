package hcl

import (
	"fmt"
	"slices"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/mijahauan/EG-HG/internal/egraph"
	"github.com/mijahauan/EG-HG/internal/transform"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
)

// MoveState is the part of a session visible to move arguments.
type MoveState struct {
	Graph      *egraph.Graph
	Contested  egraph.ID
	HasContest bool
	Player     string
}

// EvalContext exposes the state to expressions:
//
//	contested        ID of the contested cut, or null
//	player           "proposer" or "skeptic"
//	named(name)      IDs of items whose name is name, in insertion order
//	items(context)   IDs of the items directly inside context (null = sheet)
//	cuts(context)    like items, restricted to cuts
func (s MoveState) EvalContext() *hcl.EvalContext {
	contested := cty.NullVal(cty.String)
	if s.HasContest {
		contested = transform.ID(s.Contested)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"contested": contested,
			"player":    cty.StringVal(s.Player),
		},
		Functions: map[string]function.Function{
			"named": namedFunc(s.Graph),
			"items": contextFunc(s.Graph, false),
			"cuts":  contextFunc(s.Graph, true),
		},
	}
}

func namedFunc(g *egraph.Graph) function.Function {
	return function.New(&function.Spec{
		Params: []function.Parameter{
			{Name: "name", Type: cty.String},
		},
		Type: function.StaticReturnType(cty.List(cty.String)),
		Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
			return transform.IDs(g.Named(args[0].AsString())...), nil
		},
	})
}

func contextFunc(g *egraph.Graph, cutsOnly bool) function.Function {
	return function.New(&function.Spec{
		Params: []function.Parameter{
			{Name: "context", Type: cty.String, AllowNull: true},
		},
		Type: function.StaticReturnType(cty.List(cty.String)),
		Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
			ctx := egraph.Sheet
			if !args[0].IsNull() {
				id, err := egraph.ParseID(args[0].AsString())
				if err != nil {
					return cty.NilVal, function.NewArgError(0, err)
				}
				ctx = id
			}
			ids, err := g.ItemsInContext(ctx)
			if err != nil {
				return cty.NilVal, function.NewArgError(0, err)
			}
			if cutsOnly {
				ids = slices.DeleteFunc(ids, func(id egraph.ID) bool { return !g.IsCut(id) })
			}
			return transform.IDs(ids...), nil
		},
	})
}

// EvaluateArguments evaluates every argument expression against ectx.
func EvaluateArguments(args map[string]hcl.Expression, ectx *hcl.EvalContext) (transform.Params, error) {
	names := make([]string, 0, len(args))
	for name := range args {
		names = append(names, name)
	}
	sort.Strings(names)

	params := make(transform.Params, len(args))
	for _, name := range names {
		val, diags := args[name].Value(ectx)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to evaluate argument '%s': %w", name, diags)
		}
		params[name] = val
	}
	return params, nil
}
