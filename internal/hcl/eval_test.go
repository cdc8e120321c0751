package hcl

import (
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/mijahauan/EG-HG/internal/clif"
	"github.com/mijahauan/EG-HG/internal/egraph"
	"github.com/mijahauan/EG-HG/internal/transform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func parseExpr(t *testing.T, src string) hcl.Expression {
	t.Helper()
	expr, diags := hclsyntax.ParseExpression([]byte(src), "test.hcl", hcl.InitialPos)
	require.False(t, diags.HasErrors(), diags.Error())
	return expr
}

func TestEvaluateArguments(t *testing.T) {
	g, err := clif.Translate("(and (Cat a) (not (Dog a)))")
	require.NoError(t, err)

	var cut egraph.ID
	for _, id := range g.EdgeIDs() {
		if g.IsCut(id) {
			cut = id
		}
	}
	require.False(t, cut.IsSheet())
	dog := g.Named("Dog")
	require.Len(t, dog, 1)

	state := MoveState{Graph: g, Contested: cut, HasContest: true, Player: "skeptic"}
	ectx := state.EvalContext()

	testCases := []struct {
		name string
		src  string
		want cty.Value
	}{
		{"contested", `contested`, cty.StringVal(cut.String())},
		{"player", `player`, cty.StringVal("skeptic")},
		{"named", `named("Dog")`, transform.IDs(dog...)},
		{"named without match", `named("Fish")`, cty.ListValEmpty(cty.String)},
		{"items of contest", `items(contested)`, transform.IDs(dog...)},
		{"cuts of contest", `cuts(contested)`, cty.ListValEmpty(cty.String)},
		{"cuts of sheet", `cuts(null)`, transform.IDs(cut)},
		{"literal", `"(P a)"`, cty.StringVal("(P a)")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			params, err := EvaluateArguments(map[string]hcl.Expression{"v": parseExpr(t, tc.src)}, ectx)
			require.NoError(t, err)
			assert.True(t, tc.want.RawEquals(params["v"]), "got %#v", params["v"])
		})
	}

	t.Run("items of sheet", func(t *testing.T) {
		params, err := EvaluateArguments(map[string]hcl.Expression{"v": parseExpr(t, `items(null)`)}, ectx)
		require.NoError(t, err)
		sheet, err := g.ItemsInContext(egraph.Sheet)
		require.NoError(t, err)
		assert.True(t, transform.IDs(sheet...).RawEquals(params["v"]))
	})
}

func TestEvaluateArguments_NoContest(t *testing.T) {
	ectx := MoveState{Graph: egraph.New(), Player: "proposer"}.EvalContext()

	params, err := EvaluateArguments(map[string]hcl.Expression{"container_id": parseExpr(t, `contested`)}, ectx)
	require.NoError(t, err)
	assert.True(t, params["container_id"].IsNull())
}

func TestEvaluateArguments_Errors(t *testing.T) {
	ectx := MoveState{Graph: egraph.New(), Player: "proposer"}.EvalContext()

	testCases := []struct {
		name string
		src  string
	}{
		{"unknown variable", `nowhere`},
		{"unknown function", `upper("x")`},
		{"bad id", `items("not-an-id")`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := EvaluateArguments(map[string]hcl.Expression{"v": parseExpr(t, tc.src)}, ectx)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "failed to evaluate argument 'v'")
		})
	}
}

func TestEvaluatedArgumentsDriveRules(t *testing.T) {
	g, err := clif.Translate("(and (Cat a) (Dog a))")
	require.NoError(t, err)
	ectx := MoveState{Graph: g, Player: "proposer"}.EvalContext()

	params, err := EvaluateArguments(map[string]hcl.Expression{"item_ids": parseExpr(t, `named("Dog")`)}, ectx)
	require.NoError(t, err)

	next, err := transform.Default().Apply("erase", g, params)
	require.NoError(t, err)
	assert.Empty(t, next.Named("Dog"))
	assert.Len(t, next.Named("Cat"), 1)
}
