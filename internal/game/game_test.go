package game

import (
	"context"
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/mijahauan/EG-HG/internal/config"
	"github.com/mijahauan/EG-HG/internal/egraph"
	"github.com/mijahauan/EG-HG/internal/session"
	"github.com/mijahauan/EG-HG/internal/transform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingRecorder struct {
	moves        map[string]int
	outcomes     []string
	translations int
	failures     int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{moves: make(map[string]int)}
}

func (r *countingRecorder) RecordMove(rule, outcome string) { r.moves[rule+"/"+outcome]++ }
func (r *countingRecorder) RecordOutcome(status string)     { r.outcomes = append(r.outcomes, status) }
func (r *countingRecorder) RecordTranslation(err error) {
	r.translations++
	if err != nil {
		r.failures++
	}
}

func socrates(t *testing.T) *egraph.Graph {
	t.Helper()
	g := egraph.New()
	_, err := g.AddNode(&egraph.Node{Kind: egraph.NodeConstant, Props: egraph.Properties{egraph.PropName: "Socrates"}}, egraph.Sheet)
	require.NoError(t, err)
	return g
}

func expr(t *testing.T, src string) hcl.Expression {
	t.Helper()
	e, diags := hclsyntax.ParseExpression([]byte(src), "test.hcl", hcl.InitialPos)
	require.False(t, diags.HasErrors(), diags.Error())
	return e
}

func TestNewGameHasEmptyFolio(t *testing.T) {
	assert.Empty(t, New().Names())
}

func TestAddToFolio(t *testing.T) {
	g := New()
	require.NoError(t, g.AddToFolio("Greek Philosophy", socrates(t)))

	stored, ok := g.Folio("Greek Philosophy")
	require.True(t, ok)
	assert.Equal(t, 1, stored.NodeCount())
	assert.Equal(t, []string{"Greek Philosophy"}, g.Names())

	t.Run("duplicate name fails", func(t *testing.T) {
		err := g.AddToFolio("Greek Philosophy", egraph.New())
		assert.ErrorIs(t, err, ErrFolioConflict)
		assert.ErrorContains(t, err, "already exists in the folio")
	})

	t.Run("stored graph is a copy", func(t *testing.T) {
		stored.AddNode(&egraph.Node{Kind: egraph.NodeVariable}, egraph.Sheet)
		again, _ := g.Folio("Greek Philosophy")
		assert.Equal(t, 1, again.NodeCount())
	})
}

func TestStartInning(t *testing.T) {
	thesis := egraph.New()
	_, err := thesis.AddNode(&egraph.Node{Kind: egraph.NodeVariable, Props: egraph.Properties{egraph.PropName: "x"}}, egraph.Sheet)
	require.NoError(t, err)

	t.Run("thesis only", func(t *testing.T) {
		s, err := New().StartInning(thesis, "")
		require.NoError(t, err)
		assert.Equal(t, 1, s.CurrentGraph().NodeCount())
		assert.Equal(t, 0, s.Domain().NodeCount())
	})

	t.Run("with domain model", func(t *testing.T) {
		g := New()
		require.NoError(t, g.AddToFolio("Greek Philosophy", socrates(t)))

		s, err := g.StartInning(thesis, "Greek Philosophy")
		require.NoError(t, err)
		assert.Equal(t, 1, s.CurrentGraph().NodeCount())
		require.Equal(t, 1, s.Domain().NodeCount())
		assert.Len(t, s.Domain().Named("Socrates"), 1)
	})

	t.Run("missing domain model fails", func(t *testing.T) {
		_, err := New().StartInning(thesis, "Atlantis")
		assert.ErrorIs(t, err, ErrNotInFolio)
		assert.ErrorContains(t, err, "not found in folio")
	})
}

func TestLoadFolio(t *testing.T) {
	rec := newCountingRecorder()
	g := New(WithRecorder(rec))

	model := config.NewModel()
	model.Graphs["greek"] = &config.GraphDefinition{Name: "greek", CLIF: "(Man Socrates)"}
	model.Graphs["cats"] = &config.GraphDefinition{Name: "cats", CLIF: "(exists (x) (Cat x))"}
	require.NoError(t, g.LoadFolio(context.Background(), model))

	assert.Equal(t, []string{"cats", "greek"}, g.Names())
	assert.Equal(t, 2, rec.translations)

	t.Run("bad clif names the graph", func(t *testing.T) {
		bad := config.NewModel()
		bad.Graphs["broken"] = &config.GraphDefinition{Name: "broken", CLIF: "(not)", Source: "folio.hcl"}
		err := New(WithRecorder(rec)).LoadFolio(context.Background(), bad)
		assert.ErrorContains(t, err, "graph 'broken' in folio.hcl")
		assert.Equal(t, 1, rec.failures)
	})
}

func TestPlayInning(t *testing.T) {
	rec := newCountingRecorder()
	g := New(WithRecorder(rec))

	inning := &config.Inning{
		Name:   "double negation",
		Thesis: "(not (P a))",
		Moves: []*config.Move{
			{Rule: session.RemoveNegationMove},
			{Rule: session.RemoveNegationMove},
			{Rule: "erase", Arguments: map[string]hcl.Expression{"item_ids": expr(t, `items(contested)`)}},
			{Rule: "erase", Arguments: map[string]hcl.Expression{"item_ids": expr(t, `[]`)}},
		},
	}

	s, err := g.PlayInning(context.Background(), inning)
	require.NoError(t, err)

	assert.Equal(t, session.SkepticWin, s.Status())
	assert.Equal(t, session.Proposer, s.Player())
	assert.Equal(t, 3, s.HistoryIndex())
	assert.Equal(t, 0, s.CurrentGraph().NodeCount()+s.CurrentGraph().EdgeCount())
	assert.Equal(t, 2, rec.moves["remove_negation/applied"])
	assert.Equal(t, 1, rec.moves["erase/applied"])
	assert.Equal(t, []string{"skeptic_win"}, rec.outcomes)
}

func TestPlayInning_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		inning  *config.Inning
		wantErr string
		wantIs  error
	}{
		{
			name:    "bad thesis",
			inning:  &config.Inning{Name: "i", Thesis: "(P"},
			wantErr: "inning 'i' thesis",
		},
		{
			name:    "missing domain",
			inning:  &config.Inning{Name: "i", Thesis: "(P a)", Domain: "nowhere"},
			wantIs:  ErrNotInFolio,
			wantErr: "inning 'i'",
		},
		{
			name:    "unknown rule",
			inning:  &config.Inning{Name: "i", Thesis: "(P a)", Moves: []*config.Move{{Rule: "fly"}}},
			wantIs:  transform.ErrUnknownRule,
			wantErr: "inning 'i' move 1 (fly)",
		},
		{
			name: "remove negation with arguments",
			inning: &config.Inning{Name: "i", Thesis: "(P a)", Moves: []*config.Move{
				{Rule: session.RemoveNegationMove, Arguments: map[string]hcl.Expression{"x": expr(t, `1`)}},
			}},
			wantErr: "takes no arguments",
		},
		{
			name: "argument evaluation fails",
			inning: &config.Inning{Name: "i", Thesis: "(P a)", Moves: []*config.Move{
				{Rule: "erase", Arguments: map[string]hcl.Expression{"item_ids": expr(t, `nowhere`)}},
			}},
			wantErr: "failed to evaluate argument 'item_ids'",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New().PlayInning(context.Background(), tc.inning)
			require.Error(t, err)
			assert.ErrorContains(t, err, tc.wantErr)
			if tc.wantIs != nil {
				assert.ErrorIs(t, err, tc.wantIs)
			}
		})
	}
}

func TestPlayInning_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	inning := &config.Inning{Name: "i", Thesis: "(not (P a))", Moves: []*config.Move{{Rule: session.RemoveNegationMove}}}
	s, err := New().PlayInning(ctx, inning)
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, s)
	assert.Equal(t, 0, s.HistoryIndex())
}
