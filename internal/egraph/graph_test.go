package egraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildNested draws (P a) on the sheet and [[ (Q a) ]] next to it.
func buildNested(t *testing.T) (g *Graph, a, p, outer, inner, q ID) {
	t.Helper()
	g = New()
	var err error
	a, err = g.AddNode(&Node{Kind: NodeConstant, Props: Properties{PropName: "a"}}, Sheet)
	require.NoError(t, err)
	p, err = g.AddEdge(&Edge{Kind: EdgePredicate, Args: []ID{a}, Props: Properties{PropName: "P"}}, Sheet)
	require.NoError(t, err)
	outer, err = g.AddCut(Sheet, nil)
	require.NoError(t, err)
	inner, err = g.AddCut(outer, nil)
	require.NoError(t, err)
	q, err = g.AddEdge(&Edge{Kind: EdgePredicate, Args: []ID{a}, Props: Properties{PropName: "Q"}}, inner)
	require.NoError(t, err)
	require.NoError(t, g.Validate())
	return
}

func TestAddItems(t *testing.T) {
	g, a, p, outer, inner, q := buildNested(t)

	assert.Equal(t, 1, g.NodeCount())
	assert.Equal(t, 4, g.EdgeCount())

	sheet, err := g.ItemsInContext(Sheet)
	require.NoError(t, err)
	assert.Equal(t, []ID{a, p, outer}, sheet)

	parent, ok := g.Parent(q)
	require.True(t, ok)
	assert.Equal(t, inner, parent)

	parent, ok = g.Parent(p)
	require.True(t, ok)
	assert.True(t, parent.IsSheet())

	assert.Equal(t, 0, g.Depth(outer))
	assert.Equal(t, 2, g.Depth(q))
	depth, err := g.ContextDepth(inner)
	require.NoError(t, err)
	assert.Equal(t, 2, depth)
}

func TestAddItemsRejectsBadInput(t *testing.T) {
	g, a, p, _, _, _ := buildNested(t)

	testCases := []struct {
		name    string
		add     func() error
		wantErr error
	}{
		{
			name: "unknown parent",
			add: func() error {
				_, err := g.AddNode(&Node{Kind: NodeVariable}, NewID())
				return err
			},
			wantErr: ErrNotFound,
		},
		{
			name: "parent is not a cut",
			add: func() error {
				_, err := g.AddNode(&Node{Kind: NodeVariable}, p)
				return err
			},
			wantErr: ErrNotACut,
		},
		{
			name: "parent is a node",
			add: func() error {
				_, err := g.AddNode(&Node{Kind: NodeVariable}, a)
				return err
			},
			wantErr: ErrNotACut,
		},
		{
			name: "edge under a node",
			add: func() error {
				_, err := g.AddEdge(&Edge{Kind: EdgePredicate, Args: []ID{a}}, a)
				return err
			},
			wantErr: ErrNotACut,
		},
		{
			name: "duplicate id",
			add: func() error {
				_, err := g.AddNode(&Node{ID: a, Kind: NodeVariable}, Sheet)
				return err
			},
			wantErr: ErrDuplicateID,
		},
		{
			name: "dangling argument",
			add: func() error {
				_, err := g.AddEdge(&Edge{Kind: EdgePredicate, Args: []ID{NewID()}}, Sheet)
				return err
			},
			wantErr: ErrDanglingArgument,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			before := g.NodeCount() + g.EdgeCount()
			err := tc.add()
			require.ErrorIs(t, err, tc.wantErr)
			assert.Equal(t, before, g.NodeCount()+g.EdgeCount())
			assert.NoError(t, g.Validate())
		})
	}
}

func TestItemsInContextRequiresCut(t *testing.T) {
	g, a, _, _, _, _ := buildNested(t)

	_, err := g.ItemsInContext(a)
	assert.ErrorIs(t, err, ErrNotACut)

	_, err = g.ItemsInContext(NewID())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCopyIsIndependent(t *testing.T) {
	g, a, p, outer, _, _ := buildNested(t)

	c := g.Copy()
	require.NoError(t, c.Validate())

	n, _ := c.Node(a)
	n.Props[PropName] = "changed"
	require.NoError(t, c.Remove(outer))

	orig, _ := g.Node(a)
	assert.Equal(t, "a", orig.Name())
	assert.True(t, g.Has(outer))
	assert.Equal(t, 5, g.NodeCount()+g.EdgeCount())
	assert.Equal(t, 2, c.NodeCount()+c.EdgeCount())
	assert.True(t, c.Has(p))
}

func TestCopyInto(t *testing.T) {
	src, a, p, outer, inner, q := buildNested(t)

	dst := New()
	root, err := dst.AddCut(Sheet, nil)
	require.NoError(t, err)

	require.NoError(t, src.CopyInto(dst, root))
	require.NoError(t, dst.Validate())

	items, err := dst.ItemsInContext(root)
	require.NoError(t, err)
	assert.Equal(t, []ID{a, p, outer}, items)

	parent, _ := dst.Parent(q)
	assert.Equal(t, inner, parent)
	assert.Equal(t, 3, dst.Depth(q))

	t.Run("refuses id collisions", func(t *testing.T) {
		before := dst.EdgeCount()
		err := src.CopyInto(dst, Sheet)
		require.ErrorIs(t, err, ErrDuplicateID)
		assert.Equal(t, before, dst.EdgeCount())
	})
}

func TestMove(t *testing.T) {
	g, a, p, outer, inner, _ := buildNested(t)

	assert.ErrorIs(t, g.Move(p, a), ErrNotACut)

	require.NoError(t, g.Move(p, inner))
	parent, _ := g.Parent(p)
	assert.Equal(t, inner, parent)
	assert.Equal(t, 2, g.Depth(p))
	require.NoError(t, g.Validate())

	err := g.Move(outer, inner)
	assert.ErrorIs(t, err, ErrCycle)
	require.NoError(t, g.Validate())
}

func TestRemove(t *testing.T) {
	t.Run("removes whole subtree", func(t *testing.T) {
		g, a, p, outer, inner, q := buildNested(t)

		require.NoError(t, g.Remove(outer))
		assert.False(t, g.Has(inner))
		assert.False(t, g.Has(q))
		assert.True(t, g.Has(a))
		assert.True(t, g.Has(p))
		require.NoError(t, g.Validate())
	})

	t.Run("refuses to orphan edge arguments", func(t *testing.T) {
		g, a, _, _, _, _ := buildNested(t)

		err := g.Remove(a)
		require.ErrorIs(t, err, ErrInUse)
		assert.True(t, g.Has(a))
		require.NoError(t, g.Validate())
	})
}

func TestDeleteEdge(t *testing.T) {
	g, _, _, outer, inner, q := buildNested(t)

	require.ErrorIs(t, g.DeleteEdge(outer), ErrNotEmpty)

	require.NoError(t, g.DeleteEdge(q))
	require.NoError(t, g.DeleteEdge(inner))
	items, err := g.ItemsInContext(outer)
	require.NoError(t, err)
	assert.Empty(t, items)
	require.NoError(t, g.Validate())
}

func TestNamedAndEdgesUsing(t *testing.T) {
	g, a, p, _, _, q := buildNested(t)

	assert.Equal(t, []ID{a}, g.Named("a"))
	assert.Equal(t, []ID{q}, g.Named("Q"))
	assert.Empty(t, g.Named("missing"))
	assert.Equal(t, []ID{p, q}, g.EdgesUsing(a))
}

func TestParseID(t *testing.T) {
	id := NewID()
	parsed, err := ParseID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	sheet, err := ParseID("")
	require.NoError(t, err)
	assert.True(t, sheet.IsSheet())
	assert.Equal(t, "sheet", sheet.String())

	_, err = ParseID("not-a-uuid")
	assert.Error(t, err)
}
