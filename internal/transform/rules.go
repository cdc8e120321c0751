package transform

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/mijahauan/EG-HG/internal/clif"
	"github.com/mijahauan/EG-HG/internal/egraph"
)

type addDoubleCutParams struct {
	ItemIDs     []string `cty:"item_ids" validate:"dive,uuid"`
	ContainerID *string  `cty:"container_id"`
}

// AddDoubleCut draws two nested cuts. With item_ids the cuts enclose those
// items, which must share one context; container_id, when also given, must
// name that context. Without items an empty double cut is drawn in
// container_id, or on the sheet when it is null.
func AddDoubleCut(g *egraph.Graph, p Params) (*egraph.Graph, error) {
	var args addDoubleCutParams
	if err := p.Decode(&args); err != nil {
		return nil, invalidParams(err)
	}
	items, err := parseIDs(args.ItemIDs)
	if err != nil {
		return nil, invalidParams(err)
	}
	container, err := parseOptionalID(args.ContainerID)
	if err != nil {
		return nil, invalidParams(err)
	}

	if len(items) > 0 {
		shared, err := sharedContext(g, items)
		if err != nil {
			return nil, err
		}
		if args.ContainerID != nil && container != shared {
			return nil, preconditionf("container %s does not hold the items, they sit in %s", container, shared)
		}
		container = shared
	} else if !container.IsSheet() && !g.IsCut(container) {
		return nil, preconditionf("container %s is not a cut of the graph", container)
	}

	next := g.Copy()
	outer, err := next.AddCut(container, nil)
	if err != nil {
		return nil, err
	}
	inner, err := next.AddCut(outer, nil)
	if err != nil {
		return nil, err
	}
	for _, id := range items {
		if err := next.Move(id, inner); err != nil {
			return nil, err
		}
	}
	return next, nil
}

type removeDoubleCutParams struct {
	OuterCutID string `cty:"outer_cut_id" validate:"required,uuid"`
}

// RemoveDoubleCut deletes a pair of nested cuts with nothing between them
// and promotes the inner cut's contents into the outer cut's context.
func RemoveDoubleCut(g *egraph.Graph, p Params) (*egraph.Graph, error) {
	var args removeDoubleCutParams
	if err := p.Decode(&args); err != nil {
		return nil, invalidParams(err)
	}
	outer, err := egraph.ParseID(args.OuterCutID)
	if err != nil {
		return nil, invalidParams(err)
	}
	if !g.IsCut(outer) {
		return nil, preconditionf("item %s is not a cut", outer)
	}
	between, err := g.ItemsInContext(outer)
	if err != nil {
		return nil, err
	}
	if len(between) != 1 || !g.IsCut(between[0]) {
		return nil, preconditionf("cut %s must contain exactly one item, a cut", outer)
	}
	inner := between[0]
	parent, _ := g.Parent(outer)

	next := g.Copy()
	contents, err := next.ItemsInContext(inner)
	if err != nil {
		return nil, err
	}
	for _, id := range contents {
		if err := next.Move(id, parent); err != nil {
			return nil, err
		}
	}
	if err := next.DeleteEdge(inner); err != nil {
		return nil, err
	}
	if err := next.DeleteEdge(outer); err != nil {
		return nil, err
	}
	return next, nil
}

type eraseParams struct {
	ItemIDs []string `cty:"item_ids" validate:"dive,uuid"`
}

// Erase removes items, and everything they enclose, from a positive area.
// The items must share one context at even depth. Nodes still used by an
// edge that survives the erasure cannot be erased.
func Erase(g *egraph.Graph, p Params) (*egraph.Graph, error) {
	var args eraseParams
	if err := p.Decode(&args); err != nil {
		return nil, invalidParams(err)
	}
	items, err := parseIDs(args.ItemIDs)
	if err != nil {
		return nil, invalidParams(err)
	}

	next := g.Copy()
	if len(items) == 0 {
		return next, nil
	}
	ctx, err := sharedContext(g, items)
	if err != nil {
		return nil, err
	}
	depth, err := g.ContextDepth(ctx)
	if err != nil {
		return nil, err
	}
	if depth%2 != 0 {
		return nil, preconditionf("items sit in a negative area (depth %d)", depth)
	}

	// Edges go first so nodes they use can follow in the same erasure.
	ordered := slices.Clone(items)
	slices.SortStableFunc(ordered, func(a, b egraph.ID) int {
		return cmp.Compare(rank(g, a), rank(g, b))
	})
	for _, id := range ordered {
		if !next.Has(id) {
			continue
		}
		if err := next.Remove(id); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrPrecondition, err)
		}
	}
	return next, nil
}

type insertParams struct {
	ContainerID string `cty:"container_id" validate:"omitempty,uuid"`
	CLIF        string `cty:"clif"`
}

// Insert translates a CLIF sentence and draws it inside a cut whose area is
// negative.
func Insert(g *egraph.Graph, p Params) (*egraph.Graph, error) {
	var args insertParams
	if err := p.Decode(&args); err != nil {
		return nil, invalidParams(err)
	}
	container, err := egraph.ParseID(args.ContainerID)
	if err != nil {
		return nil, invalidParams(err)
	}
	if !g.IsCut(container) {
		return nil, preconditionf("container %s is not a cut", container)
	}
	depth, err := g.ContextDepth(container)
	if err != nil {
		return nil, err
	}
	if depth%2 == 0 {
		return nil, preconditionf("container %s encloses a positive area (depth %d)", container, depth)
	}
	sub, err := clif.Translate(args.CLIF)
	if err != nil {
		return nil, invalidParams(err)
	}

	next := g.Copy()
	if err := sub.CopyInto(next, container); err != nil {
		return nil, err
	}
	return next, nil
}

// sharedContext returns the context holding every item, failing if any item
// is missing or the items are spread over several contexts.
func sharedContext(g *egraph.Graph, items []egraph.ID) (egraph.ID, error) {
	var ctx egraph.ID
	for i, id := range items {
		parent, ok := g.Parent(id)
		if !ok {
			return egraph.Sheet, preconditionf("item %s not found", id)
		}
		if i == 0 {
			ctx = parent
		} else if parent != ctx {
			return egraph.Sheet, preconditionf("items must share one context, found %s and %s", ctx, parent)
		}
	}
	return ctx, nil
}

func rank(g *egraph.Graph, id egraph.ID) int {
	if _, ok := g.Edge(id); ok {
		return 0
	}
	return 1
}
