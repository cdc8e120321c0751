package egraph

import (
	"errors"
	"fmt"
)

// Validate checks the structural invariants of the graph: every item sits in
// exactly one context, contexts are cuts, containment is acyclic and every
// edge argument is a node. All violations are reported together.
func (g *Graph) Validate() error {
	var errs []error
	seen := make(map[ID]ID, len(g.order))

	if len(g.order) != len(g.nodes)+len(g.edges) {
		errs = append(errs, fmt.Errorf("item index holds %d entries for %d nodes and %d edges", len(g.order), len(g.nodes), len(g.edges)))
	}
	for ctx, items := range g.contents {
		if !ctx.IsSheet() && !g.IsCut(ctx) {
			errs = append(errs, fmt.Errorf("context %s is not a cut", ctx))
		}
		for _, id := range items {
			if !g.Has(id) {
				errs = append(errs, fmt.Errorf("context %s lists unknown item %s", ctx, id))
				continue
			}
			if prev, dup := seen[id]; dup {
				errs = append(errs, fmt.Errorf("item %s is contained by both %s and %s", id, prev, ctx))
			}
			seen[id] = ctx
			if p := g.parent[id]; p != ctx {
				errs = append(errs, fmt.Errorf("item %s listed in %s but its parent is %s", id, ctx, p))
			}
		}
	}
	for _, id := range g.order {
		if !g.Has(id) {
			errs = append(errs, fmt.Errorf("item index lists unknown item %s", id))
			continue
		}
		if _, ok := seen[id]; !ok {
			errs = append(errs, fmt.Errorf("item %s is not contained by any context", id))
		}
		steps := 0
		for p, ok := g.parent[id]; ok; p, ok = g.parent[p] {
			if steps++; steps > len(g.order) {
				errs = append(errs, fmt.Errorf("containment of %s forms a cycle", id))
				break
			}
		}
	}
	for id, e := range g.edges {
		for _, arg := range e.Args {
			if _, ok := g.nodes[arg]; !ok {
				errs = append(errs, fmt.Errorf("edge %s: argument %s: %w", id, arg, ErrDanglingArgument))
			}
		}
	}
	return errors.Join(errs...)
}
