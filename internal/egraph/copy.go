package egraph

import (
	"fmt"
	"slices"
)

// Copy returns a deep copy of g. Item IDs are preserved.
func (g *Graph) Copy() *Graph {
	c := New()
	for id, n := range g.nodes {
		c.nodes[id] = n.clone()
	}
	for id, e := range g.edges {
		c.edges[id] = e.clone()
	}
	for id, p := range g.parent {
		c.parent[id] = p
	}
	for ctx, items := range g.contents {
		c.contents[ctx] = slices.Clone(items)
	}
	c.order = slices.Clone(g.order)
	return c
}

// CopyInto copies every item of g into dst beneath the context parent,
// keeping IDs and the relative containment of g. Items on g's sheet become
// direct children of parent. Nothing is copied if any ID is already used in
// dst.
func (g *Graph) CopyInto(dst *Graph, parent ID) error {
	if err := dst.checkContext(parent); err != nil {
		return err
	}
	for _, id := range g.order {
		if dst.Has(id) {
			return fmt.Errorf("copy %s: %w", id, ErrDuplicateID)
		}
	}
	for _, id := range g.order {
		if n, ok := g.nodes[id]; ok {
			dst.nodes[id] = n.clone()
		} else {
			dst.edges[id] = g.edges[id].clone()
		}
		dst.order = append(dst.order, id)
	}
	g.copyContents(dst, Sheet, parent)
	return nil
}

func (g *Graph) copyContents(dst *Graph, from, to ID) {
	for _, id := range g.contents[from] {
		dst.attach(id, to)
		if g.IsCut(id) {
			g.copyContents(dst, id, id)
		}
	}
}
