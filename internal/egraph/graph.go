package egraph

import (
	"fmt"
	"slices"
)

// Graph is an Existential Graph stored as an arena of nodes and edges plus a
// containment tree. Items whose parent is the sheet have no containment
// entry.
type Graph struct {
	nodes    map[ID]*Node
	edges    map[ID]*Edge
	parent   map[ID]ID   // item -> enclosing cut
	contents map[ID][]ID // context -> directly contained items, in insertion order
	order    []ID        // every item, in insertion order
}

// New returns an empty graph: a blank sheet of assertion.
func New() *Graph {
	return &Graph{
		nodes:    make(map[ID]*Node),
		edges:    make(map[ID]*Edge),
		parent:   make(map[ID]ID),
		contents: make(map[ID][]ID),
	}
}

// AddNode stores a copy of n in the given context and returns its ID. A zero
// n.ID is replaced with a fresh one.
func (g *Graph) AddNode(n *Node, parent ID) (ID, error) {
	if err := g.checkContext(parent); err != nil {
		return Sheet, err
	}
	stored := n.clone()
	if stored.ID.IsSheet() {
		stored.ID = NewID()
	}
	if g.Has(stored.ID) {
		return Sheet, fmt.Errorf("add node %s: %w", stored.ID, ErrDuplicateID)
	}
	if stored.Props == nil {
		stored.Props = Properties{}
	}
	g.nodes[stored.ID] = stored
	g.order = append(g.order, stored.ID)
	g.attach(stored.ID, parent)
	return stored.ID, nil
}

// AddEdge stores a copy of e in the given context and returns its ID. Every
// argument must already be a node of the graph.
func (g *Graph) AddEdge(e *Edge, parent ID) (ID, error) {
	if err := g.checkContext(parent); err != nil {
		return Sheet, err
	}
	stored := e.clone()
	if stored.ID.IsSheet() {
		stored.ID = NewID()
	}
	if g.Has(stored.ID) {
		return Sheet, fmt.Errorf("add edge %s: %w", stored.ID, ErrDuplicateID)
	}
	for _, arg := range stored.Args {
		if _, ok := g.nodes[arg]; !ok {
			return Sheet, fmt.Errorf("add %s edge: argument %s: %w", stored.Kind, arg, ErrDanglingArgument)
		}
	}
	if stored.Props == nil {
		stored.Props = Properties{}
	}
	g.edges[stored.ID] = stored
	g.order = append(g.order, stored.ID)
	g.attach(stored.ID, parent)
	return stored.ID, nil
}

// AddCut draws an empty cut in the given context.
func (g *Graph) AddCut(parent ID, props Properties) (ID, error) {
	return g.AddEdge(&Edge{Kind: EdgeCut, Props: props}, parent)
}

// Node returns the node with the given ID.
func (g *Graph) Node(id ID) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Edge returns the edge with the given ID.
func (g *Graph) Edge(id ID) (*Edge, bool) {
	e, ok := g.edges[id]
	return e, ok
}

// IsCut reports whether id names a cut of this graph.
func (g *Graph) IsCut(id ID) bool {
	e, ok := g.edges[id]
	return ok && e.IsCut()
}

// Has reports whether id names a node or an edge of this graph.
func (g *Graph) Has(id ID) bool {
	if _, ok := g.nodes[id]; ok {
		return true
	}
	_, ok := g.edges[id]
	return ok
}

// Parent returns the context directly enclosing id. The boolean is false
// when id is not an item of the graph.
func (g *Graph) Parent(id ID) (ID, bool) {
	if !g.Has(id) {
		return Sheet, false
	}
	return g.parent[id], true
}

// ItemsInContext returns the items directly inside ctx, which must be the
// sheet or a cut.
func (g *Graph) ItemsInContext(ctx ID) ([]ID, error) {
	if err := g.checkContext(ctx); err != nil {
		return nil, err
	}
	return slices.Clone(g.contents[ctx]), nil
}

// Depth returns the number of cuts enclosing item id.
func (g *Graph) Depth(id ID) int {
	depth := 0
	for p, ok := g.parent[id]; ok; p, ok = g.parent[p] {
		depth++
	}
	return depth
}

// ContextDepth returns the depth of the area inside ctx: zero for the sheet,
// one more than the cut's own depth otherwise. Even depths are positive
// areas, odd depths negative ones.
func (g *Graph) ContextDepth(ctx ID) (int, error) {
	if err := g.checkContext(ctx); err != nil {
		return 0, err
	}
	if ctx.IsSheet() {
		return 0, nil
	}
	return g.Depth(ctx) + 1, nil
}

// Encloses reports whether ctx is id itself or one of its ancestors.
func (g *Graph) Encloses(ctx, id ID) bool {
	if ctx.IsSheet() {
		return true
	}
	for cur := id; ; {
		if cur == ctx {
			return true
		}
		p, ok := g.parent[cur]
		if !ok {
			return false
		}
		cur = p
	}
}

// NodeIDs returns every node ID in insertion order.
func (g *Graph) NodeIDs() []ID {
	ids := make([]ID, 0, len(g.nodes))
	for _, id := range g.order {
		if _, ok := g.nodes[id]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// EdgeIDs returns every edge ID in insertion order.
func (g *Graph) EdgeIDs() []ID {
	ids := make([]ID, 0, len(g.edges))
	for _, id := range g.order {
		if _, ok := g.edges[id]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges, cuts included.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Named returns the items whose name property equals name, in insertion
// order.
func (g *Graph) Named(name string) []ID {
	var ids []ID
	for _, id := range g.order {
		if n, ok := g.nodes[id]; ok && n.Name() == name {
			ids = append(ids, id)
		} else if e, ok := g.edges[id]; ok && e.Name() == name {
			ids = append(ids, id)
		}
	}
	return ids
}

// EdgesUsing returns the edges that take node id as an argument.
func (g *Graph) EdgesUsing(id ID) []ID {
	var ids []ID
	for _, eid := range g.order {
		e, ok := g.edges[eid]
		if ok && slices.Contains(e.Args, id) {
			ids = append(ids, eid)
		}
	}
	return ids
}

// Move re-parents item id into the context to.
func (g *Graph) Move(id, to ID) error {
	if !g.Has(id) {
		return fmt.Errorf("move %s: %w", id, ErrNotFound)
	}
	if err := g.checkContext(to); err != nil {
		return err
	}
	if g.Encloses(id, to) {
		return fmt.Errorf("move %s into %s: %w", id, to, ErrCycle)
	}
	g.detach(id)
	g.attach(id, to)
	return nil
}

// DeleteEdge removes a single edge. A cut must be empty first.
func (g *Graph) DeleteEdge(id ID) error {
	e, ok := g.edges[id]
	if !ok {
		return fmt.Errorf("delete edge %s: %w", id, ErrNotFound)
	}
	if e.IsCut() && len(g.contents[id]) > 0 {
		return fmt.Errorf("delete cut %s: %w", id, ErrNotEmpty)
	}
	g.detach(id)
	delete(g.contents, id)
	delete(g.edges, id)
	g.order = slices.DeleteFunc(g.order, func(x ID) bool { return x == id })
	return nil
}

// Remove deletes id together with everything it encloses. It fails without
// changes if a node of the removed region is still used by an edge outside
// of it.
func (g *Graph) Remove(id ID) error {
	if !g.Has(id) {
		return fmt.Errorf("remove %s: %w", id, ErrNotFound)
	}
	region := map[ID]struct{}{}
	g.collect(id, region)
	for item := range region {
		if _, ok := g.nodes[item]; !ok {
			continue
		}
		for _, user := range g.EdgesUsing(item) {
			if _, inside := region[user]; !inside {
				return fmt.Errorf("remove %s: node %s used by edge %s: %w", id, item, user, ErrInUse)
			}
		}
	}
	g.detach(id)
	for item := range region {
		delete(g.nodes, item)
		delete(g.edges, item)
		delete(g.parent, item)
		delete(g.contents, item)
	}
	g.order = slices.DeleteFunc(g.order, func(x ID) bool {
		_, gone := region[x]
		return gone
	})
	return nil
}

func (g *Graph) collect(id ID, into map[ID]struct{}) {
	into[id] = struct{}{}
	for _, child := range g.contents[id] {
		g.collect(child, into)
	}
}

func (g *Graph) checkContext(ctx ID) error {
	if ctx.IsSheet() {
		return nil
	}
	if _, ok := g.nodes[ctx]; ok {
		return fmt.Errorf("context %s is a node: %w", ctx, ErrNotACut)
	}
	e, ok := g.edges[ctx]
	if !ok {
		return fmt.Errorf("context %s: %w", ctx, ErrNotFound)
	}
	if !e.IsCut() {
		return fmt.Errorf("context %s is a %s edge: %w", ctx, e.Kind, ErrNotACut)
	}
	return nil
}

func (g *Graph) attach(id, parent ID) {
	if parent.IsSheet() {
		delete(g.parent, id)
	} else {
		g.parent[id] = parent
	}
	g.contents[parent] = append(g.contents[parent], id)
}

func (g *Graph) detach(id ID) {
	p := g.parent[id]
	g.contents[p] = slices.DeleteFunc(g.contents[p], func(x ID) bool { return x == id })
	if len(g.contents[p]) == 0 {
		delete(g.contents, p)
	}
	delete(g.parent, id)
}
