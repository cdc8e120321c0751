package egraph

import "maps"

// NodeKind distinguishes lines of identity from named individuals.
type NodeKind string

const (
	NodeVariable NodeKind = "variable"
	NodeConstant NodeKind = "constant"
)

// EdgeKind distinguishes the relations an edge can draw.
type EdgeKind string

const (
	EdgePredicate EdgeKind = "predicate"
	EdgeFunction  EdgeKind = "function"
	EdgeEquals    EdgeKind = "equals"
	EdgeCut       EdgeKind = "cut"
)

// Well-known property keys.
const (
	PropName           = "name"
	PropSourceFunction = "source_function"
	PropConstruct      = "clif_construct"
	PropQuoted         = "quoted"
)

// Properties is a free-form annotation map attached to nodes and edges.
type Properties map[string]string

// Node is a vertex of the hypergraph.
type Node struct {
	ID    ID
	Kind  NodeKind
	Props Properties
}

// Name returns the node's name property, if any.
func (n *Node) Name() string {
	return n.Props[PropName]
}

func (n *Node) clone() *Node {
	return &Node{ID: n.ID, Kind: n.Kind, Props: maps.Clone(n.Props)}
}

// Edge is a hyperedge. Args is ordered; for function edges the first
// argument is the node standing for the function's value. Cuts have no
// arguments and act as contexts.
type Edge struct {
	ID    ID
	Kind  EdgeKind
	Args  []ID
	Props Properties
}

// Name returns the edge's name property, if any.
func (e *Edge) Name() string {
	return e.Props[PropName]
}

// IsCut reports whether the edge is a negation context.
func (e *Edge) IsCut() bool {
	return e.Kind == EdgeCut
}

func (e *Edge) clone() *Edge {
	return &Edge{
		ID:    e.ID,
		Kind:  e.Kind,
		Args:  append([]ID(nil), e.Args...),
		Props: maps.Clone(e.Props),
	}
}
