// Package egraph is the in-memory store for Existential Graphs drawn as
// nested hypergraphs. Nodes are lines of identity (variables) or named
// individuals (constants); edges are predicates, functions, equalities and
// cuts. Every item lives in exactly one context, either the sheet of
// assertion or a cut, so the containment relation always forms a tree
// rooted at the sheet.
//
// A Graph is not safe for concurrent mutation. Proof sessions treat every
// Graph they publish as an immutable snapshot and only ever mutate fresh
// copies.
package egraph
