// Package transform holds the library of named graph transformations a proof
// session can invoke. Every rule is a pure function from a graph snapshot and
// a set of go-cty parameters to a new snapshot; the input graph is never
// modified.
package transform
