// Package hcl provides the HCL implementation of config.Loader and the
// evaluation of deferred move arguments.
//
// A folio is any set of .hcl files holding `graph` and `inning` blocks.
// Move arguments are kept as raw expressions by the loader and evaluated
// only when the move is about to be played, against an evaluation context
// describing the session at that point: the contested cut, the player to
// move and helper functions that look up items of the current graph.
package hcl
