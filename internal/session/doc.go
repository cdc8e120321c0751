// Package session runs a single inning of the Endoporeutic Game: a proof
// session over one thesis graph.
//
// A Session keeps a linear history of immutable graph snapshots with an
// undo/redo cursor. Moves are transformation rules looked up by name in a
// transform.Library, plus the structural remove-negation move that carries
// the contest one cut deeper and hands the attack to the other player.
// Every move is built on a copy of the current snapshot, so a rejected move
// leaves history, cursor, player and status exactly as they were.
//
// A Session may be read from several goroutines; moves are serialized.
package session
