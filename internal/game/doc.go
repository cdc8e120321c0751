// Package game manages a folio of named graphs and starts innings, proof
// sessions over a thesis with an optional domain model drawn from the folio.
//
// A folio can be filled by hand with AddToFolio or from a config.Model, and
// a scripted inning from the same model can be played move by move with
// PlayInning.
package game
