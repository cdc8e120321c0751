package config

import (
	"sort"

	"github.com/hashicorp/hcl/v2"
)

// Model is the unified, format-agnostic representation of a folio.
type Model struct {
	Graphs  map[string]*GraphDefinition
	Innings []*Inning
}

// NewModel returns an empty model.
func NewModel() *Model {
	return &Model{
		Graphs:  make(map[string]*GraphDefinition),
		Innings: []*Inning{},
	}
}

// GraphNames returns the declared graph names in sorted order.
func (m *Model) GraphNames() []string {
	names := make([]string, 0, len(m.Graphs))
	for name := range m.Graphs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Inning returns the inning with the given name, or nil.
func (m *Model) Inning(name string) *Inning {
	for _, in := range m.Innings {
		if in.Name == name {
			return in
		}
	}
	return nil
}

// GraphDefinition is a named graph written in CLIF.
type GraphDefinition struct {
	Name        string
	Description string
	CLIF        string
	Source      string
}

// Inning is a scripted game: a thesis, an optional domain graph name and the
// moves to play in order.
type Inning struct {
	Name   string
	Thesis string
	Domain string
	Moves  []*Move
	Source string
}

// Move is one scripted move. Arguments stay unevaluated until the move is
// played, since they may refer to the state of the session at that point.
type Move struct {
	Rule      string
	Arguments map[string]hcl.Expression
}
