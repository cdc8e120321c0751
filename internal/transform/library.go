package transform

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/mijahauan/EG-HG/internal/egraph"
)

// Rule maps a graph snapshot and parameters to a new snapshot. A rule must
// not modify g.
type Rule func(g *egraph.Graph, p Params) (*egraph.Graph, error)

// Library maps rule names to rules.
type Library struct {
	rules map[string]Rule
}

// New returns an empty Library.
func New() *Library {
	return &Library{rules: make(map[string]Rule)}
}

// Default returns a Library holding the built-in alpha rules.
func Default() *Library {
	l := New()
	l.Register("add_double_cut", AddDoubleCut)
	l.Register("remove_double_cut", RemoveDoubleCut)
	l.Register("erase", Erase)
	l.Register("insert", Insert)
	return l
}

// Register adds a rule under name. Registering a name twice is a
// programming error and panics.
func (l *Library) Register(name string, rule Rule) {
	if _, exists := l.rules[name]; exists {
		panic(fmt.Sprintf("transformation rule with name '%s' already registered", name))
	}
	slog.Debug("Registering transformation rule.", "name", name)
	l.rules[name] = rule
}

// Lookup resolves a rule by name.
func (l *Library) Lookup(name string) (Rule, error) {
	rule, ok := l.rules[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRule, name)
	}
	return rule, nil
}

// Names returns the registered rule names in sorted order.
func (l *Library) Names() []string {
	names := make([]string, 0, len(l.rules))
	for name := range l.rules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether name is registered.
func (l *Library) Has(name string) bool {
	_, ok := l.rules[name]
	return ok
}

// Apply looks up name and runs it on g. Rule failures are wrapped in a
// *RuleError.
func (l *Library) Apply(name string, g *egraph.Graph, p Params) (*egraph.Graph, error) {
	rule, err := l.Lookup(name)
	if err != nil {
		return nil, err
	}
	next, err := rule(g, p)
	if err != nil {
		return nil, &RuleError{Rule: name, Err: err}
	}
	if next == nil {
		return nil, &RuleError{Rule: name, Err: errors.New("rule returned no graph")}
	}
	return next, nil
}
