package clif

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mijahauan/EG-HG/internal/egraph"
)

// Render writes g back out as a single CLIF sentence. Cuts tagged by the
// translator are rebuilt as or, if and forall when their shape still
// matches; any other cut becomes a plain not. Unnamed variables are given
// generated names, and a variable whose name is already held by another
// variable or by a constant gets a numeric suffix, so translating the
// output again yields the same lines of identity. An empty sheet renders
// as the empty string.
func Render(g *egraph.Graph) (string, error) {
	r := &renderer{g: g, names: make(map[egraph.ID]string), taken: make(map[string]bool)}
	for _, id := range g.NodeIDs() {
		if n, _ := g.Node(id); n.Kind == egraph.NodeConstant {
			r.taken[n.Name()] = true
		}
	}
	return r.context(egraph.Sheet)
}

type renderer struct {
	g       *egraph.Graph
	names   map[egraph.ID]string
	taken   map[string]bool
	counter int
}

func (r *renderer) context(ctx egraph.ID) (string, error) {
	items, err := r.g.ItemsInContext(ctx)
	if err != nil {
		return "", err
	}
	return r.items(items)
}

// items renders a group of sibling items: quantified variables become an
// exists, edges are conjoined.
func (r *renderer) items(ids []egraph.ID) (string, error) {
	var vars, parts []string
	for _, id := range ids {
		if n, ok := r.g.Node(id); ok {
			if isBoundVariable(n) {
				vars = append(vars, r.name(n))
			}
			continue
		}
		part, err := r.edge(id)
		if err != nil {
			return "", err
		}
		if part != "" {
			parts = append(parts, part)
		}
	}

	var body string
	switch len(parts) {
	case 0:
	case 1:
		body = parts[0]
	default:
		body = "(and " + strings.Join(parts, " ") + ")"
	}
	if len(vars) > 0 {
		return fmt.Sprintf("(exists (%s) %s)", strings.Join(vars, " "), orEmpty(body)), nil
	}
	return body, nil
}

func (r *renderer) edge(id egraph.ID) (string, error) {
	e, _ := r.g.Edge(id)
	switch e.Kind {
	case egraph.EdgeCut:
		return r.cut(e)
	case egraph.EdgePredicate:
		return r.atomic(e.Name(), e.Args)
	case egraph.EdgeEquals:
		return r.atomic("=", e.Args)
	case egraph.EdgeFunction:
		return "", nil
	}
	return "", fmt.Errorf("%w: edge %s has unknown kind %q", ErrMalformedGraph, id, e.Kind)
}

func (r *renderer) atomic(name string, args []egraph.ID) (string, error) {
	parts := []string{name}
	for _, arg := range args {
		t, err := r.term(arg)
		if err != nil {
			return "", err
		}
		parts = append(parts, t)
	}
	return "(" + strings.Join(parts, " ") + ")", nil
}

func (r *renderer) cut(e *egraph.Edge) (string, error) {
	items, err := r.g.ItemsInContext(e.ID)
	if err != nil {
		return "", err
	}
	switch e.Props[egraph.PropConstruct] {
	case "or":
		if s, ok, err := r.or(items); ok || err != nil {
			return s, err
		}
	case "if":
		if s, ok, err := r.ifThen(items); ok || err != nil {
			return s, err
		}
	case "forall":
		if s, ok, err := r.forall(items); ok || err != nil {
			return s, err
		}
	}
	inner, err := r.items(items)
	if err != nil {
		return "", err
	}
	return "(not " + orEmpty(inner) + ")", nil
}

func (r *renderer) or(items []egraph.ID) (string, bool, error) {
	if len(items) == 0 {
		return "", false, nil
	}
	for _, id := range items {
		if !r.plainCut(id) {
			return "", false, nil
		}
	}
	parts := make([]string, 0, len(items))
	for _, id := range items {
		s, err := r.context(id)
		if err != nil {
			return "", false, err
		}
		parts = append(parts, orEmpty(s))
	}
	return "(or " + strings.Join(parts, " ") + ")", true, nil
}

func (r *renderer) ifThen(items []egraph.ID) (string, bool, error) {
	consequent := -1
	for i, id := range items {
		if r.plainCut(id) {
			consequent = i
		}
	}
	if consequent < 0 {
		return "", false, nil
	}
	antecedent := make([]egraph.ID, 0, len(items)-1)
	antecedent = append(antecedent, items[:consequent]...)
	antecedent = append(antecedent, items[consequent+1:]...)

	p, err := r.items(antecedent)
	if err != nil {
		return "", false, err
	}
	q, err := r.context(items[consequent])
	if err != nil {
		return "", false, err
	}
	return fmt.Sprintf("(if %s %s)", orEmpty(p), orEmpty(q)), true, nil
}

func (r *renderer) forall(items []egraph.ID) (string, bool, error) {
	var vars []string
	body := egraph.Sheet
	for _, id := range items {
		if n, ok := r.g.Node(id); ok && isBoundVariable(n) {
			vars = append(vars, r.name(n))
			continue
		}
		if r.plainCut(id) && body.IsSheet() {
			body = id
			continue
		}
		return "", false, nil
	}
	if body.IsSheet() || len(vars) == 0 {
		return "", false, nil
	}
	s, err := r.context(body)
	if err != nil {
		return "", false, err
	}
	return fmt.Sprintf("(forall (%s) %s)", strings.Join(vars, " "), orEmpty(s)), true, nil
}

// term renders the individual a node stands for, rebuilding functional
// terms from the function edge whose value the node is.
func (r *renderer) term(id egraph.ID) (string, error) {
	n, ok := r.g.Node(id)
	if !ok {
		return "", fmt.Errorf("%w: dangling node %s", ErrMalformedGraph, id)
	}
	if _, ok := n.Props[egraph.PropSourceFunction]; ok {
		for _, eid := range r.g.EdgesUsing(id) {
			e, _ := r.g.Edge(eid)
			if e.Kind == egraph.EdgeFunction && e.Args[0] == id {
				return r.atomic(e.Name(), e.Args[1:])
			}
		}
	}
	return r.name(n), nil
}

func (r *renderer) name(n *egraph.Node) string {
	if name, ok := r.names[n.ID]; ok {
		return name
	}
	name := n.Name()
	switch {
	case n.Kind == egraph.NodeVariable:
		name = r.fresh(name)
	case n.Props[egraph.PropQuoted] == "true":
		name = strconv.Quote(name)
	}
	r.names[n.ID] = name
	return name
}

// fresh reserves a variable name not yet taken, starting from base.
func (r *renderer) fresh(base string) string {
	if base != "" && !r.taken[base] {
		r.taken[base] = true
		return base
	}
	for i := 1; ; i++ {
		var name string
		if base == "" {
			name = fmt.Sprintf("v%d", r.counter)
			r.counter++
		} else {
			name = fmt.Sprintf("%s%d", base, i)
		}
		if !r.taken[name] {
			r.taken[name] = true
			return name
		}
	}
}

func (r *renderer) plainCut(id egraph.ID) bool {
	e, ok := r.g.Edge(id)
	return ok && e.IsCut() && e.Props[egraph.PropConstruct] == ""
}

func isBoundVariable(n *egraph.Node) bool {
	_, fromFunction := n.Props[egraph.PropSourceFunction]
	return n.Kind == egraph.NodeVariable && !fromFunction
}

func orEmpty(s string) string {
	if s == "" {
		return "(and)"
	}
	return s
}
