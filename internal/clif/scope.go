package clif

import "github.com/mijahauan/EG-HG/internal/egraph"

// scope binds variable names to the nodes drawn for them by one quantifier.
type scope map[string]egraph.ID

// scopeStack is searched innermost first, so inner bindings shadow outer
// ones with the same name.
type scopeStack []scope

func (s *scopeStack) push(sc scope) {
	*s = append(*s, sc)
}

func (s *scopeStack) pop() {
	*s = (*s)[:len(*s)-1]
}

func (s scopeStack) lookup(name string) (egraph.ID, bool) {
	for i := len(s) - 1; i >= 0; i-- {
		if id, ok := s[i][name]; ok {
			return id, true
		}
	}
	return egraph.Sheet, false
}
