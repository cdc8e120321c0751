package egraph

import "errors"

var (
	ErrNotFound         = errors.New("item not found")
	ErrDuplicateID      = errors.New("item id already in use")
	ErrNotACut          = errors.New("item is not a cut")
	ErrDanglingArgument = errors.New("edge argument is not a node of the graph")
	ErrNotEmpty         = errors.New("cut still contains items")
	ErrInUse            = errors.New("node is referenced by an edge")
	ErrCycle            = errors.New("containment would form a cycle")
)
