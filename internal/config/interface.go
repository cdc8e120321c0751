package config

import (
	"context"
)

// Loader is the interface for a format-specific folio loader.
type Loader interface {
	// Load reads every folio file reachable from the given paths and merges
	// them into a single model.
	Load(ctx context.Context, paths ...string) (*Model, error)
}
