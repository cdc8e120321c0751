package egraph

import (
	"fmt"

	"github.com/google/uuid"
)

// ID identifies a node or an edge. The zero ID is Sheet.
type ID uuid.UUID

// Sheet is the sheet of assertion, the outermost context. It is also used
// wherever an ID is absent.
var Sheet ID

// NewID returns a fresh random identifier.
func NewID() ID {
	return ID(uuid.New())
}

// ParseID parses the canonical textual form of an ID. The empty string
// parses to Sheet.
func ParseID(s string) (ID, error) {
	if s == "" {
		return Sheet, nil
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return Sheet, fmt.Errorf("invalid item id %q: %w", s, err)
	}
	return ID(u), nil
}

// IsSheet reports whether id denotes the sheet of assertion.
func (id ID) IsSheet() bool {
	return id == Sheet
}

func (id ID) String() string {
	if id.IsSheet() {
		return "sheet"
	}
	return uuid.UUID(id).String()
}

// MarshalText renders the ID in its canonical form, for logs and JSON.
func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}
