// Package player provides the identities that hold a colour in a game.
package player

import (
	"strings"

	"github.com/google/uuid"
)

// Human is a player whose moves come from a person at the keyboard.
type Human struct {
	id   string
	name string
}

// New creates a Human with a fresh random ID.
func New(name string) *Human {
	return WithID(uuid.NewString(), name)
}

// WithID creates a Human with a known ID, e.g. one read back from a record.
func WithID(id, name string) *Human {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "Player"
	}
	return &Human{id: id, name: name}
}

func (h *Human) ID() string   { return h.id }
func (h *Human) Name() string { return h.name }

func (h *Human) String() string {
	return h.name
}

// Same reports whether a and b are the same identity.
func Same(a, b interface{ ID() string }) bool {
	if a == nil || b == nil {
		return false
	}
	return a.ID() == b.ID()
}
