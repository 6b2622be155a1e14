package player

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewAssignsUUID(t *testing.T) {
	a := New("Alice")
	b := New("Alice")
	if _, err := uuid.Parse(a.ID()); err != nil {
		t.Fatalf("ID %q is not a UUID: %v", a.ID(), err)
	}
	if a.ID() == b.ID() {
		t.Fatal("two players share an ID")
	}
	if Same(a, b) {
		t.Fatal("players with the same name but different IDs are not the same")
	}
}

func TestWithID(t *testing.T) {
	a := WithID("abc", "  Bob ")
	if a.ID() != "abc" || a.Name() != "Bob" {
		t.Fatalf("got %q/%q, want abc/Bob", a.ID(), a.Name())
	}
	if !Same(a, WithID("abc", "Robert")) {
		t.Fatal("players with equal IDs should be the same")
	}
	if WithID("x", "").Name() != "Player" {
		t.Fatal("empty name should fall back to Player")
	}
}

func TestSameNil(t *testing.T) {
	if Same(nil, New("a")) {
		t.Fatal("nil is never the same as a player")
	}
}
