package engine

import "fmt"

// Disc is the occupant of a board cell. None marks an empty cell and the
// absence of a side to move; it is never placed.
type Disc uint8

const (
	None Disc = iota
	Black
	White
)

// Opponent returns the other colour. None has no opponent.
func (d Disc) Opponent() Disc {
	switch d {
	case Black:
		return White
	case White:
		return Black
	default:
		return None
	}
}

// Valid reports whether d is a placeable colour.
func (d Disc) Valid() bool {
	return d == Black || d == White
}

func (d Disc) String() string {
	switch d {
	case Black:
		return "Black"
	case White:
		return "White"
	default:
		return "None"
	}
}

// ParseDisc converts "black"/"b"/"white"/"w" (any case) to a Disc.
func ParseDisc(s string) (Disc, error) {
	switch s {
	case "black", "Black", "BLACK", "b", "B":
		return Black, nil
	case "white", "White", "WHITE", "w", "W":
		return White, nil
	}
	return None, fmt.Errorf("unknown disc colour %q", s)
}

// Status is the lifecycle stage of a game.
type Status uint8

const (
	NotReady Status = iota
	Start
	OnGoing
	End
)

func (s Status) String() string {
	switch s {
	case Start:
		return "Start"
	case OnGoing:
		return "OnGoing"
	case End:
		return "End"
	default:
		return "NotReady"
	}
}

// Position addresses a cell as (row, col), both 0-indexed from the top left.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Less orders positions row-major.
func (p Position) Less(o Position) bool {
	if p.Row != o.Row {
		return p.Row < o.Row
	}
	return p.Col < o.Col
}
