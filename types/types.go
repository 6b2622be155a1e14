// Package types contains shared data structures for the othello front ends.
package types

import "encoding/json"

// BoardState is a snapshot of an Othello game for renderers and spectators.
// Board is indexed as Board[row][col] where 0=empty, 1=black, 2=white.
type BoardState struct {
	MoveNumber   int        `json:"move_number"`
	PlayerToMove int        `json:"player_to_move"` // 0=none, 1=black, 2=white
	Phase        string     `json:"phase"`          // "not_ready", "start", "playing", "finished"
	Board        [][]int    `json:"board"`
	Black        int        `json:"black"`
	White        int        `json:"white"`
	Winner       int        `json:"winner"` // 0 on a tie or while playing
	LegalMoves   []BoardPos `json:"legal_moves"`
	Flipped      []BoardPos `json:"flipped,omitempty"`
	LastMove     BoardPos   `json:"last_move"`
}

// Finished returns true if the game is over.
func (b *BoardState) Finished() bool {
	return b.Phase == "finished"
}

// Height returns the board height.
func (b *BoardState) Height() int {
	return len(b.Board)
}

// Width returns the board width.
func (b *BoardState) Width() int {
	if b.Height() == 0 {
		return 0
	}
	return len(b.Board[0])
}

// IsLegal reports whether (row, col) is in LegalMoves.
func (b *BoardState) IsLegal(row, col int) bool {
	for _, p := range b.LegalMoves {
		if p.Row == row && p.Col == col {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of b.
func (b *BoardState) Clone() *BoardState {
	c := *b
	c.Board = make([][]int, len(b.Board))
	for i := range b.Board {
		c.Board[i] = append([]int(nil), b.Board[i]...)
	}
	c.LegalMoves = append([]BoardPos(nil), b.LegalMoves...)
	c.Flipped = append([]BoardPos(nil), b.Flipped...)
	return &c
}

// BoardPos represents a position on the board.
type BoardPos struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// None is the BoardPos used when there is no position, e.g. no last move.
var None = BoardPos{Row: -1, Col: -1}

// Valid reports whether p refers to a cell.
func (p BoardPos) Valid() bool {
	return p.Row >= 0 && p.Col >= 0
}

// UnmarshalJSON accepts either {"row":r,"col":c} or a [row, col] array.
func (p *BoardPos) UnmarshalJSON(data []byte) error {
	var v []float64
	if err := json.Unmarshal(data, &v); err == nil && len(v) == 2 {
		p.Row = int(v[0])
		p.Col = int(v[1])
		return nil
	}
	var obj struct {
		Row int `json:"row"`
		Col int `json:"col"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	p.Row = obj.Row
	p.Col = obj.Col
	return nil
}

// NewBoardState creates a new empty board of the given size.
func NewBoardState(size int) *BoardState {
	board := make([][]int, size)
	for i := range board {
		board[i] = make([]int, size)
	}
	return &BoardState{
		Phase:    "not_ready",
		Board:    board,
		LastMove: None,
	}
}
