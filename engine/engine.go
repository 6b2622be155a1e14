// Package engine implements the Othello board engine: board state, legal move
// discovery, move application, turn bookkeeping and scoring.
//
// A Game is not safe for concurrent use. Every operation reports success with a
// boolean and leaves the game untouched when it fails.
package engine

import (
	"io"
	"log"
)

// Player is the identity a colour is registered to. Two players are the same
// player when their IDs are equal.
type Player interface {
	ID() string
	Name() string
}

// Update describes a successfully applied move.
type Update struct {
	Disc       Disc       // colour that moved
	Placed     Position   // where the disc was placed
	LegalMoves []Position // legal moves the placement was chosen from
	Flipped    []Position // opponent discs turned to Disc
}

// TurnEnd describes a turn hand-over performed by PassTurn.
type TurnEnd struct {
	Disc   Disc // side whose turn ended
	Next   Disc // side to move now
	Passed bool // Disc placed nothing during its turn
}

// Result describes a finished game.
type Result struct {
	Winner Disc // None on a tie
	Black  int
	White  int
}

// Listener receives push notifications from a Game. Callbacks run
// synchronously on the goroutine that drives the game.
type Listener interface {
	// LegalMovesFound is called on every FindLegalMoves, even when moves is empty.
	LegalMovesFound(d Disc, moves []Position)

	// DiscsUpdated is called after every successful MakeMove.
	DiscsUpdated(u Update)

	// TurnEnded is called when PassTurn hands the turn to the other side.
	TurnEnded(t TurnEnd)

	// GameEnded is called when PassTurn finds that neither side can move.
	GameEnded(r Result)
}

// ListenerFuncs adapts plain functions to a Listener. Nil fields are skipped.
type ListenerFuncs struct {
	OnLegalMoves func(d Disc, moves []Position)
	OnDiscs      func(u Update)
	OnTurn       func(t TurnEnd)
	OnEnd        func(r Result)
}

func (f ListenerFuncs) LegalMovesFound(d Disc, moves []Position) {
	if f.OnLegalMoves != nil {
		f.OnLegalMoves(d, moves)
	}
}

func (f ListenerFuncs) DiscsUpdated(u Update) {
	if f.OnDiscs != nil {
		f.OnDiscs(u)
	}
}

func (f ListenerFuncs) TurnEnded(t TurnEnd) {
	if f.OnTurn != nil {
		f.OnTurn(t)
	}
}

func (f ListenerFuncs) GameEnded(r Result) {
	if f.OnEnd != nil {
		f.OnEnd(r)
	}
}

// Option configures a Game at construction.
type Option func(*Game)

// WithLogger sends the engine's diagnostic messages to l.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) {
		if l != nil {
			g.log = l
		}
	}
}

func discardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}
