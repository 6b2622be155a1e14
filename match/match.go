// Package match drives an engine.Game through a whole match: it registers
// the players, recomputes legal moves before every turn, applies moves and
// hands the turn over, passing automatically for a side that cannot move.
package match

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Zdifah/Game-Othello/engine"
)

var (
	ErrSetup       = errors.New("match setup failed")
	ErrNotStarted  = errors.New("match not started")
	ErrGameOver    = errors.New("game over")
	ErrIllegalMove = errors.New("illegal move")
	ErrMustMove    = errors.New("a legal move is available")
)

// Entry is one turn in the match history.
type Entry struct {
	Disc    engine.Disc
	Pos     engine.Position
	Flipped []engine.Position
	Pass    bool
}

func (e Entry) String() string {
	if e.Pass {
		return fmt.Sprintf("%s pass", e.Disc)
	}
	return fmt.Sprintf("%s %s", e.Disc, e.Pos)
}

// Controller owns one game and its two players.
type Controller struct {
	mu      sync.Mutex
	game    *engine.Game
	black   engine.Player
	white   engine.Player
	first   engine.Disc
	started bool
	history []Entry
	unsub   func()
}

// New wraps g. The game must not have players yet; Start registers them.
func New(g *engine.Game, black, white engine.Player, first engine.Disc) *Controller {
	c := &Controller{game: g, black: black, white: white, first: first}
	c.unsub = g.Subscribe(engine.ListenerFuncs{
		OnDiscs: func(u engine.Update) {
			c.history = append(c.history, Entry{Disc: u.Disc, Pos: u.Placed, Flipped: u.Flipped})
		},
		OnTurn: func(t engine.TurnEnd) {
			if t.Passed {
				c.history = append(c.history, Entry{Disc: t.Disc, Pass: true})
			}
		},
	})
	return c
}

// Start registers both players, picks the first side and computes its legal
// moves.
func (c *Controller) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.started {
		return fmt.Errorf("%w: already started", ErrSetup)
	}
	g := c.game
	if !g.AddPlayer(c.black, engine.Black) {
		return fmt.Errorf("%w: black player rejected", ErrSetup)
	}
	if !g.AddPlayer(c.white, engine.White) {
		return fmt.Errorf("%w: white player rejected", ErrSetup)
	}
	if !g.SetInitialTurn(c.first) {
		return fmt.Errorf("%w: can not give the first turn to %s", ErrSetup, c.first)
	}
	if !g.StartGame() {
		return fmt.Errorf("%w: game status %s", ErrSetup, g.Status())
	}
	c.started = true

	if len(g.FindLegalMoves()) == 0 {
		// The opening side is stuck on a custom position. Count the
		// opponent's moves too so PassTurn can tell a pass from the end.
		g.ChangeTurn()
		g.FindLegalMoves()
		g.ChangeTurn()
		c.advance()
	}
	return nil
}

// Play places the current side's disc on p and moves the match on to the next
// side that can move.
func (c *Controller) Play(p engine.Position) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.ready(); err != nil {
		return err
	}
	if !c.game.TryMove(p) {
		return fmt.Errorf("%w: %s for %s", ErrIllegalMove, p, c.game.CurrentDisc())
	}
	if !c.game.MakeMove(p) {
		return fmt.Errorf("%w: %s for %s", ErrIllegalMove, p, c.game.CurrentDisc())
	}
	c.advance()
	return nil
}

// Pass gives up the turn. It is refused while the side to move has a legal
// move.
func (c *Controller) Pass() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.ready(); err != nil {
		return err
	}
	if n := len(c.game.LegalMoves()); n > 0 {
		return fmt.Errorf("%w: %s has %d", ErrMustMove, c.game.CurrentDisc(), n)
	}
	c.advance()
	return nil
}

func (c *Controller) ready() error {
	if !c.started {
		return ErrNotStarted
	}
	if c.game.Status() == engine.End {
		return ErrGameOver
	}
	return nil
}

// advance ends the current turn and keeps passing until a side with a legal
// move is to play or the game ends.
func (c *Controller) advance() {
	if !c.game.PassTurn() {
		return
	}
	for len(c.game.FindLegalMoves()) == 0 {
		if !c.game.PassTurn() {
			return
		}
	}
}

// Game returns the underlying game. Callers must not mutate it while the
// match is running.
func (c *Controller) Game() *engine.Game {
	return c.game
}

// Players returns the black and white players.
func (c *Controller) Players() (black, white engine.Player) {
	return c.black, c.white
}

// Over reports whether the game has ended.
func (c *Controller) Over() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.game.Status() == engine.End
}

// Turn returns the side to move and its player.
func (c *Controller) Turn() (engine.Disc, engine.Player) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, _ := c.game.CurrentPlayer()
	return c.game.CurrentDisc(), p
}

// History returns the turns played so far.
func (c *Controller) History() []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Entry(nil), c.history...)
}

// Close detaches the controller from the game.
func (c *Controller) Close() {
	if c.unsub != nil {
		c.unsub()
		c.unsub = nil
	}
}
