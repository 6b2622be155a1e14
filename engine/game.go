package engine

import (
	"log"
)

// DefaultSize is the side length of the board built by New.
const DefaultSize = 8

// Game holds the state of one Othello game.
type Game struct {
	rows  int
	cols  int
	board [][]Disc

	players map[Disc]Player
	current Disc
	status  Status
	winner  Disc
	moved   bool

	count    [3]int // indexed by Disc
	possible [3]int // size of each colour's last computed legal-move table

	legal LegalMoves

	moveNumber int
	last       *Update

	listeners []*listenerEntry
	log       *log.Logger
}

type listenerEntry struct {
	l Listener
}

// New creates an 8x8 game with the four centre discs in place and both disc
// counters at zero. Players still have to be added and the game started.
func New(opts ...Option) *Game {
	g := &Game{
		rows:    DefaultSize,
		cols:    DefaultSize,
		board:   makeBoard(DefaultSize),
		players: make(map[Disc]Player),
		current: None,
		status:  NotReady,
		legal:   LegalMoves{},
		log:     discardLogger(),
	}
	for _, opt := range opts {
		opt(g)
	}

	mid := DefaultSize / 2
	g.board[mid-1][mid-1] = White
	g.board[mid-1][mid] = Black
	g.board[mid][mid-1] = Black
	g.board[mid][mid] = White

	g.log.Printf("creating game, board %dx%d", g.rows, g.cols)
	g.log.Printf("current turn: %s, status: %s", g.current, g.status)
	return g
}

func makeBoard(size int) [][]Disc {
	board := make([][]Disc, size)
	for i := range board {
		board[i] = make([]Disc, size)
	}
	return board
}

// Subscribe registers l for notifications. The returned function removes it.
func (g *Game) Subscribe(l Listener) (unsubscribe func()) {
	e := &listenerEntry{l: l}
	g.listeners = append(g.listeners, e)
	return func() {
		for i, cur := range g.listeners {
			if cur == e {
				g.listeners = append(g.listeners[:i], g.listeners[i+1:]...)
				return
			}
		}
	}
}

func (g *Game) each(fn func(Listener)) {
	// copy so a listener may unsubscribe while being notified
	ls := append([]*listenerEntry(nil), g.listeners...)
	for _, e := range ls {
		fn(e.l)
	}
}

// Rows returns the number of board rows.
func (g *Game) Rows() int { return g.rows }

// Cols returns the number of board columns.
func (g *Game) Cols() int { return g.cols }

// InBounds reports whether p lies on the board.
func (g *Game) InBounds(p Position) bool {
	return p.Row >= 0 && p.Row < g.rows && p.Col >= 0 && p.Col < g.cols
}

// At returns the disc at p, or None when p is off the board.
func (g *Game) At(p Position) Disc {
	if !g.InBounds(p) {
		return None
	}
	return g.board[p.Row][p.Col]
}

// Board returns a copy of the grid indexed as [row][col].
func (g *Game) Board() [][]Disc {
	out := makeBoard(g.rows)
	for r := range g.board {
		copy(out[r], g.board[r])
	}
	return out
}

// SetBoardSize replaces the board with an empty size x size grid. Only even
// sizes are accepted. The opening discs are not placed; use PlaceDisc.
func (g *Game) SetBoardSize(size int) bool {
	if size < 2 || size%2 != 0 {
		g.log.Printf("WARN failed to resize board to %dx%d", size, size)
		return false
	}
	g.rows = size
	g.cols = size
	g.board = makeBoard(size)
	g.last = nil
	g.invalidate()
	g.log.Printf("board resized to %dx%d", g.rows, g.cols)
	return true
}

// PlaceDisc puts d on the empty cell p.
func (g *Game) PlaceDisc(d Disc, p Position) bool {
	if !d.Valid() || !g.InBounds(p) || g.board[p.Row][p.Col] != None {
		g.log.Printf("WARN failed to place %s disc on %s", d, p)
		return false
	}
	g.board[p.Row][p.Col] = d
	g.invalidate()
	g.log.Printf("placed %s disc on %s", d, p)
	return true
}

// RemoveDisc empties the occupied cell p.
func (g *Game) RemoveDisc(p Position) bool {
	if !g.InBounds(p) || g.board[p.Row][p.Col] == None {
		g.log.Printf("WARN failed to remove disc on %s", p)
		return false
	}
	g.board[p.Row][p.Col] = None
	g.invalidate()
	g.log.Printf("removed disc on %s", p)
	return true
}

// AddPlayer registers p as the holder of colour d. It is only allowed before
// the game is ready. A later registration for the same colour replaces the
// earlier one, but a player may not hold both colours.
func (g *Game) AddPlayer(p Player, d Disc) bool {
	if p == nil || g.status != NotReady || !d.Valid() {
		g.log.Printf("WARN failed to add player %s with %s disc", playerLabel(p), d)
		return false
	}
	if opp, ok := g.players[d.Opponent()]; ok && opp.ID() == p.ID() {
		g.log.Printf("WARN failed to add player %s with %s disc: already holds %s", playerLabel(p), d, d.Opponent())
		return false
	}
	g.players[d] = p
	g.log.Printf("added player %s with %s disc", playerLabel(p), d)
	return true
}

func playerLabel(p Player) string {
	if p == nil {
		return "<nil>"
	}
	return p.Name() + "-" + p.ID()
}

// CheckPlayer returns the colour p is registered under, or None.
func (g *Game) CheckPlayer(p Player) Disc {
	if p == nil {
		return None
	}
	for _, d := range []Disc{Black, White} {
		if holder, ok := g.players[d]; ok && holder.ID() == p.ID() {
			return d
		}
	}
	g.log.Printf("WARN player %s holds no disc", playerLabel(p))
	return None
}

// CheckDisc returns the player registered under d.
func (g *Game) CheckDisc(d Disc) (Player, bool) {
	p, ok := g.players[d]
	if !ok {
		g.log.Printf("WARN no player holds %s disc", d)
	}
	return p, ok
}

// SetInitialTurn chooses which colour moves first. Both colours must be
// registered and the game must not be ready yet.
func (g *Game) SetInitialTurn(d Disc) bool {
	if g.status != NotReady || len(g.players) < 2 || !d.Valid() {
		g.log.Printf("WARN failed to set initial turn to %s", d)
		return false
	}
	g.current = d
	g.log.Printf("initial turn set, current turn: %s", d)
	return true
}

// Status recomputes and returns the lifecycle stage. The boundary between
// Start and OnGoing is inferred from the disc counters alone.
func (g *Game) Status() Status {
	return g.refreshStatus()
}

func (g *Game) refreshStatus() Status {
	switch {
	case g.status == End:
	case g.count[Black] > 0 || g.count[White] > 0:
		g.status = OnGoing
	case g.current != None && len(g.players) > 1:
		g.status = Start
	}
	return g.status
}

// StartGame moves a ready game to Start and seeds both disc counters with the
// two opening discs each colour owns.
func (g *Game) StartGame() bool {
	if g.refreshStatus() != Start {
		g.log.Printf("WARN game can not start, status: %s", g.status)
		return false
	}
	g.count[Black] = 2
	g.count[White] = 2
	g.status = Start
	g.log.Printf("game started, status: %s", g.status)
	return true
}

// CurrentDisc returns the colour to move, None outside a running game.
func (g *Game) CurrentDisc() Disc {
	return g.current
}

// CurrentPlayer returns the player to move.
func (g *Game) CurrentPlayer() (Player, bool) {
	if g.current == None {
		g.log.Printf("WARN no current player")
		return nil, false
	}
	p, ok := g.players[g.current]
	return p, ok
}

// NextTurn returns the player who moves after the current one.
func (g *Game) NextTurn() (Player, bool) {
	if g.current == None || len(g.players) < 2 {
		g.log.Printf("WARN failed to get next turn")
		return nil, false
	}
	return g.players[g.current.Opponent()], true
}

// ChangeTurn hands the turn to the opponent of the current colour.
func (g *Game) ChangeTurn() bool {
	if g.current == None {
		g.log.Printf("WARN failed to change turn: no current turn")
		return false
	}
	g.setTurn(g.current.Opponent())
	g.log.Printf("turn changed, current turn: %s", g.current)
	return true
}

// ChangeTurnTo forces the turn to colour d, which must have a registered
// player.
func (g *Game) ChangeTurnTo(d Disc) bool {
	if g.current == None || !d.Valid() {
		g.log.Printf("WARN failed to change turn to %s", d)
		return false
	}
	if _, ok := g.players[d]; !ok {
		g.log.Printf("WARN failed to change turn to %s: no player", d)
		return false
	}
	g.setTurn(d)
	g.log.Printf("turn changed, current turn: %s", g.current)
	return true
}

// ChangeTurnToPlayer gives the turn to the colour p is registered under.
func (g *Game) ChangeTurnToPlayer(p Player) bool {
	d := g.CheckPlayer(p)
	if d == None || g.status == End {
		g.log.Printf("WARN failed to change turn to player %s", playerLabel(p))
		return false
	}
	g.setTurn(d)
	g.log.Printf("turn changed, current turn: %s", g.current)
	return true
}

func (g *Game) setTurn(d Disc) {
	g.current = d
	g.moved = false
	g.invalidate()
}

// invalidate drops the legal-move table after a mutation it may not reflect.
func (g *Game) invalidate() {
	if len(g.legal) > 0 {
		g.legal = LegalMoves{}
	}
}

// Count returns the number of d discs according to the game's counters.
func (g *Game) Count(d Disc) int {
	if !d.Valid() {
		return 0
	}
	return g.count[d]
}

// PossibleMoves returns the size of d's last computed legal-move table.
func (g *Game) PossibleMoves(d Disc) int {
	if !d.Valid() {
		return 0
	}
	return g.possible[d]
}

// Winner returns the colour with more discs once the game has ended, None on
// a tie or while the game is running.
func (g *Game) Winner() Disc {
	return g.winner
}
