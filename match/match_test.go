package match

import (
	"errors"
	"testing"

	"github.com/Zdifah/Game-Othello/engine"
	"github.com/Zdifah/Game-Othello/player"
)

func started(t *testing.T, g *engine.Game, first engine.Disc) *Controller {
	t.Helper()
	c := New(g, player.New("Black"), player.New("White"), first)
	if err := c.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	return c
}

func TestPlayBeforeStart(t *testing.T) {
	c := New(engine.New(), player.New("a"), player.New("b"), engine.Black)
	if err := c.Play(engine.Position{Row: 2, Col: 3}); !errors.Is(err, ErrNotStarted) {
		t.Fatalf("Play before Start = %v, want ErrNotStarted", err)
	}
}

func TestStartTwice(t *testing.T) {
	c := started(t, engine.New(), engine.Black)
	if err := c.Start(); !errors.Is(err, ErrSetup) {
		t.Fatalf("second Start = %v, want ErrSetup", err)
	}
}

func TestStartSamePlayerTwice(t *testing.T) {
	p := player.New("Solo")
	c := New(engine.New(), p, p, engine.Black)
	if err := c.Start(); !errors.Is(err, ErrSetup) {
		t.Fatalf("Start with one player on both colours = %v, want ErrSetup", err)
	}
}

func TestPlayOpening(t *testing.T) {
	c := started(t, engine.New(), engine.Black)
	if err := c.Play(engine.Position{Row: 2, Col: 3}); err != nil {
		t.Fatalf("Play: %v", err)
	}
	d, p := c.Turn()
	if d != engine.White || p == nil || p.Name() != "White" {
		t.Fatalf("Turn = %v %v, want White", d, p)
	}
	h := c.History()
	if len(h) != 1 || h[0].Disc != engine.Black || h[0].Pos != (engine.Position{Row: 2, Col: 3}) {
		t.Fatalf("History = %v", h)
	}
	if len(h[0].Flipped) != 1 {
		t.Fatalf("flipped = %v, want one disc", h[0].Flipped)
	}
	if len(c.Game().LegalMoves()) == 0 {
		t.Fatal("White should have legal moves computed")
	}
}

func TestPlayIllegal(t *testing.T) {
	c := started(t, engine.New(), engine.Black)
	err := c.Play(engine.Position{Row: 0, Col: 0})
	if !errors.Is(err, ErrIllegalMove) {
		t.Fatalf("Play(0,0) = %v, want ErrIllegalMove", err)
	}
	if d, _ := c.Turn(); d != engine.Black {
		t.Fatalf("turn moved to %v after an illegal move", d)
	}
	if len(c.History()) != 0 {
		t.Fatal("illegal move was recorded")
	}
}

func TestPassRefusedWithMoves(t *testing.T) {
	c := started(t, engine.New(), engine.Black)
	if err := c.Pass(); !errors.Is(err, ErrMustMove) {
		t.Fatalf("Pass = %v, want ErrMustMove", err)
	}
}

func TestAutoPassAndEnd(t *testing.T) {
	// . W B .
	// . . . .
	// . . W B
	// . . . .
	g := engine.New()
	g.SetBoardSize(4)
	g.PlaceDisc(engine.White, engine.Position{Row: 0, Col: 1})
	g.PlaceDisc(engine.Black, engine.Position{Row: 0, Col: 2})
	g.PlaceDisc(engine.White, engine.Position{Row: 2, Col: 2})
	g.PlaceDisc(engine.Black, engine.Position{Row: 2, Col: 3})
	c := started(t, g, engine.Black)

	if err := c.Play(engine.Position{Row: 0, Col: 0}); err != nil {
		t.Fatalf("Play(0,0): %v", err)
	}
	// White has nothing to capture, so Black moves again.
	if d, _ := c.Turn(); d != engine.Black {
		t.Fatalf("Turn = %v, want Black after White's forced pass", d)
	}
	if c.Over() {
		t.Fatal("game ended while Black can still move")
	}

	if err := c.Play(engine.Position{Row: 2, Col: 1}); err != nil {
		t.Fatalf("Play(2,1): %v", err)
	}
	if !c.Over() {
		t.Fatal("game should be over once White has no discs")
	}
	if g.Winner() != engine.Black {
		t.Fatalf("Winner = %v, want Black", g.Winner())
	}

	want := []string{"Black (0,0)", "White pass", "Black (2,1)", "White pass"}
	h := c.History()
	if len(h) != len(want) {
		t.Fatalf("History = %v, want %v", h, want)
	}
	for i := range want {
		if h[i].String() != want[i] {
			t.Errorf("History[%d] = %q, want %q", i, h[i], want[i])
		}
	}

	if err := c.Play(engine.Position{Row: 3, Col: 3}); !errors.Is(err, ErrGameOver) {
		t.Fatalf("Play after end = %v, want ErrGameOver", err)
	}
	if err := c.Pass(); !errors.Is(err, ErrGameOver) {
		t.Fatalf("Pass after end = %v, want ErrGameOver", err)
	}
}

func TestPlayOut(t *testing.T) {
	for _, size := range []int{4, 6, 8} {
		g, err := NewGame(size)
		if err != nil {
			t.Fatalf("NewGame(%d): %v", size, err)
		}
		c := started(t, g, engine.White)
		for i := 0; !c.Over(); i++ {
			if i > size*size*2 {
				t.Fatalf("size %d: game did not finish", size)
			}
			moves := g.LegalMoves()
			if len(moves) == 0 {
				t.Fatalf("size %d: side to move has no legal move but game is running", size)
			}
			if err := c.Play(moves[0]); err != nil {
				t.Fatalf("size %d: Play(%v): %v", size, moves[0], err)
			}
		}

		var black, white int
		for _, row := range g.Board() {
			for _, d := range row {
				switch d {
				case engine.Black:
					black++
				case engine.White:
					white++
				}
			}
		}
		if black != g.Count(engine.Black) || white != g.Count(engine.White) {
			t.Fatalf("size %d: counters %d/%d, board %d/%d", size, g.Count(engine.Black), g.Count(engine.White), black, white)
		}
		var want engine.Disc
		switch {
		case black > white:
			want = engine.Black
		case white > black:
			want = engine.White
		}
		if g.Winner() != want {
			t.Fatalf("size %d: Winner = %v, want %v", size, g.Winner(), want)
		}
	}
}

func TestNewGame(t *testing.T) {
	g, err := NewGame(6)
	if err != nil {
		t.Fatalf("NewGame(6): %v", err)
	}
	centre := map[engine.Position]engine.Disc{
		{Row: 2, Col: 2}: engine.White,
		{Row: 2, Col: 3}: engine.Black,
		{Row: 3, Col: 2}: engine.Black,
		{Row: 3, Col: 3}: engine.White,
	}
	for p, d := range centre {
		if g.At(p) != d {
			t.Errorf("At(%v) = %v, want %v", p, g.At(p), d)
		}
	}
	if g, err := NewGame(MaxSize); err != nil || g.Rows() != MaxSize {
		t.Fatalf("NewGame(%d) = %v", MaxSize, err)
	}
	for _, size := range []int{2, 5, 7, 28, 30} {
		if _, err := NewGame(size); !errors.Is(err, ErrSetup) {
			t.Errorf("NewGame(%d) = %v, want ErrSetup", size, err)
		}
	}
}

func TestStartWithStuckOpener(t *testing.T) {
	// B W . .
	// . . . .
	// White can not outflank the corner, Black can play (0,2).
	g := engine.New()
	g.SetBoardSize(4)
	g.PlaceDisc(engine.Black, engine.Position{Row: 0, Col: 0})
	g.PlaceDisc(engine.White, engine.Position{Row: 0, Col: 1})

	var passes []engine.Disc
	g.Subscribe(engine.ListenerFuncs{OnTurn: func(t engine.TurnEnd) {
		if t.Passed {
			passes = append(passes, t.Disc)
		}
	}})
	c := started(t, g, engine.White)

	if len(passes) != 1 || passes[0] != engine.White {
		t.Fatalf("passes seen by listeners = %v, want [White]", passes)
	}
	if d, _ := c.Turn(); d != engine.Black {
		t.Fatalf("Turn = %v, want Black", d)
	}
	if h := c.History(); len(h) != 1 || h[0].String() != "White pass" {
		t.Fatalf("History = %v, want [White pass]", h)
	}

	if err := c.Play(engine.Position{Row: 0, Col: 2}); err != nil {
		t.Fatalf("Play(0,2): %v", err)
	}
	if !c.Over() || g.Winner() != engine.Black {
		t.Fatalf("Over = %v, Winner = %v, want Black to win", c.Over(), g.Winner())
	}
}

func TestStartWithNoMovesForEither(t *testing.T) {
	g := engine.New()
	g.SetBoardSize(4)
	g.PlaceDisc(engine.Black, engine.Position{Row: 0, Col: 0})
	g.PlaceDisc(engine.White, engine.Position{Row: 3, Col: 3})

	ended := false
	g.Subscribe(engine.ListenerFuncs{OnEnd: func(engine.Result) { ended = true }})
	c := started(t, g, engine.Black)
	if !c.Over() || !ended {
		t.Fatalf("Over = %v, ended = %v, want the game to end at once", c.Over(), ended)
	}
}
