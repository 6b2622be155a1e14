package ui

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/Zdifah/Game-Othello/config"
	"github.com/Zdifah/Game-Othello/engine"
	"github.com/Zdifah/Game-Othello/match"
	"github.com/Zdifah/Game-Othello/player"
)

func newTestBoard(t *testing.T) (*BoardUI, *tview.TextView, *match.Controller) {
	t.Helper()
	cfg := config.DefaultConfig
	hint := tview.NewTextView()
	b := NewBoard(&cfg, hint)
	CreateGameLayout(b, hint)

	g, err := match.NewGame(8)
	if err != nil {
		t.Fatal(err)
	}
	c := match.New(g, player.New("Alice"), player.New("Bob"), engine.Black)
	b.ConnectMatch(c)
	if err := c.Start(); err != nil {
		t.Fatal(err)
	}
	return b, hint, c
}

func TestPosDisplay(t *testing.T) {
	cases := map[engine.Position]string{
		{Row: 0, Col: 0}: "a1",
		{Row: 2, Col: 3}: "d3",
		{Row: 9, Col: 9}: "j10",
	}
	for p, want := range cases {
		if got := PosDisplay(p); got != want {
			t.Errorf("PosDisplay(%v) = %q, want %q", p, got, want)
		}
	}
}

func TestBoardFollowsMatch(t *testing.T) {
	b, hint, _ := newTestBoard(t)

	if n := len(b.BoardState.LegalMoves); n != 4 {
		t.Fatalf("legal moves = %d, want 4", n)
	}
	if !strings.Contains(hint.GetText(true), "Alice to move (Black)") {
		t.Fatalf("hint = %q", hint.GetText(true))
	}

	b.PlayMove(engine.Position{Row: 2, Col: 3})
	if b.BoardState.MoveNumber != 1 {
		t.Fatalf("MoveNumber = %d, want 1", b.BoardState.MoveNumber)
	}
	if b.BoardState.Black != 4 || b.BoardState.White != 1 {
		t.Fatalf("counts = %d/%d, want 4/1", b.BoardState.Black, b.BoardState.White)
	}
	if !strings.Contains(hint.GetText(true), "Bob to move (White)") {
		t.Fatalf("hint = %q", hint.GetText(true))
	}
	if info := b.infoPanel.Box().GetText(true); !strings.Contains(info, "d3") {
		t.Fatalf("info panel missing move: %q", info)
	}
}

func TestBoardReportsRejectedMoves(t *testing.T) {
	b, hint, _ := newTestBoard(t)

	b.PlayMove(engine.Position{Row: 0, Col: 0})
	if !strings.Contains(hint.GetText(true), "Not a legal move") {
		t.Fatalf("hint = %q", hint.GetText(true))
	}
	b.Pass()
	if !strings.Contains(hint.GetText(true), "no pass") {
		t.Fatalf("hint = %q", hint.GetText(true))
	}
	if b.BoardState.MoveNumber != 0 {
		t.Fatalf("MoveNumber = %d, want 0", b.BoardState.MoveNumber)
	}
}

func TestMoveSelection(t *testing.T) {
	b, _, _ := newTestBoard(t)

	if b.SelectedTile() != nil {
		t.Fatal("no tile should be selected initially")
	}
	// first press lands on the first legal move
	b.MoveSelection(0, 1)
	if got := b.SelectedTile(); got == nil || *got != (engine.Position{Row: 2, Col: 3}) {
		t.Fatalf("selection = %v, want (2,3)", got)
	}
	b.MoveSelection(-1, 0)
	b.MoveSelection(-1, 0)
	b.MoveSelection(-1, 0) // clamped at the top edge
	if got := b.SelectedTile(); *got != (engine.Position{Row: 0, Col: 3}) {
		t.Fatalf("selection = %v, want (0,3)", got)
	}
	b.ResetSelection()
	if b.SelectedTile() != nil {
		t.Fatal("ResetSelection should clear the cursor")
	}
}

func TestDrawBoard(t *testing.T) {
	b, _, _ := newTestBoard(t)

	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	defer screen.Fini()
	screen.SetSize(40, 12)

	b.Box.SetRect(0, 0, 40, 12)
	b.Box.Draw(screen)

	sym := config.DefaultTheme.Symbols
	at := func(x, y int) rune {
		r, _, _, _ := screen.GetContent(x, y)
		return r
	}
	// cell (row, col) is drawn at x=4+col*2, y=1+row
	if r := at(4+3*2, 1+3); r != sym.WhiteDisc {
		t.Errorf("(3,3) = %q, want white disc", r)
	}
	if r := at(4+4*2, 1+3); r != sym.BlackDisc {
		t.Errorf("(3,4) = %q, want black disc", r)
	}
	if r := at(4+3*2, 1+2); r != sym.LegalHint {
		t.Errorf("(2,3) = %q, want legal hint", r)
	}
	if r := at(4, 1); r != sym.BoardSquare {
		t.Errorf("(0,0) = %q, want empty square", r)
	}
	if r := at(4, 0); r != 'a' {
		t.Errorf("column label = %q, want 'a'", r)
	}
	if r := at(2, 1); r != '1' {
		t.Errorf("row label = %q, want '1'", r)
	}
}

func TestBoardShowsResult(t *testing.T) {
	b, hint, c := newTestBoard(t)
	for !c.Over() {
		moves := c.Game().LegalMoves()
		if len(moves) == 0 {
			t.Fatal("side to move has no legal move in a running game")
		}
		b.PlayMove(moves[0])
	}
	if !b.IsFinished() {
		t.Fatal("board should see the game end")
	}
	if !strings.Contains(hint.GetText(true), "Game Complete") {
		t.Fatalf("hint = %q", hint.GetText(true))
	}
	b.MoveSelection(1, 0)
	if b.SelectedTile() != nil {
		t.Fatal("cursor should stay hidden once the game is over")
	}
}
