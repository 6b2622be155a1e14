package ui

import (
	"os"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/Zdifah/Game-Othello/config"
	"github.com/Zdifah/Game-Othello/engine"
	"github.com/Zdifah/Game-Othello/match"
	"github.com/Zdifah/Game-Othello/player"
	"github.com/Zdifah/Game-Othello/sgf"
)

// saveGame plays a 4x4 game to the end with the first legal move each turn
// and records it in dir.
func saveGame(t *testing.T, dir string) *engine.Game {
	t.Helper()
	g, err := match.NewGame(4)
	if err != nil {
		t.Fatal(err)
	}
	rec, err := sgf.NewGameRecord(dir, 4, "Alice", "Bob")
	if err != nil {
		t.Fatal(err)
	}
	rec.AddSetupPosition(g.Board())
	rec.SetFirstTurn(engine.Black)
	g.Subscribe(rec)

	c := match.New(g, player.New("Alice"), player.New("Bob"), engine.Black)
	if err := c.Start(); err != nil {
		t.Fatal(err)
	}
	for !c.Over() {
		if err := c.Play(g.LegalMoves()[0]); err != nil {
			t.Fatal(err)
		}
	}
	rec.Close()
	if rec.Err() != nil {
		t.Fatal(rec.Err())
	}
	return g
}

func TestHistoryBrowserReplaysResult(t *testing.T) {
	dir := t.TempDir()
	g := saveGame(t, dir)
	cfg := config.DefaultConfig

	hb := NewHistoryBrowser(&cfg, dir, nil)
	if len(hb.records) != 1 {
		t.Fatalf("records = %d, want 1", len(hb.records))
	}
	lines := hb.current().lines()
	want := resultText(engine.Result{Winner: g.Winner(), Black: g.Count(engine.Black), White: g.Count(engine.White)})
	if got := lines[len(lines)-1]; got != want {
		t.Fatalf("result line = %q, want %q", got, want)
	}
	if !strings.Contains(lines[1], "Alice") || !strings.Contains(lines[2], "Bob") {
		t.Fatalf("player lines = %q", lines[1:3])
	}
}

func TestHistoryBrowserPreviewUsesTheme(t *testing.T) {
	dir := t.TempDir()
	g := saveGame(t, dir)
	cfg := config.DefaultConfig
	cfg.Theme.Symbols.BlackDisc = 'x'
	cfg.Theme.Symbols.WhiteDisc = 'o'

	hb := NewHistoryBrowser(&cfg, dir, nil)

	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	defer screen.Fini()
	screen.SetSize(40, 16)
	hb.preview.SetRect(0, 0, 40, 16)
	hb.preview.Draw(screen)

	// cells start inside the border at (2, 1), two columns each
	for row, cells := range g.Board() {
		for col, d := range cells {
			r, _, style, _ := screen.GetContent(2+col*2, 1+row)
			fg, _, _ := style.Decompose()
			switch d {
			case engine.Black:
				if r != 'x' || fg != tcell.PaletteColor(cfg.Theme.Colors.BlackColor) {
					t.Errorf("(%d,%d) = %q, want themed black disc", row, col, r)
				}
			case engine.White:
				if r != 'o' || fg != tcell.PaletteColor(cfg.Theme.Colors.WhiteColor) {
					t.Errorf("(%d,%d) = %q, want themed white disc", row, col, r)
				}
			default:
				if r != cfg.Theme.Symbols.BoardSquare {
					t.Errorf("(%d,%d) = %q, want empty square", row, col, r)
				}
			}
		}
	}
}

func TestHistoryBrowserDelete(t *testing.T) {
	dir := t.TempDir()
	saveGame(t, dir)
	cfg := config.DefaultConfig

	hb := NewHistoryBrowser(&cfg, dir, nil)
	hb.deleteCurrent()
	if len(hb.records) != 0 {
		t.Fatalf("records = %d after delete, want 0", len(hb.records))
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatalf("%d files left in history dir", len(entries))
	}
}

func TestHistoryBrowserUnavailable(t *testing.T) {
	cfg := config.DefaultConfig
	hb := NewHistoryBrowser(&cfg, "", nil)
	if hb.current() != nil {
		t.Fatal("no record should be selected without a history dir")
	}
}
