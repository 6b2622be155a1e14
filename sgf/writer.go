// Package sgf implements SGF FF[4] writing and reading for Othello game
// records (GM[2]).
package sgf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Zdifah/Game-Othello/engine"
	"github.com/Zdifah/Game-Othello/match"
)

const gameType = 2

// GameRecord tracks a game in progress and writes it as SGF. It implements
// engine.Listener so it can be subscribed to a game directly; the file is
// rewritten after every change.
type GameRecord struct {
	FilePath    string
	BoardSize   int
	PlayerBlack string
	PlayerWhite string
	FirstTurn   engine.Disc
	Date        string
	Result      string
	moves       []string // ";B[dc]", ";W[]", ...
	setupBlack  []string // AB coords of the starting position
	setupWhite  []string // AW coords
	file        *os.File
	err         error
}

// NewGameRecord creates a new SGF file in dir and writes the initial header.
func NewGameRecord(dir string, boardSize int, black, white string) (*GameRecord, error) {
	if boardSize < 1 || boardSize > match.MaxSize {
		return nil, fmt.Errorf("board size %d can not be recorded", boardSize)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}

	now := time.Now()
	filename := fmt.Sprintf("%s_%dx%d.sgf", now.Format("2006-01-02_150405"), boardSize, boardSize)
	path := filepath.Join(dir, filename)

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create sgf file: %w", err)
	}

	rec := &GameRecord{
		FilePath:    path,
		BoardSize:   boardSize,
		PlayerBlack: black,
		PlayerWhite: white,
		FirstTurn:   engine.Black,
		Date:        now.Format("2006-01-02"),
		Result:      "?",
		file:        f,
	}

	if err := rec.flush(); err != nil {
		f.Close()
		return nil, err
	}

	return rec, nil
}

// sgfCoord converts a 0-indexed cell to an SGF letter pair, column first.
// (row 0, col 0) -> "aa", (row 2, col 3) -> "dc".
func sgfCoord(p engine.Position) string {
	return string(rune('a'+p.Col)) + string(rune('a'+p.Row))
}

func colorChar(d engine.Disc) string {
	if d == engine.White {
		return "W"
	}
	return "B"
}

// AddMove appends a placement by d at p.
func (r *GameRecord) AddMove(d engine.Disc, p engine.Position) error {
	r.moves = append(r.moves, fmt.Sprintf(";%s[%s]", colorChar(d), sgfCoord(p)))
	return r.flush()
}

// AddPass appends a pass by d.
func (r *GameRecord) AddPass(d engine.Disc) error {
	r.moves = append(r.moves, fmt.Sprintf(";%s[]", colorChar(d)))
	return r.flush()
}

// AddSetupPosition records the discs on board as AB[]/AW[] setup properties.
// board is indexed as board[row][col].
func (r *GameRecord) AddSetupPosition(board [][]engine.Disc) error {
	r.setupBlack = nil
	r.setupWhite = nil
	for row := range board {
		for col, d := range board[row] {
			p := engine.Position{Row: row, Col: col}
			switch d {
			case engine.Black:
				r.setupBlack = append(r.setupBlack, sgfCoord(p))
			case engine.White:
				r.setupWhite = append(r.setupWhite, sgfCoord(p))
			}
		}
	}
	return r.flush()
}

// SetFirstTurn records which colour opened the game (PL property).
func (r *GameRecord) SetFirstTurn(d engine.Disc) error {
	r.FirstTurn = d
	return r.flush()
}

// SetResult sets the SGF RE property from a finished game.
func (r *GameRecord) SetResult(res engine.Result) error {
	r.Result = FormatResult(res)
	return r.flush()
}

// FormatResult renders a result as "B+n", "W+n" (disc difference) or "0"
// for a draw.
func FormatResult(res engine.Result) string {
	switch res.Winner {
	case engine.Black:
		return fmt.Sprintf("B+%d", res.Black-res.White)
	case engine.White:
		return fmt.Sprintf("W+%d", res.White-res.Black)
	default:
		return "0"
	}
}

// Err returns the first error hit while recording through the listener
// callbacks, which have no way to report it.
func (r *GameRecord) Err() error {
	return r.err
}

func (r *GameRecord) keep(err error) {
	if err != nil && r.err == nil {
		r.err = err
	}
}

func (r *GameRecord) LegalMovesFound(engine.Disc, []engine.Position) {}

func (r *GameRecord) DiscsUpdated(u engine.Update) {
	r.keep(r.AddMove(u.Disc, u.Placed))
}

func (r *GameRecord) TurnEnded(t engine.TurnEnd) {
	if t.Passed {
		r.keep(r.AddPass(t.Disc))
	}
}

func (r *GameRecord) GameEnded(res engine.Result) {
	r.keep(r.SetResult(res))
}

// Close performs a final flush and closes the file handle.
func (r *GameRecord) Close() {
	if r.file == nil {
		return
	}
	r.flush()
	r.file.Close()
	r.file = nil
}

// escapeText escapes a SimpleText property value.
func escapeText(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, "]", `\]`)
}

// flush rewrites the complete SGF file from scratch.
func (r *GameRecord) flush() error {
	if r.file == nil {
		return fmt.Errorf("file already closed")
	}

	var b strings.Builder

	// Root node
	b.WriteString(fmt.Sprintf("(;GM[%d]FF[4]CA[UTF-8]", gameType))
	b.WriteString("AP[othello:1.0]")
	b.WriteString(fmt.Sprintf("SZ[%d]", r.BoardSize))
	b.WriteString(fmt.Sprintf("PB[%s]", escapeText(r.PlayerBlack)))
	b.WriteString(fmt.Sprintf("PW[%s]", escapeText(r.PlayerWhite)))
	b.WriteString(fmt.Sprintf("PL[%s]", colorChar(r.FirstTurn)))
	b.WriteString(fmt.Sprintf("DT[%s]", r.Date))
	b.WriteString(fmt.Sprintf("RE[%s]", r.Result))
	b.WriteString("\n")

	// Setup node with the starting position
	if len(r.setupBlack) > 0 || len(r.setupWhite) > 0 {
		b.WriteString(";")
		if len(r.setupBlack) > 0 {
			b.WriteString("AB")
			for _, c := range r.setupBlack {
				b.WriteString(fmt.Sprintf("[%s]", c))
			}
		}
		if len(r.setupWhite) > 0 {
			b.WriteString("AW")
			for _, c := range r.setupWhite {
				b.WriteString(fmt.Sprintf("[%s]", c))
			}
		}
		b.WriteString("\n")
	}

	for _, m := range r.moves {
		b.WriteString(m)
	}

	b.WriteString(")\n")

	// Rewrite file from start
	if _, err := r.file.Seek(0, 0); err != nil {
		return err
	}
	if err := r.file.Truncate(0); err != nil {
		return err
	}
	if _, err := r.file.WriteString(b.String()); err != nil {
		return err
	}
	return r.file.Sync()
}

// isValidSGFResult checks if a string is a result this package writes or
// a common SGF spelling of one.
func isValidSGFResult(s string) bool {
	if s == "?" || s == "0" || s == "Draw" || s == "Void" {
		return true
	}
	if len(s) < 3 {
		return false
	}
	if (s[0] != 'B' && s[0] != 'W') || s[1] != '+' {
		return false
	}
	rest := s[2:]
	if rest == "R" || rest == "T" || rest == "F" || rest == "?" {
		return true
	}
	for _, ch := range rest {
		if ch < '0' || ch > '9' {
			return false
		}
	}
	return true
}
