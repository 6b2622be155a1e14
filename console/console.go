// Package console is the plain-text front end: a board printer driven by
// engine notifications and a "row,col" prompt loop.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Zdifah/Game-Othello/engine"
	"github.com/Zdifah/Game-Othello/match"
	"github.com/Zdifah/Game-Othello/types"
)

var (
	ErrBadInput = errors.New("expected row,col")
	ErrAborted  = errors.New("game aborted")
)

// Symbols are the runes a board is printed with.
type Symbols struct {
	Black rune
	White rune
	Empty rune
	Hint  rune
}

var DefaultSymbols = Symbols{Black: 'X', White: 'O', Empty: '.', Hint: '*'}

// Renderer prints a game to out as it is played.
type Renderer struct {
	out  io.Writer
	game *engine.Game
	sym  Symbols
}

func NewRenderer(out io.Writer, g *engine.Game, sym Symbols) *Renderer {
	return &Renderer{out: out, game: g, sym: sym}
}

// Render writes the board of s, marking its legal moves.
func (r *Renderer) Render(s *types.BoardState) {
	var b strings.Builder
	b.WriteString("   ")
	for col := 0; col < s.Width(); col++ {
		fmt.Fprintf(&b, "%2d", col)
	}
	b.WriteString("\n")
	for row := 0; row < s.Height(); row++ {
		fmt.Fprintf(&b, "%2d ", row)
		for col := 0; col < s.Width(); col++ {
			ch := r.sym.Empty
			switch s.Board[row][col] {
			case int(engine.Black):
				ch = r.sym.Black
			case int(engine.White):
				ch = r.sym.White
			default:
				if s.IsLegal(row, col) {
					ch = r.sym.Hint
				}
			}
			b.WriteString(" ")
			b.WriteRune(ch)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "%c %s: %d  %c %s: %d\n", r.sym.Black, engine.Black, s.Black, r.sym.White, engine.White, s.White)
	io.WriteString(r.out, b.String())
}

func (r *Renderer) LegalMovesFound(d engine.Disc, moves []engine.Position) {
	if len(moves) == 0 {
		return
	}
	r.Render(r.game.State())
	fmt.Fprintf(r.out, "%s to move\n", d)
	for _, p := range moves {
		flips, _ := r.game.Flips(p)
		fmt.Fprintf(r.out, "  %s flips %s\n", p, joinPositions(flips))
	}
}

func (r *Renderer) DiscsUpdated(u engine.Update) {
	fmt.Fprintf(r.out, "%s placed %s, flipped %s\n", u.Disc, u.Placed, joinPositions(u.Flipped))
}

func (r *Renderer) TurnEnded(t engine.TurnEnd) {
	if t.Passed {
		fmt.Fprintf(r.out, "%s has no legal move and passes\n", t.Disc)
	}
}

func (r *Renderer) GameEnded(res engine.Result) {
	r.Render(r.game.State())
	fmt.Fprintf(r.out, "%s: %d\n%s: %d\n", engine.Black, res.Black, engine.White, res.White)
	if res.Winner == engine.None {
		fmt.Fprintln(r.out, "Draw")
		return
	}
	fmt.Fprintf(r.out, "%s wins\n", res.Winner)
}

func joinPositions(ps []engine.Position) string {
	parts := make([]string, len(ps))
	for i, p := range ps {
		parts[i] = p.String()
	}
	return strings.Join(parts, " ")
}

// ParsePosition reads "row,col" (spaces allowed, parentheses optional).
func ParsePosition(s string) (engine.Position, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(strings.TrimPrefix(s, "("), ")")
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return engine.Position{}, fmt.Errorf("%w, got %q", ErrBadInput, s)
	}
	row, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return engine.Position{}, fmt.Errorf("%w, got %q", ErrBadInput, s)
	}
	col, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return engine.Position{}, fmt.Errorf("%w, got %q", ErrBadInput, s)
	}
	return engine.Position{Row: row, Col: col}, nil
}

// Run prompts for moves on out and reads them from in until the game is
// over. It returns ErrAborted when the input ends or the player quits first.
func Run(c *match.Controller, in io.Reader, out io.Writer) error {
	sc := bufio.NewScanner(in)
	for !c.Over() {
		d, p := c.Turn()
		name := d.String()
		if p != nil {
			name = fmt.Sprintf("%s (%s)", p.Name(), d)
		}
		fmt.Fprintf(out, "%s, enter row,col: ", name)

		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return err
			}
			fmt.Fprintln(out)
			return ErrAborted
		}
		line := strings.TrimSpace(sc.Text())
		switch line {
		case "":
			continue
		case "q", "quit":
			return ErrAborted
		}

		pos, err := ParsePosition(line)
		if err != nil {
			fmt.Fprintln(out, err)
			continue
		}
		if err := c.Play(pos); err != nil {
			if errors.Is(err, match.ErrIllegalMove) {
				fmt.Fprintf(out, "%s is not a legal move\n", pos)
				continue
			}
			return err
		}
	}
	return nil
}
