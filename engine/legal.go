package engine

import "sort"

// LegalMoves maps each placeable position to the opponent discs it outflanks.
type LegalMoves map[Position][]Position

// Positions returns the legal positions in row-major order.
func (m LegalMoves) Positions() []Position {
	out := make([]Position, 0, len(m))
	for p := range m {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// directions lists the eight neighbours as (dRow, dCol).
var directions = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// outflankedInDir walks from p in one direction over opponent discs. The run
// counts only when it ends on a disc of colour d.
func (g *Game) outflankedInDir(p Position, d Disc, dr, dc int) []Position {
	var run []Position
	opp := d.Opponent()
	r, c := p.Row+dr, p.Col+dc
	for r >= 0 && r < g.rows && c >= 0 && c < g.cols {
		switch g.board[r][c] {
		case opp:
			run = append(run, Position{Row: r, Col: c})
			r += dr
			c += dc
		case d:
			return run
		default:
			return nil
		}
	}
	return nil
}

// outflanked is the union of outflanked runs over all eight directions.
func (g *Game) outflanked(p Position, d Disc) []Position {
	var all []Position
	for _, dir := range directions {
		all = append(all, g.outflankedInDir(p, d, dir[0], dir[1])...)
	}
	return all
}

// IsMoveLegal reports whether d may be placed at p and returns the discs the
// placement would flip.
func (g *Game) IsMoveLegal(d Disc, p Position) ([]Position, bool) {
	if !d.Valid() || !g.InBounds(p) || g.board[p.Row][p.Col] != None {
		return nil, false
	}
	flips := g.outflanked(p, d)
	if len(flips) == 0 {
		return nil, false
	}
	return flips, true
}

// FindLegalMoves recomputes the legal-move table for the colour to move,
// records its size as that colour's move availability and notifies
// listeners. The table is empty unless the game has started.
func (g *Game) FindLegalMoves() LegalMoves {
	legal := LegalMoves{}
	running := g.status == Start || g.status == OnGoing
	if running && g.current != None {
		for r := 0; r < g.rows; r++ {
			for c := 0; c < g.cols; c++ {
				p := Position{Row: r, Col: c}
				if flips, ok := g.IsMoveLegal(g.current, p); ok {
					legal[p] = flips
				}
			}
		}
	}
	g.legal = legal
	if g.current != None {
		g.possible[g.current] = len(legal)
	}

	moves := legal.Positions()
	g.each(func(l Listener) { l.LegalMovesFound(g.current, moves) })
	g.log.Printf("%s has %d legal moves", g.current, len(legal))
	return copyLegal(legal)
}

// LegalMoves returns the positions of the current legal-move table in
// row-major order.
func (g *Game) LegalMoves() []Position {
	return g.legal.Positions()
}

// Flips returns the discs a legal move at p would flip.
func (g *Game) Flips(p Position) ([]Position, bool) {
	flips, ok := g.legal[p]
	if !ok {
		return nil, false
	}
	return append([]Position(nil), flips...), true
}

func copyLegal(m LegalMoves) LegalMoves {
	out := make(LegalMoves, len(m))
	for p, flips := range m {
		out[p] = append([]Position(nil), flips...)
	}
	return out
}
