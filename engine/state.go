package engine

import "github.com/Zdifah/Game-Othello/types"

// State returns a snapshot of the game for renderers. The snapshot shares no
// memory with the game.
func (g *Game) State() *types.BoardState {
	s := types.NewBoardState(g.rows)
	for r := range g.board {
		for c, d := range g.board[r] {
			s.Board[r][c] = int(d)
		}
	}
	s.MoveNumber = g.moveNumber
	s.PlayerToMove = int(g.current)
	s.Black = g.count[Black]
	s.White = g.count[White]
	s.Winner = int(g.winner)
	s.Phase = phase(g.status)
	s.LegalMoves = toBoardPos(g.legal.Positions())
	if g.last != nil {
		s.LastMove = types.BoardPos{Row: g.last.Placed.Row, Col: g.last.Placed.Col}
		s.Flipped = toBoardPos(g.last.Flipped)
	}
	return s
}

func phase(s Status) string {
	switch s {
	case Start:
		return "start"
	case OnGoing:
		return "playing"
	case End:
		return "finished"
	default:
		return "not_ready"
	}
}

func toBoardPos(ps []Position) []types.BoardPos {
	out := make([]types.BoardPos, len(ps))
	for i, p := range ps {
		out[i] = types.BoardPos{Row: p.Row, Col: p.Col}
	}
	return out
}
