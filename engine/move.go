package engine

// TryMove reports whether p is in the current legal-move table.
func (g *Game) TryMove(p Position) bool {
	_, ok := g.legal[p]
	if !ok {
		g.log.Printf("WARN position %s can not be moved", p)
	}
	return ok
}

// MakeMove places the current colour at p and flips the discs it outflanks.
// p must come from the latest FindLegalMoves. The turn does not advance; call
// PassTurn for that.
func (g *Game) MakeMove(p Position) bool {
	g.refreshStatus()
	flips, ok := g.legal[p]
	if !ok || g.current == None {
		g.log.Printf("WARN position %s can not be moved", p)
		return false
	}

	mover := g.current
	g.board[p.Row][p.Col] = mover
	for _, f := range flips {
		g.board[f.Row][f.Col] = g.board[f.Row][f.Col].Opponent()
	}
	g.count[mover] += len(flips) + 1
	g.count[mover.Opponent()] -= len(flips)
	g.moved = true
	g.log.Printf("%s moved to %s, flipped %d, %s has %d discs", mover, p, len(flips), mover, g.count[mover])

	u := Update{
		Disc:       mover,
		Placed:     p,
		LegalMoves: g.legal.Positions(),
		Flipped:    append([]Position(nil), flips...),
	}
	g.legal = LegalMoves{}
	g.moveNumber++
	g.last = &u
	g.each(func(l Listener) { l.DiscsUpdated(u) })
	return true
}

// PassTurn ends the current turn. While either colour's last computed
// legal-move table was non-empty the turn goes to the opponent and PassTurn
// returns true. Otherwise the game ends, the winner is decided and PassTurn
// returns false. Availability is not recomputed here: call FindLegalMoves for
// each side first.
func (g *Game) PassTurn() bool {
	if g.status != Start && g.status != OnGoing {
		g.log.Printf("WARN can not pass turn, status: %s", g.status)
		return false
	}

	if g.possible[Black] > 0 || g.possible[White] > 0 {
		t := TurnEnd{Disc: g.current, Next: g.current.Opponent(), Passed: !g.moved}
		g.setTurn(t.Next)
		g.log.Printf("game continues, next turn: %s", g.current)
		g.each(func(l Listener) { l.TurnEnded(t) })
		return true
	}

	g.current = None
	g.moved = false
	g.winner = g.findWinner()
	g.status = End
	g.invalidate()
	r := Result{Winner: g.winner, Black: g.count[Black], White: g.count[White]}
	g.log.Printf("game end, winner: %s (%d-%d)", g.winner, r.Black, r.White)
	g.each(func(l Listener) { l.GameEnded(r) })
	return false
}

func (g *Game) findWinner() Disc {
	switch {
	case g.count[Black] > g.count[White]:
		return Black
	case g.count[White] > g.count[Black]:
		return White
	default:
		return None
	}
}
