package match

import (
	"fmt"

	"github.com/Zdifah/Game-Othello/engine"
)

// MaxSize is the largest board a game record can address: SGF names rows and
// columns with the letters a to z.
const MaxSize = 26

// NewGame builds a size x size game with the four centre discs placed the
// standard way: White on the main diagonal, Black on the other.
func NewGame(size int, opts ...engine.Option) (*engine.Game, error) {
	g := engine.New(opts...)
	if size == engine.DefaultSize {
		return g, nil
	}
	if size < 4 {
		return nil, fmt.Errorf("%w: board size %d is too small", ErrSetup, size)
	}
	if size > MaxSize {
		return nil, fmt.Errorf("%w: board size %d is larger than %d", ErrSetup, size, MaxSize)
	}
	if !g.SetBoardSize(size) {
		return nil, fmt.Errorf("%w: board size %d must be even", ErrSetup, size)
	}
	mid := size / 2
	g.PlaceDisc(engine.White, engine.Position{Row: mid - 1, Col: mid - 1})
	g.PlaceDisc(engine.Black, engine.Position{Row: mid - 1, Col: mid})
	g.PlaceDisc(engine.Black, engine.Position{Row: mid, Col: mid - 1})
	g.PlaceDisc(engine.White, engine.Position{Row: mid, Col: mid})
	return g, nil
}
