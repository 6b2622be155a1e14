// Package ui specifies custom controls for tview to play Othello in the terminal.
package ui

import (
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/Zdifah/Game-Othello/config"
	"github.com/Zdifah/Game-Othello/engine"
	"github.com/Zdifah/Game-Othello/match"
	"github.com/Zdifah/Game-Othello/types"
)

// indexes into BoardUI.styles
const (
	styleBoard = iota
	styleBoardAlt
	styleBlack
	styleWhite
	styleLine
	styleHint
	styleFlipped
	styleCursorFG
	styleCursorBG
	styleLastPlayed
)

// BoardUI draws a game and turns key presses into moves. It implements
// engine.Listener; the callbacks only read the game, never the controller,
// because they run while the controller is applying a move.
type BoardUI struct {
	Box        *tview.Box
	BoardState *types.BoardState
	hint       *tview.TextView
	cfg        *config.Config
	styles     []tcell.Color
	infoPanel  *InfoPanel
	focusMode  bool

	ctrl   *match.Controller
	game   *engine.Game
	unsub  func()
	moves  []match.Entry
	passed engine.Disc
	result *engine.Result
	err    error

	selRow int
	selCol int
}

func NewBoard(c *config.Config, hint *tview.TextView) *BoardUI {
	board := &BoardUI{
		Box:        tview.NewBox(),
		BoardState: &types.BoardState{LastMove: types.None},
		hint:       hint,
		selRow:     -1,
		selCol:     -1,
	}
	board.SetConfig(c)
	board.Box.SetDrawFunc(board.draw)
	return board
}

// ConnectMatch shows c on the board. Call it before c.Start so the opening
// notifications are seen.
func (b *BoardUI) ConnectMatch(c *match.Controller) {
	b.Disconnect()
	b.ctrl = c
	b.game = c.Game()
	b.unsub = b.game.Subscribe(b)
	b.moves = c.History()
	b.passed = engine.None
	b.result = nil
	b.err = nil
	b.ResetSelection()
	if b.infoPanel != nil {
		black, white := c.Players()
		b.infoPanel.SetPlayers(black.Name(), white.Name())
	}
	b.refresh()
}

// Disconnect stops following the current match.
func (b *BoardUI) Disconnect() {
	if b.unsub != nil {
		b.unsub()
		b.unsub = nil
	}
}

func (b *BoardUI) LegalMovesFound(engine.Disc, []engine.Position) {
	b.refresh()
}

func (b *BoardUI) DiscsUpdated(u engine.Update) {
	b.moves = append(b.moves, match.Entry{Disc: u.Disc, Pos: u.Placed, Flipped: u.Flipped})
	b.refresh()
}

func (b *BoardUI) TurnEnded(t engine.TurnEnd) {
	b.passed = engine.None
	if t.Passed {
		b.passed = t.Disc
		b.moves = append(b.moves, match.Entry{Disc: t.Disc, Pass: true})
	}
	b.refresh()
}

func (b *BoardUI) GameEnded(r engine.Result) {
	b.result = &r
	b.ResetSelection()
	b.refresh()
}

func (b *BoardUI) refresh() {
	if b.game != nil {
		b.BoardState = b.game.State()
	}
	if b.infoPanel != nil {
		b.infoPanel.SetBoardState(b.BoardState)
		b.infoPanel.SetHistory(b.moves)
	}
	b.refreshHint()
}

// IsFinished returns true if the game is over.
func (b *BoardUI) IsFinished() bool {
	return b.result != nil
}

// ToggleFocusMode toggles focus mode and returns the new state.
func (b *BoardUI) ToggleFocusMode() bool {
	b.focusMode = !b.focusMode
	b.refreshHint()
	return b.focusMode
}

// SetFocusMode sets focus mode to the given state.
func (b *BoardUI) SetFocusMode(enabled bool) {
	b.focusMode = enabled
	b.refreshHint()
}

func (b *BoardUI) SelectedTile() *engine.Position {
	if b.selRow == -1 && b.selCol == -1 {
		return nil
	}
	return &engine.Position{Row: b.selRow, Col: b.selCol}
}

// MoveSelection moves the cursor by (dRow, dCol). The first call places it
// on the last move, or on the first legal move when there is none.
func (b *BoardUI) MoveSelection(dRow, dCol int) {
	if b.IsFinished() {
		b.ResetSelection()
		return
	}
	if b.SelectedTile() == nil {
		switch {
		case b.BoardState.LastMove.Valid():
			b.selRow, b.selCol = b.BoardState.LastMove.Row, b.BoardState.LastMove.Col
		case len(b.BoardState.LegalMoves) > 0:
			b.selRow, b.selCol = b.BoardState.LegalMoves[0].Row, b.BoardState.LegalMoves[0].Col
		default:
			b.selRow, b.selCol = b.BoardState.Height()/2, b.BoardState.Width()/2
		}
		return
	}
	if b.selRow+dRow < 0 || b.selRow+dRow >= b.BoardState.Height() {
		return
	}
	if b.selCol+dCol < 0 || b.selCol+dCol >= b.BoardState.Width() {
		return
	}
	b.selRow += dRow
	b.selCol += dCol
}

func (b *BoardUI) ResetSelection() {
	b.selRow = -1
	b.selCol = -1
}

// PlayMove plays the side to move at p. A rejected move is shown in the hint.
func (b *BoardUI) PlayMove(p engine.Position) {
	if b.ctrl == nil || b.IsFinished() {
		return
	}
	b.err = b.ctrl.Play(p)
	b.refreshHint()
}

// Pass gives up the turn; the controller refuses while a move exists.
func (b *BoardUI) Pass() {
	if b.ctrl == nil || b.IsFinished() {
		return
	}
	b.err = b.ctrl.Pass()
	b.refreshHint()
}

func (b *BoardUI) SetConfig(c *config.Config) {
	b.styles = themeStyles(c.Theme)
	b.cfg = c
}

func themeStyles(th config.Theme) []tcell.Color {
	return []tcell.Color{
		tcell.PaletteColor(th.Colors.BoardColor),
		tcell.PaletteColor(th.Colors.BoardColorAlt),
		tcell.PaletteColor(th.Colors.BlackColor),
		tcell.PaletteColor(th.Colors.WhiteColor),
		tcell.PaletteColor(th.Colors.LineColor),
		tcell.PaletteColor(th.Colors.HintColor),
		tcell.PaletteColor(th.Colors.FlippedColorBG),
		tcell.PaletteColor(th.Colors.CursorColorFG),
		tcell.PaletteColor(th.Colors.CursorColorBG),
		tcell.PaletteColor(th.Colors.LastPlayedColorBG),
	}
}

func (b *BoardUI) refreshHint() {
	if b.hint == nil {
		return
	}
	if b.focusMode {
		b.hint.SetText("  f to toggle")
		return
	}

	var statusLine, turnLine, controlsLine string

	switch {
	case b.result != nil:
		statusLine = "───────── Game Complete ─────────\n\n"
		turnLine = fmt.Sprintf("  Result: %s\n", resultText(*b.result))
		controlsLine = "\n  q · return to menu"
	case b.game == nil:
		turnLine = "  No game\n"
	default:
		if b.err != nil {
			statusLine = fmt.Sprintf("  ✗ %s\n", errorText(b.err))
		} else if b.passed != engine.None {
			statusLine = fmt.Sprintf("  ○ %s had no move and passed\n", b.passed)
		}
		d := b.game.CurrentDisc()
		name := d.String()
		if p, ok := b.game.CurrentPlayer(); ok {
			name = p.Name()
		}
		turnLine = fmt.Sprintf("  %c %s to move (%s)\n", b.discRune(d), name, d)
		controlsLine = `
  hjkl/↑↓←→ move   ⏎ play
         p pass   f focus   q quit`
	}

	b.hint.SetText(fmt.Sprintf("%s%s%s", statusLine, turnLine, controlsLine))
}

func (b *BoardUI) discRune(d engine.Disc) rune {
	if d == engine.White {
		return b.cfg.Theme.Symbols.WhiteDisc
	}
	return b.cfg.Theme.Symbols.BlackDisc
}

func errorText(err error) string {
	switch {
	case errors.Is(err, match.ErrIllegalMove):
		return "Not a legal move"
	case errors.Is(err, match.ErrMustMove):
		return "You have a legal move, no pass"
	case errors.Is(err, match.ErrGameOver):
		return "Game is over"
	}
	return err.Error()
}

func resultText(r engine.Result) string {
	if r.Winner == engine.None {
		return fmt.Sprintf("Draw %d-%d", r.Black, r.White)
	}
	return fmt.Sprintf("%s wins %d-%d", r.Winner, r.Black, r.White)
}

// PosDisplay formats p the usual Othello way: column letter, then row number
// from 1, e.g. (2,3) -> "d3".
func PosDisplay(p engine.Position) string {
	return fmt.Sprintf("%c%d", 'a'+p.Col, p.Row+1)
}

func (b *BoardUI) draw(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	s := b.BoardState
	if s == nil || s.Width() == 0 {
		return x, y, 1, 1
	}
	// 2 characters per cell for square appearance
	boardW, boardH := s.Width()*2, s.Height()

	sel := types.BoardPos{Row: b.selRow, Col: b.selCol}
	drawBoard(screen, b.cfg.Theme, b.styles, s, sel, x+4, y+1)
	b.drawCoordinates(screen, x, y)
	// Add offset for coordinate display
	return x, y, boardW + 4, boardH + 1
}

// drawBoard draws every cell of s with its top left corner at (l, t). sel is
// the cursor, types.None for no cursor.
func drawBoard(screen tcell.Screen, th config.Theme, styles []tcell.Color, s *types.BoardState, sel types.BoardPos, l, t int) {
	for row := 0; row < s.Height(); row++ {
		for col := 0; col < s.Width(); col++ {
			r, style := cellLook(th, styles, s, row, col, sel)
			drawCell(screen, style, r, col, row, l, t)
		}
	}
}

// cellLook returns the rune and style for one cell.
func cellLook(th config.Theme, styles []tcell.Color, s *types.BoardState, row, col int, sel types.BoardPos) (rune, tcell.Style) {
	disc := engine.Disc(s.Board[row][col])
	bg := styles[styleBoard]
	if (row+col)%2 == 1 {
		bg = styles[styleBoardAlt]
	}
	fg := styles[styleLine]
	drawRune := th.Symbols.BoardSquare

	switch disc {
	case engine.Black:
		drawRune = th.Symbols.BlackDisc
		fg = styles[styleBlack]
	case engine.White:
		drawRune = th.Symbols.WhiteDisc
		fg = styles[styleWhite]
	default:
		if th.ShowLegalMoves && !s.Finished() && s.IsLegal(row, col) {
			drawRune = th.Symbols.LegalHint
			fg = styles[styleHint]
		}
	}
	if disc != engine.None && th.DrawDiscBackground {
		// fill the whole cell with the disc colour
		bg = fg
	}

	switch {
	case row == sel.Row && col == sel.Col:
		if th.DrawCursorBackground {
			bg = styles[styleCursorBG]
		} else if disc == engine.None {
			drawRune = th.Symbols.Cursor
			fg = styles[styleCursorFG]
		}
	case row == s.LastMove.Row && col == s.LastMove.Col:
		if th.DrawLastPlayedBackground {
			bg = styles[styleLastPlayed]
		}
	case th.DrawFlippedBackground && containsPos(s.Flipped, row, col):
		bg = styles[styleFlipped]
	}
	return drawRune, tcell.StyleDefault.Background(bg).Foreground(fg)
}

func containsPos(ps []types.BoardPos, row, col int) bool {
	for _, p := range ps {
		if p.Row == row && p.Col == col {
			return true
		}
	}
	return false
}

// drawCell draws one 2 character wide cell.
func drawCell(s tcell.Screen, c tcell.Style, r rune, col, row, l, t int) {
	s.SetContent(l+col*2, t+row, r, nil, c)
	s.SetContent(l+col*2+1, t+row, ' ', nil, c)
}

// drawCoordinates writes column letters above the board and row numbers
// from 1 to its left.
func (b *BoardUI) drawCoordinates(s tcell.Screen, x, y int) {
	hCoord := int('a')
	if b.cfg.Theme.FullWidthLetters {
		hCoord = int('ａ')
	}
	w, h := b.BoardState.Width(), b.BoardState.Height()

	style := tcell.StyleDefault
	highlight := tcell.StyleDefault.Background(b.styles[styleCursorBG])
	lpHighlight := tcell.StyleDefault.Background(b.styles[styleLastPlayed])

	for col := 0; col < w; col++ {
		_style := style
		if col == b.selCol {
			_style = highlight
		} else if col == b.BoardState.LastMove.Col {
			_style = lpHighlight
		}
		s.SetContent(x+4+col*2, y, rune(hCoord+col), nil, _style)
		s.SetContent(x+4+col*2+1, y, ' ', nil, _style)
	}

	for row := 0; row < h; row++ {
		_style := style
		if row == b.selRow {
			_style = highlight
		} else if row == b.BoardState.LastMove.Row {
			_style = lpHighlight
		}
		displayNum := row + 1
		tensRune := ' '
		if displayNum >= 10 {
			tensRune = rune('0' + displayNum/10)
		}
		s.SetContent(x+1, y+1+row, tensRune, nil, _style)
		s.SetContent(x+2, y+1+row, rune('0'+displayNum%10), nil, _style)
	}
}
