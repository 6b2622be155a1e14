package ui

import (
	"fmt"

	"github.com/rivo/tview"

	"github.com/Zdifah/Game-Othello/engine"
	"github.com/Zdifah/Game-Othello/match"
	"github.com/Zdifah/Game-Othello/types"
)

const (
	infoPanelWidth = 26
	hintHeight     = 4
	maxVisible     = 12
)

// InfoPanel displays disc counts and the move list alongside the board.
type InfoPanel struct {
	box        *tview.TextView
	boardState *types.BoardState
	history    []match.Entry
	blackName  string
	whiteName  string
}

// NewInfoPanel creates a new game info panel.
func NewInfoPanel() *InfoPanel {
	panel := &InfoPanel{
		box:       tview.NewTextView(),
		blackName: "Black",
		whiteName: "White",
	}

	panel.box.SetDynamicColors(true)
	panel.box.SetBorder(false)
	panel.box.SetTextAlign(tview.AlignLeft)

	return panel
}

// Box returns the underlying tview component.
func (p *InfoPanel) Box() *tview.TextView {
	return p.box
}

func (p *InfoPanel) SetPlayers(black, white string) {
	p.blackName = black
	p.whiteName = white
	p.refresh()
}

// SetBoardState updates the panel with current board state.
func (p *InfoPanel) SetBoardState(state *types.BoardState) {
	p.boardState = state
	p.refresh()
}

// SetHistory replaces the move list. The panel keeps its own copy.
func (p *InfoPanel) SetHistory(entries []match.Entry) {
	p.history = append(p.history[:0], entries...)
	p.refresh()
}

func (p *InfoPanel) refresh() {
	if p.boardState == nil {
		p.box.SetText("")
		return
	}
	s := p.boardState

	var text string

	text += "[white::b]Game Info[-:-:-]\n"
	text += "[dimgray]──────────────────────[-:-:-]\n"
	text += fmt.Sprintf("[white]Black:[-:-:-] %s %d\n", tview.Escape(p.blackName), s.Black)
	text += fmt.Sprintf("[white]White:[-:-:-] %s %d\n", tview.Escape(p.whiteName), s.White)
	text += fmt.Sprintf("[white]Move:[-:-:-] %d\n", s.MoveNumber)
	if s.Finished() {
		text += "[yellow]Game over[-]\n"
	} else if d := engine.Disc(s.PlayerToMove); d != engine.None {
		text += fmt.Sprintf("[white]To move:[-:-:-] %s (%d legal)\n", d, len(s.LegalMoves))
	}

	if len(p.history) > 0 {
		text += "\n[white::b]Moves[-:-:-]\n"
		text += "[dimgray]──────────────────────[-:-:-]\n"

		// Show last N moves that fit
		start := 0
		if len(p.history) > maxVisible {
			start = len(p.history) - maxVisible
		}

		for i := start; i < len(p.history); i++ {
			m := p.history[i]

			colorStr := "[white]B[-]"
			if m.Disc == engine.White {
				colorStr = "[dimgray]W[-]"
			}

			coord := "pass"
			if !m.Pass {
				coord = fmt.Sprintf("%-3s +%d", PosDisplay(m.Pos), len(m.Flipped))
			}

			marker := " "
			if i == len(p.history)-1 {
				marker = "[white]>[-]"
			}

			text += fmt.Sprintf("%s[dimgray]%3d.[-] %s %s\n", marker, i+1, colorStr, coord)
		}

		if start > 0 {
			text += fmt.Sprintf("[dimgray]  ··· %d earlier[-]\n", start)
		}
	}

	p.box.SetText(text)
}

// CreateGameLayout creates the main game layout with board and side panel.
func CreateGameLayout(board *BoardUI, hint *tview.TextView) *tview.Flex {
	mainFlex := tview.NewFlex()
	RebuildNormalLayout(mainFlex, board, hint)
	return mainFlex
}

// CreateCenteredForm creates a centered form container for the setup screen.
func CreateCenteredForm(form tview.Primitive, maxWidth int) *tview.Flex {
	centered := tview.NewFlex().SetDirection(tview.FlexColumn)
	centered.AddItem(nil, 0, 1, false)
	centered.AddItem(form, maxWidth, 0, true)
	centered.AddItem(nil, 0, 1, false)

	return centered
}

// RebuildNormalLayout restores the normal game layout with board, info panel, and hint.
func RebuildNormalLayout(gameFrame *tview.Flex, board *BoardUI, hint *tview.TextView) {
	gameFrame.Clear()

	if board.infoPanel == nil {
		board.infoPanel = NewInfoPanel()
	}
	board.refresh()

	// board | info panel
	boardRow := tview.NewFlex().SetDirection(tview.FlexColumn)
	boardRow.AddItem(board.Box, 0, 1, true)
	boardRow.AddItem(board.infoPanel.Box(), infoPanelWidth, 0, false)

	gameFrame.SetDirection(tview.FlexRow)
	gameFrame.AddItem(boardRow, 0, 1, true)
	gameFrame.AddItem(hint, hintHeight, 0, false)
}

// BuildFocusLayout builds the focus mode layout with just the centered board.
func BuildFocusLayout(gameFrame *tview.Flex, board *BoardUI) {
	gameFrame.Clear()

	boardWidth := engine.DefaultSize*2 + 4
	boardHeight := engine.DefaultSize + 1
	if board.BoardState != nil && board.BoardState.Width() > 0 {
		boardWidth = board.BoardState.Width()*2 + 4 // 2 chars per cell + coordinates
		boardHeight = board.BoardState.Height() + 1
	}

	gameFrame.SetDirection(tview.FlexRow)
	gameFrame.AddItem(nil, 0, 1, false)

	centerRow := tview.NewFlex().SetDirection(tview.FlexColumn)
	centerRow.AddItem(nil, 0, 1, false)
	centerRow.AddItem(board.Box, boardWidth, 0, true)
	centerRow.AddItem(nil, 0, 1, false)

	gameFrame.AddItem(centerRow, boardHeight, 0, true)
	gameFrame.AddItem(nil, 0, 1, false)
}
