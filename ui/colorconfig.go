package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/Zdifah/Game-Othello/config"
)

// ColorConfigUI provides a color configuration screen with live preview.
type ColorConfigUI struct {
	flex      *tview.Flex
	colorList *tview.List
	preview   *tview.Box
	cfg       *config.Config
	onDone    func()

	// Current selection
	board       boardColor
	hintColor   int
	editingHint bool // true = editing legal move hint colour
}

type boardColor struct {
	code int
	alt  int // second shade for the checkered squares
	name string
}

var boardColors = []boardColor{
	{28, 22, "Felt Green"},
	{34, 28, "Bright Green"},
	{29, 23, "Sea Green"},
	{22, 22, "Dark Green"},
	{65, 59, "Moss"},
	{23, 17, "Teal"},
	{24, 18, "Dark Cyan"},
	{94, 58, "Walnut"},
	{136, 94, "Oak"},
	{240, 236, "Slate"},
}

// Hint colors should stand out on the board
var hintColors = []struct {
	code int
	name string
}{
	{148, "Lime"},
	{226, "Yellow"},
	{214, "Orange"},
	{117, "Sky Blue"},
	{213, "Pink"},
	{250, "Gray"},
	{196, "Red"},
}

// NewColorConfig creates a new color configuration screen.
func NewColorConfig(cfg *config.Config, onDone func()) *ColorConfigUI {
	cc := &ColorConfigUI{
		cfg:       cfg,
		onDone:    onDone,
		board:     boardColor{cfg.Theme.Colors.BoardColor, cfg.Theme.Colors.BoardColorAlt, ""},
		hintColor: cfg.Theme.Colors.HintColor,
	}

	cc.colorList = tview.NewList()
	cc.colorList.SetBorder(true)
	cc.colorList.ShowSecondaryText(false)
	cc.populateColorList()

	// Handle selection change (preview)
	cc.colorList.SetChangedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		if cc.editingHint {
			if index >= 0 && index < len(hintColors) {
				cc.hintColor = hintColors[index].code
			}
		} else if index >= 0 && index < len(boardColors) {
			cc.board = boardColors[index]
		}
	})

	// Handle selection confirm (apply)
	cc.colorList.SetSelectedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		if cc.editingHint {
			cc.cfg.Theme.Colors.HintColor = cc.hintColor
			cc.save()
			cc.editingHint = false
			cc.populateColorList()
			return
		}
		cc.cfg.Theme.Colors.BoardColor = cc.board.code
		cc.cfg.Theme.Colors.BoardColorAlt = cc.board.alt
		cc.cfg.Theme.Colors.LineColor = cc.board.alt
		if cc.save() {
			onDone()
		}
	})

	cc.preview = tview.NewBox()
	cc.preview.SetBorder(true)
	cc.preview.SetTitle(" Board Preview ")
	cc.preview.SetDrawFunc(cc.drawPreview)

	// Layout: list on left, preview on right
	cc.flex = tview.NewFlex().
		AddItem(cc.colorList, 30, 0, true).
		AddItem(cc.preview, 0, 1, false)

	return cc
}

func (cc *ColorConfigUI) save() bool {
	if err := cc.cfg.Save(); err != nil {
		cc.colorList.SetTitle(" Save failed ")
		return false
	}
	return true
}

// populateColorList fills the list with appropriate colors based on editing mode.
func (cc *ColorConfigUI) populateColorList() {
	cc.colorList.Clear()

	if cc.editingHint {
		cc.colorList.SetTitle(" Select Hint Color (Tab: switch to board) ")
		for i, c := range hintColors {
			cc.colorList.AddItem(swatch(c.code, c.name), "", rune('a'+i), nil)
			if c.code == cc.hintColor {
				cc.colorList.SetCurrentItem(i)
			}
		}
		return
	}

	cc.colorList.SetTitle(" Select Board Color (Tab: switch to hint) ")
	for i, c := range boardColors {
		cc.colorList.AddItem(swatch(c.code, c.name), "", rune('a'+i), nil)
		if c.code == cc.board.code {
			cc.colorList.SetCurrentItem(i)
		}
	}
}

func swatch(code int, name string) string {
	return fmt.Sprintf("[#%06x]████[-] %s (%d)", tcell.PaletteColor(code).Hex(), name, code)
}

func (cc *ColorConfigUI) drawPreview(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	colors := cc.cfg.Theme.Colors
	sym := cc.cfg.Theme.Symbols
	black := tcell.PaletteColor(colors.BlackColor)
	white := tcell.PaletteColor(colors.WhiteColor)
	hint := tcell.PaletteColor(cc.hintColor)

	// 6x6 opening with Black to move
	startX := x + 2
	startY := y + 1
	size := 6

	if width < 20 || height < 10 {
		return x, y, width, height
	}

	discs := map[[2]int]rune{
		{2, 2}: 'W', {2, 3}: 'B',
		{3, 2}: 'B', {3, 3}: 'W',
	}
	hints := map[[2]int]bool{
		{1, 2}: true, {2, 1}: true, {3, 4}: true, {4, 3}: true,
	}

	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			bg := tcell.PaletteColor(cc.board.code)
			if (row+col)%2 == 1 {
				bg = tcell.PaletteColor(cc.board.alt)
			}
			style := tcell.StyleDefault.Background(bg).Foreground(tcell.PaletteColor(cc.board.alt))
			char := sym.BoardSquare
			switch discs[[2]int{row, col}] {
			case 'B':
				char = sym.BlackDisc
				style = style.Foreground(black)
			case 'W':
				char = sym.WhiteDisc
				style = style.Foreground(white)
			default:
				if hints[[2]int{row, col}] {
					char = sym.LegalHint
					style = style.Foreground(hint)
				}
			}
			drawCell(screen, style, char, col, row, startX, startY)
		}
	}

	info := fmt.Sprintf("Board: %d/%d  Hint: %d", cc.board.code, cc.board.alt, cc.hintColor)
	for i, ch := range info {
		if startX+i < x+width-1 {
			screen.SetContent(startX+i, startY+size+1, ch, nil, tcell.StyleDefault)
		}
	}

	return x, y, width, height
}

// Flex returns the flex container for this UI.
func (cc *ColorConfigUI) Flex() *tview.Flex {
	return cc.flex
}

// SetInputCapture sets the input capture for the color list.
func (cc *ColorConfigUI) SetInputCapture(capture func(event *tcell.EventKey) *tcell.EventKey) {
	cc.colorList.SetInputCapture(capture)
}

// ToggleMode switches between board color and hint color editing.
func (cc *ColorConfigUI) ToggleMode() {
	cc.editingHint = !cc.editingHint
	cc.populateColorList()
}
