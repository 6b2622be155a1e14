package ui

import (
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/Zdifah/Game-Othello/config"
	"github.com/Zdifah/Game-Othello/engine"
	"github.com/Zdifah/Game-Othello/sgf"
	"github.com/Zdifah/Game-Othello/types"
)

// HistoryBrowserUI lists recorded games and shows the final position of the
// selected one, replayed through the engine.
type HistoryBrowserUI struct {
	flex    *tview.Flex
	list    *tview.List
	preview *tview.Box
	status  *tview.TextView
	cfg     *config.Config
	dir     string
	records []*record
	onDone  func()
}

// record is one saved game. It is replayed the first time it is previewed.
type record struct {
	info     sgf.GameInfo
	replayed bool
	state    *types.BoardState
	result   *engine.Result // nil while the game is unfinished
	moves    int
	err      error
}

const historyHint = "  [dimgray]d[-] delete  [dimgray]q[-] back"

// NewHistoryBrowser lists the games saved in dir. An empty dir means the
// history directory is unavailable.
func NewHistoryBrowser(cfg *config.Config, dir string, onDone func()) *HistoryBrowserUI {
	hb := &HistoryBrowserUI{cfg: cfg, dir: dir, onDone: onDone}

	hb.list = tview.NewList()
	hb.list.SetBorder(true)
	hb.list.SetTitle(" Game History ")
	hb.list.SetBorderColor(MenuColors.Border)
	hb.list.ShowSecondaryText(false)
	hb.list.SetHighlightFullLine(true)
	hb.list.SetMainTextStyle(tcell.StyleDefault.Foreground(MenuColors.Label))
	hb.list.SetSelectedStyle(tcell.StyleDefault.
		Foreground(MenuColors.ButtonText).
		Background(MenuColors.ButtonFocus))
	hb.list.SetInputCapture(hb.handleInput)

	hb.preview = tview.NewBox()
	hb.preview.SetBorder(true)
	hb.preview.SetTitle(" Final Position ")
	hb.preview.SetBorderColor(MenuColors.Border)
	hb.preview.SetDrawFunc(hb.drawPreview)

	hb.status = tview.NewTextView()
	hb.status.SetDynamicColors(true)
	hb.status.SetText(historyHint)

	top := tview.NewFlex().
		AddItem(hb.list, 44, 0, true).
		AddItem(hb.preview, 0, 1, false)
	hb.flex = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(top, 0, 1, true).
		AddItem(hb.status, 1, 0, false)

	hb.Refresh()
	return hb
}

// Flex returns the flex container for this UI.
func (hb *HistoryBrowserUI) Flex() *tview.Flex {
	return hb.flex
}

// Refresh reloads the game list from disk.
func (hb *HistoryBrowserUI) Refresh() {
	hb.list.Clear()
	hb.records = nil

	if hb.dir == "" {
		hb.list.AddItem("[red]History unavailable[-]", "", 0, nil)
		return
	}
	games, err := sgf.ListGames(hb.dir)
	if err != nil || len(games) == 0 {
		hb.list.AddItem("[dimgray]No games found[-]", "", 0, nil)
		return
	}
	for _, g := range games {
		hb.records = append(hb.records, &record{info: g})
		label := fmt.Sprintf("%s %2dx%-2d %s vs %s", g.Date, g.BoardSize, g.BoardSize,
			tview.Escape(g.PlayerBlack), tview.Escape(g.PlayerWhite))
		hb.list.AddItem(label, "", 0, nil)
	}
}

func (hb *HistoryBrowserUI) current() *record {
	i := hb.list.GetCurrentItem()
	if i < 0 || i >= len(hb.records) {
		return nil
	}
	return hb.records[i]
}

func (hb *HistoryBrowserUI) handleInput(event *tcell.EventKey) *tcell.EventKey {
	switch {
	case event.Key() == tcell.KeyEscape,
		event.Key() == tcell.KeyRune && event.Rune() == 'q':
		if hb.onDone != nil {
			hb.onDone()
		}
		return nil
	case event.Key() == tcell.KeyRune && event.Rune() == 'd':
		hb.deleteCurrent()
		return nil
	}
	return event
}

func (hb *HistoryBrowserUI) deleteCurrent() {
	r := hb.current()
	if r == nil {
		return
	}
	if err := os.Remove(r.info.FilePath); err != nil {
		hb.status.SetText(fmt.Sprintf("  [red]%s[-]", tview.Escape(err.Error())))
		return
	}
	i := hb.list.GetCurrentItem()
	hb.Refresh()
	if i < hb.list.GetItemCount() {
		hb.list.SetCurrentItem(i)
	}
	hb.status.SetText(historyHint)
}

// replay loads the final position once.
func (r *record) replay() {
	if r.replayed {
		return
	}
	r.replayed = true
	g, n, err := sgf.ReplayToEnd(r.info.FilePath)
	if err != nil {
		r.err = err
		return
	}
	r.state = g.State()
	r.moves = n
	if g.Status() == engine.End {
		r.result = &engine.Result{
			Winner: g.Winner(),
			Black:  g.Count(engine.Black),
			White:  g.Count(engine.White),
		}
	}
}

// lines describes the replayed game for the preview.
func (r *record) lines() []string {
	r.replay()
	if r.err != nil {
		return []string{"Replay failed:", r.err.Error()}
	}
	out := []string{
		fmt.Sprintf("%dx%d, %d moves", r.info.BoardSize, r.info.BoardSize, r.moves),
		fmt.Sprintf("Black %-12s %2d", r.info.PlayerBlack, r.state.Black),
		fmt.Sprintf("White %-12s %2d", r.info.PlayerWhite, r.state.White),
	}
	if r.result == nil {
		return append(out, "Unfinished")
	}
	return append(out, resultText(*r.result))
}

func (hb *HistoryBrowserUI) drawPreview(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	r := hb.current()
	if r == nil {
		return x, y, width, height
	}
	lines := r.lines()
	left, top := x+2, y+1

	if r.state != nil {
		s := r.state
		if width < s.Width()*2+4 || height < s.Height()+len(lines)+3 {
			drawText(screen, left, top, "Window too small", tcell.StyleDefault.Foreground(MenuColors.Hint))
			return x, y, width, height
		}
		drawBoard(screen, hb.cfg.Theme, themeStyles(hb.cfg.Theme), s, types.None, left, top)
		top += s.Height() + 1
	}

	for i, line := range lines {
		style := tcell.StyleDefault.Foreground(MenuColors.Label)
		if i == len(lines)-1 {
			style = tcell.StyleDefault.Foreground(MenuColors.BorderFocus).Bold(true)
		}
		drawText(screen, left, top+i, line, style)
	}
	return x, y, width, height
}

// drawText writes a string to the screen at the given position.
func drawText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	i := 0
	for _, ch := range text {
		screen.SetContent(x+i, y, ch, nil, style)
		i++
	}
}
