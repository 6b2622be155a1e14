package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/Zdifah/Game-Othello/config"
	"github.com/Zdifah/Game-Othello/match"
)

// GameSetupUI provides a form for configuring a new game.
type GameSetupUI struct {
	form *tview.Form
	flex *tview.Flex
	game config.GameConfig
}

// NewGameSetup creates a new game setup form seeded with defaults.
func NewGameSetup(defaults config.GameConfig, onStart func(config.GameConfig), onCancel, onColors, onHistory func()) *GameSetupUI {
	setup := &GameSetupUI{game: defaults}

	boardSizes := BoardSizes()
	sizeLabels := make([]string, len(boardSizes))
	sizeIndex := 0
	for i, n := range boardSizes {
		sizeLabels[i] = sizeLabel(n)
		if n == defaults.BoardSize {
			sizeIndex = i
		}
	}
	firstIndex := 0
	if strings.EqualFold(defaults.FirstTurn, "white") {
		firstIndex = 1
	}

	form := tview.NewForm()

	form.AddDropDown("Board Size", sizeLabels, sizeIndex, func(option string, index int) {
		setup.game.BoardSize = boardSizes[index]
	})

	form.AddDropDown("First Move", []string{"Black", "White"}, firstIndex, func(option string, index int) {
		setup.game.FirstTurn = strings.ToLower(option)
	})

	form.AddInputField("Black", defaults.BlackName, 20, nil, func(text string) {
		setup.game.BlackName = text
	})

	form.AddInputField("White", defaults.WhiteName, 20, nil, func(text string) {
		setup.game.WhiteName = text
	})

	form.AddCheckbox("Record Game", defaults.RecordGames, func(checked bool) {
		setup.game.RecordGames = checked
	})

	form.AddButton("Start Game", func() {
		onStart(setup.game)
	})

	form.AddButton("History", func() {
		if onHistory != nil {
			onHistory()
		}
	})

	form.AddButton("Board Color", func() {
		if onColors != nil {
			onColors()
		}
	})

	form.AddButton("Quit", func() {
		onCancel()
	})

	form.SetBorder(true)
	form.SetTitle(" New Game ")
	form.SetTitleAlign(tview.AlignCenter)
	form.SetBorderColor(MenuColors.Border)
	form.SetLabelColor(MenuColors.Label)
	form.SetButtonBackgroundColor(MenuColors.ButtonBG)
	form.SetButtonTextColor(MenuColors.ButtonText)

	helpText := tview.NewTextView().
		SetText("Tab/Shift+Tab: navigate fields  |  Arrow keys: change dropdown  |  Enter: confirm").
		SetTextAlign(tview.AlignCenter)
	helpText.SetTextColor(MenuColors.Hint)

	flex := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(form, 0, 1, true).
		AddItem(helpText, 1, 0, false)

	setup.form = form
	setup.flex = flex
	return setup
}

// BoardSizes lists every size a game can be played on.
func BoardSizes() []int {
	var sizes []int
	for n := 4; n <= match.MaxSize; n += 2 {
		sizes = append(sizes, n)
	}
	return sizes
}

func sizeLabel(n int) string {
	return fmt.Sprintf("%dx%d", n, n)
}

// Form returns the flex container with form and help text.
func (s *GameSetupUI) Form() *tview.Flex {
	return s.flex
}

// Game returns the options currently entered in the form.
func (s *GameSetupUI) Game() config.GameConfig {
	return s.game
}

// SetInputCapture sets the input capture function for the form.
func (s *GameSetupUI) SetInputCapture(capture func(event *tcell.EventKey) *tcell.EventKey) {
	s.form.SetInputCapture(capture)
}
