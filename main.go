// Game-Othello is a two player Othello board for the terminal.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/Zdifah/Game-Othello/config"
	"github.com/Zdifah/Game-Othello/console"
	"github.com/Zdifah/Game-Othello/ui"
)

// Version is set at build time via ldflags
var Version = "dev"

// Command-line flags
var (
	flagBoardSize  = flag.Int("boardsize", 0, "Board size (even, at least 4)")
	flagFirst      = flag.String("first", "", "Colour that moves first (black or white)")
	flagBlack      = flag.String("black", "", "Name of the Black player")
	flagWhite      = flag.String("white", "", "Name of the White player")
	flagNoRecord   = flag.Bool("norecord", false, "Do not save the game as SGF")
	flagSpectate   = flag.String("spectate", "", "Serve a read-only view of the game on this address, e.g. :8080")
	flagPlain      = flag.Bool("plain", false, "Play on stdin/stdout instead of the full screen UI")
	flagQuickStart = flag.Bool("play", false, "Start game immediately with defaults")
	flagFocus      = flag.Bool("focus", false, "Start in focus mode (board only)")
	flagVersion    = flag.Bool("version", false, "Print version and exit")
)

var app *tview.Application
var rootPage *tview.Pages
var gameBoard *ui.BoardUI
var gameFrame *tview.Flex
var gameHint *tview.TextView
var cfg *config.Config
var logger *log.Logger
var current *session

func main() {
	flag.Parse()

	if *flagVersion {
		fmt.Printf("othello %s\n", Version)
		return
	}

	var err error
	cfg, err = config.InitConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logFile := openLog(cfg)
	if logFile != nil {
		defer logFile.Close()
	}

	if *flagPlain {
		if err := runPlain(cfg.Game); err != nil && !errors.Is(err, console.ErrAborted) {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}
	runTUI()
}

// applyFlags overrides the configured game defaults with command-line flags.
func applyFlags(c *config.Config) {
	if *flagBoardSize != 0 {
		c.Game.BoardSize = *flagBoardSize
	}
	if *flagFirst != "" {
		c.Game.FirstTurn = *flagFirst
	}
	if *flagBlack != "" {
		c.Game.BlackName = *flagBlack
	}
	if *flagWhite != "" {
		c.Game.WhiteName = *flagWhite
	}
	if *flagNoRecord {
		c.Game.RecordGames = false
	}
	if *flagSpectate != "" {
		c.Spectate.Addr = *flagSpectate
	}
}

// openLog points the package logger at the log file. Logging is dropped when
// the file can not be opened.
func openLog(c *config.Config) *os.File {
	logger = log.New(io.Discard, "", 0)
	path, err := c.LogPath()
	if err != nil {
		return nil
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil
	}
	logger = log.New(f, "", log.Ltime|log.Lmicroseconds)
	return f
}

func runPlain(gc config.GameConfig) error {
	s, err := newSession(gc, cfg.Spectate.Addr, logger)
	if err != nil {
		return err
	}
	defer s.Close()

	sym := console.DefaultSymbols
	r := console.NewRenderer(os.Stdout, s.ctrl.Game(), sym)
	s.ctrl.Game().Subscribe(r)
	if err := s.ctrl.Start(); err != nil {
		return err
	}
	return console.Run(s.ctrl, os.Stdin, os.Stdout)
}

func runTUI() {
	quickStart := *flagQuickStart || *flagFocus

	app = tview.NewApplication()
	rootPage = tview.NewPages()
	rootPage.SetBorder(true).SetTitle(" ● othello ")

	// Game view setup
	gameHint = tview.NewTextView()
	gameHint.SetBorder(true)
	gameHint.SetBorderPadding(0, 0, 1, 1)
	gameHint.SetTitle(" Status ")
	gameHint.SetTitleAlign(tview.AlignLeft)
	gameBoard = ui.NewBoard(cfg, gameHint)

	gameFrame = ui.CreateGameLayout(gameBoard, gameHint)

	// Game board input handling
	gameBoard.Box.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyRune && event.Rune() == 'q' {
			if gameBoard.SelectedTile() != nil {
				gameBoard.ResetSelection()
			} else {
				endGame()
				rootPage.SwitchToPage("setup")
			}
			return nil
		}
		switch event.Key() {
		case tcell.KeyUp:
			gameBoard.MoveSelection(-1, 0)
		case tcell.KeyDown:
			gameBoard.MoveSelection(1, 0)
		case tcell.KeyLeft:
			gameBoard.MoveSelection(0, -1)
		case tcell.KeyRight:
			gameBoard.MoveSelection(0, 1)
		case tcell.KeyEnter:
			selTile := gameBoard.SelectedTile()
			if selTile == nil {
				return nil
			}
			gameBoard.PlayMove(*selTile)
		case tcell.KeyRune:
			switch event.Rune() {
			case 'h':
				gameBoard.MoveSelection(0, -1)
			case 'j':
				gameBoard.MoveSelection(1, 0)
			case 'k':
				gameBoard.MoveSelection(-1, 0)
			case 'l':
				gameBoard.MoveSelection(0, 1)
			case 'p':
				gameBoard.Pass()
			case 'f':
				if gameBoard.ToggleFocusMode() {
					ui.BuildFocusLayout(gameFrame, gameBoard)
				} else {
					ui.RebuildNormalLayout(gameFrame, gameBoard, gameHint)
				}
			}
		}
		return event
	})

	// History screen
	historyDir, err := config.HistoryDir()
	if err != nil {
		logger.Printf("WARN history unavailable: %s", err)
	}
	history := ui.NewHistoryBrowser(cfg, historyDir, func() {
		rootPage.SwitchToPage("setup")
	})

	// Game setup screen
	setupUI := ui.NewGameSetup(cfg.Game,
		func(gc config.GameConfig) {
			startGame(gc)
		},
		func() {
			app.Stop()
		},
		func() {
			rootPage.SwitchToPage("colors")
		},
		func() {
			history.Refresh()
			rootPage.SwitchToPage("history")
		},
	)

	// Color configuration screen
	colorConfig := ui.NewColorConfig(cfg, func() {
		gameBoard.SetConfig(cfg)
		rootPage.SwitchToPage("setup")
	})
	colorConfig.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEsc || (event.Key() == tcell.KeyRune && event.Rune() == 'q') {
			rootPage.SwitchToPage("setup")
			return nil
		}
		if event.Key() == tcell.KeyTab {
			colorConfig.ToggleMode()
			return nil
		}
		return event
	})

	rootPage.AddPage("setup", ui.CreateCenteredForm(setupUI.Form(), 60), true, !quickStart)
	rootPage.AddPage("gameview", gameFrame, true, quickStart)
	rootPage.AddPage("colors", colorConfig.Flex(), true, false)
	rootPage.AddPage("history", history.Flex(), true, false)

	if quickStart {
		startGame(cfg.Game)
		if *flagFocus {
			gameBoard.SetFocusMode(true)
			ui.BuildFocusLayout(gameFrame, gameBoard)
		}
	}

	err = app.SetRoot(rootPage, true).Run()
	endGame()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// startGame replaces the running game with a new one built from gc.
func startGame(gc config.GameConfig) {
	endGame()

	s, err := newSession(gc, cfg.Spectate.Addr, logger)
	if err == nil {
		gameBoard.ConnectMatch(s.ctrl)
		err = s.ctrl.Start()
		if err != nil {
			gameBoard.Disconnect()
			s.Close()
		}
	}
	if err != nil {
		modal := tview.NewModal().
			SetText(fmt.Sprintf("Failed to start game:\n%s", err.Error())).
			AddButtons([]string{"OK"}).
			SetDoneFunc(func(buttonIndex int, buttonLabel string) {
				rootPage.RemovePage("error")
			})
		rootPage.AddPage("error", modal, true, true)
		return
	}
	current = s
	logger.Printf("new %dx%d game, %s vs %s", gc.BoardSize, gc.BoardSize, gc.BlackName, gc.WhiteName)
	rootPage.SwitchToPage("gameview")
}

func endGame() {
	if current == nil {
		return
	}
	gameBoard.Disconnect()
	current.Close()
	current = nil
}
