package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/Zdifah/Game-Othello/engine"
	"github.com/Zdifah/Game-Othello/match"
)

var (
	cfgFile    = "othello/config.json"
	historyDir = "othello/history"
	logFile    = "othello/othello.log"
)

type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("Config error: %s", e.err)
}

type ConfigColors struct {
	BoardColor        int `json:"board"`
	BoardColorAlt     int `json:"board_alt"`
	BlackColor        int `json:"black"`
	WhiteColor        int `json:"white"`
	LineColor         int `json:"line"`
	HintColor         int `json:"hint"`
	FlippedColorBG    int `json:"flipped_bg"`
	CursorColorFG     int `json:"cursor_fg"`
	CursorColorBG     int `json:"cursor_bg"`
	LastPlayedColorBG int `json:"last_played_bg"`
}

type ConfigSymbols struct {
	BlackDisc   rune `json:"black"`
	WhiteDisc   rune `json:"white"`
	BoardSquare rune `json:"board"`
	LegalHint   rune `json:"hint"`
	Cursor      rune `json:"cursor"`
}

type Theme struct {
	DrawDiscBackground       bool          `json:"draw_disc_bg"`
	DrawCursorBackground     bool          `json:"draw_cursor_bg"`
	DrawLastPlayedBackground bool          `json:"draw_last_played_bg"`
	DrawFlippedBackground    bool          `json:"draw_flipped_bg"`
	ShowLegalMoves           bool          `json:"show_legal_moves"`
	FullWidthLetters         bool          `json:"fullwidth_letters"`
	Colors                   ConfigColors  `json:"colors"`
	Symbols                  ConfigSymbols `json:"symbols"`
}

// GameConfig holds the defaults offered when a new game is set up.
type GameConfig struct {
	BoardSize   int    `json:"board_size"`
	FirstTurn   string `json:"first_turn"`
	BlackName   string `json:"black_name"`
	WhiteName   string `json:"white_name"`
	RecordGames bool   `json:"record_games"`
}

// SpectateConfig configures the read-only HTTP/WebSocket view of a game.
// An empty Addr disables it.
type SpectateConfig struct {
	Addr string `json:"addr"`
}

type LogConfig struct {
	Path string `json:"path"`
}

type Config struct {
	Theme    Theme          `json:"theme"`
	Game     GameConfig     `json:"game"`
	Spectate SpectateConfig `json:"spectate"`
	Log      LogConfig      `json:"log"`
}

func InitConfig() (*Config, error) {
	absPath, err := xdg.SearchConfigFile(cfgFile)
	if err != nil {
		absPath = ""
	}
	return load(absPath)
}

// load merges the file at path over DefaultConfig. An empty path or a missing
// file yields the defaults.
func load(path string) (*Config, error) {
	config := DefaultConfig
	if path != "" {
		if err := readCfgFile(path, &config); err != nil {
			return nil, err
		}
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) Validate() error {
	for _, r := range []rune{c.Theme.Symbols.BlackDisc, c.Theme.Symbols.WhiteDisc, c.Theme.Symbols.BoardSquare, c.Theme.Symbols.LegalHint} {
		if r < 32 || (r >= 127 && r <= 159) {
			return &InvalidConfig{"Unicode characters 1-31 and 127-159 are not allowed"}
		}
	}
	if c.Game.BoardSize < 4 || c.Game.BoardSize > match.MaxSize || c.Game.BoardSize%2 != 0 {
		return &InvalidConfig{fmt.Sprintf("board size %d must be even, from 4 to %d", c.Game.BoardSize, match.MaxSize)}
	}
	if _, err := engine.ParseDisc(c.Game.FirstTurn); err != nil {
		return &InvalidConfig{err.Error()}
	}
	return nil
}

func (c *Config) Save() error {
	absPath, err := xdg.ConfigFile(cfgFile)
	if err != nil {
		return err
	}
	return saveCfgFile(absPath, c, 0664)
}

// HistoryDir returns the directory recorded games are written to, creating
// it if needed.
func HistoryDir() (string, error) {
	dir := filepath.Join(xdg.DataHome, historyDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}

// LogPath returns the configured log file, or the default one in the XDG
// state directory.
func (c *Config) LogPath() (string, error) {
	if c.Log.Path != "" {
		if err := os.MkdirAll(filepath.Dir(c.Log.Path), 0755); err != nil {
			return "", err
		}
		return c.Log.Path, nil
	}
	return xdg.StateFile(logFile)
}

func saveCfgFile(filePath string, a interface{}, perm fs.FileMode) error {
	jsonData, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, jsonData, perm)
}

func readCfgFile(filePath string, a interface{}) error {
	configReader, err := os.ReadFile(filePath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if err = json.Unmarshal(configReader, a); err != nil {
		return &InvalidConfig{fmt.Sprintf("%s: %v", filePath, err)}
	}
	return nil
}
