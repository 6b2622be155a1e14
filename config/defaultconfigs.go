package config

var DefaultConfig Config
var DefaultTheme Theme

func init() {
	DefaultTheme = Theme{
		DrawDiscBackground:       false,
		DrawCursorBackground:     true,
		DrawLastPlayedBackground: true,
		DrawFlippedBackground:    false,
		ShowLegalMoves:           true,
		FullWidthLetters:         false,
		Colors: ConfigColors{
			BoardColor:        28,
			BoardColorAlt:     22,
			BlackColor:        232,
			WhiteColor:        255,
			LineColor:         22,
			HintColor:         148,
			FlippedColorBG:    64,
			CursorColorFG:     2,
			CursorColorBG:     4,
			LastPlayedColorBG: 2,
		},
		Symbols: ConfigSymbols{
			BlackDisc:   '●',
			WhiteDisc:   '●',
			BoardSquare: '·',
			LegalHint:   '∘',
			Cursor:      '·',
		},
	}

	DefaultConfig = Config{
		Theme: DefaultTheme,
		Game: GameConfig{
			BoardSize:   8,
			FirstTurn:   "black",
			BlackName:   "Black",
			WhiteName:   "White",
			RecordGames: true,
		},
	}
}
