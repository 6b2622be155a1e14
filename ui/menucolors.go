package ui

import "github.com/gdamore/tcell/v2"

// MenuColors defines the palette for the menu screens.
var MenuColors = struct {
	Border      tcell.Color
	BorderFocus tcell.Color
	Label       tcell.Color
	Hint        tcell.Color
	ButtonBG    tcell.Color
	ButtonFocus tcell.Color
	ButtonText  tcell.Color
}{
	Border:      tcell.PaletteColor(65),  // muted green
	BorderFocus: tcell.PaletteColor(114), // bright green
	Label:       tcell.PaletteColor(250), // light gray
	Hint:        tcell.PaletteColor(245), // dim gray
	ButtonBG:    tcell.PaletteColor(22),  // board green
	ButtonFocus: tcell.PaletteColor(28),
	ButtonText:  tcell.PaletteColor(255),
}
