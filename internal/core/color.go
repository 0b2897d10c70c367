package core

// Color represents a foreground color for a screen cell.
// The renderer maps these to ANSI 256-color codes.
type Color uint8

// Predefined colors for playfield elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightCyan
	ColorOrange
	ColorGray
)

// MonsterPalette lists the colors monsters are drawn in.
var MonsterPalette = []Color{
	ColorGreen,
	ColorMagenta,
	ColorCyan,
	ColorOrange,
	ColorBrightYellow,
	ColorBrightGreen,
}
