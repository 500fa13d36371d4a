package core

// Color represents a foreground color for a screen cell.
// The platform maps each value to an ANSI 256-color code.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorPurple
	ColorOrange
	ColorWhite
	ColorGray
	ColorDim
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
)

// TileColors lists the puzzle palette in color-index order:
// Red, Yellow, Green, Blue, Purple, Orange.
var TileColors = []Color{
	ColorRed,
	ColorYellow,
	ColorGreen,
	ColorBlue,
	ColorPurple,
	ColorOrange,
}

// TileColor maps a puzzle color index to a screen color.
func TileColor(index int) Color {
	if index < 0 || index >= len(TileColors) {
		return ColorGray
	}
	return TileColors[index]
}
