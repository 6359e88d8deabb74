package core

// Color represents a foreground color for a screen cell.
// The platform layer maps these to ANSI 256-color codes.
type Color uint8

// Colors used by the intersection view. Vehicles take the bright variants,
// roads and markings the dim ones.
const (
	ColorDefault Color = iota
	ColorRed           // Red light
	ColorGreen
	ColorYellow // Center lines
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed    // Ambulance
	ColorBrightGreen  // Green light
	ColorBrightYellow // Government
	ColorBrightBlue   // Police
	ColorBrightWhite  // Regular traffic
	ColorOrange       // Wrecks
	ColorGray         // Intersection box, help text
	ColorDarkGray     // Road surface

	numColors
)

// NumColors is the number of defined colors.
const NumColors = int(numColors)

// Valid reports whether c is a defined color.
func (c Color) Valid() bool {
	return c < numColors
}
