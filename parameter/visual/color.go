package visual

import "github.com/gdamore/tcell/v2"

// Viewer colors; world wall and background come from the level palette
var (
	RgbProbe   = tcell.NewRGBColor(255, 60, 60)
	RgbMarker  = tcell.NewRGBColor(255, 255, 0) // Node glyphs
	RgbOverlay = tcell.NewRGBColor(128, 128, 128)
	RgbText    = tcell.NewRGBColor(255, 255, 255)

	// RgbUnloaded tints empty cells of segments the streamer has not loaded
	RgbUnloaded = tcell.NewRGBColor(90, 90, 90)
)

// BlockShades cycle by block index so adjacent merged blocks stay distinct
var BlockShades = [4]tcell.Color{
	tcell.NewRGBColor(0x55, 0x55, 0x66),
	tcell.NewRGBColor(0x66, 0x55, 0x55),
	tcell.NewRGBColor(0x55, 0x66, 0x55),
	tcell.NewRGBColor(0x66, 0x66, 0x44),
}
