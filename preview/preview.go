// Package preview draws generated worlds, either into a tcell screen for the
// interactive viewer or as plain text
package preview

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/cavegen/cave"
	"github.com/lixenwraith/cavegen/parameter/visual"
	"github.com/lixenwraith/cavegen/pathgraph"
	"github.com/lixenwraith/cavegen/world"
)

// Glyphs shared by both renderers
const (
	GlyphWall    = '#'
	GlyphEmpty   = ' '
	GlyphStart   = 'S'
	GlyphEnd     = 'E'
	GlyphRefuel  = 'R'
	GlyphNode    = 'o'
	GlyphRoute   = '.'
	GlyphSegment = '+'
	GlyphProbe   = '@'
)

// Options selects the overlays drawn on top of the grid
type Options struct {
	Nodes    bool
	Route    bool
	Segments bool
}

// NodeGlyph returns the marker for a node type
func NodeGlyph(t pathgraph.NodeType) rune {
	switch t {
	case pathgraph.NodeStart:
		return GlyphStart
	case pathgraph.NodeEnd:
		return GlyphEnd
	case pathgraph.NodeRefuel:
		return GlyphRefuel
	}
	return GlyphNode
}

// Overlay computes the overlay glyph per cell, keyed by point
// Nodes win over the route, the route over segment borders
func Overlay(w *world.World, opts Options) map[cave.Point]rune {
	marks := make(map[cave.Point]rune)

	if opts.Segments {
		for _, s := range w.Layout.Segments {
			for x := s.LeftX; x < s.RightX; x++ {
				marks[cave.Point{X: x, Y: s.TopY}] = GlyphSegment
			}
			for y := s.TopY; y < s.BottomY; y++ {
				marks[cave.Point{X: s.LeftX, Y: y}] = GlyphSegment
			}
		}
	}
	if opts.Route {
		for _, p := range cave.Solve(w.Grid, w.Start(), w.End()) {
			marks[p] = GlyphRoute
		}
	}
	if opts.Nodes {
		for _, n := range w.Nodes() {
			marks[n.Coords] = NodeGlyph(n.Type)
		}
	}
	return marks
}

// ASCII renders the world one text line per grid row. Segment borders only
// show on empty cells so the wall shape stays readable
func ASCII(w *world.World, opts Options) string {
	marks := Overlay(w, opts)

	var sb strings.Builder
	sb.Grow((w.Width + 1) * w.Height)
	for y := 0; y < w.Height; y++ {
		for x := 0; x < w.Width; x++ {
			p := cave.Point{X: x, Y: y}
			wall := w.Grid.IsWall(x, y)
			mark, ok := marks[p]
			switch {
			case ok && mark == GlyphSegment && wall:
				sb.WriteRune(GlyphWall)
			case ok:
				sb.WriteRune(mark)
			case wall:
				sb.WriteRune(GlyphWall)
			default:
				sb.WriteRune(GlyphEmpty)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// View is the viewport and overlay state of the interactive viewer
type View struct {
	Options

	// OffsetX, OffsetY is the world cell drawn at the screen's top-left
	OffsetX, OffsetY int

	Probe      cave.Point
	ShowBlocks bool

	// Wall and Background are 0xRRGGBB
	Wall       uint32
	Background uint32

	// Loaded marks segment indices currently streamed in
	Loaded []int
}

// Center moves the viewport so the probe sits mid-screen
func (v *View) Center(screenW, screenH int) {
	v.OffsetX = v.Probe.X - screenW/2
	v.OffsetY = v.Probe.Y - screenH/2
}

// Draw renders the visible part of the world into rows [0, rows) of s
// Cells outside the world are cleared
func Draw(s tcell.Screen, w *world.World, v View, rows int) {
	sw, sh := s.Size()
	rows = min(rows, sh)

	wallStyle := tcell.StyleDefault.Background(hexColor(v.Wall)).Foreground(hexColor(v.Wall))
	emptyStyle := tcell.StyleDefault.Background(hexColor(v.Background)).Foreground(visual.RgbText)
	dimStyle := emptyStyle.Background(visual.RgbUnloaded)
	outside := tcell.StyleDefault

	marks := Overlay(w, v.Options)

	var owner []int
	if v.ShowBlocks {
		owner = blockOwners(w)
	}

	loaded := make(map[int]bool, len(v.Loaded))
	for _, i := range v.Loaded {
		loaded[i] = true
	}

	for sy := 0; sy < rows; sy++ {
		for sx := 0; sx < sw; sx++ {
			x, y := v.OffsetX+sx, v.OffsetY+sy
			if !w.Grid.InBounds(x, y) {
				s.SetContent(sx, sy, ' ', nil, outside)
				continue
			}

			p := cave.Point{X: x, Y: y}
			if w.Grid.IsWall(x, y) {
				style := wallStyle
				if owner != nil {
					if b := owner[y*w.Width+x]; b >= 0 {
						shade := visual.BlockShades[b%len(visual.BlockShades)]
						style = style.Background(shade).Foreground(shade)
					}
				}
				s.SetContent(sx, sy, GlyphWall, nil, style)
				continue
			}

			style := emptyStyle
			if len(loaded) > 0 {
				if seg, err := w.Layout.Locate(p); err == nil && !loaded[seg] {
					style = dimStyle
				}
			}
			r := GlyphEmpty
			if mark, ok := marks[p]; ok {
				r = mark
				if mark == GlyphSegment || mark == GlyphRoute {
					style = style.Foreground(visual.RgbOverlay)
				} else {
					style = style.Foreground(visual.RgbMarker).Bold(true)
				}
			}
			s.SetContent(sx, sy, r, nil, style)
		}
	}

	px, py := v.Probe.X-v.OffsetX, v.Probe.Y-v.OffsetY
	if px >= 0 && px < sw && py >= 0 && py < rows {
		s.SetContent(px, py, GlyphProbe, nil, emptyStyle.Foreground(visual.RgbProbe).Bold(true))
	}
}

// DrawText writes a single line starting at (x, y), clipped to the screen
func DrawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	sw, _ := s.Size()
	for _, r := range text {
		if x >= sw {
			return
		}
		s.SetContent(x, y, r, nil, style)
		x++
	}
}

// blockOwners maps every cell to the index of the block covering it, -1 if none
func blockOwners(w *world.World) []int {
	owner := make([]int, w.Width*w.Height)
	for i := range owner {
		owner[i] = -1
	}
	for bi, b := range w.Blocks {
		for y := b.LeftTop.Y; y <= b.RightBottom.Y; y++ {
			for x := b.LeftTop.X; x <= b.RightBottom.X; x++ {
				owner[y*w.Width+x] = bi
			}
		}
	}
	return owner
}

func hexColor(rgb uint32) tcell.Color {
	return tcell.NewHexColor(int32(rgb & 0xffffff))
}
