package preview

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/cavegen/cave"
	"github.com/lixenwraith/cavegen/parameter/visual"
	"github.com/lixenwraith/cavegen/world"
)

func testWorld(t *testing.T) *world.World {
	t.Helper()
	w, err := world.GenerateSeeded(world.DefaultConfig(), 90, 70, 0.3, 1)
	require.NoError(t, err)
	return w
}

func TestASCII_PlainMatchesGrid(t *testing.T) {
	w := testWorld(t)

	want := strings.ReplaceAll(w.Grid.String(), ".", " ")
	assert.Equal(t, want, ASCII(w, Options{}))
}

func TestASCII_Overlays(t *testing.T) {
	w := testWorld(t)
	out := ASCII(w, Options{Nodes: true, Route: true, Segments: true})

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, w.Height)
	for _, line := range lines {
		require.Len(t, line, w.Width)
	}

	at := func(p cave.Point) byte { return lines[p.Y][p.X] }
	assert.Equal(t, byte(GlyphStart), at(w.Start()))
	assert.Equal(t, byte(GlyphEnd), at(w.End()))
	for _, n := range w.Nodes() {
		assert.Equal(t, byte(NodeGlyph(n.Type)), at(n.Coords))
	}

	route := cave.Solve(w.Grid, w.Start(), w.End())
	if len(route) > 2 {
		mid := route[len(route)/2]
		assert.Contains(t, []byte{GlyphRoute, GlyphStart, GlyphEnd, GlyphRefuel, GlyphNode}, at(mid))
	}

	// Segment borders replace empty cells only
	for y := 0; y < w.Height; y++ {
		for x := 0; x < w.Width; x++ {
			if lines[y][x] == GlyphSegment {
				assert.False(t, w.Grid.IsWall(x, y))
				assert.True(t, x%w.Layout.Size == 0 || y%w.Layout.Size == 0)
			}
		}
	}
}

func TestDraw_SimulationScreen(t *testing.T) {
	w := testWorld(t)

	s := tcell.NewSimulationScreen("")
	require.NoError(t, s.Init())
	defer s.Fini()
	s.SetSize(40, 20)

	v := View{
		Options:    Options{Nodes: true},
		Probe:      w.Start(),
		Wall:       0x582f0e,
		Background: 0x7f4f24,
	}
	v.Center(40, 20)
	Draw(s, w, v, 19)
	DrawText(s, 0, 19, tcell.StyleDefault, "status")

	r, _, _, _ := s.GetContent(20, 10)
	assert.Equal(t, GlyphProbe, r, "probe at centre")

	for sy := 0; sy < 19; sy++ {
		for sx := 0; sx < 40; sx++ {
			x, y := v.OffsetX+sx, v.OffsetY+sy
			if sx == 20 && sy == 10 {
				continue
			}
			got, _, _, _ := s.GetContent(sx, sy)
			switch {
			case !w.Grid.InBounds(x, y):
				assert.Equal(t, ' ', got)
			case w.Grid.IsWall(x, y):
				assert.Equal(t, GlyphWall, got, "(%d,%d)", x, y)
			}
		}
	}

	line := make([]rune, 6)
	for i := range line {
		line[i], _, _, _ = s.GetContent(i, 19)
	}
	assert.Equal(t, "status", string(line))
}

func TestDraw_BlocksAndLoaded(t *testing.T) {
	w := testWorld(t)

	s := tcell.NewSimulationScreen("")
	require.NoError(t, s.Init())
	defer s.Fini()
	s.SetSize(w.Width, w.Height)

	streamer := w.NewStreamer()
	v := View{
		Probe:      w.Start(),
		ShowBlocks: true,
		Loaded:     streamer.Loaded(),
		Wall:       0x4e4345,
		Background: 0x745d4d,
	}
	Draw(s, w, v, w.Height)

	for y := 0; y < w.Height; y++ {
		for x := 0; x < w.Width; x++ {
			if !w.Grid.IsWall(x, y) {
				continue
			}
			r, _, _, _ := s.GetContent(x, y)
			assert.Equal(t, GlyphWall, r)
		}
	}

	loaded := make(map[int]bool)
	for _, i := range v.Loaded {
		loaded[i] = true
	}
	for y := 0; y < w.Height; y++ {
		for x := 0; x < w.Width; x++ {
			p := cave.Point{X: x, Y: y}
			if w.Grid.IsWall(x, y) || p == v.Probe {
				continue
			}
			seg, err := w.Layout.Locate(p)
			require.NoError(t, err)
			_, _, style, _ := s.GetContent(x, y)
			_, bg, _ := style.Decompose()
			assert.Equal(t, !loaded[seg], bg == visual.RgbUnloaded, "(%d,%d) segment %d", x, y, seg)
		}
	}
}

func TestNodeGlyph(t *testing.T) {
	w := testWorld(t)
	nodes := w.Nodes()
	assert.Equal(t, GlyphStart, NodeGlyph(nodes[0].Type))
	assert.Equal(t, GlyphEnd, NodeGlyph(nodes[len(nodes)-1].Type))
}
