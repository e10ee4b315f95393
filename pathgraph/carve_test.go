package pathgraph

import (
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/cavegen/cave"
)

func TestJitter(t *testing.T) {
	tests := []struct {
		name      string
		distance  float64
		deviation float64
		draw      float64
		want      float64
	}{
		{"no deviation", 8, 0, 0.9, 8},
		{"mid draw is identity", 8, 0.7, 0.5, 8},
		{"low draw shrinks", 10, 0.5, 0, 5},
		{"high draw grows", 10, 0.5, 0.75, 12.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Jitter(tt.distance, tt.deviation, cave.NewSequenceRand(tt.draw))
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestCarveNodes_Disc(t *testing.T) {
	g := cave.NewGrid(21, 21)
	path := Path{Nodes: []Node{{Coords: cave.Point{X: 10, Y: 10}, Type: NodeStart, Diameter: 3}}}

	out := CarveNodes(g, path, 0, cave.NewSequenceRand(0.5))

	assert.Equal(t, cave.Empty, out.At(10, 10))
	assert.Equal(t, cave.Empty, out.At(12, 10))
	assert.Equal(t, cave.Empty, out.At(11, 11))
	assert.Equal(t, cave.Wall, out.At(13, 10), "distance equal to diameter stays wall")
	assert.Equal(t, cave.Wall, out.At(13, 12))
	assert.True(t, out.BorderIntact())
	assert.Equal(t, cave.Wall, g.At(10, 10), "input untouched")
}

func TestCarveNodes_BorderSurvivesLargeRoom(t *testing.T) {
	g := cave.NewGrid(12, 12)
	path := Path{Nodes: []Node{{Coords: cave.Point{X: 6, Y: 6}, Diameter: 50}}}

	out := CarveNodes(g, path, 0.7, rand.New(rand.NewSource(4)))
	assert.True(t, out.BorderIntact())
	assert.Equal(t, 12*4-4, out.WallCount(), "only the border remains")
}

func TestCarveEdges_StraightTunnel(t *testing.T) {
	g := cave.NewGrid(32, 21)
	path := Path{
		Nodes: []Node{
			{Coords: cave.Point{X: 5, Y: 10}, Type: NodeStart},
			{Coords: cave.Point{X: 25, Y: 10}, Type: NodeEnd},
		},
		Edges: []Edge{{Start: 0, End: 1, WidthModifier: 2, FreqModifier: 0, AmplModifier: 0}},
	}

	out, err := CarveEdges(g, path, 0, cave.NewSequenceRand(0.5))
	require.NoError(t, err)

	for x := 5; x <= 25; x++ {
		assert.Equal(t, cave.Empty, out.At(x, 10), "centre (%d,10)", x)
		assert.Equal(t, cave.Empty, out.At(x, 11), "(%d,11)", x)
		assert.Equal(t, cave.Empty, out.At(x, 9), "(%d,9)", x)
		assert.Equal(t, cave.Wall, out.At(x, 12), "offset equal to width stays wall")
	}
	assert.Equal(t, cave.Wall, out.At(4, 10), "no carving before the start node")
	assert.Equal(t, cave.Wall, out.At(26, 10), "no carving past the end node")
}

func TestCarveEdges_SineCentreline(t *testing.T) {
	g := cave.NewGrid(60, 40)
	path := Path{
		Nodes: []Node{
			{Coords: cave.Point{X: 5, Y: 20}},
			{Coords: cave.Point{X: 55, Y: 20}},
		},
		// Quarter period at along = pi/2 / 0.1 ~ 15.7 puts the centre 8 cells off axis
		Edges: []Edge{{Start: 0, End: 1, WidthModifier: 1, FreqModifier: 0.1, AmplModifier: 8}},
	}

	out, err := CarveEdges(g, path, 0, cave.NewSequenceRand(0.5))
	require.NoError(t, err)

	assert.Equal(t, cave.Empty, out.At(5, 20), "sin(0) = 0 at the start")
	assert.Equal(t, cave.Empty, out.At(21, 28), "peak of the wave")
	assert.Equal(t, cave.Wall, out.At(21, 20), "axis is solid at the peak")
}

func TestCarveEdges_SequentialUnion(t *testing.T) {
	g := cave.NewGrid(40, 30)
	path := Path{
		Nodes: []Node{
			{Coords: cave.Point{X: 5, Y: 5}},
			{Coords: cave.Point{X: 20, Y: 5}},
			{Coords: cave.Point{X: 20, Y: 25}},
		},
		Edges: []Edge{
			{Start: 0, End: 1, WidthModifier: 1.5},
			{Start: 1, End: 2, WidthModifier: 1.5},
		},
	}

	out, err := CarveEdges(g, path, 0, cave.NewSequenceRand(0.5))
	require.NoError(t, err)

	assert.Equal(t, cave.Empty, out.At(10, 5), "first edge kept")
	assert.Equal(t, cave.Empty, out.At(20, 15), "second edge carved")
	assert.True(t, cave.Reachable(out, cave.Point{X: 5, Y: 5}, cave.Point{X: 20, Y: 25}))
}

func TestCarveEdges_ZeroLength(t *testing.T) {
	g := cave.NewGrid(20, 20)
	path := Path{
		Nodes: []Node{{Coords: cave.Point{X: 5, Y: 5}}, {Coords: cave.Point{X: 5, Y: 5}}},
		Edges: []Edge{{Start: 0, End: 1, WidthModifier: 3}},
	}

	out, err := CarveEdges(g, path, 0.7, cave.NewSequenceRand(0.5))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrZeroLengthEdge))
	assert.True(t, out.Equal(g), "failed carve returns the input grid")
}

func TestCarve_GeneratedPathConnectsStartToEnd(t *testing.T) {
	// Keep the wave shallower than the tunnel half-width so every band covers
	// both of its node centres
	cfg := DefaultConfig()
	cfg.EdgeAmpl = Range{Min: 0, Max: 1}

	rng := rand.New(rand.NewSource(99))
	path, err := Generate(200, 80, cfg, rng)
	require.NoError(t, err)

	g := cave.NewGrid(200, 80)
	g = CarveNodes(g, path, 0, rng)
	g, err = CarveEdges(g, path, 0, rng)
	require.NoError(t, err)

	assert.True(t, g.BorderIntact())
	assert.True(t, cave.Reachable(g, path.Start().Coords, path.End().Coords))
}
