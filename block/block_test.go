package block

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/cavegen/cave"
	"github.com/lixenwraith/cavegen/ident"
)

func rect(id, x1, y1, x2, y2 int) WallBlock {
	return WallBlock{ID: id, LeftTop: cave.Point{X: x1, Y: y1}, RightBottom: cave.Point{X: x2, Y: y2}}
}

func randomCave(seed int64, w, h int) cave.Grid {
	rng := rand.New(rand.NewSource(seed))
	return cave.Smooth(cave.NoiseFill(w, h, 0.39, rng), 4, 2)
}

func TestExtract_SingleInteriorRectangle(t *testing.T) {
	g := cave.NewGrid(10, 10)
	g.Fill(cave.Empty)
	for y := 1; y <= 8; y++ {
		for x := 1; x <= 8; x++ {
			g.Set(x, y, cave.Wall)
		}
	}

	blocks := Extract(g, ident.NewSource(0))
	require.Len(t, blocks, 1)
	assert.Equal(t, cave.Point{X: 1, Y: 1}, blocks[0].LeftTop)
	assert.Equal(t, cave.Point{X: 8, Y: 8}, blocks[0].RightBottom)

	merged := Merge(blocks)
	assert.Equal(t, blocks, merged)
}

func TestExtract_GreedyShape(t *testing.T) {
	g := cave.ParseGrid(
		"###.",
		"#...",
		"##.#",
	)
	blocks := Extract(g, ident.NewSource(10))

	require.Len(t, blocks, 4)
	assert.Equal(t, rect(10, 0, 0, 2, 0), blocks[0])
	assert.Equal(t, rect(11, 0, 1, 0, 2), blocks[1], "second row grows down through the third")
	assert.Equal(t, rect(12, 1, 2, 1, 2), blocks[2])
	assert.Equal(t, rect(13, 3, 2, 3, 2), blocks[3])
}

func TestExtract_AllWallGrid(t *testing.T) {
	blocks := Extract(cave.NewGrid(7, 4), ident.NewSource(0))
	require.Len(t, blocks, 1)
	assert.Equal(t, 28, blocks[0].Area())
}

func TestExtract_CoverageRoundTrip(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		g := randomCave(seed, 60, 40)
		blocks := Extract(g, ident.NewSource(0))

		_, _, overlap := Overlapping(blocks)
		require.False(t, overlap, "seed %d", seed)
		assert.Equal(t, g.WallCount(), CoveredCells(blocks))
		assert.True(t, Rasterize(g.Width, g.Height, blocks).Equal(g), "seed %d", seed)

		ids := make(map[int]bool)
		for _, b := range blocks {
			require.False(t, ids[b.ID], "duplicate id %d", b.ID)
			ids[b.ID] = true
			assert.LessOrEqual(t, b.LeftTop.X, b.RightBottom.X)
			assert.LessOrEqual(t, b.LeftTop.Y, b.RightBottom.Y)
		}
	}
}

func TestMerge_TwoVerticalStrips(t *testing.T) {
	blocks := []WallBlock{rect(1, 2, 1, 2, 5), rect(2, 3, 1, 3, 5)}

	merged := Merge(blocks)
	require.Len(t, merged, 1)
	assert.Equal(t, rect(1, 2, 1, 3, 5), merged[0])
	assert.Equal(t, 10, merged[0].Area())
	assert.Len(t, blocks, 2, "input untouched")
}

func TestMerge_VerticalAdjacency(t *testing.T) {
	merged := Merge([]WallBlock{rect(5, 4, 6, 8, 7), rect(3, 4, 2, 8, 5)})
	require.Len(t, merged, 1)
	assert.Equal(t, rect(5, 4, 2, 8, 7), merged[0])
}

func TestMerge_RequiresFullEdge(t *testing.T) {
	tests := []struct {
		name   string
		blocks []WallBlock
	}{
		{"different heights", []WallBlock{rect(1, 0, 0, 1, 3), rect(2, 2, 0, 3, 2)}},
		{"gap between", []WallBlock{rect(1, 0, 0, 1, 3), rect(2, 3, 0, 4, 3)}},
		{"offset columns", []WallBlock{rect(1, 0, 0, 2, 1), rect(2, 1, 2, 3, 3)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, Merge(tt.blocks), 2)
		})
	}
}

func TestMerge_ChainsToFixpoint(t *testing.T) {
	// Four 1x2 strips in a row collapse into one 4x2 block, even out of order
	blocks := []WallBlock{
		rect(1, 0, 0, 0, 1),
		rect(2, 3, 0, 3, 1),
		rect(3, 1, 0, 1, 1),
		rect(4, 2, 0, 2, 1),
	}
	m := Merger{DropSingles: true}
	merged := m.Merge(blocks)

	require.Len(t, merged, 1)
	assert.Equal(t, rect(1, 0, 0, 3, 1), merged[0])
	assert.Equal(t, 3, m.Merges)
	assert.GreaterOrEqual(t, m.Passes, 2, "last pass finds nothing")
}

func TestMerge_DropsSingles(t *testing.T) {
	blocks := []WallBlock{rect(1, 0, 0, 0, 0), rect(2, 1, 0, 1, 0), rect(3, 5, 5, 6, 5)}

	assert.Equal(t, []WallBlock{rect(3, 5, 5, 6, 5)}, Merge(blocks))

	keep := Merger{}
	kept := keep.Merge(blocks)
	require.Len(t, kept, 2)
	assert.Equal(t, rect(1, 0, 0, 1, 0), kept[0])
}

func TestMerge_PreservesCoverageAndIdempotent(t *testing.T) {
	for seed := int64(20); seed < 30; seed++ {
		g := randomCave(seed, 64, 48)
		extracted := Extract(g, ident.NewSource(0))

		keep := Merger{}
		merged := keep.Merge(extracted)

		_, _, overlap := Overlapping(merged)
		require.False(t, overlap, "seed %d", seed)
		assert.LessOrEqual(t, len(merged), len(extracted))
		assert.True(t, Rasterize(g.Width, g.Height, merged).Equal(g), "seed %d", seed)

		again := keep.Merge(merged)
		assert.Equal(t, merged, again, "merging is idempotent")
		assert.Equal(t, 0, keep.Merges)

		dropped := Merge(extracted)
		assert.Equal(t, dropped, Merge(dropped))
		for _, b := range dropped {
			assert.False(t, b.Single())
		}
	}
}

func TestWallBlock_Geometry(t *testing.T) {
	b := rect(1, 2, 3, 5, 4)
	assert.Equal(t, 4, b.Width())
	assert.Equal(t, 2, b.Height())
	assert.True(t, b.Contains(cave.Point{X: 5, Y: 4}))
	assert.False(t, b.Contains(cave.Point{X: 6, Y: 4}))

	assert.True(t, b.IntersectsBox(5, 4, 10, 10), "touching the box's top-left cell")
	assert.False(t, b.IntersectsBox(6, 0, 10, 10))
	assert.False(t, b.IntersectsBox(0, 0, 2, 10), "right bound is exclusive")

	assert.True(t, b.Intersects(rect(2, 5, 4, 9, 9)))
	assert.False(t, b.Intersects(rect(2, 6, 4, 9, 9)))
	assert.Equal(t, "#1[(2,3)-(5,4)]", b.String())
}
