package world

import (
	"github.com/lixenwraith/cavegen/block"
	"github.com/lixenwraith/cavegen/cave"
	"github.com/lixenwraith/cavegen/pathgraph"
	"github.com/lixenwraith/cavegen/segment"
)

// Cell returns the grid cell at (x, y); outside the world reads as wall
func (w *World) Cell(x, y int) cave.Cell {
	return w.Grid.At(x, y)
}

// Nodes returns the path nodes in order
func (w *World) Nodes() []pathgraph.Node {
	return w.Path.Nodes
}

// Edges returns the path edges in order
func (w *World) Edges() []pathgraph.Edge {
	return w.Path.Edges
}

// Start returns the start node's coordinates
func (w *World) Start() cave.Point {
	return w.Path.Start().Coords
}

// End returns the end node's coordinates
func (w *World) End() cave.Point {
	return w.Path.End().Coords
}

// Segment returns the segment at index i
func (w *World) Segment(i int) *segment.Segment {
	return &w.Layout.Segments[i]
}

// SegmentBlocks resolves the blocks listed by segment i
func (w *World) SegmentBlocks(i int) []block.WallBlock {
	idx := w.Layout.Segments[i].Blocks
	out := make([]block.WallBlock, len(idx))
	for k, b := range idx {
		out[k] = w.Blocks[b]
	}
	return out
}

// NewStreamer starts streaming at the start segment
func (w *World) NewStreamer() *segment.Streamer {
	return segment.NewStreamer(&w.Layout, w.StartSegment)
}
