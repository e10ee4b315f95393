// Package segment tiles a world into fixed-size squares, each carrying the
// wall blocks it overlaps and its Moore neighbours, for streaming geometry in
// and out around a moving point
package segment

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/lixenwraith/cavegen/block"
	"github.com/lixenwraith/cavegen/cave"
	"github.com/lixenwraith/cavegen/ident"
)

var (
	// ErrInvalidSize is returned for a non-positive segment size or world size
	ErrInvalidSize = errors.New("invalid segment layout size")

	// ErrPointOutside means no segment contains the point. The partition is
	// exhaustive, so for an in-bounds point this is a bounds computation bug
	ErrPointOutside = errors.New("point outside every segment")
)

// Segment is one tile of the partition; bounds are half-open
// [LeftX, RightX) x [TopY, BottomY)
type Segment struct {
	ID       int
	Col, Row int

	LeftX, RightX int
	TopY, BottomY int

	// Blocks indexes the world's block list; a block straddling a boundary is
	// listed by every segment it overlaps
	Blocks []int

	// Neighbours indexes Layout.Segments, up to 8, row-major order
	Neighbours []int
}

// Contains reports whether p lies inside the segment
func (s *Segment) Contains(p cave.Point) bool {
	return p.X >= s.LeftX && p.X < s.RightX && p.Y >= s.TopY && p.Y < s.BottomY
}

func (s *Segment) String() string {
	return fmt.Sprintf("segment %d (%d,%d) [%d,%d)x[%d,%d)", s.ID, s.Col, s.Row, s.LeftX, s.RightX, s.TopY, s.BottomY)
}

// Layout is the full partition; Segments is row-major: index = Row*Cols + Col
type Layout struct {
	Size          int
	Cols, Rows    int
	Width, Height int
	Segments      []Segment
}

// Partition divides a width x height world into ceil(width/size) x
// ceil(height/size) segments; the last column and row may be narrower
func Partition(width, height int, blocks []block.WallBlock, size int, ids *ident.Source) (Layout, error) {
	if size < 1 || width < 1 || height < 1 {
		return Layout{}, errors.Wrapf(ErrInvalidSize, "world %dx%d, segment size %d", width, height, size)
	}

	l := Layout{
		Size:   size,
		Cols:   (width + size - 1) / size,
		Rows:   (height + size - 1) / size,
		Width:  width,
		Height: height,
	}
	l.Segments = make([]Segment, 0, l.Cols*l.Rows)

	for row := 0; row < l.Rows; row++ {
		for col := 0; col < l.Cols; col++ {
			l.Segments = append(l.Segments, Segment{
				ID:      ids.Next(),
				Col:     col,
				Row:     row,
				LeftX:   col * size,
				RightX:  min((col+1)*size, width),
				TopY:    row * size,
				BottomY: min((row+1)*size, height),
			})
		}
	}

	for bi, b := range blocks {
		c0, c1 := clampIndex(b.LeftTop.X/size, l.Cols), clampIndex(b.RightBottom.X/size, l.Cols)
		r0, r1 := clampIndex(b.LeftTop.Y/size, l.Rows), clampIndex(b.RightBottom.Y/size, l.Rows)
		for row := r0; row <= r1; row++ {
			for col := c0; col <= c1; col++ {
				seg := &l.Segments[row*l.Cols+col]
				if b.IntersectsBox(seg.LeftX, seg.TopY, seg.RightX, seg.BottomY) {
					seg.Blocks = append(seg.Blocks, bi)
				}
			}
		}
	}

	for i := range l.Segments {
		seg := &l.Segments[i]
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				if idx, ok := l.Index(seg.Col+dx, seg.Row+dy); ok {
					seg.Neighbours = append(seg.Neighbours, idx)
				}
			}
		}
	}

	return l, nil
}

// Index returns the segment index for a column and row
func (l *Layout) Index(col, row int) (int, bool) {
	if col < 0 || col >= l.Cols || row < 0 || row >= l.Rows {
		return 0, false
	}
	return row*l.Cols + col, true
}

// Locate returns the index of the segment containing p
func (l *Layout) Locate(p cave.Point) (int, error) {
	if p.X >= 0 && p.Y >= 0 && l.Size > 0 {
		if idx, ok := l.Index(p.X/l.Size, p.Y/l.Size); ok && l.Segments[idx].Contains(p) {
			return idx, nil
		}
	}
	return 0, errors.Wrapf(ErrPointOutside, "point (%d,%d) in %dx%d world", p.X, p.Y, l.Width, l.Height)
}

// Adjacent reports whether segments a and b are Moore neighbours
func (l *Layout) Adjacent(a, b int) bool {
	for _, n := range l.Segments[a].Neighbours {
		if n == b {
			return true
		}
	}
	return false
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
