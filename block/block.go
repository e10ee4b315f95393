// Package block turns a wall mask into a small set of axis-aligned rectangles
// for static collision geometry
package block

import (
	"fmt"

	"github.com/lixenwraith/cavegen/cave"
	"github.com/lixenwraith/cavegen/ident"
)

// WallBlock is an inclusive rectangle of wall cells
type WallBlock struct {
	ID          int
	LeftTop     cave.Point
	RightBottom cave.Point
}

// Width returns the number of columns covered
func (b WallBlock) Width() int { return b.RightBottom.X - b.LeftTop.X + 1 }

// Height returns the number of rows covered
func (b WallBlock) Height() int { return b.RightBottom.Y - b.LeftTop.Y + 1 }

// Area returns the number of cells covered
func (b WallBlock) Area() int { return b.Width() * b.Height() }

// Single reports whether the block is one cell
func (b WallBlock) Single() bool { return b.LeftTop == b.RightBottom }

// Contains reports whether p lies inside the block
func (b WallBlock) Contains(p cave.Point) bool {
	return p.X >= b.LeftTop.X && p.X <= b.RightBottom.X &&
		p.Y >= b.LeftTop.Y && p.Y <= b.RightBottom.Y
}

// Intersects reports whether two blocks share at least one cell
func (b WallBlock) Intersects(o WallBlock) bool {
	return b.LeftTop.X <= o.RightBottom.X && o.LeftTop.X <= b.RightBottom.X &&
		b.LeftTop.Y <= o.RightBottom.Y && o.LeftTop.Y <= b.RightBottom.Y
}

// IntersectsBox reports whether the block overlaps the half-open box
// [left, right) x [top, bottom)
func (b WallBlock) IntersectsBox(left, top, right, bottom int) bool {
	return b.LeftTop.X < right && b.RightBottom.X >= left &&
		b.LeftTop.Y < bottom && b.RightBottom.Y >= top
}

func (b WallBlock) String() string {
	return fmt.Sprintf("#%d[(%d,%d)-(%d,%d)]", b.ID, b.LeftTop.X, b.LeftTop.Y, b.RightBottom.X, b.RightBottom.Y)
}

// Extract partitions every wall cell into rectangles with a greedy row-major
// scan: grow right while cells are unvisited walls, then grow down while the
// whole current width stays unvisited wall. Each block gets a fresh id
func Extract(g cave.Grid, ids *ident.Source) []WallBlock {
	visited := make([]bool, g.Width*g.Height)
	free := func(x, y int) bool {
		return g.IsWall(x, y) && !visited[y*g.Width+x]
	}

	var blocks []WallBlock
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if !free(x, y) {
				continue
			}

			w := 1
			for x+w < g.Width && free(x+w, y) {
				w++
			}

			h := 1
		grow:
			for y+h < g.Height {
				for dx := 0; dx < w; dx++ {
					if !free(x+dx, y+h) {
						break grow
					}
				}
				h++
			}

			for dy := 0; dy < h; dy++ {
				for dx := 0; dx < w; dx++ {
					visited[(y+dy)*g.Width+x+dx] = true
				}
			}

			blocks = append(blocks, WallBlock{
				ID:          ids.Next(),
				LeftTop:     cave.Point{X: x, Y: y},
				RightBottom: cave.Point{X: x + w - 1, Y: y + h - 1},
			})
		}
	}
	return blocks
}

// Rasterize paints blocks onto an otherwise empty grid
func Rasterize(width, height int, blocks []WallBlock) cave.Grid {
	g := cave.NewGrid(width, height)
	g.Fill(cave.Empty)
	for _, b := range blocks {
		for y := b.LeftTop.Y; y <= b.RightBottom.Y; y++ {
			for x := b.LeftTop.X; x <= b.RightBottom.X; x++ {
				g.Set(x, y, cave.Wall)
			}
		}
	}
	return g
}

// Overlapping returns the indices of the first pair of blocks sharing a cell
func Overlapping(blocks []WallBlock) (int, int, bool) {
	for i := 0; i < len(blocks); i++ {
		for j := i + 1; j < len(blocks); j++ {
			if blocks[i].Intersects(blocks[j]) {
				return i, j, true
			}
		}
	}
	return 0, 0, false
}

// CoveredCells returns the total area of the blocks
func CoveredCells(blocks []WallBlock) int {
	n := 0
	for _, b := range blocks {
		n += b.Area()
	}
	return n
}
