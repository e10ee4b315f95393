package cave

import (
	"strings"
)

// Cell is the state of one grid cell
type Cell uint8

const (
	Wall Cell = iota
	Empty
)

// Point is an integer grid coordinate
type Point struct {
	X, Y int
}

// Rand is the random source threaded through every generation stage
// *rand.Rand satisfies it
type Rand interface {
	Float64() float64
}

// Grid is a fixed-size 2D cell mask stored row-major: index = y*Width + x
type Grid struct {
	Width  int
	Height int
	cells  []Cell
}

// NewGrid creates a grid of the given size filled with walls
func NewGrid(width, height int) Grid {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	// Wall is the zero value
	return Grid{Width: width, Height: height, cells: make([]Cell, width*height)}
}

// InBounds reports whether (x, y) lies inside the grid
func (g Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// At returns the cell at (x, y); out of bounds reads as Wall
func (g Grid) At(x, y int) Cell {
	if !g.InBounds(x, y) {
		return Wall
	}
	return g.cells[y*g.Width+x]
}

// IsWall reports whether (x, y) is a wall, treating out of bounds as wall
func (g Grid) IsWall(x, y int) bool {
	return g.At(x, y) == Wall
}

// Set writes a cell; out of bounds writes are ignored
func (g Grid) Set(x, y int, c Cell) {
	if !g.InBounds(x, y) {
		return
	}
	g.cells[y*g.Width+x] = c
}

// Fill sets every cell, border included, to c
func (g Grid) Fill(c Cell) {
	for i := range g.cells {
		g.cells[i] = c
	}
}

// Clone returns a deep copy
func (g Grid) Clone() Grid {
	out := Grid{Width: g.Width, Height: g.Height, cells: make([]Cell, len(g.cells))}
	copy(out.cells, g.cells)
	return out
}

// Equal reports whether both grids have the same size and cells
func (g Grid) Equal(o Grid) bool {
	if g.Width != o.Width || g.Height != o.Height {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// WallCount returns the number of wall cells
func (g Grid) WallCount() int {
	n := 0
	for _, c := range g.cells {
		if c == Wall {
			n++
		}
	}
	return n
}

// BorderIntact reports whether every edge cell is a wall
func (g Grid) BorderIntact() bool {
	for x := 0; x < g.Width; x++ {
		if g.At(x, 0) != Wall || g.At(x, g.Height-1) != Wall {
			return false
		}
	}
	for y := 0; y < g.Height; y++ {
		if g.At(0, y) != Wall || g.At(g.Width-1, y) != Wall {
			return false
		}
	}
	return true
}

// String renders walls as '#' and empty cells as '.', one row per line
func (g Grid) String() string {
	var sb strings.Builder
	sb.Grow((g.Width + 1) * g.Height)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if g.cells[y*g.Width+x] == Wall {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// ParseGrid builds a grid from rows of '#' (wall) and any other byte (empty)
// Rows shorter than the first are padded with walls
func ParseGrid(rows ...string) Grid {
	if len(rows) == 0 {
		return NewGrid(0, 0)
	}
	g := NewGrid(len(rows[0]), len(rows))
	for y, row := range rows {
		for x := 0; x < g.Width && x < len(row); x++ {
			if row[x] != '#' {
				g.Set(x, y, Empty)
			}
		}
	}
	return g
}
