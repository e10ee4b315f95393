package cave

// Neighbourhood is the 3x3 block around a cell, indexed [dy+1][dx+1]
// The centre is the cell itself
type Neighbourhood [3][3]Cell

// Rule computes the next state of the cell at p from its neighbourhood
type Rule func(p Point, n Neighbourhood) Cell

// ApplyInterior runs rule on every cell strictly inside the 1-cell border
// All reads come from the input grid, writes go to a copy, so the result does
// not depend on iteration order. Edge cells are never written
func ApplyInterior(g Grid, rule Rule) Grid {
	out := g.Clone()
	for y := 1; y < g.Height-1; y++ {
		for x := 1; x < g.Width-1; x++ {
			var n Neighbourhood
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					n[dy+1][dx+1] = g.cells[(y+dy)*g.Width+(x+dx)]
				}
			}
			out.cells[y*g.Width+x] = rule(Point{X: x, Y: y}, n)
		}
	}
	return out
}

// CountWallNeighbours counts walls among the 8 cells around the centre
func CountWallNeighbours(n Neighbourhood) int {
	count := 0
	for dy := 0; dy < 3; dy++ {
		for dx := 0; dx < 3; dx++ {
			if dx == 1 && dy == 1 {
				continue
			}
			if n[dy][dx] == Wall {
				count++
			}
		}
	}
	return count
}

// SmoothingRule returns a rule that makes a cell a wall when at least
// threshold of its 8 neighbours are walls, and empty otherwise
func SmoothingRule(threshold int) Rule {
	return func(_ Point, n Neighbourhood) Cell {
		if CountWallNeighbours(n) >= threshold {
			return Wall
		}
		return Empty
	}
}

// Smooth applies the smoothing rule iterations times, each pass against a
// snapshot of the previous one
func Smooth(g Grid, threshold, iterations int) Grid {
	rule := SmoothingRule(threshold)
	out := g.Clone()
	for i := 0; i < iterations; i++ {
		out = ApplyInterior(out, rule)
	}
	return out
}
