package cave

import (
	"github.com/zyedidia/generic/mapset"
)

var orthogonal = [4]Point{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}

// Solve returns a shortest 4-connected path of empty cells from start to end,
// inclusive of both, or nil if either end is a wall or no path exists
func Solve(g Grid, start, end Point) []Point {
	if !g.InBounds(start.X, start.Y) || !g.InBounds(end.X, end.Y) {
		return nil
	}
	if g.IsWall(start.X, start.Y) || g.IsWall(end.X, end.Y) {
		return nil
	}

	queue := []Point{start}
	cameFrom := make(map[Point]Point)
	visited := mapset.New[Point]()
	visited.Put(start)

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		if curr == end {
			var path []Point
			for curr != start {
				path = append(path, curr)
				curr = cameFrom[curr]
			}
			path = append(path, start)
			// Reverse into start -> end order
			for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
				path[i], path[j] = path[j], path[i]
			}
			return path
		}

		for _, d := range orthogonal {
			next := Point{X: curr.X + d.X, Y: curr.Y + d.Y}
			if g.InBounds(next.X, next.Y) && !g.IsWall(next.X, next.Y) && !visited.Has(next) {
				visited.Put(next)
				cameFrom[next] = curr
				queue = append(queue, next)
			}
		}
	}
	return nil
}

// Reachable reports whether end can be walked to from start through empty cells
func Reachable(g Grid, start, end Point) bool {
	return Solve(g, start, end) != nil
}
