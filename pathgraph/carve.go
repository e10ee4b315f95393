package pathgraph

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"

	"github.com/lixenwraith/cavegen/cave"
)

// Jitter randomizes a distance before a threshold test so carved boundaries
// come out ragged: d*(1-dev) + u*d*dev*2 for a fresh uniform draw u
func Jitter(distance, deviation float64, rng cave.Rand) float64 {
	return distance*(1-deviation) + rng.Float64()*distance*deviation*2
}

// CarveNodes clears a jittered disc of radius Diameter around every node
// Nodes are tested in path order and the first hit wins; one draw per node tested
func CarveNodes(g cave.Grid, path Path, deviation float64, rng cave.Rand) cave.Grid {
	return cave.ApplyInterior(g, func(p cave.Point, n cave.Neighbourhood) cave.Cell {
		for _, node := range path.Nodes {
			if Jitter(distance(node.Coords, p), deviation, rng) < node.Diameter {
				return cave.Empty
			}
		}
		return n[1][1]
	})
}

// CarveEdges carves every edge in order; each edge sees the previous carving
func CarveEdges(g cave.Grid, path Path, deviation float64, rng cave.Rand) (cave.Grid, error) {
	out := g
	for i, e := range path.Edges {
		var err error
		out, err = carveEdge(out, path, e, deviation, rng)
		if err != nil {
			return g, errors.Wrapf(err, "edge %d", i)
		}
	}
	return out, nil
}

// carveEdge clears cells within WidthModifier of a sine wave running along the
// segment from the start node to the end node. Cells projecting before the
// start or past the end are left alone
func carveEdge(g cave.Grid, path Path, e Edge, deviation float64, rng cave.Rand) (cave.Grid, error) {
	from, to := path.EdgeNodes(e)
	origin := mgl64.Vec2{float64(from.Coords.X), float64(from.Coords.Y)}
	span := mgl64.Vec2{float64(to.Coords.X), float64(to.Coords.Y)}.Sub(origin)

	length := span.Len()
	if length == 0 {
		return g, errors.Wrapf(ErrZeroLengthEdge, "nodes %d and %d at %v", e.Start, e.End, from.Coords)
	}
	dir := span.Normalize()
	normal := mgl64.Vec2{-dir.Y(), dir.X()}

	return cave.ApplyInterior(g, func(p cave.Point, n cave.Neighbourhood) cave.Cell {
		rel := mgl64.Vec2{float64(p.X), float64(p.Y)}.Sub(origin)

		along := rel.Dot(dir)
		if along < 0 || along > length {
			return n[1][1]
		}

		offset := rel.Dot(normal)
		centre := math.Sin(along*e.FreqModifier) * e.AmplModifier
		if Jitter(math.Abs(offset-centre), deviation, rng) < e.WidthModifier {
			return cave.Empty
		}
		return n[1][1]
	}), nil
}
