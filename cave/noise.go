package cave

import (
	"github.com/ojrac/opensimplex-go"
)

// NoiseFill creates a walled grid whose interior cells are independently wall
// with probability p. One random draw per interior cell, row-major
func NoiseFill(width, height int, p float64, rng Rand) Grid {
	return ApplyInterior(NewGrid(width, height), func(Point, Neighbourhood) Cell {
		if rng.Float64() > p {
			return Empty
		}
		return Wall
	})
}

// SimplexFill is NoiseFill with the per-cell wall probability shifted by
// OpenSimplex noise sampled at (x*scale, y*scale). weight bounds the shift.
// The result has larger coherent chambers than the uniform fill
func SimplexFill(width, height int, p, scale, weight float64, seed int64, rng Rand) Grid {
	noise := opensimplex.NewNormalized(seed)
	return ApplyInterior(NewGrid(width, height), func(pt Point, _ Neighbourhood) Cell {
		// Normalized noise is in [0, 1); recentre to [-1, 1)
		bias := (noise.Eval2(float64(pt.X)*scale, float64(pt.Y)*scale)*2 - 1) * weight
		threshold := clamp01(p + bias)
		if rng.Float64() > threshold {
			return Empty
		}
		return Wall
	})
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
