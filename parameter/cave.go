package parameter

// Cave noise and smoothing
const (
	// CaveWallProbability is the chance an interior cell starts as wall
	CaveWallProbability = 0.39

	// CaveSmoothThreshold is the wall neighbour count (of 8) that keeps a cell solid
	CaveSmoothThreshold = 4

	// CaveSmoothIterations is the smoothing applied to the raw noise
	CaveSmoothIterations = 4

	// CaveFinalSmoothIterations runs after carving; fewer passes keep tunnels intact
	CaveFinalSmoothIterations = 2

	// CaveSimplexScale is the noise sampling step per cell for the simplex fill
	CaveSimplexScale = 0.08

	// CaveSimplexWeight is how far simplex noise can move the wall probability
	CaveSimplexWeight = 0.35
)

// Fill modes
const (
	FillUniform = "uniform"
	FillSimplex = "simplex"
)

// World layout
const (
	// WorldPadding keeps path nodes away from the grid edges (cells)
	WorldPadding = 10

	// SegmentSize is the edge length of a streaming segment (cells)
	SegmentSize = 32

	// DefaultWorldWidth and DefaultWorldHeight match the first story level
	DefaultWorldWidth  = 300
	DefaultWorldHeight = 200
)
