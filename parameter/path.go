package parameter

// Path graph
const (
	// AverageNodeDistance is the target horizontal spacing between nodes (cells)
	AverageNodeDistance = 30

	// AverageNodeDiameter is scaled by [0.5, 1.5) per node
	AverageNodeDiameter = 10

	// Edge modifier ranges, sampled uniformly per edge
	EdgeWidthMin = 5.0
	EdgeWidthMax = 10.0
	EdgeFreqMin  = 0.1
	EdgeFreqMax  = 0.3
	EdgeAmplMin  = 2.0
	EdgeAmplMax  = 9.0

	// PathWidthDeviation is the jitter fraction applied to carve distances
	PathWidthDeviation = 0.7
)

// Refuel placement
const (
	// RefuelBaseProbability is where the refuel probability starts and resets to
	RefuelBaseProbability = 0.2

	// FuelDistance is the distance a full tank is expected to cover (cells)
	FuelDistance = 90.0

	// RefuelBlendWeight is the weight of the new term when blending probabilities
	// 0.5 is a plain average
	RefuelBlendWeight = 0.5

	// RefuelRaiseWeight is the pull toward 1 after a node is not a refuel stop
	RefuelRaiseWeight = 0.5
)

// Difficulty gains, applied per unit of difficulty in [0, 1]
const (
	DifficultyFuelDistanceGain = 0.5
	DifficultyEdgeWidthShrink  = 0.6
	DifficultyAmplitudeGain    = 0.3
)
