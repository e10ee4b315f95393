package world

import (
	"math"
	"os"

	"github.com/pkg/errors"

	"github.com/lixenwraith/cavegen/parameter"
	"github.com/lixenwraith/cavegen/pathgraph"
	"github.com/lixenwraith/cavegen/toml"
)

// Config holds every tunable of the generation pipeline
type Config struct {
	// Fill selects the initial noise: "uniform" or "simplex"
	Fill            string  `toml:"fill"`
	WallProbability float64 `toml:"wall_probability"`
	SimplexScale    float64 `toml:"simplex_scale"`
	SimplexWeight   float64 `toml:"simplex_weight"`

	SmoothThreshold       int `toml:"smooth_threshold"`
	SmoothIterations      int `toml:"smooth_iterations"`
	FinalSmoothIterations int `toml:"final_smooth_iterations"`

	PathWidthDeviation float64 `toml:"path_width_deviation"`

	SegmentSize int `toml:"segment_size"`

	// DropSingleBlocks discards 1x1 wall blocks before merging. Their cells
	// then have no collision block
	DropSingleBlocks bool `toml:"drop_single_blocks"`

	// RequireConnected rejects worlds whose end node cannot be reached from
	// the start node through empty cells
	RequireConnected bool `toml:"require_connected"`

	Path       pathgraph.Config `toml:"path"`
	Difficulty DifficultyConfig `toml:"difficulty"`
}

// DifficultyConfig holds the gains applied per unit of difficulty
type DifficultyConfig struct {
	// FuelDistanceGain stretches the fuel distance, thinning out refuel stops
	FuelDistanceGain float64 `toml:"fuel_distance_gain"`

	// EdgeWidthShrink pulls the widest tunnel toward the narrowest, in [0, 1]
	EdgeWidthShrink float64 `toml:"edge_width_shrink"`

	// AmplitudeGain makes tunnels wander further from the straight line
	AmplitudeGain float64 `toml:"amplitude_gain"`
}

// DefaultConfig returns the stock tuning
func DefaultConfig() Config {
	return Config{
		Fill:                  parameter.FillUniform,
		WallProbability:       parameter.CaveWallProbability,
		SimplexScale:          parameter.CaveSimplexScale,
		SimplexWeight:         parameter.CaveSimplexWeight,
		SmoothThreshold:       parameter.CaveSmoothThreshold,
		SmoothIterations:      parameter.CaveSmoothIterations,
		FinalSmoothIterations: parameter.CaveFinalSmoothIterations,
		PathWidthDeviation:    parameter.PathWidthDeviation,
		SegmentSize:           parameter.SegmentSize,
		Path:                  pathgraph.DefaultConfig(),
		Difficulty: DifficultyConfig{
			FuelDistanceGain: parameter.DifficultyFuelDistanceGain,
			EdgeWidthShrink:  parameter.DifficultyEdgeWidthShrink,
			AmplitudeGain:    parameter.DifficultyAmplitudeGain,
		},
	}
}

// Scaled returns a copy with the difficulty gains folded into the path config
// Difficulty 0 returns the config unchanged
func (c Config) Scaled(difficulty float64) Config {
	out := c
	p := &out.Path

	p.Refuel.FuelDistance *= 1 + c.Difficulty.FuelDistanceGain*difficulty
	p.EdgeWidth.Max -= (p.EdgeWidth.Max - p.EdgeWidth.Min) * c.Difficulty.EdgeWidthShrink * difficulty
	p.EdgeAmpl.Max *= 1 + c.Difficulty.AmplitudeGain*difficulty

	return out
}

// Validate checks the config against a world size; every failure wraps ErrConfig
func (c Config) Validate(width, height int) error {
	bad := func(format string, args ...any) error {
		return errors.Wrapf(ErrConfig, format, args...)
	}

	if width < 3 || height < 3 {
		return bad("world %dx%d has no interior", width, height)
	}
	if c.Fill != parameter.FillUniform && c.Fill != parameter.FillSimplex {
		return bad("fill %q, want %q or %q", c.Fill, parameter.FillUniform, parameter.FillSimplex)
	}
	if !unit(c.WallProbability) {
		return bad("wall_probability %g outside [0, 1]", c.WallProbability)
	}
	if c.Fill == parameter.FillSimplex && (!positive(c.SimplexScale) || !unit(c.SimplexWeight)) {
		return bad("simplex_scale %g must be positive and simplex_weight %g in [0, 1]", c.SimplexScale, c.SimplexWeight)
	}
	if c.SmoothThreshold < 0 || c.SmoothThreshold > 8 {
		return bad("smooth_threshold %d outside [0, 8]", c.SmoothThreshold)
	}
	if c.SmoothIterations < 0 || c.FinalSmoothIterations < 0 {
		return bad("negative smoothing iterations %d/%d", c.SmoothIterations, c.FinalSmoothIterations)
	}
	if !unit(c.PathWidthDeviation) {
		return bad("path_width_deviation %g outside [0, 1]", c.PathWidthDeviation)
	}
	if c.SegmentSize < 1 {
		return bad("segment_size %d, want at least 1", c.SegmentSize)
	}

	p := c.Path
	// Padding 0 would let START or END sit on the uncarvable border
	if p.Padding < 1 || p.AverageNodeDistance < 1 || !positive(p.AverageNodeDiameter) {
		return bad("padding %d, node distance %d, node diameter %g", p.Padding, p.AverageNodeDistance, p.AverageNodeDiameter)
	}
	if n := p.NodeCount(width); n < 2 {
		return bad("width %d fits %d path nodes, need 2 (padding %d, node distance %d)", width, n, p.Padding, p.AverageNodeDistance)
	}
	if height-2*p.Padding <= 0 {
		return bad("height %d leaves no rows inside padding %d", height, p.Padding)
	}
	ranges := []struct {
		name string
		r    pathgraph.Range
	}{{"edge_width", p.EdgeWidth}, {"edge_freq", p.EdgeFreq}, {"edge_ampl", p.EdgeAmpl}}
	for _, nr := range ranges {
		if !(nr.r.Min >= 0 && nr.r.Min <= nr.r.Max) || math.IsInf(nr.r.Max, 0) {
			return bad("%s range [%g, %g]", nr.name, nr.r.Min, nr.r.Max)
		}
	}
	if !positive(p.EdgeWidth.Min) {
		return bad("edge_width.min %g must be positive", p.EdgeWidth.Min)
	}

	f := p.Refuel
	if !unit(f.BaseProbability) || !unit(f.BlendWeight) || !unit(f.RaiseWeight) {
		return bad("refuel probabilities base %g, blend %g, raise %g outside [0, 1]", f.BaseProbability, f.BlendWeight, f.RaiseWeight)
	}
	if !positive(f.FuelDistance) {
		return bad("fuel_distance %g must be positive and finite", f.FuelDistance)
	}

	d := c.Difficulty
	if !(d.FuelDistanceGain >= 0) || !(d.AmplitudeGain >= 0) || math.IsInf(d.FuelDistanceGain, 0) ||
		math.IsInf(d.AmplitudeGain, 0) || !unit(d.EdgeWidthShrink) {
		return bad("difficulty gains fuel %g, width %g, amplitude %g", d.FuelDistanceGain, d.EdgeWidthShrink, d.AmplitudeGain)
	}
	return nil
}

// unit and positive are false for NaN
func unit(v float64) bool {
	return v >= 0 && v <= 1
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

// ParseConfig decodes TOML over the defaults; unknown keys are an error
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := toml.UnmarshalStrict(data, &cfg); err != nil {
		return Config{}, classify(ErrConfig, "toml", err)
	}
	return cfg, nil
}

// LoadConfig reads and parses a TOML config file
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "read config")
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

// MarshalTOML encodes the config in the format ParseConfig reads
func (c Config) MarshalTOML() ([]byte, error) {
	return toml.Marshal(c)
}
