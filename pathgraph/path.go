// Package pathgraph places the start-to-end chain of rooms across a cave grid
// and carves the rooms and the tunnels between them into the grid
package pathgraph

import (
	"fmt"
	"math"

	"github.com/pkg/errors"

	"github.com/lixenwraith/cavegen/cave"
	"github.com/lixenwraith/cavegen/parameter"
)

var (
	// ErrTooNarrow is returned when the grid cannot hold two nodes
	ErrTooNarrow = errors.New("grid too narrow for node spacing")

	// ErrTooShort is returned when no rows remain after padding
	ErrTooShort = errors.New("grid too short for padding")

	// ErrZeroLengthEdge is returned when an edge joins two nodes at the same point
	ErrZeroLengthEdge = errors.New("zero-length edge")
)

// NodeType classifies a room on the path
type NodeType uint8

const (
	NodeStart NodeType = iota
	NodeEnd
	NodeEmpty
	NodeRefuel
)

func (t NodeType) String() string {
	switch t {
	case NodeStart:
		return "start"
	case NodeEnd:
		return "end"
	case NodeEmpty:
		return "empty"
	case NodeRefuel:
		return "refuel"
	}
	return fmt.Sprintf("NodeType(%d)", uint8(t))
}

// Node is a room on the path
type Node struct {
	Coords   cave.Point
	Type     NodeType
	Diameter float64
}

// Edge is a tunnel between two consecutive nodes, referenced by index into Path.Nodes
type Edge struct {
	Start, End    int
	WidthModifier float64
	FreqModifier  float64
	AmplModifier  float64
}

// Path is the ordered node chain and the edges between consecutive nodes
type Path struct {
	Nodes []Node
	Edges []Edge
}

// Start returns the first node
func (p Path) Start() Node { return p.Nodes[0] }

// End returns the last node
func (p Path) End() Node { return p.Nodes[len(p.Nodes)-1] }

// EdgeNodes resolves the endpoints of e
func (p Path) EdgeNodes(e Edge) (Node, Node) {
	return p.Nodes[e.Start], p.Nodes[e.End]
}

// RefuelNodes returns the indices of refuel nodes in path order
func (p Path) RefuelNodes() []int {
	var out []int
	for i, n := range p.Nodes {
		if n.Type == NodeRefuel {
			out = append(out, i)
		}
	}
	return out
}

// Range is an inclusive-exclusive sampling interval [Min, Max)
type Range struct {
	Min float64 `toml:"min"`
	Max float64 `toml:"max"`
}

// Sample draws uniformly from the range
func (r Range) Sample(rng cave.Rand) float64 {
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// Config tunes node placement, classification and tunnel shape
type Config struct {
	Padding             int     `toml:"padding"`
	AverageNodeDistance int     `toml:"average_node_distance"`
	AverageNodeDiameter float64 `toml:"average_node_diameter"`

	EdgeWidth Range `toml:"edge_width"`
	EdgeFreq  Range `toml:"edge_freq"`
	EdgeAmpl  Range `toml:"edge_ampl"`

	Refuel RefuelConfig `toml:"refuel"`
}

// RefuelConfig tunes the refuel probability feedback loop
type RefuelConfig struct {
	BaseProbability float64 `toml:"base_probability"`
	FuelDistance    float64 `toml:"fuel_distance"`
	BlendWeight     float64 `toml:"blend_weight"`
	RaiseWeight     float64 `toml:"raise_weight"`
}

// DefaultConfig returns the stock tuning from the parameter package
func DefaultConfig() Config {
	return Config{
		Padding:             parameter.WorldPadding,
		AverageNodeDistance: parameter.AverageNodeDistance,
		AverageNodeDiameter: parameter.AverageNodeDiameter,
		EdgeWidth:           Range{Min: parameter.EdgeWidthMin, Max: parameter.EdgeWidthMax},
		EdgeFreq:            Range{Min: parameter.EdgeFreqMin, Max: parameter.EdgeFreqMax},
		EdgeAmpl:            Range{Min: parameter.EdgeAmplMin, Max: parameter.EdgeAmplMax},
		Refuel: RefuelConfig{
			BaseProbability: parameter.RefuelBaseProbability,
			FuelDistance:    parameter.FuelDistance,
			BlendWeight:     parameter.RefuelBlendWeight,
			RaiseWeight:     parameter.RefuelRaiseWeight,
		},
	}
}

// NodeCount returns how many nodes fit across a grid of the given width
func (c Config) NodeCount(width int) int {
	if c.AverageNodeDistance <= 0 {
		return 0
	}
	inner := width - 2*c.Padding
	if inner <= 0 {
		return 0
	}
	return inner / c.AverageNodeDistance
}

// Generate lays out the node chain for a width x height grid
// Per node the draws are: y, classification (intermediate nodes only),
// diameter, then width/freq/ampl for the edge from the previous node
func Generate(width, height int, cfg Config, rng cave.Rand) (Path, error) {
	count := cfg.NodeCount(width)
	if count < 2 {
		return Path{}, errors.Wrapf(ErrTooNarrow, "width %d, padding %d, node distance %d gives %d nodes",
			width, cfg.Padding, cfg.AverageNodeDistance, count)
	}
	innerWidth := width - 2*cfg.Padding
	innerHeight := height - 2*cfg.Padding
	if innerHeight <= 0 {
		return Path{}, errors.Wrapf(ErrTooShort, "height %d, padding %d", height, cfg.Padding)
	}
	spacing := innerWidth / count

	path := Path{
		Nodes: make([]Node, 0, count),
		Edges: make([]Edge, 0, count-1),
	}
	planner := NewRefuelPlanner(cfg.Refuel)

	for i := 0; i < count; i++ {
		coords := cave.Point{
			X: int(math.Floor(float64(cfg.Padding) + float64(spacing*i) + float64(spacing)/2)),
			Y: int(math.Floor(float64(cfg.Padding) + float64(innerHeight)*rng.Float64())),
		}

		var typ NodeType
		switch i {
		case 0:
			typ = NodeStart
		case count - 1:
			typ = NodeEnd
		default:
			prev := path.Nodes[i-1].Coords
			typ = planner.Classify(distance(prev, coords), rng.Float64())
		}

		path.Nodes = append(path.Nodes, Node{
			Coords:   coords,
			Type:     typ,
			Diameter: cfg.AverageNodeDiameter * (rng.Float64() + 0.5),
		})

		if i > 0 {
			path.Edges = append(path.Edges, Edge{
				Start:         i - 1,
				End:           i,
				WidthModifier: cfg.EdgeWidth.Sample(rng),
				FreqModifier:  cfg.EdgeFreq.Sample(rng),
				AmplModifier:  cfg.EdgeAmpl.Sample(rng),
			})
		}
	}

	return path, nil
}

func distance(a, b cave.Point) float64 {
	dx := float64(b.X - a.X)
	dy := float64(b.Y - a.Y)
	return math.Sqrt(dx*dx + dy*dy)
}
