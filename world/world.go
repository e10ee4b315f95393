// Package world runs the full generation pipeline and exposes the result:
// the cave grid, the start-to-end path, the collision blocks and the segment
// layout used for streaming
package world

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/lixenwraith/cavegen/block"
	"github.com/lixenwraith/cavegen/cave"
	"github.com/lixenwraith/cavegen/ident"
	"github.com/lixenwraith/cavegen/parameter"
	"github.com/lixenwraith/cavegen/pathgraph"
	"github.com/lixenwraith/cavegen/segment"
	"github.com/lixenwraith/cavegen/status"
)

var (
	// ErrConfig wraps every rejected configuration or world size
	ErrConfig = errors.New("invalid world configuration")

	// ErrInvariant means a pipeline stage produced output that breaks a
	// structural guarantee; it indicates a bug, not bad input
	ErrInvariant = errors.New("world invariant violated")

	// ErrDisconnected is returned when RequireConnected is set and the end
	// node is unreachable from the start node
	ErrDisconnected = errors.New("start and end are not connected")
)

// namespace scopes world ids
var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/lixenwraith/cavegen/world"))

// World is one generated level
type World struct {
	// ID is derived from seed, size, difficulty and config, so regenerating
	// with the same inputs yields the same ID
	ID         uuid.UUID
	Seed       int64
	Width      int
	Height     int
	Difficulty float64

	Grid   cave.Grid
	Path   pathgraph.Path
	Blocks []block.WallBlock
	Layout segment.Layout

	// StartSegment indexes Layout.Segments
	StartSegment int

	// Connected reports whether the end node is reachable from the start node
	Connected bool

	Stats *status.Registry
}

// Generate builds a world with the default config and a time-derived seed
func Generate(width, height int, difficulty float64) (*World, error) {
	return GenerateSeeded(DefaultConfig(), width, height, difficulty, time.Now().UnixNano())
}

// GenerateSeeded builds a world reproducibly: identical inputs give an
// identical world
func GenerateSeeded(cfg Config, width, height int, difficulty float64, seed int64) (*World, error) {
	g := Generator{Config: cfg}
	return g.Generate(width, height, difficulty, seed)
}

// Generator runs the pipeline with shared id and metrics sources
// The zero value of IDs and Stats means fresh ones per world
type Generator struct {
	Config Config

	// IDs numbers blocks and segments; share one across worlds to keep ids
	// unique over a campaign
	IDs *ident.Source

	// Stats receives metrics; shared registries accumulate world.generated
	Stats *status.Registry
}

// Generate runs noise, smoothing, path placement, carving, final smoothing,
// block extraction and merging, then partitions into segments
func (g *Generator) Generate(width, height int, difficulty float64, seed int64) (*World, error) {
	if !(difficulty >= 0 && difficulty <= 1) {
		return nil, errors.Wrapf(ErrConfig, "difficulty %g outside [0, 1]", difficulty)
	}
	cfg := g.Config.Scaled(difficulty)
	if err := cfg.Validate(width, height); err != nil {
		return nil, err
	}

	ids := g.IDs
	if ids == nil {
		ids = ident.NewSource(0)
	}
	stats := g.Stats
	if stats == nil {
		stats = status.NewRegistry()
	}
	rng := rand.New(rand.NewSource(seed))

	w := &World{
		ID:         uuid.NewSHA1(namespace, []byte(fmt.Sprintf("%d|%dx%d|%g|%+v", seed, width, height, difficulty, g.Config))),
		Seed:       seed,
		Width:      width,
		Height:     height,
		Difficulty: difficulty,
		Stats:      stats,
	}

	done := stats.Time("fill")
	var grid cave.Grid
	if cfg.Fill == parameter.FillSimplex {
		grid = cave.SimplexFill(width, height, cfg.WallProbability, cfg.SimplexScale, cfg.SimplexWeight, seed, rng)
	} else {
		grid = cave.NoiseFill(width, height, cfg.WallProbability, rng)
	}
	done()

	done = stats.Time("smooth")
	grid = cave.Smooth(grid, cfg.SmoothThreshold, cfg.SmoothIterations)
	done()

	done = stats.Time("path")
	path, err := pathgraph.Generate(width, height, cfg.Path, rng)
	done()
	if err != nil {
		return nil, classify(ErrConfig, "path graph", err)
	}

	done = stats.Time("carve")
	grid = pathgraph.CarveNodes(grid, path, cfg.PathWidthDeviation, rng)
	grid, err = pathgraph.CarveEdges(grid, path, cfg.PathWidthDeviation, rng)
	done()
	if err != nil {
		return nil, classify(ErrConfig, "carve", err)
	}

	done = stats.Time("final_smooth")
	grid = cave.Smooth(grid, cfg.SmoothThreshold, cfg.FinalSmoothIterations)
	done()

	if !grid.BorderIntact() {
		return nil, errors.Wrap(ErrInvariant, "border cell opened")
	}

	done = stats.Time("connectivity")
	w.Connected = cave.Reachable(grid, path.Start().Coords, path.End().Coords)
	done()
	if cfg.RequireConnected && !w.Connected {
		return nil, errors.Wrapf(ErrDisconnected, "seed %d, start %v, end %v", seed, path.Start().Coords, path.End().Coords)
	}

	done = stats.Time("blocks")
	extracted := block.Extract(grid, ids)
	merger := block.Merger{DropSingles: cfg.DropSingleBlocks}
	blocks := merger.Merge(extracted)
	done()

	if i, j, overlap := block.Overlapping(blocks); overlap {
		return nil, errors.Wrapf(ErrInvariant, "blocks %v and %v overlap", blocks[i], blocks[j])
	}
	if !cfg.DropSingleBlocks && block.CoveredCells(blocks) != grid.WallCount() {
		return nil, errors.Wrapf(ErrInvariant, "blocks cover %d cells, grid has %d walls", block.CoveredCells(blocks), grid.WallCount())
	}

	done = stats.Time("segments")
	layout, err := segment.Partition(width, height, blocks, cfg.SegmentSize, ids)
	done()
	if err != nil {
		return nil, classify(ErrConfig, "segments", err)
	}

	start, err := layout.Locate(path.Start().Coords)
	if err != nil {
		return nil, classify(ErrInvariant, "start node", err)
	}

	w.Grid = grid
	w.Path = path
	w.Blocks = blocks
	w.Layout = layout
	w.StartSegment = start

	record(stats, w, len(extracted), merger)
	return w, nil
}

func record(stats *status.Registry, w *World, extracted int, merger block.Merger) {
	cells := w.Width * w.Height
	walls := w.Grid.WallCount()

	stats.Strings.Get(status.KeyWorldID).Store(w.ID.String())
	stats.Ints.Get(status.KeyWorldSeed).Store(w.Seed)
	stats.Floats.Get(status.KeyWorldDifficulty).Set(w.Difficulty)
	stats.Bools.Get(status.KeyWorldConnected).Store(w.Connected)
	stats.Ints.Get(status.KeyWorldsGenerated).Add(1)

	stats.Ints.Get(status.KeyGridCells).Store(int64(cells))
	stats.Ints.Get(status.KeyGridWalls).Store(int64(walls))
	stats.Floats.Get(status.KeyGridOpen).Set(float64(cells-walls) / float64(cells))

	length := 0.0
	for _, e := range w.Path.Edges {
		a, b := w.Path.EdgeNodes(e)
		dx, dy := float64(b.Coords.X-a.Coords.X), float64(b.Coords.Y-a.Coords.Y)
		length += math.Hypot(dx, dy)
	}
	stats.Ints.Get(status.KeyPathNodes).Store(int64(len(w.Path.Nodes)))
	stats.Ints.Get(status.KeyPathRefuels).Store(int64(len(w.Path.RefuelNodes())))
	stats.Floats.Get(status.KeyPathLength).Set(length)

	stats.Ints.Get(status.KeyBlocksExtracted).Store(int64(extracted))
	stats.Ints.Get(status.KeyBlocksMerged).Store(int64(len(w.Blocks)))
	stats.Ints.Get(status.KeyBlocksDropped).Store(int64(extracted - merger.Merges - len(w.Blocks)))
	stats.Ints.Get(status.KeyMergePasses).Store(int64(merger.Passes))

	maxBlocks := 0
	for _, s := range w.Layout.Segments {
		maxBlocks = max(maxBlocks, len(s.Blocks))
	}
	stats.Ints.Get(status.KeySegments).Store(int64(len(w.Layout.Segments)))
	stats.Ints.Get(status.KeySegmentMaxBlocks).Store(int64(maxBlocks))
	stats.Ints.Get(status.KeyStartSegment).Store(int64(w.StartSegment))
}
