package status

// Metric names written by the world pipeline
const (
	KeyWorldID         = "world.id"
	KeyWorldSeed       = "world.seed"
	KeyWorldConnected  = "world.connected"
	KeyWorldDifficulty = "world.difficulty"
	KeyWorldsGenerated = "world.generated"

	KeyGridCells = "grid.cells"
	KeyGridWalls = "grid.walls"
	KeyGridOpen  = "grid.open_ratio"

	KeyPathNodes   = "path.nodes"
	KeyPathRefuels = "path.refuels"
	KeyPathLength  = "path.length"

	KeyBlocksExtracted = "blocks.extracted"
	KeyBlocksMerged    = "blocks.merged"
	KeyBlocksDropped   = "blocks.dropped"
	KeyMergePasses     = "blocks.merge_passes"

	KeySegments         = "segments.count"
	KeySegmentMaxBlocks = "segments.max_blocks"
	KeyStartSegment     = "segments.start"

	// TimePrefix prefixes stage timings, in milliseconds
	TimePrefix = "time."
)
