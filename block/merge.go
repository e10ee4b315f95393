package block

// Merger joins blocks that share a full-length edge
type Merger struct {
	// DropSingles discards 1x1 blocks before merging starts
	DropSingles bool

	// Passes is the number of full passes the last Merge ran, the final
	// no-op pass included
	Passes int

	// Merges is the number of pairs joined by the last Merge
	Merges int
}

// Merge drops 1x1 blocks, then joins adjacent blocks until a pass finds
// nothing to join
func Merge(blocks []WallBlock) []WallBlock {
	m := Merger{DropSingles: true}
	return m.Merge(blocks)
}

// Merge runs full passes over all pairs. Within a pass the first mergeable
// pair found wins: the earlier block grows to the union and keeps its id, the
// later one is removed, and scanning continues from the same position. The
// input slice is not modified
func (m *Merger) Merge(blocks []WallBlock) []WallBlock {
	m.Passes, m.Merges = 0, 0

	work := make([]WallBlock, 0, len(blocks))
	for _, b := range blocks {
		if m.DropSingles && b.Single() {
			continue
		}
		work = append(work, b)
	}

	for {
		m.Passes++
		merged := false
		for i := 0; i < len(work); i++ {
			for j := i + 1; j < len(work); {
				u, ok := union(work[i], work[j])
				if !ok {
					j++
					continue
				}
				work[i] = u
				work = append(work[:j], work[j+1:]...)
				m.Merges++
				merged = true
				// work[i] changed; pairs before j may now match
				j = i + 1
			}
		}
		if !merged {
			return work
		}
	}
}

// union joins a and b when they span the same rows and touch horizontally, or
// span the same columns and touch vertically
func union(a, b WallBlock) (WallBlock, bool) {
	if a.LeftTop.Y == b.LeftTop.Y && a.RightBottom.Y == b.RightBottom.Y {
		if a.RightBottom.X+1 == b.LeftTop.X || b.RightBottom.X+1 == a.LeftTop.X {
			a.LeftTop.X = min(a.LeftTop.X, b.LeftTop.X)
			a.RightBottom.X = max(a.RightBottom.X, b.RightBottom.X)
			return a, true
		}
	}
	if a.LeftTop.X == b.LeftTop.X && a.RightBottom.X == b.RightBottom.X {
		if a.RightBottom.Y+1 == b.LeftTop.Y || b.RightBottom.Y+1 == a.LeftTop.Y {
			a.LeftTop.Y = min(a.LeftTop.Y, b.LeftTop.Y)
			a.RightBottom.Y = max(a.RightBottom.Y, b.RightBottom.Y)
			return a, true
		}
	}
	return a, false
}
