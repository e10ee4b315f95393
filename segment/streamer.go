package segment

import (
	"slices"

	"github.com/pkg/errors"
	"github.com/zyedidia/generic/mapset"

	"github.com/lixenwraith/cavegen/cave"
)

// ErrNotAdjacent is returned when a tracked point skips past the neighbours
// of the active segment
var ErrNotAdjacent = errors.New("point moved to a non-adjacent segment")

// Transition describes what to load and unload after the active segment moved
// Segment and block values are indices into the layout and the block list
type Transition struct {
	From, To     int
	Load         []int
	Unload       []int
	AddBlocks    []int
	RemoveBlocks []int
}

// Streamer keeps the active segment and its neighbours loaded as a tracked
// point moves through the world
type Streamer struct {
	layout *Layout
	active int
}

// NewStreamer starts streaming with start as the active segment
func NewStreamer(l *Layout, start int) *Streamer {
	return &Streamer{layout: l, active: start}
}

// Active returns the index of the active segment
func (s *Streamer) Active() int {
	return s.active
}

// Loaded returns the active segment followed by its neighbours
func (s *Streamer) Loaded() []int {
	return s.window(s.active)
}

// LoadedBlocks returns the sorted, de-duplicated block indices of every
// loaded segment
func (s *Streamer) LoadedBlocks() []int {
	return sortedSet(s.blockSet(s.window(s.active)))
}

// Update moves the active segment to follow p. It reports false when p is
// still inside the active segment. Moving further than one neighbour returns
// ErrNotAdjacent and keeps the current state
func (s *Streamer) Update(p cave.Point) (Transition, bool, error) {
	current := &s.layout.Segments[s.active]
	if current.Contains(p) {
		return Transition{}, false, nil
	}

	next := -1
	for _, n := range current.Neighbours {
		if s.layout.Segments[n].Contains(p) {
			next = n
			break
		}
	}
	if next < 0 {
		if _, err := s.layout.Locate(p); err != nil {
			return Transition{}, false, err
		}
		return Transition{}, false, errors.Wrapf(ErrNotAdjacent, "from %v to (%d,%d)", current, p.X, p.Y)
	}

	before := s.window(s.active)
	after := s.window(next)
	beforeSet, afterSet := mapset.New[int](), mapset.New[int]()
	for _, i := range before {
		beforeSet.Put(i)
	}
	for _, i := range after {
		afterSet.Put(i)
	}

	tr := Transition{From: s.active, To: next}
	for _, i := range before {
		if !afterSet.Has(i) {
			tr.Unload = append(tr.Unload, i)
		}
	}
	for _, i := range after {
		if !beforeSet.Has(i) {
			tr.Load = append(tr.Load, i)
		}
	}

	// A block leaves only when no segment that stays loaded still lists it
	oldBlocks, newBlocks := s.blockSet(before), s.blockSet(after)
	for _, b := range sortedSet(oldBlocks) {
		if !newBlocks.Has(b) {
			tr.RemoveBlocks = append(tr.RemoveBlocks, b)
		}
	}
	for _, b := range sortedSet(newBlocks) {
		if !oldBlocks.Has(b) {
			tr.AddBlocks = append(tr.AddBlocks, b)
		}
	}

	s.active = next
	return tr, true, nil
}

// Reset makes seg the active segment without computing a transition
func (s *Streamer) Reset(seg int) {
	s.active = seg
}

func (s *Streamer) window(seg int) []int {
	n := s.layout.Segments[seg].Neighbours
	out := make([]int, 0, len(n)+1)
	out = append(out, seg)
	return append(out, n...)
}

func (s *Streamer) blockSet(segs []int) mapset.Set[int] {
	set := mapset.New[int]()
	for _, i := range segs {
		for _, b := range s.layout.Segments[i].Blocks {
			set.Put(b)
		}
	}
	return set
}

func sortedSet(set mapset.Set[int]) []int {
	out := make([]int, 0, set.Size())
	set.Each(func(v int) {
		out = append(out, v)
	})
	slices.Sort(out)
	return out
}
