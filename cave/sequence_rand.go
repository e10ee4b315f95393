package cave

// SequenceRand is a deterministic Rand that replays a fixed list of values,
// wrapping around at the end. An empty list always returns 0
type SequenceRand struct {
	Values []float64
	pos    int
}

// NewSequenceRand creates a SequenceRand over values
func NewSequenceRand(values ...float64) *SequenceRand {
	return &SequenceRand{Values: values}
}

// Float64 returns the next value in the sequence
func (s *SequenceRand) Float64() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	v := s.Values[s.pos%len(s.Values)]
	s.pos++
	return v
}

// Draws returns how many values have been consumed
func (s *SequenceRand) Draws() int {
	return s.pos
}
