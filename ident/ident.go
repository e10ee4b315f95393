// Package ident hands out unique integer ids for wall blocks and segments
package ident

import "sync/atomic"

// Source is a monotonically increasing id counter
// Zero value is ready to use and starts at 0; ids are never reused
// Safe for concurrent use so one Source can back several generators
type Source struct {
	next atomic.Int64
}

// NewSource returns a Source whose first id is start
func NewSource(start int) *Source {
	s := &Source{}
	s.next.Store(int64(start))
	return s
}

// Next returns a fresh id
func (s *Source) Next() int {
	return int(s.next.Add(1) - 1)
}

// Peek returns the id the next call to Next will return
func (s *Source) Peek() int {
	return int(s.next.Load())
}
