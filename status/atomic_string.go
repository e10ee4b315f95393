package status

import "sync/atomic"

// MaxStringLen caps string metrics; a canonical UUID is 36 bytes
const MaxStringLen = 64

// AtomicString is a string metric such as world.id, replaced whole on every
// store so readers never see a torn value
type AtomicString struct {
	v atomic.Value
}

// Store replaces the value; anything past MaxStringLen bytes is dropped
func (s *AtomicString) Store(val string) {
	s.v.Store(val[:min(len(val), MaxStringLen)])
}

// Load returns the last stored value, "" before the first Store
func (s *AtomicString) Load() string {
	val, _ := s.v.Load().(string)
	return val
}
