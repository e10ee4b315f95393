// Package status collects generation statistics: counters, gauges, and stage
// timings written by the pipeline and read by the CLI
package status

import (
	"fmt"
	"io"
	"sort"
	"sync/atomic"
	"time"
)

// Registry groups metric maps by value type
// Pipeline stages cache the pointers they write; readers take a Snapshot
type Registry struct {
	Bools   *MetricMap[atomic.Bool]
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:   NewMetricMap[atomic.Bool](),
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[AtomicFloat](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// TotalCount returns the number of metrics across all types
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Floats.Count() + r.Strings.Count()
}

// Time starts a stage timer; the returned func records elapsed milliseconds
// under TimePrefix+stage
func (r *Registry) Time(stage string) func() {
	start := time.Now()
	return func() {
		r.Floats.Get(TimePrefix + stage).Set(float64(time.Since(start).Microseconds()) / 1000)
	}
}

// Snapshot is a point-in-time copy of every metric
type Snapshot struct {
	Bools   map[string]bool
	Ints    map[string]int64
	Floats  map[string]float64
	Strings map[string]string
}

// Snapshot copies the current values
func (r *Registry) Snapshot() Snapshot {
	s := Snapshot{
		Bools:   make(map[string]bool, r.Bools.Count()),
		Ints:    make(map[string]int64, r.Ints.Count()),
		Floats:  make(map[string]float64, r.Floats.Count()),
		Strings: make(map[string]string, r.Strings.Count()),
	}
	r.Bools.Range(func(k string, v *atomic.Bool) { s.Bools[k] = v.Load() })
	r.Ints.Range(func(k string, v *atomic.Int64) { s.Ints[k] = v.Load() })
	r.Floats.Range(func(k string, v *AtomicFloat) { s.Floats[k] = v.Get() })
	r.Strings.Range(func(k string, v *AtomicString) { s.Strings[k] = v.Load() })
	return s
}

// WriteTo prints one "key value" line per metric, sorted by key
func (s Snapshot) WriteTo(w io.Writer) (int64, error) {
	lines := make([]string, 0, len(s.Bools)+len(s.Ints)+len(s.Floats)+len(s.Strings))
	for k, v := range s.Bools {
		lines = append(lines, fmt.Sprintf("%-28s %t", k, v))
	}
	for k, v := range s.Ints {
		lines = append(lines, fmt.Sprintf("%-28s %d", k, v))
	}
	for k, v := range s.Floats {
		lines = append(lines, fmt.Sprintf("%-28s %.3f", k, v))
	}
	for k, v := range s.Strings {
		lines = append(lines, fmt.Sprintf("%-28s %s", k, v))
	}
	sort.Strings(lines)

	var total int64
	for _, line := range lines {
		n, err := io.WriteString(w, line+"\n")
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
