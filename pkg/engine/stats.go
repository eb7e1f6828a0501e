package engine

import (
	"sync"
	"time"
)

const defaultStatsCapacity = 120

// CycleStats summarizes one reconciliation cycle.
type CycleStats struct {
	When      time.Time     `json:"ts"`
	Scanned   int           `json:"scanned"`
	Dirty     int           `json:"dirty"`
	Built     int           `json:"built"`
	Abandoned int           `json:"abandoned"`
	Spawned   uint64        `json:"spawned"`
	Despawned uint64        `json:"despawned"`
	Duration  time.Duration `json:"durationNs"`
}

// StatsBuffer stores recent cycle stats in a ring buffer. Safe for
// concurrent use; the debug server reads while the engine writes.
type StatsBuffer struct {
	mu      sync.RWMutex
	samples []CycleStats
	index   int
	count   int
}

// NewStatsBuffer creates a buffer holding up to capacity samples.
func NewStatsBuffer(capacity int) *StatsBuffer {
	if capacity < 1 {
		capacity = 1
	}
	return &StatsBuffer{samples: make([]CycleStats, capacity)}
}

// Add records a sample, evicting the oldest when full.
func (b *StatsBuffer) Add(s CycleStats) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.samples[b.index] = s
	b.index = (b.index + 1) % len(b.samples)
	if b.count < len(b.samples) {
		b.count++
	}
}

// Latest returns the most recent sample.
func (b *StatsBuffer) Latest() (CycleStats, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.count == 0 {
		return CycleStats{}, false
	}
	idx := (b.index - 1 + len(b.samples)) % len(b.samples)
	return b.samples[idx], true
}

// All returns the retained samples, oldest first.
func (b *StatsBuffer) All() []CycleStats {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]CycleStats, 0, b.count)
	start := b.index - b.count
	for i := 0; i < b.count; i++ {
		out = append(out, b.samples[(start+i+len(b.samples))%len(b.samples)])
	}
	return out
}

// Len returns the number of retained samples.
func (b *StatsBuffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.count
}
