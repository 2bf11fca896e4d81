package state

import "github.com/shaktinet/wifidash/internal/domain"

// Ring is a fixed-capacity FIFO buffer of history samples. Append and
// eviction are O(1); memory footprint is fixed regardless of uptime.
//
// Ring is not safe for concurrent use on its own; the owning Store's mutex
// is the single synchronization boundary for it.
type Ring struct {
	buf   []domain.HistorySample
	head  int // index of the oldest sample
	count int
}

// NewRing allocates a ring holding at most capacity samples.
func NewRing(capacity int) *Ring {
	if capacity < 1 {
		capacity = 1
	}
	return &Ring{buf: make([]domain.HistorySample, capacity)}
}

// Append inserts a sample, evicting the oldest one when full.
func (r *Ring) Append(s domain.HistorySample) {
	if r.count < len(r.buf) {
		r.buf[(r.head+r.count)%len(r.buf)] = s
		r.count++
		return
	}
	r.buf[r.head] = s
	r.head = (r.head + 1) % len(r.buf)
}

// Len reports how many samples the ring currently holds.
func (r *Ring) Len() int { return r.count }

// Cap reports the fixed capacity.
func (r *Ring) Cap() int { return len(r.buf) }

// Snapshot returns the samples oldest-first as a fresh copy.
func (r *Ring) Snapshot() []domain.HistorySample {
	out := make([]domain.HistorySample, r.count)
	for i := 0; i < r.count; i++ {
		out[i] = r.buf[(r.head+i)%len(r.buf)]
	}
	return out
}
