package state

import (
	"sync"
	"time"

	"github.com/shaktinet/wifidash/internal/domain"
)

// Store owns all mutable shared state: the per-target status records and
// history rings. The scheduler is the only writer; everything else reads
// point-in-time copies. One mutex guards both structures so a record and
// its history sample land atomically, and readers never observe a record
// that mixes fields from two ticks.
type Store struct {
	mu      sync.RWMutex
	targets []domain.Target
	records map[string]*domain.StatusRecord
	history map[string]*Ring
}

// NewStore initializes every target in the Unknown state with an empty
// history ring of the given capacity.
func NewStore(targets []domain.Target, historyLen int) *Store {
	s := &Store{
		targets: append([]domain.Target(nil), targets...),
		records: make(map[string]*domain.StatusRecord, len(targets)),
		history: make(map[string]*Ring, len(targets)),
	}
	for _, t := range targets {
		s.records[t.Name] = &domain.StatusRecord{
			Address: t.Address,
			State:   domain.StateUnknown,
		}
		s.history[t.Name] = NewRing(historyLen)
	}
	return s
}

// Targets returns the static target set.
func (s *Store) Targets() []domain.Target {
	return append([]domain.Target(nil), s.targets...)
}

// Apply records one probe outcome for a target: the status record is
// replaced wholesale and a history sample is appended, both under the same
// lock acquisition. Unknown target names are ignored.
func (s *Store) Apply(name string, reachable bool, latencyMS *float64, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[name]
	if !ok {
		return
	}

	st := domain.StateDown
	if reachable {
		st = domain.StateUp
	}
	checked := at
	s.records[name] = &domain.StatusRecord{
		Address:       rec.Address,
		State:         st,
		LastCheckedAt: &checked,
		LatencyMS:     latencyMS,
	}
	s.history[name].Append(domain.HistorySample{
		At:        at,
		Reachable: reachable,
		LatencyMS: latencyMS,
	})
}

// SnapshotAll returns a copy of every status record keyed by target name.
// Each record is internally consistent; the map as a whole may span ticks.
func (s *Store) SnapshotAll() map[string]domain.StatusRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]domain.StatusRecord, len(s.records))
	for name, rec := range s.records {
		out[name] = *rec
	}
	return out
}

// Snapshot returns a copy of one target's record.
func (s *Store) Snapshot(name string) (domain.StatusRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[name]
	if !ok {
		return domain.StatusRecord{}, false
	}
	return *rec, true
}

// History returns a chronological copy of one target's samples.
func (s *Store) History(name string) ([]domain.HistorySample, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ring, ok := s.history[name]
	if !ok {
		return nil, false
	}
	return ring.Snapshot(), true
}
