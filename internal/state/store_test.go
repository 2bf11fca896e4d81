package state

import (
	"sync"
	"testing"
	"time"

	"github.com/shaktinet/wifidash/internal/domain"
)

var testTargets = []domain.Target{
	{Name: "router_24", Address: "192.168.1.1"},
	{Name: "router_5", Address: "192.168.1.2"},
}

func TestStore_StartsUnknown(t *testing.T) {
	s := NewStore(testTargets, 10)

	snap := s.SnapshotAll()
	if len(snap) != 2 {
		t.Fatalf("snapshot has %d records, want 2", len(snap))
	}
	for name, rec := range snap {
		if rec.State != domain.StateUnknown {
			t.Fatalf("%s state = %q, want Unknown", name, rec.State)
		}
		if rec.LastCheckedAt != nil || rec.LatencyMS != nil {
			t.Fatalf("%s should have nil timestamp and latency before first tick: %+v", name, rec)
		}
	}
}

func TestStore_ApplyReplacesRecordAndAppendsHistory(t *testing.T) {
	s := NewStore(testTargets, 10)
	now := time.Now()
	lat := 12.5

	s.Apply("router_24", true, &lat, now)

	rec, ok := s.Snapshot("router_24")
	if !ok {
		t.Fatal("missing record")
	}
	if rec.State != domain.StateUp || rec.LatencyMS == nil || *rec.LatencyMS != 12.5 {
		t.Fatalf("unexpected record %+v", rec)
	}
	if rec.LastCheckedAt == nil || !rec.LastCheckedAt.Equal(now) {
		t.Fatalf("unexpected check time %v", rec.LastCheckedAt)
	}

	hist, ok := s.History("router_24")
	if !ok || len(hist) != 1 {
		t.Fatalf("history = %v, want one sample", hist)
	}
	if !hist[0].Reachable || hist[0].LatencyMS == nil {
		t.Fatalf("unexpected sample %+v", hist[0])
	}

	// failed probe flips to Down with nil latency
	s.Apply("router_24", false, nil, now.Add(time.Second))
	rec, _ = s.Snapshot("router_24")
	if rec.State != domain.StateDown || rec.LatencyMS != nil {
		t.Fatalf("unexpected record after failure %+v", rec)
	}
	if hist, _ := s.History("router_24"); len(hist) != 2 {
		t.Fatalf("history len = %d, want 2", len(hist))
	}
}

func TestStore_ApplyUnknownTargetIsNoop(t *testing.T) {
	s := NewStore(testTargets, 10)
	s.Apply("nope", true, nil, time.Now())
	if _, ok := s.Snapshot("nope"); ok {
		t.Fatal("unknown target should not appear")
	}
	if len(s.SnapshotAll()) != 2 {
		t.Fatal("unknown target leaked into the registry")
	}
}

// Readers racing the writer must only ever observe records that were written
// atomically: a record's latency always encodes the same tick as its check
// timestamp.
func TestStore_ConcurrentReadersSeeNoTornRecords(t *testing.T) {
	const ticks = 1000
	s := NewStore(testTargets[:1], 50)
	base := time.Unix(0, 0)

	var wg sync.WaitGroup
	stop := make(chan struct{})
	fail := make(chan string, 8)

	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				rec, ok := s.Snapshot("router_24")
				if !ok {
					fail <- "record vanished"
					return
				}
				if rec.State == domain.StateUnknown {
					continue
				}
				if rec.LastCheckedAt == nil || rec.LatencyMS == nil {
					fail <- "record missing fields mid-tick"
					return
				}
				tick := rec.LastCheckedAt.Sub(base) / time.Second
				if *rec.LatencyMS != float64(tick) {
					fail <- "latency from a different tick than the timestamp"
					return
				}
			}
		}()
	}

	for i := 0; i < ticks; i++ {
		lat := float64(i)
		s.Apply("router_24", true, &lat, base.Add(time.Duration(i)*time.Second))
	}
	close(stop)
	wg.Wait()

	select {
	case msg := <-fail:
		t.Fatal(msg)
	default:
	}
}
