package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/shaktinet/wifidash/internal/domain"
	"github.com/shaktinet/wifidash/internal/probe"
	"github.com/shaktinet/wifidash/internal/state"
)

// --- fakes ---

// scriptedPinger returns a canned result per address; unknown addresses
// fail. An optional delay simulates a slow host.
type scriptedPinger struct {
	results map[string]probe.Result
	delay   map[string]time.Duration
	calls   atomic.Int64
}

func (p *scriptedPinger) Ping(_ context.Context, addr string) probe.Result {
	p.calls.Add(1)
	if d := p.delay[addr]; d > 0 {
		time.Sleep(d)
	}
	return p.results[addr]
}

func lat(v float64) *float64 { return &v }

var monitorTargets = []domain.Target{
	{Name: "router_24", Address: "192.168.1.1"},
	{Name: "router_5", Address: "192.168.1.2"},
	{Name: "ap_attic", Address: "192.168.1.3"},
}

// --- tests ---

func TestMonitor_RunOnceUpdatesAllTargets(t *testing.T) {
	store := state.NewStore(monitorTargets, 10)
	pinger := &scriptedPinger{results: map[string]probe.Result{
		"192.168.1.1": {Reachable: true, LatencyMS: lat(3.2)},
		"192.168.1.2": {Reachable: true},
	}}

	m := NewMonitor(zap.NewNop(), store, pinger, time.Second, 4, nil, nil)
	m.runOnce(context.Background())

	snap := store.SnapshotAll()
	if snap["router_24"].State != domain.StateUp || *snap["router_24"].LatencyMS != 3.2 {
		t.Fatalf("router_24: %+v", snap["router_24"])
	}
	// reachable without a parseable latency is still Up
	if snap["router_5"].State != domain.StateUp || snap["router_5"].LatencyMS != nil {
		t.Fatalf("router_5: %+v", snap["router_5"])
	}
	if snap["ap_attic"].State != domain.StateDown {
		t.Fatalf("ap_attic: %+v", snap["ap_attic"])
	}

	for _, tgt := range monitorTargets {
		if hist, _ := store.History(tgt.Name); len(hist) != 1 {
			t.Fatalf("%s history len = %d, want 1", tgt.Name, len(hist))
		}
	}
}

func TestMonitor_FailingTargetDoesNotCorruptOthers(t *testing.T) {
	store := state.NewStore(monitorTargets, 10)
	pinger := &scriptedPinger{
		results: map[string]probe.Result{
			"192.168.1.1": {Reachable: true, LatencyMS: lat(1)},
			"192.168.1.2": {Reachable: true, LatencyMS: lat(2)},
		},
		delay: map[string]time.Duration{"192.168.1.3": 50 * time.Millisecond},
	}

	m := NewMonitor(zap.NewNop(), store, pinger, time.Second, 4, nil, nil)
	m.runOnce(context.Background())

	snap := store.SnapshotAll()
	if snap["router_24"].State != domain.StateUp || snap["router_5"].State != domain.StateUp {
		t.Fatalf("healthy targets corrupted by a slow failing one: %+v", snap)
	}
	if snap["ap_attic"].State != domain.StateDown {
		t.Fatalf("ap_attic: %+v", snap["ap_attic"])
	}
}

func TestMonitor_RunTicksUntilCancelled(t *testing.T) {
	store := state.NewStore(monitorTargets[:1], 500)
	pinger := &scriptedPinger{results: map[string]probe.Result{
		"192.168.1.1": {Reachable: true, LatencyMS: lat(1)},
	}}

	m := NewMonitor(zap.NewNop(), store, pinger, 5*time.Millisecond, 1, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.Run(ctx)
		close(done)
	}()

	// immediate pass plus several ticks
	time.Sleep(60 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("monitor did not stop on context cancellation")
	}

	if n := pinger.calls.Load(); n < 3 {
		t.Fatalf("expected several probe passes, got %d", n)
	}
	hist, _ := store.History("router_24")
	if len(hist) < 3 {
		t.Fatalf("expected several history samples, got %d", len(hist))
	}
	for i := 1; i < len(hist); i++ {
		if hist[i].At.Before(hist[i-1].At) {
			t.Fatalf("history out of order at %d", i)
		}
	}
}

func TestNewMonitor_Defaults(t *testing.T) {
	m := NewMonitor(zap.NewNop(), nil, nil, 0, 0, nil, nil)
	if m.Interval != 8*time.Second {
		t.Fatalf("default interval = %v", m.Interval)
	}
	if m.Concurrency != 1 {
		t.Fatalf("default concurrency = %d", m.Concurrency)
	}
}
