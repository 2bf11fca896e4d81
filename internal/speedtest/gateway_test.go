package speedtest

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/shaktinet/wifidash/internal/domain"
)

type fakeRunner struct {
	mu      sync.Mutex
	m       Measurement
	err     error
	running int
	overlap bool
}

func (f *fakeRunner) Run(_ context.Context) (Measurement, error) {
	f.mu.Lock()
	f.running++
	if f.running > 1 {
		f.overlap = true
	}
	f.mu.Unlock()

	time.Sleep(5 * time.Millisecond)

	f.mu.Lock()
	f.running--
	f.mu.Unlock()
	return f.m, f.err
}

func fixedSSID(name string) SSIDFunc { return func() string { return name } }

func TestGateway_FailureYieldsAllNilAndUnknown(t *testing.T) {
	g := NewGateway(zap.NewNop(), &fakeRunner{err: errors.New("no servers")}, fixedSSID("HomeNet"), nil)

	res := g.Measure(context.Background())
	if res.DownloadMbps != nil || res.UploadMbps != nil || res.PingMS != nil {
		t.Fatalf("failure must nil all numeric fields: %+v", res)
	}
	if res.Health != domain.HealthUnknown {
		t.Fatalf("health = %q, want Unknown", res.Health)
	}
	if res.SSID != "HomeNet" {
		t.Fatalf("ssid = %q", res.SSID)
	}
	if res.MeasuredAt.IsZero() {
		t.Fatal("measured_at not set")
	}
}

func TestGateway_SuccessRoundsAndClassifies(t *testing.T) {
	g := NewGateway(zap.NewNop(), &fakeRunner{m: Measurement{
		DownloadMbps: 123.456789,
		UploadMbps:   45.674,
		PingMS:       23.44,
	}}, fixedSSID("HomeNet"), nil)

	res := g.Measure(context.Background())
	if res.DownloadMbps == nil || *res.DownloadMbps != 123.46 {
		t.Fatalf("download = %+v, want 123.46", res.DownloadMbps)
	}
	if res.UploadMbps == nil || *res.UploadMbps != 45.67 {
		t.Fatalf("upload = %+v, want 45.67", res.UploadMbps)
	}
	if res.PingMS == nil || *res.PingMS != 23.4 {
		t.Fatalf("ping = %+v, want 23.4", res.PingMS)
	}
	if res.Health != domain.HealthExcellent {
		t.Fatalf("health = %q, want Excellent", res.Health)
	}
}

func TestGateway_SerializesConcurrentRuns(t *testing.T) {
	runner := &fakeRunner{m: Measurement{DownloadMbps: 10}}
	g := NewGateway(zap.NewNop(), runner, fixedSSID("HomeNet"), nil)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			g.Measure(context.Background())
		}()
	}
	wg.Wait()

	if runner.overlap {
		t.Fatal("gateway let two measurement runs overlap")
	}
}
