package speedtest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/showwin/speedtest-go/speedtest"
)

// NetRunner measures bandwidth against the speedtest.net server fleet.
type NetRunner struct {
	client *speedtest.Speedtest
}

func NewNetRunner() *NetRunner {
	return &NetRunner{client: speedtest.New()}
}

// Run discovers the closest server and performs the latency, download and
// upload tests against it.
func (r *NetRunner) Run(ctx context.Context) (Measurement, error) {
	servers, err := r.client.FetchServerListContext(ctx)
	if err != nil {
		return Measurement{}, fmt.Errorf("fetch server list: %w", err)
	}
	candidates, err := servers.FindServer(nil)
	if err != nil {
		return Measurement{}, fmt.Errorf("find server: %w", err)
	}
	if len(candidates) == 0 {
		return Measurement{}, errors.New("no speedtest servers available")
	}
	srv := candidates[0]

	if err := srv.PingTestContext(ctx, nil); err != nil {
		return Measurement{}, fmt.Errorf("ping test: %w", err)
	}
	if err := srv.DownloadTestContext(ctx); err != nil {
		return Measurement{}, fmt.Errorf("download test: %w", err)
	}
	if err := srv.UploadTestContext(ctx); err != nil {
		return Measurement{}, fmt.Errorf("upload test: %w", err)
	}

	return Measurement{
		DownloadMbps: srv.DLSpeed.Mbps(),
		UploadMbps:   srv.ULSpeed.Mbps(),
		PingMS:       float64(srv.Latency) / float64(time.Millisecond),
	}, nil
}
