package probe

import "context"

// Result is the outcome of a single reachability probe.
//
// LatencyMS is nil when the probe failed, and also when the probe succeeded
// but no latency could be parsed from the tool output. Success without a
// metric is valid and must not be conflated with failure.
type Result struct {
	Reachable bool
	LatencyMS *float64
}

// Pinger issues one reachability+latency probe against a single host.
// Implementations never return an error: any failure mode collapses to
// Result{Reachable: false}.
type Pinger interface {
	Ping(ctx context.Context, addr string) Result
}
