package probe

import (
	"regexp"
	"strconv"
)

// Ping output varies per OS. Unix-like tools print a per-reply
// "time=12.3 ms" (sub-millisecond replies show "time<1ms"); Windows prints
// a summary trailer "Average = 12ms".
var (
	pingTimeRe   = regexp.MustCompile(`(?i)time[=<]\s*([\d.]+)\s*ms`)
	windowsAvgRe = regexp.MustCompile(`(?i)Average = (\d+)ms`)
)

// ParseLatency extracts the round-trip latency in milliseconds from raw
// ping output. It returns nil when no known textual form matches.
func ParseLatency(output string) *float64 {
	m := pingTimeRe.FindStringSubmatch(output)
	if m == nil {
		m = windowsAvgRe.FindStringSubmatch(output)
	}
	if m == nil {
		return nil
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nil
	}
	return &v
}
