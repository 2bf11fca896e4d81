package probe

import "time"

// New selects a pinger by configured kind: "exec" shells out to the ping
// tool, "icmp" uses raw sockets, "auto" tries raw sockets and falls back
// to the tool on permission errors. Unrecognized kinds get "exec".
func New(kind string, timeout time.Duration) Pinger {
	switch kind {
	case "icmp":
		return NewICMPPinger(timeout)
	case "auto":
		return NewFallbackPinger(NewICMPPinger(timeout), NewExecPinger(timeout))
	default:
		return NewExecPinger(timeout)
	}
}
