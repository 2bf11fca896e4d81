package probe

import (
	"context"
	"os/exec"
	"runtime"
	"strconv"
	"time"
)

// killMargin bounds how long we wait for a killed ping process to release
// its pipes before Wait gives up on it.
const killMargin = 1 * time.Second

// ExecPinger shells out to the system ping tool, one echo request per probe.
// The subprocess is forcibly terminated once Timeout elapses, so a hung host
// can never stall the caller past Timeout+killMargin.
type ExecPinger struct {
	Timeout time.Duration

	// test seams; zero values select the real ping binary and arguments
	bin  string
	args []string
}

// NewExecPinger returns a Pinger backed by the OS ping command.
func NewExecPinger(timeout time.Duration) *ExecPinger {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &ExecPinger{Timeout: timeout}
}

// Ping runs one echo request. Any execution error (binary missing, non-zero
// exit, timeout kill) is reported as unreachable, never as an error.
func (p *ExecPinger) Ping(ctx context.Context, addr string) Result {
	cctx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()

	bin := p.bin
	if bin == "" {
		bin = "ping"
	}
	args := p.args
	if args == nil {
		args = pingArgs(addr, p.Timeout)
	}

	cmd := exec.CommandContext(cctx, bin, args...)
	cmd.WaitDelay = killMargin

	out, err := cmd.CombinedOutput()
	if err != nil {
		return Result{}
	}
	return Result{Reachable: true, LatencyMS: ParseLatency(string(out))}
}

// pingArgs builds the single-echo invocation for the running OS.
// Windows takes its per-reply timeout in milliseconds, Unix-likes in
// whole seconds (rounded up, minimum 1).
func pingArgs(addr string, timeout time.Duration) []string {
	switch runtime.GOOS {
	case "windows":
		ms := int(timeout.Milliseconds())
		if ms < 100 {
			ms = 100
		}
		return []string{"-n", "1", "-w", strconv.Itoa(ms), addr}
	case "darwin":
		ms := int(timeout.Milliseconds())
		if ms < 100 {
			ms = 100
		}
		return []string{"-n", "-c", "1", "-W", strconv.Itoa(ms), addr}
	default:
		sec := int(timeout.Seconds() + 0.5)
		if sec < 1 {
			sec = 1
		}
		return []string{"-c", "1", "-W", strconv.Itoa(sec), addr}
	}
}
