package probe

import (
	"context"
	"errors"
	"os"
	"strings"
	"syscall"
)

// FallbackPinger probes with a raw-socket pinger and falls back to the
// system ping tool when raw sockets are not permitted. Useful for running
// unprivileged without configuring anything.
type FallbackPinger struct {
	primary   *ICMPPinger
	secondary Pinger
}

// NewFallbackPinger wraps primary with secondary as the unprivileged path.
func NewFallbackPinger(primary *ICMPPinger, secondary Pinger) *FallbackPinger {
	return &FallbackPinger{primary: primary, secondary: secondary}
}

func (p *FallbackPinger) Ping(ctx context.Context, addr string) Result {
	res, err := p.primary.ping(ctx, addr)
	if res.Reachable || !isPermissionError(err) {
		return res
	}
	return p.secondary.Ping(ctx, addr)
}

func isPermissionError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, os.ErrPermission) || errors.Is(err, syscall.EPERM) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "operation not permitted") || strings.Contains(msg, "permission denied")
}
