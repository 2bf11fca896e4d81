package probe

import (
	"context"
	"net"
	"os"
	"sync/atomic"
	"time"

	"golang.org/x/net/icmp"
	"golang.org/x/net/ipv4"
	"golang.org/x/net/ipv6"
)

const echoPayload = "wifidash"

// ICMPPinger sends echo requests over a raw socket instead of shelling out.
// It needs elevated privileges on most systems; see FallbackPinger.
type ICMPPinger struct {
	Timeout time.Duration

	id  int
	seq uint32
}

// NewICMPPinger returns a raw-socket pinger with a process-scoped identifier.
func NewICMPPinger(timeout time.Duration) *ICMPPinger {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &ICMPPinger{Timeout: timeout, id: os.Getpid() & 0xffff}
}

// Ping sends one echo request and waits for the matching reply. Like every
// Pinger it swallows errors: resolution failures, socket errors and
// timeouts all come back as unreachable.
func (p *ICMPPinger) Ping(ctx context.Context, addr string) Result {
	r, _ := p.ping(ctx, addr)
	return r
}

// ping is the fallible inner probe; FallbackPinger inspects the error to
// detect permission problems.
func (p *ICMPPinger) ping(ctx context.Context, addr string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	ipAddr, err := net.ResolveIPAddr("ip", addr)
	if err != nil || ipAddr.IP == nil {
		return Result{}, err
	}

	network, proto, reqType, replyType := icmpSettings(ipAddr.IP)
	conn, err := icmp.ListenPacket(network, "")
	if err != nil {
		return Result{}, err
	}
	defer conn.Close()

	seq := int(atomic.AddUint32(&p.seq, 1) & 0xffff)
	msg := icmp.Message{
		Type: reqType,
		Code: 0,
		Body: &icmp.Echo{ID: p.id, Seq: seq, Data: []byte(echoPayload)},
	}
	payload, err := msg.Marshal(nil)
	if err != nil {
		return Result{}, err
	}

	deadline := time.Now().Add(p.Timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := conn.SetDeadline(deadline); err != nil {
		return Result{}, err
	}

	start := time.Now()
	if _, err := conn.WriteTo(payload, ipAddr); err != nil {
		return Result{}, err
	}

	buf := make([]byte, 1500)
	for {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		n, peer, err := conn.ReadFrom(buf)
		if err != nil {
			return Result{}, err
		}
		if peer == nil {
			continue
		}
		reply, err := icmp.ParseMessage(proto, buf[:n])
		if err != nil || reply.Type != replyType {
			continue
		}
		body, ok := reply.Body.(*icmp.Echo)
		if !ok || body.ID != p.id || body.Seq != seq {
			continue
		}
		ms := float64(time.Since(start)) / float64(time.Millisecond)
		return Result{Reachable: true, LatencyMS: &ms}, nil
	}
}

func icmpSettings(ip net.IP) (network string, proto int, reqType, replyType icmp.Type) {
	if ip.To4() != nil {
		return "ip4:icmp", ipv4.ICMPTypeEcho.Protocol(), ipv4.ICMPTypeEcho, ipv4.ICMPTypeEchoReply
	}
	return "ip6:ipv6-icmp", ipv6.ICMPTypeEchoRequest.Protocol(), ipv6.ICMPTypeEchoRequest, ipv6.ICMPTypeEchoReply
}
