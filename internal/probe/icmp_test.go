package probe

import (
	"context"
	"net"
	"testing"
	"time"

	"golang.org/x/net/ipv4"
	"golang.org/x/net/ipv6"
)

func TestICMPSettings(t *testing.T) {
	network, _, reqType, replyType := icmpSettings(net.ParseIP("192.168.1.1"))
	if network != "ip4:icmp" || reqType != ipv4.ICMPTypeEcho || replyType != ipv4.ICMPTypeEchoReply {
		t.Fatalf("unexpected ipv4 settings: %s %v %v", network, reqType, replyType)
	}

	network, _, reqType, replyType = icmpSettings(net.ParseIP("fe80::1"))
	if network != "ip6:ipv6-icmp" || reqType != ipv6.ICMPTypeEchoRequest || replyType != ipv6.ICMPTypeEchoReply {
		t.Fatalf("unexpected ipv6 settings: %s %v %v", network, reqType, replyType)
	}
}

func TestICMPPinger_UnresolvableAddressIsUnreachable(t *testing.T) {
	p := NewICMPPinger(200 * time.Millisecond)
	res := p.Ping(context.Background(), "definitely-not-resolvable.invalid")
	if res.Reachable || res.LatencyMS != nil {
		t.Fatalf("want (false, nil), got %+v", res)
	}
}

func TestICMPPinger_CancelledContext(t *testing.T) {
	p := NewICMPPinger(time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if res := p.Ping(ctx, "192.168.1.1"); res.Reachable {
		t.Fatalf("cancelled probe must be unreachable, got %+v", res)
	}
}

func TestIsPermissionError(t *testing.T) {
	if isPermissionError(nil) {
		t.Fatal("nil error is not a permission error")
	}
	if !isPermissionError(&net.OpError{Op: "listen", Err: errOperationNotPermitted{}}) {
		t.Fatal("expected wrapped EPERM-like message to match")
	}
}

type errOperationNotPermitted struct{}

func (errOperationNotPermitted) Error() string { return "socket: operation not permitted" }
