// Package wifi looks up the currently associated wireless network name via
// OS-specific tools.
package wifi

import (
	"context"
	"os/exec"
	"regexp"
	"runtime"
	"strings"
	"time"
)

// UnknownSSID is the sentinel returned whenever the lookup is unavailable,
// unsupported or fails. Callers never see an error from this package.
const UnknownSSID = "Unknown"

const lookupTimeout = 3 * time.Second

var (
	netshSSIDRe   = regexp.MustCompile(`(?m)^\s*SSID\s*:\s*(.+)$`)
	airportSSIDRe = regexp.MustCompile(` SSID: (.+)`)
)

// CurrentSSID returns the SSID of the associated wireless network, or
// UnknownSSID when it cannot be determined.
func CurrentSSID() string {
	ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
	defer cancel()

	switch runtime.GOOS {
	case "windows":
		out, err := exec.CommandContext(ctx, "netsh", "wlan", "show", "interfaces").Output()
		if err != nil {
			return UnknownSSID
		}
		return parseNetshSSID(string(out))
	case "linux":
		out, err := exec.CommandContext(ctx, "iwgetid", "-r").Output()
		if err != nil {
			return UnknownSSID
		}
		if ssid := strings.TrimSpace(string(out)); ssid != "" {
			return ssid
		}
		return UnknownSSID
	case "darwin":
		out, err := exec.CommandContext(ctx,
			"/System/Library/PrivateFrameworks/Apple80211.framework/Versions/Current/Resources/airport",
			"-I").Output()
		if err != nil {
			return UnknownSSID
		}
		return parseAirportSSID(string(out))
	default:
		return UnknownSSID
	}
}

func parseNetshSSID(out string) string {
	if m := netshSSIDRe.FindStringSubmatch(out); m != nil {
		if ssid := strings.TrimSpace(m[1]); ssid != "" {
			return ssid
		}
	}
	return UnknownSSID
}

func parseAirportSSID(out string) string {
	if m := airportSSIDRe.FindStringSubmatch(out); m != nil {
		if ssid := strings.TrimSpace(m[1]); ssid != "" {
			return ssid
		}
	}
	return UnknownSSID
}
