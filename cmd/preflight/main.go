// cmd/preflight/main.go
package main

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/shaktinet/wifidash/internal/config"
)

func main() {
	fail := func(msg string) {
		fmt.Fprintln(os.Stderr, "✖", msg)
		os.Exit(1)
	}
	warn := func(msg string) { fmt.Fprintln(os.Stderr, "⚠", msg) }
	ok := func(msg string) { fmt.Println("✔", msg) }

	cfg := config.FromEnv()

	if err := cfg.LoadTargets(); err != nil {
		fail(fmt.Sprintf("target set invalid: %v", err))
	}
	ok(fmt.Sprintf("target set valid (%d targets)", len(cfg.Targets)))

	if cfg.TargetsFile == "" {
		warn("TARGETS_FILE not set; built-in default targets will be monitored.")
	}

	if cfg.Pinger != "icmp" {
		if _, err := exec.LookPath("ping"); err != nil {
			fail("ping binary not found in PATH (set PINGER=icmp to use raw sockets).")
		}
		ok("ping binary found")
	}

	switch runtime.GOOS {
	case "linux":
		if _, err := exec.LookPath("iwgetid"); err != nil {
			warn("iwgetid not found; speedtest responses will report SSID \"Unknown\".")
		} else {
			ok("iwgetid found")
		}
	case "windows":
		if _, err := exec.LookPath("netsh"); err != nil {
			warn("netsh not found; speedtest responses will report SSID \"Unknown\".")
		}
	}

	if cfg.EventLog == "" {
		warn("PROBE_LOG_FILE not set; probe events will not be logged to CSV.")
	}

	ok(fmt.Sprintf("will bind %s, probe every %s", cfg.Addr, cfg.Interval))
}
