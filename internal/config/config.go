package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/shaktinet/wifidash/internal/domain"
)

type Config struct {
	Addr        string        // API bind address
	LogDir      string        // logs directory
	LogLevel    string        // zap level name: debug, info, warn, error
	TargetsFile string        // YAML target list; empty means built-in defaults
	Interval    time.Duration // probe cadence
	PingTimeout time.Duration // per-probe bound
	HistoryLen  int           // samples kept per target
	Concurrency int           // max in-flight probes per tick
	EventLog    string        // CSV probe log path; empty disables
	Pinger      string        // exec | icmp | auto

	Targets []domain.Target
}

// defaultTargets mirrors the usual home layout: one entry per radio band of
// each router/AP. Real deployments provide TARGETS_FILE.
var defaultTargets = []domain.Target{
	{Name: "Router_2.4GHz", Address: "192.168.1.1"},
	{Name: "Router_5GHz", Address: "192.168.1.2"},
}

func FromEnv() Config {
	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = "127.0.0.1:5000"
	}

	logDir := os.Getenv("LOG_DIR")
	if logDir == "" {
		logDir = "logs"
	}

	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = "info"
	}

	interval := 8 * time.Second
	if v := os.Getenv("CHECK_INTERVAL_SEC"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			interval = time.Duration(n) * time.Second
		}
	}

	pingTimeout := 2 * time.Second
	if v := os.Getenv("PING_TIMEOUT_SEC"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			pingTimeout = time.Duration(n) * time.Second
		}
	}

	historyLen := 300
	if v := os.Getenv("HISTORY_LENGTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			historyLen = n
		}
	}

	concurrency := 4
	if v := os.Getenv("MAX_CONCURRENT_PROBES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			concurrency = n
		}
	}

	pinger := os.Getenv("PINGER")
	if pinger == "" {
		pinger = "exec"
	}

	return Config{
		Addr:        addr,
		LogDir:      logDir,
		LogLevel:    level,
		TargetsFile: os.Getenv("TARGETS_FILE"),
		Interval:    interval,
		PingTimeout: pingTimeout,
		HistoryLen:  historyLen,
		Concurrency: concurrency,
		EventLog:    os.Getenv("PROBE_LOG_FILE"),
		Pinger:      pinger,
	}
}

type targetsFile struct {
	Targets []domain.Target `yaml:"targets"`
}

// LoadTargets fills c.Targets from the configured YAML file, or the
// built-in defaults when no file is configured. A malformed target set is
// fatal at startup; there is no runtime reload.
func (c *Config) LoadTargets() error {
	if c.TargetsFile == "" {
		c.Targets = append([]domain.Target(nil), defaultTargets...)
		return nil
	}

	data, err := os.ReadFile(c.TargetsFile)
	if err != nil {
		return fmt.Errorf("read targets file: %w", err)
	}

	var tf targetsFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return fmt.Errorf("parse targets file: %w", err)
	}

	if err := validateTargets(tf.Targets); err != nil {
		return fmt.Errorf("targets file %s: %w", c.TargetsFile, err)
	}
	c.Targets = tf.Targets
	return nil
}

func validateTargets(targets []domain.Target) error {
	if len(targets) == 0 {
		return errors.New("no targets defined")
	}
	seen := make(map[string]struct{}, len(targets))
	for i, t := range targets {
		if t.Name == "" {
			return fmt.Errorf("target %d has an empty name", i)
		}
		if t.Address == "" {
			return fmt.Errorf("target %q has an empty address", t.Name)
		}
		if _, dup := seen[t.Name]; dup {
			return fmt.Errorf("duplicate target name %q", t.Name)
		}
		seen[t.Name] = struct{}{}
	}
	return nil
}
