// Package eventlog appends probe outcomes to a rotated CSV file, one line
// per probe: timestamp, target, reachable, latency. Purely observational;
// nothing reads it back.
package eventlog

import (
	"encoding/csv"
	"strconv"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

type Writer struct {
	mu  sync.Mutex
	csv *csv.Writer
	out *lumberjack.Logger
}

// New opens a rotated CSV log at path. An empty path disables the log and
// returns nil; Record and Close are nil-safe so callers don't branch.
func New(path string) *Writer {
	if path == "" {
		return nil
	}
	out := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    20, // MB
		MaxBackups: 3,
		MaxAge:     30, // days
		Compress:   true,
	}
	return &Writer{csv: csv.NewWriter(out), out: out}
}

// Record appends one probe event. Write errors are swallowed: the event log
// is best-effort and must never disturb the scheduler.
func (w *Writer) Record(at time.Time, target string, reachable bool, latencyMS *float64) {
	if w == nil {
		return
	}
	lat := ""
	if latencyMS != nil {
		lat = strconv.FormatFloat(*latencyMS, 'f', -1, 64)
	}
	reach := "0"
	if reachable {
		reach = "1"
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	_ = w.csv.Write([]string{at.Format("2006-01-02 15:04:05"), target, reach, lat})
	w.csv.Flush()
}

func (w *Writer) Close() error {
	if w == nil {
		return nil
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.csv.Flush()
	return w.out.Close()
}
