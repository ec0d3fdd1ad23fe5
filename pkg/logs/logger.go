// Package logs writes a JSON-lines event log for diagnosing editor
// sessions. It is off unless enabled through the environment.
package logs

import (
	"bufio"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Environment variables read by NewFromEnv.
const (
	EnvEnable = "RABI_LOG"
	EnvFile   = "RABI_LOG_FILE"
)

// Logger writes JSON lines with a timestamp and event fields.
type Logger struct {
	mu      sync.Mutex
	w       *bufio.Writer
	c       io.Closer
	enabled bool
	now     func() time.Time
}

// NewFromEnv returns a logger if RABI_LOG is set to a truthy value
// or if RABI_LOG_FILE is provided. Otherwise it returns a disabled logger.
// When enabled and no file is specified, it writes to ./rabi.log.
func NewFromEnv() *Logger {
	lf := os.Getenv(EnvFile)
	enabled := false
	if v := os.Getenv(EnvEnable); v != "" && v != "0" && v != "false" {
		enabled = true
	}
	if lf != "" {
		enabled = true
	}
	if !enabled {
		return Disabled()
	}
	if lf == "" {
		lf = filepath.Join(".", "rabi.log")
	}
	f, err := os.OpenFile(lf, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		// If we cannot open the requested file, disable logging silently.
		return Disabled()
	}
	return New(f)
}

// New returns an enabled logger writing to w. If w is an io.Closer it is
// closed by Close.
func New(w io.Writer) *Logger {
	l := &Logger{w: bufio.NewWriter(w), enabled: true, now: time.Now}
	if c, ok := w.(io.Closer); ok {
		l.c = c
	}
	return l
}

// Disabled returns a logger that drops every event.
func Disabled() *Logger { return &Logger{} }

// Enabled reports whether events are written.
func (l *Logger) Enabled() bool { return l != nil && l.enabled }

// Close flushes and closes the underlying file if enabled.
func (l *Logger) Close() {
	if !l.Enabled() {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	_ = l.w.Flush()
	if l.c != nil {
		_ = l.c.Close()
	}
	l.enabled = false
}

// Event writes a JSON line with the event name and fields.
// Common fields: key, action, cursor, rows, file, error.
func (l *Logger) Event(event string, fields map[string]any) {
	if !l.Enabled() {
		return
	}
	rec := map[string]any{
		"time":  l.now().Format(time.RFC3339Nano),
		"event": event,
	}
	for k, v := range fields {
		rec[k] = v
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	enc := json.NewEncoder(l.w)
	_ = enc.Encode(rec)
	_ = l.w.Flush()
}
