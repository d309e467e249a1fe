// Package accesslog appends one record per handled request to a shared sink.
package accesslog

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/f4ah6o/httpd10/internal/request"
)

// TimeLayout is the UTC timestamp layout written on the second line of a record.
const TimeLayout = "2006-01-02 15:04:05.999999999 UTC"

// Record describes one handled request.
type Record struct {
	Request request.Request
	Time    time.Time
	Status  int
}

// NewRecord captures the current UTC time for req.
func NewRecord(req request.Request, status int) Record {
	return Record{Request: req, Time: time.Now().UTC(), Status: status}
}

// Bytes formats the record as three lines followed by a blank line:
//
//	<method> <path> <protocol>
//	<timestamp>
//	<status>
func (r Record) Bytes() []byte {
	var buf bytes.Buffer
	buf.WriteString(r.Request.String())
	buf.WriteByte('\n')
	buf.WriteString(r.Time.UTC().Format(TimeLayout))
	buf.WriteByte('\n')
	buf.WriteString(strconv.Itoa(r.Status))
	buf.WriteString("\n\n")
	return buf.Bytes()
}

// Logger serializes records onto a single writer. It is safe for concurrent
// use; each record is written by one Write call while the lock is held.
type Logger struct {
	mu sync.Mutex
	w  io.Writer
}

// New creates a Logger writing to w.
func New(w io.Writer) *Logger {
	return &Logger{w: w}
}

// Open opens (creating if needed) an append-only log file at path.
func Open(path string) (*Logger, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open access log: %w", err)
	}
	return New(f), nil
}

// Close closes the underlying writer if it is an io.Closer.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if c, ok := l.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Log appends rec. A failed or short write is returned and not retried.
func (l *Logger) Log(rec Record) error {
	b := rec.Bytes()

	l.mu.Lock()
	defer l.mu.Unlock()

	n, err := l.w.Write(b)
	if err != nil {
		return fmt.Errorf("write access log: %w", err)
	}
	if n != len(b) {
		return fmt.Errorf("write access log: %w", io.ErrShortWrite)
	}
	return nil
}
