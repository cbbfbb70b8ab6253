package share

import (
	"os"
	"sync"
)

// Terminal serializes writes to a terminal file. Passed to Bubble Tea as the
// program output and to a Sink, it keeps an OSC 52 sequence from landing in
// the middle of a rendered frame.
type Terminal struct {
	mu sync.Mutex
	f  *os.File
}

// NewTerminal wraps f.
func NewTerminal(f *os.File) *Terminal {
	return &Terminal{f: f}
}

// Write writes p in a single locked call.
func (t *Terminal) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.f.Write(p)
}

// Read reads from the underlying file.
func (t *Terminal) Read(p []byte) (int, error) {
	return t.f.Read(p)
}

// Close is a no-op; the caller owns the file.
func (t *Terminal) Close() error {
	return nil
}

// Fd returns the file descriptor so the program still detects a TTY.
func (t *Terminal) Fd() uintptr {
	return t.f.Fd()
}
