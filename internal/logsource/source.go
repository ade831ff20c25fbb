package logsource

import (
	"context"
	"sync"
)

// Source is the raw line feed from the balancer daemon's log output.
//
// Tail returns the most recent n lines as one text blob; both physical
// output channels of the daemon are combined, callers must not assume
// either side is empty. Follow opens a fresh live session per call; a
// session is infinite and not restartable.
type Source interface {
	Tail(ctx context.Context, lines int) (string, error)
	Follow(ctx context.Context, backfill int) (*FollowHandle, error)
}

// FollowHandle is one live follow session. Lines yields raw lines in
// arrival order and closes when the session ends. Stop is idempotent
// and releases the underlying reader; a partially read line is
// discarded, not delivered.
type FollowHandle struct {
	lines <-chan string
	stop  func()
	once  sync.Once
}

// NewFollowHandle wraps a line channel and teardown hook into a session
// handle. Sources call this; tests can feed a handle from any channel.
func NewFollowHandle(lines <-chan string, stop func()) *FollowHandle {
	return &FollowHandle{lines: lines, stop: stop}
}

func (h *FollowHandle) Lines() <-chan string {
	return h.lines
}

func (h *FollowHandle) Stop() {
	h.once.Do(h.stop)
}

// followBuffer softens bursts without reordering; sends still block once
// it is full so backpressure reaches the reader.
const followBuffer = 64

// maxLineBytes caps a single log line during follow reads.
const maxLineBytes = 1024 * 1024

func sendLine(ctx context.Context, out chan<- string, line string) bool {
	select {
	case out <- line:
		return true
	case <-ctx.Done():
		return false
	}
}
