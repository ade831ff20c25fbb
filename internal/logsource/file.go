package logsource

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// maxTailBytes bounds how much of the file a Tail call reads back.
const maxTailBytes = 1024 * 1024

// fileSource tails a daemon log file directly, for deployments where
// the balancer does not run in a container. Follow combines fsnotify
// wakeups with a polling ticker so missed events only delay delivery,
// never lose it.
type fileSource struct {
	path         string
	pollInterval time.Duration
}

func NewFileSource(path string) Source {
	return &fileSource{path: path, pollInterval: 250 * time.Millisecond}
}

func (s *fileSource) Tail(ctx context.Context, lines int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("tailing log file %s: %w", s.path, err)
	}
	last, err := readLastLines(s.path, lines)
	if err != nil {
		return "", fmt.Errorf("tailing log file %s: %w", s.path, err)
	}
	return strings.Join(last, "\n"), nil
}

func (s *fileSource) Follow(ctx context.Context, backfill int) (*FollowHandle, error) {
	ctx, cancel := context.WithCancel(ctx)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Warn().Err(err).Msg("File watcher unavailable, follow will poll only")
		watcher = nil
	} else if err := watcher.Add(s.path); err != nil {
		// The file may not exist yet; polling still picks it up.
		log.Debug().Err(err).Str("path", s.path).Msg("Could not watch log file, polling only")
		watcher.Close()
		watcher = nil
	}

	lines := make(chan string, followBuffer)
	go s.followLoop(ctx, watcher, backfill, lines)

	log.Debug().Str("path", s.path).Int("backfill", backfill).Msg("Opened file follow session")
	return NewFollowHandle(lines, cancel), nil
}

type followState struct {
	position  int64
	remainder string
}

func (s *fileSource) followLoop(ctx context.Context, watcher *fsnotify.Watcher, backfill int, out chan<- string) {
	defer close(out)
	if watcher != nil {
		defer watcher.Close()
	}

	st := &followState{}
	if fi, err := os.Stat(s.path); err == nil {
		st.position = fi.Size()
	}
	if backfill > 0 {
		if last, err := readLastLines(s.path, backfill); err == nil {
			for _, line := range last {
				if !sendLine(ctx, out, line) {
					return
				}
			}
		}
	}

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	var events chan fsnotify.Event
	if watcher != nil {
		events = watcher.Events
	}
	for {
		select {
		case <-ctx.Done():
			log.Debug().Str("path", s.path).Msg("File follow session ended")
			return
		case <-events:
			if !s.drain(ctx, st, out) {
				return
			}
		case <-ticker.C:
			if !s.drain(ctx, st, out) {
				return
			}
		}
	}
}

// drain reads everything appended since the last position and emits the
// complete lines. A shrunken file means truncation or rotation, so the
// position resets and reading starts over from the top.
func (s *fileSource) drain(ctx context.Context, st *followState, out chan<- string) bool {
	f, err := os.Open(s.path)
	if err != nil {
		return true
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return true
	}
	size := fi.Size()
	if size < st.position {
		log.Debug().Str("path", s.path).Int64("size", size).Int64("position", st.position).
			Msg("Log file shrank, restarting from the top")
		st.position = 0
		st.remainder = ""
	}
	if size == st.position {
		return true
	}
	if _, err := f.Seek(st.position, io.SeekStart); err != nil {
		return true
	}
	buf, err := io.ReadAll(f)
	if err != nil {
		return true
	}
	st.position += int64(len(buf))

	pieces := strings.Split(st.remainder+string(buf), "\n")
	st.remainder = pieces[len(pieces)-1]
	for _, line := range pieces[:len(pieces)-1] {
		if !sendLine(ctx, out, line) {
			return false
		}
	}
	return true
}

// readLastLines returns up to n trailing lines of the file, reading at
// most maxTailBytes from its end.
func readLastLines(path string, n int) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}

	dropFirst := false
	if fi.Size() > maxTailBytes {
		if _, err := f.Seek(fi.Size()-maxTailBytes, io.SeekStart); err != nil {
			return nil, err
		}
		// The first line of the window is almost certainly cut in half.
		dropFirst = true
	}
	buf, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	lines := strings.Split(strings.TrimRight(string(buf), "\n"), "\n")
	if dropFirst && len(lines) > 0 {
		lines = lines[1:]
	}
	if len(lines) == 1 && lines[0] == "" {
		return nil, nil
	}
	if n >= 0 && len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines, nil
}
