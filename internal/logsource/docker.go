package logsource

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// dockerSource reads the daemon's logs through the container runtime
// CLI. The CLI splits container output across stdout and stderr, so
// both are always merged into one stream.
type dockerSource struct {
	binary    string
	container string
}

func NewDockerSource(container string) Source {
	return &dockerSource{binary: "docker", container: container}
}

func (s *dockerSource) Tail(ctx context.Context, lines int) (string, error) {
	cmd := exec.CommandContext(ctx, s.binary, "logs", "--tail", strconv.Itoa(lines), s.container)
	out, err := cmd.CombinedOutput()
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("tailing container %s: %w", s.container, ctx.Err())
		}
		msg := strings.TrimSpace(string(out))
		if msg == "" {
			msg = err.Error()
		}
		return "", fmt.Errorf("tailing container %s: %s", s.container, msg)
	}
	return string(out), nil
}

func (s *dockerSource) Follow(ctx context.Context, backfill int) (*FollowHandle, error) {
	ctx, cancel := context.WithCancel(ctx)

	cmd := exec.CommandContext(ctx, s.binary, "logs", "-f", "--tail", strconv.Itoa(backfill), s.container)
	pr, pw := io.Pipe()
	cmd.Stdout = pw
	cmd.Stderr = pw

	if err := cmd.Start(); err != nil {
		cancel()
		pr.Close()
		pw.Close()
		return nil, fmt.Errorf("starting follow session for container %s: %w", s.container, err)
	}
	log.Debug().Str("container", s.container).Int("backfill", backfill).Msg("Opened container follow session")

	go func() {
		// Wait releases the process; closing the write end unblocks the
		// scanner with EOF.
		_ = cmd.Wait()
		pw.Close()
	}()

	lines := make(chan string, followBuffer)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(pr)
		scanner.Buffer(make([]byte, 64*1024), maxLineBytes)
		for scanner.Scan() {
			if !sendLine(ctx, lines, scanner.Text()) {
				return
			}
		}
		log.Debug().Str("container", s.container).Msg("Container follow session ended")
	}()

	stop := func() {
		cancel()
		pr.Close()
	}
	return NewFollowHandle(lines, stop), nil
}
