package logsource_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"proxboard/internal/logsource"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLogFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "proxlb.log")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFileSource_Tail(t *testing.T) {
	path := writeLogFile(t, "one\ntwo\nthree\nfour\nfive\n")
	src := logsource.NewFileSource(path)

	tests := []struct {
		name  string
		lines int
		want  string
	}{
		{name: "last three", lines: 3, want: "three\nfour\nfive"},
		{name: "more than available", lines: 50, want: "one\ntwo\nthree\nfour\nfive"},
		{name: "single line", lines: 1, want: "five"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := src.Tail(context.Background(), tt.lines)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFileSource_TailMissingFile(t *testing.T) {
	src := logsource.NewFileSource(filepath.Join(t.TempDir(), "absent.log"))

	_, err := src.Tail(context.Background(), 10)
	assert.Error(t, err)
}

func TestFileSource_FollowDeliversAppendedLines(t *testing.T) {
	path := writeLogFile(t, "old1\nold2\nold3\n")
	src := logsource.NewFileSource(path)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handle, err := src.Follow(ctx, 2)
	require.NoError(t, err)
	defer handle.Stop()

	assert.Equal(t, "old2", recvLine(t, handle.Lines()))
	assert.Equal(t, "old3", recvLine(t, handle.Lines()))

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString("fresh line\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	assert.Equal(t, "fresh line", recvLine(t, handle.Lines()))
}

func TestFileSource_FollowStopsOnCancel(t *testing.T) {
	path := writeLogFile(t, "one\n")
	src := logsource.NewFileSource(path)

	ctx, cancel := context.WithCancel(context.Background())
	handle, err := src.Follow(ctx, 0)
	require.NoError(t, err)

	cancel()

	deadline := time.After(3 * time.Second)
	for {
		select {
		case _, ok := <-handle.Lines():
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("follow channel did not close after cancel")
		}
	}
}

func recvLine(t *testing.T, ch <-chan string) string {
	t.Helper()
	select {
	case line, ok := <-ch:
		require.True(t, ok, "line channel closed early")
		return line
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for line")
		return ""
	}
}
