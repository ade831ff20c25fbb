package stream_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"proxboard/internal/logsource"
	"proxboard/internal/metrics"
	"proxboard/internal/model"
	"proxboard/internal/parser"
	"proxboard/internal/stream"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedSource struct {
	lines   chan string
	stopped chan struct{}
	openErr error
}

func newScriptedSource() *scriptedSource {
	return &scriptedSource{
		lines:   make(chan string, 16),
		stopped: make(chan struct{}),
	}
}

func (s *scriptedSource) Tail(context.Context, int) (string, error) {
	return "", errors.New("tail not supported by scripted source")
}

func (s *scriptedSource) Follow(context.Context, int) (*logsource.FollowHandle, error) {
	if s.openErr != nil {
		return nil, s.openErr
	}
	return logsource.NewFollowHandle(s.lines, func() { close(s.stopped) }), nil
}

func newAdapter(src logsource.Source) stream.Adapter {
	return stream.NewAdapter(src, parser.NewCascadeClassifier(), metrics.NewTestMetrics())
}

func TestAdapter_DeliversRecordsInOrder(t *testing.T) {
	src := newScriptedSource()
	a := newAdapter(src)

	session, err := a.Open(context.Background(), 0)
	require.NoError(t, err)
	defer session.Close()

	for i := 1; i <= 5; i++ {
		src.lines <- fmt.Sprintf("2024-12-27 20:30:0%d,000 - ProxLB - INFO - step %d", i, i)
	}

	for i := 1; i <= 5; i++ {
		rec := recvRecord(t, session.Records())
		assert.Equal(t, fmt.Sprintf("step %d", i), rec.Message)
		assert.Equal(t, model.LevelInfo, rec.Level)
	}
}

func TestAdapter_SkipsNoiseLines(t *testing.T) {
	src := newScriptedSource()
	a := newAdapter(src)

	session, err := a.Open(context.Background(), 0)
	require.NoError(t, err)
	defer session.Close()

	src.lines <- "ok"
	src.lines <- "2024-12-27 20:30:01,000 - ProxLB - ERROR - Migration of guest 106 failed"

	rec := recvRecord(t, session.Records())
	assert.Equal(t, model.LevelError, rec.Level)
	assert.Equal(t, model.EventMigrationFailed, rec.EventType)
}

func TestAdapter_CloseReleasesFollow(t *testing.T) {
	src := newScriptedSource()
	a := newAdapter(src)

	session, err := a.Open(context.Background(), 0)
	require.NoError(t, err)

	session.Close()
	session.Close() // double close must be safe

	select {
	case <-src.stopped:
	case <-time.After(3 * time.Second):
		t.Fatal("follow handle was not stopped")
	}

	deadline := time.After(3 * time.Second)
	for {
		select {
		case _, ok := <-session.Records():
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("record channel did not close")
		}
	}
}

func TestAdapter_SourceLineChannelClosing(t *testing.T) {
	src := newScriptedSource()
	a := newAdapter(src)

	session, err := a.Open(context.Background(), 0)
	require.NoError(t, err)
	defer session.Close()

	src.lines <- "2024-12-27 20:30:01,000 - ProxLB - INFO - last words"
	close(src.lines)

	rec := recvRecord(t, session.Records())
	assert.Equal(t, "last words", rec.Message)

	select {
	case _, ok := <-session.Records():
		assert.False(t, ok, "record channel must close after source ends")
	case <-time.After(3 * time.Second):
		t.Fatal("record channel did not close after source ended")
	}
}

func TestAdapter_OpenErrorPropagates(t *testing.T) {
	src := newScriptedSource()
	src.openErr = errors.New("container not found")
	a := newAdapter(src)

	_, err := a.Open(context.Background(), 0)
	assert.Error(t, err)
}

func recvRecord(t *testing.T, ch <-chan model.LogRecord) model.LogRecord {
	t.Helper()
	select {
	case rec, ok := <-ch:
		require.True(t, ok, "record channel closed early")
		return rec
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for record")
		return model.LogRecord{}
	}
}
