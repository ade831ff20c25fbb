package stream

import (
	"context"
	"strings"
	"sync"

	"proxboard/internal/logsource"
	"proxboard/internal/metrics"
	"proxboard/internal/model"
	"proxboard/internal/parser"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// recordBuffer softens bursts while keeping sends blocking, so a slow
// subscriber applies backpressure instead of losing or reordering
// records.
const recordBuffer = 256

// Adapter turns live follow sessions into streams of classified
// records. Each Open call owns one follow connection and serves exactly
// one subscriber.
type Adapter interface {
	Open(ctx context.Context, backfill int) (*Session, error)
}

type adapter struct {
	source     logsource.Source
	classifier parser.Classifier
	metrics    *metrics.Metrics
}

func NewAdapter(source logsource.Source, classifier parser.Classifier, m *metrics.Metrics) Adapter {
	return &adapter{
		source:     source,
		classifier: classifier,
		metrics:    m,
	}
}

// Session is one live record stream. Records closes when the session
// ends; Close is idempotent and releases the underlying follow
// connection without draining it.
type Session struct {
	id      string
	records chan model.LogRecord
	cancel  context.CancelFunc
	handle  *logsource.FollowHandle
	once    sync.Once
}

func (a *adapter) Open(ctx context.Context, backfill int) (*Session, error) {
	ctx, cancel := context.WithCancel(ctx)

	handle, err := a.source.Follow(ctx, backfill)
	if err != nil {
		cancel()
		return nil, err
	}

	s := &Session{
		id:      uuid.NewString(),
		records: make(chan model.LogRecord, recordBuffer),
		cancel:  cancel,
		handle:  handle,
	}
	a.metrics.StreamClients.Add(1)
	log.Info().Str("session", s.id).Int("backfill", backfill).Msg("Log stream session opened")

	go a.pump(ctx, s)
	return s, nil
}

func (a *adapter) pump(ctx context.Context, s *Session) {
	defer func() {
		close(s.records)
		a.metrics.StreamClients.Add(-1)
		log.Info().Str("session", s.id).Msg("Log stream session closed")
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-s.handle.Lines():
			if !ok {
				return
			}
			line = strings.TrimSpace(line)
			if len(line) < parser.MinLineLength {
				continue
			}
			rec := a.classifier.Classify(line)
			a.metrics.LinesClassified.Inc(rec.Level)
			select {
			case s.records <- rec:
			case <-ctx.Done():
				return
			}
		}
	}
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) Records() <-chan model.LogRecord {
	return s.records
}

func (s *Session) Close() {
	s.once.Do(func() {
		s.cancel()
		s.handle.Stop()
	})
}
