package service

import (
	"context"
	"strings"
	"time"

	"proxboard/internal/dto"
	"proxboard/internal/logsource"
	"proxboard/internal/metrics"
	"proxboard/internal/model"
	"proxboard/internal/parser"
	"proxboard/internal/util"

	"github.com/rs/zerolog/log"
)

const (
	defaultLogLines       = 100
	defaultRawLines       = 200
	defaultMigrationLimit = 50
	maxLogLines           = 1000

	// migrationWindow and lastRunWindow are the fixed tail sizes the
	// projection queries scan, independent of the caller's limit.
	migrationWindow = 500
	lastRunWindow   = 200

	maxRecentErrors = 5
	maxErrorChars   = 200

	tailTimeout = 10 * time.Second
)

// LogEventService reconstructs the balancer's activity from its log
// tail. Every call takes a fresh snapshot of the source and re-derives
// its answer; nothing is cached between calls. The methods never fail:
// an unreachable source degrades to a single synthetic error record.
type LogEventService interface {
	GetLogs(ctx context.Context, lines int, level, eventType string) dto.LogsResponse
	GetRawLogs(ctx context.Context, lines int) dto.RawLogsResponse
	GetMigrations(ctx context.Context, limit int) []model.MigrationEvent
	LastRun(ctx context.Context) model.LastRunInfo
}

type logEventService struct {
	source     logsource.Source
	classifier parser.Classifier
	metrics    *metrics.Metrics
}

func NewLogEventService(source logsource.Source, classifier parser.Classifier, m *metrics.Metrics) LogEventService {
	return &logEventService{
		source:     source,
		classifier: classifier,
		metrics:    m,
	}
}

func (s *logEventService) GetLogs(ctx context.Context, lines int, level, eventType string) dto.LogsResponse {
	lines = clampLines(lines, defaultLogLines)

	records := s.readWindow(ctx, lines)
	summary := summarize(records)
	filtered := filterRecords(records, level, eventType)

	log.Debug().Int("lines", lines).Str("level", level).Str("event_type", eventType).
		Int("total", summary.Total).Int("returned", len(filtered)).Msg("Served log window")
	return dto.LogsResponse{Logs: filtered, Summary: summary}
}

func (s *logEventService) GetRawLogs(ctx context.Context, lines int) dto.RawLogsResponse {
	lines = clampLines(lines, defaultRawLines)

	ctx, cancel := context.WithTimeout(ctx, tailTimeout)
	defer cancel()

	blob, err := s.source.Tail(ctx, lines)
	if err != nil {
		s.metrics.TailReads.Inc("error")
		log.Warn().Err(err).Msg("Log source unavailable for raw read")
		return dto.RawLogsResponse{Logs: err.Error(), Lines: lines}
	}
	s.metrics.TailReads.Inc("ok")
	return dto.RawLogsResponse{Logs: blob, Lines: lines}
}

func (s *logEventService) GetMigrations(ctx context.Context, limit int) []model.MigrationEvent {
	if limit <= 0 {
		limit = defaultMigrationLimit
	}
	if limit > migrationWindow {
		limit = migrationWindow
	}

	records := s.readWindow(ctx, migrationWindow)
	migrations := make([]model.MigrationEvent, 0, defaultMigrationLimit)
	for _, rec := range records {
		if !rec.IsMigration {
			continue
		}
		migrations = append(migrations, model.MigrationEvent{
			Timestamp: rec.Timestamp,
			GuestName: rec.Migration.Guest,
			FromNode:  rec.Migration.FromNode,
			ToNode:    rec.Migration.ToNode,
			Status:    rec.Migration.Status,
			Type:      rec.Migration.GuestType,
		})
		if len(migrations) == limit {
			break
		}
	}
	return migrations
}

func (s *logEventService) LastRun(ctx context.Context) model.LastRunInfo {
	records := s.readWindow(ctx, lastRunWindow)

	var info model.LastRunInfo
	for i := len(records) - 1; i >= 0; i-- {
		rec := records[i]
		if rec.IsMigration {
			info.MigrationsInLastRun++
		}
		if rec.NextRun != nil {
			info.NextRun = rec.NextRun
			info.LastRun = rec.Timestamp
			break
		}
	}
	if info.LastRun != "" {
		if ts, err := util.ParseTimeFlexible(info.LastRun); err == nil {
			age := int64(time.Since(ts).Seconds())
			info.LastRunAgeSeconds = &age
		}
	}
	return info
}

// readWindow takes one tail snapshot and classifies it. Short lines are
// noise and skipped before classification. On source failure the window
// is a single synthetic error record, never an empty slice plus error.
func (s *logEventService) readWindow(ctx context.Context, lines int) []model.LogRecord {
	ctx, cancel := context.WithTimeout(ctx, tailTimeout)
	defer cancel()

	blob, err := s.source.Tail(ctx, lines)
	if err != nil {
		s.metrics.TailReads.Inc("error")
		log.Warn().Err(err).Msg("Log source unavailable, serving synthetic error record")
		return []model.LogRecord{syntheticErrorRecord(err)}
	}
	s.metrics.TailReads.Inc("ok")

	records := make([]model.LogRecord, 0, lines)
	for _, line := range strings.Split(blob, "\n") {
		line = strings.TrimSpace(line)
		if len(line) < parser.MinLineLength {
			continue
		}
		rec := s.classifier.Classify(line)
		s.metrics.LinesClassified.Inc(rec.Level)
		records = append(records, rec)
	}
	return records
}

func syntheticErrorRecord(err error) model.LogRecord {
	return model.LogRecord{
		Timestamp:          time.Now().Format(parser.TimestampLayout),
		SyntheticTimestamp: true,
		Level:              model.LevelError,
		Message:            err.Error(),
		EventType:          model.EventError,
	}
}

func summarize(records []model.LogRecord) model.EventsSummary {
	summary := model.EventsSummary{
		ByLevel: map[string]int{
			model.LevelInfo:    0,
			model.LevelWarning: 0,
			model.LevelError:   0,
			model.LevelDebug:   0,
		},
		ByType:       map[string]int{},
		RecentErrors: []string{},
	}
	for _, rec := range records {
		summary.Total++
		summary.ByLevel[rec.Level]++
		summary.ByType[rec.EventType]++
		if rec.IsMigration {
			summary.Migrations.Total++
			switch rec.EventType {
			case model.EventMigrationComplete:
				summary.Migrations.Successful++
			case model.EventMigrationFailed:
				summary.Migrations.Failed++
			}
		}
		if rec.Level == model.LevelError {
			summary.RecentErrors = append(summary.RecentErrors, truncateMessage(rec.Message))
			if len(summary.RecentErrors) > maxRecentErrors {
				summary.RecentErrors = summary.RecentErrors[1:]
			}
		}
	}
	return summary
}

func filterRecords(records []model.LogRecord, level, eventType string) []model.LogRecord {
	level = strings.ToUpper(strings.TrimSpace(level))
	eventType = strings.ToLower(strings.TrimSpace(eventType))

	filtered := make([]model.LogRecord, 0, len(records))
	for _, rec := range records {
		if level != "" && rec.Level != level {
			continue
		}
		if eventType != "" && rec.EventType != eventType {
			continue
		}
		filtered = append(filtered, rec)
	}
	return filtered
}

func clampLines(lines, fallback int) int {
	if lines <= 0 {
		return fallback
	}
	if lines > maxLogLines {
		return maxLogLines
	}
	return lines
}

func truncateMessage(s string) string {
	runes := []rune(s)
	if len(runes) > maxErrorChars {
		return string(runes[:maxErrorChars])
	}
	return s
}
