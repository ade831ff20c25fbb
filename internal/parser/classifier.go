package parser

import (
	"regexp"
	"strings"
	"time"

	"proxboard/internal/model"

	"github.com/rs/zerolog/log"
)

// MinLineLength is the noise threshold. Callers drop shorter lines
// before classification instead of treating them as errors.
const MinLineLength = 5

// TimestampLayout is the textual timestamp form used when a record needs
// a synthesized timestamp, matching the daemon's primary log format.
const TimestampLayout = "2006-01-02 15:04:05,000"

// Classifier turns one raw log line into a classified record. It never
// fails: lines that match no grammar still come back as best-effort
// records with a heuristic level and a synthetic timestamp.
type Classifier interface {
	Classify(line string) model.LogRecord
}

type cascadeClassifier struct {
	primary    *regexp.Regexp
	dateToken  *regexp.Regexp
	levelToken *regexp.Regexp
}

func NewCascadeClassifier() Classifier {
	return &cascadeClassifier{
		// Groups: 1:timestamp, 2:source tag (optional), 3:level, 4:message
		primary: regexp.MustCompile(
			`^(\d{4}-\d{2}-\d{2}[ T]\d{2}:\d{2}:\d{2}(?:[.,]\d{1,6})?)\s*-\s*(?:([\w.-]+)\s*-\s*)?(?i:(INFO|WARNING|WARN|ERROR|DEBUG))\s*-\s*(.+)$`),
		dateToken: regexp.MustCompile(
			`\d{4}-\d{2}-\d{2}(?:[ T]\d{2}:\d{2}:\d{2}(?:[.,]\d{1,6})?)?|\d{2}:\d{2}:\d{2}(?:[.,]\d{1,6})?`),
		levelToken: regexp.MustCompile(`(?i)\b(INFO|WARNING|WARN|ERROR|DEBUG)\b`),
	}
}

func (c *cascadeClassifier) Classify(line string) model.LogRecord {
	line = strings.TrimSpace(line)

	rec, ok := c.classifyPrimary(line)
	if !ok {
		rec, ok = c.classifySecondary(line)
	}
	if !ok {
		rec = c.classifyFallback(line)
	}

	rec.EventType = DetectEventType(rec.Message)
	rec.Migration = ExtractMigration(rec.Message)
	rec.IsMigration = rec.Migration != nil
	rec.NextRun = ExtractSchedule(rec.Message)
	return rec
}

func (c *cascadeClassifier) classifyPrimary(line string) (model.LogRecord, bool) {
	matches := c.primary.FindStringSubmatch(line)
	if matches == nil {
		return model.LogRecord{}, false
	}
	return model.LogRecord{
		Timestamp: matches[1],
		Level:     canonicalLevel(matches[3]),
		Message:   strings.TrimSpace(matches[4]),
	}, true
}

// classifySecondary handles lines that carry a recognizable timestamp
// and level token but not the daemon's exact layout. The message is
// whatever follows the level token; an empty remainder means no match.
func (c *cascadeClassifier) classifySecondary(line string) (model.LogRecord, bool) {
	ts := c.dateToken.FindString(line)
	if ts == "" {
		return model.LogRecord{}, false
	}
	loc := c.levelToken.FindStringIndex(line)
	if loc == nil {
		return model.LogRecord{}, false
	}
	message := strings.TrimLeft(line[loc[1]:], " \t-:|]>")
	if message == "" {
		return model.LogRecord{}, false
	}
	return model.LogRecord{
		Timestamp: ts,
		Level:     canonicalLevel(line[loc[0]:loc[1]]),
		Message:   message,
	}, true
}

func (c *cascadeClassifier) classifyFallback(line string) model.LogRecord {
	log.Trace().Str("line", line).Msg("Line matched no grammar, classifying heuristically")
	return model.LogRecord{
		Timestamp:          time.Now().Format(TimestampLayout),
		SyntheticTimestamp: true,
		Level:              heuristicLevel(line),
		Message:            line,
	}
}

func canonicalLevel(raw string) string {
	level := strings.ToUpper(raw)
	if level == "WARN" {
		return model.LevelWarning
	}
	return level
}

func heuristicLevel(line string) string {
	upper := strings.ToUpper(line)
	switch {
	case strings.Contains(upper, "ERROR"), strings.Contains(upper, "EXCEPTION"), strings.Contains(upper, "FAILED"):
		return model.LevelError
	case strings.Contains(upper, "WARNING"), strings.Contains(upper, "WARN"):
		return model.LevelWarning
	case strings.Contains(upper, "DEBUG"):
		return model.LevelDebug
	default:
		return model.LevelInfo
	}
}
