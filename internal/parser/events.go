package parser

import (
	"regexp"
	"strconv"
	"strings"

	"proxboard/internal/model"
)

type eventPattern struct {
	tag string
	re  *regexp.Regexp
}

// eventCatalog is consulted in order and the first match wins. The
// migration entries sit above the generic error/warning catches so a
// failed migration tags as migration_failed, never plain error. Keep
// additions in model.EventTypeOrder and here in the same order.
var eventCatalog = []eventPattern{
	{model.EventMigrationStart, regexp.MustCompile(`(?i)starting to migrate|start\w* migration|migration start\w*|moving \S+ from`)},
	{model.EventMigrationComplete, regexp.MustCompile(`(?i)migrat\w*.{0,40}(?:completed|finished|successful)|successfully migrated|finished migrating`)},
	{model.EventMigrationFailed, regexp.MustCompile(`(?i)migrat\w*.{0,80}fail\w*|fail\w*.{0,80}migrat\w*|could not migrate`)},
	{model.EventRebalanceStart, regexp.MustCompile(`(?i)start\w*\s+(?:re)?balanc\w*|(?:re)?balanc\w*\s*:?\s*(?:run\s+)?start\w*`)},
	{model.EventRebalanceComplete, regexp.MustCompile(`(?i)(?:re)?balanc\w*\s*:?\s*(?:run\s+)?(?:complet\w*|finish\w*|done)|no (?:re)?balancing (?:needed|necessary)`)},
	{model.EventDaemonStatus, regexp.MustCompile(`(?i)daemon mode|next run in|scheduler (?:started|stopped|active)`)},
	{model.EventConfigLoad, regexp.MustCompile(`(?i)(?:pars|load|read|reload)\w*\s+(?:the\s+)?config\w*|config\w*\s+(?:file\s+)?(?:loaded|parsed|read|reloaded)`)},
	{model.EventNodeStatus, regexp.MustCompile(`(?i)node\s+\S+\s+(?:is\s+)?(?:online|offline|unavailable|back online)|maintenance mode|set to maintenance`)},
	{model.EventError, regexp.MustCompile(`(?i)error|exception|traceback|fail`)},
	{model.EventWarning, regexp.MustCompile(`(?i)warn`)},
}

// DetectEventType tags a message with the first matching catalog entry,
// or general when nothing matches.
func DetectEventType(message string) string {
	for _, p := range eventCatalog {
		if p.re.MatchString(message) {
			return p.tag
		}
	}
	return model.EventGeneral
}

type migrationShape struct {
	re    *regexp.Regexp
	build func(m []string) *model.MigrationDetail
}

// migrationShapes is ordered most specific first; the first matching
// shape wins. Fields a shape did not capture are defaulted instead of
// failing: status "started", nodes "unknown", guest type "VM".
var migrationShapes = []migrationShape{
	{
		// "migrate VM guest 105 from node-a to node-b."
		re: regexp.MustCompile(`(?i)migrate\s+(\w+)\s+guest\s+(.+?)\s+from\s+(.+?)\s+to\s+(.+?)\.?\s*$`),
		build: func(m []string) *model.MigrationDetail {
			return &model.MigrationDetail{
				Guest:     strings.TrimSpace(m[2]),
				FromNode:  strings.TrimSpace(m[3]),
				ToNode:    strings.TrimSpace(m[4]),
				Status:    "started",
				GuestType: strings.ToUpper(m[1]),
			}
		},
	},
	{
		// "migrating guest 104 from pve1 to pve2"
		re: regexp.MustCompile(`(?i)migrat\w*\s+(?:guest\s+|vm\s+|ct\s+|container\s+)?(\S+)\s+from\s+(\S+)\s+to\s+(\S+)`),
		build: func(m []string) *model.MigrationDetail {
			return &model.MigrationDetail{
				Guest:     trimPunct(m[1]),
				FromNode:  trimPunct(m[2]),
				ToNode:    trimPunct(m[3]),
				Status:    "started",
				GuestType: "VM",
			}
		},
	},
	{
		// "migration of 105 completed" / "migration 105 failed"
		re: regexp.MustCompile(`(?i)migration\s+(?:of\s+)?(?:guest\s+|vm\s+|ct\s+)?(\S+?)\s+(?:has\s+)?(started|completed|finished|failed)`),
		build: func(m []string) *model.MigrationDetail {
			return &model.MigrationDetail{
				Guest:     trimPunct(m[1]),
				FromNode:  "unknown",
				ToNode:    "unknown",
				Status:    canonicalStatus(m[2]),
				GuestType: "VM",
			}
		},
	},
	{
		// "moving 104 from node1 to node2"
		re: regexp.MustCompile(`(?i)moving\s+(?:guest\s+)?(\S+)\s+from\s+(\S+)\s+to\s+(\S+)`),
		build: func(m []string) *model.MigrationDetail {
			return &model.MigrationDetail{
				Guest:     trimPunct(m[1]),
				FromNode:  trimPunct(m[2]),
				ToNode:    trimPunct(m[3]),
				Status:    "started",
				GuestType: "VM",
			}
		},
	},
}

// ExtractMigration recovers the migration tuple from a message, or nil
// when the message is not migration shaped. Absence is the normal case.
func ExtractMigration(message string) *model.MigrationDetail {
	for _, s := range migrationShapes {
		if m := s.re.FindStringSubmatch(message); m != nil {
			return s.build(m)
		}
	}
	return nil
}

var scheduleRe = regexp.MustCompile(`(?i)next run in:?\s+(\d+)\s+(\w+)`)

// ExtractSchedule picks up daemon schedule announcements such as
// "Daemon mode active: Next run in: 24 hours."
func ExtractSchedule(message string) *model.SchedulePayload {
	m := scheduleRe.FindStringSubmatch(message)
	if m == nil {
		return nil
	}
	value, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	return &model.SchedulePayload{Value: value, Unit: strings.ToLower(m[2])}
}

func canonicalStatus(raw string) string {
	status := strings.ToLower(raw)
	if status == "finished" {
		return "completed"
	}
	return status
}

func trimPunct(s string) string {
	return strings.TrimRight(s, ".,;:!?")
}
