package model

// MigrationStats tallies migration activity inside a summary window.
// Total counts every migration-flagged record; Successful and Failed
// count terminal event types only, so Total >= Successful+Failed.
type MigrationStats struct {
	Total      int `json:"total"`
	Successful int `json:"successful"`
	Failed     int `json:"failed"`
}

// EventsSummary aggregates one window of classified records. ByLevel
// always carries the four canonical levels zero-filled; ByType only the
// event types that actually occurred. RecentErrors holds at most the
// five newest ERROR messages, oldest first.
type EventsSummary struct {
	Total        int            `json:"total"`
	ByLevel      map[string]int `json:"by_level"`
	ByType       map[string]int `json:"by_type"`
	Migrations   MigrationStats `json:"migrations"`
	RecentErrors []string       `json:"recent_errors"`
}

// LastRunInfo describes the most recent balancing run recovered from the
// log tail: when the schedule announcement was seen, what it promised,
// and how many migrations appeared after it.
type LastRunInfo struct {
	LastRun             string           `json:"last_run,omitempty"`
	LastRunAgeSeconds   *int64           `json:"last_run_age_seconds,omitempty"`
	NextRun             *SchedulePayload `json:"next_run,omitempty"`
	MigrationsInLastRun int              `json:"migrations_in_last_run"`
}
