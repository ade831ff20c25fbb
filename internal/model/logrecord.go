package model

// Levels a classified record can carry. The classifier always settles on
// one of the four canonical levels; RAW is accepted from older producers
// that forwarded unparsed lines and is still valid in level filters.
const (
	LevelInfo    = "INFO"
	LevelWarning = "WARNING"
	LevelError   = "ERROR"
	LevelDebug   = "DEBUG"
	LevelRaw     = "RAW"
)

// Event type tags. Detection walks these in the order listed below and
// the first matching pattern wins, so the order is part of the contract:
// a failed migration is migration_failed, not error.
const (
	EventMigrationStart    = "migration_start"
	EventMigrationComplete = "migration_complete"
	EventMigrationFailed   = "migration_failed"
	EventRebalanceStart    = "rebalance_start"
	EventRebalanceComplete = "rebalance_complete"
	EventDaemonStatus      = "daemon_status"
	EventConfigLoad        = "config_load"
	EventNodeStatus        = "node_status"
	EventError             = "error"
	EventWarning           = "warning"
	EventGeneral           = "general"
)

// EventTypeOrder is the detection priority order.
var EventTypeOrder = []string{
	EventMigrationStart,
	EventMigrationComplete,
	EventMigrationFailed,
	EventRebalanceStart,
	EventRebalanceComplete,
	EventDaemonStatus,
	EventConfigLoad,
	EventNodeStatus,
	EventError,
	EventWarning,
	EventGeneral,
}

// LogRecord is one classified daemon log line. Timestamp keeps the exact
// text the line carried; when no timestamp could be recovered the
// classifier fills in wall-clock time and sets SyntheticTimestamp.
type LogRecord struct {
	Timestamp          string           `json:"timestamp"`
	SyntheticTimestamp bool             `json:"synthetic_timestamp,omitempty"`
	Level              string           `json:"level"`
	Message            string           `json:"message"`
	EventType          string           `json:"event_type"`
	IsMigration        bool             `json:"is_migration"`
	Migration          *MigrationDetail `json:"migration,omitempty"`
	NextRun            *SchedulePayload `json:"next_run,omitempty"`
}

// MigrationDetail holds the tuple recovered from a migration-shaped
// message. Fields a pattern did not capture are defaulted, never empty.
type MigrationDetail struct {
	Guest     string `json:"guest"`
	FromNode  string `json:"from_node"`
	ToNode    string `json:"to_node"`
	Status    string `json:"status"`
	GuestType string `json:"type"`
}

// SchedulePayload is a daemon schedule announcement ("next run in N units").
type SchedulePayload struct {
	Value int    `json:"value"`
	Unit  string `json:"unit"`
}
