package model

// MigrationEvent is the flat per-query projection of a migration-flagged
// LogRecord. It is recomputed from the log tail on every request and
// never stored.
type MigrationEvent struct {
	Timestamp string `json:"timestamp"`
	GuestName string `json:"guest_name"`
	FromNode  string `json:"from_node"`
	ToNode    string `json:"to_node"`
	Status    string `json:"status"`
	Type      string `json:"type"`
}
