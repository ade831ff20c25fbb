package dto

import "proxboard/internal/model"

// LogsResponse pairs one filtered window of records with the summary of
// the same snapshot, so both views are mutually consistent.
type LogsResponse struct {
	Logs    []model.LogRecord   `json:"logs"`
	Summary model.EventsSummary `json:"summary"`
}

type RawLogsResponse struct {
	Logs  string `json:"logs"`
	Lines int    `json:"lines"`
}

type MigrationsResponse struct {
	Migrations []model.MigrationEvent `json:"migrations"`
}
