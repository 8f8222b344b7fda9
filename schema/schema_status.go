package schema

import "time"

// StateStatus represents the status of the view state store.
type StateStatus struct {
	Backend         string    `json:"backend"`
	Connected       bool      `json:"connected"`
	TotalEntries    int       `json:"total_entries"`
	LastEntryTime   time.Time `json:"last_entry_time"`
	OldestEntryTime time.Time `json:"oldest_entry_time"`
	TableSizeBytes  int64     `json:"table_size_bytes"`
}

// RunStatus represents the status of the run store.
type RunStatus struct {
	Backend       string           `json:"backend"`
	Connected     bool             `json:"connected"`
	TotalRuns     int              `json:"total_runs"`
	LastRunID     int64            `json:"last_run_id"`
	LastRunTime   time.Time        `json:"last_run_time"`
	OldestRunTime time.Time        `json:"oldest_run_time"`
	TotalRecords  int              `json:"total_records"`
	TableSizes    map[string]int64 `json:"table_sizes"`
}

// RunRecord represents a row from the spendchart_runs table.
type RunRecord struct {
	RunID        int64
	StartTime    time.Time
	EndTime      *time.Time
	RunDuration  *int32 // Milliseconds
	SnapshotKey  string
	TotalRecords int32
	ConfigParams *string
}

// SectorRecord represents a row from the spendchart_run_sectors table.
type SectorRecord struct {
	RunID      int64
	Position   int32
	Category   string
	Total      int64
	StartAngle float64
	SweepAngle float64
	Color      string
	Records    int32
}
