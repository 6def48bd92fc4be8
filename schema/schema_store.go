package schema

import "time"

// RunRecord represents a row from the sifarish_runs table.
type RunRecord struct {
	RunID         int64
	StartTime     time.Time
	EndTime       *time.Time
	RunDurationMs *int32
	TotalClaims   int32
	ConfigParams  *string
}

// RowRecord represents a row from the sifarish_recommendations table.
type RowRecord struct {
	RunID            int64
	RecommendationID string
	ClaimID          string
	HolderName       *string
	Location         string
	Score            float64
	Priority         string
	TopSchemeID      *string
	TopSchemeName    *string
	TopSchemeScore   *float64
	SchemeCount      int32
	CreatedAt        time.Time
}

// StoreStatus represents the status of the run store.
type StoreStatus struct {
	Backend       string           `json:"backend"`
	Connected     bool             `json:"connected"`
	TotalRuns     int              `json:"total_runs"`
	LastRunID     int64            `json:"last_run_id"`
	LastRunTime   time.Time        `json:"last_run_time"`
	OldestRunTime time.Time        `json:"oldest_run_time"`
	TotalRows     int              `json:"total_rows"`
	TableSizes    map[string]int64 `json:"table_sizes"`
}
