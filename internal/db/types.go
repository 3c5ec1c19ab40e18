package db

import (
	"time"

	"github.com/google/uuid"
)

// Run status values
const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)

// RunCounts are the outcome totals of a batch run
type RunCounts struct {
	Total   int `json:"total"`
	Parsed  int `json:"parsed"`
	Failed  int `json:"failed"`
	Flagged int `json:"flagged"`
}

// Run represents a batch run record
type Run struct {
	ID          uuid.UUID  `json:"id"`
	Source      string     `json:"source"`
	Status      string     `json:"status"`
	Counts      RunCounts  `json:"counts"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}
