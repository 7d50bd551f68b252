// Package searchjobs runs business searches asynchronously: jobs are stored
// in Redis and executed by the asynq worker.
package searchjobs

import (
	"time"

	"business_finder_backend/internal/businesses/domain"
	"business_finder_backend/internal/businesses/transport"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Job is the stored state of one async search.
type Job struct {
	ID        string                  `json:"id"`
	Status    Status                  `json:"status"`
	Query     transport.SearchRequest `json:"query"`
	Result    *domain.SearchResult    `json:"result,omitempty"`
	Error     string                  `json:"error,omitempty"`
	CreatedAt time.Time               `json:"createdAt"`
	UpdatedAt time.Time               `json:"updatedAt"`
}

// Finished reports whether the job reached a terminal status.
func (j Job) Finished() bool {
	return j.Status == StatusCompleted || j.Status == StatusFailed
}
