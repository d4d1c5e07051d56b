package models

import (
	"time"

	"github.com/google/uuid"
)

// Search job lifecycle states. Pending and Cancelled exist in the status
// vocabulary but are never produced by the search flow.
const (
	JobStatusQueued    = "Queued"
	JobStatusCompleted = "Completed"
	JobStatusFailed    = "Failed"
)

// SearchJob is a durable record of a deferred search execution. Created by
// the dispatcher in Queued state, moved to a terminal state by the worker.
type SearchJob struct {
	ID            uuid.UUID  `json:"id"`
	AccountID     int        `json:"account_id"`
	RequestJSON   string     `json:"request_json"`
	ResultJSON    string     `json:"result_json,omitempty"`
	Status        string     `json:"status"`
	FailureReason string     `json:"failure_reason,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
}
