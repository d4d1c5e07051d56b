// Package jobs defines the broker contract for asynchronous search
// execution: the message shape and the publisher/consumer abstractions.
// Delivery is at-least-once; each job is processed independently by id.
package jobs

import (
	"context"

	"github.com/google/uuid"
)

// SearchJobMessage is the broker message asking a worker to execute a
// queued search job.
type SearchJobMessage struct {
	JobID       uuid.UUID `json:"job_id"`
	AccountID   int       `json:"account_id"`
	RequestJSON string    `json:"request_json"`
}

// Publisher publishes search-job messages to the queue. Abstracted so the
// in-memory queue can be swapped for a real broker.
type Publisher interface {
	PublishSearchJob(ctx context.Context, msg SearchJobMessage) error
	Close() error
}

// Handler processes one delivered message. A returned error marks the
// delivery as failed; it is not retried by the in-memory queue.
type Handler func(ctx context.Context, msg SearchJobMessage) error

// Consumer delivers queued messages to a handler.
type Consumer interface {
	// Start begins consuming in the background and returns immediately.
	Start(ctx context.Context, handler Handler) error
	// Stop stops consuming and waits for in-flight deliveries.
	Stop(ctx context.Context) error
}
