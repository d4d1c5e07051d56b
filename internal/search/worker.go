package search

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/rogerio-castellano/ledger-search/internal/jobs"
	"github.com/rogerio-castellano/ledger-search/internal/models"
	"github.com/rogerio-castellano/ledger-search/internal/repo"
)

// Worker consumes search-job messages and executes the embedded request
// through the synchronous search path. Failures are contained: they only
// manifest as a Failed job state discoverable on the next poll.
type Worker struct {
	searchJobs repo.JobRepository
	service    *Service
	now        func() time.Time
}

func NewWorker(searchJobs repo.JobRepository, service *Service) *Worker {
	return &Worker{searchJobs: searchJobs, service: service, now: time.Now}
}

// Consume handles one delivered message. A missing job is silently
// dropped; an already-terminal job is not re-executed (delivery is
// at-least-once).
func (w *Worker) Consume(ctx context.Context, msg jobs.SearchJobMessage) error {
	job, err := w.searchJobs.GetByID(msg.JobID)
	if errors.Is(err, repo.ErrJobNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if job.Status != models.JobStatusQueued {
		return nil
	}

	var req SearchRequest
	if err := json.Unmarshal([]byte(job.RequestJSON), &req); err != nil {
		return w.fail(job, "invalid request payload: "+err.Error())
	}

	resp, err := w.service.ExecuteQueued(ctx, req)
	if err != nil {
		log.Printf("search job %s failed: %v", job.ID, err)
		return w.fail(job, classifyFailure(err))
	}

	result, err := json.Marshal(resp)
	if err != nil {
		return w.fail(job, "failed to serialize result: "+err.Error())
	}

	completedAt := w.now().UTC()
	job.ResultJSON = string(result)
	job.Status = models.JobStatusCompleted
	job.FailureReason = ""
	job.CompletedAt = &completedAt
	return w.searchJobs.Update(job)
}

func (w *Worker) fail(job models.SearchJob, reason string) error {
	completedAt := w.now().UTC()
	job.Status = models.JobStatusFailed
	job.FailureReason = reason
	job.CompletedAt = &completedAt
	return w.searchJobs.Update(job)
}

// classifyFailure keeps an error classification on the job record instead
// of discarding the detail.
func classifyFailure(err error) string {
	var policyErr *PolicyError
	switch {
	case errors.As(err, &policyErr):
		return "policy violation: " + policyErr.Reason
	case errors.Is(err, repo.ErrUserNotFound):
		return "user not found"
	default:
		return "execution failure: " + err.Error()
	}
}
