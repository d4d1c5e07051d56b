package repo

import (
	"errors"

	"github.com/google/uuid"
	"github.com/rogerio-castellano/ledger-search/internal/models"
)

// ErrJobNotFound is returned when no job exists for the given id, or no
// queued job matches a dedup lookup.
var ErrJobNotFound = errors.New("search job not found")

// JobRepository owns the durable search-job records. The dedup lookup and
// Create are separate operations; concurrent identical requests may both
// pass the lookup. The postgres store closes that window with a partial
// unique index, the in-memory store is mutex-guarded.
type JobRepository interface {
	Create(job models.SearchJob) (models.SearchJob, error)
	GetByID(id uuid.UUID) (models.SearchJob, error)
	// FindQueued returns the queued job with the same account and
	// serialized request, or ErrJobNotFound.
	FindQueued(accountID int, requestJSON string) (models.SearchJob, error)
	Update(job models.SearchJob) error
}
