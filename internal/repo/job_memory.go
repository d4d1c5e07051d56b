package repo

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rogerio-castellano/ledger-search/internal/models"
)

type InMemoryJobRepository struct {
	mu   sync.Mutex
	jobs map[uuid.UUID]models.SearchJob
}

func NewInMemoryJobRepository() *InMemoryJobRepository {
	return &InMemoryJobRepository{jobs: make(map[uuid.UUID]models.SearchJob)}
}

func (r *InMemoryJobRepository) Create(job models.SearchJob) (models.SearchJob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now().UTC()
	}
	r.jobs[job.ID] = job
	return job, nil
}

func (r *InMemoryJobRepository) GetByID(id uuid.UUID) (models.SearchJob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[id]
	if !ok {
		return models.SearchJob{}, ErrJobNotFound
	}
	return job, nil
}

func (r *InMemoryJobRepository) FindQueued(accountID int, requestJSON string) (models.SearchJob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, job := range r.jobs {
		if job.AccountID == accountID && job.RequestJSON == requestJSON && job.Status == models.JobStatusQueued {
			return job, nil
		}
	}
	return models.SearchJob{}, ErrJobNotFound
}

func (r *InMemoryJobRepository) Update(job models.SearchJob) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.jobs[job.ID]; !ok {
		return ErrJobNotFound
	}
	r.jobs[job.ID] = job
	return nil
}

func (r *InMemoryJobRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs = make(map[uuid.UUID]models.SearchJob)
}
