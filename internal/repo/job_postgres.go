package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rogerio-castellano/ledger-search/internal/models"
)

type PostgresJobRepository struct {
	db *sql.DB
}

func NewPostgresJobRepository(db *sql.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

const jobColumns = `id, account_id, request_json, COALESCE(result_json, ''), status, COALESCE(failure_reason, ''), created_at, completed_at`

func (r *PostgresJobRepository) Create(job models.SearchJob) (models.SearchJob, error) {
	query := `INSERT INTO transaction_search_jobs (id, account_id, request_json, status, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, query, job.ID, job.AccountID, job.RequestJSON, job.Status, job.CreatedAt)
	if err != nil {
		// The partial unique index on (account_id, request_json) WHERE
		// status = 'Queued' closes the check-then-insert race: on a
		// collision, hand back the job the other writer won with.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return r.FindQueued(job.AccountID, job.RequestJSON)
		}
		return models.SearchJob{}, fmt.Errorf("failed to insert search job: %w", err)
	}
	return job, nil
}

func (r *PostgresJobRepository) GetByID(id uuid.UUID) (models.SearchJob, error) {
	query := fmt.Sprintf(`SELECT %s FROM transaction_search_jobs WHERE id = $1`, jobColumns)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	return r.scanJob(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresJobRepository) FindQueued(accountID int, requestJSON string) (models.SearchJob, error) {
	query := fmt.Sprintf(`SELECT %s FROM transaction_search_jobs
		WHERE account_id = $1 AND request_json = $2 AND status = $3`, jobColumns)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	return r.scanJob(r.db.QueryRowContext(ctx, query, accountID, requestJSON, models.JobStatusQueued))
}

func (r *PostgresJobRepository) Update(job models.SearchJob) error {
	query := `UPDATE transaction_search_jobs
		SET result_json = NULLIF($1, ''), status = $2, failure_reason = NULLIF($3, ''), completed_at = $4
		WHERE id = $5`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, job.ResultJSON, job.Status, job.FailureReason, job.CompletedAt, job.ID)
	if err != nil {
		return fmt.Errorf("failed to update search job: %w", err)
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *PostgresJobRepository) scanJob(row *sql.Row) (models.SearchJob, error) {
	var job models.SearchJob
	err := row.Scan(&job.ID, &job.AccountID, &job.RequestJSON, &job.ResultJSON,
		&job.Status, &job.FailureReason, &job.CreatedAt, &job.CompletedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.SearchJob{}, ErrJobNotFound
	}
	return job, err
}
