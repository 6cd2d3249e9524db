package postgres

import (
	"context"
	"fmt"

	"github.com/andresuchdata/sellerpulse/backend-go/internal/domain"
	"github.com/andresuchdata/sellerpulse/backend-go/internal/repository"
	"github.com/jmoiron/sqlx"
)

type jobRepository struct {
	db *sqlx.DB
}

func NewJobRepository(db *sqlx.DB) repository.JobRepository {
	return &jobRepository{db: db}
}

func (r *jobRepository) Create(ctx context.Context, job *domain.ComputationJob) error {
	query := `
        INSERT INTO computation_jobs (
            account_id, marketplace_id, from_date, to_date, status, started_at
        ) VALUES ($1, $2, $3::date, $4::date, $5, NOW())
        RETURNING id, started_at
    `

	row := r.db.QueryRowxContext(ctx, query,
		job.AccountID, job.MarketplaceID, job.FromDate, job.ToDate, string(job.Status))
	if err := row.Scan(&job.ID, &job.StartedAt); err != nil {
		return fmt.Errorf("create computation job: %w", err)
	}

	return nil
}

func (r *jobRepository) UpdateStatus(ctx context.Context, id int64, status domain.JobStatus, errorMessage string) error {
	query := `
        UPDATE computation_jobs
        SET status = $2,
            error_message = $3,
            completed_at = CASE WHEN $2 IN ('completed', 'error') THEN NOW() ELSE completed_at END
        WHERE id = $1
    `

	if _, err := r.db.ExecContext(ctx, query, id, string(status), errorMessage); err != nil {
		return fmt.Errorf("update computation job %d: %w", id, err)
	}

	return nil
}

func (r *jobRepository) GetRecent(ctx context.Context, accountID string, limit int) ([]domain.ComputationJob, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
        SELECT id, account_id, marketplace_id,
               to_char(from_date, 'YYYY-MM-DD') AS from_date,
               to_char(to_date, 'YYYY-MM-DD') AS to_date,
               status, COALESCE(error_message, '') AS error_message,
               started_at, completed_at
        FROM computation_jobs
        WHERE account_id = $1
        ORDER BY started_at DESC
        LIMIT $2
    `

	var jobs []domain.ComputationJob
	if err := r.db.SelectContext(ctx, &jobs, query, accountID, limit); err != nil {
		return nil, fmt.Errorf("get recent computation jobs: %w", err)
	}

	return jobs, nil
}
