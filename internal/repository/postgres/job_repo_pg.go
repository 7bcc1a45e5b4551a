package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/placementcell/placement-portal/internal/domain"
	"github.com/placementcell/placement-portal/internal/repository/ports"
)

const jobColumns = "id, posted_by, title, company, description, salary, created_at, updated_at"

type JobRepository struct {
	db *sqlx.DB
}

func NewJobRepo(db *sqlx.DB) *JobRepository {
	return &JobRepository{db: db}
}

func (r *JobRepository) Create(ctx context.Context, postedBy uuid.UUID, title, company, description, salary string) (*domain.Job, error) {
	const query = `
        INSERT INTO job (posted_by, title, company, description, salary)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING ` + jobColumns

	row := r.db.QueryRowxContext(ctx, query, postedBy, title, company, description, salary)
	var job domain.Job
	if err := row.StructScan(&job); err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *JobRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	const query = `SELECT ` + jobColumns + ` FROM job WHERE id = $1`
	var job domain.Job
	if err := r.db.GetContext(ctx, &job, query, id); err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *JobRepository) List(ctx context.Context) ([]domain.JobListItem, error) {
	const query = `
        SELECT j.id, j.posted_by, j.title, j.company, j.description, j.salary,
               j.created_at, j.updated_at,
               u.email AS posted_by_email
        FROM job j
        JOIN user_account u ON u.id = j.posted_by
        ORDER BY j.created_at DESC
    `
	jobs := []domain.JobListItem{}
	if err := r.db.SelectContext(ctx, &jobs, query); err != nil {
		return nil, err
	}
	return jobs, nil
}

func (r *JobRepository) ListByPoster(ctx context.Context, postedBy uuid.UUID) ([]domain.Job, error) {
	const query = `SELECT ` + jobColumns + ` FROM job WHERE posted_by = $1 ORDER BY created_at DESC`
	jobs := []domain.Job{}
	if err := r.db.SelectContext(ctx, &jobs, query, postedBy); err != nil {
		return nil, err
	}
	return jobs, nil
}

func (r *JobRepository) Update(ctx context.Context, id uuid.UUID, update ports.JobUpdate) (*domain.Job, error) {
	const query = `
        UPDATE job
        SET title = COALESCE($2, title),
            company = COALESCE($3, company),
            description = COALESCE($4, description),
            salary = COALESCE($5, salary),
            updated_at = NOW()
        WHERE id = $1
        RETURNING ` + jobColumns

	row := r.db.QueryRowxContext(ctx, query, id, update.Title, update.Company, update.Description, update.Salary)
	var job domain.Job
	if err := row.StructScan(&job); err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *JobRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM job WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
