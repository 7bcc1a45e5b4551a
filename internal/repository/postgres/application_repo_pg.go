package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/placementcell/placement-portal/internal/domain"
)

const applicationColumns = "id, job_id, student_id, resume_url, cover_letter, status, created_at, updated_at"

const applicationListQuery = `
    SELECT a.id, a.job_id, a.student_id, a.resume_url, a.cover_letter, a.status,
           a.created_at, a.updated_at,
           u.email AS student_email,
           j.title AS job_title,
           j.company AS job_company
    FROM application a
    JOIN user_account u ON u.id = a.student_id
    JOIN job j ON j.id = a.job_id
`

type ApplicationRepository struct {
	db *sqlx.DB
}

func NewApplicationRepo(db *sqlx.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) Create(ctx context.Context, jobID, studentID uuid.UUID, resumeURL, coverLetter string) (*domain.Application, error) {
	const query = `
        INSERT INTO application (job_id, student_id, resume_url, cover_letter)
        VALUES ($1, $2, $3, $4)
        RETURNING ` + applicationColumns

	row := r.db.QueryRowxContext(ctx, query, jobID, studentID, resumeURL, coverLetter)
	var application domain.Application
	if err := row.StructScan(&application); err != nil {
		return nil, err
	}
	return &application, nil
}

func (r *ApplicationRepository) FindByJobAndStudent(ctx context.Context, jobID, studentID uuid.UUID) (*domain.Application, error) {
	const query = `SELECT ` + applicationColumns + ` FROM application WHERE job_id = $1 AND student_id = $2`
	var application domain.Application
	if err := r.db.GetContext(ctx, &application, query, jobID, studentID); err != nil {
		return nil, err
	}
	return &application, nil
}

func (r *ApplicationRepository) ListByJob(ctx context.Context, jobID uuid.UUID) ([]domain.ApplicationListItem, error) {
	query := applicationListQuery + ` WHERE a.job_id = $1 ORDER BY a.created_at DESC`
	applications := []domain.ApplicationListItem{}
	if err := r.db.SelectContext(ctx, &applications, query, jobID); err != nil {
		return nil, err
	}
	return applications, nil
}

func (r *ApplicationRepository) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]domain.ApplicationListItem, error) {
	query := applicationListQuery + ` WHERE a.student_id = $1 ORDER BY a.created_at DESC`
	applications := []domain.ApplicationListItem{}
	if err := r.db.SelectContext(ctx, &applications, query, studentID); err != nil {
		return nil, err
	}
	return applications, nil
}

func (r *ApplicationRepository) ListAll(ctx context.Context) ([]domain.ApplicationListItem, error) {
	query := applicationListQuery + ` ORDER BY a.created_at DESC`
	applications := []domain.ApplicationListItem{}
	if err := r.db.SelectContext(ctx, &applications, query); err != nil {
		return nil, err
	}
	return applications, nil
}
