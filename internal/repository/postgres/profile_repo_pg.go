package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/placementcell/placement-portal/internal/domain"
	"github.com/placementcell/placement-portal/internal/repository/ports"
)

const profileColumns = "id, user_id, name, email, age, gender, skills, gpa, resume_url, created_at, updated_at"

type ProfileRepository struct {
	db *sqlx.DB
}

func NewProfileRepo(db *sqlx.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) Upsert(ctx context.Context, userID uuid.UUID, update ports.ProfileUpdate) (*domain.Profile, error) {
	const query = `
        INSERT INTO profile (user_id, name, email, age, gender, skills, gpa, resume_url)
        VALUES ($1, $2, $3, $4, $5, $6, $7, COALESCE($8, ''))
        ON CONFLICT (user_id) DO UPDATE
        SET name = EXCLUDED.name,
            email = EXCLUDED.email,
            age = EXCLUDED.age,
            gender = EXCLUDED.gender,
            skills = EXCLUDED.skills,
            gpa = EXCLUDED.gpa,
            resume_url = COALESCE($8, profile.resume_url),
            updated_at = NOW()
        RETURNING ` + profileColumns

	row := r.db.QueryRowxContext(ctx, query,
		userID,
		update.Name,
		update.Email,
		update.Age,
		update.Gender,
		domain.StringSlice(update.Skills),
		update.GPA,
		update.ResumeURL,
	)
	var profile domain.Profile
	if err := row.StructScan(&profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepository) FindByUser(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	const query = `SELECT ` + profileColumns + ` FROM profile WHERE user_id = $1`
	var profile domain.Profile
	if err := r.db.GetContext(ctx, &profile, query, userID); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepository) List(ctx context.Context) ([]domain.ProfileSummary, error) {
	const query = `
        SELECT p.id, p.user_id, p.name, p.email, p.age, p.gender, p.skills, p.gpa,
               p.resume_url, p.created_at, p.updated_at,
               u.email AS user_email
        FROM profile p
        JOIN user_account u ON u.id = p.user_id
        ORDER BY p.created_at DESC
    `
	profiles := []domain.ProfileSummary{}
	if err := r.db.SelectContext(ctx, &profiles, query); err != nil {
		return nil, err
	}
	return profiles, nil
}
