package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/placementcell/placement-portal/internal/domain"
)

type ProfileUpdate struct {
	Name      string
	Email     string
	Age       int
	Gender    domain.Gender
	Skills    []string
	GPA       *float64
	ResumeURL *string
}

type ProfileRepository interface {
	// Upsert creates the caller's profile or replaces its fields; a nil
	// ResumeURL keeps the stored resume untouched.
	Upsert(ctx context.Context, userID uuid.UUID, update ProfileUpdate) (*domain.Profile, error)
	FindByUser(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)
	List(ctx context.Context) ([]domain.ProfileSummary, error)
}
