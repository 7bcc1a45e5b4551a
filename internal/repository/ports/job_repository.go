package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/placementcell/placement-portal/internal/domain"
)

type JobUpdate struct {
	Title       *string
	Company     *string
	Description *string
	Salary      *string
}

type JobRepository interface {
	Create(ctx context.Context, postedBy uuid.UUID, title, company, description, salary string) (*domain.Job, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Job, error)
	List(ctx context.Context) ([]domain.JobListItem, error)
	ListByPoster(ctx context.Context, postedBy uuid.UUID) ([]domain.Job, error)
	Update(ctx context.Context, id uuid.UUID, update JobUpdate) (*domain.Job, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
