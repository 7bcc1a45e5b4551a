package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/placementcell/placement-portal/internal/domain"
)

type ApplicationRepository interface {
	Create(ctx context.Context, jobID, studentID uuid.UUID, resumeURL, coverLetter string) (*domain.Application, error)
	FindByJobAndStudent(ctx context.Context, jobID, studentID uuid.UUID) (*domain.Application, error)
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]domain.ApplicationListItem, error)
	ListByStudent(ctx context.Context, studentID uuid.UUID) ([]domain.ApplicationListItem, error)
	ListAll(ctx context.Context) ([]domain.ApplicationListItem, error)
}
