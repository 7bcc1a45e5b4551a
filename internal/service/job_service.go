package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/placementcell/placement-portal/internal/domain"
	"github.com/placementcell/placement-portal/internal/repository/ports"
)

const defaultSalary = "Not specified"

type JobService struct {
	jobs ports.JobRepository
}

func NewJobService(jobs ports.JobRepository) *JobService {
	return &JobService{jobs: jobs}
}

type JobInput struct {
	Title       string
	Company     string
	Description string
	Salary      string
}

func (s *JobService) Create(ctx context.Context, actor *domain.User, input JobInput) (*domain.Job, error) {
	salary := strings.TrimSpace(input.Salary)
	if salary == "" {
		salary = defaultSalary
	}
	return s.jobs.Create(ctx, actor.ID, input.Title, input.Company, input.Description, salary)
}

func (s *JobService) List(ctx context.Context) ([]domain.JobListItem, error) {
	return s.jobs.List(ctx)
}

func (s *JobService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	job, err := s.jobs.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return job, nil
}

func (s *JobService) ListMine(ctx context.Context, actor *domain.User) ([]domain.Job, error) {
	return s.jobs.ListByPoster(ctx, actor.ID)
}

// Update is restricted to the admin who posted the job.
func (s *JobService) Update(ctx context.Context, actor *domain.User, id uuid.UUID, update ports.JobUpdate) (*domain.Job, error) {
	job, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if job.PostedBy != actor.ID {
		return nil, ErrForbidden
	}
	updated, err := s.jobs.Update(ctx, id, update)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return updated, nil
}

// Delete is allowed for the admin who posted the job, and for the placement
// cell regardless of ownership.
func (s *JobService) Delete(ctx context.Context, actor *domain.User, id uuid.UUID) error {
	job, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	isAdminOwner := actor.Role == domain.RoleAdmin && job.PostedBy == actor.ID
	isPlacementCell := actor.Role == domain.RolePlacementCell
	if !isAdminOwner && !isPlacementCell {
		return ErrForbidden
	}

	if err := s.jobs.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return ErrJobNotFound
		}
		return err
	}
	return nil
}
