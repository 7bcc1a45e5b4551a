package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/placementcell/placement-portal/internal/domain"
	"github.com/placementcell/placement-portal/internal/repository/ports"
)

type ApplicationService struct {
	applications ports.ApplicationRepository
	jobs         ports.JobRepository
	profiles     ports.ProfileRepository
}

func NewApplicationService(applications ports.ApplicationRepository, jobs ports.JobRepository, profiles ports.ProfileRepository) *ApplicationService {
	return &ApplicationService{
		applications: applications,
		jobs:         jobs,
		profiles:     profiles,
	}
}

// Apply files an application for the student, snapshotting the resume URL
// from their profile. One application per (job, student) pair, enforced by a
// pre-check rather than a constraint; a race between two identical requests
// can slip through and is accepted for this domain's contention level.
func (s *ApplicationService) Apply(ctx context.Context, studentID, jobID uuid.UUID, coverLetter string) (*domain.Application, error) {
	if _, err := s.jobs.FindByID(ctx, jobID); err != nil {
		if isNotFound(err) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}

	profile, err := s.profiles.FindByUser(ctx, studentID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrProfileRequired
		}
		return nil, err
	}

	if _, err := s.applications.FindByJobAndStudent(ctx, jobID, studentID); err == nil {
		return nil, ErrAlreadyApplied
	} else if !isNotFound(err) {
		return nil, err
	}

	return s.applications.Create(ctx, jobID, studentID, profile.ResumeURL, coverLetter)
}

func (s *ApplicationService) ListForJob(ctx context.Context, jobID uuid.UUID) ([]domain.ApplicationListItem, error) {
	if _, err := s.jobs.FindByID(ctx, jobID); err != nil {
		if isNotFound(err) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return s.applications.ListByJob(ctx, jobID)
}

func (s *ApplicationService) ListMine(ctx context.Context, studentID uuid.UUID) ([]domain.ApplicationListItem, error) {
	return s.applications.ListByStudent(ctx, studentID)
}

func (s *ApplicationService) ListAll(ctx context.Context) ([]domain.ApplicationListItem, error) {
	return s.applications.ListAll(ctx)
}
