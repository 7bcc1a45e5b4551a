package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/placementcell/placement-portal/internal/domain"
	"github.com/placementcell/placement-portal/internal/repository/ports"
)

type memoryJobRepo struct {
	jobs map[uuid.UUID]*domain.Job

	deleted []uuid.UUID
}

func newMemoryJobRepo() *memoryJobRepo {
	return &memoryJobRepo{jobs: make(map[uuid.UUID]*domain.Job)}
}

func (r *memoryJobRepo) Create(_ context.Context, postedBy uuid.UUID, title, company, description, salary string) (*domain.Job, error) {
	job := &domain.Job{
		ID:          uuid.New(),
		PostedBy:    postedBy,
		Title:       title,
		Company:     company,
		Description: description,
		Salary:      salary,
	}
	r.jobs[job.ID] = job
	return job, nil
}

func (r *memoryJobRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.Job, error) {
	job, ok := r.jobs[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *job
	return &copied, nil
}

func (r *memoryJobRepo) List(_ context.Context) ([]domain.JobListItem, error) {
	items := make([]domain.JobListItem, 0, len(r.jobs))
	for _, job := range r.jobs {
		items = append(items, domain.JobListItem{Job: *job})
	}
	return items, nil
}

func (r *memoryJobRepo) ListByPoster(_ context.Context, postedBy uuid.UUID) ([]domain.Job, error) {
	var jobs []domain.Job
	for _, job := range r.jobs {
		if job.PostedBy == postedBy {
			jobs = append(jobs, *job)
		}
	}
	return jobs, nil
}

func (r *memoryJobRepo) Update(_ context.Context, id uuid.UUID, update ports.JobUpdate) (*domain.Job, error) {
	job, ok := r.jobs[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	if update.Title != nil {
		job.Title = *update.Title
	}
	if update.Company != nil {
		job.Company = *update.Company
	}
	if update.Description != nil {
		job.Description = *update.Description
	}
	if update.Salary != nil {
		job.Salary = *update.Salary
	}
	copied := *job
	return &copied, nil
}

func (r *memoryJobRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.jobs[id]; !ok {
		return sql.ErrNoRows
	}
	delete(r.jobs, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func testUser(role domain.Role) *domain.User {
	return &domain.User{ID: uuid.New(), Role: role, IsVerified: true}
}

func TestJobCreateDefaultsSalary(t *testing.T) {
	repo := newMemoryJobRepo()
	svc := NewJobService(repo)
	admin := testUser(domain.RoleAdmin)

	job, err := svc.Create(context.Background(), admin, JobInput{
		Title:       "Backend Engineer",
		Company:     "Acme",
		Description: "Go services",
		Salary:      "   ",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if job.Salary != "Not specified" {
		t.Fatalf("salary %q, want %q", job.Salary, "Not specified")
	}
	if job.PostedBy != admin.ID {
		t.Fatal("job must record its poster")
	}
}

func TestJobGetByIDNotFound(t *testing.T) {
	svc := NewJobService(newMemoryJobRepo())

	if _, err := svc.GetByID(context.Background(), uuid.New()); !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("got %v, want ErrJobNotFound", err)
	}
}

func TestJobUpdateOwnerOnly(t *testing.T) {
	repo := newMemoryJobRepo()
	svc := NewJobService(repo)
	ctx := context.Background()

	owner := testUser(domain.RoleAdmin)
	other := testUser(domain.RoleAdmin)

	job, err := svc.Create(ctx, owner, JobInput{Title: "SRE", Company: "Acme", Description: "ops"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	newTitle := "Senior SRE"
	if _, err := svc.Update(ctx, other, job.ID, ports.JobUpdate{Title: &newTitle}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("non-owner update: got %v, want ErrForbidden", err)
	}

	updated, err := svc.Update(ctx, owner, job.ID, ports.JobUpdate{Title: &newTitle})
	if err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if updated.Title != newTitle {
		t.Fatalf("title %q, want %q", updated.Title, newTitle)
	}
	if updated.Company != "Acme" {
		t.Fatal("untouched fields must survive a partial update")
	}
}

func TestJobDeletePermissions(t *testing.T) {
	repo := newMemoryJobRepo()
	svc := NewJobService(repo)
	ctx := context.Background()

	owner := testUser(domain.RoleAdmin)
	otherAdmin := testUser(domain.RoleAdmin)
	placementCell := testUser(domain.RolePlacementCell)

	job, err := svc.Create(ctx, owner, JobInput{Title: "QA", Company: "Acme", Description: "testing"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.Delete(ctx, otherAdmin, job.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("foreign admin delete: got %v, want ErrForbidden", err)
	}
	if err := svc.Delete(ctx, owner, job.ID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}

	// The placement cell may remove any posting, owned or not.
	job2, err := svc.Create(ctx, owner, JobInput{Title: "QA2", Company: "Acme", Description: "testing"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := svc.Delete(ctx, placementCell, job2.ID); err != nil {
		t.Fatalf("placement cell delete: %v", err)
	}

	if err := svc.Delete(ctx, owner, job.ID); !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("deleting a gone job: got %v, want ErrJobNotFound", err)
	}
}
