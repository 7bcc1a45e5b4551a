package domain

import (
	"time"

	"github.com/google/uuid"
)

type ApplicationStatus string

const (
	ApplicationStatusApplied  ApplicationStatus = "Applied"
	ApplicationStatusViewed   ApplicationStatus = "Viewed"
	ApplicationStatusRejected ApplicationStatus = "Rejected"
)

type Application struct {
	ID          uuid.UUID         `db:"id" json:"id"`
	JobID       uuid.UUID         `db:"job_id" json:"job_id"`
	StudentID   uuid.UUID         `db:"student_id" json:"student_id"`
	ResumeURL   string            `db:"resume_url" json:"resume_url"`
	CoverLetter string            `db:"cover_letter" json:"cover_letter"`
	Status      ApplicationStatus `db:"status" json:"status"`
	CreatedAt   time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time         `db:"updated_at" json:"updated_at"`
}

// ApplicationListItem joins the application with the applicant's email and
// the job's title and company for the recruiter and placement-cell views.
type ApplicationListItem struct {
	Application
	StudentEmail string `db:"student_email" json:"student_email"`
	JobTitle     string `db:"job_title" json:"job_title"`
	JobCompany   string `db:"job_company" json:"job_company"`
}
