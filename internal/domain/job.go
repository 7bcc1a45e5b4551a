package domain

import (
	"time"

	"github.com/google/uuid"
)

type Job struct {
	ID          uuid.UUID `db:"id" json:"id"`
	PostedBy    uuid.UUID `db:"posted_by" json:"posted_by"`
	Title       string    `db:"title" json:"title"`
	Company     string    `db:"company" json:"company"`
	Description string    `db:"description" json:"description"`
	Salary      string    `db:"salary" json:"salary"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// JobListItem is the public listing projection: the job plus the poster's
// email so listings can show who published them.
type JobListItem struct {
	Job
	PostedByEmail string `db:"posted_by_email" json:"posted_by_email"`
}
