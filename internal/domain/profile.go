package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

func ParseGender(raw string) (Gender, error) {
	switch Gender(raw) {
	case GenderMale, GenderFemale, GenderOther:
		return Gender(raw), nil
	default:
		return "", fmt.Errorf("unknown gender %q", raw)
	}
}

// StringSlice stores a list of strings in a jsonb column.
type StringSlice []string

func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		s = StringSlice{}
	}
	return json.Marshal(s)
}

func (s *StringSlice) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*s = nil
		return nil
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("cannot scan %T into StringSlice", src)
	}
}

type Profile struct {
	ID        uuid.UUID   `db:"id" json:"id"`
	UserID    uuid.UUID   `db:"user_id" json:"user_id"`
	Name      string      `db:"name" json:"name"`
	Email     string      `db:"email" json:"email"`
	Age       int         `db:"age" json:"age"`
	Gender    Gender      `db:"gender" json:"gender"`
	Skills    StringSlice `db:"skills" json:"skills"`
	GPA       *float64    `db:"gpa" json:"gpa,omitempty"`
	ResumeURL string      `db:"resume_url" json:"resume_url"`
	CreatedAt time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt time.Time   `db:"updated_at" json:"updated_at"`
}

// ProfileSummary is the placement-cell listing projection: profile fields
// joined with the owning account's email.
type ProfileSummary struct {
	Profile
	UserEmail string `db:"user_email" json:"user_email"`
}
