package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/placementcell/placement-portal/internal/domain"
	"github.com/placementcell/placement-portal/internal/repository/ports"
)

// resumeContentTypes maps the accepted document extensions to their MIME
// types. Anything else is rejected before touching storage.
var resumeContentTypes = map[string][]string{
	".pdf":  {"application/pdf"},
	".doc":  {"application/msword"},
	".docx": {"application/vnd.openxmlformats-officedocument.wordprocessingml.document"},
}

type ProfileService struct {
	profiles       ports.ProfileRepository
	storage        ports.ObjectStorage
	resumeBucket   string
	resumeMaxBytes int64
}

func NewProfileService(profiles ports.ProfileRepository, storage ports.ObjectStorage, resumeBucket string, resumeMaxBytes int64) *ProfileService {
	return &ProfileService{
		profiles:       profiles,
		storage:        storage,
		resumeBucket:   resumeBucket,
		resumeMaxBytes: resumeMaxBytes,
	}
}

type ProfileInput struct {
	Name   string
	Email  string
	Age    int
	Gender domain.Gender
	Skills []string
	GPA    *float64
}

// ResumeUpload carries a multipart resume file into the service.
type ResumeUpload struct {
	Reader      io.Reader
	Size        int64
	FileName    string
	ContentType string
}

// Upsert creates or replaces the caller's profile. A resume is mandatory the
// first time; on update a nil upload keeps the stored document.
func (s *ProfileService) Upsert(ctx context.Context, userID uuid.UUID, input ProfileInput, resume *ResumeUpload) (*domain.Profile, error) {
	var resumeURL *string
	if resume != nil {
		uploaded, err := s.storeResume(ctx, userID, resume)
		if err != nil {
			return nil, err
		}
		resumeURL = &uploaded
	} else {
		existing, err := s.profiles.FindByUser(ctx, userID)
		if err != nil {
			if isNotFound(err) {
				return nil, ErrResumeRequired
			}
			return nil, err
		}
		if strings.TrimSpace(existing.ResumeURL) == "" {
			return nil, ErrResumeRequired
		}
	}

	return s.profiles.Upsert(ctx, userID, ports.ProfileUpdate{
		Name:      input.Name,
		Email:     input.Email,
		Age:       input.Age,
		Gender:    input.Gender,
		Skills:    normalizeSkills(input.Skills),
		GPA:       input.GPA,
		ResumeURL: resumeURL,
	})
}

func (s *ProfileService) Get(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	profile, err := s.profiles.FindByUser(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

func (s *ProfileService) ListAll(ctx context.Context) ([]domain.ProfileSummary, error) {
	return s.profiles.List(ctx)
}

func (s *ProfileService) storeResume(ctx context.Context, userID uuid.UUID, resume *ResumeUpload) (string, error) {
	if resume.Size <= 0 {
		return "", ErrResumeRequired
	}
	if resume.Size > s.resumeMaxBytes {
		return "", ErrResumeTooLarge
	}

	ext := strings.ToLower(filepath.Ext(resume.FileName))
	allowed, ok := resumeContentTypes[ext]
	if !ok {
		return "", ErrResumeUnsupported
	}
	if !contentTypeAllowed(resume.ContentType, allowed) {
		return "", ErrResumeUnsupported
	}

	objectName := fmt.Sprintf("resumes/%s/%d%s", userID, time.Now().UnixNano(), ext)
	return s.storage.Upload(ctx, s.resumeBucket, objectName, resume.ContentType, resume.Reader, resume.Size)
}

func contentTypeAllowed(contentType string, allowed []string) bool {
	normalized := strings.ToLower(strings.TrimSpace(contentType))
	if normalized == "" || normalized == "application/octet-stream" {
		// Browsers do not always sniff document types; the extension check
		// still applies.
		return true
	}
	if i := strings.Index(normalized, ";"); i >= 0 {
		normalized = strings.TrimSpace(normalized[:i])
	}
	for _, candidate := range allowed {
		if normalized == candidate {
			return true
		}
	}
	return false
}

func normalizeSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	for _, skill := range skills {
		trimmed := strings.TrimSpace(skill)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
