package service

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrInvalidCredentials covers both unknown email and wrong password so
	// a caller cannot tell the two apart.
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrAccountNotVerified  = errors.New("account not verified, check your email for an OTP or register again")
	ErrAlreadyVerified     = errors.New("user already exists and is verified")
	ErrUserNotFound        = errors.New("user not found")
	ErrOTPInvalid          = errors.New("invalid or expired OTP")
	ErrEmailInvalid        = errors.New("invalid email address")
	ErrPasswordTooWeak     = errors.New("password must be at least 6 characters long")
	ErrRoleInvalid         = errors.New("invalid role")
	ErrInvalidToken        = errors.New("invalid or expired token")
	ErrRegistrationRace    = errors.New("user registration state conflict")
	ErrCaptchaRequired     = errors.New("captcha verification is required")
	ErrCaptchaFailed       = errors.New("captcha verification failed")
	ErrCaptchaUnavailable  = errors.New("captcha verification unavailable")
	ErrJobNotFound         = errors.New("job not found")
	ErrForbidden           = errors.New("not authorized for this action")
	ErrProfileNotFound     = errors.New("profile not found")
	ErrProfileRequired     = errors.New("a profile must be created before applying")
	ErrAlreadyApplied      = errors.New("already applied for this job")
	ErrResumeRequired      = errors.New("resume file is required")
	ErrResumeTooLarge      = errors.New("resume exceeds the maximum allowed size")
	ErrResumeUnsupported   = errors.New("resumes must be .pdf, .doc, or .docx")
	ErrApplicationNotFound = errors.New("application not found")
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
