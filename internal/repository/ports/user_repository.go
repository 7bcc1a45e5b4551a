package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/placementcell/placement-portal/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, email string, passwordHash, passwordSalt []byte, role domain.Role, otp string, otpExpiresAt time.Time) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	FindVerifiedByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByEmailAndValidOTP matches email, code and an unexpired challenge in
	// a single query; expiry must be strictly after now.
	FindByEmailAndValidOTP(ctx context.Context, email, otp string, now time.Time) (*domain.User, error)
	// ResetCredentials overwrites password and OTP state for an unverified
	// account that registers again.
	ResetCredentials(ctx context.Context, id uuid.UUID, passwordHash, passwordSalt []byte, otp string, otpExpiresAt time.Time) error
	SetOTP(ctx context.Context, id uuid.UUID, otp string, otpExpiresAt time.Time) error
	// MarkVerified flips the verification flag and consumes the OTP.
	MarkVerified(ctx context.Context, id uuid.UUID) error
	// UpdatePassword swaps the stored hash and consumes any pending OTP.
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash, passwordSalt []byte) error
}
