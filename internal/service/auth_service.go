package service

import (
	"context"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/placementcell/placement-portal/internal/domain"
	"github.com/placementcell/placement-portal/internal/repository/ports"
	"github.com/placementcell/placement-portal/internal/util"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// OTPSender delivers one-time passwords to an address. Implementations must
// not be assumed reliable; registration succeeds even when delivery fails.
type OTPSender interface {
	SendVerification(ctx context.Context, email, otp string) error
	SendPasswordReset(ctx context.Context, email, otp string) error
}

type AuthService struct {
	users  ports.UserRepository
	mailer OTPSender
	jwt    *util.JWTManager
	otpTTL time.Duration
}

// AuthResult is returned by the operations that establish a session.
type AuthResult struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
}

func NewAuthService(users ports.UserRepository, mailer OTPSender, jwtManager *util.JWTManager, otpTTL time.Duration) *AuthService {
	return &AuthService{
		users:  users,
		mailer: mailer,
		jwt:    jwtManager,
		otpTTL: otpTTL,
	}
}

// Register creates an account in the unverified state and emails an OTP. An
// unverified account registering again gets its password and OTP overwritten;
// a verified one is rejected. Delivery failures are logged and deliberately
// not surfaced: the account record must survive a flaky mail provider.
func (s *AuthService) Register(ctx context.Context, email, password, roleRaw string) error {
	email = normalizeEmail(email)
	if !emailPattern.MatchString(email) {
		return ErrEmailInvalid
	}
	if err := util.ValidatePassword(password); err != nil {
		return ErrPasswordTooWeak
	}

	role := domain.RoleStudent
	if strings.TrimSpace(roleRaw) != "" {
		parsed, err := domain.ParseRole(strings.TrimSpace(roleRaw))
		if err != nil {
			return ErrRoleInvalid
		}
		role = parsed
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil && !isNotFound(err) {
		return err
	}
	if existing != nil && existing.IsVerified {
		return ErrAlreadyVerified
	}

	otp, err := util.GenerateOTP()
	if err != nil {
		return err
	}
	expiresAt := time.Now().Add(s.otpTTL)

	hash, salt, err := util.DerivePassword(password)
	if err != nil {
		return err
	}

	if existing != nil {
		if err := s.users.ResetCredentials(ctx, existing.ID, hash, salt, otp, expiresAt); err != nil {
			return err
		}
	} else {
		if _, err := s.users.Create(ctx, email, hash, salt, role, otp, expiresAt); err != nil {
			if isUniqueViolation(err) {
				// Two registrations raced on the same email; the flows are
				// not atomic across check and write.
				return ErrRegistrationRace
			}
			return err
		}
	}

	log.Printf("auth: verification otp issued for %s", email)
	if err := s.mailer.SendVerification(ctx, email, otp); err != nil {
		log.Printf("auth: verification mail to %s failed: %v", email, err)
	}
	return nil
}

// Verify consumes a registration OTP, marks the account verified and logs the
// user straight in.
func (s *AuthService) Verify(ctx context.Context, email, otp string) (*AuthResult, error) {
	email = normalizeEmail(email)

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if user.IsVerified {
		return nil, ErrAlreadyVerified
	}
	if !user.OTPValidAt(otp, time.Now()) {
		return nil, ErrOTPInvalid
	}

	if err := s.users.MarkVerified(ctx, user.ID); err != nil {
		return nil, err
	}
	user.IsVerified = true
	user.OTP = nil
	user.OTPExpiresAt = nil

	return s.issueSession(user)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = normalizeEmail(email)

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.IsVerified {
		return nil, ErrAccountNotVerified
	}
	if !util.VerifyPassword(password, user.PasswordSalt, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return s.issueSession(user)
}

// ForgotPassword issues a reset OTP for a verified account. It returns nil
// even when no such account exists so the response never reveals whether an
// email is registered.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	email = normalizeEmail(email)

	user, err := s.users.FindVerifiedByEmail(ctx, email)
	if err != nil {
		if isNotFound(err) {
			return nil
		}
		return err
	}

	otp, err := util.GenerateOTP()
	if err != nil {
		return err
	}
	if err := s.users.SetOTP(ctx, user.ID, otp, time.Now().Add(s.otpTTL)); err != nil {
		return err
	}

	log.Printf("auth: reset otp issued for %s", email)
	if err := s.mailer.SendPasswordReset(ctx, email, otp); err != nil {
		log.Printf("auth: reset mail to %s failed: %v", email, err)
	}
	return nil
}

// VerifyResetOTP checks a reset code without consuming it; the code stays
// valid until ResetPassword uses it or it expires, mirroring the two-step
// reset flow in the frontend.
func (s *AuthService) VerifyResetOTP(ctx context.Context, email, otp string) error {
	email = normalizeEmail(email)

	if _, err := s.users.FindByEmailAndValidOTP(ctx, email, otp, time.Now()); err != nil {
		if isNotFound(err) {
			return ErrOTPInvalid
		}
		return err
	}
	return nil
}

// ResetPassword re-checks the OTP and swaps the password, consuming the code.
func (s *AuthService) ResetPassword(ctx context.Context, email, otp, newPassword string) error {
	if err := util.ValidatePassword(newPassword); err != nil {
		return ErrPasswordTooWeak
	}
	email = normalizeEmail(email)

	user, err := s.users.FindByEmailAndValidOTP(ctx, email, otp, time.Now())
	if err != nil {
		if isNotFound(err) {
			return ErrOTPInvalid
		}
		return err
	}

	hash, salt, err := util.DerivePassword(newPassword)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, user.ID, hash, salt)
}

// Authenticate resolves a bearer token to its user.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.jwt.Parse(token)
	if err != nil {
		return nil, ErrInvalidToken
	}
	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) issueSession(user *domain.User) (*AuthResult, error) {
	token, expiresAt, err := s.jwt.Generate(user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
