package http

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/placementcell/placement-portal/internal/domain"
	"github.com/placementcell/placement-portal/internal/service"
	"github.com/placementcell/placement-portal/internal/util"
)

// singleUserRepo serves exactly one account; every other lookup misses.
type singleUserRepo struct {
	user *domain.User
}

func (r *singleUserRepo) Create(_ context.Context, email string, hash, salt []byte, role domain.Role, otp string, otpExpiresAt time.Time) (*domain.User, error) {
	r.user = &domain.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		PasswordSalt: salt,
		Role:         role,
		OTP:          &otp,
		OTPExpiresAt: &otpExpiresAt,
	}
	return r.user, nil
}

func (r *singleUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.user != nil && r.user.Email == email {
		return r.user, nil
	}
	return nil, sql.ErrNoRows
}

func (r *singleUserRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	if r.user != nil && r.user.ID == id {
		return r.user, nil
	}
	return nil, sql.ErrNoRows
}

func (r *singleUserRepo) FindVerifiedByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := r.FindByEmail(ctx, email)
	if err != nil || !user.IsVerified {
		return nil, sql.ErrNoRows
	}
	return user, nil
}

func (r *singleUserRepo) FindByEmailAndValidOTP(_ context.Context, email, otp string, now time.Time) (*domain.User, error) {
	if r.user == nil || r.user.Email != email || !r.user.OTPValidAt(otp, now) {
		return nil, sql.ErrNoRows
	}
	return r.user, nil
}

func (r *singleUserRepo) ResetCredentials(_ context.Context, id uuid.UUID, hash, salt []byte, otp string, otpExpiresAt time.Time) error {
	if r.user == nil || r.user.ID != id {
		return sql.ErrNoRows
	}
	r.user.PasswordHash = hash
	r.user.PasswordSalt = salt
	r.user.OTP = &otp
	r.user.OTPExpiresAt = &otpExpiresAt
	return nil
}

func (r *singleUserRepo) SetOTP(_ context.Context, id uuid.UUID, otp string, otpExpiresAt time.Time) error {
	if r.user == nil || r.user.ID != id {
		return sql.ErrNoRows
	}
	r.user.OTP = &otp
	r.user.OTPExpiresAt = &otpExpiresAt
	return nil
}

func (r *singleUserRepo) MarkVerified(_ context.Context, id uuid.UUID) error {
	if r.user == nil || r.user.ID != id {
		return sql.ErrNoRows
	}
	r.user.IsVerified = true
	r.user.OTP = nil
	r.user.OTPExpiresAt = nil
	return nil
}

func (r *singleUserRepo) UpdatePassword(_ context.Context, id uuid.UUID, hash, salt []byte) error {
	if r.user == nil || r.user.ID != id {
		return sql.ErrNoRows
	}
	r.user.PasswordHash = hash
	r.user.PasswordSalt = salt
	r.user.OTP = nil
	r.user.OTPExpiresAt = nil
	return nil
}

type noopMailer struct{}

func (noopMailer) SendVerification(context.Context, string, string) error  { return nil }
func (noopMailer) SendPasswordReset(context.Context, string, string) error { return nil }

func newAuthFixture(t *testing.T, role domain.Role) (*service.AuthService, string) {
	t.Helper()

	user := &domain.User{
		ID:         uuid.New(),
		Email:      "user@example.com",
		Role:       role,
		IsVerified: true,
	}
	jwtManager := util.NewJWTManager("test-secret", time.Hour)
	token, _, err := jwtManager.Generate(user.ID, user.Role)
	if err != nil {
		t.Fatalf("generating token: %v", err)
	}

	auth := service.NewAuthService(&singleUserRepo{user: user}, noopMailer{}, jwtManager, 10*time.Minute)
	return auth, token
}

func okHandler(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusInternalServerError, util.Error("no user in context"))
	}
	return c.JSON(http.StatusOK, util.Envelope{"email": user.Email})
}

func performRequest(auth *service.AuthService, authorization string, roles ...domain.Role) *httptest.ResponseRecorder {
	e := echo.New()
	middlewares := []echo.MiddlewareFunc{RequireAuth(auth)}
	if len(roles) > 0 {
		middlewares = append(middlewares, RequireRoles(roles...))
	}
	e.GET("/protected", okHandler, middlewares...)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRequireAuthRejectsBadHeaders(t *testing.T) {
	auth, _ := newAuthFixture(t, domain.RoleStudent)

	cases := []struct {
		name          string
		authorization string
	}{
		{"missing header", ""},
		{"not bearer", "Basic dXNlcjpwYXNz"},
		{"garbage token", "Bearer not-a-jwt"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := performRequest(auth, tc.authorization)
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("status %d, want 401", rec.Code)
			}
		})
	}
}

func TestRequireAuthAcceptsValidToken(t *testing.T) {
	auth, token := newAuthFixture(t, domain.RoleStudent)

	rec := performRequest(auth, "Bearer "+token)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, body %s", rec.Code, rec.Body)
	}
}

func TestRequireAuthRejectsDeletedAccount(t *testing.T) {
	// Token is valid but its subject no longer resolves to a user.
	jwtManager := util.NewJWTManager("test-secret", time.Hour)
	token, _, err := jwtManager.Generate(uuid.New(), domain.RoleStudent)
	if err != nil {
		t.Fatalf("generating token: %v", err)
	}
	auth := service.NewAuthService(&singleUserRepo{}, noopMailer{}, jwtManager, 10*time.Minute)

	rec := performRequest(auth, "Bearer "+token)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status %d, want 401", rec.Code)
	}
}

func TestRequireRoles(t *testing.T) {
	studentAuth, studentToken := newAuthFixture(t, domain.RoleStudent)
	adminAuth, adminToken := newAuthFixture(t, domain.RoleAdmin)

	rec := performRequest(studentAuth, "Bearer "+studentToken, domain.RoleAdmin, domain.RolePlacementCell)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("wrong role: status %d, want 403", rec.Code)
	}

	rec = performRequest(adminAuth, "Bearer "+adminToken, domain.RoleAdmin, domain.RolePlacementCell)
	if rec.Code != http.StatusOK {
		t.Fatalf("allowed role: status %d, body %s", rec.Code, rec.Body)
	}

	// Without RequireAuth in front there is no user context at all.
	e := echo.New()
	e.GET("/gated", okHandler, RequireRoles(domain.RoleAdmin))
	req := httptest.NewRequest(http.MethodGet, "/gated", nil)
	bare := httptest.NewRecorder()
	e.ServeHTTP(bare, req)
	if bare.Code != http.StatusUnauthorized {
		t.Fatalf("missing user: status %d, want 401", bare.Code)
	}
}
