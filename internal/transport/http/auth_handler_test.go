package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/placementcell/placement-portal/internal/domain"
	"github.com/placementcell/placement-portal/internal/service"
	"github.com/placementcell/placement-portal/internal/util"
)

// captchaStub mimics the external verification endpoint.
func captchaStub(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func newAuthTestServer(t *testing.T, captchaURL string) (*echo.Echo, *singleUserRepo) {
	t.Helper()

	repo := &singleUserRepo{}
	jwtManager := util.NewJWTManager("test-secret", time.Hour)
	auth := service.NewAuthService(repo, noopMailer{}, jwtManager, 10*time.Minute)
	captcha := service.NewCaptchaVerifier("secret", captchaURL)

	e := echo.New()
	RegisterAuth(e, auth, captcha)
	return e, repo
}

func postJSON(e *echo.Echo, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRegisterEndpointRequiresFields(t *testing.T) {
	e, _ := newAuthTestServer(t, "http://unused.invalid")

	rec := postJSON(e, "/api/v1/auth/register", `{"email": "a@b.com"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", rec.Code)
	}
}

func TestRegisterEndpointCaptchaGate(t *testing.T) {
	t.Run("missing token", func(t *testing.T) {
		e, _ := newAuthTestServer(t, "http://unused.invalid")
		rec := postJSON(e, "/api/v1/auth/register", `{"email": "a@b.com", "password": "secret1"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status %d, want 400", rec.Code)
		}
	})

	t.Run("rejected token", func(t *testing.T) {
		stub := captchaStub(t, http.StatusOK, `{"success": false}`)
		e, _ := newAuthTestServer(t, stub.URL)
		rec := postJSON(e, "/api/v1/auth/register", `{"email": "a@b.com", "password": "secret1", "captcha_token": "tok"}`)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status %d, want 401", rec.Code)
		}
	})

	t.Run("verification service down", func(t *testing.T) {
		stub := captchaStub(t, http.StatusBadGateway, "oops")
		e, _ := newAuthTestServer(t, stub.URL)
		rec := postJSON(e, "/api/v1/auth/register", `{"email": "a@b.com", "password": "secret1", "captcha_token": "tok"}`)
		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("status %d, want 500", rec.Code)
		}
	})
}

func TestRegisterVerifyLoginEndpoints(t *testing.T) {
	stub := captchaStub(t, http.StatusOK, `{"success": true}`)
	e, repo := newAuthTestServer(t, stub.URL)

	rec := postJSON(e, "/api/v1/auth/register", `{"email": "a@b.com", "password": "secret1", "captcha_token": "tok"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: status %d, body %s", rec.Code, rec.Body)
	}
	if repo.user == nil || repo.user.OTP == nil {
		t.Fatal("expected a stored account with a pending OTP")
	}

	// Login before verification is refused.
	rec = postJSON(e, "/api/v1/auth/login", `{"email": "a@b.com", "password": "secret1", "captcha_token": "tok"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unverified login: status %d, want 401", rec.Code)
	}

	rec = postJSON(e, "/api/v1/auth/verify", `{"email": "a@b.com", "otp": "`+*repo.user.OTP+`"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("verify: status %d, body %s", rec.Code, rec.Body)
	}
	if !strings.Contains(rec.Body.String(), `"token"`) {
		t.Fatalf("verify response missing token: %s", rec.Body)
	}
	if !repo.user.IsVerified || repo.user.HasPendingOTP() {
		t.Fatal("verification must flip the flag and consume the OTP")
	}

	rec = postJSON(e, "/api/v1/auth/login", `{"email": "a@b.com", "password": "secret1", "captcha_token": "tok"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login: status %d, body %s", rec.Code, rec.Body)
	}
}

func TestForgotPasswordEndpointIsGeneric(t *testing.T) {
	stub := captchaStub(t, http.StatusOK, `{"success": true}`)
	e, repo := newAuthTestServer(t, stub.URL)

	known := postJSON(e, "/api/v1/auth/forgot-password", `{"email": "ghost@b.com", "captcha_token": "tok"}`)
	if known.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", known.Code)
	}

	repo.user = &domain.User{Email: "a@b.com", IsVerified: true}
	registered := postJSON(e, "/api/v1/auth/forgot-password", `{"email": "a@b.com", "captcha_token": "tok"}`)
	if registered.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", registered.Code)
	}
	if known.Body.String() != registered.Body.String() {
		t.Fatalf("responses differ: %s vs %s", known.Body, registered.Body)
	}
}
