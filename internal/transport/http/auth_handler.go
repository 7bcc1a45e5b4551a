package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/placementcell/placement-portal/internal/service"
	"github.com/placementcell/placement-portal/internal/util"
)

type AuthHandler struct {
	auth    *service.AuthService
	captcha *service.CaptchaVerifier
}

func RegisterAuth(e *echo.Echo, auth *service.AuthService, captcha *service.CaptchaVerifier) {
	handler := &AuthHandler{auth: auth, captcha: captcha}

	group := e.Group("/api/v1/auth")
	group.POST("/register", handler.register)
	group.POST("/verify", handler.verify)
	group.POST("/login", handler.login)
	group.POST("/forgot-password", handler.forgotPassword)
	group.POST("/verify-reset-otp", handler.verifyResetOTP)
	group.POST("/reset-password", handler.resetPassword)
}

func (h *AuthHandler) register(c echo.Context) error {
	var req struct {
		Email        string `json:"email"`
		Password     string `json:"password"`
		Role         string `json:"role"`
		CaptchaToken string `json:"captcha_token"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, util.Error("please provide email and password"))
	}
	if err := h.captcha.Verify(c.Request().Context(), req.CaptchaToken); err != nil {
		return captchaError(c, err)
	}

	if err := h.auth.Register(c.Request().Context(), req.Email, req.Password, req.Role); err != nil {
		switch {
		case errors.Is(err, service.ErrEmailInvalid),
			errors.Is(err, service.ErrPasswordTooWeak),
			errors.Is(err, service.ErrRoleInvalid):
			return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
		case errors.Is(err, service.ErrAlreadyVerified),
			errors.Is(err, service.ErrRegistrationRace):
			return c.JSON(http.StatusConflict, util.Error(err.Error()))
		default:
			return c.JSON(http.StatusInternalServerError, util.Error("server error during registration"))
		}
	}

	return c.JSON(http.StatusCreated, util.Message("Registration successful. Please check your email for an OTP to verify your account."))
}

func (h *AuthHandler) verify(c echo.Context) error {
	var req struct {
		Email string `json:"email"`
		OTP   string `json:"otp"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.OTP) == "" {
		return c.JSON(http.StatusBadRequest, util.Error("please provide email and OTP"))
	}

	result, err := h.auth.Verify(c.Request().Context(), req.Email, req.OTP)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			return c.JSON(http.StatusNotFound, util.Error(err.Error()))
		case errors.Is(err, service.ErrAlreadyVerified):
			return c.JSON(http.StatusConflict, util.Error("user is already verified"))
		case errors.Is(err, service.ErrOTPInvalid):
			return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
		default:
			return c.JSON(http.StatusInternalServerError, util.Error("server error during verification"))
		}
	}

	return c.JSON(http.StatusOK, util.Envelope{
		"id":      result.User.ID,
		"email":   result.User.Email,
		"role":    result.User.Role,
		"token":   result.Token,
		"message": "Account verified successfully!",
	})
}

func (h *AuthHandler) login(c echo.Context) error {
	var req struct {
		Email        string `json:"email"`
		Password     string `json:"password"`
		CaptchaToken string `json:"captcha_token"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, util.Error("please provide email and password"))
	}
	if err := h.captcha.Verify(c.Request().Context(), req.CaptchaToken); err != nil {
		return captchaError(c, err)
	}

	result, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials),
			errors.Is(err, service.ErrAccountNotVerified):
			return c.JSON(http.StatusUnauthorized, util.Error(err.Error()))
		default:
			return c.JSON(http.StatusInternalServerError, util.Error("server error during login"))
		}
	}

	return c.JSON(http.StatusOK, util.Envelope{
		"id":    result.User.ID,
		"email": result.User.Email,
		"role":  result.User.Role,
		"token": result.Token,
	})
}

// forgotPasswordMessage is returned whether or not the email belongs to a
// verified account.
const forgotPasswordMessage = "If an account with that email exists and is verified, a password reset OTP has been sent."

func (h *AuthHandler) forgotPassword(c echo.Context) error {
	var req struct {
		Email        string `json:"email"`
		CaptchaToken string `json:"captcha_token"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	if strings.TrimSpace(req.Email) == "" {
		return c.JSON(http.StatusBadRequest, util.Error("please provide an email address"))
	}
	if err := h.captcha.Verify(c.Request().Context(), req.CaptchaToken); err != nil {
		return captchaError(c, err)
	}

	if err := h.auth.ForgotPassword(c.Request().Context(), req.Email); err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("server error requesting password reset"))
	}
	return c.JSON(http.StatusOK, util.Message(forgotPasswordMessage))
}

func (h *AuthHandler) verifyResetOTP(c echo.Context) error {
	var req struct {
		Email string `json:"email"`
		OTP   string `json:"otp"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.OTP) == "" {
		return c.JSON(http.StatusBadRequest, util.Error("please provide email and OTP"))
	}

	if err := h.auth.VerifyResetOTP(c.Request().Context(), req.Email, req.OTP); err != nil {
		if errors.Is(err, service.ErrOTPInvalid) {
			return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("server error verifying OTP"))
	}
	return c.JSON(http.StatusOK, util.Message("OTP verified successfully. You can now proceed to reset your password."))
}

func (h *AuthHandler) resetPassword(c echo.Context) error {
	var req struct {
		Email       string `json:"email"`
		OTP         string `json:"otp"`
		NewPassword string `json:"new_password"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.OTP) == "" || req.NewPassword == "" {
		return c.JSON(http.StatusBadRequest, util.Error("please provide email, OTP, and new password"))
	}

	if err := h.auth.ResetPassword(c.Request().Context(), req.Email, req.OTP, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, service.ErrPasswordTooWeak),
			errors.Is(err, service.ErrOTPInvalid):
			return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
		default:
			return c.JSON(http.StatusInternalServerError, util.Error("server error resetting password"))
		}
	}
	return c.JSON(http.StatusOK, util.Message("Password reset successful. You can now log in with your new password."))
}

func captchaError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrCaptchaRequired):
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	case errors.Is(err, service.ErrCaptchaFailed):
		return c.JSON(http.StatusUnauthorized, util.Error("captcha verification failed, please try again"))
	default:
		return c.JSON(http.StatusInternalServerError, util.Error("server error during captcha verification"))
	}
}
