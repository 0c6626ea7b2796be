package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"trust-fund.backend/internal/domain/entities"
	domainerrors "trust-fund.backend/internal/domain/errors"
	"trust-fund.backend/internal/interfaces/http/middleware"
	"trust-fund.backend/internal/interfaces/http/response"
	"trust-fund.backend/internal/usecases"
)

// RefreshTokenHeader carries the refresh token on the refresh endpoint.
const RefreshTokenHeader = "Refresh-Token"

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authUsecase *usecases.AuthUsecase
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authUsecase *usecases.AuthUsecase) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
	}
}

// Register handles user registration
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var input entities.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	authResponse, err := h.authUsecase.Register(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, authResponse)
}

// Login handles user login
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var input entities.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	authResponse, err := h.authUsecase.Login(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, authResponse)
}

// Refresh exchanges a refresh token for a new token pair. The token travels in
// its own header, never in Authorization, so it cannot be mistaken for an
// access token.
// POST /api/v1/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	refreshToken := c.GetHeader(RefreshTokenHeader)
	if refreshToken == "" {
		response.Error(c, domainerrors.BadRequest("Refresh-Token header is required"))
		return
	}

	authResponse, err := h.authUsecase.Refresh(c.Request.Context(), refreshToken)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, authResponse)
}

// GoogleLogin handles federated login with a Google ID token
// POST /api/v1/auth/google-login
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	var input entities.GoogleLoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	authResponse, err := h.authUsecase.GoogleLogin(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, authResponse)
}

// SupabaseLogin handles federated login with a Supabase access token
// POST /api/v1/auth/supabase-login
func (h *AuthHandler) SupabaseLogin(c *gin.Context) {
	var input entities.SupabaseLoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	authResponse, err := h.authUsecase.SupabaseLogin(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, authResponse)
}

// SendOtp issues a one-time passcode to the account's email
// POST /api/v1/auth/send-otp
func (h *AuthHandler) SendOtp(c *gin.Context) {
	var input entities.SendOtpInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	otpResponse, err := h.authUsecase.SendOtp(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, otpResponse)
}

// VerifyOtp exchanges a valid passcode for a purpose-bound token
// POST /api/v1/auth/verify-otp
func (h *AuthHandler) VerifyOtp(c *gin.Context) {
	var input entities.VerifyOtpInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	otpResponse, err := h.authUsecase.VerifyOtp(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, otpResponse)
}

// ResetPassword sets a new password using a password-reset token
// POST /api/v1/auth/reset-password
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var input entities.ResetPasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if err := h.authUsecase.ResetPassword(c.Request.Context(), &input); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, entities.OtpResponse{
		Success: true,
		Message: "Password reset successfully",
	})
}

// VerifyEmail marks the account verified using an email-verify token
// POST /api/v1/auth/verify-email
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var input entities.VerifyEmailInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if err := h.authUsecase.VerifyEmail(c.Request.Context(), &input); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, entities.OtpResponse{
		Success: true,
		Message: "Email verified successfully",
	})
}

// CheckEmail reports whether an account exists for the email
// GET /api/v1/auth/check-email?email=
func (h *AuthHandler) CheckEmail(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		response.Error(c, domainerrors.BadRequest("email query parameter is required"))
		return
	}

	exists, err := h.authUsecase.CheckEmail(c.Request.Context(), email)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"exists": exists})
}

// Me returns the authenticated user's account
// GET /api/v1/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Authentication required"))
		return
	}

	user, err := h.authUsecase.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, user)
}
