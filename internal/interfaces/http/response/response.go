package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	domainerrors "trust-fund.backend/internal/domain/errors"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Error sends an error response. Sentinel domain errors map onto their HTTP
// shape here so usecases never deal in status codes.
func Error(c *gin.Context, err error) {
	appErr := toAppError(err)
	c.JSON(appErr.Status, gin.H{
		"code":    appErr.Code,
		"message": appErr.Message,
		"error":   appErr.Message, // Backward compatibility
	})
}

// ErrorWithStatus sends an error response with a specific status and message
func ErrorWithStatus(c *gin.Context, status int, code string, message string) {
	c.JSON(status, gin.H{
		"code":    code,
		"message": message,
	})
}

func toAppError(err error) *domainerrors.AppError {
	var appErr *domainerrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, domainerrors.ErrInvalidCredentials):
		return domainerrors.NewAppError(http.StatusUnauthorized, "ERR_INVALID_CREDENTIALS", "invalid email or password", err)
	// Deactivated accounts and failed OTP proofs are authentication
	// failures, same as bad credentials.
	case errors.Is(err, domainerrors.ErrAccountDeactivated):
		return domainerrors.NewAppError(http.StatusUnauthorized, "ERR_ACCOUNT_DEACTIVATED", "account is deactivated", err)
	case errors.Is(err, domainerrors.ErrInvalidOtp):
		return domainerrors.NewAppError(http.StatusUnauthorized, "ERR_INVALID_OTP", "invalid or expired OTP", err)
	case errors.Is(err, domainerrors.ErrOtpExpired):
		return domainerrors.NewAppError(http.StatusUnauthorized, "ERR_OTP_EXPIRED", "OTP has expired", err)
	case errors.Is(err, domainerrors.ErrNotFound):
		return domainerrors.NotFound("resource not found")
	case errors.Is(err, domainerrors.ErrAlreadyExists):
		return domainerrors.Conflict("resource already exists")
	case errors.Is(err, domainerrors.ErrInvalidInput):
		return domainerrors.BadRequest(err.Error())
	case errors.Is(err, domainerrors.ErrUnauthorized):
		return domainerrors.Unauthorized("unauthorized")
	case errors.Is(err, domainerrors.ErrForbidden):
		return domainerrors.Forbidden("forbidden")
	default:
		return domainerrors.InternalError(err)
	}
}
