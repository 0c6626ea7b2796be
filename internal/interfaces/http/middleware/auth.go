package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"trust-fund.backend/internal/domain/entities"
	"trust-fund.backend/pkg/jwt"
	"trust-fund.backend/pkg/logger"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// UserIDKey is the context key for user ID
	UserIDKey = "userId"
	// UserEmailKey is the context key for user email
	UserEmailKey = "userEmail"
	// UserRoleKey is the context key for user role
	UserRoleKey = "userRole"

	// Identity headers forwarded to downstream services. The role header
	// carries the prefixed authority form, e.g. "ROLE_USER".
	UserIDHeader    = "X-User-Id"
	UserEmailHeader = "X-User-Email"
	UserRoleHeader  = "X-User-Role"
)

// AuthMode selects what happens when a request carries no valid access token.
type AuthMode int

const (
	// Enforce rejects unauthenticated requests with 401. This is the mode for
	// anything that serves protected resources.
	Enforce AuthMode = iota
	// Annotate lets unauthenticated requests through without identity in the
	// context. Handlers that need a principal must check for one themselves.
	Annotate
)

// AuthConfig configures the authentication middleware. The mode is an explicit
// choice per router group, never inferred from the deployment.
type AuthConfig struct {
	Mode AuthMode
	// PublicPaths are path prefixes that skip token processing entirely,
	// even in Enforce mode.
	PublicPaths []string
}

// StripInboundIdentity drops client-supplied X-User-* headers before anything
// downstream can read them. These headers are only trustworthy when set by
// AuthMiddleware after token verification, so every inbound value is a forgery
// attempt. Register this globally, ahead of any middleware that consumes
// identity headers.
func StripInboundIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		stripInboundIdentity(c)
		c.Next()
	}
}

func stripInboundIdentity(c *gin.Context) {
	c.Request.Header.Del(UserIDHeader)
	c.Request.Header.Del(UserEmailHeader)
	c.Request.Header.Del(UserRoleHeader)
}

// AuthMiddleware verifies the bearer access token and exposes the principal
// via gin context keys and forwarded identity headers.
func AuthMiddleware(jwtService *jwt.Service, cfg AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Inbound identity headers are never trusted, including on paths
		// that skip token processing.
		stripInboundIdentity(c)

		if isPublicPath(c.Request.URL.Path, cfg.PublicPaths) {
			c.Next()
			return
		}

		token, ok := bearerToken(c)
		if !ok {
			deny(c, cfg.Mode, "Authorization header with Bearer token is required")
			return
		}

		claims, err := jwtService.VerifyPurpose(token, jwt.TokenAccess)
		if err != nil {
			logger.WithContext(c.Request.Context()).Warn("rejected access token",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err),
			)
			if err == jwt.ErrTokenExpired {
				deny(c, cfg.Mode, "Token has expired")
				return
			}
			deny(c, cfg.Mode, "Invalid token")
			return
		}

		userID, err := uuid.Parse(claims.Subject)
		if err != nil {
			deny(c, cfg.Mode, "Invalid token")
			return
		}

		role, ok := entities.ParseRole(claims.Role)
		if !ok {
			deny(c, cfg.Mode, "Invalid token")
			return
		}

		c.Set(UserIDKey, userID)
		c.Set(UserEmailKey, claims.Email)
		c.Set(UserRoleKey, role)

		c.Request.Header.Set(UserIDHeader, userID.String())
		c.Request.Header.Set(UserEmailHeader, claims.Email)
		c.Request.Header.Set(UserRoleHeader, role.Authority())

		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader(AuthorizationHeader)
	if authHeader == "" || !strings.HasPrefix(authHeader, BearerPrefix) {
		return "", false
	}
	token := strings.TrimPrefix(authHeader, BearerPrefix)
	return token, token != ""
}

func deny(c *gin.Context, mode AuthMode, message string) {
	if mode == Annotate {
		// No identity in context; the request proceeds anonymously.
		c.Next()
		return
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": message,
	})
}

func isPublicPath(path string, publicPaths []string) bool {
	for _, p := range publicPaths {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// GetUserID gets the user ID from context
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(UserIDKey)
	if !exists {
		return uuid.Nil, false
	}
	return userID.(uuid.UUID), true
}

// GetUserEmail gets the user email from context
func GetUserEmail(c *gin.Context) (string, bool) {
	email, exists := c.Get(UserEmailKey)
	if !exists {
		return "", false
	}
	return email.(string), true
}

// GetUserRole gets the user role from context
func GetUserRole(c *gin.Context) (entities.UserRole, bool) {
	role, exists := c.Get(UserRoleKey)
	if !exists {
		return "", false
	}
	return role.(entities.UserRole), true
}

// RequireRole creates a middleware that requires one of the given roles.
func RequireRole(roles ...entities.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := GetUserRole(c)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
			})
			return
		}

		for _, role := range roles {
			if userRole == role {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error": "Insufficient permissions",
		})
	}
}

// RequireStaff requires a back-office role.
func RequireStaff() gin.HandlerFunc {
	return RequireRole(entities.RoleStaff, entities.RoleAdmin)
}

// RequireAdmin requires the admin role.
func RequireAdmin() gin.HandlerFunc {
	return RequireRole(entities.RoleAdmin)
}
