package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smartexam/backend/internal/app/models"
	"github.com/smartexam/backend/internal/app/models/dto"
	"github.com/smartexam/backend/internal/pkg/auth"
)

// Context keys set by JWTAuth for downstream handlers
const (
	ContextUserID = "userID"
	ContextEmail  = "email"
	ContextRole   = "role"
)

// AccessTokenCookie is the cookie the access token travels in
const AccessTokenCookie = "accessToken"

// AuthMiddleware for authentication and authorization
type AuthMiddleware struct {
	jwtService *auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService}
}

// JWTAuth validates the access token from the accessToken cookie or the
// Authorization header and stores the caller's identity in the context.
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, _ := c.Cookie(AccessTokenCookie)

		if tokenString == "" {
			if header := c.GetHeader("Authorization"); header != "" {
				extracted, err := auth.ExtractBearerToken(header)
				if err != nil {
					c.AbortWithStatusJSON(http.StatusUnauthorized,
						dto.NewErrorResponse("Invalid token format"))
					return
				}
				tokenString = extracted
			}
		}

		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse("Authentication required"))
			return
		}

		claims, err := m.jwtService.ValidateAccessToken(tokenString)
		if err != nil {
			message := "Invalid or expired token"
			if errors.Is(err, auth.ErrExpiredToken) {
				message = "Token has expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(message))
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextRole, claims.Role)

		c.Next()
	}
}

// RoleRequired rejects callers whose role does not match. Must run after
// JWTAuth.
func (m *AuthMiddleware) RoleRequired(requiredRole models.RoleType) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ContextRole)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse("Authentication required"))
			return
		}

		roleType, ok := role.(models.RoleType)
		if !ok || roleType != requiredRole {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse("You don't have sufficient permissions for this operation"))
			return
		}

		c.Next()
	}
}

// CurrentUserID returns the authenticated user's ID from the context
func CurrentUserID(c *gin.Context) (int64, bool) {
	value, exists := c.Get(ContextUserID)
	if !exists {
		return 0, false
	}
	id, ok := value.(int64)
	return id, ok
}
