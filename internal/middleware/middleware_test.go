package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/smartexam/backend/internal/app/models"
	"github.com/smartexam/backend/internal/pkg/apperrors"
	"github.com/smartexam/backend/internal/pkg/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestStatusForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", apperrors.ErrValidationFailed, http.StatusBadRequest},
		{"bad request", apperrors.NewBadRequestError("nope"), http.StatusBadRequest},
		{"generation failure", apperrors.ErrGenerationFailed, http.StatusInternalServerError},
		{"invalid credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized},
		{"role mismatch", apperrors.ErrRoleMismatch, http.StatusUnauthorized},
		{"expired token", apperrors.ErrTokenExpired, http.StatusUnauthorized},
		{"revoked token", apperrors.ErrTokenRevoked, http.StatusUnauthorized},
		{"forbidden", apperrors.NewForbiddenError("mine"), http.StatusForbidden},
		{"user not found", apperrors.ErrUserNotFound, http.StatusNotFound},
		{"missing refresh token", apperrors.NewResourceNotFoundError("missing refresh token"), http.StatusNotFound},
		{"exam not found", apperrors.ErrExamNotFound, http.StatusNotFound},
		{"submission not found", apperrors.ErrSubmissionNotFound, http.StatusNotFound},
		{"email exists", apperrors.ErrEmailAlreadyExists, http.StatusConflict},
		{"active session", apperrors.ErrSessionActive, http.StatusConflict},
		{"conflict", apperrors.NewConflictError("taken"), http.StatusConflict},
		{"wrapped sentinel", errors.Join(errors.New("context"), apperrors.ErrExamNotFound), http.StatusNotFound},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusForError(tt.err))
		})
	}
}

func TestHandleAPIErrorEnvelope(t *testing.T) {
	SetIncludeStack(false)
	defer SetIncludeStack(true)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)

	HandleAPIError(c, apperrors.ErrExamNotFound)

	assert.Equal(t, http.StatusNotFound, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `"success":false`)
	assert.Contains(t, body, "exam not found")
	assert.NotContains(t, body, `"stack"`)
}

func TestHandleAPIErrorHidesInternalDetail(t *testing.T) {
	SetIncludeStack(false)
	defer SetIncludeStack(true)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)

	HandleAPIError(c, errors.New("pq: connection refused host=db-internal"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Internal server error")
	assert.NotContains(t, w.Body.String(), "db-internal")
}

func TestHandleAPIErrorKeepsGenerationDetail(t *testing.T) {
	SetIncludeStack(false)
	defer SetIncludeStack(true)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/test", nil)

	HandleAPIError(c, fmt.Errorf("%w: model returned no questions", apperrors.ErrGenerationFailed))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "model returned no questions")
	assert.NotContains(t, w.Body.String(), "Internal server error")
}

func newAuthTestRouter(jwtSvc *auth.JWTService, requiredRole models.RoleType) *gin.Engine {
	m := NewAuthMiddleware(jwtSvc)
	router := gin.New()
	group := router.Group("", m.JWTAuth())
	group.GET("/me", func(c *gin.Context) {
		id, _ := CurrentUserID(c)
		c.JSON(http.StatusOK, gin.H{"id": id})
	})
	group.GET("/restricted", m.RoleRequired(requiredRole), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func TestJWTAuth(t *testing.T) {
	jwtSvc := auth.NewJWTService(auth.JWTConfig{
		AccessSecret:    "access",
		RefreshSecret:   "refresh",
		AccessTokenExp:  time.Minute,
		RefreshTokenExp: time.Hour,
		TokenIssuer:     "test",
	})
	accessToken, _, err := jwtSvc.GenerateTokenPair(&models.User{
		ID:    7,
		Email: "t@example.com",
		Role:  models.RoleTeacher,
	})
	require.NoError(t, err)

	router := newAuthTestRouter(jwtSvc, models.RoleTeacher)

	t.Run("cookie accepted", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: accessToken})
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"id":7`)
	})

	t.Run("bearer header accepted", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+accessToken)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing token rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: "garbage"})
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("expired token names expiry", func(t *testing.T) {
		expiredSvc := auth.NewJWTService(auth.JWTConfig{
			AccessSecret:    "access",
			RefreshSecret:   "refresh",
			AccessTokenExp:  -time.Minute,
			RefreshTokenExp: time.Hour,
			TokenIssuer:     "test",
		})
		expired, _, err := expiredSvc.GenerateTokenPair(&models.User{ID: 7, Role: models.RoleTeacher})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: expired})
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "expired")
	})

	t.Run("role enforced", func(t *testing.T) {
		studentToken, _, err := jwtSvc.GenerateTokenPair(&models.User{
			ID:    8,
			Email: "s@example.com",
			Role:  models.RoleStudent,
		})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/restricted", nil)
		req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: studentToken})
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("matching role passes", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/restricted", nil)
		req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: accessToken})
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestBodyLimit(t *testing.T) {
	router := gin.New()
	router.Use(BodyLimit())
	router.POST("/echo", func(c *gin.Context) {
		var payload map[string]any
		if err := c.ShouldBindJSON(&payload); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.Status(http.StatusOK)
	})

	t.Run("small body passes", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{"ok":true}`))
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("oversized body rejected", func(t *testing.T) {
		big := `{"pad":"` + strings.Repeat("x", MaxBodyBytes) + `"}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(big))
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	})

	t.Run("oversized chunked body rejected", func(t *testing.T) {
		// No Content-Length, so the limit only trips while the body is
		// read during binding.
		big := `{"pad":"` + strings.Repeat("x", MaxBodyBytes) + `"}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(big))
		req.ContentLength = -1
		req.TransferEncoding = []string{"chunked"}
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		assert.Contains(t, w.Body.String(), "Request body too large")
	})
}
