// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/smartexam/backend/internal/app/models/dto"
	"github.com/smartexam/backend/internal/app/services"
	"github.com/smartexam/backend/internal/middleware"
	"github.com/smartexam/backend/internal/pkg/auth"
)

// RefreshTokenCookie is the cookie the refresh token travels in
const RefreshTokenCookie = "refreshToken"

// AuthController handles authentication related operations
type AuthController struct {
	authService *services.AuthService
	jwtService  *auth.JWTService
	production  bool
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService, jwtService *auth.JWTService, production bool, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		jwtService:  jwtService,
		production:  production,
		logger:      logger,
	}
}

// setTokenCookies stores both tokens as httpOnly cookies. SameSite=None so
// the browser sends them on cross-site requests from the frontend; Secure is
// required by browsers for SameSite=None but is relaxed outside production
// for local development over plain HTTP.
func (c *AuthController) setTokenCookies(ctx *gin.Context, accessToken, refreshToken string) {
	ctx.SetSameSite(http.SameSiteNoneMode)
	ctx.SetCookie(middleware.AccessTokenCookie, accessToken,
		int(c.jwtService.AccessTokenExpiry().Seconds()), "/", "", c.production, true)
	ctx.SetCookie(RefreshTokenCookie, refreshToken,
		int(c.jwtService.RefreshTokenExpiry().Seconds()), "/", "", c.production, true)
}

// clearTokenCookies expires both token cookies
func (c *AuthController) clearTokenCookies(ctx *gin.Context) {
	ctx.SetSameSite(http.SameSiteNoneMode)
	ctx.SetCookie(middleware.AccessTokenCookie, "", -1, "/", "", c.production, true)
	ctx.SetCookie(RefreshTokenCookie, "", -1, "/", "", c.production, true)
}

// Register handles user registration
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid registration request payload")
		middleware.HandleValidationError(ctx, err)
		return
	}

	user, err := c.authService.Register(ctx.Request.Context(), &req)
	if err != nil {
		c.logger.Warn().Err(err).Str("email", req.Email).Msg("Registration failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().
		Int64("userID", user.ID).
		Str("role", string(user.Role)).
		Msg("User registered")

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(user, "User registered successfully"))
}

// Login authenticates a user and sets the token cookies
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	resp, err := c.authService.Login(ctx.Request.Context(), &req)
	if err != nil {
		c.logger.Warn().Err(err).Str("email", req.Email).Msg("Login failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.setTokenCookies(ctx, resp.AccessToken, resp.RefreshToken)

	c.logger.Info().Int64("userID", resp.User.ID).Msg("User logged in")

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, "Login successful"))
}

// Logout revokes the refresh token and clears the token cookies
func (c *AuthController) Logout(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Authentication required"))
		return
	}

	refreshToken, _ := ctx.Cookie(RefreshTokenCookie)
	if refreshToken == "" {
		var req dto.RefreshTokenRequest
		if err := ctx.ShouldBindJSON(&req); err == nil {
			refreshToken = req.RefreshToken
		}
	}

	if err := c.authService.Logout(ctx.Request.Context(), userID, refreshToken); err != nil {
		c.clearTokenCookies(ctx)
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.clearTokenCookies(ctx)

	c.logger.Info().Int64("userID", userID).Msg("User logged out")

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Logout successful"))
}

// Refresh rotates the token pair using the refresh token from the cookie or
// the request body
func (c *AuthController) Refresh(ctx *gin.Context) {
	refreshToken, _ := ctx.Cookie(RefreshTokenCookie)
	if refreshToken == "" {
		var req dto.RefreshTokenRequest
		if err := ctx.ShouldBindJSON(&req); err == nil {
			refreshToken = req.RefreshToken
		}
	}

	if refreshToken == "" {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Refresh token missing"))
		return
	}

	pair, err := c.authService.Refresh(ctx.Request.Context(), refreshToken)
	if err != nil {
		c.clearTokenCookies(ctx)
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.setTokenCookies(ctx, pair.AccessToken, pair.RefreshToken)

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(
		dto.RefreshResponse{AccessToken: pair.AccessToken}, "Token refreshed"))
}
