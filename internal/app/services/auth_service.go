package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/smartexam/backend/internal/app/models"
	"github.com/smartexam/backend/internal/app/models/dto"
	"github.com/smartexam/backend/internal/pkg/apperrors"
	"github.com/smartexam/backend/internal/pkg/auth"
)

// AuthService handles registration, login, logout and token rotation
type AuthService struct {
	userStore  UserStore
	tokenStore TokenStore
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(userStore UserStore, tokenStore TokenStore, jwtService *auth.JWTService, logger zerolog.Logger) *AuthService {
	return &AuthService{
		userStore:  userStore,
		tokenStore: tokenStore,
		jwtService: jwtService,
		logger:     logger,
	}
}

// TokenPair bundles the two session tokens issued on login and refresh
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Register creates a new user account. Email is unique within a role; the
// same email may register once as a teacher and once as a student.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	if !req.Role.Valid() {
		return nil, fmt.Errorf("%w: role must be teacher or student", apperrors.ErrValidationFailed)
	}

	exists, err := s.userStore.EmailExists(ctx, req.Email, req.Role)
	if err != nil {
		return nil, fmt.Errorf("error checking if email exists: %w", err)
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Role:     req.Role,
		Email:    req.Email,
		FullName: req.FullName,
		Password: hashedPassword,
	}

	userID, err := s.userStore.CreateUser(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("user creation error: %w", err)
	}

	// Read back the stored record; if that fails, compensate by deleting the
	// just-created row so a half-registered account is not left behind.
	created, err := s.userStore.GetUserByID(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Int64("userID", userID).Msg("Read-back of created user failed, deleting record")
		if delErr := s.userStore.DeleteUser(ctx, userID); delErr != nil {
			s.logger.Error().Err(delErr).Int64("userID", userID).Msg("Compensating delete failed")
		}
		return nil, fmt.Errorf("user registration failed: %w", err)
	}

	resp := dto.NewUserResponse(created)
	return &resp, nil
}

// Login authenticates a user and issues a token pair. A user with an active
// refresh token is already logged in elsewhere and is rejected with a
// conflict (single active session policy).
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userStore.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	if user.Role != req.Role {
		return nil, apperrors.ErrRoleMismatch
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	active, err := s.tokenStore.HasActiveToken(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("error checking active session: %w", err)
	}
	if active {
		return nil, apperrors.ErrSessionActive
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userID", user.ID).Str("role", string(user.Role)).Msg("User logged in")

	return &dto.LoginResponse{
		User:         dto.NewUserResponse(user),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}

// Logout revokes the refresh token presented by the session being closed.
// A missing or unmatched token is a not-found condition, not an auth failure:
// the caller already proved their identity to reach this point.
func (s *AuthService) Logout(ctx context.Context, userID int64, refreshToken string) error {
	if refreshToken == "" {
		return apperrors.NewResourceNotFoundError("missing refresh token")
	}

	if err := s.tokenStore.RevokeUserToken(ctx, userID, refreshToken); err != nil {
		if errors.Is(err, apperrors.ErrTokenNotFound) {
			return apperrors.NewResourceNotFoundError("refresh token not found")
		}
		return fmt.Errorf("error revoking token: %w", err)
	}

	s.logger.Info().Int64("userID", userID).Msg("User logged out")
	return nil
}

// Refresh rotates a refresh token: the presented token must carry a valid
// signature, belong to an existing user and still be active in the store.
// The old token is revoked before the new pair is issued.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	if refreshToken == "" {
		return nil, apperrors.ErrTokenInvalid
	}

	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrExpiredToken) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, apperrors.ErrTokenInvalid
	}

	userID, err := s.tokenStore.GetTokenUser(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if userID != claims.UserID {
		return nil, apperrors.ErrTokenInvalid
	}

	user, err := s.userStore.GetUserByID(ctx, userID)
	if err != nil {
		return nil, apperrors.ErrTokenInvalid
	}

	// Revoke before reissue so the superseded token cannot be replayed.
	if err := s.tokenStore.RevokeToken(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("failed to revoke old token: %w", err)
	}

	return s.issueTokens(ctx, user)
}

func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*TokenPair, error) {
	accessToken, refreshToken, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, fmt.Errorf("error generating tokens: %w", err)
	}

	expiry := time.Now().Add(s.jwtService.RefreshTokenExpiry())
	if err := s.tokenStore.CreateToken(ctx, refreshToken, user.ID, expiry); err != nil {
		return nil, fmt.Errorf("error persisting refresh token: %w", err)
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
