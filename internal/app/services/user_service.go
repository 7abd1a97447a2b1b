package services

import (
	"context"
	"fmt"
)

// defaultTheme is returned when a user never stored a preference
const defaultTheme = "light"

// UserService handles user preference operations
type UserService struct {
	userStore UserStore
}

// NewUserService creates a new UserService
func NewUserService(userStore UserStore) *UserService {
	return &UserService{userStore: userStore}
}

// GetTheme returns the user's stored UI theme, defaulting to light
func (s *UserService) GetTheme(ctx context.Context, userID int64) (string, error) {
	theme, err := s.userStore.GetThemePreference(ctx, userID)
	if err != nil {
		return "", err
	}
	if theme == nil || *theme == "" {
		return defaultTheme, nil
	}
	return *theme, nil
}

// UpdateTheme stores the user's UI theme preference
func (s *UserService) UpdateTheme(ctx context.Context, userID int64, theme string) error {
	if err := s.userStore.UpdateThemePreference(ctx, userID, theme); err != nil {
		return fmt.Errorf("error updating theme: %w", err)
	}
	return nil
}
