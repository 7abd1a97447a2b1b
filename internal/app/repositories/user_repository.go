package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/smartexam/backend/internal/app/models"
	"github.com/smartexam/backend/internal/pkg/apperrors"
	"github.com/smartexam/backend/internal/pkg/dberrors"
	"github.com/smartexam/backend/internal/pkg/logger"
)

// UserRepository handles user database operations
type UserRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateUser creates a new user and returns its ID. Email is unique per role;
// a duplicate pair maps to ErrEmailAlreadyExists.
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO users (role, email, fullname, password)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		user.Role, user.Email, user.FullName, user.Password).Scan(&id)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_email_role_key") {
			return 0, apperrors.ErrEmailAlreadyExists
		}
		return 0, fmt.Errorf("error creating user: %w", err)
	}

	return id, nil
}

// GetUserByID retrieves a user by ID
func (r *UserRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRow(ctx, `
		SELECT id, role, email, fullname, password, theme_preference, created_at, updated_at
		FROM users
		WHERE id = $1`,
		id).Scan(
		&user.ID, &user.Role, &user.Email, &user.FullName, &user.Password,
		&user.ThemePreference, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	return user, nil
}

// GetUserByEmail retrieves a user by email, regardless of role
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRow(ctx, `
		SELECT id, role, email, fullname, password, theme_preference, created_at, updated_at
		FROM users
		WHERE email = $1
		ORDER BY id
		LIMIT 1`,
		email).Scan(
		&user.ID, &user.Role, &user.Email, &user.FullName, &user.Password,
		&user.ThemePreference, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	return user, nil
}

// EmailExists checks if a user with this email and role already exists
func (r *UserRepository) EmailExists(ctx context.Context, email string, role models.RoleType) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM users WHERE email = $1 AND role = $2)`,
		email, role).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking email: %w", err)
	}

	return exists, nil
}

// DeleteUser removes a user record. Used to compensate a failed registration
// read-back; related exams and submissions are not cascaded.
func (r *UserRepository) DeleteUser(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting user: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// GetThemePreference retrieves the stored UI theme for a user
func (r *UserRepository) GetThemePreference(ctx context.Context, userID int64) (*string, error) {
	var theme *string
	err := r.db.QueryRow(ctx, `
		SELECT theme_preference FROM users WHERE id = $1`,
		userID).Scan(&theme)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving theme preference: %w", err)
	}

	return theme, nil
}

// UpdateThemePreference stores the UI theme for a user
func (r *UserRepository) UpdateThemePreference(ctx context.Context, userID int64, theme string) error {
	sql, args, err := r.sb.Update("users").
		Set("theme_preference", theme).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": userID}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building update theme SQL")
		return fmt.Errorf("failed to build update theme query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating theme preference: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}
