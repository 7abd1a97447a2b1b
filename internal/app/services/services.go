// Package services contains the application's business logic. Services accept
// narrow store interfaces so the logic can be exercised without a database.
package services

import (
	"context"
	"time"

	"github.com/smartexam/backend/internal/app/models"
	"github.com/smartexam/backend/internal/llm"
)

// UserStore is the slice of user persistence the services need
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) (int64, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string, role models.RoleType) (bool, error)
	DeleteUser(ctx context.Context, id int64) error
	GetThemePreference(ctx context.Context, userID int64) (*string, error)
	UpdateThemePreference(ctx context.Context, userID int64, theme string) error
}

// TokenStore is the slice of refresh token persistence the services need
type TokenStore interface {
	CreateToken(ctx context.Context, token string, userID int64, expiryDate time.Time) error
	GetTokenUser(ctx context.Context, token string) (int64, error)
	HasActiveToken(ctx context.Context, userID int64) (bool, error)
	RevokeToken(ctx context.Context, token string) error
	RevokeUserToken(ctx context.Context, userID int64, token string) error
}

// ExamStore is the slice of exam persistence the services need
type ExamStore interface {
	CreateExam(ctx context.Context, exam *models.Exam) (int64, error)
	GetExamByID(ctx context.Context, id int64) (*models.Exam, error)
	GetExamByCode(ctx context.Context, code string) (*models.Exam, error)
	GetExamsByOwner(ctx context.Context, ownerID int64) ([]*models.Exam, error)
	DeleteExam(ctx context.Context, id int64) error
}

// SubmissionStore is the slice of submission persistence the services need
type SubmissionStore interface {
	CreateSubmission(ctx context.Context, submission *models.Submission) error
	GetSubmissionByID(ctx context.Context, id int64) (*models.Submission, error)
	GetSubmissionsByExam(ctx context.Context, examID int64) ([]*models.Submission, error)
}

// Generator produces exam questions from generation parameters
type Generator interface {
	GenerateMCQs(ctx context.Context, params llm.GenerateParams) ([]models.Question, error)
}
