package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories is a container for all repositories
type Repositories struct {
	UserRepository       *UserRepository
	TokenRepository      *TokenRepository
	ExamRepository       *ExamRepository
	SubmissionRepository *SubmissionRepository
}

// NewRepositories creates all repositories against a shared connection pool
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:       NewUserRepository(db),
		TokenRepository:      NewTokenRepository(db),
		ExamRepository:       NewExamRepository(db),
		SubmissionRepository: NewSubmissionRepository(db),
	}
}
