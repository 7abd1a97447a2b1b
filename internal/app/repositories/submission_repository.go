package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/smartexam/backend/internal/app/models"
	"github.com/smartexam/backend/internal/pkg/apperrors"
	"github.com/smartexam/backend/internal/pkg/logger"
)

// SubmissionRepository handles submission database operations. Rows are
// insert-only; a submission is never updated after creation.
type SubmissionRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewSubmissionRepository creates a new SubmissionRepository
func NewSubmissionRepository(db *pgxpool.Pool) *SubmissionRepository {
	return &SubmissionRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateSubmission persists a new submission and returns it with its assigned
// ID and creation time.
func (r *SubmissionRepository) CreateSubmission(ctx context.Context, submission *models.Submission) error {
	answersJSON, err := json.Marshal(submission.Answers)
	if err != nil {
		return fmt.Errorf("failed to encode answers: %w", err)
	}

	err = r.db.QueryRow(ctx, `
		INSERT INTO submissions (student_id, exam_id, answers, score)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		submission.StudentID, submission.ExamID, answersJSON, submission.Score).
		Scan(&submission.ID, &submission.CreatedAt)

	if err != nil {
		return fmt.Errorf("error creating submission: %w", err)
	}

	return nil
}

func scanSubmission(row pgx.Row) (*models.Submission, error) {
	submission := &models.Submission{}
	var answersJSON []byte

	err := row.Scan(
		&submission.ID, &submission.StudentID, &submission.ExamID,
		&answersJSON, &submission.Score, &submission.CreatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(answersJSON, &submission.Answers); err != nil {
		return nil, fmt.Errorf("failed to decode answers: %w", err)
	}

	return submission, nil
}

// GetSubmissionByID retrieves a submission by ID
func (r *SubmissionRepository) GetSubmissionByID(ctx context.Context, id int64) (*models.Submission, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, student_id, exam_id, answers, score, created_at
		FROM submissions
		WHERE id = $1`, id)

	submission, err := scanSubmission(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("error retrieving submission: %w", err)
	}

	return submission, nil
}

// GetSubmissionsByExam retrieves all submissions for an exam, oldest first
func (r *SubmissionRepository) GetSubmissionsByExam(ctx context.Context, examID int64) ([]*models.Submission, error) {
	sql, args, err := r.sb.Select("id", "student_id", "exam_id", "answers", "score", "created_at").
		From("submissions").
		Where(squirrel.Eq{"exam_id": examID}).
		OrderBy("created_at ASC").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building list submissions SQL")
		return nil, fmt.Errorf("failed to build list submissions query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing submissions: %w", err)
	}
	defer rows.Close()

	var submissions []*models.Submission
	for rows.Next() {
		submission, err := scanSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning submission row: %w", err)
		}
		submissions = append(submissions, submission)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating submission rows: %w", err)
	}

	return submissions, nil
}
