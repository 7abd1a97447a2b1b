package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/smartexam/backend/internal/app/models"
	"github.com/smartexam/backend/internal/pkg/apperrors"
	"github.com/smartexam/backend/internal/pkg/dberrors"
	"github.com/smartexam/backend/internal/pkg/logger"
)

// ExamRepository handles exam database operations. Questions are embedded in
// the exam row as a JSONB array so a single write creates the whole document.
type ExamRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewExamRepository creates a new ExamRepository
func NewExamRepository(db *pgxpool.Pool) *ExamRepository {
	return &ExamRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateExam persists a new exam with its embedded questions and returns its ID
func (r *ExamRepository) CreateExam(ctx context.Context, exam *models.Exam) (int64, error) {
	questionsJSON, err := json.Marshal(exam.Questions)
	if err != nil {
		return 0, fmt.Errorf("failed to encode questions: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, `
		INSERT INTO exams (title, subject, grade, difficulty, cognitive_skill,
			question_count, marks_per_question, code, created_by, questions)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`,
		exam.Title, exam.Subject, exam.Grade, exam.Difficulty, exam.CognitiveSkill,
		exam.QuestionCount, exam.MarksPerQuestion, exam.Code, exam.CreatedBy,
		questionsJSON).Scan(&id)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "exams_code_key") {
			logger.Warn().Str("code", exam.Code).Msg("Exam code collision")
			return 0, apperrors.NewConflictError("exam code already in use")
		}
		return 0, fmt.Errorf("error creating exam: %w", err)
	}

	return id, nil
}

const examColumns = `id, title, subject, grade, difficulty, cognitive_skill,
	question_count, marks_per_question, code, created_by, questions, created_at`

func scanExam(row pgx.Row) (*models.Exam, error) {
	exam := &models.Exam{}
	var questionsJSON []byte

	err := row.Scan(
		&exam.ID, &exam.Title, &exam.Subject, &exam.Grade, &exam.Difficulty,
		&exam.CognitiveSkill, &exam.QuestionCount, &exam.MarksPerQuestion,
		&exam.Code, &exam.CreatedBy, &questionsJSON, &exam.CreatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(questionsJSON, &exam.Questions); err != nil {
		return nil, fmt.Errorf("failed to decode questions: %w", err)
	}

	return exam, nil
}

// GetExamByID retrieves an exam by its internal identifier
func (r *ExamRepository) GetExamByID(ctx context.Context, id int64) (*models.Exam, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+examColumns+`
		FROM exams
		WHERE id = $1`, id)

	exam, err := scanExam(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrExamNotFound
		}
		return nil, fmt.Errorf("error retrieving exam: %w", err)
	}

	return exam, nil
}

// GetExamByCode retrieves an exam by its shareable code. Codes are compared
// case-insensitively since they are dictated over classroom channels.
func (r *ExamRepository) GetExamByCode(ctx context.Context, code string) (*models.Exam, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+examColumns+`
		FROM exams
		WHERE code = $1`, strings.ToUpper(strings.TrimSpace(code)))

	exam, err := scanExam(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrExamNotFound
		}
		return nil, fmt.Errorf("error retrieving exam: %w", err)
	}

	return exam, nil
}

// GetExamsByOwner retrieves all exams created by a teacher, newest first
func (r *ExamRepository) GetExamsByOwner(ctx context.Context, ownerID int64) ([]*models.Exam, error) {
	sql, args, err := r.sb.Select(
		"id", "title", "subject", "grade", "difficulty", "cognitive_skill",
		"question_count", "marks_per_question", "code", "created_by",
		"questions", "created_at").
		From("exams").
		Where(squirrel.Eq{"created_by": ownerID}).
		OrderBy("created_at DESC").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building list exams SQL")
		return nil, fmt.Errorf("failed to build list exams query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing exams: %w", err)
	}
	defer rows.Close()

	var exams []*models.Exam
	for rows.Next() {
		exam, err := scanExam(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning exam row: %w", err)
		}
		exams = append(exams, exam)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating exam rows: %w", err)
	}

	return exams, nil
}

// DeleteExam removes an exam permanently
func (r *ExamRepository) DeleteExam(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM exams WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting exam: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrExamNotFound
	}
	return nil
}
