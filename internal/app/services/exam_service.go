package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/smartexam/backend/internal/app/models"
	"github.com/smartexam/backend/internal/app/models/dto"
	"github.com/smartexam/backend/internal/llm"
	"github.com/smartexam/backend/internal/pkg/apperrors"
	"github.com/smartexam/backend/internal/pkg/examcode"
)

// ExamService handles the exam lifecycle: AI generation, code issuance,
// owner-scoped reads and deletion.
type ExamService struct {
	examStore ExamStore
	generator Generator
	logger    zerolog.Logger
}

// NewExamService creates a new ExamService
func NewExamService(examStore ExamStore, generator Generator, logger zerolog.Logger) *ExamService {
	return &ExamService{
		examStore: examStore,
		generator: generator,
		logger:    logger,
	}
}

// GenerateExam asks the hosted model for questions and persists the exam
// atomically once generation succeeds. The full exam, answers included, is
// returned to the owning teacher.
func (s *ExamService) GenerateExam(ctx context.Context, ownerID int64, req *dto.GenerateExamRequest) (*dto.GenerateExamResponse, error) {
	questions, err := s.generator.GenerateMCQs(ctx, llm.GenerateParams{
		Subject:          req.Subject,
		Grade:            req.Grade,
		Difficulty:       req.Difficulty,
		CognitiveSkill:   req.CognitiveSkill,
		QuestionCount:    req.QuestionCount,
		MarksPerQuestion: req.MarksPerQuestion,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("subject", req.Subject).Msg("Exam generation failed")
		return nil, err
	}

	code, err := examcode.New()
	if err != nil {
		return nil, fmt.Errorf("error generating exam code: %w", err)
	}

	exam := &models.Exam{
		Title:            req.Title,
		Subject:          req.Subject,
		Grade:            req.Grade,
		Difficulty:       req.Difficulty,
		CognitiveSkill:   req.CognitiveSkill,
		QuestionCount:    req.QuestionCount,
		MarksPerQuestion: req.MarksPerQuestion,
		Code:             code,
		CreatedBy:        ownerID,
		Questions:        questions,
	}

	examID, err := s.examStore.CreateExam(ctx, exam)
	if err != nil {
		return nil, err
	}
	exam.ID = examID

	s.logger.Info().
		Int64("examID", examID).
		Str("code", code).
		Int("questions", len(questions)).
		Msg("Exam generated")

	return &dto.GenerateExamResponse{
		ExamCode:       code,
		TotalQuestions: len(exam.Questions),
		Exam:           exam,
	}, nil
}

// GetExamForStudent fetches an exam by code with every correct index
// stripped. Answers must never leak through this read.
func (s *ExamService) GetExamForStudent(ctx context.Context, code string) (*dto.StudentExamResponse, error) {
	exam, err := s.examStore.GetExamByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return dto.NewStudentExamResponse(exam), nil
}

// GetExamDetails returns the full exam, answers included, to its owner only
func (s *ExamService) GetExamDetails(ctx context.Context, examID, requesterID int64) (*models.Exam, error) {
	exam, err := s.examStore.GetExamByID(ctx, examID)
	if err != nil {
		return nil, err
	}

	if exam.CreatedBy != requesterID {
		return nil, apperrors.NewForbiddenError("only the exam owner can view its details")
	}

	return exam, nil
}

// ListExamsForTeacher returns metadata for every exam owned by the teacher,
// most recently created first.
func (s *ExamService) ListExamsForTeacher(ctx context.Context, ownerID int64) (*dto.ExamListResponse, error) {
	exams, err := s.examStore.GetExamsByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	summaries := make([]dto.ExamSummary, 0, len(exams))
	for _, exam := range exams {
		summaries = append(summaries, dto.NewExamSummary(exam))
	}

	return &dto.ExamListResponse{
		Count: len(summaries),
		Exams: summaries,
	}, nil
}

// DeleteExam permanently removes an exam. Only the owner may delete it.
func (s *ExamService) DeleteExam(ctx context.Context, examID, requesterID int64) error {
	exam, err := s.examStore.GetExamByID(ctx, examID)
	if err != nil {
		return err
	}

	if exam.CreatedBy != requesterID {
		return apperrors.NewForbiddenError("only the exam owner can delete it")
	}

	if err := s.examStore.DeleteExam(ctx, examID); err != nil {
		return err
	}

	s.logger.Info().Int64("examID", examID).Int64("ownerID", requesterID).Msg("Exam deleted")
	return nil
}
