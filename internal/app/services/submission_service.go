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
)

// SubmissionService scores submitted answer sets and assembles role-scoped
// result views.
type SubmissionService struct {
	examStore       ExamStore
	submissionStore SubmissionStore
	userStore       UserStore
	logger          zerolog.Logger
}

// NewSubmissionService creates a new SubmissionService
func NewSubmissionService(examStore ExamStore, submissionStore SubmissionStore, userStore UserStore, logger zerolog.Logger) *SubmissionService {
	return &SubmissionService{
		examStore:       examStore,
		submissionStore: submissionStore,
		userStore:       userStore,
		logger:          logger,
	}
}

// Score computes the total marks for an answer set against an exam's answer
// key. For each question the first submitted answer with a matching question
// ID counts; a match earns the question's marks when the selected index
// equals the correct index. Unmatched, missing and incorrect answers
// contribute zero.
func Score(exam *models.Exam, answers []models.Answer) int {
	score := 0
	for _, question := range exam.Questions {
		for _, answer := range answers {
			if answer.QuestionID != question.ID {
				continue
			}
			if answer.SelectedIndex == question.CorrectIndex {
				score += question.Marks
			}
			break
		}
	}
	return score
}

// Submit scores an answer set against the exam behind the given code and
// persists the submission. Students may submit the same exam more than once;
// each submit creates a new record.
func (s *SubmissionService) Submit(ctx context.Context, code string, studentID *int64, answers []models.Answer) (*dto.SubmitExamResponse, error) {
	exam, err := s.examStore.GetExamByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	submission := &models.Submission{
		StudentID: studentID,
		ExamID:    exam.ID,
		Answers:   answers,
		Score:     Score(exam, answers),
	}

	if err := s.submissionStore.CreateSubmission(ctx, submission); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("examID", exam.ID).
		Int64("submissionID", submission.ID).
		Int("score", submission.Score).
		Msg("Submission stored")

	return &dto.SubmitExamResponse{
		TotalMarks:    exam.TotalMarks(),
		ObtainedMarks: submission.Score,
		Submission:    submission,
	}, nil
}

// BuildResultView assembles the detailed result for a submission. Only the
// submitting student may view it; per-answer correctness is recomputed from
// the stored exam rather than trusted from submission time.
func (s *SubmissionService) BuildResultView(ctx context.Context, submissionID, requesterID int64) (*dto.ResultResponse, error) {
	submission, err := s.submissionStore.GetSubmissionByID(ctx, submissionID)
	if err != nil {
		return nil, err
	}

	if submission.StudentID == nil || *submission.StudentID != requesterID {
		return nil, apperrors.NewForbiddenError("only the submitting student can view this result")
	}

	exam, err := s.examStore.GetExamByID(ctx, submission.ExamID)
	if err != nil {
		return nil, err
	}

	student, err := s.userStore.GetUserByID(ctx, *submission.StudentID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	questionsByID := make(map[string]models.Question, len(exam.Questions))
	for _, q := range exam.Questions {
		questionsByID[q.ID] = q
	}

	details := make([]dto.AnswerDetail, 0, len(submission.Answers))
	for _, answer := range submission.Answers {
		question, ok := questionsByID[answer.QuestionID]
		if !ok {
			continue
		}
		details = append(details, dto.AnswerDetail{
			QuestionText:  question.QuestionText,
			Options:       question.Options,
			CorrectIndex:  question.CorrectIndex,
			SelectedIndex: answer.SelectedIndex,
			Marks:         question.Marks,
			IsCorrect:     answer.SelectedIndex == question.CorrectIndex,
		})
	}

	return &dto.ResultResponse{
		ExamTitle:     exam.Title,
		Subject:       exam.Subject,
		Grade:         exam.Grade,
		StudentName:   student.FullName,
		StudentEmail:  student.Email,
		TotalMarks:    exam.TotalMarks(),
		ObtainedMarks: submission.Score,
		Date:          submission.CreatedAt.Format(time.RFC1123),
		Answers:       details,
	}, nil
}

// BuildTeacherSubmissionsView aggregates every submission for an exam. Only
// the owning teacher may view it; answers are returned raw without
// recomputing per-question correctness.
func (s *SubmissionService) BuildTeacherSubmissionsView(ctx context.Context, examID, requesterID int64) (*dto.SubmissionsResponse, error) {
	exam, err := s.examStore.GetExamByID(ctx, examID)
	if err != nil {
		return nil, err
	}

	if exam.CreatedBy != requesterID {
		return nil, apperrors.NewForbiddenError("only the exam owner can view its submissions")
	}

	submissions, err := s.submissionStore.GetSubmissionsByExam(ctx, examID)
	if err != nil {
		return nil, err
	}

	totalScore := exam.TotalMarks()
	summaries := make([]dto.SubmissionSummary, 0, len(submissions))
	for _, submission := range submissions {
		summary := dto.SubmissionSummary{
			StudentID:   submission.StudentID,
			StudentName: "Anonymous",
			Email:       "N/A",
			Score:       submission.Score,
			TotalScore:  totalScore,
			Answers:     submission.Answers,
		}

		if submission.StudentID != nil {
			student, err := s.userStore.GetUserByID(ctx, *submission.StudentID)
			if err != nil && !errors.Is(err, apperrors.ErrUserNotFound) {
				return nil, fmt.Errorf("error retrieving student: %w", err)
			}
			// A deleted student leaves the submission anonymous.
			if err == nil {
				summary.StudentName = student.FullName
				summary.Email = student.Email
			}
		}

		summaries = append(summaries, summary)
	}

	return &dto.SubmissionsResponse{
		Exam: dto.SubmissionsExamHeader{
			ID:            exam.ID,
			Title:         exam.Title,
			Subject:       exam.Subject,
			Grade:         exam.Grade,
			TotalScore:    totalScore,
			TotalStudents: len(summaries),
		},
		Submissions: summaries,
	}, nil
}
