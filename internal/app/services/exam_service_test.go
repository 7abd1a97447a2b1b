package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/smartexam/backend/internal/app/models"
	"github.com/smartexam/backend/internal/app/models/dto"
	"github.com/smartexam/backend/internal/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generatedQuestions() []models.Question {
	return []models.Question{
		{ID: "g1", QuestionText: "2+2?", Options: []string{"3", "4", "5", "6"}, CorrectIndex: 1, Marks: 2},
		{ID: "g2", QuestionText: "3*3?", Options: []string{"6", "7", "8", "9"}, CorrectIndex: 3, Marks: 2},
	}
}

func TestExamService_GenerateExam(t *testing.T) {
	examStore := newFakeExamStore()
	generator := &fakeGenerator{questions: generatedQuestions()}
	svc := NewExamService(examStore, generator, zerolog.Nop())

	req := &dto.GenerateExamRequest{
		Title:            "Arithmetic Quiz",
		Subject:          "Math",
		Grade:            "4",
		Difficulty:       "easy",
		CognitiveSkill:   "recall",
		QuestionCount:    2,
		MarksPerQuestion: 2,
	}

	resp, err := svc.GenerateExam(context.Background(), 7, req)
	require.NoError(t, err)

	assert.Equal(t, 2, resp.TotalQuestions)
	assert.Len(t, resp.ExamCode, 8)
	require.NotNil(t, resp.Exam)
	assert.Equal(t, int64(7), resp.Exam.CreatedBy)
	assert.Equal(t, resp.ExamCode, resp.Exam.Code)
	assert.NotZero(t, resp.Exam.ID)

	// Request parameters reach the generator untouched.
	assert.Equal(t, "Math", generator.gotParams.Subject)
	assert.Equal(t, 2, generator.gotParams.QuestionCount)
	assert.Equal(t, 2, generator.gotParams.MarksPerQuestion)
}

func TestExamService_GenerateExamFailure(t *testing.T) {
	examStore := newFakeExamStore()
	generator := &fakeGenerator{err: apperrors.ErrGenerationFailed}
	svc := NewExamService(examStore, generator, zerolog.Nop())

	_, err := svc.GenerateExam(context.Background(), 7, &dto.GenerateExamRequest{
		Title: "x", Subject: "y", Grade: "1", Difficulty: "easy",
		CognitiveSkill: "recall", QuestionCount: 1, MarksPerQuestion: 1,
	})
	assert.ErrorIs(t, err, apperrors.ErrGenerationFailed)
	assert.Empty(t, examStore.exams, "failed generation must not persist an exam")
}

func TestExamService_GetExamForStudent(t *testing.T) {
	examStore := newFakeExamStore()
	examStore.addExam(&models.Exam{
		Title:            "Arithmetic Quiz",
		Subject:          "Math",
		Grade:            "4",
		QuestionCount:    2,
		MarksPerQuestion: 2,
		Code:             "WXYZ2345",
		CreatedBy:        7,
		Questions:        generatedQuestions(),
	})
	svc := NewExamService(examStore, &fakeGenerator{}, zerolog.Nop())

	resp, err := svc.GetExamForStudent(context.Background(), "WXYZ2345")
	require.NoError(t, err)

	assert.Equal(t, "Arithmetic Quiz", resp.Title)
	require.Len(t, resp.Questions, 2)
	for _, q := range resp.Questions {
		assert.NotEmpty(t, q.ID)
		assert.NotEmpty(t, q.QuestionText)
		assert.Len(t, q.Options, 4)
	}

	t.Run("unknown code", func(t *testing.T) {
		_, err := svc.GetExamForStudent(context.Background(), "NOPE2345")
		assert.ErrorIs(t, err, apperrors.ErrExamNotFound)
	})
}

func TestExamService_OwnershipChecks(t *testing.T) {
	examStore := newFakeExamStore()
	exam := examStore.addExam(&models.Exam{
		Title:     "Owned",
		Code:      "OWNA2345",
		CreatedBy: 7,
		Questions: generatedQuestions(),
	})
	svc := NewExamService(examStore, &fakeGenerator{}, zerolog.Nop())

	t.Run("details for owner", func(t *testing.T) {
		got, err := svc.GetExamDetails(context.Background(), exam.ID, 7)
		require.NoError(t, err)
		assert.Equal(t, exam.ID, got.ID)
	})

	t.Run("details denied for others", func(t *testing.T) {
		_, err := svc.GetExamDetails(context.Background(), exam.ID, 8)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	t.Run("delete denied for others", func(t *testing.T) {
		err := svc.DeleteExam(context.Background(), exam.ID, 8)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	t.Run("delete by owner", func(t *testing.T) {
		require.NoError(t, svc.DeleteExam(context.Background(), exam.ID, 7))
		err := svc.DeleteExam(context.Background(), exam.ID, 7)
		assert.ErrorIs(t, err, apperrors.ErrExamNotFound)
	})
}

func TestExamService_ListExamsForTeacher(t *testing.T) {
	examStore := newFakeExamStore()
	examStore.addExam(&models.Exam{Title: "A", Code: "AAAA2345", CreatedBy: 7})
	examStore.addExam(&models.Exam{Title: "B", Code: "BBBB2345", CreatedBy: 7})
	examStore.addExam(&models.Exam{Title: "C", Code: "CCCC2345", CreatedBy: 8})
	svc := NewExamService(examStore, &fakeGenerator{}, zerolog.Nop())

	resp, err := svc.ListExamsForTeacher(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Count)
	assert.Len(t, resp.Exams, 2)

	empty, err := svc.ListExamsForTeacher(context.Background(), 99)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Count)
}
