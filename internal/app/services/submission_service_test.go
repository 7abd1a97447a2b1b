package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/smartexam/backend/internal/app/models"
	"github.com/smartexam/backend/internal/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoQuestionExam() *models.Exam {
	return &models.Exam{
		ID:               1,
		Title:            "Photosynthesis Basics",
		Subject:          "Biology",
		Grade:            "8",
		QuestionCount:    2,
		MarksPerQuestion: 5,
		Code:             "ABCD2345",
		CreatedBy:        10,
		Questions: []models.Question{
			{ID: "q1", QuestionText: "Where does photosynthesis occur?", Options: []string{"Nucleus", "Chloroplast", "Mitochondria", "Ribosome"}, CorrectIndex: 1, Marks: 5},
			{ID: "q2", QuestionText: "What gas is consumed?", Options: []string{"CO2", "O2", "N2", "H2"}, CorrectIndex: 0, Marks: 5},
		},
	}
}

func TestScore(t *testing.T) {
	exam := twoQuestionExam()

	tests := []struct {
		name    string
		answers []models.Answer
		want    int
	}{
		{"all correct", []models.Answer{{QuestionID: "q1", SelectedIndex: 1}, {QuestionID: "q2", SelectedIndex: 0}}, 10},
		{"one correct", []models.Answer{{QuestionID: "q1", SelectedIndex: 1}, {QuestionID: "q2", SelectedIndex: 2}}, 5},
		{"none correct", []models.Answer{{QuestionID: "q1", SelectedIndex: 0}, {QuestionID: "q2", SelectedIndex: 3}}, 0},
		{"empty answers", nil, 0},
		{"missing answer scores zero for that question", []models.Answer{{QuestionID: "q2", SelectedIndex: 0}}, 5},
		{"unknown question id ignored", []models.Answer{{QuestionID: "nope", SelectedIndex: 1}}, 0},
		{"first matching answer wins", []models.Answer{
			{QuestionID: "q1", SelectedIndex: 3},
			{QuestionID: "q1", SelectedIndex: 1},
		}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Score(exam, tt.answers))
		})
	}
}

func TestSubmissionService_Submit(t *testing.T) {
	examStore := newFakeExamStore()
	examStore.addExam(twoQuestionExam())
	submissionStore := newFakeSubmissionStore()
	userStore := newFakeUserStore()

	svc := NewSubmissionService(examStore, submissionStore, userStore, zerolog.Nop())
	studentID := int64(42)

	resp, err := svc.Submit(context.Background(), "ABCD2345", &studentID, []models.Answer{
		{QuestionID: "q1", SelectedIndex: 1},
		{QuestionID: "q2", SelectedIndex: 3},
	})
	require.NoError(t, err)

	assert.Equal(t, 10, resp.TotalMarks)
	assert.Equal(t, 5, resp.ObtainedMarks)
	require.NotNil(t, resp.Submission)
	assert.NotZero(t, resp.Submission.ID)
	assert.Equal(t, int64(1), resp.Submission.ExamID)

	t.Run("unknown code", func(t *testing.T) {
		_, err := svc.Submit(context.Background(), "ZZZZZZZZ", &studentID, nil)
		assert.ErrorIs(t, err, apperrors.ErrExamNotFound)
	})

	t.Run("duplicate submissions allowed", func(t *testing.T) {
		_, err := svc.Submit(context.Background(), "ABCD2345", &studentID, []models.Answer{
			{QuestionID: "q1", SelectedIndex: 1},
			{QuestionID: "q2", SelectedIndex: 0},
		})
		require.NoError(t, err)

		submissions, err := submissionStore.GetSubmissionsByExam(context.Background(), 1)
		require.NoError(t, err)
		assert.Len(t, submissions, 2)
	})
}

func TestSubmissionService_BuildResultView(t *testing.T) {
	examStore := newFakeExamStore()
	examStore.addExam(twoQuestionExam())
	submissionStore := newFakeSubmissionStore()
	userStore := newFakeUserStore()
	student := userStore.addUser(&models.User{
		Role:     models.RoleStudent,
		Email:    "student@example.com",
		FullName: "Sam Student",
	})

	svc := NewSubmissionService(examStore, submissionStore, userStore, zerolog.Nop())

	resp, err := svc.Submit(context.Background(), "ABCD2345", &student.ID, []models.Answer{
		{QuestionID: "q1", SelectedIndex: 1},
		{QuestionID: "q2", SelectedIndex: 2},
	})
	require.NoError(t, err)

	result, err := svc.BuildResultView(context.Background(), resp.Submission.ID, student.ID)
	require.NoError(t, err)

	assert.Equal(t, "Photosynthesis Basics", result.ExamTitle)
	assert.Equal(t, "Sam Student", result.StudentName)
	assert.Equal(t, "student@example.com", result.StudentEmail)
	assert.Equal(t, 10, result.TotalMarks)
	assert.Equal(t, 5, result.ObtainedMarks)
	require.Len(t, result.Answers, 2)
	assert.True(t, result.Answers[0].IsCorrect)
	assert.False(t, result.Answers[1].IsCorrect)
	assert.Equal(t, 1, result.Answers[0].CorrectIndex)

	t.Run("other students are rejected", func(t *testing.T) {
		_, err := svc.BuildResultView(context.Background(), resp.Submission.ID, student.ID+1)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	t.Run("unknown submission", func(t *testing.T) {
		_, err := svc.BuildResultView(context.Background(), 999, student.ID)
		assert.ErrorIs(t, err, apperrors.ErrSubmissionNotFound)
	})
}

func TestSubmissionService_BuildTeacherSubmissionsView(t *testing.T) {
	examStore := newFakeExamStore()
	exam := examStore.addExam(twoQuestionExam())
	submissionStore := newFakeSubmissionStore()
	userStore := newFakeUserStore()
	student := userStore.addUser(&models.User{
		Role:     models.RoleStudent,
		Email:    "student@example.com",
		FullName: "Sam Student",
	})

	svc := NewSubmissionService(examStore, submissionStore, userStore, zerolog.Nop())

	_, err := svc.Submit(context.Background(), "ABCD2345", &student.ID, []models.Answer{
		{QuestionID: "q1", SelectedIndex: 1},
	})
	require.NoError(t, err)

	// Submission with no student on record.
	require.NoError(t, submissionStore.CreateSubmission(context.Background(), &models.Submission{
		ExamID:  exam.ID,
		Answers: []models.Answer{{QuestionID: "q2", SelectedIndex: 0}},
		Score:   5,
	}))

	view, err := svc.BuildTeacherSubmissionsView(context.Background(), exam.ID, exam.CreatedBy)
	require.NoError(t, err)

	assert.Equal(t, exam.ID, view.Exam.ID)
	assert.Equal(t, 10, view.Exam.TotalScore)
	assert.Equal(t, 2, view.Exam.TotalStudents)
	require.Len(t, view.Submissions, 2)

	assert.Equal(t, "Sam Student", view.Submissions[0].StudentName)
	assert.Equal(t, "student@example.com", view.Submissions[0].Email)
	assert.Equal(t, 5, view.Submissions[0].Score)

	assert.Equal(t, "Anonymous", view.Submissions[1].StudentName)
	assert.Equal(t, "N/A", view.Submissions[1].Email)

	t.Run("non-owner is rejected", func(t *testing.T) {
		_, err := svc.BuildTeacherSubmissionsView(context.Background(), exam.ID, exam.CreatedBy+1)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	t.Run("unknown exam", func(t *testing.T) {
		_, err := svc.BuildTeacherSubmissionsView(context.Background(), 999, exam.CreatedBy)
		assert.ErrorIs(t, err, apperrors.ErrExamNotFound)
	})
}

func TestSubmissionService_DeletedStudentRendersAnonymous(t *testing.T) {
	examStore := newFakeExamStore()
	exam := examStore.addExam(twoQuestionExam())
	submissionStore := newFakeSubmissionStore()
	userStore := newFakeUserStore()
	student := userStore.addUser(&models.User{Role: models.RoleStudent, Email: "gone@example.com", FullName: "Gone"})

	svc := NewSubmissionService(examStore, submissionStore, userStore, zerolog.Nop())

	_, err := svc.Submit(context.Background(), "ABCD2345", &student.ID, nil)
	require.NoError(t, err)
	require.NoError(t, userStore.DeleteUser(context.Background(), student.ID))

	view, err := svc.BuildTeacherSubmissionsView(context.Background(), exam.ID, exam.CreatedBy)
	require.NoError(t, err)
	require.Len(t, view.Submissions, 1)
	assert.Equal(t, "Anonymous", view.Submissions[0].StudentName)
	assert.False(t, errors.Is(err, apperrors.ErrUserNotFound))
}
