package dto

import (
	"time"

	"github.com/smartexam/backend/internal/app/models"
)

// GenerateExamRequest holds the parameters forwarded to the hosted model
type GenerateExamRequest struct {
	Title            string `json:"title" binding:"required"`
	Subject          string `json:"subject" binding:"required"`
	Grade            string `json:"grade" binding:"required"`
	Difficulty       string `json:"difficulty" binding:"required"`
	CognitiveSkill   string `json:"cognitiveSkill" binding:"required"`
	QuestionCount    int    `json:"questionCount" binding:"required,min=1,max=50"`
	MarksPerQuestion int    `json:"marksPerQuestion" binding:"required,min=1"`
}

// GenerateExamResponse is returned to the owning teacher, answers included
type GenerateExamResponse struct {
	ExamCode       string       `json:"examCode"`
	TotalQuestions int          `json:"totalQuestions"`
	Exam           *models.Exam `json:"exam"`
}

// StudentQuestion is a question with the correct index stripped
type StudentQuestion struct {
	ID           string   `json:"id"`
	QuestionText string   `json:"questionText"`
	Options      []string `json:"options"`
}

// StudentExamResponse is the student-facing view of an exam. It must never
// carry correct answers.
type StudentExamResponse struct {
	Title            string            `json:"title"`
	Subject          string            `json:"subject"`
	Grade            string            `json:"grade"`
	QuestionCount    int               `json:"questionCount"`
	MarksPerQuestion int               `json:"marksPerQuestion"`
	Questions        []StudentQuestion `json:"questions"`
}

// NewStudentExamResponse builds the answer-stripped view of an exam
func NewStudentExamResponse(exam *models.Exam) *StudentExamResponse {
	questions := make([]StudentQuestion, 0, len(exam.Questions))
	for _, q := range exam.Questions {
		questions = append(questions, StudentQuestion{
			ID:           q.ID,
			QuestionText: q.QuestionText,
			Options:      q.Options,
		})
	}
	return &StudentExamResponse{
		Title:            exam.Title,
		Subject:          exam.Subject,
		Grade:            exam.Grade,
		QuestionCount:    exam.QuestionCount,
		MarksPerQuestion: exam.MarksPerQuestion,
		Questions:        questions,
	}
}

// ExamSummary is exam metadata without embedded questions
type ExamSummary struct {
	ID               int64     `json:"id"`
	Title            string    `json:"title"`
	Subject          string    `json:"subject"`
	Grade            string    `json:"grade"`
	Code             string    `json:"code"`
	QuestionCount    int       `json:"questionCount"`
	MarksPerQuestion int       `json:"marksPerQuestion"`
	CreatedAt        time.Time `json:"createdAt"`
}

// NewExamSummary maps an exam to its metadata-only view
func NewExamSummary(exam *models.Exam) ExamSummary {
	return ExamSummary{
		ID:               exam.ID,
		Title:            exam.Title,
		Subject:          exam.Subject,
		Grade:            exam.Grade,
		Code:             exam.Code,
		QuestionCount:    exam.QuestionCount,
		MarksPerQuestion: exam.MarksPerQuestion,
		CreatedAt:        exam.CreatedAt,
	}
}

// ExamListResponse lists a teacher's exams, newest first
type ExamListResponse struct {
	Count int           `json:"count"`
	Exams []ExamSummary `json:"exams"`
}
