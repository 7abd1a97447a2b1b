package dto

import "github.com/smartexam/backend/internal/app/models"

// SubmitExamRequest carries a student's answer set for an exam code
type SubmitExamRequest struct {
	Answers []models.Answer `json:"answers" binding:"required"`
}

// SubmitExamResponse reports the score for a freshly stored submission
type SubmitExamResponse struct {
	TotalMarks    int                `json:"totalMarks"`
	ObtainedMarks int                `json:"obtainedMarks"`
	Submission    *models.Submission `json:"submission"`
}

// AnswerDetail is one graded answer in a student's result view. IsCorrect is
// recomputed from the stored exam at view time.
type AnswerDetail struct {
	QuestionText  string   `json:"questionText"`
	Options       []string `json:"options"`
	CorrectIndex  int      `json:"correctIndex"`
	SelectedIndex int      `json:"selectedIndex"`
	Marks         int      `json:"marks"`
	IsCorrect     bool     `json:"isCorrect"`
}

// ResultResponse is the detailed result view for the submitting student
type ResultResponse struct {
	ExamTitle     string         `json:"examTitle"`
	Subject       string         `json:"subject"`
	Grade         string         `json:"grade"`
	StudentName   string         `json:"studentName"`
	StudentEmail  string         `json:"studentEmail"`
	TotalMarks    int            `json:"totalMarks"`
	ObtainedMarks int            `json:"obtainedMarks"`
	Date          string         `json:"date"`
	Answers       []AnswerDetail `json:"answers"`
}

// SubmissionSummary is one row in the teacher's submissions view; answers are
// raw, per-question correctness is not recomputed here.
type SubmissionSummary struct {
	StudentID   *int64          `json:"studentId,omitempty"`
	StudentName string          `json:"studentName"`
	Email       string          `json:"email"`
	Score       int             `json:"score"`
	TotalScore  int             `json:"totalScore"`
	Answers     []models.Answer `json:"answers"`
}

// SubmissionsExamHeader describes the exam the submissions belong to
type SubmissionsExamHeader struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	Subject       string `json:"subject"`
	Grade         string `json:"grade"`
	TotalScore    int    `json:"totalScore"`
	TotalStudents int    `json:"totalStudents"`
}

// SubmissionsResponse aggregates all submissions for one exam
type SubmissionsResponse struct {
	Exam        SubmissionsExamHeader `json:"exam"`
	Submissions []SubmissionSummary   `json:"submissions"`
}
