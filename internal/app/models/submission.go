package models

import "time"

// Answer is one selected option for a question, matched by question ID.
type Answer struct {
	QuestionID    string `json:"questionId"`
	SelectedIndex int    `json:"selectedIndex"`
}

// Submission defines the submission model based on the 'submissions' table.
// StudentID is nullable: anonymous submissions are allowed by the data model.
// A submission is never mutated after creation.
type Submission struct {
	ID        int64     `json:"id" db:"id"`
	StudentID *int64    `json:"studentId,omitempty" db:"student_id"`
	ExamID    int64     `json:"examId" db:"exam_id"`
	Answers   []Answer  `json:"answers" db:"answers"`
	Score     int       `json:"score" db:"score"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
