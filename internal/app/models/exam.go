package models

import "time"

// Question is a single multiple-choice item embedded in an exam.
// Questions are stored as an ordered JSON array inside the exam row and are
// immutable after the exam is created.
type Question struct {
	ID           string   `json:"id"`
	QuestionText string   `json:"questionText"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
	Marks        int      `json:"marks"`
}

// Exam defines the exam model based on the 'exams' table
type Exam struct {
	ID               int64      `json:"id" db:"id"`
	Title            string     `json:"title" db:"title"`
	Subject          string     `json:"subject" db:"subject"`
	Grade            string     `json:"grade" db:"grade"`
	Difficulty       string     `json:"difficulty" db:"difficulty"`
	CognitiveSkill   string     `json:"cognitiveSkill" db:"cognitive_skill"`
	QuestionCount    int        `json:"questionCount" db:"question_count"`
	MarksPerQuestion int        `json:"marksPerQuestion" db:"marks_per_question"`
	Code             string     `json:"code" db:"code"`
	CreatedBy        int64      `json:"createdBy" db:"created_by"`
	Questions        []Question `json:"questions" db:"questions"`
	CreatedAt        time.Time  `json:"createdAt" db:"created_at"`
}

// TotalMarks is the maximum obtainable score for the exam. The declared
// question count is authoritative even if it diverges from len(Questions).
func (e *Exam) TotalMarks() int {
	return e.QuestionCount * e.MarksPerQuestion
}
