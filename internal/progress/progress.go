package progress

import "time"

// SessionType classifies a completed session for scoring and history.
type SessionType string

const (
	TypeFlashcard SessionType = "Flashcard"
	TypeQuiz      SessionType = "Quiz"
	TypeExamYear1 SessionType = "Exam Year 1"
	TypeExamFinal SessionType = "Exam Final"
)

// IsExam reports whether the type uses the penalty-weighted exam scoring
// policy.
func (t SessionType) IsExam() bool {
	return t == TypeExamYear1 || t == TypeExamFinal
}

// AnswerDetail records one item of a completed session for later review.
type AnswerDetail struct {
	Question      string `json:"question"`
	SelectedIndex int    `json:"selectedIndex"`
}

// TestResult is the immutable record of one completed session.
// Created exactly once at session completion by the scoring engine.
type TestResult struct {
	ID           string         `json:"id"`
	Date         time.Time      `json:"date"`
	Subject      string         `json:"subject"`
	Type         SessionType    `json:"type"`
	TotalItems   int            `json:"totalItems"`
	CorrectCount int            `json:"correctCount"`
	Accuracy     float64        `json:"accuracy"`
	Points       *float64       `json:"points,omitempty"`
	Details      []AnswerDetail `json:"details,omitempty"`
}

// Badge marks mastery of one subject (≥80% on a module session).
// At most one per subject; never mutated or deleted.
type Badge struct {
	ID         string    `json:"id"`
	Subject    string    `json:"subject"`
	Icon       string    `json:"icon"`
	EarnedDate time.Time `json:"earnedDate"`
}

// StudyReminder is a user-scheduled calendar entry.
type StudyReminder struct {
	ID        string    `json:"id"`
	Date      time.Time `json:"date"`
	Subject   string    `json:"subject"`
	Completed bool      `json:"completed"`
}
