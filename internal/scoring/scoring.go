// Package scoring turns a completed session's answers into a TestResult.
// It is pure: no store access, no clocks beyond the stamped date, so the
// numeric edge cases are easy to pin down in tests.
package scoring

import (
	"time"

	"github.com/google/uuid"

	"github.com/abonetti/vetprep/internal/content"
	"github.com/abonetti/vetprep/internal/progress"
)

// Unanswered is the sentinel selection meaning "no option picked".
const Unanswered = -1

// Exam point weights. Wrong answers cost more than blanks on purpose:
// formal exams reward abstaining over guessing.
const (
	pointsCorrect = 2.0
	penaltyWrong  = 0.5
	penaltyBlank  = 0.25
)

// ScoreFlashcards builds the result for a flashcard session, where the
// learner self-grades and only the correct count matters.
func ScoreFlashcards(subject string, total, correct int) progress.TestResult {
	return progress.TestResult{
		ID:           uuid.New().String(),
		Date:         time.Now(),
		Subject:      subject,
		Type:         progress.TypeFlashcard,
		TotalItems:   total,
		CorrectCount: correct,
		Accuracy:     ratioPercent(correct, total),
	}
}

// ScoreQuiz builds the result for a quiz or exam session.
// answers maps item position to selected option index; absent entries and
// the -1 sentinel both mean unanswered. Details are materialized in the
// original item order for later review.
func ScoreQuiz(sessionType progress.SessionType, subject string, items []content.QuizQuestion, answers map[int]int) progress.TestResult {
	var correct, wrong, blank int
	details := make([]progress.AnswerDetail, len(items))

	for i, q := range items {
		sel, ok := answers[i]
		if !ok {
			sel = Unanswered
		}
		details[i] = progress.AnswerDetail{Question: q.Question, SelectedIndex: sel}

		switch {
		case sel == q.CorrectIndex:
			correct++
		case sel == Unanswered:
			blank++
		default:
			wrong++
		}
	}

	res := progress.TestResult{
		ID:           uuid.New().String(),
		Date:         time.Now(),
		Subject:      subject,
		Type:         sessionType,
		TotalItems:   len(items),
		CorrectCount: correct,
		Details:      details,
	}

	if sessionType.IsExam() {
		points := pointsCorrect*float64(correct) - penaltyWrong*float64(wrong) - penaltyBlank*float64(blank)
		accuracy := 0.0
		if len(items) > 0 {
			accuracy = 100 * points / (float64(len(items)) * pointsCorrect)
		}
		if accuracy < 0 {
			accuracy = 0
		}
		res.Points = &points
		res.Accuracy = accuracy
	} else {
		// Normal quizzes count blanks as plain wrong answers.
		res.Accuracy = ratioPercent(correct, len(items))
	}

	return res
}

func ratioPercent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(part) / float64(total)
}
