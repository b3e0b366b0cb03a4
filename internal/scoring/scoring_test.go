package scoring

import (
	"math"
	"testing"

	"github.com/abonetti/vetprep/internal/content"
	"github.com/abonetti/vetprep/internal/progress"
)

// quizItems builds n questions whose correct option is always index 0.
func quizItems(n int) []content.QuizQuestion {
	items := make([]content.QuizQuestion, n)
	for i := range items {
		items[i] = content.QuizQuestion{
			Question:     "question",
			Options:      []string{"a", "b", "c", "d", "e"},
			CorrectIndex: 0,
		}
	}
	return items
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestScoreFlashcards(t *testing.T) {
	res := ScoreFlashcards("Biology", 10, 7)
	if res.Type != progress.TypeFlashcard {
		t.Errorf("Type = %q, want Flashcard", res.Type)
	}
	if !almostEqual(res.Accuracy, 70) {
		t.Errorf("Accuracy = %v, want 70", res.Accuracy)
	}
	if res.Points != nil {
		t.Error("flashcard result has points, want none")
	}
}

func TestScoreQuiz_UnansweredCountsWrong(t *testing.T) {
	items := quizItems(10)
	answers := map[int]int{}
	for i := 0; i < 7; i++ {
		answers[i] = 0 // correct
	}
	// Positions 7-9 left unanswered.

	res := ScoreQuiz(progress.TypeQuiz, "Biology", items, answers)
	if res.CorrectCount != 7 {
		t.Errorf("CorrectCount = %d, want 7", res.CorrectCount)
	}
	if !almostEqual(res.Accuracy, 70) {
		t.Errorf("Accuracy = %v, want 70", res.Accuracy)
	}
	if res.Points != nil {
		t.Error("normal quiz result has points, want none")
	}
}

func TestScoreExam_PenaltyWeights(t *testing.T) {
	// Reference case: 100 items, 60 correct, 30 wrong, 10 blank.
	items := quizItems(100)
	answers := map[int]int{}
	for i := 0; i < 60; i++ {
		answers[i] = 0
	}
	for i := 60; i < 90; i++ {
		answers[i] = 1
	}
	// 90-94 absent, 95-99 explicit -1 sentinel: both must count unanswered.
	for i := 95; i < 100; i++ {
		answers[i] = Unanswered
	}

	res := ScoreQuiz(progress.TypeExamFinal, "Exam Final", items, answers)
	if res.Points == nil {
		t.Fatal("exam result has no points")
	}
	if !almostEqual(*res.Points, 102.5) {
		t.Errorf("Points = %v, want 102.5", *res.Points)
	}
	if !almostEqual(res.Accuracy, 51.25) {
		t.Errorf("Accuracy = %v, want 51.25", res.Accuracy)
	}
	if res.CorrectCount != 60 {
		t.Errorf("CorrectCount = %d, want 60", res.CorrectCount)
	}
}

func TestScoreExam_AccuracyClampedAtZero(t *testing.T) {
	items := quizItems(10)
	answers := map[int]int{}
	for i := range items {
		answers[i] = 1 // all wrong: points = -5
	}

	res := ScoreQuiz(progress.TypeExamYear1, "Exam Year 1", items, answers)
	if *res.Points >= 0 {
		t.Errorf("Points = %v, want negative", *res.Points)
	}
	if res.Accuracy != 0 {
		t.Errorf("Accuracy = %v, want clamped 0", res.Accuracy)
	}
}

func TestScoreQuiz_DetailsInItemOrder(t *testing.T) {
	items := quizItems(3)
	items[0].Question = "first"
	items[1].Question = "second"
	items[2].Question = "third"
	answers := map[int]int{1: 4}

	res := ScoreQuiz(progress.TypeQuiz, "Biology", items, answers)
	if len(res.Details) != 3 {
		t.Fatalf("Details = %d entries, want 3", len(res.Details))
	}
	wantQ := []string{"first", "second", "third"}
	wantSel := []int{Unanswered, 4, Unanswered}
	for i := range res.Details {
		if res.Details[i].Question != wantQ[i] {
			t.Errorf("Details[%d].Question = %q, want %q", i, res.Details[i].Question, wantQ[i])
		}
		if res.Details[i].SelectedIndex != wantSel[i] {
			t.Errorf("Details[%d].SelectedIndex = %d, want %d", i, res.Details[i].SelectedIndex, wantSel[i])
		}
	}
}

func TestScoreQuiz_EmptyItemList(t *testing.T) {
	res := ScoreQuiz(progress.TypeQuiz, "Biology", nil, nil)
	if res.Accuracy != 0 || res.TotalItems != 0 {
		t.Errorf("empty session scored accuracy=%v total=%d, want zeros", res.Accuracy, res.TotalItems)
	}
}
