package session

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/abonetti/vetprep/internal/content"
	"github.com/abonetti/vetprep/internal/progress"
	"github.com/abonetti/vetprep/internal/scoring"
)

// fakeGateway serves a fixed exam paper or a fixed error.
type fakeGateway struct {
	paper []content.QuizQuestion
	err   error
}

func (f *fakeGateway) Flashcards(context.Context, string, string, []string, int) ([]content.Flashcard, error) {
	return nil, errors.New("not used")
}

func (f *fakeGateway) QuizQuestions(context.Context, string, string, []string, int) ([]content.QuizQuestion, error) {
	return nil, errors.New("not used")
}

func (f *fakeGateway) BalancedExam(_ context.Context, tier string, total int) ([]content.QuizQuestion, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.paper, nil
}

func storeWithCards(subject string, n int) *content.Store {
	cs := content.NewStore()
	var cards []content.Flashcard
	for i := 0; i < n; i++ {
		cards = append(cards, content.Flashcard{
			ID:      fmt.Sprintf("c%d", i),
			Subject: subject,
			Concept: fmt.Sprintf("concept %d", i),
		})
	}
	cs.AddFlashcards(cards)
	return cs
}

func storeWithQuestions(subject string, n int) *content.Store {
	cs := content.NewStore()
	var qs []content.QuizQuestion
	for i := 0; i < n; i++ {
		qs = append(qs, content.QuizQuestion{
			ID:           fmt.Sprintf("q%d", i),
			Subject:      subject,
			Question:     fmt.Sprintf("question %d", i),
			Options:      []string{"a", "b", "c", "d", "e"},
			CorrectIndex: 0,
		})
	}
	cs.AddQuizQuestions(qs)
	return cs
}

func examPaper(n int) []content.QuizQuestion {
	var qs []content.QuizQuestion
	for i := 0; i < n; i++ {
		qs = append(qs, content.QuizQuestion{
			ID:           fmt.Sprintf("e%d", i),
			Subject:      "Zoology",
			Question:     fmt.Sprintf("exam question %d", i),
			Options:      []string{"a", "b", "c", "d", "e"},
			CorrectIndex: 1,
		})
	}
	return qs
}

func TestStartFlashcardsEmptyPool(t *testing.T) {
	c := NewController(content.NewStore(), &fakeGateway{})

	err := c.StartFlashcards("Zoology")
	var empty *EmptyPoolError
	if !errors.As(err, &empty) {
		t.Fatalf("expected EmptyPoolError, got: %v", err)
	}
	if c.Phase() != PhaseIdle {
		t.Error("controller should stay Idle on empty pool")
	}
}

func TestStartFlashcardsCapsSingleSubject(t *testing.T) {
	c := NewController(storeWithCards("Zoology", 25), &fakeGateway{})

	if err := c.StartFlashcards("Zoology"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Total() != MaxSessionItems {
		t.Errorf("expected %d cards, got %d", MaxSessionItems, c.Total())
	}
	if c.Phase() != PhaseActive {
		t.Error("expected Active phase")
	}
}

func TestStartFlashcardsAllUncapped(t *testing.T) {
	c := NewController(storeWithCards("Zoology", 25), &fakeGateway{})

	if err := c.StartFlashcards("All"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Total() != 25 {
		t.Errorf("full-library review should not be capped, got %d items", c.Total())
	}
}

func TestFlashcardSessionCompletes(t *testing.T) {
	c := NewController(storeWithCards("Biology", 3), &fakeGateway{})
	if err := c.StartFlashcards("Biology"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c.Grade(true)
	c.Grade(false)
	if c.Phase() != PhaseActive {
		t.Fatal("session should still be active")
	}
	c.Grade(true)

	if c.Phase() != PhaseCompleted {
		t.Fatal("grading the last card should complete the session")
	}
	res := c.Result()
	if res == nil {
		t.Fatal("expected a result")
	}
	if res.Type != progress.TypeFlashcard || res.CorrectCount != 2 || res.TotalItems != 3 {
		t.Errorf("unexpected result: %+v", res)
	}
}

func TestStartQuizCapsPool(t *testing.T) {
	c := NewController(storeWithQuestions("Pharmacology", 30), &fakeGateway{})

	if err := c.StartQuiz("Pharmacology"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Total() != MaxSessionItems {
		t.Errorf("expected %d questions, got %d", MaxSessionItems, c.Total())
	}
}

func TestSelectOverwritesAnswer(t *testing.T) {
	c := NewController(storeWithQuestions("Biology", 5), &fakeGateway{})
	if err := c.StartQuiz("Biology"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c.Select(2)
	if c.SelectedAt(0) != 2 {
		t.Errorf("expected selection 2, got %d", c.SelectedAt(0))
	}
	c.Select(4)
	if c.SelectedAt(0) != 4 {
		t.Errorf("overwrite failed, got %d", c.SelectedAt(0))
	}
	c.Select(scoring.Unanswered)
	if c.SelectedAt(0) != scoring.Unanswered {
		t.Errorf("clearing failed, got %d", c.SelectedAt(0))
	}
}

func TestNavigationBounds(t *testing.T) {
	c := NewController(storeWithQuestions("Biology", 3), &fakeGateway{})
	if err := c.StartQuiz("Biology"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c.Prev()
	if c.Position() != 0 {
		t.Error("Prev at the first item should not move")
	}
	c.Next()
	c.Next()
	c.Next()
	c.Next()
	if c.Position() != 2 {
		t.Errorf("Next should stop at the last item, got position %d", c.Position())
	}
}

func TestCompleteIsIdempotent(t *testing.T) {
	c := NewController(storeWithQuestions("Biology", 3), &fakeGateway{})
	if err := c.StartQuiz("Biology"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first := c.Complete()
	if first == nil {
		t.Fatal("expected a result from the first Complete")
	}
	if second := c.Complete(); second != nil {
		t.Error("second Complete should return nil")
	}
	if c.Result() != first {
		t.Error("stored result should be the first one")
	}
}

func TestStartExamGatewayFailureStaysIdle(t *testing.T) {
	c := NewController(content.NewStore(), &fakeGateway{err: errors.New("provider down")})

	if err := c.StartExam(context.Background(), progress.TypeExamYear1); err == nil {
		t.Fatal("expected error")
	}
	if c.Phase() != PhaseIdle {
		t.Error("controller should stay Idle on gateway failure")
	}
}

func TestStartExamSetsTimer(t *testing.T) {
	c := NewController(content.NewStore(), &fakeGateway{paper: examPaper(50)})

	if err := c.StartExam(context.Background(), progress.TypeExamYear1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Remaining() != ExamYear1Duration {
		t.Errorf("expected %s remaining, got %s", ExamYear1Duration, c.Remaining())
	}
	if c.Kind() != progress.TypeExamYear1 {
		t.Errorf("unexpected kind %q", c.Kind())
	}
}

func TestTickCountsDownAndExpires(t *testing.T) {
	c := NewController(content.NewStore(), &fakeGateway{paper: examPaper(2)})
	if err := c.StartExam(context.Background(), progress.TypeExamYear1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	epoch := c.Epoch()
	c.Select(1) // correct on item 0

	// Drain the clock.
	ticks := int(ExamYear1Duration / time.Second)
	for i := 0; i < ticks-1; i++ {
		if !c.Tick(epoch) {
			t.Fatalf("timer stopped early at tick %d", i)
		}
	}
	if c.Tick(epoch) {
		t.Fatal("final tick should stop the timer")
	}

	if c.Phase() != PhaseCompleted {
		t.Fatal("expiry should complete the session")
	}
	res := c.Result()
	if res == nil || res.Points == nil {
		t.Fatal("expected an exam result with points")
	}
	// 1 correct, 0 wrong, 1 blank of 2 items: 2 - 0.25 = 1.75 points.
	if *res.Points != 1.75 {
		t.Errorf("expected 1.75 points, got %v", *res.Points)
	}
}

func TestStaleTickIgnored(t *testing.T) {
	c := NewController(content.NewStore(), &fakeGateway{paper: examPaper(2)})
	if err := c.StartExam(context.Background(), progress.TypeExamYear1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stale := c.Epoch()
	c.Abandon()

	before := c.Phase()
	if c.Tick(stale) {
		t.Error("stale tick should report stopped")
	}
	if c.Phase() != before {
		t.Error("stale tick must not change phase")
	}
}

func TestGenerationGuard(t *testing.T) {
	c := NewController(content.NewStore(), &fakeGateway{})

	if !c.BeginGeneration() {
		t.Fatal("first BeginGeneration should succeed")
	}
	if c.BeginGeneration() {
		t.Fatal("re-entry while in flight should be refused")
	}
	c.EndGeneration()
	if !c.BeginGeneration() {
		t.Fatal("BeginGeneration should succeed after EndGeneration")
	}
}
