package quizgen

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/abonetti/vetprep/internal/curriculum"
	"github.com/abonetti/vetprep/internal/llm"
)

func flashcardPayload(n int) json.RawMessage {
	var items []string
	for i := 0; i < n; i++ {
		items = append(items, `{"concept":"Concept `+string(rune('A'+i))+`","question":"Q?","answer":"A","explanation":"","difficulty":"Easy"}`)
	}
	return json.RawMessage(`{"flashcards":[` + strings.Join(items, ",") + `]}`)
}

func quizPayload(subject string, n int) json.RawMessage {
	item := `{"question":"Which is correct?","options":["a","b","c","d","e"],"correct_index":2,"explanation":"because","difficulty":"Medium"`
	if subject != "" {
		item += `,"subject":"` + subject + `"`
	}
	item += `}`
	items := make([]string, n)
	for i := range items {
		items[i] = item
	}
	return json.RawMessage(`{"questions":[` + strings.Join(items, ",") + `]}`)
}

func TestFlashcardsMapsBatch(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: flashcardPayload(3)})
	g := New(mock, DefaultConfig())

	cards, err := g.Flashcards(context.Background(), "Zoology", "vertebrates", nil, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cards) != 3 {
		t.Fatalf("expected 3 cards, got %d", len(cards))
	}
	for _, c := range cards {
		if c.ID == "" {
			t.Error("expected generated id")
		}
		if c.Subject != "Zoology" {
			t.Errorf("expected subject Zoology, got %q", c.Subject)
		}
		if c.CreatedAt.IsZero() {
			t.Error("expected CreatedAt to be set")
		}
	}
}

func TestFlashcardsTruncatesOverDelivery(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: flashcardPayload(8)})
	g := New(mock, DefaultConfig())

	cards, err := g.Flashcards(context.Background(), "Biology", "", nil, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cards) != 5 {
		t.Fatalf("expected 5 cards after truncation, got %d", len(cards))
	}
}

func TestFlashcardsPromptCarriesExclusions(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: flashcardPayload(1)})
	g := New(mock, DefaultConfig())

	_, err := g.Flashcards(context.Background(), "Chemistry", "", []string{"Acid-base balance"}, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mock.Calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(mock.Calls))
	}
	if !strings.Contains(mock.Calls[0].Prompt, "Acid-base balance") {
		t.Error("prompt should contain the exclusion entry")
	}
}

func TestFlashcardsProviderFailure(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{}})
	g := New(mock, DefaultConfig())

	_, err := g.Flashcards(context.Background(), "Zoology", "", nil, 5)
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected GenerationError, got: %v", err)
	}
	var unavail *llm.ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Errorf("expected wrapped provider error, got: %v", err)
	}
}

func TestQuizQuestionsMapsBatch(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: quizPayload("", 4)})
	g := New(mock, DefaultConfig())

	questions, err := g.QuizQuestions(context.Background(), "Pharmacology", "", nil, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(questions) != 4 {
		t.Fatalf("expected 4 questions, got %d", len(questions))
	}
	for _, q := range questions {
		if q.Subject != "Pharmacology" {
			t.Errorf("expected subject Pharmacology, got %q", q.Subject)
		}
		if len(q.Options) != 5 {
			t.Errorf("expected 5 options, got %d", len(q.Options))
		}
		if q.CorrectIndex != 2 {
			t.Errorf("expected correct index 2, got %d", q.CorrectIndex)
		}
	}
}

func TestQuizQuestionsRejectsBadOptionCount(t *testing.T) {
	payload := json.RawMessage(`{"questions":[{"question":"q","options":["a","b","c"],"correct_index":0,"explanation":"e","difficulty":"Easy"}]}`)
	mock := llm.NewMockProvider(llm.MockResponse{Content: payload})
	g := New(mock, DefaultConfig())

	_, err := g.QuizQuestions(context.Background(), "Biology", "", nil, 1)
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected GenerationError for 3-option item, got: %v", err)
	}
}

func TestQuizQuestionsRejectsIndexOutOfRange(t *testing.T) {
	payload := json.RawMessage(`{"questions":[{"question":"q","options":["a","b","c","d","e"],"correct_index":5,"explanation":"e","difficulty":"Easy"}]}`)
	mock := llm.NewMockProvider(llm.MockResponse{Content: payload})
	g := New(mock, DefaultConfig())

	if _, err := g.QuizQuestions(context.Background(), "Biology", "", nil, 1); err == nil {
		t.Fatal("expected error for out-of-range correct index")
	}
}

func TestBalancedExamUsesModelSubjects(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: quizPayload("Zoology", 3)})
	g := New(mock, DefaultConfig())

	questions, err := g.BalancedExam(context.Background(), curriculum.SubjectExamYear1, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, q := range questions {
		if q.Subject != "Zoology" {
			t.Errorf("expected model-assigned subject, got %q", q.Subject)
		}
	}
}

func TestBalancedExamDropsUnknownSubjects(t *testing.T) {
	payload := json.RawMessage(`{"questions":[` +
		`{"subject":"Zoology","question":"q1","options":["a","b","c","d","e"],"correct_index":0,"explanation":"e","difficulty":"Easy"},` +
		`{"subject":"Astrology","question":"q2","options":["a","b","c","d","e"],"correct_index":0,"explanation":"e","difficulty":"Easy"}]}`)
	mock := llm.NewMockProvider(llm.MockResponse{Content: payload})
	g := New(mock, DefaultConfig())

	questions, err := g.BalancedExam(context.Background(), curriculum.SubjectExamYear1, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(questions) != 1 {
		t.Fatalf("expected 1 question after dropping unknown subject, got %d", len(questions))
	}
	if questions[0].Subject != "Zoology" {
		t.Errorf("unexpected subject %q", questions[0].Subject)
	}
}

func TestBalancedExamFinalCoversBothYears(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: quizPayload("Pharmacology", 2)})
	g := New(mock, DefaultConfig())

	_, err := g.BalancedExam(context.Background(), curriculum.SubjectExamFinal, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	prompt := mock.Calls[0].Prompt
	if !strings.Contains(prompt, "Zoology") || !strings.Contains(prompt, "Pharmacology") {
		t.Error("final exam prompt should list subjects from both years")
	}
}

func TestBalancedExamUnknownTier(t *testing.T) {
	mock := llm.NewMockProvider()
	g := New(mock, DefaultConfig())

	if _, err := g.BalancedExam(context.Background(), "Exam Year 3", 50); err == nil {
		t.Fatal("expected error for unknown tier")
	}
	if mock.CallCount() != 0 {
		t.Error("no provider call expected for unknown tier")
	}
}
