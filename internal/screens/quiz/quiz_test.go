package quiz

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abonetti/vetprep/internal/content"
	"github.com/abonetti/vetprep/internal/progress"
	"github.com/abonetti/vetprep/internal/progression"
	"github.com/abonetti/vetprep/internal/screen"
	"github.com/abonetti/vetprep/internal/scoring"
	"github.com/abonetti/vetprep/internal/session"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func testServices(questions int) *screen.Services {
	cs := content.NewStore()
	var items []content.QuizQuestion
	for i := 0; i < questions; i++ {
		items = append(items, content.QuizQuestion{
			ID:           string(rune('a' + i)),
			Subject:      "Zoology",
			Question:     "Q",
			Options:      []string{"a", "b", "c", "d", "e"},
			CorrectIndex: 0,
		})
	}
	cs.AddQuizQuestions(items)

	ps := progress.NewStore()
	return &screen.Services{
		Content:     cs,
		Progress:    ps,
		Controller:  session.NewController(cs, nil),
		Progression: progression.NewEngine(ps),
	}
}

func TestQuizScreen_EmptyPool(t *testing.T) {
	svc := testServices(0)
	s := New(svc, "Zoology")

	if s.startErr == nil {
		t.Fatal("expected a start error for an empty pool")
	}
	if !strings.Contains(s.View(80, 24), "Study Lab") {
		t.Error("expected empty-pool view to point at the Study Lab")
	}
}

func TestQuizScreen_SelectRecordsAnswer(t *testing.T) {
	svc := testServices(2)
	s := New(svc, "Zoology")

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if got := svc.Controller.SelectedAt(0); got != 0 {
		t.Errorf("SelectedAt(0) = %d, want 0", got)
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if got := svc.Controller.SelectedAt(0); got != 1 {
		t.Errorf("re-selection: SelectedAt(0) = %d, want 1", got)
	}
}

func TestQuizScreen_ClearAnswer(t *testing.T) {
	svc := testServices(1)
	s := New(svc, "Zoology")

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	s.Update(tea.KeyPressMsg{Code: tea.KeyBackspace})
	if got := svc.Controller.SelectedAt(0); got != scoring.Unanswered {
		t.Errorf("SelectedAt(0) after clear = %d, want %d", got, scoring.Unanswered)
	}
}

func TestQuizScreen_SubmitRecordsResult(t *testing.T) {
	svc := testServices(2)
	s := New(svc, "Zoology")

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	s.Update(keyPress('s'))
	_, cmd := s.Update(keyPress('y'))
	if cmd == nil {
		t.Fatal("expected a command on submit (summary replacement)")
	}

	if svc.Controller.Phase() != session.PhaseCompleted {
		t.Errorf("phase = %v, want Completed", svc.Controller.Phase())
	}
	results := svc.Progress.Results()
	if len(results) != 1 {
		t.Fatalf("history length = %d, want 1", len(results))
	}
	if results[0].CorrectCount != 1 || results[0].TotalItems != 2 {
		t.Errorf("recorded %d/%d, want 1/2", results[0].CorrectCount, results[0].TotalItems)
	}
}

func TestQuizScreen_SubmitConfirmCancel(t *testing.T) {
	svc := testServices(1)
	s := New(svc, "Zoology")

	s.Update(keyPress('s'))
	if !s.confirmSubmit {
		t.Fatal("expected the submit prompt to open")
	}
	s.Update(keyPress('n'))
	if s.confirmSubmit {
		t.Error("expected n to cancel the submit prompt")
	}
	if svc.Controller.Phase() != session.PhaseActive {
		t.Error("cancelling submit must leave the session active")
	}
}

func TestQuizScreen_EscClosesConfirmFirst(t *testing.T) {
	svc := testServices(1)
	s := New(svc, "Zoology")

	s.Update(keyPress('s'))
	if !s.HandleEsc() {
		t.Error("expected esc to be consumed by the open prompt")
	}
	if s.HandleEsc() {
		t.Error("expected second esc to fall through to navigation")
	}
	if svc.Controller.Phase() != session.PhaseIdle {
		t.Error("expected fall-through esc to abandon the session")
	}
}

func TestQuizScreen_StaleTickIgnored(t *testing.T) {
	svc := testServices(1)
	s := New(svc, "Zoology")

	_, cmd := s.Update(tickMsg{epoch: svc.Controller.Epoch() - 1})
	if cmd != nil {
		t.Error("stale tick must not reschedule")
	}
	if svc.Controller.Phase() != session.PhaseActive {
		t.Error("stale tick must not touch the session")
	}
}
