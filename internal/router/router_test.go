package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abonetti/vetprep/internal/screen"
)

// stubScreen is a minimal Screen for router tests.
type stubScreen struct {
	name    string
	inited  *bool
	updates *int
}

func (s stubScreen) Init() tea.Cmd {
	if s.inited != nil {
		*s.inited = true
	}
	return nil
}

func (s stubScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if s.updates != nil {
		*s.updates++
	}
	return s, nil
}

func (s stubScreen) View(width, height int) string { return s.name }
func (s stubScreen) Title() string                 { return s.name }

func TestPushAndPop(t *testing.T) {
	r := New(stubScreen{name: "home"})
	if r.Depth() != 1 {
		t.Fatalf("expected depth 1, got %d", r.Depth())
	}

	inited := false
	r.Push(stubScreen{name: "quiz", inited: &inited})
	if !inited {
		t.Error("Push should call Init on the new screen")
	}
	if r.Active().Title() != "quiz" {
		t.Errorf("expected quiz active, got %q", r.Active().Title())
	}

	r.Pop()
	if r.Active().Title() != "home" {
		t.Errorf("expected home after pop, got %q", r.Active().Title())
	}
}

func TestPopNeverEmptiesStack(t *testing.T) {
	r := New(stubScreen{name: "home"})
	r.Pop()
	r.Pop()
	if r.Depth() != 1 {
		t.Fatalf("expected depth 1, got %d", r.Depth())
	}
}

func TestReplaceSwapsTop(t *testing.T) {
	r := New(stubScreen{name: "home"})
	r.Push(stubScreen{name: "quiz"})

	inited := false
	r.Update(ReplaceScreenMsg{Screen: stubScreen{name: "summary", inited: &inited}})

	if r.Depth() != 2 {
		t.Fatalf("replace should keep depth at 2, got %d", r.Depth())
	}
	if r.Active().Title() != "summary" {
		t.Errorf("expected summary active, got %q", r.Active().Title())
	}
	if !inited {
		t.Error("Replace should call Init on the replacement")
	}
}

func TestUpdateForwardsToActive(t *testing.T) {
	homeUpdates, quizUpdates := 0, 0
	r := New(stubScreen{name: "home", updates: &homeUpdates})
	r.Push(stubScreen{name: "quiz", updates: &quizUpdates})

	r.Update("some message")

	if homeUpdates != 0 {
		t.Error("inactive screen should not receive updates")
	}
	if quizUpdates != 1 {
		t.Errorf("active screen should receive the update, got %d", quizUpdates)
	}
}

func TestNavigationMessages(t *testing.T) {
	r := New(stubScreen{name: "home"})

	r.Update(PushScreenMsg{Screen: stubScreen{name: "history"}})
	if r.Active().Title() != "history" {
		t.Fatalf("expected history, got %q", r.Active().Title())
	}

	r.Update(PopScreenMsg{})
	if r.Active().Title() != "home" {
		t.Fatalf("expected home, got %q", r.Active().Title())
	}
}
