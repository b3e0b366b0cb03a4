package home

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/abonetti/vetprep/internal/content"
	"github.com/abonetti/vetprep/internal/curriculum"
	"github.com/abonetti/vetprep/internal/progress"
	"github.com/abonetti/vetprep/internal/progression"
	"github.com/abonetti/vetprep/internal/screen"
	"github.com/abonetti/vetprep/internal/session"
)

func testServices() *screen.Services {
	cs := content.NewStore()
	ps := progress.NewStore()
	return &screen.Services{
		Content:     cs,
		Progress:    ps,
		Controller:  session.NewController(cs, nil),
		Progression: progression.NewEngine(ps),
	}
}

func TestHomeScreen_Title(t *testing.T) {
	s := New(testServices())
	if s.Title() != "Home" {
		t.Errorf("Title = %q, want %q", s.Title(), "Home")
	}
}

func TestHomeScreen_Display(t *testing.T) {
	s := New(testServices())
	if s.View(100, 30) == "" {
		t.Error("expected non-empty home view")
	}
}

func TestHomeScreen_ExamsLockedWithoutBadges(t *testing.T) {
	s := New(testServices())
	for _, item := range s.menu.Items {
		if strings.Contains(item.Label, "Exam") && !item.Disabled {
			t.Errorf("%s should be locked with no badges", item.Label)
		}
	}
}

func TestHomeScreen_ExamYear1UnlocksWithBadges(t *testing.T) {
	svc := testServices()
	for _, subject := range curriculum.Subjects(curriculum.YearOne) {
		svc.Progress.AddBadge(progress.Badge{
			ID:         uuid.NewString(),
			Subject:    subject,
			EarnedDate: time.Now(),
		})
	}

	s := New(svc)
	for _, item := range s.menu.Items {
		if strings.Contains(item.Label, "Exam — Year 1") && item.Disabled {
			t.Error("Year 1 exam should unlock once every year-1 badge is earned")
		}
		if strings.Contains(item.Label, "Final Exam") && !item.Disabled {
			t.Error("Final exam must stay locked until year 2 is complete too")
		}
	}
}

func TestHomeScreen_ExamWithoutGatewayFails(t *testing.T) {
	s := New(testServices())
	cmd := s.startExam(progress.TypeExamYear1)
	if cmd != nil {
		t.Error("expected no command without a configured gateway")
	}
	if s.examErr == nil {
		t.Error("expected a visible error without a configured gateway")
	}
}
