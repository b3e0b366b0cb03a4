// Package home is the main menu: study activities, exam tiers with their
// unlock state, and the progress panel.
package home

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abonetti/vetprep/internal/curriculum"
	"github.com/abonetti/vetprep/internal/progress"
	"github.com/abonetti/vetprep/internal/progression"
	"github.com/abonetti/vetprep/internal/router"
	"github.com/abonetti/vetprep/internal/screen"
	"github.com/abonetti/vetprep/internal/screens/calendar"
	"github.com/abonetti/vetprep/internal/screens/flashcards"
	"github.com/abonetti/vetprep/internal/screens/history"
	"github.com/abonetti/vetprep/internal/screens/lab"
	"github.com/abonetti/vetprep/internal/screens/quiz"
	"github.com/abonetti/vetprep/internal/screens/subjects"
	"github.com/abonetti/vetprep/internal/ui/components"
	"github.com/abonetti/vetprep/internal/ui/layout"
	"github.com/abonetti/vetprep/internal/ui/theme"
)

// examStartedMsg reports the outcome of exam paper generation.
type examStartedMsg struct {
	err error
}

var errNoProvider = errors.New("no AI provider configured")

// Screen is the main menu.
type Screen struct {
	svc      *screen.Services
	menu     components.Menu
	examErr  error
	prepping bool
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

func New(svc *screen.Services) *Screen {
	s := &Screen{svc: svc}
	s.menu = components.NewMenu(s.buildItems())
	return s
}

// buildItems derives the menu from the current unlock state.
func (s *Screen) buildItems() []components.MenuItem {
	badgeFor := s.svc.Progress.HasBadge

	pushPicker := func(title string, includeAll bool, open func(subject string) screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			picker := subjects.New(title, includeAll, badgeFor, func(subject string) tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: open(subject)}
				}
			})
			return func() tea.Msg { return router.PushScreenMsg{Screen: picker} }
		}
	}

	items := []components.MenuItem{
		{Label: "🔬 Study Lab", Action: pushPicker("Study Lab", false, func(subject string) screen.Screen {
			return lab.New(s.svc, subject)
		})},
		{Label: "🃏 Flashcards", Action: pushPicker("Flashcards", true, func(subject string) screen.Screen {
			return flashcards.New(s.svc, subject)
		})},
		{Label: "❓ Quiz", Action: pushPicker("Quiz", true, func(subject string) screen.Screen {
			return quiz.New(s.svc, subject)
		})},
	}

	year1Unlocked := s.svc.Progression.ExamYear1Unlocked()
	items = append(items, components.MenuItem{
		Label:    "📝 Exam — Year 1",
		Disabled: !year1Unlocked,
		Note:     s.examNote(curriculum.YearOne),
		Action:   func() tea.Cmd { return s.startExam(progress.TypeExamYear1) },
	})

	finalUnlocked := s.svc.Progression.FinalExamUnlocked()
	finalNote := ""
	if !finalUnlocked {
		finalNote = "🔒 all badges + Year 1 exam"
	}
	items = append(items, components.MenuItem{
		Label:    "🎓 Final Exam",
		Disabled: !finalUnlocked,
		Note:     finalNote,
		Action:   func() tea.Cmd { return s.startExam(progress.TypeExamFinal) },
	})

	items = append(items,
		components.MenuItem{Label: "📊 History", Action: func() tea.Cmd {
			return func() tea.Msg { return router.PushScreenMsg{Screen: history.New(s.svc)} }
		}},
		components.MenuItem{Label: "📅 Calendar", Action: func() tea.Cmd {
			return func() tea.Msg { return router.PushScreenMsg{Screen: calendar.New(s.svc)} }
		}},
		components.MenuItem{Label: "🚪 Quit", Action: func() tea.Cmd { return tea.Quit }},
	)

	return items
}

func (s *Screen) examNote(y curriculum.Year) string {
	earned := len(s.svc.Progression.BadgesForYear(y))
	total := len(curriculum.Subjects(y))
	if earned == total {
		return ""
	}
	return fmt.Sprintf("🔒 %d/%d badges", earned, total)
}

// startExam generates a fresh paper off the event loop, then opens the exam
// screen once the controller holds it.
func (s *Screen) startExam(tier progress.SessionType) tea.Cmd {
	if s.svc.Gateway == nil {
		s.examErr = errNoProvider
		return nil
	}
	if !s.svc.Controller.BeginGeneration() {
		return nil
	}
	s.prepping = true
	s.examErr = nil

	ctrl := s.svc.Controller
	return func() tea.Msg {
		return examStartedMsg{err: ctrl.StartExam(context.Background(), tier)}
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case examStartedMsg:
		s.svc.Controller.EndGeneration()
		s.prepping = false
		if msg.err != nil {
			s.examErr = msg.err
			if s.svc.Logger != nil {
				s.svc.Logger.Warn("exam generation failed", zap.Error(msg.err))
			}
			return s, nil
		}
		examScreen := quiz.NewExam(s.svc)
		return s, func() tea.Msg { return router.PushScreenMsg{Screen: examScreen} }

	case tea.KeyMsg:
		if s.prepping {
			return s, nil
		}
		// Unlock state may have changed while a child screen was up.
		selected := s.menu.Selected
		s.menu = components.NewMenu(s.buildItems())
		if selected < len(s.menu.Items) && !s.menu.Items[selected].Disabled {
			s.menu.Selected = selected
		}
		var cmd tea.Cmd
		s.menu, cmd = s.menu.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *Screen) Init() tea.Cmd {
	return nil
}

func (s *Screen) View(width, height int) string {
	logo := theme.Title.Render("VetPrep") + "\n" +
		theme.Hint.Render("Veterinary technician exam companion")

	var status string
	switch {
	case s.prepping:
		status = theme.Warning.Render("⏳ Preparing your exam paper…")
	case errors.Is(s.examErr, errNoProvider):
		status = theme.Incorrect.Render("No AI provider configured — set an API key to sit exams.")
	case s.examErr != nil:
		status = theme.Incorrect.Render("Exam generation failed. Check your connection and try again.")
	}

	left := s.menu.View()
	right := s.progressPanel()

	columns := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().MarginRight(6).Render(left),
		right,
	)

	body := lipgloss.JoinVertical(lipgloss.Center, logo, "", columns, "", status)
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(body)
}

// progressPanel summarizes badges per year and the weakest-module advisory.
func (s *Screen) progressPanel() string {
	var b strings.Builder

	for _, y := range []curriculum.Year{curriculum.YearOne, curriculum.YearTwo} {
		earned := s.svc.Progression.BadgesForYear(y)
		total := len(curriculum.Subjects(y))
		fmt.Fprintf(&b, "Year %d badges:  %d/%d\n", y, len(earned), total)
		for _, badge := range earned {
			b.WriteString(badge.Icon)
		}
		b.WriteString("\n\n")
	}

	weak := s.svc.Progression.Weakest()
	if weak.Unlocked {
		line := fmt.Sprintf("Weakest module: %s (%.0f%% avg)", weak.Subject, weak.AverageAccuracy)
		if weak.Failing {
			b.WriteString(theme.Incorrect.Render(line))
		} else {
			b.WriteString(theme.Warning.Render(line))
		}
	} else {
		b.WriteString(theme.Hint.Render(fmt.Sprintf(
			"Quiz %d more subjects to see your weakest module.",
			max(0, progression.WeakestMinSubjects-weak.DistinctSubjects))))
	}

	return theme.Card.Render(b.String())
}

func (s *Screen) Title() string {
	return "Home"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}
