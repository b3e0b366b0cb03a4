// Package quiz runs quiz and exam sessions: five-option questions with free
// navigation, and a countdown clock for exams.
package quiz

import (
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abonetti/vetprep/internal/progress"
	"github.com/abonetti/vetprep/internal/router"
	"github.com/abonetti/vetprep/internal/scoring"
	"github.com/abonetti/vetprep/internal/screen"
	"github.com/abonetti/vetprep/internal/screens/summary"
	"github.com/abonetti/vetprep/internal/session"
	"github.com/abonetti/vetprep/internal/ui/components"
	"github.com/abonetti/vetprep/internal/ui/layout"
	"github.com/abonetti/vetprep/internal/ui/theme"
)

// tickMsg is one second of exam clock. The epoch pins it to the session it
// was scheduled for.
type tickMsg struct {
	epoch int
}

func tickCmd(epoch int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{epoch: epoch}
	})
}

// Screen drives a quiz or exam session on the shared controller.
type Screen struct {
	svc           *screen.Services
	picker        components.OptionPicker
	confirmSubmit bool
	startErr      error
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New starts a quiz session for a subject.
func New(svc *screen.Services, subject string) *Screen {
	s := &Screen{svc: svc}
	s.startErr = svc.Controller.StartQuiz(subject)
	if s.startErr == nil {
		s.syncPicker()
	}
	return s
}

// NewExam wraps an exam session that the caller already started on the
// controller (generation happens before this screen is pushed).
func NewExam(svc *screen.Services) *Screen {
	s := &Screen{svc: svc}
	s.syncPicker()
	return s
}

func (s *Screen) Init() tea.Cmd {
	if s.startErr == nil && s.svc.Controller.Kind().IsExam() {
		return tickCmd(s.svc.Controller.Epoch())
	}
	return nil
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if s.startErr != nil {
		return s, nil
	}
	ctrl := s.svc.Controller

	switch msg := msg.(type) {
	case tickMsg:
		keepTicking := ctrl.Tick(msg.epoch)
		if ctrl.Phase() == session.PhaseCompleted {
			return s, s.finish()
		}
		if keepTicking {
			return s, tickCmd(msg.epoch)
		}
		return s, nil

	case tea.KeyMsg:
		if s.confirmSubmit {
			switch msg.String() {
			case "y", "enter":
				ctrl.Complete()
				return s, s.finish()
			case "n":
				s.confirmSubmit = false
			}
			return s, nil
		}

		switch msg.String() {
		case "left", "h", "p":
			ctrl.Prev()
			s.syncPicker()
		case "right", "l", "n":
			ctrl.Next()
			s.syncPicker()
		case "backspace":
			ctrl.Select(scoring.Unanswered)
			s.syncPicker()
		case "s":
			s.confirmSubmit = true
		default:
			var cmd tea.Cmd
			s.picker, cmd = s.picker.Update(msg)
			if s.picker.Chosen != ctrl.SelectedAt(ctrl.Position()) {
				ctrl.Select(s.picker.Chosen)
			}
			return s, cmd
		}
	}

	return s, nil
}

// syncPicker rebuilds the option picker for the current item.
func (s *Screen) syncPicker() {
	q := s.svc.Controller.CurrentQuestion()
	if q == nil {
		return
	}
	s.picker = components.NewOptionPicker(
		q.Question, q.Options,
		s.svc.Controller.SelectedAt(s.svc.Controller.Position()),
	)
}

// finish records the result and swaps in the summary.
func (s *Screen) finish() tea.Cmd {
	res := s.svc.Controller.Result()
	if res == nil {
		return nil
	}
	badge := s.svc.RecordResult(*res)
	paper := s.svc.Controller.Questions()
	backupCmd := s.svc.BackupCmd()
	return tea.Batch(backupCmd, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: summary.New(s.svc, *res, badge, paper)}
	})
}

func (s *Screen) View(width, height int) string {
	if s.startErr != nil {
		return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(
			"\n\n" + theme.Warning.Render("No quiz questions for this subject yet.") +
				"\n\n" + theme.Hint.Render("Generate some in the Study Lab first."))
	}

	ctrl := s.svc.Controller
	if ctrl.CurrentQuestion() == nil {
		return ""
	}

	answered := 0
	for i := 0; i < ctrl.Total(); i++ {
		if ctrl.SelectedAt(i) != scoring.Unanswered {
			answered++
		}
	}

	status := fmt.Sprintf("Question %d/%d · %d answered", ctrl.Position()+1, ctrl.Total(), answered)
	if ctrl.Kind().IsExam() {
		rem := ctrl.Remaining()
		clock := fmt.Sprintf("%02d:%02d", int(rem.Minutes()), int(rem.Seconds())%60)
		clockStyle := theme.Subtitle
		if rem <= 5*time.Minute {
			clockStyle = theme.Warning
		}
		status += "  ·  " + clockStyle.Render("⏱ "+clock)
	}

	pickerBox := theme.Card.Width(width * 3 / 4).Render(s.picker.View())

	parts := []string{
		theme.Subtitle.Width(width).Render(status),
		"",
		pickerBox,
	}
	if s.confirmSubmit {
		blanks := ctrl.Total() - answered
		prompt := "Turn in now?"
		if blanks > 0 {
			prompt = fmt.Sprintf("Turn in with %d unanswered?", blanks)
		}
		parts = append(parts, "", theme.Warning.Render(prompt+"  (y/n)"))
	}

	body := lipgloss.JoinVertical(lipgloss.Center, parts...)
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(body)
}

// HandleEsc cancels the submit prompt if one is open; otherwise the session
// is abandoned and the screen pops.
func (s *Screen) HandleEsc() bool {
	if s.confirmSubmit {
		s.confirmSubmit = false
		return true
	}
	if s.svc.Controller.Phase() == session.PhaseActive {
		s.svc.Controller.Abandon()
	}
	return false
}

func (s *Screen) Title() string {
	if s.svc.Controller.Kind() == progress.TypeQuiz {
		return "Quiz"
	}
	return string(s.svc.Controller.Kind())
}

func (s *Screen) KeyHints() []layout.KeyHint {
	if s.startErr != nil {
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Options"},
		{Key: "Enter", Description: "Pick"},
		{Key: "←→", Description: "Question"},
		{Key: "S", Description: "Submit"},
	}
}
