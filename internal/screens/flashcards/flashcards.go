// Package flashcards runs a self-graded flashcard session.
package flashcards

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abonetti/vetprep/internal/router"
	"github.com/abonetti/vetprep/internal/screen"
	"github.com/abonetti/vetprep/internal/screens/summary"
	"github.com/abonetti/vetprep/internal/ui/components"
	"github.com/abonetti/vetprep/internal/ui/layout"
	"github.com/abonetti/vetprep/internal/ui/theme"
)

// Screen drives one flashcard session on the shared controller.
type Screen struct {
	svc      *screen.Services
	subject  string
	flipped  bool
	startErr error
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates the screen and starts the session immediately.
func New(svc *screen.Services, subject string) *Screen {
	s := &Screen{svc: svc, subject: subject}
	s.startErr = svc.Controller.StartFlashcards(subject)
	return s
}

func (s *Screen) Init() tea.Cmd {
	return nil
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || s.startErr != nil {
		return s, nil
	}

	switch kmsg.String() {
	case " ", "space", "enter":
		s.flipped = !s.flipped
	case "g":
		if s.flipped {
			s.grade(true)
			return s, s.maybeFinish()
		}
	case "m":
		if s.flipped {
			s.grade(false)
			return s, s.maybeFinish()
		}
	}
	return s, nil
}

func (s *Screen) grade(correct bool) {
	s.svc.Controller.Grade(correct)
	s.flipped = false
}

// maybeFinish swaps in the summary once the last card is graded.
func (s *Screen) maybeFinish() tea.Cmd {
	res := s.svc.Controller.Result()
	if res == nil {
		return nil
	}
	badge := s.svc.RecordResult(*res)
	backupCmd := s.svc.BackupCmd()
	return tea.Batch(backupCmd, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: summary.New(s.svc, *res, badge, nil)}
	})
}

func (s *Screen) View(width, height int) string {
	if s.startErr != nil {
		return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(
			"\n\n" + theme.Warning.Render("No flashcards for this subject yet.") +
				"\n\n" + theme.Hint.Render("Generate some in the Study Lab first."))
	}

	ctrl := s.svc.Controller
	card := ctrl.CurrentCard()
	if card == nil {
		return ""
	}

	progress := components.NewProgressBar(
		fmt.Sprintf("Card %d/%d", ctrl.Position()+1, ctrl.Total()),
		float64(ctrl.Position())/float64(ctrl.Total()),
		false, width/2,
	).View()

	concept := theme.Subtitle.Render(fmt.Sprintf("%s · %s", card.Subject, card.Concept))

	var face string
	if s.flipped {
		face = theme.Body.Render(card.Answer)
		if card.Explanation != "" {
			face += "\n\n" + theme.Hint.Render(card.Explanation)
		}
	} else {
		face = theme.Body.Bold(true).Render(card.Question)
	}

	cardBox := theme.Card.Width(width * 2 / 3).Render(face)

	body := lipgloss.JoinVertical(lipgloss.Center,
		progress, "", concept, "", cardBox)
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(body)
}

// HandleEsc abandons a running session before the screen pops.
func (s *Screen) HandleEsc() bool {
	s.svc.Controller.Abandon()
	return false
}

func (s *Screen) Title() string {
	return "Flashcards"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	if s.startErr != nil {
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
	if s.flipped {
		return []layout.KeyHint{
			{Key: "G", Description: "Got it"},
			{Key: "M", Description: "Missed it"},
			{Key: "Space", Description: "Flip back"},
		}
	}
	return []layout.KeyHint{
		{Key: "Space", Description: "Reveal answer"},
		{Key: "Esc", Description: "Abandon"},
	}
}
