// Package lab is the content workshop: it grows a subject's library by
// calling the generation gateway, and can regenerate the subject wholesale.
package lab

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abonetti/vetprep/internal/content"
	"github.com/abonetti/vetprep/internal/curriculum"
	"github.com/abonetti/vetprep/internal/screen"
	"github.com/abonetti/vetprep/internal/ui/components"
	"github.com/abonetti/vetprep/internal/ui/layout"
	"github.com/abonetti/vetprep/internal/ui/theme"
)

// BatchSize is how many items one generation request asks for.
const BatchSize = 10

// generatedMsg delivers a finished generation request.
type generatedMsg struct {
	cards     []content.Flashcard
	questions []content.QuizQuestion
	replace   bool
	err       error
}

// Screen is the generation workshop for one subject.
type Screen struct {
	svc     *screen.Services
	subject string
	status  string
	failed  bool

	// focus overrides the curriculum topic hint when non-empty.
	focus   string
	editing bool
	input   components.TextInput
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates the lab screen for a subject.
func New(svc *screen.Services, subject string) *Screen {
	return &Screen{svc: svc, subject: subject}
}

func (s *Screen) Init() tea.Cmd {
	return nil
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if s.editing {
			switch msg.String() {
			case "enter":
				s.focus = strings.TrimSpace(s.input.Value())
				s.editing = false
			default:
				var cmd tea.Cmd
				s.input, cmd = s.input.Update(msg)
				return s, cmd
			}
			return s, nil
		}

		switch msg.String() {
		case "f":
			return s, s.generate(true, false, false)
		case "q":
			return s, s.generate(false, true, false)
		case "r":
			return s, s.generate(true, true, true)
		case "t":
			s.input = components.NewTextInput("e.g. parasitology of ruminants", s.focus, 80)
			s.editing = true
			return s, s.input.Init()
		}

	case generatedMsg:
		s.svc.Controller.EndGeneration()
		if msg.err != nil {
			s.failed = true
			s.status = "Generation failed — check your connection and try again."
			if s.svc.Logger != nil {
				s.svc.Logger.Warn("generation failed", zap.String("subject", s.subject), zap.Error(msg.err))
			}
			return s, nil
		}

		if msg.replace {
			s.svc.Content.ReplaceForSubject(s.subject, msg.cards, msg.questions)
		} else {
			s.svc.Content.AddFlashcards(msg.cards)
			s.svc.Content.AddQuizQuestions(msg.questions)
		}
		s.svc.PersistContent()

		s.failed = false
		s.status = fmt.Sprintf("Added %d flashcards and %d questions.", len(msg.cards), len(msg.questions))
		return s, s.svc.BackupCmd()
	}

	return s, nil
}

// generate fires a gateway request unless one is already in flight.
func (s *Screen) generate(cards, questions, replace bool) tea.Cmd {
	if s.svc.Gateway == nil {
		s.failed = true
		s.status = "No AI provider configured — set an API key to generate content."
		return nil
	}
	if !s.svc.Controller.BeginGeneration() {
		return nil
	}
	s.failed = false
	s.status = "Generating… this can take a moment."

	// Snapshot the exclusion list on the UI thread; the request itself runs
	// in a goroutine.
	exclude := s.svc.Exclusions(s.subject)
	gateway := s.svc.Gateway
	subject := s.subject
	hint := s.focus
	if hint == "" {
		hint = curriculum.TopicHint(subject)
	}
	return func() tea.Msg {
		ctx := context.Background()
		out := generatedMsg{replace: replace}

		if cards {
			batch, err := gateway.Flashcards(ctx, subject, hint, exclude, BatchSize)
			if err != nil {
				out.err = err
				return out
			}
			out.cards = batch
		}
		if questions {
			batch, err := gateway.QuizQuestions(ctx, subject, hint, exclude, BatchSize)
			if err != nil {
				out.err = err
				return out
			}
			out.questions = batch
		}
		return out
	}
}

func (s *Screen) View(width, height int) string {
	title := theme.Title.Width(width).Render(
		fmt.Sprintf("%s %s", curriculum.Icon(s.subject), s.subject))

	cardCount := len(s.svc.Content.Flashcards(s.subject))
	questionCount := len(s.svc.Content.QuizQuestions(s.subject))

	var b strings.Builder
	fmt.Fprintf(&b, "Flashcards in library:  %d\n", cardCount)
	fmt.Fprintf(&b, "Quiz questions:         %d\n", questionCount)
	hint := s.focus
	if hint == "" {
		hint = curriculum.TopicHint(s.subject)
	}
	if hint != "" {
		b.WriteString("\n" + theme.Hint.Render("Focus: "+hint) + "\n")
	}

	stats := theme.Card.Render(b.String())

	if s.editing {
		edit := theme.Subtitle.Render("Focus topic for generation:") + "\n" + s.input.View()
		body := lipgloss.JoinVertical(lipgloss.Center, title, "", stats, "", edit)
		return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(body)
	}

	var status string
	switch {
	case s.svc.Controller.Generating():
		status = theme.Warning.Render("⏳ " + s.status)
	case s.failed:
		status = theme.Incorrect.Render(s.status)
	case s.status != "":
		status = theme.Correct.Render(s.status)
	}

	body := lipgloss.JoinVertical(lipgloss.Center, title, "", stats, "", status)
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(body)
}

func (s *Screen) Title() string {
	return "Study Lab"
}

// HandleEsc cancels an in-progress focus edit. While a request is in flight
// the screen must stay up: the settling generatedMsg is delivered to the
// active screen, and it is what clears the in-flight flag.
func (s *Screen) HandleEsc() bool {
	if s.editing {
		s.editing = false
		return true
	}
	if s.svc.Controller.Generating() {
		s.status = "Still generating — one moment."
		return true
	}
	return false
}

func (s *Screen) KeyHints() []layout.KeyHint {
	if s.editing {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Set focus"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	if s.svc.Controller.Generating() {
		return []layout.KeyHint{{Key: "…", Description: "Generating"}}
	}
	return []layout.KeyHint{
		{Key: "F", Description: "Flashcards"},
		{Key: "Q", Description: "Quiz questions"},
		{Key: "T", Description: "Focus topic"},
		{Key: "R", Description: "Regenerate subject"},
	}
}
