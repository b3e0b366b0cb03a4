// Package summary shows a finished session's result and, for quizzes and
// exams, a per-question review.
package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abonetti/vetprep/internal/content"
	"github.com/abonetti/vetprep/internal/progress"
	"github.com/abonetti/vetprep/internal/progression"
	"github.com/abonetti/vetprep/internal/scoring"
	"github.com/abonetti/vetprep/internal/screen"
	"github.com/abonetti/vetprep/internal/ui/layout"
	"github.com/abonetti/vetprep/internal/ui/theme"
)

// Screen renders one TestResult.
type Screen struct {
	svc    *screen.Services
	result progress.TestResult
	badge  *progress.Badge

	// paper is the question list behind the result's Details; nil for
	// flashcard sessions.
	paper  []content.QuizQuestion
	scroll int
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates a summary screen.
func New(svc *screen.Services, result progress.TestResult, badge *progress.Badge, paper []content.QuizQuestion) *Screen {
	return &Screen{svc: svc, result: result, badge: badge, paper: paper}
}

func (s *Screen) Init() tea.Cmd {
	return nil
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "up", "k":
		if s.scroll > 0 {
			s.scroll--
		}
	case "down", "j":
		if s.scroll < len(s.paper)-1 {
			s.scroll++
		}
	}
	return s, nil
}

func (s *Screen) View(width, height int) string {
	res := s.result

	verdict := theme.Correct
	label := "Well done!"
	switch {
	case res.Accuracy >= progression.BadgeMark:
		label = "Excellent!"
	case res.Accuracy >= progression.PassMark:
		verdict = theme.Warning
		label = "Passed — keep at it."
	default:
		verdict = theme.Incorrect
		label = "Below the pass mark."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s — %s\n\n", res.Subject, res.Type)
	fmt.Fprintf(&b, "Correct:   %d / %d\n", res.CorrectCount, res.TotalItems)
	fmt.Fprintf(&b, "Accuracy:  %.1f%%\n", res.Accuracy)
	if res.Points != nil {
		fmt.Fprintf(&b, "Points:    %.2f\n", *res.Points)
	}

	card := theme.Card.Render(b.String())
	head := lipgloss.JoinVertical(lipgloss.Center,
		theme.Title.Width(width).Render(label),
		"",
		verdict.Render(fmt.Sprintf("%.1f%%", res.Accuracy)),
		"",
		card,
	)

	if s.badge != nil {
		head += "\n" + theme.Warning.Render(
			fmt.Sprintf("%s  New badge earned: %s!", s.badge.Icon, s.badge.Subject))
	}

	if len(s.paper) > 0 {
		head += "\n\n" + s.reviewView(width, height-lipgloss.Height(head)-2)
	}

	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(head)
}

// reviewView lists each question with the learner's pick and the right
// answer, scrolled to the current position.
func (s *Screen) reviewView(width, height int) string {
	var lines []string
	for i, d := range s.result.Details {
		var mark string
		q := s.paper[i]
		switch {
		case d.SelectedIndex == q.CorrectIndex:
			mark = theme.Correct.Render("✓")
		case d.SelectedIndex == scoring.Unanswered:
			mark = theme.Hint.Render("·")
		default:
			mark = theme.Incorrect.Render("✗")
		}
		line := fmt.Sprintf("%s %2d. %s", mark, i+1, truncate(d.Question, width-20))
		if i == s.scroll {
			line += "\n     " + theme.Hint.Render("Answer: "+q.Options[q.CorrectIndex])
		}
		lines = append(lines, line)
	}

	if height > 2 && len(lines) > height {
		start := s.scroll
		if start > len(lines)-height {
			start = len(lines) - height
		}
		lines = lines[start:min(start+height, len(lines))]
	}

	return lipgloss.NewStyle().Align(lipgloss.Left).Render(strings.Join(lines, "\n"))
}

// truncate shortens s to at most n characters. It slices runes, not bytes,
// so accented terms survive intact.
func truncate(s string, n int) string {
	r := []rune(s)
	if n > 3 && len(r) > n {
		return string(r[:n-3]) + "..."
	}
	return s
}

func (s *Screen) Title() string {
	return "Results"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Esc", Description: "Done"}}
	if len(s.paper) > 0 {
		hints = append([]layout.KeyHint{{Key: "↑↓", Description: "Review answers"}}, hints...)
	}
	return hints
}
