// Package history lists completed sessions, newest first.
package history

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abonetti/vetprep/internal/progression"
	"github.com/abonetti/vetprep/internal/screen"
	"github.com/abonetti/vetprep/internal/ui/layout"
	"github.com/abonetti/vetprep/internal/ui/theme"
)

// Screen is a scrollable table of past results.
type Screen struct {
	svc    *screen.Services
	cursor int
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

func New(svc *screen.Services) *Screen {
	return &Screen{svc: svc}
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
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(s.svc.Progress.Results())-1 {
			s.cursor++
		}
	}
	return s, nil
}

func (s *Screen) View(width, height int) string {
	results := s.svc.Progress.Results()
	if len(results) == 0 {
		return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(
			"\n\n" + theme.Hint.Render("No sessions yet. Your results will show up here."))
	}

	header := fmt.Sprintf("  %-10s  %-11s  %-30s  %8s  %8s",
		"Date", "Type", "Subject", "Score", "Points")
	lines := []string{theme.Subtitle.Render(header)}

	for i, r := range results {
		score := fmt.Sprintf("%.1f%%", r.Accuracy)
		points := "—"
		if r.Points != nil {
			points = fmt.Sprintf("%.2f", *r.Points)
		}
		line := fmt.Sprintf("  %-10s  %-11s  %-30s  %8s  %8s",
			r.Date.Format("2006-01-02"),
			r.Type,
			truncate(r.Subject, 30),
			score,
			points,
		)

		switch {
		case i == s.cursor:
			lines = append(lines, theme.Selected.Render(line))
		case r.Accuracy >= progression.BadgeMark:
			lines = append(lines, theme.Correct.Render(line))
		case r.Accuracy < progression.PassMark:
			lines = append(lines, theme.Incorrect.Render(line))
		default:
			lines = append(lines, theme.Body.Render(line))
		}
	}

	// Keep the cursor row inside the window.
	visible := height - 4
	if visible > 1 && len(lines)-1 > visible {
		start := 0
		if s.cursor >= visible {
			start = s.cursor - visible + 1
		}
		lines = append(lines[:1], lines[1+start:1+start+visible]...)
	}

	table := strings.Join(lines, "\n")
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(table)
}

// truncate shortens s to at most n characters, slicing runes rather than
// bytes so multi-byte subject names stay valid.
func truncate(s string, n int) string {
	r := []rune(s)
	if n > 1 && len(r) > n {
		return string(r[:n-1]) + "…"
	}
	return s
}

func (s *Screen) Title() string {
	return "History"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}
