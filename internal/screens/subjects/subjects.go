// Package subjects is the subject picker pushed before any study activity.
package subjects

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abonetti/vetprep/internal/curriculum"
	"github.com/abonetti/vetprep/internal/screen"
	"github.com/abonetti/vetprep/internal/ui/components"
	"github.com/abonetti/vetprep/internal/ui/theme"
)

// Screen lists the curriculum subjects, optionally with the "All" entry on
// top, and invokes choose for the picked one.
type Screen struct {
	title string
	menu  components.Menu
}

var _ screen.Screen = (*Screen)(nil)

// New creates a subject picker. badgeFor may be nil; when set it marks
// subjects that already have their badge.
func New(title string, includeAll bool, badgeFor func(subject string) bool, choose func(subject string) tea.Cmd) *Screen {
	var items []components.MenuItem

	if includeAll {
		items = append(items, components.MenuItem{
			Label:  "All Subjects",
			Action: func() tea.Cmd { return choose(curriculum.SubjectAll) },
		})
	}

	appendYear := func(label string, year curriculum.Year) {
		items = append(items, components.MenuItem{Label: label, Disabled: true})
		for _, subject := range curriculum.Subjects(year) {
			s := subject
			name := fmt.Sprintf("%s %s", curriculum.Icon(s), s)
			if badgeFor != nil && badgeFor(s) {
				name += "  ✓"
			}
			items = append(items, components.MenuItem{
				Label:  name,
				Action: func() tea.Cmd { return choose(s) },
			})
		}
	}
	appendYear("── Year 1 ──", curriculum.YearOne)
	appendYear("── Year 2 ──", curriculum.YearTwo)

	return &Screen{title: title, menu: components.NewMenu(items)}
}

func (s *Screen) Init() tea.Cmd {
	return nil
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *Screen) View(width, height int) string {
	header := theme.Title.Width(width).Render(s.title)

	menu := s.menu.View()

	// Keep the cursor visible when the list is taller than the screen.
	lines := strings.Split(menu, "\n")
	visible := height - 4
	if visible > 0 && len(lines) > visible {
		start := s.menu.Selected - visible/2
		if start < 0 {
			start = 0
		}
		if start+visible > len(lines) {
			start = len(lines) - visible
		}
		lines = lines[start : start+visible]
		menu = strings.Join(lines, "\n")
	}

	body := lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(menu)
	return header + "\n\n" + body
}

func (s *Screen) Title() string {
	return s.title
}
