// Package calendar is a month-grid study planner. Reminders hang off days;
// the learner adds, checks off, and deletes them here.
package calendar

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/google/uuid"

	"github.com/abonetti/vetprep/internal/curriculum"
	"github.com/abonetti/vetprep/internal/progress"
	"github.com/abonetti/vetprep/internal/screen"
	"github.com/abonetti/vetprep/internal/ui/layout"
	"github.com/abonetti/vetprep/internal/ui/theme"
)

// mode switches the key handling between grid navigation and the inline
// subject picker shown while adding a reminder.
type mode int

const (
	modeGrid mode = iota
	modeAddSubject
)

// Screen is the calendar planner.
type Screen struct {
	svc *screen.Services

	// month is the first day of the displayed month.
	month time.Time
	// day is the selected day of month, 1-based.
	day int

	mode          mode
	subjectCursor int

	// reminderCursor selects among the day's reminders.
	reminderCursor int
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

func New(svc *screen.Services) *Screen {
	now := time.Now()
	return &Screen{
		svc:   svc,
		month: time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local),
		day:   now.Day(),
	}
}

func (s *Screen) Init() tea.Cmd {
	return nil
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	if s.mode == modeAddSubject {
		s.updateAdd(kmsg)
		return s, nil
	}

	switch kmsg.String() {
	case "left", "h":
		s.moveDay(-1)
	case "right", "l":
		s.moveDay(1)
	case "up", "k":
		s.moveDay(-7)
	case "down", "j":
		s.moveDay(7)
	case "[", "pgup":
		s.shiftMonth(-1)
	case "]", "pgdown":
		s.shiftMonth(1)
	case "t":
		now := time.Now()
		s.month = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local)
		s.day = now.Day()
	case "a":
		s.mode = modeAddSubject
		s.subjectCursor = 0
	case "tab":
		if n := len(s.dayReminders()); n > 0 {
			s.reminderCursor = (s.reminderCursor + 1) % n
		}
	case " ", "space", "enter":
		if r := s.selectedReminder(); r != nil {
			s.svc.Progress.ToggleReminder(r.ID)
			s.svc.PersistProgress()
		}
	case "d", "x":
		if r := s.selectedReminder(); r != nil {
			s.svc.Progress.DeleteReminder(r.ID)
			s.svc.PersistProgress()
			s.reminderCursor = 0
		}
	}
	return s, nil
}

func (s *Screen) updateAdd(kmsg tea.KeyMsg) {
	subjects := curriculum.AllSubjects()
	switch kmsg.String() {
	case "up", "k":
		if s.subjectCursor > 0 {
			s.subjectCursor--
		}
	case "down", "j":
		if s.subjectCursor < len(subjects)-1 {
			s.subjectCursor++
		}
	case "enter":
		s.svc.Progress.AddReminder(progress.StudyReminder{
			ID:      uuid.NewString(),
			Date:    s.selectedDate(),
			Subject: subjects[s.subjectCursor],
		})
		s.svc.PersistProgress()
		s.mode = modeGrid
	}
}

// HandleEsc closes the subject picker when it is open.
func (s *Screen) HandleEsc() bool {
	if s.mode == modeAddSubject {
		s.mode = modeGrid
		return true
	}
	return false
}

func (s *Screen) selectedDate() time.Time {
	return s.month.AddDate(0, 0, s.day-1)
}

func daysIn(month time.Time) int {
	return month.AddDate(0, 1, -1).Day()
}

func (s *Screen) moveDay(delta int) {
	d := s.day + delta
	switch {
	case d < 1:
		s.shiftMonth(-1)
		s.day = daysIn(s.month)
	case d > daysIn(s.month):
		s.shiftMonth(1)
		s.day = 1
	default:
		s.day = d
	}
	s.reminderCursor = 0
}

func (s *Screen) shiftMonth(delta int) {
	s.month = s.month.AddDate(0, delta, 0)
	if s.day > daysIn(s.month) {
		s.day = daysIn(s.month)
	}
	s.reminderCursor = 0
}

// dayReminders returns the reminders on the selected day.
func (s *Screen) dayReminders() []progress.StudyReminder {
	var out []progress.StudyReminder
	sel := s.selectedDate()
	for _, r := range s.svc.Progress.Reminders() {
		if sameDay(r.Date, sel) {
			out = append(out, r)
		}
	}
	return out
}

func (s *Screen) selectedReminder() *progress.StudyReminder {
	rs := s.dayReminders()
	if len(rs) == 0 {
		return nil
	}
	if s.reminderCursor >= len(rs) {
		s.reminderCursor = len(rs) - 1
	}
	return &rs[s.reminderCursor]
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func (s *Screen) View(width, height int) string {
	if s.mode == modeAddSubject {
		return s.addView(width)
	}

	grid := s.gridView()
	detail := s.detailView(width)

	body := lipgloss.JoinVertical(lipgloss.Center,
		theme.Title.Render(s.month.Format("January 2006")),
		"",
		grid,
		"",
		detail,
	)
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(body)
}

// gridView draws the month, Monday first, with reminder dots.
func (s *Screen) gridView() string {
	hasReminder := make(map[int]bool)
	allDone := make(map[int]bool)
	for _, r := range s.svc.Progress.Reminders() {
		if r.Date.Year() == s.month.Year() && r.Date.Month() == s.month.Month() {
			d := r.Date.Day()
			if !hasReminder[d] {
				allDone[d] = true
			}
			hasReminder[d] = true
			if !r.Completed {
				allDone[d] = false
			}
		}
	}

	var b strings.Builder
	b.WriteString(theme.Subtitle.Render(" Mo   Tu   We   Th   Fr   Sa   Su") + "\n")

	// Weekday of the 1st, Monday = 0.
	lead := (int(s.month.Weekday()) + 6) % 7
	b.WriteString(strings.Repeat("     ", lead))

	today := time.Now()
	col := lead
	for d := 1; d <= daysIn(s.month); d++ {
		cell := fmt.Sprintf("%2d", d)
		switch {
		case hasReminder[d] && allDone[d]:
			cell += "✓"
		case hasReminder[d]:
			cell += "•"
		default:
			cell += " "
		}

		style := theme.Body
		if sameDay(s.month.AddDate(0, 0, d-1), today) {
			style = theme.Correct
		}
		if d == s.day {
			style = theme.Selected
		}
		b.WriteString(style.Render(cell) + "  ")

		col++
		if col == 7 {
			b.WriteString("\n")
			col = 0
		}
	}

	return b.String()
}

// detailView lists the selected day's reminders.
func (s *Screen) detailView(width int) string {
	rs := s.dayReminders()
	head := theme.Subtitle.Render(s.selectedDate().Format("Mon 2 Jan"))
	if len(rs) == 0 {
		return head + "\n" + theme.Hint.Render("Nothing planned. Press A to add a reminder.")
	}

	lines := []string{head}
	for i, r := range rs {
		box := "☐"
		style := theme.Body
		if r.Completed {
			box = "☑"
			style = theme.Hint
		}
		line := fmt.Sprintf("%s %s %s", box, curriculum.Icon(r.Subject), r.Subject)
		if i == s.reminderCursor {
			line = theme.Selected.Render(line)
		} else {
			line = style.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (s *Screen) addView(width int) string {
	subjects := curriculum.AllSubjects()
	lines := []string{
		theme.Title.Render("Plan a study session"),
		theme.Subtitle.Render(s.selectedDate().Format("Mon 2 January 2006")),
		"",
	}

	// Window the list around the cursor.
	const window = 9
	start := 0
	if s.subjectCursor >= window {
		start = s.subjectCursor - window + 1
	}
	for i := start; i < len(subjects) && i < start+window; i++ {
		line := fmt.Sprintf("%s %s", curriculum.Icon(subjects[i]), subjects[i])
		if i == s.subjectCursor {
			line = theme.Selected.Render("▸ " + line)
		} else {
			line = theme.Unselected.Render("  " + line)
		}
		lines = append(lines, line)
	}

	body := lipgloss.JoinVertical(lipgloss.Center, lines...)
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(body)
}

func (s *Screen) Title() string {
	return "Calendar"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	if s.mode == modeAddSubject {
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Subject"},
			{Key: "Enter", Description: "Add"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "←↑↓→", Description: "Day"},
		{Key: "[ ]", Description: "Month"},
		{Key: "A", Description: "Add"},
		{Key: "Space", Description: "Done"},
		{Key: "D", Description: "Delete"},
	}
}
