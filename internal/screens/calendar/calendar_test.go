package calendar

import (
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abonetti/vetprep/internal/content"
	"github.com/abonetti/vetprep/internal/curriculum"
	"github.com/abonetti/vetprep/internal/progress"
	"github.com/abonetti/vetprep/internal/progression"
	"github.com/abonetti/vetprep/internal/screen"
	"github.com/abonetti/vetprep/internal/session"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

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

func TestCalendarAddReminder(t *testing.T) {
	svc := testServices()
	s := New(svc)

	s.Update(keyPress('a'))
	if s.mode != modeAddSubject {
		t.Fatal("expected the subject picker to open")
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	rs := svc.Progress.Reminders()
	if len(rs) != 1 {
		t.Fatalf("reminders = %d, want 1", len(rs))
	}
	if rs[0].Subject != curriculum.AllSubjects()[0] {
		t.Errorf("subject = %q, want the first curriculum subject", rs[0].Subject)
	}
	if !sameDay(rs[0].Date, s.selectedDate()) {
		t.Error("reminder should land on the selected day")
	}
	if s.mode != modeGrid {
		t.Error("expected the picker to close after adding")
	}
}

func TestCalendarToggleAndDelete(t *testing.T) {
	svc := testServices()
	s := New(svc)

	s.Update(keyPress('a'))
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	s.Update(tea.KeyPressMsg{Code: tea.KeySpace, Text: " "})
	if rs := svc.Progress.Reminders(); !rs[0].Completed {
		t.Error("expected space to mark the reminder done")
	}

	s.Update(keyPress('d'))
	if rs := svc.Progress.Reminders(); len(rs) != 0 {
		t.Errorf("reminders after delete = %d, want 0", len(rs))
	}
}

func TestCalendarEscClosesPicker(t *testing.T) {
	s := New(testServices())
	s.Update(keyPress('a'))

	if !s.HandleEsc() {
		t.Error("expected esc to close the picker")
	}
	if s.HandleEsc() {
		t.Error("expected esc in grid mode to fall through")
	}
}

func TestCalendarDayNavigationAcrossMonths(t *testing.T) {
	s := New(testServices())
	s.month = time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	s.day = 1

	s.moveDay(-1)
	if s.month.Month() != time.February || s.day != 28 {
		t.Errorf("got %s %d, want February 28", s.month.Month(), s.day)
	}

	s.day = 28
	s.moveDay(1)
	if s.month.Month() != time.March || s.day != 1 {
		t.Errorf("got %s %d, want March 1", s.month.Month(), s.day)
	}
}

func TestCalendarMonthShiftClampsDay(t *testing.T) {
	s := New(testServices())
	s.month = time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	s.day = 31

	s.shiftMonth(1)
	if s.day != 28 {
		t.Errorf("day = %d, want 28 (February)", s.day)
	}
}
