package progress

// Store holds session history, earned badges, and scheduled reminders.
// History is append-only, newest first. Like the content store it is a
// plain in-memory container mutated only on the UI event loop.
type Store struct {
	history   []TestResult
	badges    []Badge
	reminders []StudyReminder
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{}
}

// Load replaces all collections wholesale. Used at startup and on cloud
// restore.
func (s *Store) Load(history []TestResult, badges []Badge, reminders []StudyReminder) {
	s.history = history
	s.badges = badges
	s.reminders = reminders
}

// AppendResult prepends a result so history reads newest first.
func (s *Store) AppendResult(r TestResult) {
	s.history = append([]TestResult{r}, s.history...)
}

// Results returns the full history, newest first.
func (s *Store) Results() []TestResult {
	out := make([]TestResult, len(s.history))
	copy(out, s.history)
	return out
}

// AddBadge records a newly earned badge.
func (s *Store) AddBadge(b Badge) {
	s.badges = append(s.badges, b)
}

// Badges returns all earned badges.
func (s *Store) Badges() []Badge {
	out := make([]Badge, len(s.badges))
	copy(out, s.badges)
	return out
}

// HasBadge reports whether a badge exists for the subject.
func (s *Store) HasBadge(subject string) bool {
	for _, b := range s.badges {
		if b.Subject == subject {
			return true
		}
	}
	return false
}

// AddReminder schedules a reminder.
func (s *Store) AddReminder(r StudyReminder) {
	s.reminders = append(s.reminders, r)
}

// ToggleReminder flips the completed flag of the reminder with the given
// id. Unknown ids are ignored.
func (s *Store) ToggleReminder(id string) {
	for i := range s.reminders {
		if s.reminders[i].ID == id {
			s.reminders[i].Completed = !s.reminders[i].Completed
			return
		}
	}
}

// DeleteReminder removes the reminder with the given id.
func (s *Store) DeleteReminder(id string) {
	for i, r := range s.reminders {
		if r.ID == id {
			s.reminders = append(s.reminders[:i], s.reminders[i+1:]...)
			return
		}
	}
}

// Reminders returns all scheduled reminders.
func (s *Store) Reminders() []StudyReminder {
	out := make([]StudyReminder, len(s.reminders))
	copy(out, s.reminders)
	return out
}

// DetailQuestions returns every question string recorded in history
// details, oldest result first so the most recently seen material lands at
// the tail of the exclusion list.
func (s *Store) DetailQuestions() []string {
	var out []string
	for i := len(s.history) - 1; i >= 0; i-- {
		for _, d := range s.history[i].Details {
			out = append(out, d.Question)
		}
	}
	return out
}
