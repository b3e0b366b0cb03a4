package storage

import (
	"github.com/abonetti/vetprep/internal/content"
	"github.com/abonetti/vetprep/internal/progress"
)

// LoadStores hydrates the in-memory stores from disk. Each collection falls
// back to empty independently, so one corrupt value cannot take the rest of
// the student's data with it.
func LoadStores(s *Store, cs *content.Store, ps *progress.Store) {
	var cards []content.Flashcard
	var questions []content.QuizQuestion
	var history []progress.TestResult
	var badges []progress.Badge
	var reminders []progress.StudyReminder

	s.Get(KeyFlashcards, &cards)
	s.Get(KeyQuizQuestions, &questions)
	s.Get(KeyHistory, &history)
	s.Get(KeyBadges, &badges)
	s.Get(KeyReminders, &reminders)

	cs.Load(cards, questions)
	ps.Load(history, badges, reminders)
}

// PersistContent writes both content collections, best effort.
func PersistContent(s *Store, cs *content.Store) {
	cards, questions := cs.All()
	s.PersistBestEffort(KeyFlashcards, cards)
	s.PersistBestEffort(KeyQuizQuestions, questions)
}

// PersistProgress writes history, badges, and reminders, best effort.
func PersistProgress(s *Store, ps *progress.Store) {
	s.PersistBestEffort(KeyHistory, ps.Results())
	s.PersistBestEffort(KeyBadges, ps.Badges())
	s.PersistBestEffort(KeyReminders, ps.Reminders())
}
