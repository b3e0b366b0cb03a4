package backup

import (
	"fmt"
	"time"

	"golang.org/x/mod/semver"

	"github.com/abonetti/vetprep/internal/content"
	"github.com/abonetti/vetprep/internal/progress"
)

// SnapshotVersion is the schema version written into every backup. Bump the
// major only on incompatible layout changes.
const SnapshotVersion = "v1.0.0"

// Snapshot is the full application state as stored in the cloud backup.
type Snapshot struct {
	Version       string                   `json:"version"`
	SavedAt       time.Time                `json:"savedAt"`
	Flashcards    []content.Flashcard      `json:"flashcards"`
	QuizQuestions []content.QuizQuestion   `json:"quizQuestions"`
	History       []progress.TestResult    `json:"history"`
	Badges        []progress.Badge         `json:"badges"`
	Reminders     []progress.StudyReminder `json:"reminders"`
}

// NewSnapshot captures the current state of both stores.
func NewSnapshot(cs *content.Store, ps *progress.Store) *Snapshot {
	cards, questions := cs.All()
	return &Snapshot{
		Version:       SnapshotVersion,
		SavedAt:       time.Now(),
		Flashcards:    cards,
		QuizQuestions: questions,
		History:       ps.Results(),
		Badges:        ps.Badges(),
		Reminders:     ps.Reminders(),
	}
}

// CheckVersion rejects snapshots written by a newer major version of the
// app: their layout may not be readable here. Older and same-major
// snapshots are accepted.
func (s *Snapshot) CheckVersion() error {
	v := s.Version
	if !semver.IsValid(v) {
		return fmt.Errorf("snapshot has invalid version %q", v)
	}
	if semver.Compare(semver.Major(v), semver.Major(SnapshotVersion)) > 0 {
		return fmt.Errorf("snapshot version %s is newer than supported %s", v, SnapshotVersion)
	}
	return nil
}

// Restore loads the snapshot into both stores, replacing their contents.
func (s *Snapshot) Restore(cs *content.Store, ps *progress.Store) {
	cs.Load(s.Flashcards, s.QuizQuestions)
	ps.Load(s.History, s.Badges, s.Reminders)
}
