package screen

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abonetti/vetprep/internal/backup"
	"github.com/abonetti/vetprep/internal/content"
	"github.com/abonetti/vetprep/internal/progress"
	"github.com/abonetti/vetprep/internal/progression"
	"github.com/abonetti/vetprep/internal/quizgen"
	"github.com/abonetti/vetprep/internal/session"
	"github.com/abonetti/vetprep/internal/storage"
)

// Services bundles the long-lived state and engines every screen draws on.
// One instance is built at startup and shared by pointer.
type Services struct {
	Content     *content.Store
	Progress    *progress.Store
	Controller  *session.Controller
	Gateway     quizgen.Gateway
	Progression *progression.Engine

	// Storage is nil when persistence is disabled (tests).
	Storage *storage.Store

	// Backup is nil or unauthenticated when cloud backup is disabled.
	Backup *backup.Client

	Logger *zap.Logger

	// MaxExclusions bounds the do-not-repeat tail sent with generation
	// requests. Zero falls back to the gateway default.
	MaxExclusions int
}

// Exclusions builds the do-not-repeat list for a subject.
func (s *Services) Exclusions(subject string) []string {
	max := s.MaxExclusions
	if max <= 0 {
		max = quizgen.DefaultConfig().MaxExclusions
	}
	return quizgen.CollectExclusions(s.Content, s.Progress, subject, max)
}

// RecordResult appends a finished session to history, awards a badge when
// the result qualifies, and persists. Returns the new badge, if any.
func (s *Services) RecordResult(res progress.TestResult) *progress.Badge {
	s.Progress.AppendResult(res)
	badge := s.Progression.MaybeAwardBadge(res)
	s.PersistProgress()
	return badge
}

// PersistContent writes the content collections, best effort.
func (s *Services) PersistContent() {
	if s.Storage != nil {
		storage.PersistContent(s.Storage, s.Content)
	}
}

// PersistProgress writes history, badges, and reminders, best effort.
func (s *Services) PersistProgress() {
	if s.Storage != nil {
		storage.PersistProgress(s.Storage, s.Progress)
	}
}

// BackupCmd returns a command that mirrors the current state to the cloud.
// Failures are logged and swallowed: backup must never interrupt studying.
func (s *Services) BackupCmd() tea.Cmd {
	if s.Backup == nil || !s.Backup.Enabled() {
		return nil
	}
	snap := backup.NewSnapshot(s.Content, s.Progress)
	client := s.Backup
	logger := s.Logger
	return func() tea.Msg {
		if err := client.Save(context.Background(), snap); err != nil {
			if logger != nil {
				logger.Warn("cloud backup failed", zap.Error(err))
			}
		}
		return nil
	}
}
