package quizgen

import (
	"github.com/abonetti/vetprep/internal/content"
	"github.com/abonetti/vetprep/internal/progress"
)

// ExclusionList deduplicates the given strings keeping the most recent
// occurrence of each, then truncates to the last max entries. The input is
// ordered oldest first, so the tail is what the student saw most recently —
// exactly the material a fresh batch must avoid.
func ExclusionList(entries []string, max int) []string {
	seen := make(map[string]struct{}, len(entries))
	deduped := make([]string, 0, len(entries))

	// Walk backwards so the newest occurrence wins, then reverse.
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		if e == "" {
			continue
		}
		if _, ok := seen[e]; ok {
			continue
		}
		seen[e] = struct{}{}
		deduped = append(deduped, e)
	}
	for i, j := 0, len(deduped)-1; i < j; i, j = i+1, j-1 {
		deduped[i], deduped[j] = deduped[j], deduped[i]
	}

	if max > 0 && len(deduped) > max {
		deduped = deduped[len(deduped)-max:]
	}
	return deduped
}

// CollectExclusions gathers everything the generator should avoid for a
// subject: concepts and question texts already in the library, plus every
// question the student answered in past sessions.
func CollectExclusions(cs *content.Store, ps *progress.Store, subject string, max int) []string {
	var entries []string
	entries = append(entries, cs.Concepts(subject)...)
	entries = append(entries, cs.QuestionTexts(subject)...)
	entries = append(entries, ps.DetailQuestions()...)
	return ExclusionList(entries, max)
}
