// Package progression derives unlock states and badge awards from the
// progress store. Everything here is recomputed on read; nothing is cached,
// so the store is the single source of truth.
package progression

import (
	"time"

	"github.com/google/uuid"

	"github.com/abonetti/vetprep/internal/curriculum"
	"github.com/abonetti/vetprep/internal/progress"
)

const (
	// PassMark is the minimum accuracy for a tier to count as passed.
	PassMark = 60.0

	// BadgeMark is the minimum accuracy for a module badge.
	BadgeMark = 80.0

	// WeakestMinSubjects is how many distinct subjects need quiz history
	// before the weakest-module advisory unlocks.
	WeakestMinSubjects = 3
)

// Engine answers unlock and award questions against a progress store.
type Engine struct {
	store *progress.Store
}

// NewEngine creates an Engine over the given store.
func NewEngine(store *progress.Store) *Engine {
	return &Engine{store: store}
}

// BadgesForYear returns the earned badges whose subject belongs to the
// given year.
func (e *Engine) BadgesForYear(y curriculum.Year) []progress.Badge {
	var out []progress.Badge
	for _, b := range e.store.Badges() {
		if curriculum.YearOf(b.Subject) == y {
			out = append(out, b)
		}
	}
	return out
}

// ExamYear1Unlocked reports whether every year-one subject has its badge.
func (e *Engine) ExamYear1Unlocked() bool {
	return len(e.BadgesForYear(curriculum.YearOne)) == len(curriculum.Subjects(curriculum.YearOne))
}

// TierPassed reports whether any history entry carries the given aggregate
// subject label with a passing accuracy.
func (e *Engine) TierPassed(label string) bool {
	for _, r := range e.store.Results() {
		if r.Subject == label && r.Accuracy >= PassMark {
			return true
		}
	}
	return false
}

// FinalExamUnlocked requires the complete badge set for both years AND a
// passed year-one exam. All three conditions, not just one.
func (e *Engine) FinalExamUnlocked() bool {
	year1Complete := len(e.BadgesForYear(curriculum.YearOne)) == len(curriculum.Subjects(curriculum.YearOne))
	year2Complete := len(e.BadgesForYear(curriculum.YearTwo)) == len(curriculum.Subjects(curriculum.YearTwo))
	return year1Complete && year2Complete && e.TierPassed(curriculum.SubjectExamYear1)
}

// MaybeAwardBadge awards a badge for the session result if it qualifies:
// non-exam type, real (non-aggregate) subject, accuracy at the badge mark,
// and no badge yet for that subject. Returns the new badge or nil.
// Re-running a passed module never produces a duplicate.
func (e *Engine) MaybeAwardBadge(res progress.TestResult) *progress.Badge {
	if res.Type.IsExam() {
		return nil
	}
	if !curriculum.IsSubject(res.Subject) {
		return nil
	}
	if res.Accuracy < BadgeMark {
		return nil
	}
	if e.store.HasBadge(res.Subject) {
		return nil
	}

	b := progress.Badge{
		ID:         uuid.New().String(),
		Subject:    res.Subject,
		Icon:       curriculum.Icon(res.Subject),
		EarnedDate: time.Now(),
	}
	e.store.AddBadge(b)
	return &b
}

// WeakestModule is the advisory naming the learner's lowest-scoring subject.
type WeakestModule struct {
	// Unlocked is false until enough distinct subjects have quiz history.
	Unlocked bool

	// DistinctSubjects is the current count toward WeakestMinSubjects.
	DistinctSubjects int

	// Subject and AverageAccuracy describe the weakest module when
	// unlocked.
	Subject         string
	AverageAccuracy float64

	// Failing is true when the subject's most recent attempt was itself
	// below the pass mark, as opposed to merely weakest of the set.
	Failing bool
}

// Weakest computes the weakest-module advisory from quiz history.
// Only type=Quiz results for real subjects participate.
func (e *Engine) Weakest() WeakestModule {
	type stats struct {
		sum    float64
		count  int
		latest progress.TestResult
	}
	bySubject := make(map[string]*stats)

	// Results are newest first, so the first entry seen per subject is the
	// most recent attempt.
	for _, r := range e.store.Results() {
		if r.Type != progress.TypeQuiz || !curriculum.IsSubject(r.Subject) {
			continue
		}
		st, ok := bySubject[r.Subject]
		if !ok {
			st = &stats{latest: r}
			bySubject[r.Subject] = st
		}
		st.sum += r.Accuracy
		st.count++
	}

	if len(bySubject) < WeakestMinSubjects {
		return WeakestModule{DistinctSubjects: len(bySubject)}
	}

	var worst string
	worstAvg := 0.0
	for subject, st := range bySubject {
		avg := st.sum / float64(st.count)
		if worst == "" || avg < worstAvg {
			worst = subject
			worstAvg = avg
		}
	}

	return WeakestModule{
		Unlocked:         true,
		DistinctSubjects: len(bySubject),
		Subject:          worst,
		AverageAccuracy:  worstAvg,
		Failing:          bySubject[worst].latest.Accuracy < PassMark,
	}
}
