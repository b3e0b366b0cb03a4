// Package session owns the lifecycle of a single study session: flashcard
// review, subject quizzes, and timed mock exams. One Controller instance
// lives for the whole app run; starting a session resets it.
package session

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/abonetti/vetprep/internal/content"
	"github.com/abonetti/vetprep/internal/curriculum"
	"github.com/abonetti/vetprep/internal/progress"
	"github.com/abonetti/vetprep/internal/quizgen"
	"github.com/abonetti/vetprep/internal/scoring"
)

// Phase is the controller's lifecycle state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseActive
	PhaseCompleted
)

// Session size and timing constants.
const (
	// MaxSessionItems caps a single-subject study session.
	MaxSessionItems = 10

	ExamYear1Items    = 50
	ExamYear1Duration = 30 * time.Minute

	ExamFinalItems    = 100
	ExamFinalDuration = 60 * time.Minute
)

// EmptyPoolError reports a start attempt on a subject with no stored
// content. The controller stays Idle.
type EmptyPoolError struct {
	Subject string
}

func (e *EmptyPoolError) Error() string {
	return fmt.Sprintf("no study content for %q", e.Subject)
}

// Controller is the session state machine. All mutation happens on the UI
// event loop; exam generation is the one blocking call and runs inside a
// tea.Cmd before the transition to Active.
type Controller struct {
	content *content.Store
	gateway quizgen.Gateway

	phase   Phase
	kind    progress.SessionType
	subject string

	cards     []content.Flashcard
	questions []content.QuizQuestion

	position     int
	correctCount int
	answers      map[int]int

	remaining time.Duration
	epoch     int

	generating bool
	result     *progress.TestResult
}

// NewController creates an Idle controller.
func NewController(cs *content.Store, gw quizgen.Gateway) *Controller {
	return &Controller{content: cs, gateway: gw}
}

// StartFlashcards begins a flashcard session for a subject ("All" reviews
// the whole library). Single-subject sessions are capped; "All" is the
// full-library review and stays uncapped.
func (c *Controller) StartFlashcards(subject string) error {
	pool := c.content.Flashcards(subject)
	if len(pool) == 0 {
		return &EmptyPoolError{Subject: subject}
	}

	shuffleCards(pool)
	if subject != curriculum.SubjectAll && len(pool) > MaxSessionItems {
		pool = pool[:MaxSessionItems]
	}

	c.reset(progress.TypeFlashcard, subject)
	c.cards = pool
	c.phase = PhaseActive
	return nil
}

// StartQuiz begins a quiz session for a subject from the stored question
// pool.
func (c *Controller) StartQuiz(subject string) error {
	pool := c.content.QuizQuestions(subject)
	if len(pool) == 0 {
		return &EmptyPoolError{Subject: subject}
	}

	shuffleQuestions(pool)
	if len(pool) > MaxSessionItems {
		pool = pool[:MaxSessionItems]
	}

	c.reset(progress.TypeQuiz, subject)
	c.questions = pool
	c.phase = PhaseActive
	return nil
}

// StartExam generates a fresh exam paper and begins a timed session.
// A gateway failure leaves the controller Idle; nothing is recorded.
func (c *Controller) StartExam(ctx context.Context, tier progress.SessionType) error {
	total, duration := ExamYear1Items, ExamYear1Duration
	if tier == progress.TypeExamFinal {
		total, duration = ExamFinalItems, ExamFinalDuration
	} else if tier != progress.TypeExamYear1 {
		return fmt.Errorf("not an exam type: %q", tier)
	}

	items, err := c.gateway.BalancedExam(ctx, string(tier), total)
	if err != nil {
		return err
	}

	c.reset(tier, string(tier))
	c.questions = items
	c.remaining = duration
	c.phase = PhaseActive
	return nil
}

// reset clears per-session state and invalidates any outstanding timer.
func (c *Controller) reset(kind progress.SessionType, subject string) {
	c.epoch++
	c.kind = kind
	c.subject = subject
	c.cards = nil
	c.questions = nil
	c.position = 0
	c.correctCount = 0
	c.answers = make(map[int]int)
	c.remaining = 0
	c.result = nil
	c.phase = PhaseIdle
}

// Grade records a self-graded flashcard and advances. Past the last card
// the session completes.
func (c *Controller) Grade(correct bool) {
	if c.phase != PhaseActive || c.kind != progress.TypeFlashcard {
		return
	}
	if correct {
		c.correctCount++
	}
	c.position++
	if c.position >= len(c.cards) {
		c.Complete()
	}
}

// Select records the answer at the current position, overwriting any
// earlier pick. scoring.Unanswered clears it.
func (c *Controller) Select(optionIndex int) {
	if c.phase != PhaseActive || c.kind == progress.TypeFlashcard {
		return
	}
	if optionIndex == scoring.Unanswered {
		delete(c.answers, c.position)
		return
	}
	c.answers[c.position] = optionIndex
}

// Next moves forward one item, stopping at the last.
func (c *Controller) Next() {
	if c.phase == PhaseActive && c.position < c.itemCount()-1 {
		c.position++
	}
}

// Prev moves back one item, stopping at the first.
func (c *Controller) Prev() {
	if c.phase == PhaseActive && c.position > 0 {
		c.position--
	}
}

// Tick advances the exam countdown by one second. The epoch ties a tick to
// the session it was scheduled for: ticks from an abandoned or completed
// session are discarded. Returns true while the timer should keep running.
func (c *Controller) Tick(epoch int) bool {
	if epoch != c.epoch || c.phase != PhaseActive || !c.kind.IsExam() {
		return false
	}
	c.remaining -= time.Second
	if c.remaining <= 0 {
		c.remaining = 0
		c.Complete()
		return false
	}
	return true
}

// Complete finishes the session and builds its result. Idempotent: only
// the first call on an Active session does anything, so a duplicate submit
// and a stale timer tick cannot double-record.
func (c *Controller) Complete() *progress.TestResult {
	if c.phase != PhaseActive {
		return nil
	}
	c.phase = PhaseCompleted
	c.epoch++

	var res progress.TestResult
	if c.kind == progress.TypeFlashcard {
		res = scoring.ScoreFlashcards(c.subject, len(c.cards), c.correctCount)
	} else {
		res = scoring.ScoreQuiz(c.kind, c.subject, c.questions, c.answers)
	}
	c.result = &res
	return c.result
}

// Abandon discards an active session without recording anything.
func (c *Controller) Abandon() {
	c.epoch++
	c.phase = PhaseIdle
	c.result = nil
}

// BeginGeneration marks a generation request in flight. Returns false when
// one is already running, so the trigger stays disabled.
func (c *Controller) BeginGeneration() bool {
	if c.generating {
		return false
	}
	c.generating = true
	return true
}

// EndGeneration clears the in-flight flag.
func (c *Controller) EndGeneration() {
	c.generating = false
}

// Generating reports whether a generation request is in flight.
func (c *Controller) Generating() bool { return c.generating }

func (c *Controller) Phase() Phase                 { return c.phase }
func (c *Controller) Kind() progress.SessionType   { return c.kind }
func (c *Controller) Subject() string              { return c.subject }
func (c *Controller) Position() int                { return c.position }
func (c *Controller) CorrectCount() int            { return c.correctCount }
func (c *Controller) Remaining() time.Duration     { return c.remaining }
func (c *Controller) Epoch() int                   { return c.epoch }
func (c *Controller) Result() *progress.TestResult { return c.result }

// Total returns the item count of the running session.
func (c *Controller) Total() int { return c.itemCount() }

// CurrentCard returns the flashcard at the current position, nil outside an
// active flashcard session.
func (c *Controller) CurrentCard() *content.Flashcard {
	if c.phase != PhaseActive || c.kind != progress.TypeFlashcard || c.position >= len(c.cards) {
		return nil
	}
	return &c.cards[c.position]
}

// CurrentQuestion returns the question at the current position, nil outside
// an active quiz or exam session.
func (c *Controller) CurrentQuestion() *content.QuizQuestion {
	if c.phase != PhaseActive || c.kind == progress.TypeFlashcard || c.position >= len(c.questions) {
		return nil
	}
	return &c.questions[c.position]
}

// SelectedAt returns the recorded answer for an item position, or
// scoring.Unanswered.
func (c *Controller) SelectedAt(position int) int {
	if sel, ok := c.answers[position]; ok {
		return sel
	}
	return scoring.Unanswered
}

// Questions exposes the running paper for the review screen.
func (c *Controller) Questions() []content.QuizQuestion {
	return c.questions
}

func (c *Controller) itemCount() int {
	if c.kind == progress.TypeFlashcard {
		return len(c.cards)
	}
	return len(c.questions)
}

func shuffleCards(cards []content.Flashcard) {
	rand.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
}

func shuffleQuestions(questions []content.QuizQuestion) {
	rand.Shuffle(len(questions), func(i, j int) {
		questions[i], questions[j] = questions[j], questions[i]
	})
}
