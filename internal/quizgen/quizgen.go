// Package quizgen turns LLM output into study content. It owns the prompts,
// the response schemas, and the mapping from validated JSON to flashcard and
// quiz entities. Nothing here touches the stores: callers decide what to do
// with a generated batch.
package quizgen

import (
	"context"
	"fmt"

	"github.com/abonetti/vetprep/internal/content"
)

// Gateway produces study content for a subject.
type Gateway interface {
	// Flashcards generates count flashcards for the subject, avoiding the
	// concepts listed in exclude.
	Flashcards(ctx context.Context, subject, topicHint string, exclude []string, count int) ([]content.Flashcard, error)

	// QuizQuestions generates count five-option questions for the subject,
	// avoiding the question texts listed in exclude.
	QuizQuestions(ctx context.Context, subject, topicHint string, exclude []string, count int) ([]content.QuizQuestion, error)

	// BalancedExam generates a full exam paper for a tier label ("Exam
	// Year 1" or "Exam Final") with roughly even subject coverage. Each
	// returned question carries the subject the model assigned it.
	BalancedExam(ctx context.Context, tier string, total int) ([]content.QuizQuestion, error)
}

// GenerationError wraps any failure to produce a usable batch: missing
// credentials, an unreachable provider, or malformed content. The operation
// is always safe to retry because no state changed.
type GenerationError struct {
	Op  string // "flashcards", "quiz", "exam"
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generate %s: %v", e.Op, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// Config holds generation parameters.
type Config struct {
	// MaxTokens caps a single response. Exams are large (100 items), so
	// this defaults high.
	MaxTokens int

	// Temperature for generation. Some variety is wanted between batches.
	Temperature float64

	// MaxExclusions bounds the exclusion tail embedded in prompts.
	MaxExclusions int
}

// DefaultConfig returns generation defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:     16384,
		Temperature:   0.7,
		MaxExclusions: 50,
	}
}
