package quizgen

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/abonetti/vetprep/internal/content"
	"github.com/abonetti/vetprep/internal/curriculum"
	"github.com/abonetti/vetprep/internal/llm"
)

// LLMGateway implements Gateway on top of an llm.Provider.
type LLMGateway struct {
	provider llm.Provider
	config   Config
}

// New creates an LLMGateway.
func New(provider llm.Provider, cfg Config) *LLMGateway {
	return &LLMGateway{provider: provider, config: cfg}
}

// flashcardOutput is the raw response shape before mapping.
type flashcardOutput struct {
	Flashcards []struct {
		Concept     string `json:"concept"`
		Question    string `json:"question"`
		Answer      string `json:"answer"`
		Explanation string `json:"explanation"`
		Difficulty  string `json:"difficulty"`
	} `json:"flashcards"`
}

// quizOutput is the raw response shape before mapping. Subject is only
// populated for exam papers.
type quizOutput struct {
	Questions []struct {
		Subject      string   `json:"subject"`
		Question     string   `json:"question"`
		Options      []string `json:"options"`
		CorrectIndex int      `json:"correct_index"`
		Explanation  string   `json:"explanation"`
		Difficulty   string   `json:"difficulty"`
	} `json:"questions"`
}

func (g *LLMGateway) Flashcards(ctx context.Context, subject, topicHint string, exclude []string, count int) ([]content.Flashcard, error) {
	ctx = llm.WithPurpose(ctx, "flashcards")

	resp, err := g.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Prompt:      buildFlashcardPrompt(subject, topicHint, exclude, count),
		Schema:      FlashcardSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	})
	if err != nil {
		return nil, &GenerationError{Op: "flashcards", Err: err}
	}

	var raw flashcardOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, &GenerationError{Op: "flashcards", Err: fmt.Errorf("parse response: %w", err)}
	}
	if len(raw.Flashcards) == 0 {
		return nil, &GenerationError{Op: "flashcards", Err: fmt.Errorf("empty batch")}
	}

	now := time.Now()
	cards := make([]content.Flashcard, 0, len(raw.Flashcards))
	for i, f := range raw.Flashcards {
		if f.Concept == "" || f.Question == "" || f.Answer == "" {
			return nil, &GenerationError{Op: "flashcards", Err: fmt.Errorf("item %d has empty fields", i)}
		}
		cards = append(cards, content.Flashcard{
			ID:          uuid.NewString(),
			Subject:     subject,
			Concept:     f.Concept,
			Question:    f.Question,
			Answer:      f.Answer,
			Explanation: f.Explanation,
			Difficulty:  content.Difficulty(f.Difficulty),
			CreatedAt:   now,
		})
	}
	if len(cards) > count {
		cards = cards[:count]
	}
	return cards, nil
}

func (g *LLMGateway) QuizQuestions(ctx context.Context, subject, topicHint string, exclude []string, count int) ([]content.QuizQuestion, error) {
	ctx = llm.WithPurpose(ctx, "quiz")

	resp, err := g.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Prompt:      buildQuizPrompt(subject, topicHint, exclude, count),
		Schema:      QuizSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	})
	if err != nil {
		return nil, &GenerationError{Op: "quiz", Err: err}
	}

	questions, err := mapQuestions(resp.Content, subject)
	if err != nil {
		return nil, &GenerationError{Op: "quiz", Err: err}
	}
	if len(questions) > count {
		questions = questions[:count]
	}
	return questions, nil
}

func (g *LLMGateway) BalancedExam(ctx context.Context, tier string, total int) ([]content.QuizQuestion, error) {
	ctx = llm.WithPurpose(ctx, "exam")

	subjects, err := examSubjects(tier)
	if err != nil {
		return nil, &GenerationError{Op: "exam", Err: err}
	}

	resp, err := g.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Prompt:      buildExamPrompt(subjects, total),
		Schema:      ExamSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	})
	if err != nil {
		return nil, &GenerationError{Op: "exam", Err: err}
	}

	// Subject comes from the model here, so items tagged with something
	// outside the taxonomy are dropped rather than failing the paper.
	questions, err := mapQuestions(resp.Content, "")
	if err != nil {
		return nil, &GenerationError{Op: "exam", Err: err}
	}
	kept := questions[:0]
	for _, q := range questions {
		if curriculum.IsSubject(q.Subject) {
			kept = append(kept, q)
		}
	}
	questions = kept

	if len(questions) == 0 {
		return nil, &GenerationError{Op: "exam", Err: fmt.Errorf("no usable questions in paper")}
	}
	if len(questions) > total {
		questions = questions[:total]
	}
	return questions, nil
}

// mapQuestions converts a validated quiz/exam payload to entities. When
// subject is non-empty it overrides whatever the items carry. Structural
// violations fail the whole batch.
func mapQuestions(raw json.RawMessage, subject string) ([]content.QuizQuestion, error) {
	var out quizOutput
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	if len(out.Questions) == 0 {
		return nil, fmt.Errorf("empty batch")
	}

	questions := make([]content.QuizQuestion, 0, len(out.Questions))
	for i, q := range out.Questions {
		if len(q.Options) != 5 {
			return nil, fmt.Errorf("item %d has %d options, want 5", i, len(q.Options))
		}
		if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
			return nil, fmt.Errorf("item %d has correct index %d out of range", i, q.CorrectIndex)
		}
		if q.Question == "" {
			return nil, fmt.Errorf("item %d has empty question", i)
		}
		subj := subject
		if subj == "" {
			subj = q.Subject
		}
		questions = append(questions, content.QuizQuestion{
			ID:           uuid.NewString(),
			Subject:      subj,
			Question:     q.Question,
			Options:      q.Options,
			CorrectIndex: q.CorrectIndex,
			Explanation:  q.Explanation,
			Difficulty:   content.Difficulty(q.Difficulty),
		})
	}
	return questions, nil
}

// examSubjects resolves a tier label to its subject coverage.
func examSubjects(tier string) ([]string, error) {
	switch tier {
	case curriculum.SubjectExamYear1:
		return curriculum.Subjects(curriculum.YearOne), nil
	case curriculum.SubjectExamFinal:
		return curriculum.AllSubjects(), nil
	default:
		return nil, fmt.Errorf("unknown exam tier %q", tier)
	}
}
