package quizgen

import "github.com/abonetti/vetprep/internal/llm"

// flashcardItemSchema is one card in a batch.
var flashcardItemSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"concept": map[string]any{
			"type":        "string",
			"description": "The single concept this card covers, e.g. 'Ruminant stomach compartments'",
		},
		"question": map[string]any{
			"type":        "string",
			"description": "One clear question about the concept",
		},
		"answer": map[string]any{
			"type":        "string",
			"description": "The complete answer to the question",
		},
		"explanation": map[string]any{
			"type":        "string",
			"description": "Optional extra context beyond the answer. Empty string if nothing to add.",
		},
		"difficulty": map[string]any{
			"type": "string",
			"enum": []any{"Easy", "Medium", "Hard"},
		},
	},
	"required":             []any{"concept", "question", "answer", "explanation", "difficulty"},
	"additionalProperties": false,
}

// FlashcardSchema validates a flashcard batch response.
var FlashcardSchema = &llm.Schema{
	Name:        "flashcard-batch",
	Description: "A batch of veterinary study flashcards",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"flashcards": map[string]any{
				"type":  "array",
				"items": flashcardItemSchema,
			},
		},
		"required":             []any{"flashcards"},
		"additionalProperties": false,
	},
}

// quizItemSchema is one five-option question. Exactly 5 options, one correct.
var quizItemSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"question": map[string]any{
			"type":        "string",
			"description": "The question text",
		},
		"options": map[string]any{
			"type":     "array",
			"items":    map[string]any{"type": "string"},
			"minItems": 5,
			"maxItems": 5,
		},
		"correct_index": map[string]any{
			"type":        "integer",
			"minimum":     0,
			"maximum":     4,
			"description": "Zero-based index of the correct option",
		},
		"explanation": map[string]any{
			"type":        "string",
			"description": "Why the correct option is right",
		},
		"difficulty": map[string]any{
			"type": "string",
			"enum": []any{"Easy", "Medium", "Hard"},
		},
	},
	"required":             []any{"question", "options", "correct_index", "explanation", "difficulty"},
	"additionalProperties": false,
}

// QuizSchema validates a single-subject quiz batch response.
var QuizSchema = &llm.Schema{
	Name:        "quiz-batch",
	Description: "A batch of five-option multiple-choice questions for one subject",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type":  "array",
				"items": quizItemSchema,
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}

// ExamSchema validates a multi-subject exam response. Identical to QuizSchema
// except each item is tagged with the subject it belongs to.
var ExamSchema = &llm.Schema{
	Name:        "exam-paper",
	Description: "A mock exam spanning multiple subjects with even coverage",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type":  "array",
				"items": examItemSchema(),
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}

func examItemSchema() map[string]any {
	item := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"subject": map[string]any{
				"type":        "string",
				"description": "The curriculum subject this question belongs to, exactly as listed in the prompt",
			},
		},
	}
	props := item["properties"].(map[string]any)
	for k, v := range quizItemSchema["properties"].(map[string]any) {
		props[k] = v
	}
	item["required"] = []any{"subject", "question", "options", "correct_index", "explanation", "difficulty"}
	item["additionalProperties"] = false
	return item
}
