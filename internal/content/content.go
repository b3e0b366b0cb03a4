package content

import "time"

// Difficulty is the generator's self-assessed difficulty of an item.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Flashcard is a single question/answer study card. Immutable once created;
// removed only by a subject-scoped replace.
type Flashcard struct {
	ID          string     `json:"id"`
	Subject     string     `json:"subject"`
	Concept     string     `json:"concept"`
	Question    string     `json:"question"`
	Answer      string     `json:"answer"`
	Explanation string     `json:"explanation,omitempty"`
	Difficulty  Difficulty `json:"difficulty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// QuizQuestion is a five-option multiple-choice item.
// Invariant: 0 <= CorrectIndex < len(Options).
type QuizQuestion struct {
	ID           string     `json:"id"`
	Subject      string     `json:"subject"`
	Question     string     `json:"question"`
	Options      []string   `json:"options"`
	CorrectIndex int        `json:"correctIndex"`
	Explanation  string     `json:"explanation"`
	Difficulty   Difficulty `json:"difficulty"`
}
