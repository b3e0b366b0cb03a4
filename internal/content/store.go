package content

import "github.com/abonetti/vetprep/internal/curriculum"

// Store holds the generated flashcard and quiz-question collections.
// It is a plain in-memory container: persistence is a post-mutation effect
// owned by the composition root, and all mutation happens on the UI event
// loop, so no locking is needed.
type Store struct {
	flashcards []Flashcard
	questions  []QuizQuestion
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{}
}

// Load replaces both collections wholesale. Used at startup and on cloud
// restore.
func (s *Store) Load(cards []Flashcard, questions []QuizQuestion) {
	s.flashcards = cards
	s.questions = questions
}

// AddFlashcards appends cards to the collection.
func (s *Store) AddFlashcards(cards []Flashcard) {
	s.flashcards = append(s.flashcards, cards...)
}

// AddQuizQuestions appends questions to the collection.
func (s *Store) AddQuizQuestions(questions []QuizQuestion) {
	s.questions = append(s.questions, questions...)
}

// ReplaceForSubject removes every stored item of the given subject and
// appends the replacements. Regenerating a module goes through here so
// stale content does not pile up as near-duplicates.
func (s *Store) ReplaceForSubject(subject string, cards []Flashcard, questions []QuizQuestion) {
	kept := s.flashcards[:0]
	for _, c := range s.flashcards {
		if c.Subject != subject {
			kept = append(kept, c)
		}
	}
	s.flashcards = append(kept, cards...)

	keptQ := s.questions[:0]
	for _, q := range s.questions {
		if q.Subject != subject {
			keptQ = append(keptQ, q)
		}
	}
	s.questions = append(keptQ, questions...)
}

// Flashcards returns the cards for a subject, or every card for the
// aggregate "All" label.
func (s *Store) Flashcards(subject string) []Flashcard {
	if subject == curriculum.SubjectAll {
		out := make([]Flashcard, len(s.flashcards))
		copy(out, s.flashcards)
		return out
	}
	var out []Flashcard
	for _, c := range s.flashcards {
		if c.Subject == subject {
			out = append(out, c)
		}
	}
	return out
}

// QuizQuestions returns the questions for a subject, or every question for
// the aggregate "All" label.
func (s *Store) QuizQuestions(subject string) []QuizQuestion {
	if subject == curriculum.SubjectAll {
		out := make([]QuizQuestion, len(s.questions))
		copy(out, s.questions)
		return out
	}
	var out []QuizQuestion
	for _, q := range s.questions {
		if q.Subject == subject {
			out = append(out, q)
		}
	}
	return out
}

// Concepts returns the concept strings of every stored card for a subject.
// Fed into the generator's exclusion list.
func (s *Store) Concepts(subject string) []string {
	var out []string
	for _, c := range s.flashcards {
		if c.Subject == subject {
			out = append(out, c.Concept)
		}
	}
	return out
}

// QuestionTexts returns the question strings of every stored quiz item for
// a subject. Fed into the generator's exclusion list.
func (s *Store) QuestionTexts(subject string) []string {
	var out []string
	for _, q := range s.questions {
		if q.Subject == subject {
			out = append(out, q.Question)
		}
	}
	return out
}

// All returns copies of both collections for snapshotting. Snapshots are
// marshaled off the event loop, so they must not alias the live slices that
// ReplaceForSubject rewrites in place.
func (s *Store) All() ([]Flashcard, []QuizQuestion) {
	cards := make([]Flashcard, len(s.flashcards))
	copy(cards, s.flashcards)
	questions := make([]QuizQuestion, len(s.questions))
	copy(questions, s.questions)
	return cards, questions
}
