package content

import "testing"

func card(id, subject string) Flashcard {
	return Flashcard{ID: id, Subject: subject, Question: "q-" + id, Concept: "c-" + id}
}

func question(id, subject string) QuizQuestion {
	return QuizQuestion{
		ID:           id,
		Subject:      subject,
		Question:     "q-" + id,
		Options:      []string{"a", "b", "c", "d", "e"},
		CorrectIndex: 0,
	}
}

func TestQueryBySubject(t *testing.T) {
	s := NewStore()
	s.AddFlashcards([]Flashcard{card("1", "Biology"), card("2", "Chemistry"), card("3", "Biology")})

	bio := s.Flashcards("Biology")
	if len(bio) != 2 {
		t.Fatalf("Flashcards(Biology) = %d items, want 2", len(bio))
	}
	if all := s.Flashcards("All"); len(all) != 3 {
		t.Errorf("Flashcards(All) = %d items, want 3", len(all))
	}
	if none := s.Flashcards("Zoology"); len(none) != 0 {
		t.Errorf("Flashcards(Zoology) = %d items, want 0", len(none))
	}
}

func TestReplaceForSubject(t *testing.T) {
	s := NewStore()
	s.AddFlashcards([]Flashcard{card("1", "Biology"), card("2", "Chemistry")})
	s.AddQuizQuestions([]QuizQuestion{question("1", "Biology"), question("2", "Chemistry")})

	s.ReplaceForSubject("Biology",
		[]Flashcard{card("9", "Biology")},
		[]QuizQuestion{question("8", "Biology"), question("9", "Biology")},
	)

	bio := s.Flashcards("Biology")
	if len(bio) != 1 || bio[0].ID != "9" {
		t.Errorf("after replace, Flashcards(Biology) = %v, want just card 9", bio)
	}
	if got := s.QuizQuestions("Biology"); len(got) != 2 {
		t.Errorf("after replace, QuizQuestions(Biology) = %d items, want 2", len(got))
	}
	// Other subjects untouched.
	if got := s.Flashcards("Chemistry"); len(got) != 1 || got[0].ID != "2" {
		t.Errorf("replace touched Chemistry cards: %v", got)
	}
	if got := s.QuizQuestions("Chemistry"); len(got) != 1 {
		t.Errorf("replace touched Chemistry questions: %v", got)
	}
}

func TestAllInsulatedFromLaterMutation(t *testing.T) {
	s := NewStore()
	s.AddFlashcards([]Flashcard{card("a", "Zoology"), card("b", "Biology")})
	s.AddQuizQuestions([]QuizQuestion{question("c", "Zoology")})

	cards, questions := s.All()
	s.ReplaceForSubject("Zoology", []Flashcard{card("x", "Zoology")}, nil)

	// ReplaceForSubject rewrites the live backing arrays; a captured
	// snapshot must not see that.
	if len(cards) != 2 || cards[0].ID != "a" || cards[1].ID != "b" {
		t.Errorf("captured cards mutated after replace: %v", cards)
	}
	if len(questions) != 1 || questions[0].ID != "c" {
		t.Errorf("captured questions mutated after replace: %v", questions)
	}
}

func TestConceptsAndQuestionTexts(t *testing.T) {
	s := NewStore()
	s.AddFlashcards([]Flashcard{card("1", "Biology"), card("2", "Chemistry")})
	s.AddQuizQuestions([]QuizQuestion{question("3", "Biology")})

	concepts := s.Concepts("Biology")
	if len(concepts) != 1 || concepts[0] != "c-1" {
		t.Errorf("Concepts(Biology) = %v, want [c-1]", concepts)
	}
	texts := s.QuestionTexts("Biology")
	if len(texts) != 1 || texts[0] != "q-3" {
		t.Errorf("QuestionTexts(Biology) = %v, want [q-3]", texts)
	}
}
