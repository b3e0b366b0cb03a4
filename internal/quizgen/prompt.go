package quizgen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are an instructor preparing study material for veterinary technician students.

Rules:
- Content must be factually accurate and at veterinary-technician exam level.
- Write in clear, professional English. No markdown, no numbered prefixes inside fields.
- Every item must be self-contained: no references to "the previous question" or external figures.
- Multiple-choice questions have exactly 5 options with exactly one correct answer. Distractors must be plausible mistakes, not filler.
- Explanations state why the correct answer is right in two or three sentences.
- Never repeat, rephrase, or closely paraphrase anything in the "do not repeat" list.`

// buildFlashcardPrompt asks for a batch of flashcards for one subject.
func buildFlashcardPrompt(subject, topicHint string, exclude []string, count int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate %d flashcards for the subject: %s\n", count, subject)
	if topicHint != "" {
		fmt.Fprintf(&b, "Focus areas: %s\n", topicHint)
	}
	b.WriteString("Each flashcard names the concept it covers, asks one question about it, and answers it.\n")
	b.WriteString("\nDo not repeat any of these concepts or questions:\n")
	b.WriteString(formatExclusions(exclude))
	return b.String()
}

// buildQuizPrompt asks for a batch of quiz questions for one subject.
func buildQuizPrompt(subject, topicHint string, exclude []string, count int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate %d multiple-choice questions for the subject: %s\n", count, subject)
	if topicHint != "" {
		fmt.Fprintf(&b, "Focus areas: %s\n", topicHint)
	}
	b.WriteString("\nDo not repeat any of these questions:\n")
	b.WriteString(formatExclusions(exclude))
	return b.String()
}

// buildExamPrompt asks for a full exam paper spanning several subjects.
func buildExamPrompt(subjects []string, total int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate a mock exam of %d multiple-choice questions.\n", total)
	b.WriteString("Cover all of these subjects with roughly the same number of questions each:\n")
	for _, s := range subjects {
		fmt.Fprintf(&b, "- %s\n", s)
	}
	b.WriteString("Tag every question with the subject it belongs to, exactly as written above.\n")
	b.WriteString("Mix difficulties the way a real exam would.\n")
	return b.String()
}

// formatExclusions renders the exclusion tail as a numbered list, "None"
// when empty.
func formatExclusions(exclude []string) string {
	if len(exclude) == 0 {
		return "None"
	}
	var b strings.Builder
	for i, e := range exclude {
		fmt.Fprintf(&b, "%d. %s\n", i+1, e)
	}
	return strings.TrimRight(b.String(), "\n")
}
