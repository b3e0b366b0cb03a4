package curriculum

import "testing"

func TestSubjectCounts(t *testing.T) {
	if got := len(Subjects(YearOne)); got != 13 {
		t.Errorf("year one subjects = %d, want 13", got)
	}
	if got := len(Subjects(YearTwo)); got != 8 {
		t.Errorf("year two subjects = %d, want 8", got)
	}
	if got := len(AllSubjects()); got != 21 {
		t.Errorf("all subjects = %d, want 21", got)
	}
}

func TestYearOf(t *testing.T) {
	tests := []struct {
		subject string
		want    Year
	}{
		{"Zoology", YearOne},
		{"Anatomy and Physiology 2", YearOne},
		{"Pharmacology", YearTwo},
		{"Veterinary English", YearTwo},
		{"All", YearUnknown},
		{"Exam Year 1", YearUnknown},
		{"Astrophysics", YearUnknown},
	}
	for _, tt := range tests {
		if got := YearOf(tt.subject); got != tt.want {
			t.Errorf("YearOf(%q) = %d, want %d", tt.subject, got, tt.want)
		}
	}
}

func TestIsAggregate(t *testing.T) {
	for _, label := range []string{SubjectAll, SubjectExamYear1, SubjectExamFinal} {
		if !IsAggregate(label) {
			t.Errorf("IsAggregate(%q) = false, want true", label)
		}
		if IsSubject(label) {
			t.Errorf("IsSubject(%q) = true, want false", label)
		}
	}
	if IsAggregate("Biology") {
		t.Error("IsAggregate(Biology) = true, want false")
	}
}

func TestEverySubjectHasAnIcon(t *testing.T) {
	for _, s := range AllSubjects() {
		if Icon(s) == "🏆" {
			t.Errorf("subject %q is missing a badge icon", s)
		}
	}
}

func TestTopicHint(t *testing.T) {
	if TopicHint("Anatomy and Physiology 1") == "" {
		t.Error("expected a topic hint for Anatomy and Physiology 1")
	}
	if TopicHint("Zoology") != "" {
		t.Error("expected no topic hint for Zoology")
	}
}
