package curriculum

// Year identifies the academic year a subject belongs to.
type Year int

const (
	YearUnknown Year = 0
	YearOne     Year = 1
	YearTwo     Year = 2
)

// Reserved aggregate labels. They appear in session results but are not
// subjects themselves: no badges are ever awarded for them.
const (
	SubjectAll       = "All"
	SubjectExamYear1 = "Exam Year 1"
	SubjectExamFinal = "Exam Final"
)

// yearOneSubjects is the fixed first-year module list, in course order.
var yearOneSubjects = []string{
	"Zoology",
	"Animal Husbandry",
	"Chemistry",
	"Biology",
	"Workplace Safety",
	"Basic Nursing Procedures",
	"Anatomy and Physiology 1",
	"Anatomy and Physiology 2",
	"Equine Science",
	"Practice Management",
	"Exotic Animals",
	"Veterinary Legislation",
	"Complementary Medicine",
}

// yearTwoSubjects is the fixed second-year module list, in course order.
var yearTwoSubjects = []string{
	"General Pathology",
	"Pharmacology",
	"Medical Pathology",
	"Infectious and Parasitic Diseases",
	"Small and Large Animal Nutrition",
	"Advanced Nursing Procedures",
	"Wildlife Rescue Legislation",
	"Veterinary English",
}

// topicDetails gives the generator extra focus for modules whose name alone
// is too broad to prompt on.
var topicDetails = map[string]string{
	"Anatomy and Physiology 1": "Cytology and histology; integument and thermoregulation; musculoskeletal system (skeleton and muscles); endocrine system; central and peripheral nervous system; sense organs.",
	"Anatomy and Physiology 2": "Circulatory system; immune system; urinary system; respiratory system; digestive system; reproductive system.",
}

// badgeIcons maps each subject to its badge glyph.
var badgeIcons = map[string]string{
	"Zoology":                           "🦁",
	"Animal Husbandry":                  "🦴",
	"Chemistry":                         "🧪",
	"Biology":                           "🧬",
	"Workplace Safety":                  "🛡️",
	"Basic Nursing Procedures":          "🩹",
	"Anatomy and Physiology 1":          "🫀",
	"Anatomy and Physiology 2":          "🧠",
	"Equine Science":                    "🐎",
	"Practice Management":               "📂",
	"Exotic Animals":                    "🦎",
	"Veterinary Legislation":            "⚖️",
	"Complementary Medicine":            "🌿",
	"General Pathology":                 "🔬",
	"Pharmacology":                      "💊",
	"Medical Pathology":                 "🩺",
	"Infectious and Parasitic Diseases": "🦠",
	"Small and Large Animal Nutrition":  "🥣",
	"Advanced Nursing Procedures":       "💉",
	"Wildlife Rescue Legislation":       "🦅",
	"Veterinary English":                "🇬🇧",
}

// Subjects returns the fixed subject list for the given year.
// The returned slice must not be modified.
func Subjects(y Year) []string {
	switch y {
	case YearOne:
		return yearOneSubjects
	case YearTwo:
		return yearTwoSubjects
	default:
		return nil
	}
}

// AllSubjects returns every subject across both years, year one first.
func AllSubjects() []string {
	out := make([]string, 0, len(yearOneSubjects)+len(yearTwoSubjects))
	out = append(out, yearOneSubjects...)
	out = append(out, yearTwoSubjects...)
	return out
}

// YearOf reports which year's list contains the subject,
// or YearUnknown for aggregates and unrecognized names.
func YearOf(subject string) Year {
	for _, s := range yearOneSubjects {
		if s == subject {
			return YearOne
		}
	}
	for _, s := range yearTwoSubjects {
		if s == subject {
			return YearTwo
		}
	}
	return YearUnknown
}

// IsSubject reports whether name is a real taxonomy subject (not an
// aggregate label).
func IsSubject(name string) bool {
	return YearOf(name) != YearUnknown
}

// IsAggregate reports whether the label is one of the reserved
// pseudo-subjects.
func IsAggregate(label string) bool {
	return label == SubjectAll || label == SubjectExamYear1 || label == SubjectExamFinal
}

// TopicHint returns the detailed sub-topic description used to shape
// generation prompts. Empty for subjects without one.
func TopicHint(subject string) string {
	return topicDetails[subject]
}

// Icon returns the badge glyph for a subject. Falls back to a trophy for
// names outside the taxonomy.
func Icon(subject string) string {
	if icon, ok := badgeIcons[subject]; ok {
		return icon
	}
	return "🏆"
}
