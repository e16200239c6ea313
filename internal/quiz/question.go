// Package quiz resolves the loosely shaped question and answer payloads the
// content store delivers into one strict form, and decides answer correctness
// against it. All shape tolerance lives at the parse boundary; everything past
// ParseQuestions/ParseCorrectAnswers works against Question and plain strings.
package quiz

// QuestionType tags how a question is answered.
type QuestionType string

const (
	MultipleChoice QuestionType = "multiple_choice"
	TrueFalse      QuestionType = "true_false"
	ShortAnswer    QuestionType = "short_answer"
)

// Question is the strict internal question shape. For MultipleChoice and
// TrueFalse, Options is non-empty; for ShortAnswer it is nil.
type Question struct {
	ID      string       `json:"id"`
	Prompt  string       `json:"prompt"`
	Options []string     `json:"options,omitempty"`
	Type    QuestionType `json:"type"`
}

// TrueFalseOptions is the default option set for true/false questions whose
// payload carries none.
var TrueFalseOptions = []string{"Sant", "Falskt"}
