package quiz

import (
	"strconv"
	"strings"
)

// Submission is a user's answer to one question: an option index for choice
// questions, free text otherwise.
type Submission struct {
	Index *int   `json:"optionIndex,omitempty"`
	Text  string `json:"text,omitempty"`
}

// CheckAnswer decides whether a submission matches the stored correct answer.
// The content store mixes answer representations across exercises (numeric
// indices, zero-based option letters, literal option text), so comparison runs
// through a fixed precedence; the first matching rule wins:
//
//  1. stored answer is the submitted option index
//  2. stored answer is a single letter, read as a zero-based option index
//  3. option text at the submitted index equals the stored answer
//  4. the submitted index, stringified, equals the stored answer
//  5. free text (no options): submission text equals the stored answer
//
// All text comparison is lowercased and trimmed. Anything unmatched is wrong.
func CheckAnswer(q Question, correct string, sub Submission) bool {
	normCorrect := strings.ToLower(strings.TrimSpace(correct))

	if sub.Index != nil && len(q.Options) > 0 {
		idx := *sub.Index

		if n, err := strconv.Atoi(strings.TrimSpace(correct)); err == nil && n == idx {
			return true
		}

		if len(normCorrect) == 1 && normCorrect[0] >= 'a' && normCorrect[0] <= 'z' {
			if int(normCorrect[0]-'a') == idx {
				return true
			}
			// A stored letter is an index, not text; fall through only to the
			// literal option-text rules below.
		}

		if idx >= 0 && idx < len(q.Options) &&
			strings.ToLower(strings.TrimSpace(q.Options[idx])) == normCorrect {
			return true
		}

		if strconv.Itoa(idx) == normCorrect {
			return true
		}

		return false
	}

	if len(q.Options) == 0 {
		submitted := strings.ToLower(strings.TrimSpace(sub.Text))
		return submitted != "" && submitted == normCorrect
	}

	return false
}

// Score converts a correct count into awarded points, proportional to the
// exercise's points budget and rounded half away from zero.
func Score(correct, total, budget int) int {
	if total <= 0 {
		return 0
	}
	return int(float64(correct)/float64(total)*float64(budget) + 0.5)
}
