package quiz

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// unwrapRaw handles payloads that arrive double-encoded: a JSON string whose
// contents are themselves JSON. Anything else passes through untouched.
func unwrapRaw(raw json.RawMessage) []byte {
	trimmed := strings.TrimSpace(string(raw))
	if strings.HasPrefix(trimmed, `"`) {
		var inner string
		if err := json.Unmarshal(raw, &inner); err == nil {
			return []byte(inner)
		}
	}
	return []byte(trimmed)
}

// ParseQuestions resolves a raw question payload into strict Question records.
// Each array element may be an object (prompt under "question" or "text"), or a
// bare string. Missing ids are synthesized as q-<index>; a missing type is
// inferred from the options and the exercise type. Malformed JSON yields an
// empty list, never an error: the caller treats that as "quiz not available".
func ParseQuestions(raw json.RawMessage, exerciseType string) []Question {
	if len(raw) == 0 {
		return []Question{}
	}

	var items []json.RawMessage
	if err := json.Unmarshal(unwrapRaw(raw), &items); err != nil {
		return []Question{}
	}

	questions := make([]Question, 0, len(items))
	for i, item := range items {
		questions = append(questions, parseQuestionItem(i, item, exerciseType))
	}
	return questions
}

type rawQuestion struct {
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Text     string   `json:"text"`
	Options  []string `json:"options"`
	Type     string   `json:"type"`
}

func parseQuestionItem(index int, item json.RawMessage, exerciseType string) Question {
	q := Question{ID: fmt.Sprintf("q-%d", index)}

	var prompt string
	if err := json.Unmarshal(item, &prompt); err == nil {
		q.Prompt = prompt
	} else {
		var obj rawQuestion
		if err := json.Unmarshal(item, &obj); err == nil {
			if obj.ID != "" {
				q.ID = obj.ID
			}
			q.Prompt = obj.Question
			if q.Prompt == "" {
				q.Prompt = obj.Text
			}
			q.Options = obj.Options
			q.Type = QuestionType(obj.Type)
		}
	}

	if q.Type == "" {
		switch {
		case exerciseType == string(TrueFalse):
			q.Type = TrueFalse
		case len(q.Options) > 0:
			q.Type = MultipleChoice
		default:
			q.Type = ShortAnswer
		}
	}

	if q.Type == TrueFalse && len(q.Options) == 0 {
		q.Options = TrueFalseOptions
	}
	if q.Type == ShortAnswer {
		q.Options = nil
	}

	return q
}

// ParseCorrectAnswers resolves a raw answer payload into one answer string per
// question. Elements may be strings, numbers, or objects carrying the answer
// under "answer" or "correct"; an object with neither falls back to its own
// textual form. Malformed JSON yields an empty list.
func ParseCorrectAnswers(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return []string{}
	}

	var items []json.RawMessage
	if err := json.Unmarshal(unwrapRaw(raw), &items); err != nil {
		return []string{}
	}

	answers := make([]string, 0, len(items))
	for _, item := range items {
		answers = append(answers, parseAnswerItem(item))
	}
	return answers
}

func parseAnswerItem(item json.RawMessage) string {
	var s string
	if err := json.Unmarshal(item, &s); err == nil {
		return s
	}

	var n float64
	if err := json.Unmarshal(item, &n); err == nil {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}

	var obj map[string]interface{}
	if err := json.Unmarshal(item, &obj); err == nil {
		if v, ok := obj["answer"]; ok {
			return stringify(v)
		}
		if v, ok := obj["correct"]; ok {
			return stringify(v)
		}
	}

	return strings.TrimSpace(string(item))
}

func stringify(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
