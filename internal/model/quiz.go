package model

import "encoding/json"

// QuizExercise stores a quiz as it arrives from content authors: the question
// and answer payloads are kept raw because upstream content mixes shapes
// (bare strings, objects, letter codes, indices). They are resolved into the
// strict quiz.Question form once, at session start.
// swagger:model QuizExercise
type QuizExercise struct {
	BaseModel
	Title          string          `gorm:"size:255;not null" json:"title"`
	ExerciseType   string          `gorm:"size:50" json:"exerciseType"` // multiple_choice, true_false, short_answer, mixed
	Questions      json.RawMessage `gorm:"type:json" json:"questions"`
	CorrectAnswers json.RawMessage `gorm:"type:json" json:"correctAnswers"`
	Points         int             `gorm:"default:10" json:"points"`
	Hints          json.RawMessage `gorm:"type:json" json:"hints,omitempty"`
	Difficulty     string          `gorm:"size:20" json:"difficulty"`
	CourseCode     string          `gorm:"size:20;index" json:"courseCode"`
}

func (QuizExercise) TableName() string {
	return "quiz_exercises"
}
