package model

import (
	"encoding/json"
	"time"
)

// Högskoleprovet section codes.
const (
	SectionORD = "ORD" // vocabulary
	SectionLAS = "LÄS" // reading comprehension
	SectionMEK = "MEK" // sentence completion
	SectionXYZ = "XYZ" // mathematical problem solving
	SectionKVA = "KVA" // quantitative comparisons
	SectionNOG = "NOG" // data sufficiency
	SectionDTK = "DTK" // diagrams, tables and maps
	SectionELF = "ELF" // English reading comprehension
)

// swagger:model HogskoleprovetQuestion
type HogskoleprovetQuestion struct {
	BaseModel
	Section       string          `gorm:"size:10;index;not null" json:"section"`
	Prompt        string          `gorm:"type:text;not null" json:"prompt"`
	Options       json.RawMessage `gorm:"type:json" json:"options"` // JSON: []string, each prefixed with its option id ("A) ...")
	CorrectOption string          `gorm:"size:5;not null" json:"-"` // option id, e.g. "A"
}

func (HogskoleprovetQuestion) TableName() string {
	return "hogskoleprovet_questions"
}

// HogskoleprovetAttempt is append-only: opened at practice-session start and
// finalized exactly once with aggregate totals.
// swagger:model HogskoleprovetAttempt
type HogskoleprovetAttempt struct {
	UUIDBase
	UserID             uint       `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	Section            string     `gorm:"size:10;not null" json:"section"`
	StartedAt          time.Time  `json:"startedAt"`
	CompletedAt        *time.Time `json:"completedAt,omitempty"`
	QuestionsAttempted int        `gorm:"default:0" json:"questionsAttempted"`
	CorrectCount       int        `gorm:"default:0" json:"correctCount"`
	MinutesSpent       int        `gorm:"default:0" json:"minutesSpent"`
	PerQuestionTimes   string     `gorm:"type:json" json:"perQuestionTimes"` // analytics only, JSON []int of ms
}

func (HogskoleprovetAttempt) TableName() string {
	return "hogskoleprovet_attempts"
}
