package model

import "encoding/json"

// UserProfile holds the study profile a user fills in during onboarding.
// One row per user, upserted whenever program, year or course selection changes.
// Rows are never hard-deleted; a reset only clears caches and the onboarding flag.
// swagger:model UserProfile
type UserProfile struct {
	BaseModel
	UserID          uint            `gorm:"uniqueIndex;type:bigint unsigned;not null" json:"userId"`
	Institution     string          `gorm:"size:255" json:"institution"`
	Program         string          `gorm:"size:255" json:"program"`
	ProgramID       string          `gorm:"size:10" json:"programId"` // derived from Program via the static catalog table
	Year            int             `gorm:"default:0" json:"year"`
	SelectedCourses json.RawMessage `gorm:"type:json" json:"selectedCourses"` // JSON: []string of course codes
	Onboarded       bool            `gorm:"default:false" json:"onboarded"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}

// SelectedCourseCodes decodes the stored selection. A missing or malformed
// selection is treated as no selection.
func (p *UserProfile) SelectedCourseCodes() []string {
	if len(p.SelectedCourses) == 0 {
		return nil
	}
	var codes []string
	if err := json.Unmarshal(p.SelectedCourses, &codes); err != nil {
		return nil
	}
	return codes
}
