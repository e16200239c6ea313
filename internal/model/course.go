package model

// Course is a catalog entry, seeded from the static program catalog at migration.
// swagger:model Course
type Course struct {
	BaseModel
	Code        string `gorm:"size:20;uniqueIndex;not null" json:"code"`
	Name        string `gorm:"size:255;not null" json:"name"`
	Subject     string `gorm:"size:100" json:"subject"`
	Points      int    `gorm:"default:100" json:"points"` // gymnasiepoäng
	Description string `gorm:"type:text" json:"description"`
}

func (Course) TableName() string {
	return "courses"
}

// Enrollment pairs a user with a course code. Membership is soft-deleted via
// Active only; at most one active row exists per (user, code) at a time.
// swagger:model Enrollment
type Enrollment struct {
	BaseModel
	UserID     uint    `gorm:"uniqueIndex:idx_user_course;type:bigint unsigned;not null" json:"userId"`
	CourseCode string  `gorm:"uniqueIndex:idx_user_course;size:20;not null" json:"courseCode"`
	Active     bool    `gorm:"default:true;index" json:"active"`
	Progress   float64 `gorm:"default:0" json:"progress"` // percent, 0-100
}

func (Enrollment) TableName() string {
	return "enrollments"
}

// CourseView is the course card shape returned to clients: an active enrollment
// joined with its catalog entry, plus display attributes assigned by position.
type CourseView struct {
	Code     string  `json:"code"`
	Name     string  `json:"name"`
	Subject  string  `json:"subject"`
	Progress float64 `json:"progress"`
	Color    string  `json:"color"`
	Icon     string  `json:"icon"`
}
