package repository

import (
	"context"
	"plugga_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ActiveEnrollment is an active enrollment joined with its catalog entry.
type ActiveEnrollment struct {
	CourseCode string  `json:"courseCode"`
	Name       string  `json:"name"`
	Subject    string  `json:"subject"`
	Progress   float64 `json:"progress"`
}

type EnrollmentRepository struct {
	DB *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{DB: db}
}

func (r *EnrollmentRepository) ListActiveWithCourses(ctx context.Context, userID uint) ([]ActiveEnrollment, error) {
	var rows []ActiveEnrollment
	err := r.DB.WithContext(ctx).Table("enrollments").
		Select("enrollments.course_code, courses.name, courses.subject, enrollments.progress").
		Joins("JOIN courses ON courses.code = enrollments.course_code").
		Where("enrollments.user_id = ? AND enrollments.active = ? AND enrollments.deleted_at IS NULL", userID, true).
		Order("enrollments.id").
		Scan(&rows).Error
	return rows, err
}

// CountActive counts active enrollments straight from the store, bypassing
// the cached course view. The auto-generation guard uses it to tell an empty
// course set apart from a degraded read.
func (r *EnrollmentRepository) CountActive(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Enrollment{}).
		Where("user_id = ? AND active = ?", userID, true).
		Count(&count).Error
	return count, err
}

// ReplaceActive deactivates every enrollment the user has, then upserts the
// new set as active at zero progress, all in one transaction. Rows for codes
// outside the new set are kept, inactive; nothing is physically removed.
func (r *EnrollmentRepository) ReplaceActive(ctx context.Context, userID uint, codes []string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Enrollment{}).
			Where("user_id = ?", userID).
			Update("active", false).Error; err != nil {
			return err
		}

		for _, code := range codes {
			e := model.Enrollment{
				UserID:     userID,
				CourseCode: code,
				Active:     true,
				Progress:   0,
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_code"}},
				DoUpdates: clause.AssignmentColumns([]string{"active", "progress", "updated_at"}),
			}).Create(&e).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// UpdateProgress writes a validated percentage onto the active enrollment.
func (r *EnrollmentRepository) UpdateProgress(ctx context.Context, userID uint, code string, percent float64) error {
	res := r.DB.WithContext(ctx).Model(&model.Enrollment{}).
		Where("user_id = ? AND course_code = ? AND active = ?", userID, code, true).
		Update("progress", percent)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
