package repository

import (
	"context"
	"plugga_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProfileRepository struct {
	DB *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{DB: db}
}

func (r *ProfileRepository) FindByUserID(ctx context.Context, userID uint) (*model.UserProfile, error) {
	var profile model.UserProfile
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Upsert inserts the profile or updates the existing row for the same user.
// Last write wins; there is no optimistic-concurrency check.
func (r *ProfileRepository) Upsert(ctx context.Context, profile *model.UserProfile) error {
	return r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"institution", "program", "program_id", "year", "selected_courses", "onboarded", "updated_at",
		}),
	}).Create(profile).Error
}

// ClearOnboarding resets the onboarding flag; the profile row itself survives.
func (r *ProfileRepository) ClearOnboarding(ctx context.Context, userID uint) error {
	return r.DB.WithContext(ctx).Model(&model.UserProfile{}).
		Where("user_id = ?", userID).
		Update("onboarded", false).
		Error
}
