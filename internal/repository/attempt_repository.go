package repository

import (
	"context"
	"plugga_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type AttemptRepository struct {
	DB *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) *AttemptRepository {
	return &AttemptRepository{DB: db}
}

func (r *AttemptRepository) Create(ctx context.Context, attempt *model.HogskoleprovetAttempt) error {
	return r.DB.WithContext(ctx).Create(attempt).Error
}

func (r *AttemptRepository) FindByID(ctx context.Context, id string) (*model.HogskoleprovetAttempt, error) {
	var attempt model.HogskoleprovetAttempt
	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&attempt).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

// Finalize writes the aggregate totals onto an open attempt. Attempts are
// append-only; a finalized attempt is never reopened or updated again.
func (r *AttemptRepository) Finalize(ctx context.Context, id string, completedAt time.Time, attempted, correct, minutes int, perQuestionTimes string) error {
	return r.DB.WithContext(ctx).Model(&model.HogskoleprovetAttempt{}).
		Where("id = ? AND completed_at IS NULL", id).
		Updates(map[string]interface{}{
			"completed_at":        completedAt,
			"questions_attempted": attempted,
			"correct_count":       correct,
			"minutes_spent":       minutes,
			"per_question_times":  perQuestionTimes,
		}).Error
}

func (r *AttemptRepository) ListByUser(ctx context.Context, userID uint, limit int) ([]model.HogskoleprovetAttempt, error) {
	var attempts []model.HogskoleprovetAttempt
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("started_at DESC").
		Limit(limit).
		Find(&attempts).Error
	return attempts, err
}

func (r *AttemptRepository) ListQuestionsBySection(ctx context.Context, section string) ([]model.HogskoleprovetQuestion, error) {
	var questions []model.HogskoleprovetQuestion
	err := r.DB.WithContext(ctx).
		Where("section = ?", section).
		Order("id").
		Find(&questions).Error
	return questions, err
}

func (r *AttemptRepository) FindQuestionByID(ctx context.Context, id uint) (*model.HogskoleprovetQuestion, error) {
	var q model.HogskoleprovetQuestion
	err := r.DB.WithContext(ctx).First(&q, id).Error
	if err != nil {
		return nil, err
	}
	return &q, nil
}
