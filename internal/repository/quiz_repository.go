package repository

import (
	"context"
	"plugga_backend/internal/model"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

func (r *QuizRepository) FindExerciseByID(ctx context.Context, id uint) (*model.QuizExercise, error) {
	var exercise model.QuizExercise
	err := r.DB.WithContext(ctx).First(&exercise, id).Error
	if err != nil {
		return nil, err
	}
	return &exercise, nil
}

func (r *QuizRepository) ListByCourse(ctx context.Context, courseCode string) ([]model.QuizExercise, error) {
	var exercises []model.QuizExercise
	err := r.DB.WithContext(ctx).
		Where("course_code = ?", courseCode).
		Order("id").
		Find(&exercises).Error
	return exercises, err
}
