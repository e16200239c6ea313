package service

import (
	"context"
	"errors"
	"fmt"
	"plugga_backend/internal/model"
	"plugga_backend/internal/util"
	"plugga_backend/pkg/logger"
	"plugga_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CourseService owns per-course study progress: validated writes to the
// record store mirrored into the per-user progress cache blob.
type CourseService struct {
	Enrollments EnrollmentStore
	Quizzes     QuizStore
	Cache       Cache
}

func NewCourseService(enrollments EnrollmentStore, quizzes QuizStore, cache Cache) *CourseService {
	return &CourseService{Enrollments: enrollments, Quizzes: quizzes, Cache: cache}
}

func progressKey(userID uint) string {
	return fmt.Sprintf("%s%d", util.CacheProgressPrefix, userID)
}

// UpdateProgress validates and persists a progress percentage for an active
// enrollment. Invalid input is rejected before any mutation; a missing active
// enrollment is a caller error, not a soft failure.
func (s *CourseService) UpdateProgress(ctx context.Context, userID uint, code string, raw string) (float64, error) {
	percent, err := util.ParsePercent(raw)
	if err != nil {
		return 0, err
	}

	if err := s.Enrollments.UpdateProgress(ctx, userID, code, percent); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, util.ErrEnrollmentNotFound
		}
		return 0, err
	}

	s.mirrorProgress(ctx, userID, code, percent)
	return percent, nil
}

// mirrorProgress folds the new value into the cached progress map. Cache
// trouble is logged, never surfaced; the record store already has the write.
func (s *CourseService) mirrorProgress(ctx context.Context, userID uint, code string, percent float64) {
	progress := make(map[string]float64)
	if err := s.Cache.GetJSON(ctx, progressKey(userID), &progress); err != nil {
		progress = map[string]float64{}
	}
	progress[code] = percent

	if err := s.Cache.SetJSON(ctx, progressKey(userID), progress); err != nil {
		logger.Log.Warn("progress cache mirror failed", zap.Uint("userId", userID), zap.Error(err))
	}
}

// GetProgress reads the user's per-course progress, falling back to the cached
// map when the record store is unreachable.
func (s *CourseService) GetProgress(ctx context.Context, userID uint) map[string]float64 {
	rctx, cancel := context.WithTimeout(ctx, util.RemoteTimeout)
	defer cancel()

	rows, err := s.Enrollments.ListActiveWithCourses(rctx, userID)
	if err != nil {
		logger.Log.Warn("progress load failed, serving cache", zap.Uint("userId", userID), zap.Error(err))
		monitoring.CacheFallbacks.WithLabelValues("progress").Inc()

		progress := make(map[string]float64)
		if cerr := s.Cache.GetJSON(ctx, progressKey(userID), &progress); cerr != nil {
			return map[string]float64{}
		}
		return progress
	}

	progress := make(map[string]float64, len(rows))
	for _, row := range rows {
		progress[row.CourseCode] = row.Progress
	}

	if cerr := s.Cache.SetJSON(ctx, progressKey(userID), progress); cerr != nil {
		logger.Log.Warn("progress cache mirror failed", zap.Uint("userId", userID), zap.Error(cerr))
	}
	return progress
}

// ListExercises returns the quizzes attached to a course.
func (s *CourseService) ListExercises(ctx context.Context, courseCode string) ([]model.QuizExercise, error) {
	return s.Quizzes.ListByCourse(ctx, courseCode)
}
