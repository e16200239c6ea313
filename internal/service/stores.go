package service

import (
	"context"
	"plugga_backend/internal/model"
	"plugga_backend/internal/repository"
	"time"
)

// Store interfaces consumed by the services. The gorm repositories satisfy
// them; tests substitute in-memory fakes.

type ProfileStore interface {
	FindByUserID(ctx context.Context, userID uint) (*model.UserProfile, error)
	Upsert(ctx context.Context, profile *model.UserProfile) error
	ClearOnboarding(ctx context.Context, userID uint) error
}

type EnrollmentStore interface {
	ListActiveWithCourses(ctx context.Context, userID uint) ([]repository.ActiveEnrollment, error)
	CountActive(ctx context.Context, userID uint) (int64, error)
	ReplaceActive(ctx context.Context, userID uint, codes []string) error
	UpdateProgress(ctx context.Context, userID uint, code string, percent float64) error
}

type QuizStore interface {
	FindExerciseByID(ctx context.Context, id uint) (*model.QuizExercise, error)
	ListByCourse(ctx context.Context, courseCode string) ([]model.QuizExercise, error)
}

type AttemptStore interface {
	Create(ctx context.Context, attempt *model.HogskoleprovetAttempt) error
	FindByID(ctx context.Context, id string) (*model.HogskoleprovetAttempt, error)
	Finalize(ctx context.Context, id string, completedAt time.Time, attempted, correct, minutes int, perQuestionTimes string) error
	ListByUser(ctx context.Context, userID uint, limit int) ([]model.HogskoleprovetAttempt, error)
	ListQuestionsBySection(ctx context.Context, section string) ([]model.HogskoleprovetQuestion, error)
	FindQuestionByID(ctx context.Context, id uint) (*model.HogskoleprovetQuestion, error)
}

// Cache is the per-user namespaced key-value store backing offline fallback.
type Cache interface {
	GetJSON(ctx context.Context, key string, dest interface{}) error
	SetJSON(ctx context.Context, key string, value interface{}) error
	Delete(ctx context.Context, keys ...string) error
}
