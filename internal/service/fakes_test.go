package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"plugga_backend/internal/model"
	"plugga_backend/internal/repository"
	"time"

	"gorm.io/gorm"
)

// In-memory store fakes. Each wraps plain maps and an optional fail switch so
// tests can simulate an unreachable record store.

var errStoreDown = errors.New("store unreachable")

type fakeProfileStore struct {
	profiles map[uint]*model.UserProfile
	fail     bool
	upserts  int
}

func newFakeProfileStore() *fakeProfileStore {
	return &fakeProfileStore{profiles: make(map[uint]*model.UserProfile)}
}

func (f *fakeProfileStore) FindByUserID(_ context.Context, userID uint) (*model.UserProfile, error) {
	if f.fail {
		return nil, errStoreDown
	}
	p, ok := f.profiles[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProfileStore) Upsert(_ context.Context, profile *model.UserProfile) error {
	if f.fail {
		return errStoreDown
	}
	f.upserts++
	cp := *profile
	f.profiles[profile.UserID] = &cp
	return nil
}

func (f *fakeProfileStore) ClearOnboarding(_ context.Context, userID uint) error {
	if f.fail {
		return errStoreDown
	}
	if p, ok := f.profiles[userID]; ok {
		p.Onboarded = false
	}
	return nil
}

type fakeEnrollmentStore struct {
	// active course codes per user, in insertion order
	active   map[uint][]string
	progress map[string]float64 // "userID|code"
	catalog  map[string]model.Course
	fail     bool
	replaces int
}

func newFakeEnrollmentStore() *fakeEnrollmentStore {
	return &fakeEnrollmentStore{
		active:   make(map[uint][]string),
		progress: make(map[string]float64),
		catalog:  make(map[string]model.Course),
	}
}

func (f *fakeEnrollmentStore) key(userID uint, code string) string {
	return fmt.Sprintf("%d|%s", userID, code)
}

func (f *fakeEnrollmentStore) ListActiveWithCourses(_ context.Context, userID uint) ([]repository.ActiveEnrollment, error) {
	if f.fail {
		return nil, errStoreDown
	}
	rows := make([]repository.ActiveEnrollment, 0, len(f.active[userID]))
	for _, code := range f.active[userID] {
		row := repository.ActiveEnrollment{CourseCode: code, Progress: f.progress[f.key(userID, code)]}
		if c, ok := f.catalog[code]; ok {
			row.Name = c.Name
			row.Subject = c.Subject
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (f *fakeEnrollmentStore) CountActive(_ context.Context, userID uint) (int64, error) {
	if f.fail {
		return 0, errStoreDown
	}
	return int64(len(f.active[userID])), nil
}

func (f *fakeEnrollmentStore) ReplaceActive(_ context.Context, userID uint, codes []string) error {
	if f.fail {
		return errStoreDown
	}
	f.replaces++
	f.active[userID] = append([]string(nil), codes...)
	for _, code := range codes {
		f.progress[f.key(userID, code)] = 0
	}
	return nil
}

func (f *fakeEnrollmentStore) UpdateProgress(_ context.Context, userID uint, code string, percent float64) error {
	if f.fail {
		return errStoreDown
	}
	for _, c := range f.active[userID] {
		if c == code {
			f.progress[f.key(userID, code)] = percent
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type fakeQuizStore struct {
	exercises map[uint]*model.QuizExercise
}

func newFakeQuizStore() *fakeQuizStore {
	return &fakeQuizStore{exercises: make(map[uint]*model.QuizExercise)}
}

func (f *fakeQuizStore) FindExerciseByID(_ context.Context, id uint) (*model.QuizExercise, error) {
	ex, ok := f.exercises[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return ex, nil
}

func (f *fakeQuizStore) ListByCourse(_ context.Context, courseCode string) ([]model.QuizExercise, error) {
	var out []model.QuizExercise
	for _, ex := range f.exercises {
		if ex.CourseCode == courseCode {
			out = append(out, *ex)
		}
	}
	return out, nil
}

type fakeAttemptStore struct {
	attempts     map[string]*model.HogskoleprovetAttempt
	questions    map[uint]*model.HogskoleprovetQuestion
	nextID       int
	failFinalize bool
}

func newFakeAttemptStore() *fakeAttemptStore {
	return &fakeAttemptStore{
		attempts:  make(map[string]*model.HogskoleprovetAttempt),
		questions: make(map[uint]*model.HogskoleprovetQuestion),
	}
}

func (f *fakeAttemptStore) Create(_ context.Context, attempt *model.HogskoleprovetAttempt) error {
	if attempt.ID == "" {
		f.nextID++
		attempt.ID = fmt.Sprintf("attempt-%d", f.nextID)
	}
	cp := *attempt
	f.attempts[attempt.ID] = &cp
	return nil
}

func (f *fakeAttemptStore) FindByID(_ context.Context, id string) (*model.HogskoleprovetAttempt, error) {
	a, ok := f.attempts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAttemptStore) Finalize(_ context.Context, id string, completedAt time.Time, attempted, correct, minutes int, perQuestionTimes string) error {
	if f.failFinalize {
		return errStoreDown
	}
	a, ok := f.attempts[id]
	if !ok || a.CompletedAt != nil {
		return gorm.ErrRecordNotFound
	}
	a.CompletedAt = &completedAt
	a.QuestionsAttempted = attempted
	a.CorrectCount = correct
	a.MinutesSpent = minutes
	a.PerQuestionTimes = perQuestionTimes
	return nil
}

func (f *fakeAttemptStore) ListByUser(_ context.Context, userID uint, limit int) ([]model.HogskoleprovetAttempt, error) {
	var out []model.HogskoleprovetAttempt
	for _, a := range f.attempts {
		if a.UserID == userID && len(out) < limit {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAttemptStore) ListQuestionsBySection(_ context.Context, section string) ([]model.HogskoleprovetQuestion, error) {
	var out []model.HogskoleprovetQuestion
	for _, q := range f.questions {
		if q.Section == section {
			out = append(out, *q)
		}
	}
	return out, nil
}

func (f *fakeAttemptStore) FindQuestionByID(_ context.Context, id uint) (*model.HogskoleprovetQuestion, error) {
	q, ok := f.questions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return q, nil
}

// fakeCache stores JSON blobs like the redis-backed cache does, so type
// fidelity through marshalling matches production.
type fakeCache struct {
	data map[string][]byte
	fail bool
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string][]byte)}
}

func (f *fakeCache) GetJSON(_ context.Context, key string, dest interface{}) error {
	if f.fail {
		return errStoreDown
	}
	b, ok := f.data[key]
	if !ok {
		return repository.ErrCacheMiss
	}
	return json.Unmarshal(b, dest)
}

func (f *fakeCache) SetJSON(_ context.Context, key string, value interface{}) error {
	if f.fail {
		return errStoreDown
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.data[key] = b
	return nil
}

func (f *fakeCache) Delete(_ context.Context, keys ...string) error {
	if f.fail {
		return errStoreDown
	}
	for _, k := range keys {
		delete(f.data, k)
	}
	return nil
}
