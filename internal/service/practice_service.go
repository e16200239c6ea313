package service

import (
	"context"
	"encoding/json"
	"errors"
	"plugga_backend/internal/model"
	"plugga_backend/internal/util"
	"plugga_backend/pkg/logger"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var practiceSections = map[string]bool{
	model.SectionORD: true,
	model.SectionLAS: true,
	model.SectionMEK: true,
	model.SectionXYZ: true,
	model.SectionKVA: true,
	model.SectionNOG: true,
	model.SectionDTK: true,
	model.SectionELF: true,
}

// practiceRun is the in-memory tally for one open attempt. The attempt row is
// opened at start and finalized exactly once with these aggregates.
type practiceRun struct {
	userID    uint
	startedAt time.Time
	attempted int
	correct   int
	timesMs   []int
	finalized bool
}

// PracticeService runs Högskoleprovet practice sessions. Unlike the quiz
// evaluator it has no representation tolerance: an answer is correct only if
// the chosen option's leading identifier matches the stored option id exactly.
type PracticeService struct {
	Attempts AttemptStore

	mu   sync.Mutex
	runs map[string]*practiceRun
}

func NewPracticeService(attempts AttemptStore) *PracticeService {
	return &PracticeService{
		Attempts: attempts,
		runs:     make(map[string]*practiceRun),
	}
}

// PracticeQuestionView hides the correct option id from the client.
type PracticeQuestionView struct {
	ID      uint            `json:"id"`
	Section string          `json:"section"`
	Prompt  string          `json:"prompt"`
	Options json.RawMessage `json:"options"`
}

type StartedAttempt struct {
	Attempt   *model.HogskoleprovetAttempt `json:"attempt"`
	Questions []PracticeQuestionView       `json:"questions"`
}

// StartAttempt opens an append-only attempt row and returns the section's
// question bank.
func (s *PracticeService) StartAttempt(ctx context.Context, userID uint, section string) (*StartedAttempt, error) {
	if !practiceSections[section] {
		return nil, util.ErrUnknownSection
	}

	questions, err := s.Attempts.ListQuestionsBySection(ctx, section)
	if err != nil {
		return nil, err
	}

	attempt := &model.HogskoleprovetAttempt{
		UserID:    userID,
		Section:   section,
		StartedAt: time.Now(),
	}
	if err := s.Attempts.Create(ctx, attempt); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.runs[attempt.ID] = &practiceRun{userID: userID, startedAt: attempt.StartedAt}
	s.mu.Unlock()

	views := make([]PracticeQuestionView, len(questions))
	for i, q := range questions {
		views[i] = PracticeQuestionView{ID: q.ID, Section: q.Section, Prompt: q.Prompt, Options: q.Options}
	}
	return &StartedAttempt{Attempt: attempt, Questions: views}, nil
}

func (s *PracticeService) run(attemptID string, userID uint) (*practiceRun, error) {
	run, ok := s.runs[attemptID]
	if !ok || run.userID != userID {
		return nil, util.ErrAttemptNotFound
	}
	if run.finalized {
		return nil, util.ErrAttemptFinalized
	}
	return run, nil
}

// SubmitAnswer checks a single chosen option against the stored option id:
// the first character of the chosen option string, nothing more lenient.
// Per-question elapsed time is recorded for analytics only and never gates
// progression.
func (s *PracticeService) SubmitAnswer(ctx context.Context, attemptID string, userID uint, questionID uint, chosenOption string, elapsedMs int) (bool, error) {
	question, err := s.Attempts.FindQuestionByID(ctx, questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, util.ErrAttemptNotFound
		}
		return false, err
	}

	chosen := strings.TrimSpace(chosenOption)
	correct := chosen != "" &&
		strings.EqualFold(chosen[:1], question.CorrectOption)

	s.mu.Lock()
	defer s.mu.Unlock()
	run, err := s.run(attemptID, userID)
	if err != nil {
		return false, err
	}

	run.attempted++
	if correct {
		run.correct++
	}
	run.timesMs = append(run.timesMs, elapsedMs)
	return correct, nil
}

// CompleteAttempt finalizes the attempt exactly once with aggregate totals.
// A session that took under a minute is floored to one minute so downstream
// per-minute rates never divide by zero.
func (s *PracticeService) CompleteAttempt(ctx context.Context, attemptID string, userID uint) (*model.HogskoleprovetAttempt, error) {
	s.mu.Lock()
	run, err := s.run(attemptID, userID)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	// Claim the run so a concurrent completion fails fast, but release the
	// claim if the store write does not land. The caller must be able to
	// retry after a transient store error.
	run.finalized = true
	attempted, correct := run.attempted, run.correct
	minutes := int(time.Since(run.startedAt).Minutes())
	timesJSON, _ := json.Marshal(run.timesMs)
	s.mu.Unlock()

	if minutes < 1 {
		minutes = 1
	}

	completedAt := time.Now()
	if err := s.Attempts.Finalize(ctx, attemptID, completedAt, attempted, correct, minutes, string(timesJSON)); err != nil {
		logger.Log.Error("attempt finalize failed", zap.String("attemptId", attemptID), zap.Error(err))
		s.mu.Lock()
		run.finalized = false
		s.mu.Unlock()
		return nil, err
	}

	s.mu.Lock()
	delete(s.runs, attemptID)
	s.mu.Unlock()

	attempt, err := s.Attempts.FindByID(ctx, attemptID)
	if err != nil {
		return nil, err
	}
	return attempt, nil
}

// History lists a user's recent finalized attempts.
func (s *PracticeService) History(ctx context.Context, userID uint, limit int) ([]model.HogskoleprovetAttempt, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.Attempts.ListByUser(ctx, userID, limit)
}
