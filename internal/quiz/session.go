package quiz

import (
	"errors"
	"time"
)

// SessionState is the quiz session phase.
//
//	Loading → InProgress(i) → Answered(i) → InProgress(i+1) ... → Completed
//
// Completed is terminal; Restart re-enters Loading. Answers are final once
// submitted: there is no backward transition out of Answered.
type SessionState string

const (
	StateLoading    SessionState = "loading"
	StateInProgress SessionState = "in_progress"
	StateAnswered   SessionState = "answered"
	StateCompleted  SessionState = "completed"
)

var (
	ErrNotInProgress = errors.New("session is not accepting answers")
	ErrNotAnswered   = errors.New("current question has not been answered")
	ErrNotCompleted  = errors.New("session is not completed")
	ErrNotLoaded     = errors.New("session has not finished loading")
)

// Answer records one submitted answer. Session-scoped only; discarded with the
// session, never persisted.
type Answer struct {
	QuestionIndex int        `json:"questionIndex"`
	Submitted     Submission `json:"submitted"`
	Correct       bool       `json:"correct"`
}

// Snapshot is the immutable quiz content a session runs against. It is taken
// once at session start; later changes to the backing exercise do not affect a
// running session.
type Snapshot struct {
	ExerciseID   uint
	Title        string
	ExerciseType string
	Questions    []Question
	Correct      []string
	Points       int
}

// Session is the runtime state of one quiz run for one user.
type Session struct {
	ID        string
	UserID    uint
	Snapshot  Snapshot
	State     SessionState
	Current   int
	Answers   []Answer
	CorrectN  int
	StartedAt time.Time
	Elapsed   time.Duration
}

// NewSession creates a session in Loading with the given content snapshot.
func NewSession(id string, userID uint, snap Snapshot) *Session {
	return &Session{
		ID:       id,
		UserID:   userID,
		Snapshot: snap,
		State:    StateLoading,
	}
}

// Begin transitions Loading → InProgress at the first question.
func (s *Session) Begin(now time.Time) error {
	if s.State != StateLoading {
		return ErrNotLoaded
	}
	s.State = StateInProgress
	s.Current = 0
	s.StartedAt = now
	return nil
}

// Submit evaluates the submission for the current question and transitions
// InProgress → Answered. Resubmission of an answered question is rejected.
func (s *Session) Submit(sub Submission) (*Answer, error) {
	if s.State != StateInProgress {
		return nil, ErrNotInProgress
	}

	q := s.Snapshot.Questions[s.Current]
	correct := ""
	if s.Current < len(s.Snapshot.Correct) {
		correct = s.Snapshot.Correct[s.Current]
	}

	ans := Answer{
		QuestionIndex: s.Current,
		Submitted:     sub,
		Correct:       CheckAnswer(q, correct, sub),
	}
	if ans.Correct {
		s.CorrectN++
	}
	s.Answers = append(s.Answers, ans)
	s.State = StateAnswered
	return &ans, nil
}

// Advance transitions Answered → InProgress at the next question, or to
// Completed after the last one.
func (s *Session) Advance(now time.Time) error {
	if s.State != StateAnswered {
		return ErrNotAnswered
	}
	if s.Current+1 >= len(s.Snapshot.Questions) {
		s.State = StateCompleted
		s.Elapsed = now.Sub(s.StartedAt)
		return nil
	}
	s.Current++
	s.State = StateInProgress
	return nil
}

// Restart re-enters Loading from the terminal Completed state with score and
// elapsed time reset. The snapshot is retained: a restarted session replays
// the same content.
func (s *Session) Restart() error {
	if s.State != StateCompleted {
		return ErrNotCompleted
	}
	s.State = StateLoading
	s.Current = 0
	s.Answers = nil
	s.CorrectN = 0
	s.Elapsed = 0
	s.StartedAt = time.Time{}
	return nil
}

// AwardedPoints returns the proportional score for a completed session.
func (s *Session) AwardedPoints() int {
	return Score(s.CorrectN, len(s.Snapshot.Questions), s.Snapshot.Points)
}
