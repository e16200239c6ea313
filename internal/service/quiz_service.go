package service

import (
	"context"
	"errors"
	"plugga_backend/internal/model"
	"plugga_backend/internal/quiz"
	"plugga_backend/internal/util"
	"plugga_backend/pkg/logger"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// QuizService runs quiz sessions. Each session is an explicit state object
// keyed by uuid and scoped to one user, holding an immutable snapshot of the
// exercise taken at start; sessions live in memory only and are discarded on
// close, never persisted.
type QuizService struct {
	Quizzes QuizStore

	mu       sync.Mutex
	sessions map[string]*quiz.Session
}

func NewQuizService(quizzes QuizStore) *QuizService {
	return &QuizService{
		Quizzes:  quizzes,
		sessions: make(map[string]*quiz.Session),
	}
}

// QuestionView is a question as shown to the client: no correct answer.
type QuestionView struct {
	ID      string            `json:"id"`
	Prompt  string            `json:"prompt"`
	Options []string          `json:"options,omitempty"`
	Type    quiz.QuestionType `json:"type"`
}

// SessionView is the client-facing session snapshot.
type SessionView struct {
	ID           string            `json:"id"`
	Title        string            `json:"title"`
	State        quiz.SessionState `json:"state"`
	Current      int               `json:"current"`
	Total        int               `json:"total"`
	CorrectCount int               `json:"correctCount"`
	Question     *QuestionView     `json:"question,omitempty"`
	Points       int               `json:"points"`
}

// ResultView summarizes a completed session.
type ResultView struct {
	ID             string        `json:"id"`
	Title          string        `json:"title"`
	Total          int           `json:"total"`
	CorrectCount   int           `json:"correctCount"`
	AwardedPoints  int           `json:"awardedPoints"`
	PointsBudget   int           `json:"pointsBudget"`
	ElapsedSeconds int           `json:"elapsedSeconds"`
	Answers        []quiz.Answer `json:"answers"`
}

// AnswerView is the feedback for one submission.
type AnswerView struct {
	QuestionIndex int               `json:"questionIndex"`
	Correct       bool              `json:"correct"`
	CorrectAnswer string            `json:"correctAnswer"`
	State         quiz.SessionState `json:"state"`
}

func (s *QuizService) view(sess *quiz.Session) *SessionView {
	v := &SessionView{
		ID:           sess.ID,
		Title:        sess.Snapshot.Title,
		State:        sess.State,
		Current:      sess.Current,
		Total:        len(sess.Snapshot.Questions),
		CorrectCount: sess.CorrectN,
		Points:       sess.Snapshot.Points,
	}
	if sess.State == quiz.StateInProgress || sess.State == quiz.StateAnswered {
		q := sess.Snapshot.Questions[sess.Current]
		v.Question = &QuestionView{ID: q.ID, Prompt: q.Prompt, Options: q.Options, Type: q.Type}
	}
	return v
}

// StartSession snapshots the exercise and opens a session at its first
// question. An exercise whose payload parses to zero questions is reported as
// not available.
func (s *QuizService) StartSession(ctx context.Context, userID uint, exerciseID uint) (*SessionView, error) {
	exercise, err := s.Quizzes.FindExerciseByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrExerciseNotFound
		}
		return nil, err
	}

	questions := quiz.ParseQuestions(exercise.Questions, exercise.ExerciseType)
	if len(questions) == 0 {
		logger.Log.Warn("exercise payload yielded no questions", zap.Uint("exerciseId", exerciseID))
		return nil, util.ErrNoQuestions
	}
	answers := quiz.ParseCorrectAnswers(exercise.CorrectAnswers)

	sess := quiz.NewSession(uuid.New().String(), userID, quiz.Snapshot{
		ExerciseID:   exercise.ID,
		Title:        exercise.Title,
		ExerciseType: exercise.ExerciseType,
		Questions:    questions,
		Correct:      answers,
		Points:       exercise.Points,
	})
	if err := sess.Begin(time.Now()); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	return s.view(sess), nil
}

func (s *QuizService) session(sessionID string, userID uint) (*quiz.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok || sess.UserID != userID {
		return nil, util.ErrSessionNotFound
	}
	return sess, nil
}

// SubmitAnswer finalizes the answer for the current question. Answers cannot
// be changed after submission.
func (s *QuizService) SubmitAnswer(sessionID string, userID uint, sub quiz.Submission) (*AnswerView, error) {
	sess, err := s.session(sessionID, userID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	ans, err := sess.Submit(sub)
	if err != nil {
		return nil, err
	}

	correct := ""
	if ans.QuestionIndex < len(sess.Snapshot.Correct) {
		correct = sess.Snapshot.Correct[ans.QuestionIndex]
	}
	return &AnswerView{
		QuestionIndex: ans.QuestionIndex,
		Correct:       ans.Correct,
		CorrectAnswer: correct,
		State:         sess.State,
	}, nil
}

// Advance moves to the next question, or completes the session after the last.
func (s *QuizService) Advance(sessionID string, userID uint) (*SessionView, error) {
	sess, err := s.session(sessionID, userID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := sess.Advance(time.Now()); err != nil {
		return nil, err
	}
	return s.view(sess), nil
}

// Results summarizes a completed session with its proportional score.
func (s *QuizService) Results(sessionID string, userID uint) (*ResultView, error) {
	sess, err := s.session(sessionID, userID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if sess.State != quiz.StateCompleted {
		return nil, quiz.ErrNotCompleted
	}

	return &ResultView{
		ID:             sess.ID,
		Title:          sess.Snapshot.Title,
		Total:          len(sess.Snapshot.Questions),
		CorrectCount:   sess.CorrectN,
		AwardedPoints:  sess.AwardedPoints(),
		PointsBudget:   sess.Snapshot.Points,
		ElapsedSeconds: int(sess.Elapsed.Seconds()),
		Answers:        sess.Answers,
	}, nil
}

// Restart replays the session's snapshot from the beginning: back through
// Loading with counters reset, then immediately in progress at question zero.
func (s *QuizService) Restart(sessionID string, userID uint) (*SessionView, error) {
	sess, err := s.session(sessionID, userID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := sess.Restart(); err != nil {
		return nil, err
	}
	if err := sess.Begin(time.Now()); err != nil {
		return nil, err
	}
	return s.view(sess), nil
}

// CloseSession discards the session and its answers.
func (s *QuizService) CloseSession(sessionID string, userID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok || sess.UserID != userID {
		return util.ErrSessionNotFound
	}
	delete(s.sessions, sessionID)
	return nil
}

// GetExercise exposes the raw exercise for course content screens.
func (s *QuizService) GetExercise(ctx context.Context, id uint) (*model.QuizExercise, error) {
	exercise, err := s.Quizzes.FindExerciseByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrExerciseNotFound
		}
		return nil, err
	}
	return exercise, nil
}
