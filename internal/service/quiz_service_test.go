package service

import (
	"context"
	"encoding/json"
	"errors"
	"plugga_backend/internal/model"
	"plugga_backend/internal/quiz"
	"plugga_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intp(i int) *int { return &i }

func newQuizService() (*QuizService, *fakeQuizStore) {
	quizzes := newFakeQuizStore()
	return NewQuizService(quizzes), quizzes
}

func seedExercise(quizzes *fakeQuizStore) {
	quizzes.exercises[1] = &model.QuizExercise{
		BaseModel:    model.BaseModel{ID: 1},
		Title:        "Geografi 1",
		ExerciseType: "multiple_choice",
		Questions: json.RawMessage(`[
			{"question":"Huvudstad i Norge?","options":["Oslo","Bergen"]},
			{"question":"Huvudstad i Finland?","options":["Åbo","Helsingfors"]}
		]`),
		CorrectAnswers: json.RawMessage(`["a","b"]`),
		Points:         10,
	}
}

func TestStartSessionSnapshotsExercise(t *testing.T) {
	svc, quizzes := newQuizService()
	seedExercise(quizzes)

	view, err := svc.StartSession(context.Background(), 7, 1)
	require.NoError(t, err)
	assert.Equal(t, quiz.StateInProgress, view.State)
	assert.Equal(t, 2, view.Total)
	require.NotNil(t, view.Question)
	assert.Equal(t, "Huvudstad i Norge?", view.Question.Prompt)

	// Content changes after start do not reach the running session.
	quizzes.exercises[1].Questions = json.RawMessage(`[]`)
	ans, err := svc.SubmitAnswer(view.ID, 7, quiz.Submission{Index: intp(0)})
	require.NoError(t, err)
	assert.True(t, ans.Correct)
}

func TestStartSessionUnknownExercise(t *testing.T) {
	svc, _ := newQuizService()
	_, err := svc.StartSession(context.Background(), 7, 99)
	assert.True(t, errors.Is(err, util.ErrExerciseNotFound))
}

func TestStartSessionEmptyPayload(t *testing.T) {
	svc, quizzes := newQuizService()
	quizzes.exercises[2] = &model.QuizExercise{
		BaseModel: model.BaseModel{ID: 2},
		Title:     "Tom",
		Questions: json.RawMessage(`not json`),
	}

	_, err := svc.StartSession(context.Background(), 7, 2)
	assert.True(t, errors.Is(err, util.ErrNoQuestions))
}

func TestSessionIsScopedToItsUser(t *testing.T) {
	svc, quizzes := newQuizService()
	seedExercise(quizzes)

	view, err := svc.StartSession(context.Background(), 7, 1)
	require.NoError(t, err)

	_, err = svc.SubmitAnswer(view.ID, 8, quiz.Submission{Index: intp(0)})
	assert.True(t, errors.Is(err, util.ErrSessionNotFound))
}

func TestFullSessionRunWithResults(t *testing.T) {
	svc, quizzes := newQuizService()
	seedExercise(quizzes)

	view, err := svc.StartSession(context.Background(), 7, 1)
	require.NoError(t, err)

	// Results before completion are refused.
	_, err = svc.Results(view.ID, 7)
	assert.Error(t, err)

	ans, err := svc.SubmitAnswer(view.ID, 7, quiz.Submission{Index: intp(0)})
	require.NoError(t, err)
	assert.True(t, ans.Correct)
	assert.Equal(t, "a", ans.CorrectAnswer)

	view, err = svc.Advance(view.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, 1, view.Current)

	ans, err = svc.SubmitAnswer(view.ID, 7, quiz.Submission{Index: intp(0)})
	require.NoError(t, err)
	assert.False(t, ans.Correct)

	view, err = svc.Advance(view.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, quiz.StateCompleted, view.State)

	res, err := svc.Results(view.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, 1, res.CorrectCount)
	assert.Equal(t, 5, res.AwardedPoints)
	assert.Len(t, res.Answers, 2)
}

func TestRestartReplaysFromFirstQuestion(t *testing.T) {
	svc, quizzes := newQuizService()
	seedExercise(quizzes)

	view, err := svc.StartSession(context.Background(), 7, 1)
	require.NoError(t, err)

	// Restart mid-run is refused; the run must be completed first.
	_, err = svc.Restart(view.ID, 7)
	assert.Error(t, err)

	for i := 0; i < 2; i++ {
		_, err = svc.SubmitAnswer(view.ID, 7, quiz.Submission{Index: intp(0)})
		require.NoError(t, err)
		view, err = svc.Advance(view.ID, 7)
		require.NoError(t, err)
	}
	require.Equal(t, quiz.StateCompleted, view.State)

	view, err = svc.Restart(view.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, quiz.StateInProgress, view.State)
	assert.Equal(t, 0, view.Current)
	assert.Equal(t, 0, view.CorrectCount)
}

func TestCloseSessionDiscards(t *testing.T) {
	svc, quizzes := newQuizService()
	seedExercise(quizzes)

	view, err := svc.StartSession(context.Background(), 7, 1)
	require.NoError(t, err)

	require.NoError(t, svc.CloseSession(view.ID, 7))
	_, err = svc.SubmitAnswer(view.ID, 7, quiz.Submission{Index: intp(0)})
	assert.True(t, errors.Is(err, util.ErrSessionNotFound))
}
