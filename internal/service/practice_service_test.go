package service

import (
	"context"
	"encoding/json"
	"errors"
	"plugga_backend/internal/model"
	"plugga_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPracticeService() (*PracticeService, *fakeAttemptStore) {
	attempts := newFakeAttemptStore()
	attempts.questions[1] = &model.HogskoleprovetQuestion{
		BaseModel:     model.BaseModel{ID: 1},
		Section:       model.SectionORD,
		Prompt:        "betänklig",
		Options:       json.RawMessage(`["A) tveksam","B) eftertänksam","C) hänsynsfull"]`),
		CorrectOption: "A",
	}
	attempts.questions[2] = &model.HogskoleprovetQuestion{
		BaseModel:     model.BaseModel{ID: 2},
		Section:       model.SectionORD,
		Prompt:        "obsolet",
		Options:       json.RawMessage(`["A) omodern","B) osäker"]`),
		CorrectOption: "A",
	}
	return NewPracticeService(attempts), attempts
}

func TestStartAttemptValidatesSection(t *testing.T) {
	svc, _ := newPracticeService()

	_, err := svc.StartAttempt(context.Background(), 1, "ZZZ")
	assert.True(t, errors.Is(err, util.ErrUnknownSection))

	started, err := svc.StartAttempt(context.Background(), 1, model.SectionORD)
	require.NoError(t, err)
	assert.NotEmpty(t, started.Attempt.ID)
	assert.Len(t, started.Questions, 2)
}

func TestStartAttemptHidesCorrectOption(t *testing.T) {
	svc, _ := newPracticeService()

	started, err := svc.StartAttempt(context.Background(), 1, model.SectionORD)
	require.NoError(t, err)

	b, err := json.Marshal(started.Questions)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "correctOption")
}

func TestSubmitAnswerExactOptionMatch(t *testing.T) {
	svc, _ := newPracticeService()
	started, err := svc.StartAttempt(context.Background(), 1, model.SectionORD)
	require.NoError(t, err)
	id := started.Attempt.ID

	tests := []struct {
		chosen string
		want   bool
	}{
		{"A) tveksam", true},
		{"a) tveksam", true}, // option id comparison ignores case
		{"  A) tveksam ", true},
		{"B) eftertänksam", false},
		{"", false},
	}
	for _, tt := range tests {
		got, err := svc.SubmitAnswer(context.Background(), id, 1, 1, tt.chosen, 1200)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "chosen %q", tt.chosen)
	}
}

func TestSubmitAnswerScopedToAttemptOwner(t *testing.T) {
	svc, _ := newPracticeService()
	started, err := svc.StartAttempt(context.Background(), 1, model.SectionORD)
	require.NoError(t, err)

	_, err = svc.SubmitAnswer(context.Background(), started.Attempt.ID, 2, 1, "A) tveksam", 100)
	assert.True(t, errors.Is(err, util.ErrAttemptNotFound))
}

func TestCompleteAttemptAggregatesAndFloorsMinutes(t *testing.T) {
	svc, attempts := newPracticeService()
	started, err := svc.StartAttempt(context.Background(), 1, model.SectionORD)
	require.NoError(t, err)
	id := started.Attempt.ID

	_, err = svc.SubmitAnswer(context.Background(), id, 1, 1, "A) tveksam", 800)
	require.NoError(t, err)
	_, err = svc.SubmitAnswer(context.Background(), id, 1, 2, "B) osäker", 1500)
	require.NoError(t, err)

	attempt, err := svc.CompleteAttempt(context.Background(), id, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, attempt.QuestionsAttempted)
	assert.Equal(t, 1, attempt.CorrectCount)
	assert.Equal(t, 1, attempt.MinutesSpent, "sub-minute sessions floor to one minute")
	require.NotNil(t, attempt.CompletedAt)

	var times []int
	require.NoError(t, json.Unmarshal([]byte(attempt.PerQuestionTimes), &times))
	assert.Equal(t, []int{800, 1500}, times)

	// Finalization happens exactly once.
	_, err = svc.CompleteAttempt(context.Background(), id, 1)
	assert.True(t, errors.Is(err, util.ErrAttemptNotFound) || errors.Is(err, util.ErrAttemptFinalized))

	// The stored row keeps the first finalization.
	row, err := attempts.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 2, row.QuestionsAttempted)
}

func TestCompleteAttemptRetriesAfterStoreFailure(t *testing.T) {
	svc, attempts := newPracticeService()
	started, err := svc.StartAttempt(context.Background(), 1, model.SectionORD)
	require.NoError(t, err)
	id := started.Attempt.ID

	_, err = svc.SubmitAnswer(context.Background(), id, 1, 1, "A) tveksam", 800)
	require.NoError(t, err)

	// A transient store failure must not burn the run.
	attempts.failFinalize = true
	_, err = svc.CompleteAttempt(context.Background(), id, 1)
	require.Error(t, err)
	assert.False(t, errors.Is(err, util.ErrAttemptFinalized))

	// The retry completes normally once the store is back.
	attempts.failFinalize = false
	attempt, err := svc.CompleteAttempt(context.Background(), id, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, attempt.QuestionsAttempted)
	require.NotNil(t, attempt.CompletedAt)
}

func TestHistoryReturnsUserAttempts(t *testing.T) {
	svc, _ := newPracticeService()

	started, err := svc.StartAttempt(context.Background(), 1, model.SectionORD)
	require.NoError(t, err)
	_, err = svc.CompleteAttempt(context.Background(), started.Attempt.ID, 1)
	require.NoError(t, err)

	history, err := svc.History(context.Background(), 1, 0)
	require.NoError(t, err)
	assert.Len(t, history, 1)

	history, err = svc.History(context.Background(), 2, 10)
	require.NoError(t, err)
	assert.Empty(t, history)
}
