package session

import (
	"math/rand"
	"testing"

	"github.com/architect/vocab-trainer/internal/vocab/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testQuestions(n int) []models.QuestionRecord {
	qs := make([]models.QuestionRecord, n)
	for i := range qs {
		qs[i] = models.QuestionRecord{ID: i + 1, Word: "w", Meaning: "m"}
	}
	return qs
}

func testConfig() models.SessionConfig {
	return models.SessionConfig{
		Type:  "TOEIC",
		Range: "1-50",
		Mode:  models.ModeNativeToTarget,
	}
}

func TestSession_UnderstoodThenCorrect(t *testing.T) {
	s := New("s1", testConfig(), testQuestions(1))

	assert.Equal(t, PhaseAsking, s.Phase())

	require.NoError(t, s.SubmitUnderstood(true))
	assert.Equal(t, PhaseConfirming, s.Phase())

	require.NoError(t, s.Confirm(true))
	assert.Equal(t, PhaseRevealed, s.Phase())

	require.NoError(t, s.Advance())
	assert.True(t, s.Complete())

	res, err := s.Result()
	require.NoError(t, err)
	assert.Equal(t, []int{OutcomeCorrect}, res.Outcomes)
	assert.Equal(t, 100, res.Score)
}

func TestSession_UnderstoodThenWrong(t *testing.T) {
	s := New("s1", testConfig(), testQuestions(1))

	require.NoError(t, s.SubmitUnderstood(true))
	require.NoError(t, s.Confirm(false))
	require.NoError(t, s.Advance())

	res, err := s.Result()
	require.NoError(t, err)
	assert.Equal(t, []int{OutcomeWrong}, res.Outcomes)
	assert.Equal(t, 0, res.Score)
}

func TestSession_NotUnderstoodRevealsImmediately(t *testing.T) {
	s := New("s1", testConfig(), testQuestions(1))

	require.NoError(t, s.SubmitUnderstood(false))
	// No confirmation step: the answer is revealed and the outcome is wrong
	assert.Equal(t, PhaseRevealed, s.Phase())

	assert.ErrorIs(t, s.Confirm(true), ErrInvalidTransition)

	require.NoError(t, s.Advance())
	res, err := s.Result()
	require.NoError(t, err)
	assert.Equal(t, []int{OutcomeWrong}, res.Outcomes)
}

func TestSession_InvalidTransitions(t *testing.T) {
	s := New("s1", testConfig(), testQuestions(2))

	// Asking: only SubmitUnderstood is legal
	assert.ErrorIs(t, s.Confirm(true), ErrInvalidTransition)
	assert.ErrorIs(t, s.Advance(), ErrInvalidTransition)

	require.NoError(t, s.SubmitUnderstood(true))

	// Confirming: only Confirm is legal
	assert.ErrorIs(t, s.SubmitUnderstood(true), ErrInvalidTransition)
	assert.ErrorIs(t, s.Advance(), ErrInvalidTransition)

	require.NoError(t, s.Confirm(true))

	// Revealed: only Advance is legal
	assert.ErrorIs(t, s.SubmitUnderstood(false), ErrInvalidTransition)
	assert.ErrorIs(t, s.Confirm(false), ErrInvalidTransition)

	// A rejected call must not have recorded extra outcomes
	require.NoError(t, s.Advance())
	require.NoError(t, s.SubmitUnderstood(false))
	require.NoError(t, s.Advance())

	res, err := s.Result()
	require.NoError(t, err)
	assert.Equal(t, []int{OutcomeCorrect, OutcomeWrong}, res.Outcomes)
}

func TestSession_ResultBeforeComplete(t *testing.T) {
	s := New("s1", testConfig(), testQuestions(1))

	_, err := s.Result()
	assert.ErrorIs(t, err, ErrNotComplete)
}

func TestSession_CurrentAfterComplete(t *testing.T) {
	s := New("s1", testConfig(), testQuestions(1))

	require.NoError(t, s.SubmitUnderstood(false))
	require.NoError(t, s.Advance())

	_, err := s.Current()
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestSession_Progress(t *testing.T) {
	s := New("s1", testConfig(), testQuestions(3))

	current, total := s.Progress()
	assert.Equal(t, 1, current)
	assert.Equal(t, 3, total)

	require.NoError(t, s.SubmitUnderstood(false))
	require.NoError(t, s.Advance())

	current, _ = s.Progress()
	assert.Equal(t, 2, current)

	require.NoError(t, s.SubmitUnderstood(false))
	require.NoError(t, s.Advance())
	require.NoError(t, s.SubmitUnderstood(false))
	require.NoError(t, s.Advance())

	// Progress stays pinned to the total once complete
	current, total = s.Progress()
	assert.Equal(t, 3, current)
	assert.Equal(t, 3, total)
}

func TestSession_ScoreRoundsHalfUp(t *testing.T) {
	// 2 of 3 correct = 66.67 -> 67
	s := New("s1", testConfig(), testQuestions(3))

	require.NoError(t, s.SubmitUnderstood(true))
	require.NoError(t, s.Confirm(true))
	require.NoError(t, s.Advance())
	require.NoError(t, s.SubmitUnderstood(true))
	require.NoError(t, s.Confirm(true))
	require.NoError(t, s.Advance())
	require.NoError(t, s.SubmitUnderstood(false))
	require.NoError(t, s.Advance())

	res, err := s.Result()
	require.NoError(t, err)
	assert.Equal(t, 67, res.Score)

	// 1 of 8 correct = 12.5 -> 13
	s = New("s2", testConfig(), testQuestions(8))
	for i := 0; i < 8; i++ {
		if i == 0 {
			require.NoError(t, s.SubmitUnderstood(true))
			require.NoError(t, s.Confirm(true))
		} else {
			require.NoError(t, s.SubmitUnderstood(false))
		}
		require.NoError(t, s.Advance())
	}
	res, err = s.Result()
	require.NoError(t, err)
	assert.Equal(t, 13, res.Score)
}

func TestSession_ShuffleKeepsQuestionSet(t *testing.T) {
	questions := testQuestions(20)
	cfg := testConfig()
	cfg.Shuffle = true

	s := NewWithRand("s1", cfg, questions, rand.New(rand.NewSource(42)))

	got := s.Questions()
	require.Len(t, got, 20)

	seen := make(map[int]bool)
	for _, q := range got {
		seen[q.ID] = true
	}
	assert.Len(t, seen, 20)

	// The caller's slice is untouched
	for i, q := range questions {
		assert.Equal(t, i+1, q.ID)
	}
}

func TestSession_NoShuffleKeepsOrder(t *testing.T) {
	s := New("s1", testConfig(), testQuestions(5))

	for i, q := range s.Questions() {
		assert.Equal(t, i+1, q.ID)
	}
}

func TestMessageForScore(t *testing.T) {
	assert.Equal(t, "perfect", MessageForScore(100))
	assert.Equal(t, "great", MessageForScore(99))
	assert.Equal(t, "great", MessageForScore(80))
	assert.Equal(t, "good", MessageForScore(79))
	assert.Equal(t, "good", MessageForScore(60))
	assert.Equal(t, "needs review", MessageForScore(59))
	assert.Equal(t, "needs review", MessageForScore(0))
}
