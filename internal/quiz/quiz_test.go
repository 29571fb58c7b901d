package quiz

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VCGamer/word-quest/internal/progression"
	"github.com/VCGamer/word-quest/internal/rewards"
	"github.com/VCGamer/word-quest/pkg/models"
)

type memStore struct {
	state *models.LearnerState
}

func (m *memStore) Load() *models.LearnerState {
	if m.state == nil {
		m.state = models.DefaultLearnerState()
	}
	return m.state
}

func (m *memStore) Save(state *models.LearnerState) error {
	m.state = state
	return nil
}

func (m *memStore) Reset() (*models.LearnerState, error) {
	m.state = models.DefaultLearnerState()
	return m.state, nil
}

// fixedBuilder always puts the word's own definition first.
type fixedBuilder struct{}

func (fixedBuilder) BuildQuestion(word models.Word) progression.Question {
	return progression.Question{
		Word:         word,
		Options:      []string{word.Definition, "wrong one", "wrong two", "wrong three"},
		CorrectIndex: 0,
	}
}

func quizWords(n int) []models.Word {
	words := make([]models.Word, n)
	for i := range words {
		words[i] = models.Word{
			Word:       string(rune('a' + i)),
			Definition: "definition " + string(rune('a'+i)),
			Examples:   []string{"example " + string(rune('a'+i))},
		}
	}
	return words
}

func newTestSession(t *testing.T, n int, triedEarly bool) (*Session, *rewards.Ledger) {
	t.Helper()
	ledger := rewards.New(rewards.DefaultConfig(), &memStore{})
	session := New(ledger, fixedBuilder{}, quizWords(n), triedEarly)
	session.SetClock(func() time.Time {
		return time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	})
	return session, ledger
}

// run answers every question, the first `correct` of them correctly.
func run(t *testing.T, s *Session, correct int) Summary {
	t.Helper()
	for i := 0; ; i++ {
		_, more := s.Current()
		if !more {
			break
		}
		answer := 0
		if i >= correct {
			answer = 1
		}
		require.True(t, s.Answer(answer).Accepted)
		s.Next()
	}
	return s.Finish()
}

func TestPerfectRunUnlocksEverything(t *testing.T) {
	session, ledger := newTestSession(t, 10, false)

	summary := run(t, session, 10)

	assert.Equal(t, 10, summary.Score)
	assert.Equal(t, 100, summary.Percent)
	assert.True(t, summary.BonusUnlocked)
	assert.Equal(t, ledger.Config().QuizCompletionBonus, summary.CurrencyAwarded)
	assert.False(t, summary.AlreadyAwardedToday)
	assert.False(t, summary.TriedEarly)

	state := ledger.State()
	assert.Equal(t, 1, state.TotalQuizzesTaken)
	assert.Equal(t, 10, state.TotalCorrect)
	require.Len(t, state.QuizScores, 1)
	assert.Equal(t, "2026-03-02", state.QuizScores[0].Date)
}

func TestCompletionBonusOncePerDay(t *testing.T) {
	first, ledger := newTestSession(t, 10, false)
	run(t, first, 10)

	second := New(ledger, fixedBuilder{}, quizWords(10), false)
	second.SetClock(func() time.Time {
		return time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC)
	})
	summary := run(t, second, 10)

	assert.Zero(t, summary.CurrencyAwarded)
	assert.True(t, summary.AlreadyAwardedToday)
	assert.False(t, summary.BonusUnlocked, "bonus already active")
}

func TestNineOfTenUnlocksBonus(t *testing.T) {
	session, ledger := newTestSession(t, 10, false)

	summary := run(t, session, 9)

	assert.Equal(t, 90, summary.Percent)
	assert.True(t, summary.BonusUnlocked)
	// 9 > 8 also clears the currency threshold
	assert.Equal(t, ledger.Config().QuizCompletionBonus, summary.CurrencyAwarded)
}

func TestExactThresholdScorePaysNoCurrency(t *testing.T) {
	session, _ := newTestSession(t, 10, false)

	// 8 of 10 meets neither gate: currency needs strictly more than 8,
	// the cap bonus needs 90 percent
	summary := run(t, session, 8)

	assert.Zero(t, summary.CurrencyAwarded)
	assert.False(t, summary.BonusUnlocked)
}

func TestLowScoreNoRewards(t *testing.T) {
	session, ledger := newTestSession(t, 10, false)

	summary := run(t, session, 5)

	assert.Equal(t, 50, summary.Percent)
	assert.False(t, summary.BonusUnlocked)
	assert.Zero(t, summary.CurrencyAwarded)
	assert.Zero(t, ledger.State().MiniCurrency)
	// the attempt is still recorded
	assert.Len(t, ledger.State().QuizScores, 1)
}

func TestDoubleAnswerIsNoOp(t *testing.T) {
	session, _ := newTestSession(t, 3, false)

	require.True(t, session.Answer(0).Accepted)
	assert.False(t, session.Answer(0).Accepted)
	assert.Equal(t, 1, session.Score())

	answered, total := session.Progress()
	assert.Equal(t, 0, answered)
	assert.Equal(t, 3, total)

	assert.True(t, session.Next())
	answered, _ = session.Progress()
	assert.Equal(t, 1, answered)
}

func TestAnswerReportsFinishedOnLastQuestion(t *testing.T) {
	session, _ := newTestSession(t, 2, false)

	outcome := session.Answer(1)
	assert.False(t, outcome.Finished)
	assert.False(t, outcome.Correct)
	assert.Equal(t, "definition a", outcome.Definition)
	assert.Equal(t, "example a", outcome.Example)

	session.Next()
	outcome = session.Answer(0)
	assert.True(t, outcome.Finished)

	assert.False(t, session.Next())
	_, more := session.Current()
	assert.False(t, more)
}

func TestTriedEarlyIsAdvisoryOnly(t *testing.T) {
	session, ledger := newTestSession(t, 10, true)

	summary := run(t, session, 10)

	assert.True(t, summary.TriedEarly)
	// scoring and rewards are identical to a regular run
	assert.True(t, summary.BonusUnlocked)
	assert.Equal(t, ledger.Config().QuizCompletionBonus, summary.CurrencyAwarded)
}

func TestMiniQuizLength(t *testing.T) {
	ledger := rewards.New(rewards.DefaultConfig(), &memStore{})
	rnd := rand.New(rand.NewSource(1))

	session := NewMini(ledger, fixedBuilder{}, quizWords(8), rnd)
	_, total := session.Progress()
	assert.Equal(t, MiniQuizLength, total)

	// Shorter lists are used whole
	session = NewMini(ledger, fixedBuilder{}, quizWords(3), rnd)
	_, total = session.Progress()
	assert.Equal(t, 3, total)
}

func TestEmptySessionFinish(t *testing.T) {
	session, ledger := newTestSession(t, 0, false)

	summary := session.Finish()

	assert.Zero(t, summary.Total)
	assert.Zero(t, summary.Percent)
	assert.Empty(t, ledger.State().QuizScores)
}
