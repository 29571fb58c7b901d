// Package quiz implements the session-scoped quiz scorer. A session's score
// lives only for the run; completion is recorded through the reward ledger.
package quiz

import (
	"math"
	"math/rand"
	"time"

	"github.com/VCGamer/word-quest/internal/calendar"
	"github.com/VCGamer/word-quest/internal/progression"
	"github.com/VCGamer/word-quest/internal/rewards"
	"github.com/VCGamer/word-quest/pkg/models"
)

// MiniQuizLength is the fixed question count of the short quiz variant.
const MiniQuizLength = 5

// Session is one in-flight quiz run. It is never persisted mid-session.
type Session struct {
	ledger    *rewards.Ledger
	questions []progression.Question
	now       func() time.Time

	current  int
	score    int
	answered bool

	// TriedEarly flags a session started before the weekly set was fully
	// mastered. Purely advisory: scoring and rewards are identical.
	TriedEarly bool
}

// AnswerOutcome describes one answered question.
type AnswerOutcome struct {
	Accepted     bool
	Correct      bool
	CorrectIndex int
	Definition   string
	Example      string
	Finished     bool
}

// Summary is the result of a completed session.
type Summary struct {
	Score               int
	Total               int
	Percent             int
	BonusUnlocked       bool // cap multiplier newly activated
	CurrencyAwarded     int  // completion bonus actually granted
	AlreadyAwardedToday bool
	Milestone           int
	TriedEarly          bool
}

// builder generates questions the same way the learning test phase does.
type builder interface {
	BuildQuestion(word models.Word) progression.Question
}

// New creates a full quiz over the given word list, one question per word.
// triedEarly marks a session attempted before the list was fully mastered.
func New(ledger *rewards.Ledger, b builder, words []models.Word, triedEarly bool) *Session {
	questions := make([]progression.Question, 0, len(words))
	for _, w := range words {
		questions = append(questions, b.BuildQuestion(w))
	}
	return &Session{
		ledger:     ledger,
		questions:  questions,
		now:        time.Now,
		TriedEarly: triedEarly,
	}
}

// NewMini creates a fixed-length mini quiz over a random subset of the list.
func NewMini(ledger *rewards.Ledger, b builder, words []models.Word, rnd *rand.Rand) *Session {
	shuffled := make([]models.Word, len(words))
	copy(shuffled, words)
	rnd.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if len(shuffled) > MiniQuizLength {
		shuffled = shuffled[:MiniQuizLength]
	}
	return New(ledger, b, shuffled, false)
}

// Current returns the active question. ok is false once the run is finished.
func (s *Session) Current() (progression.Question, bool) {
	if s.current >= len(s.questions) {
		return progression.Question{}, false
	}
	return s.questions[s.current], true
}

// Progress returns the answered count and the session length.
func (s *Session) Progress() (int, int) {
	return s.current, len(s.questions)
}

// Score returns the running score.
func (s *Session) Score() int {
	return s.score
}

// Answer records the learner's choice for the current question. Answering a
// question twice is a no-op; Next must be called to move on.
func (s *Session) Answer(index int) AnswerOutcome {
	q, ok := s.Current()
	if !ok || s.answered || index < 0 || index >= len(q.Options) {
		return AnswerOutcome{}
	}
	s.answered = true

	outcome := AnswerOutcome{
		Accepted:     true,
		Correct:      index == q.CorrectIndex,
		CorrectIndex: q.CorrectIndex,
		Definition:   q.Word.Definition,
	}
	if len(q.Word.Examples) > 0 {
		outcome.Example = q.Word.Examples[0]
	}
	if outcome.Correct {
		s.score++
	}
	outcome.Finished = s.current == len(s.questions)-1
	return outcome
}

// Next advances to the following question after an answer was given. It
// reports whether a question remains.
func (s *Session) Next() bool {
	if !s.answered {
		return s.current < len(s.questions)
	}
	s.answered = false
	s.current++
	return s.current < len(s.questions)
}

// Finish records the completed session: appends the score to the history,
// bumps lifetime counters, and evaluates the bonus-activation and
// completion-currency thresholds against the final score.
func (s *Session) Finish() Summary {
	total := len(s.questions)
	summary := Summary{
		Score:      s.score,
		Total:      total,
		TriedEarly: s.TriedEarly,
	}
	if total == 0 {
		return summary
	}
	summary.Percent = int(math.Round(float64(s.score) / float64(total) * 100))

	today := calendar.DateKey(s.now())
	s.ledger.AppendQuizScore(today, s.score, total)

	cfg := s.ledger.Config()
	if float64(s.score)/float64(total) >= cfg.BonusThreshold {
		summary.BonusUnlocked = s.ledger.ActivateBonus(today)
	}
	if s.score > cfg.QuizBonusScoreThreshold {
		awarded, milestone := s.ledger.AwardQuizCompletionBonus(today)
		summary.CurrencyAwarded = awarded
		summary.Milestone = milestone
		summary.AlreadyAwardedToday = awarded == 0
	}
	return summary
}

// SetClock overrides the session's clock. Intended for tests.
func (s *Session) SetClock(now func() time.Time) {
	s.now = now
}
