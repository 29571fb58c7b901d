// Package progression implements the per-word learning state machine:
// Study -> Test (multiple choice) -> Spell -> mastered, with retry back to
// Study on any mistake. It is scoped to the current week's word list and
// reports success events to the reward ledger.
package progression

import (
	"math/rand"
	"strings"
	"time"

	"github.com/VCGamer/word-quest/internal/calendar"
	"github.com/VCGamer/word-quest/internal/rewards"
	"github.com/VCGamer/word-quest/pkg/models"
)

// Phase is the learner's position in the per-word state machine.
type Phase string

const (
	// PhaseStudy presents the word read-only; no mutation.
	PhaseStudy Phase = "study"
	// PhaseTest is the 4-option multiple-choice check.
	PhaseTest Phase = "test"
	// PhaseSpell requires reproducing the word's exact spelling.
	PhaseSpell Phase = "spell"
	// PhaseComplete is the terminal weekly-complete state.
	PhaseComplete Phase = "complete"
)

// Question is a 4-option multiple-choice question: the word's own definition
// plus three distractors drawn from the rest of the dataset, shuffled.
type Question struct {
	Word         models.Word
	Options      []string
	CorrectIndex int
}

// Engine drives a learner through the weekly word list.
type Engine struct {
	ledger *rewards.Ledger
	words  []models.Word
	themes []models.Theme
	rnd    *rand.Rand
	now    func() time.Time

	phase      Phase
	learnIndex int
	question   *Question
	answered   bool
}

// NewEngine creates an engine over the full dataset and positions it at the
// first unlearned word of the active weekly list.
func NewEngine(ledger *rewards.Ledger, words []models.Word, themes []models.Theme) *Engine {
	e := &Engine{
		ledger: ledger,
		words:  words,
		themes: themes,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		now:    time.Now,
	}
	e.Restart()
	return e
}

// CurrentTheme returns the active weekly theme.
func (e *Engine) CurrentTheme() models.Theme {
	return calendar.CurrentTheme(e.now(), e.themes)
}

// WeeklyWords returns this week's word list in dataset order.
func (e *Engine) WeeklyWords() []models.Word {
	return calendar.WeeklyWords(e.now(), e.words, e.themes)
}

// Phase returns the current phase of the state machine.
func (e *Engine) Phase() Phase {
	return e.phase
}

// CurrentWord returns the word under study. ok is false in the terminal
// weekly-complete state.
func (e *Engine) CurrentWord() (models.Word, bool) {
	weekly := e.WeeklyWords()
	if e.phase == PhaseComplete || len(weekly) == 0 || e.learnIndex >= len(weekly) {
		return models.Word{}, false
	}
	return weekly[e.learnIndex], true
}

// Question returns the active test question, or nil outside the test phase.
func (e *Engine) Question() *Question {
	return e.question
}

// WeeklyComplete reports whether every word of the weekly list is mastered.
func (e *Engine) WeeklyComplete() bool {
	weekly := e.WeeklyWords()
	if len(weekly) == 0 {
		return false
	}
	for _, w := range weekly {
		if !e.ledger.State().HasLearned(w.Word) {
			return false
		}
	}
	return true
}

// Restart repositions the machine at the first unlearned word of the weekly
// list, or in the terminal state when the week is complete.
func (e *Engine) Restart() {
	e.question = nil
	e.answered = false

	if e.WeeklyComplete() {
		e.phase = PhaseComplete
		return
	}

	weekly := e.WeeklyWords()
	e.learnIndex = 0
	for i, w := range weekly {
		if !e.ledger.State().HasLearned(w.Word) {
			e.learnIndex = i
			break
		}
	}
	e.phase = PhaseStudy
}

// Jump moves to an arbitrary index of the weekly list and returns to the
// study phase for that word.
func (e *Engine) Jump(index int) {
	weekly := e.WeeklyWords()
	if index < 0 || index >= len(weekly) {
		return
	}
	e.learnIndex = index
	e.phase = PhaseStudy
	e.question = nil
	e.answered = false
}

// ConfirmStudy advances from study to the test phase on explicit learner
// confirmation, generating the multiple-choice question.
func (e *Engine) ConfirmStudy() *Question {
	word, ok := e.CurrentWord()
	if e.phase != PhaseStudy || !ok {
		return nil
	}
	q := e.BuildQuestion(word)
	e.question = &q
	e.answered = false
	e.phase = PhaseTest
	return e.question
}

// BuildQuestion constructs a 4-option question for the word: its own
// definition plus three definitions drawn uniformly at random from the rest
// of the dataset, in uniform random order.
func (e *Engine) BuildQuestion(word models.Word) Question {
	var others []models.Word
	for _, w := range e.words {
		if w.Word != word.Word {
			others = append(others, w)
		}
	}
	e.rnd.Shuffle(len(others), func(i, j int) {
		others[i], others[j] = others[j], others[i]
	})

	options := []string{word.Definition}
	for i := 0; i < 3 && i < len(others); i++ {
		options = append(options, others[i].Definition)
	}

	correct := 0
	e.rnd.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
		if correct == i {
			correct = j
		} else if correct == j {
			correct = i
		}
	})

	return Question{Word: word, Options: options, CorrectIndex: correct}
}

// TestResult describes the outcome of a multiple-choice answer.
type TestResult struct {
	Accepted     bool // false for double submits and out-of-phase answers
	Correct      bool
	CorrectIndex int
	Definition   string
}

// AnswerTest processes the learner's option choice. A wrong choice reveals
// the correct answer and returns the machine to the study phase for the same
// word; a correct choice advances to spelling. Answering an already-answered
// question is a no-op.
func (e *Engine) AnswerTest(index int) TestResult {
	if e.phase != PhaseTest || e.question == nil || e.answered {
		return TestResult{}
	}
	if index < 0 || index >= len(e.question.Options) {
		return TestResult{}
	}
	e.answered = true

	q := e.question
	result := TestResult{
		Accepted:     true,
		Correct:      index == q.CorrectIndex,
		CorrectIndex: q.CorrectIndex,
		Definition:   q.Word.Definition,
	}

	if result.Correct {
		e.phase = PhaseSpell
	} else {
		e.phase = PhaseStudy
	}
	e.question = nil
	e.answered = false
	return result
}

// SpellingHint returns the word with all letters masked except the first
// letter and any apostrophes, space-separated (e.g. "g _ _ _ _").
func SpellingHint(word string) string {
	parts := make([]string, 0, len(word))
	for i, ch := range word {
		if i == 0 || ch == '\'' {
			parts = append(parts, string(ch))
		} else {
			parts = append(parts, "_")
		}
	}
	return strings.Join(parts, " ")
}

// SpellResult describes the outcome of a spelling submission.
type SpellResult struct {
	Accepted       bool // false for empty submissions and out-of-phase input
	Correct        bool
	CorrectWord    string
	NewlyLearned   bool
	Reward         rewards.CorrectResult
	Currency       int
	Milestone      int
	WeeklyComplete bool
}

// SubmitSpelling checks the learner's spelling (case-insensitive). An empty
// or whitespace-only submission is rejected without consuming the turn. A
// wrong spelling reveals the word and returns to study; a correct spelling
// marks the word learned, reports the success to the ledger, and advances to
// the next unlearned word of the weekly list (wrapping).
func (e *Engine) SubmitSpelling(answer string) SpellResult {
	word, ok := e.CurrentWord()
	if e.phase != PhaseSpell || !ok {
		return SpellResult{}
	}

	answer = strings.TrimSpace(answer)
	if answer == "" {
		return SpellResult{}
	}

	result := SpellResult{
		Accepted:    true,
		CorrectWord: word.Word,
		Correct:     strings.EqualFold(answer, word.Word),
	}

	if !result.Correct {
		e.phase = PhaseStudy
		return result
	}

	today := calendar.DateKey(e.now())
	if e.ledger.MarkWordLearned(word.Word) {
		result.NewlyLearned = true
		result.Reward = e.ledger.TrackCorrectAnswer(today)
		currency := e.ledger.Config().CurrencyPerCorrect
		_, result.Milestone = e.ledger.AwardCurrency(currency)
		result.Currency = currency
	}

	if e.WeeklyComplete() {
		e.phase = PhaseComplete
		result.WeeklyComplete = true
		return result
	}

	// Advance to the next unlearned word, wrapping past any mastered
	// out of order
	weekly := e.WeeklyWords()
	if len(weekly) > 0 {
		next := (e.learnIndex + 1) % len(weekly)
		for e.ledger.State().HasLearned(weekly[next].Word) {
			next = (next + 1) % len(weekly)
		}
		e.learnIndex = next
	}
	e.phase = PhaseStudy
	return result
}

// MasteredWords returns every mastered word of the dataset, in dataset order.
func (e *Engine) MasteredWords() []models.Word {
	var mastered []models.Word
	for _, w := range e.words {
		if e.ledger.State().HasLearned(w.Word) {
			mastered = append(mastered, w)
		}
	}
	return mastered
}

// DrillWord picks a random mastered word for the unlimited spelling drill.
// ok is false while nothing is mastered yet.
func (e *Engine) DrillWord() (models.Word, bool) {
	mastered := e.MasteredWords()
	if len(mastered) == 0 {
		return models.Word{}, false
	}
	return mastered[e.rnd.Intn(len(mastered))], true
}

// SubmitDrillSpelling checks one drill spelling. Correct answers keep earning
// minutes and currency through the ledger but never touch mastery state.
func (e *Engine) SubmitDrillSpelling(word models.Word, answer string) SpellResult {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return SpellResult{}
	}

	result := SpellResult{
		Accepted:    true,
		CorrectWord: word.Word,
		Correct:     strings.EqualFold(answer, word.Word),
	}
	if !result.Correct {
		return result
	}

	today := calendar.DateKey(e.now())
	result.Reward = e.ledger.TrackCorrectAnswer(today)
	currency := e.ledger.Config().CurrencyPerCorrect
	_, result.Milestone = e.ledger.AwardCurrency(currency)
	result.Currency = currency
	return result
}

// SchoolBanks splits the dataset into the fixed supplementary review lists,
// in dataset order.
func (e *Engine) SchoolBanks() [][]models.Word {
	size := e.ledger.Config().SchoolBankSize
	if size <= 0 || len(e.words) == 0 {
		return nil
	}
	var banks [][]models.Word
	for start := 0; start < len(e.words); start += size {
		end := start + size
		if end > len(e.words) {
			end = len(e.words)
		}
		banks = append(banks, e.words[start:end])
	}
	return banks
}

// CurrentSchoolBank returns the supplementary list the rotation points at.
func (e *Engine) CurrentSchoolBank() []models.Word {
	banks := e.SchoolBanks()
	if len(banks) == 0 {
		return nil
	}
	return banks[e.ledger.State().SchoolBankIndex%len(banks)]
}

// CompleteSchoolSession records one finished school review session for today.
func (e *Engine) CompleteSchoolSession() rewards.SchoolResult {
	today := calendar.DateKey(e.now())
	return e.ledger.CompleteSchoolSession(today, len(e.SchoolBanks()))
}

// ClaimSchoolReward claims the once-per-bank currency reward.
func (e *Engine) ClaimSchoolReward() (int, int) {
	return e.ledger.ClaimSchoolBankReward()
}

// SetClock overrides the engine's clock. Intended for tests.
func (e *Engine) SetClock(now func() time.Time) {
	e.now = now
}

// SetRand seeds the engine's random source. Intended for tests.
func (e *Engine) SetRand(rnd *rand.Rand) {
	e.rnd = rnd
}
