// Package rewards implements the day-scoped and lifetime-scoped reward
// economy layered on top of learning events: screen-time minutes, the daily
// bonus multiplier, the visit streak, mini-currency and its milestones.
package rewards

import (
	"log"
	"sync"
	"time"

	"github.com/VCGamer/word-quest/internal/calendar"
	"github.com/VCGamer/word-quest/pkg/models"
)

// StateStore persists the learner state snapshot as a whole.
type StateStore interface {
	Load() *models.LearnerState
	Save(state *models.LearnerState) error
	Reset() (*models.LearnerState, error)
}

// Ledger owns the in-memory learner state and applies the reward rules.
// Every mutating operation persists the full state before returning. All
// operations are total: a cap or once-per-day gate already reached is a
// normal zero-effect outcome, not an error.
//
// The bot update loop and the reminder scheduler run on different
// goroutines; mu serializes every state access between them.
type Ledger struct {
	config Config
	store  StateStore

	mu    sync.Mutex
	state *models.LearnerState
	now   func() time.Time
}

// New loads the persisted state and returns a ledger over it.
func New(config Config, store StateStore) *Ledger {
	return &Ledger{
		config: config,
		store:  store,
		state:  store.Load(),
		now:    time.Now,
	}
}

// State exposes the underlying aggregate for view rendering on the update
// loop. Other goroutines must use the locked query methods instead.
func (l *Ledger) State() *models.LearnerState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Config returns the reward constants the ledger was built with.
func (l *Ledger) Config() Config {
	return l.config
}

// DayRecord returns the record for the given date, creating a zeroed one on
// first access.
func (l *Ledger) DayRecord(date string) *models.DayRecord {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.dayRecord(date)
}

func (l *Ledger) dayRecord(date string) *models.DayRecord {
	rec, ok := l.state.DailyRewardLog[date]
	if !ok {
		rec = &models.DayRecord{}
		l.state.DailyRewardLog[date] = rec
	}
	return rec
}

// EffectiveCap returns the day's minute cap: the base cap, or the inflated
// cap when the bonus is active.
func (l *Ledger) EffectiveCap(date string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.effectiveCap(date)
}

func (l *Ledger) effectiveCap(date string) int {
	if l.dayRecord(date).BonusActive {
		return int(float64(l.config.DailyCapMinutes) * l.config.BonusMultiplier)
	}
	return l.config.DailyCapMinutes
}

// TodayProgress returns the date's earned minutes, the effective cap and the
// current visit streak in one consistent read. Safe to call from any
// goroutine.
func (l *Ledger) TodayProgress(date string) (earned, cap, streak int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	rec := l.dayRecord(date)
	return rec.Earned, l.effectiveCap(date), l.state.Streak
}

// AwardMinute grants one screen-time minute for the date unless the
// effective cap is reached. It returns the number of minutes awarded (0 or 1).
func (l *Ledger) AwardMinute(date string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.awardMinute(date)
}

func (l *Ledger) awardMinute(date string) int {
	rec := l.dayRecord(date)
	if rec.Earned >= l.effectiveCap(date) {
		return 0
	}
	rec.Earned++
	l.persist()
	return 1
}

// CorrectResult describes the outcome of one tracked correct answer.
type CorrectResult struct {
	Streak        int
	MinuteAwarded bool
	CapReached    bool
	UntilNext     int // correct answers remaining before the next minute
}

// TrackCorrectAnswer increments the day's rolling correct-answer counter and
// awards one minute each time the counter reaches a multiple of the
// exchange-rate threshold.
func (l *Ledger) TrackCorrectAnswer(date string) CorrectResult {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec := l.dayRecord(date)
	rec.CorrectStreak++

	result := CorrectResult{Streak: rec.CorrectStreak}

	n := l.config.CorrectPerMinute
	if rec.CorrectStreak%n == 0 {
		result.MinuteAwarded = l.awardMinute(date) > 0
		result.UntilNext = n
		if !result.MinuteAwarded {
			// cap reached: awardMinute was a no-op, still persist the streak
			l.persist()
		}
	} else {
		result.UntilNext = n - rec.CorrectStreak%n
		l.persist()
	}

	result.CapReached = rec.Earned >= l.effectiveCap(date)
	return result
}

// ActivateBonus idempotently unlocks the cap multiplier for the date. It
// reports whether the bonus was newly activated.
func (l *Ledger) ActivateBonus(date string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec := l.dayRecord(date)
	if rec.BonusActive {
		return false
	}
	rec.BonusActive = true
	l.persist()
	return true
}

// AwardQuizCompletionBonus grants the lump mini-currency bonus at most once
// per day. It returns the amount awarded (0 when already claimed) and the
// milestone crossed by the award, if any.
func (l *Ledger) AwardQuizCompletionBonus(date string) (int, int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec := l.dayRecord(date)
	if rec.BonusAwardedToday {
		return 0, 0
	}
	rec.BonusAwardedToday = true
	_, milestone := l.awardCurrency(l.config.QuizCompletionBonus)
	return l.config.QuizCompletionBonus, milestone
}

// AwardCurrency unconditionally adds to the lifetime mini-currency balance
// and returns the new balance plus the first newly-crossed milestone
// threshold (0 when none). A milestone already signalled is never re-signalled.
func (l *Ledger) AwardCurrency(amount int) (int, int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.awardCurrency(amount)
}

func (l *Ledger) awardCurrency(amount int) (int, int) {
	l.state.MiniCurrency += amount

	milestone := 0
	for _, m := range l.config.Milestones {
		if l.state.MiniCurrency >= m && !l.state.MilestoneHit(m) {
			l.state.MilestonesHit = append(l.state.MilestonesHit, m)
			milestone = m
			break
		}
	}

	l.persist()
	return l.state.MiniCurrency, milestone
}

// UpdateStreak advances the consecutive-day visit streak: a repeat visit on
// the same day is a no-op, a visit the day after the last one increments the
// streak, anything else resets it to 1. Returns the current streak.
func (l *Ledger) UpdateStreak() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	today := calendar.DateKey(now)
	if l.state.LastVisitDate == today {
		return l.state.Streak
	}

	yesterday := calendar.DateKey(now.AddDate(0, 0, -1))
	if l.state.LastVisitDate == yesterday {
		l.state.Streak++
	} else {
		l.state.Streak = 1
	}
	l.state.LastVisitDate = today
	l.persist()
	return l.state.Streak
}

// MarkWordLearned adds a word to the mastery set. Marking an already-learned
// word again is a persisted no-op; it reports whether the word was newly
// mastered so callers can gate first-mastery side effects.
func (l *Ledger) MarkWordLearned(word string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.state.MarkLearned(word) {
		return false
	}
	l.persist()
	return true
}

// AppendQuizScore records a finished quiz session and bumps the lifetime
// counters.
func (l *Ledger) AppendQuizScore(date string, score, total int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.state.QuizScores = append(l.state.QuizScores, models.QuizScore{Date: date, Score: score, Total: total})
	l.state.TotalQuizzesTaken++
	l.state.TotalCorrect += score
	l.persist()
}

// SchoolResult describes the outcome of one completed school review session.
type SchoolResult struct {
	SessionCount int
	BankIndex    int
	BankRotated  bool
}

// CompleteSchoolSession marks today's school review done and advances the
// bank rotation after the configured number of sessions. bankCount is the
// number of available banks; the index wraps modulo that count.
func (l *Ledger) CompleteSchoolSession(date string, bankCount int) SchoolResult {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec := l.dayRecord(date)
	rec.SchoolReviewDone = true
	l.state.SchoolSessionCount++

	result := SchoolResult{SessionCount: l.state.SchoolSessionCount}
	if l.state.SchoolSessionCount >= l.config.SchoolSessionsPerBank {
		l.state.SchoolSessionCount = 0
		if bankCount > 0 {
			l.state.SchoolBankIndex = (l.state.SchoolBankIndex + 1) % bankCount
		}
		l.state.SchoolRewardClaimedForBank = 0 // re-arm the per-bank claim
		result.BankRotated = true
		result.SessionCount = 0
	}

	result.BankIndex = l.state.SchoolBankIndex
	l.persist()
	return result
}

// ClaimSchoolBankReward grants the per-bank mini-currency reward once per
// bank rotation. It returns the amount awarded (0 when already claimed) and
// any milestone crossed.
func (l *Ledger) ClaimSchoolBankReward() (int, int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	claimed := l.state.SchoolBankIndex + 1
	if l.state.SchoolRewardClaimedForBank == claimed {
		return 0, 0
	}
	l.state.SchoolRewardClaimedForBank = claimed
	_, milestone := l.awardCurrency(l.config.SchoolBankReward)
	return l.config.SchoolBankReward, milestone
}

// TotalMinutes returns the lifetime earned minutes across all days.
func (l *Ledger) TotalMinutes() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	total := 0
	for _, rec := range l.state.DailyRewardLog {
		total += rec.Earned
	}
	return total
}

// DisplayBalance converts the mini-currency balance to its display value.
func (l *Ledger) DisplayBalance() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return float64(l.state.MiniCurrency) / float64(l.config.CentsPerUnit)
}

// AdminSetMinutes overrides today's earned minutes, clamped to the range
// [0, effective cap]. The cap invariant holds even for overrides.
func (l *Ledger) AdminSetMinutes(date string, minutes int) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec := l.dayRecord(date)
	if minutes < 0 {
		minutes = 0
	}
	if cap := l.effectiveCap(date); minutes > cap {
		minutes = cap
	}
	rec.Earned = minutes
	l.persist()
	return rec.Earned
}

// AdminClearDay zeroes today's record for parental correction.
func (l *Ledger) AdminClearDay(date string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.state.DailyRewardLog[date] = &models.DayRecord{}
	l.persist()
}

// Reset irreversibly replaces the learner state with hard-coded defaults.
func (l *Ledger) Reset() *models.LearnerState {
	l.mu.Lock()
	defer l.mu.Unlock()

	state, err := l.store.Reset()
	if err != nil {
		log.Printf("Error resetting learner state: %v", err)
		state = models.DefaultLearnerState()
	}
	l.state = state
	return state
}

// SetClock overrides the ledger's clock. Intended for tests.
func (l *Ledger) SetClock(now func() time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.now = now
}

// persist writes the whole state through the store. Persistence failures are
// logged and swallowed so reward operations stay total. Callers hold mu.
func (l *Ledger) persist() {
	if err := l.store.Save(l.state); err != nil {
		log.Printf("Error saving learner state: %v", err)
	}
}
