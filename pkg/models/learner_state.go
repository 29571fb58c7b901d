package models

// DayRecord tracks a single day's reward economy. Entries are created lazily
// on first access and only removed by a full reset.
type DayRecord struct {
	Earned            int  `json:"earned"`              // screen-time minutes, 0..effective cap
	BonusActive       bool `json:"bonus_active"`        // cap multiplier unlocked for the day
	BonusAwardedToday bool `json:"bonus_awarded_today"` // once-per-day quiz completion currency
	CorrectStreak     int  `json:"correct_streak"`      // rolling correct-answer counter
	SchoolReviewDone  bool `json:"school_review_done"`
}

// QuizScore is one completed quiz session. The slice is append-only and
// chronological by append order.
type QuizScore struct {
	Date  string `json:"date"`
	Score int    `json:"score"`
	Total int    `json:"total"`
}

// LearnerState is the single persisted aggregate. It is loaded and saved as
// a whole on every mutation; there is no incremental diffing.
type LearnerState struct {
	LearnedWords      []string              `json:"learned_words"`
	QuizScores        []QuizScore           `json:"quiz_scores"`
	Streak            int                   `json:"streak"`
	LastVisitDate     string                `json:"last_visit_date"` // DateKey or empty
	TotalQuizzesTaken int                   `json:"total_quizzes_taken"`
	TotalCorrect      int                   `json:"total_correct"`
	MiniCurrency      int                   `json:"mini_currency"` // display value = MiniCurrency / cents-per-unit
	DailyRewardLog    map[string]*DayRecord `json:"daily_reward_log"`
	MilestonesHit     []int                 `json:"milestones_hit"`

	// School review bank rotation.
	SchoolBankIndex            int `json:"school_bank_index"`
	SchoolSessionCount         int `json:"school_session_count"`
	SchoolRewardClaimedForBank int `json:"school_reward_claimed_for_bank"` // 1-based bank number, 0 = unclaimed
}

// DefaultLearnerState returns the hard-coded defaults used for first runs,
// corrupt snapshots, and explicit resets.
func DefaultLearnerState() *LearnerState {
	return &LearnerState{
		LearnedWords:   []string{},
		QuizScores:     []QuizScore{},
		DailyRewardLog: map[string]*DayRecord{},
		MilestonesHit:  []int{},
	}
}

// HasLearned reports whether the word id is in the mastery set.
func (s *LearnerState) HasLearned(word string) bool {
	for _, w := range s.LearnedWords {
		if w == word {
			return true
		}
	}
	return false
}

// MarkLearned adds the word id to the mastery set. Adding an already-learned
// word is a no-op; it reports whether the word was newly added.
func (s *LearnerState) MarkLearned(word string) bool {
	if s.HasLearned(word) {
		return false
	}
	s.LearnedWords = append(s.LearnedWords, word)
	return true
}

// MilestoneHit reports whether the milestone threshold was already signalled.
func (s *LearnerState) MilestoneHit(threshold int) bool {
	for _, m := range s.MilestonesHit {
		if m == threshold {
			return true
		}
	}
	return false
}
