package rewards

// Config holds the product-tuning constants of the reward economy. The
// values are configuration, not rules: the ledger never hard-codes them.
type Config struct {
	// DailyCapMinutes is the base screen-time cap per day.
	DailyCapMinutes int
	// BonusMultiplier inflates the cap once the daily bonus is active (> 1).
	BonusMultiplier float64
	// BonusThreshold is the quiz percentage (0..1) that activates the bonus.
	BonusThreshold float64
	// QuizBonusScoreThreshold is the absolute quiz score that must be
	// exceeded to earn the once-per-day completion bonus.
	QuizBonusScoreThreshold int
	// CorrectPerMinute is the correct-answer exchange rate for one minute.
	CorrectPerMinute int
	// CurrencyPerCorrect is mini-currency earned per correct spelling.
	CurrencyPerCorrect int
	// QuizCompletionBonus is the lump mini-currency for a qualifying quiz.
	QuizCompletionBonus int
	// CentsPerUnit converts the mini-currency balance to its display value.
	CentsPerUnit int
	// Milestones is the ascending list of lifetime balance thresholds.
	Milestones []int

	// School review bank rotation.
	SchoolSessionsPerBank int
	SchoolBankSize        int
	SchoolBankReward      int
}

// DefaultConfig returns the default reward configuration
func DefaultConfig() Config {
	return Config{
		DailyCapMinutes:         10,
		BonusMultiplier:         1.2,
		BonusThreshold:          0.9,
		QuizBonusScoreThreshold: 8,
		CorrectPerMinute:        5,
		CurrencyPerCorrect:      10,
		QuizCompletionBonus:     100,
		CentsPerUnit:            100,
		Milestones:              []int{500, 1000, 2500, 5000, 10000},
		SchoolSessionsPerBank:   3,
		SchoolBankSize:          10,
		SchoolBankReward:        200,
	}
}
