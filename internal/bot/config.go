package bot

// BotConfig represents the configuration for the bot
type BotConfig struct {
	// Number of recent quiz results shown on the stats card
	RecentQuizScores int
	// Mini-currency granted by the admin coins action
	AdminCoinGrant int
}

// DefaultConfig returns the default bot configuration
func DefaultConfig() *BotConfig {
	return &BotConfig{
		RecentQuizScores: 5,
		AdminCoinGrant:   100,
	}
}
