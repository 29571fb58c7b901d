package database

import (
	"encoding/json"
	"fmt"

	"github.com/VCGamer/word-quest/pkg/models"
)

// StorageKey is the single key the learner snapshot is stored under.
const StorageKey = "vocab-app-state"

// StateRepository handles persistence of the learner state snapshot.
// The snapshot is always written as a whole; there is no partial update.
type StateRepository struct{}

// NewStateRepository creates a new repository instance
func NewStateRepository() *StateRepository {
	return &StateRepository{}
}

// Load reads the persisted snapshot and normalizes it into the current
// shape. A missing row or corrupt snapshot falls back to defaults and is
// never surfaced as an error to the caller.
func (r *StateRepository) Load() *models.LearnerState {
	var raw string
	query := "SELECT snapshot FROM learner_state WHERE storage_key = ?"
	if DB.DriverName() == "postgres" {
		query = "SELECT snapshot FROM learner_state WHERE storage_key = $1"
	}

	// A missing row (sql.ErrNoRows) and a read failure are treated the same.
	if err := DB.Get(&raw, query, StorageKey); err != nil {
		return models.DefaultLearnerState()
	}

	state := models.DefaultLearnerState()
	if err := json.Unmarshal([]byte(raw), state); err != nil {
		return models.DefaultLearnerState()
	}

	return normalize(state)
}

// Save serializes the full state and overwrites the snapshot row.
func (r *StateRepository) Save(state *models.LearnerState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal learner state: %v", err)
	}

	var query string
	if DB.DriverName() == "postgres" {
		query = `
			INSERT INTO learner_state (storage_key, snapshot, updated_at)
			VALUES ($1, $2, NOW())
			ON CONFLICT (storage_key) DO UPDATE SET snapshot = $2, updated_at = NOW()
		`
		_, err = DB.Exec(query, StorageKey, string(raw))
	} else {
		query = `
			INSERT INTO learner_state (storage_key, snapshot, updated_at)
			VALUES (?, ?, CURRENT_TIMESTAMP)
			ON CONFLICT (storage_key) DO UPDATE SET snapshot = excluded.snapshot, updated_at = CURRENT_TIMESTAMP
		`
		_, err = DB.Exec(query, StorageKey, string(raw))
	}
	if err != nil {
		return fmt.Errorf("failed to save learner state: %v", err)
	}

	return nil
}

// Reset replaces the snapshot with hard-coded defaults and returns them.
func (r *StateRepository) Reset() (*models.LearnerState, error) {
	state := models.DefaultLearnerState()
	if err := r.Save(state); err != nil {
		return nil, err
	}
	return state, nil
}

// normalize is the single migration step run at load time: it backfills any
// fields an older snapshot lacks so business logic never checks for absence.
func normalize(state *models.LearnerState) *models.LearnerState {
	if state.LearnedWords == nil {
		state.LearnedWords = []string{}
	}
	if state.QuizScores == nil {
		state.QuizScores = []models.QuizScore{}
	}
	if state.DailyRewardLog == nil {
		state.DailyRewardLog = map[string]*models.DayRecord{}
	}
	if state.MilestonesHit == nil {
		state.MilestonesHit = []int{}
	}
	// Older records predate the correct-streak and school-review fields;
	// the zero values the decoder left there are already the right defaults,
	// but a nil record must not survive.
	for key, rec := range state.DailyRewardLog {
		if rec == nil {
			state.DailyRewardLog[key] = &models.DayRecord{}
		}
	}
	return state
}
