package models

import "time"

// Word represents a vocabulary item to be learned.
// Identity is the Word string, assumed unique across the whole dataset.
type Word struct {
	ID           int       `json:"id" db:"id"`
	Word         string    `json:"word" db:"word"`
	Definition   string    `json:"definition" db:"definition"`
	PartOfSpeech string    `json:"part_of_speech" db:"part_of_speech"`
	Examples     []string  `json:"examples" db:"-"`
	Synonyms     []string  `json:"synonyms" db:"-"`
	Theme        string    `json:"theme" db:"theme"`
	Difficulty   int       `json:"difficulty" db:"difficulty"` // 1-5 scale of difficulty
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Theme is one weekly study theme. The active theme is derived from the
// calendar week, cycling through the ordered theme list.
type Theme struct {
	Name  string `json:"name"`
	Emoji string `json:"emoji"`
}

// DefaultThemes is the built-in weekly rotation, in rotation order. Imported
// word lists should use these theme names; unknown themes still work but are
// never scheduled.
func DefaultThemes() []Theme {
	return []Theme{
		{Name: "Cooking & Kitchen", Emoji: "🍳"},
		{Name: "Blood & Human Body", Emoji: "🩸"},
		{Name: "Scientists & Research", Emoji: "🔬"},
		{Name: "Ocean & Marine Life", Emoji: "🌊"},
		{Name: "Space & Astronomy", Emoji: "🚀"},
		{Name: "Technology & Coding", Emoji: "🎮"},
		{Name: "Energy & Forces", Emoji: "⚡"},
		{Name: "Architecture & Building", Emoji: "🏗️"},
		{Name: "Plants & Nature", Emoji: "🌿"},
		{Name: "Mind & Emotions", Emoji: "🧠"},
	}
}
