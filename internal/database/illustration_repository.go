package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// IllustrationRepository caches fetched word illustrations
type IllustrationRepository struct{}

// NewIllustrationRepository creates a new repository instance
func NewIllustrationRepository() *IllustrationRepository {
	return &IllustrationRepository{}
}

// Get returns the cached image for a word, or (nil, false) when absent
func (r *IllustrationRepository) Get(word string) ([]byte, bool, error) {
	var image []byte

	query := "SELECT image FROM illustrations WHERE word = ?"
	if DB.DriverName() == "postgres" {
		query = strings.Replace(query, "?", "$1", 1)
	}

	err := DB.Get(&image, query, word)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get illustration for %q: %v", word, err)
	}
	return image, true, nil
}

// Put stores or replaces the cached image for a word
func (r *IllustrationRepository) Put(word string, image []byte) error {
	var query string
	if DB.DriverName() == "postgres" {
		query = `
			INSERT INTO illustrations (word, image) VALUES ($1, $2)
			ON CONFLICT (word) DO UPDATE SET image = $2
		`
	} else {
		query = `
			INSERT INTO illustrations (word, image) VALUES (?, ?)
			ON CONFLICT (word) DO UPDATE SET image = excluded.image
		`
	}

	if _, err := DB.Exec(query, word, image); err != nil {
		return fmt.Errorf("failed to cache illustration for %q: %v", word, err)
	}
	return nil
}
