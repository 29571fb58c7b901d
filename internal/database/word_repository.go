package database

import (
	"fmt"
	"strings"

	"github.com/VCGamer/word-quest/pkg/models"
)

// Examples and synonyms are stored as a single delimited column.
const listSeparator = "|"

// wordRow mirrors the words table layout.
type wordRow struct {
	ID           int    `db:"id"`
	Word         string `db:"word"`
	Definition   string `db:"definition"`
	PartOfSpeech string `db:"part_of_speech"`
	Examples     string `db:"examples"`
	Synonyms     string `db:"synonyms"`
	Theme        string `db:"theme"`
	Difficulty   int    `db:"difficulty"`
}

// WordRepository handles database operations for the vocabulary dataset
type WordRepository struct{}

// NewWordRepository creates a new repository instance
func NewWordRepository() *WordRepository {
	return &WordRepository{}
}

// GetAll returns the full dataset in dataset order
func (r *WordRepository) GetAll() ([]models.Word, error) {
	var rows []wordRow
	err := DB.Select(&rows, "SELECT id, word, definition, part_of_speech, examples, synonyms, theme, difficulty FROM words ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to get words: %v", err)
	}
	return fromRows(rows), nil
}

// GetByTheme returns words for a specific theme, in dataset order
func (r *WordRepository) GetByTheme(theme string) ([]models.Word, error) {
	var rows []wordRow

	query := "SELECT id, word, definition, part_of_speech, examples, synonyms, theme, difficulty FROM words WHERE theme = ? ORDER BY id"
	if DB.DriverName() == "postgres" {
		query = strings.Replace(query, "?", "$1", 1)
	}

	err := DB.Select(&rows, query, theme)
	if err != nil {
		return nil, fmt.Errorf("failed to get words by theme: %v", err)
	}
	return fromRows(rows), nil
}

// GetByWord returns a single word by its identifier
func (r *WordRepository) GetByWord(word string) (*models.Word, error) {
	var row wordRow

	query := "SELECT id, word, definition, part_of_speech, examples, synonyms, theme, difficulty FROM words WHERE word = ?"
	if DB.DriverName() == "postgres" {
		query = strings.Replace(query, "?", "$1", 1)
	}

	if err := DB.Get(&row, query, word); err != nil {
		return nil, fmt.Errorf("failed to get word %q: %v", word, err)
	}
	w := row.toModel()
	return &w, nil
}

// Upsert inserts a word or updates the existing row with the same identifier
func (r *WordRepository) Upsert(word *models.Word) error {
	var query string
	if DB.DriverName() == "postgres" {
		query = `
			INSERT INTO words (word, definition, part_of_speech, examples, synonyms, theme, difficulty)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (word) DO UPDATE SET
				definition = $2, part_of_speech = $3, examples = $4,
				synonyms = $5, theme = $6, difficulty = $7, updated_at = NOW()
		`
	} else {
		query = `
			INSERT INTO words (word, definition, part_of_speech, examples, synonyms, theme, difficulty)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT (word) DO UPDATE SET
				definition = excluded.definition, part_of_speech = excluded.part_of_speech,
				examples = excluded.examples, synonyms = excluded.synonyms,
				theme = excluded.theme, difficulty = excluded.difficulty,
				updated_at = CURRENT_TIMESTAMP
		`
	}

	_, err := DB.Exec(
		query,
		word.Word,
		word.Definition,
		word.PartOfSpeech,
		strings.Join(word.Examples, listSeparator),
		strings.Join(word.Synonyms, listSeparator),
		word.Theme,
		word.Difficulty,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert word %q: %v", word.Word, err)
	}
	return nil
}

// Count returns the number of words in the dataset
func (r *WordRepository) Count() (int, error) {
	var count int
	if err := DB.Get(&count, "SELECT COUNT(*) FROM words"); err != nil {
		return 0, fmt.Errorf("failed to count words: %v", err)
	}
	return count, nil
}

func (row wordRow) toModel() models.Word {
	return models.Word{
		ID:           row.ID,
		Word:         row.Word,
		Definition:   row.Definition,
		PartOfSpeech: row.PartOfSpeech,
		Examples:     splitList(row.Examples),
		Synonyms:     splitList(row.Synonyms),
		Theme:        row.Theme,
		Difficulty:   row.Difficulty,
	}
}

func fromRows(rows []wordRow) []models.Word {
	words := make([]models.Word, 0, len(rows))
	for _, row := range rows {
		words = append(words, row.toModel())
	}
	return words
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	return strings.Split(raw, listSeparator)
}
