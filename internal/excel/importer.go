package excel

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/VCGamer/word-quest/internal/database"
	"github.com/VCGamer/word-quest/pkg/models"
	"github.com/xuri/excelize/v2"
)

// ImportConfig defines the import configuration
type ImportConfig struct {
	FilePath           string // Path to the Excel or CSV file
	WordColumn         string // Column with the word
	DefinitionColumn   string // Column with the definition
	PartOfSpeechColumn string // Column with the part of speech
	ExamplesColumn     string // Column with example sentences (| separated)
	SynonymsColumn     string // Column with synonyms (| separated)
	ThemeColumn        string // Column with the theme name
	DifficultyColumn   string // Column with the difficulty (1-5)
	SheetName          string // Name of the sheet to import
	StartRow           int    // The row to start importing from (1-based index)
}

// DefaultImportConfig returns the default import configuration
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		WordColumn:         "A",
		DefinitionColumn:   "B",
		PartOfSpeechColumn: "C",
		ExamplesColumn:     "D",
		SynonymsColumn:     "E",
		ThemeColumn:        "F",
		DifficultyColumn:   "G",
		SheetName:          "Sheet1",
		StartRow:           2, // By default, start from the second row (skip header)
	}
}

// ImportResult holds the result of an import operation
type ImportResult struct {
	TotalProcessed int
	Imported       int
	Skipped        int
	Errors         []string
}

// ImportWords imports vocabulary items from an Excel or CSV file
func ImportWords(config ImportConfig) (*ImportResult, error) {
	ext := strings.ToLower(filepath.Ext(config.FilePath))

	if ext == ".csv" {
		return importFromCSV(config)
	}

	return importFromExcel(config)
}

// importFromExcel imports words from an Excel file
func importFromExcel(config ImportConfig) (*ImportResult, error) {
	f, err := excelize.OpenFile(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(config.SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %v", err)
	}

	wordRepo := database.NewWordRepository()
	result := &ImportResult{
		Errors: make([]string, 0),
	}

	for i, row := range rows {
		// Skip header rows
		if i < config.StartRow-1 {
			continue
		}

		result.TotalProcessed++

		if err := processRow(row, config, wordRepo, result); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", i+1, err))
		}
	}

	return result, nil
}

// importFromCSV imports words from a CSV file with the same column order as
// the default Excel layout.
func importFromCSV(config ImportConfig) (*ImportResult, error) {
	file, err := os.Open(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %v", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.LazyQuotes = true

	wordRepo := database.NewWordRepository()
	result := &ImportResult{
		Errors: make([]string, 0),
	}

	rowNum := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %v", err)
		}

		rowNum++

		// Skip header rows
		if rowNum < config.StartRow {
			continue
		}

		result.TotalProcessed++

		if err := processRow(row, config, wordRepo, result); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
		}
	}

	return result, nil
}

// processRow maps one row onto a vocabulary item and upserts it
func processRow(row []string, config ImportConfig, wordRepo *database.WordRepository, result *ImportResult) error {
	word := cell(row, config.WordColumn)
	definition := cell(row, config.DefinitionColumn)
	theme := cell(row, config.ThemeColumn)

	// Word, definition and theme are mandatory; anything else defaults
	if word == "" || definition == "" || theme == "" {
		result.Skipped++
		return nil
	}

	difficulty := 1
	if raw := cell(row, config.DifficultyColumn); raw != "" {
		d, err := strconv.Atoi(raw)
		if err != nil || d < 1 || d > 5 {
			return fmt.Errorf("invalid difficulty %q", raw)
		}
		difficulty = d
	}

	item := &models.Word{
		Word:         strings.ToLower(word),
		Definition:   definition,
		PartOfSpeech: cell(row, config.PartOfSpeechColumn),
		Examples:     splitCell(cell(row, config.ExamplesColumn)),
		Synonyms:     splitCell(cell(row, config.SynonymsColumn)),
		Theme:        theme,
		Difficulty:   difficulty,
	}

	if err := wordRepo.Upsert(item); err != nil {
		return err
	}

	result.Imported++
	return nil
}

func cell(row []string, column string) string {
	idx := columnToIndex(column)
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func splitCell(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// columnToIndex converts a column letter ("A", "B", ... "AA") to a 0-based index
func columnToIndex(column string) int {
	column = strings.ToUpper(strings.TrimSpace(column))
	if column == "" {
		return -1
	}
	index := 0
	for _, ch := range column {
		if ch < 'A' || ch > 'Z' {
			return -1
		}
		index = index*26 + int(ch-'A') + 1
	}
	return index - 1
}
