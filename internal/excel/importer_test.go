package excel

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VCGamer/word-quest/internal/database"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "words.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func importCSV(t *testing.T, content string) *ImportResult {
	t.Helper()
	require.NoError(t, database.ConnectForTest())
	t.Cleanup(func() { database.Close() })

	config := DefaultImportConfig()
	config.FilePath = writeCSV(t, content)

	result, err := ImportWords(config)
	require.NoError(t, err)
	return result
}

func TestImportCSV(t *testing.T) {
	result := importCSV(t, `word,definition,part of speech,examples,synonyms,theme,difficulty
Simmer,to cook gently just below boiling,verb,Let it simmer.|Do not boil.,stew|bubble gently,Cooking & Kitchen,2
gravity,the force that pulls things down,noun,Gravity keeps us grounded.,pull,Space & Astronomy,
`)

	assert.Equal(t, 2, result.TotalProcessed)
	assert.Equal(t, 2, result.Imported)
	assert.Zero(t, result.Skipped)
	assert.Empty(t, result.Errors)

	repo := database.NewWordRepository()

	// Identifiers are normalized to lowercase
	simmer, err := repo.GetByWord("simmer")
	require.NoError(t, err)
	assert.Equal(t, "verb", simmer.PartOfSpeech)
	assert.Equal(t, []string{"Let it simmer.", "Do not boil."}, simmer.Examples)
	assert.Equal(t, []string{"stew", "bubble gently"}, simmer.Synonyms)
	assert.Equal(t, 2, simmer.Difficulty)

	// Missing difficulty defaults to 1
	gravity, err := repo.GetByWord("gravity")
	require.NoError(t, err)
	assert.Equal(t, 1, gravity.Difficulty)
}

func TestImportSkipsIncompleteRows(t *testing.T) {
	result := importCSV(t, `word,definition,part of speech,examples,synonyms,theme,difficulty
simmer,to cook gently,verb,,,Cooking & Kitchen,1
,missing the word itself,noun,,,Cooking & Kitchen,1
whisk,,verb,,,Cooking & Kitchen,1
knead,to press and fold dough,verb,,,,1
`)

	assert.Equal(t, 4, result.TotalProcessed)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 3, result.Skipped)

	count, err := database.NewWordRepository().Count()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestImportRejectsInvalidDifficulty(t *testing.T) {
	result := importCSV(t, `word,definition,part of speech,examples,synonyms,theme,difficulty
simmer,to cook gently,verb,,,Cooking & Kitchen,9
whisk,to beat quickly,verb,,,Cooking & Kitchen,abc
knead,to press and fold dough,verb,,,Cooking & Kitchen,3
`)

	assert.Equal(t, 1, result.Imported)
	require.Len(t, result.Errors, 2)
	assert.Contains(t, result.Errors[0], "invalid difficulty")
}

func TestColumnToIndex(t *testing.T) {
	assert.Equal(t, 0, columnToIndex("A"))
	assert.Equal(t, 6, columnToIndex("G"))
	assert.Equal(t, 26, columnToIndex("AA"))
	assert.Equal(t, -1, columnToIndex(""))
	assert.Equal(t, -1, columnToIndex("7"))
}
