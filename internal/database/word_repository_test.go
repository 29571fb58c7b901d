package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VCGamer/word-quest/pkg/models"
)

func seedWord(t *testing.T, repo *WordRepository, word models.Word) {
	t.Helper()
	require.NoError(t, repo.Upsert(&word))
}

func TestWordUpsertRoundtrip(t *testing.T) {
	setupTestDB(t)
	repo := NewWordRepository()

	seedWord(t, repo, models.Word{
		Word:         "simmer",
		Definition:   "to cook gently just below boiling",
		PartOfSpeech: "verb",
		Examples:     []string{"Let the soup simmer for an hour.", "Simmer, don't boil."},
		Synonyms:     []string{"stew", "bubble gently"},
		Theme:        "Cooking & Kitchen",
		Difficulty:   2,
	})

	got, err := repo.GetByWord("simmer")
	require.NoError(t, err)
	assert.Equal(t, "to cook gently just below boiling", got.Definition)
	assert.Equal(t, "verb", got.PartOfSpeech)
	assert.Equal(t, []string{"Let the soup simmer for an hour.", "Simmer, don't boil."}, got.Examples)
	assert.Equal(t, []string{"stew", "bubble gently"}, got.Synonyms)
	assert.Equal(t, 2, got.Difficulty)
}

func TestWordUpsertUpdatesExistingRow(t *testing.T) {
	setupTestDB(t)
	repo := NewWordRepository()

	seedWord(t, repo, models.Word{Word: "simmer", Definition: "old definition", Theme: "Cooking & Kitchen"})
	seedWord(t, repo, models.Word{Word: "simmer", Definition: "new definition", Theme: "Cooking & Kitchen", Difficulty: 3})

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	got, err := repo.GetByWord("simmer")
	require.NoError(t, err)
	assert.Equal(t, "new definition", got.Definition)
	assert.Equal(t, 3, got.Difficulty)
}

func TestGetAllPreservesInsertionOrder(t *testing.T) {
	setupTestDB(t)
	repo := NewWordRepository()

	seedWord(t, repo, models.Word{Word: "whisk", Definition: "d", Theme: "Cooking & Kitchen"})
	seedWord(t, repo, models.Word{Word: "gravity", Definition: "d", Theme: "Space & Astronomy"})
	seedWord(t, repo, models.Word{Word: "knead", Definition: "d", Theme: "Cooking & Kitchen"})

	all, err := repo.GetAll()
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "whisk", all[0].Word)
	assert.Equal(t, "gravity", all[1].Word)
	assert.Equal(t, "knead", all[2].Word)
}

func TestGetByTheme(t *testing.T) {
	setupTestDB(t)
	repo := NewWordRepository()

	seedWord(t, repo, models.Word{Word: "whisk", Definition: "d", Theme: "Cooking & Kitchen"})
	seedWord(t, repo, models.Word{Word: "gravity", Definition: "d", Theme: "Space & Astronomy"})
	seedWord(t, repo, models.Word{Word: "knead", Definition: "d", Theme: "Cooking & Kitchen"})

	cooking, err := repo.GetByTheme("Cooking & Kitchen")
	require.NoError(t, err)
	require.Len(t, cooking, 2)
	assert.Equal(t, "whisk", cooking[0].Word)
	assert.Equal(t, "knead", cooking[1].Word)

	none, err := repo.GetByTheme("Mind & Emotions")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestIllustrationCacheRoundtrip(t *testing.T) {
	setupTestDB(t)
	repo := NewIllustrationRepository()

	_, ok, err := repo.Get("simmer")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.Put("simmer", []byte{0x89, 0x50, 0x4e, 0x47}))
	image, ok, err := repo.Get("simmer")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte{0x89, 0x50, 0x4e, 0x47}, image)

	// Put replaces an existing entry
	require.NoError(t, repo.Put("simmer", []byte{0x01}))
	image, _, err = repo.Get("simmer")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01}, image)
}
