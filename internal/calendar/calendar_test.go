package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/VCGamer/word-quest/pkg/models"
)

func TestDateKey(t *testing.T) {
	moment := time.Date(2026, 3, 2, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "2026-03-02", DateKey(moment))
}

func TestWeekIndex(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want int
	}{
		{"first day of the year", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), 0},
		{"last day of week one", time.Date(2026, 1, 7, 0, 0, 0, 0, time.UTC), 0},
		{"first day of week two", time.Date(2026, 1, 8, 0, 0, 0, 0, time.UTC), 1},
		{"wraps after a full cycle", time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC), 0}, // day 71, week 10
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WeekIndex(tt.date, 10))
		})
	}
}

func TestWeekIndexZeroThemes(t *testing.T) {
	assert.Equal(t, 0, WeekIndex(time.Now(), 0))
}

func TestCurrentTheme(t *testing.T) {
	themes := []models.Theme{
		{Name: "Cooking & Kitchen", Emoji: "🍳"},
		{Name: "Space & Astronomy", Emoji: "🚀"},
	}

	week1 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	week2 := time.Date(2026, 1, 8, 0, 0, 0, 0, time.UTC)
	week3 := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "Cooking & Kitchen", CurrentTheme(week1, themes).Name)
	assert.Equal(t, "Space & Astronomy", CurrentTheme(week2, themes).Name)
	assert.Equal(t, "Cooking & Kitchen", CurrentTheme(week3, themes).Name, "cycles back")

	assert.Equal(t, models.Theme{}, CurrentTheme(week1, nil))
}

func TestWeeklyWordsFiltersByThemeInOrder(t *testing.T) {
	themes := []models.Theme{{Name: "Cooking & Kitchen"}}
	words := []models.Word{
		{Word: "simmer", Theme: "Cooking & Kitchen"},
		{Word: "gravity", Theme: "Space & Astronomy"},
		{Word: "ingredient", Theme: "Cooking & Kitchen"},
	}

	weekly := WeeklyWords(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), words, themes)

	assert.Len(t, weekly, 2)
	assert.Equal(t, "simmer", weekly[0].Word)
	assert.Equal(t, "ingredient", weekly[1].Word)
}
