// Package calendar derives date keys and the weekly study theme from the
// wall clock. All functions are pure.
package calendar

import (
	"time"

	"github.com/VCGamer/word-quest/pkg/models"
)

// dateKeyLayout is the calendar-day identifier format, no time component.
const dateKeyLayout = "2006-01-02"

// DateKey returns the calendar-day identifier for the given local time.
func DateKey(t time.Time) string {
	return t.Format(dateKeyLayout)
}

// Today returns the current day's DateKey using the local clock.
func Today() string {
	return DateKey(time.Now())
}

// WeekIndex returns the cyclic theme index for the given time:
// floor(daysSinceJan1 / 7) mod themeCount. Themes cycle continuously with
// no special year-boundary handling.
func WeekIndex(t time.Time, themeCount int) int {
	if themeCount <= 0 {
		return 0
	}
	return (t.YearDay() - 1) / 7 % themeCount
}

// CurrentTheme returns the active theme for the given time.
func CurrentTheme(t time.Time, themes []models.Theme) models.Theme {
	if len(themes) == 0 {
		return models.Theme{}
	}
	return themes[WeekIndex(t, len(themes))]
}

// WeeklyWords returns the subset of the dataset whose theme matches the
// active theme, in dataset order.
func WeeklyWords(t time.Time, words []models.Word, themes []models.Theme) []models.Word {
	theme := CurrentTheme(t, themes)
	var weekly []models.Word
	for _, w := range words {
		if w.Theme == theme.Name {
			weekly = append(weekly, w)
		}
	}
	return weekly
}
