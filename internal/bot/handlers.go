package bot

import (
	"fmt"
	"math/rand"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/VCGamer/word-quest/internal/calendar"
	"github.com/VCGamer/word-quest/internal/excel"
	"github.com/VCGamer/word-quest/internal/progression"
	"github.com/VCGamer/word-quest/internal/quiz"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

var optionLetters = []string{"A", "B", "C", "D"}

// handleCallback routes inline keyboard presses
func (b *Bot) handleCallback(callback *tgbotapi.CallbackQuery) error {
	// Acknowledge so the client stops the spinner
	if _, err := b.client().Request(tgbotapi.NewCallback(callback.ID, "")); err != nil {
		return err
	}

	chatID := callback.Message.Chat.ID
	data := callback.Data

	switch {
	case data == "menu":
		return b.sendWithKeyboard(chatID, "What next?", b.mainMenuButtons())
	case data == "learn":
		return b.showLearn(chatID)
	case data == "study_ok":
		return b.showTest(chatID)
	case strings.HasPrefix(data, "test:"):
		index, _ := strconv.Atoi(strings.TrimPrefix(data, "test:"))
		return b.handleTestAnswer(chatID, index)
	case strings.HasPrefix(data, "jump:"):
		index, _ := strconv.Atoi(strings.TrimPrefix(data, "jump:"))
		b.engine.Jump(index)
		return b.showLearn(chatID)
	case data == "quiz":
		return b.showQuizGate(chatID)
	case data == "quiz_start":
		return b.startQuiz(chatID, false)
	case data == "quiz_try":
		return b.startQuiz(chatID, true)
	case data == "quiz_mini":
		return b.startMiniQuiz(chatID)
	case strings.HasPrefix(data, "quiz:"):
		index, _ := strconv.Atoi(strings.TrimPrefix(data, "quiz:"))
		return b.handleQuizAnswer(chatID, index)
	case data == "quiz_next":
		return b.showQuizQuestion(chatID)
	case data == "review":
		return b.showWeeklyReview(chatID)
	case data == "drill":
		return b.startDrill(chatID)
	case data == "school":
		return b.showSchoolReview(chatID)
	case data == "school_done":
		return b.handleSchoolDone(chatID)
	case data == "school_claim":
		return b.handleSchoolClaim(chatID)
	case data == "vault":
		return b.showVault(chatID)
	case data == "stats":
		return b.showStats(chatID)
	case data == "reset":
		return b.confirmReset(chatID)
	case data == "reset_yes":
		return b.handleReset(chatID)
	case data == "reset_no":
		return b.sendWithKeyboard(chatID, "Phew! Nothing was reset.", b.mainMenuButtons())
	case strings.HasPrefix(data, "admin:"):
		return b.handleAdminAction(chatID, callback.From.ID, strings.TrimPrefix(data, "admin:"))
	default:
		return nil
	}
}

// rewardBar summarizes today's earnings, shown above learning prompts
func (b *Bot) rewardBar() string {
	today := calendar.Today()
	rec := b.ledger.DayRecord(today)
	cap := b.ledger.EffectiveCap(today)
	bonus := ""
	if rec.BonusActive {
		bonus = " 🔥bonus"
	}
	return fmt.Sprintf("🎮 %d/%d min%s | 💰 $%.2f", rec.Earned, cap, bonus, b.ledger.DisplayBalance())
}

// showLearn renders the current position of the progression engine
func (b *Bot) showLearn(chatID int64) error {
	b.chatModes[chatID] = modeIdle

	if b.engine.Phase() == progression.PhaseComplete {
		return b.showQuizGate(chatID)
	}

	word, ok := b.engine.CurrentWord()
	if !ok {
		return b.send(chatID, "No words for this week yet. Ask a grown-up to /import a word list!")
	}

	theme := b.engine.CurrentTheme()

	// Attach the illustration when it is already generated; otherwise warm
	// the cache for the next visit without blocking the card.
	if image, ok := b.illustrator.Cached(word.Word); ok {
		photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: word.Word + ".png", Bytes: image})
		if _, err := b.client().Send(photo); err != nil {
			return err
		}
	} else {
		b.illustrator.Prefetch(word.Word, word.Definition)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n\n%s %s\n\n📖 STUDY\n\n", b.rewardBar(), theme.Emoji, theme.Name)
	fmt.Fprintf(&sb, "%s (%s)\n%s\n", strings.ToUpper(word.Word), word.PartOfSpeech, word.Definition)
	for _, ex := range word.Examples {
		fmt.Fprintf(&sb, "\n🎯 %s", ex)
	}
	if len(word.Synonyms) > 0 {
		fmt.Fprintf(&sb, "\n\n💡 Similar: %s", strings.Join(word.Synonyms, ", "))
	}

	rows := [][]MenuButton{
		{{Text: "✅ GOT IT — test me!", CallbackData: "study_ok"}},
	}
	if nav := b.weeklyNavButtons(); nav != nil {
		rows = append(rows, nav)
	}
	rows = append(rows, []MenuButton{{Text: "🏠 Menu", CallbackData: "menu"}})
	return b.sendWithKeyboard(chatID, sb.String(), rows)
}

// weeklyNavButtons renders one jump button per weekly word, marking mastered
// ones with a check.
func (b *Bot) weeklyNavButtons() []MenuButton {
	weekly := b.engine.WeeklyWords()
	if len(weekly) < 2 {
		return nil
	}
	state := b.ledger.State()
	var row []MenuButton
	for i, w := range weekly {
		label := strconv.Itoa(i + 1)
		if state.HasLearned(w.Word) {
			label += "✓"
		}
		row = append(row, MenuButton{Text: label, CallbackData: fmt.Sprintf("jump:%d", i)})
	}
	return row
}

// showTest sends the multiple-choice question for the current word
func (b *Bot) showTest(chatID int64) error {
	q := b.engine.ConfirmStudy()
	if q == nil {
		return b.showLearn(chatID)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n\n🎯 TEST\n\nWhat does this word mean?\n\n%s (%s)", b.rewardBar(), strings.ToUpper(q.Word.Word), q.Word.PartOfSpeech)

	var rows [][]MenuButton
	for i, opt := range q.Options {
		rows = append(rows, []MenuButton{{
			Text:         fmt.Sprintf("%s. %s", optionLetters[i], opt),
			CallbackData: fmt.Sprintf("test:%d", i),
		}})
	}
	return b.sendWithKeyboard(chatID, sb.String(), rows)
}

// handleTestAnswer processes a multiple-choice selection in the learn flow
func (b *Bot) handleTestAnswer(chatID int64, index int) error {
	result := b.engine.AnswerTest(index)
	if !result.Accepted {
		return nil // double submit, ignore
	}

	if !result.Correct {
		// No pause before the next card: the handler runs on the single
		// update loop, and the correction stays visible above it anyway
		text := fmt.Sprintf("❌ Not quite! The answer is:\n%s\n\nLet's study it again.", result.Definition)
		if err := b.send(chatID, text); err != nil {
			return err
		}
		return b.showLearn(chatID)
	}

	word, _ := b.engine.CurrentWord()
	b.chatModes[chatID] = modeSpelling
	text := fmt.Sprintf(
		"✅ Correct! Now spell it!\n\n✏️ SPELL\n\nType the word that means:\n%s\n\nHint: %s",
		word.Definition, progression.SpellingHint(word.Word),
	)
	return b.send(chatID, text)
}

// handleSpellingInput checks a typed spelling in the learn flow
func (b *Bot) handleSpellingInput(chatID int64, answer string) error {
	result := b.engine.SubmitSpelling(answer)
	if !result.Accepted {
		return nil // empty submission, doesn't consume the turn
	}

	b.chatModes[chatID] = modeIdle

	if !result.Correct {
		text := fmt.Sprintf("❌ Not quite! The correct spelling is:\n%s\n\nBack to study!", result.CorrectWord)
		if err := b.send(chatID, text); err != nil {
			return err
		}
		return b.showLearn(chatID)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "✅ Perfect! %s mastered!", strings.ToUpper(result.CorrectWord))
	if result.NewlyLearned {
		if result.Reward.MinuteAwarded {
			sb.WriteString("\n🎮 +1 MINUTE!")
			if result.Reward.CapReached {
				sb.WriteString(" Daily cap reached!")
			}
		} else {
			fmt.Fprintf(&sb, "\n🎯 %d more correct for the next minute", result.Reward.UntilNext)
		}
		fmt.Fprintf(&sb, "\n💰 +%d coins", result.Currency)
		if result.Milestone > 0 {
			fmt.Fprintf(&sb, "\n🏆 MILESTONE! You passed %d coins!", result.Milestone)
		}
	}

	if err := b.send(chatID, sb.String()); err != nil {
		return err
	}

	if result.WeeklyComplete {
		return b.showQuizGate(chatID)
	}
	return b.showLearn(chatID)
}

// showQuizGate shows the weekly-complete gate or the try-anyway prompt
func (b *Bot) showQuizGate(chatID int64) error {
	weekly := b.engine.WeeklyWords()
	theme := b.engine.CurrentTheme()
	learned := 0
	for _, w := range weekly {
		if b.ledger.State().HasLearned(w.Word) {
			learned++
		}
	}

	if b.engine.WeeklyComplete() {
		text := fmt.Sprintf(
			"🏆 ALL WORDS STUDIED!\n%s %s — %d/%d mastered\n\nScore 9+ = 💰 bonus | 90%%+ = 1.2x cap!",
			theme.Emoji, theme.Name, learned, len(weekly),
		)
		return b.sendWithKeyboard(chatID, text, [][]MenuButton{
			{{Text: "⚔️ TAKE THE QUIZ!", CallbackData: "quiz_start"}},
			{{Text: "⚡ Mini quiz", CallbackData: "quiz_mini"}},
			{{Text: "📖 Review words", CallbackData: "review"}, {Text: "✏️ Spelling drill", CallbackData: "drill"}},
			{{Text: "🏠 Menu", CallbackData: "menu"}},
		})
	}

	unstudied := len(weekly) - learned
	text := fmt.Sprintf(
		"📚 Study %d more word(s) first!\nYou've learned %d of %d for %s %s",
		unstudied, learned, len(weekly), theme.Emoji, theme.Name,
	)
	return b.sendWithKeyboard(chatID, text, [][]MenuButton{
		{{Text: "📖 Go Learn", CallbackData: "learn"}},
		{{Text: "💪 Try Anyway", CallbackData: "quiz_try"}},
	})
}

// startQuiz begins a full quiz session over the weekly list
func (b *Bot) startQuiz(chatID int64, triedEarly bool) error {
	weekly := b.engine.WeeklyWords()
	if len(weekly) == 0 {
		return b.send(chatID, "No words to quiz on yet!")
	}
	b.quizSessions[chatID] = quiz.New(b.ledger, b.engine, weekly, triedEarly)
	return b.showQuizQuestion(chatID)
}

// startMiniQuiz begins the fixed-length mini quiz variant
func (b *Bot) startMiniQuiz(chatID int64) error {
	weekly := b.engine.WeeklyWords()
	if len(weekly) == 0 {
		return b.send(chatID, "No words to quiz on yet!")
	}
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	b.quizSessions[chatID] = quiz.NewMini(b.ledger, b.engine, weekly, rnd)
	return b.showQuizQuestion(chatID)
}

// showQuizQuestion sends the active question of the chat's quiz session
func (b *Bot) showQuizQuestion(chatID int64) error {
	session, ok := b.quizSessions[chatID]
	if !ok {
		return b.showQuizGate(chatID)
	}

	session.Next()
	q, more := session.Current()
	if !more {
		return b.finishQuiz(chatID, session)
	}

	answered, total := session.Progress()
	var sb strings.Builder
	fmt.Fprintf(&sb, "⚔️ BOSS QUIZ — Q%d/%d | Score: %d\n\nWhat does this word mean?\n\n%s (%s)",
		answered+1, total, session.Score(), strings.ToUpper(q.Word.Word), q.Word.PartOfSpeech)

	var rows [][]MenuButton
	for i, opt := range q.Options {
		rows = append(rows, []MenuButton{{
			Text:         fmt.Sprintf("%s. %s", optionLetters[i], opt),
			CallbackData: fmt.Sprintf("quiz:%d", i),
		}})
	}
	return b.sendWithKeyboard(chatID, sb.String(), rows)
}

// handleQuizAnswer processes an option press inside a quiz session
func (b *Bot) handleQuizAnswer(chatID int64, index int) error {
	session, ok := b.quizSessions[chatID]
	if !ok {
		return nil
	}

	outcome := session.Answer(index)
	if !outcome.Accepted {
		return nil // double submit, ignore
	}

	var sb strings.Builder
	if outcome.Correct {
		sb.WriteString("✅ Correct! Nice one!")
	} else {
		fmt.Fprintf(&sb, "❌ Not quite! The answer is:\n%s", outcome.Definition)
		if outcome.Example != "" {
			fmt.Fprintf(&sb, "\n\n🎯 %s", outcome.Example)
		}
	}

	next := "Next ▶"
	if outcome.Finished {
		next = "🏁 Results"
	}
	return b.sendWithKeyboard(chatID, sb.String(), [][]MenuButton{
		{{Text: next, CallbackData: "quiz_next"}},
	})
}

// finishQuiz records the session and renders the result summary
func (b *Bot) finishQuiz(chatID int64, session *quiz.Session) error {
	delete(b.quizSessions, chatID)
	summary := session.Finish()

	var sb strings.Builder
	fmt.Fprintf(&sb, "⚔️ QUEST COMPLETE!\n\n%d / %d — %d%%\n", summary.Score, summary.Total, summary.Percent)

	switch {
	case summary.Percent == 100:
		sb.WriteString("🏆 PERFECT! Word Master!\n")
	case summary.Percent >= 80:
		sb.WriteString("🌟 Epic! Almost flawless!\n")
	case summary.Percent >= 60:
		sb.WriteString("👍 Good run! Keep grinding!\n")
	default:
		sb.WriteString("💪 Keep practising! You'll level up!\n")
	}

	if summary.CurrencyAwarded > 0 {
		fmt.Fprintf(&sb, "\n💰 +%d coins quiz bonus! Balance: $%.2f", summary.CurrencyAwarded, b.ledger.DisplayBalance())
	}
	if summary.AlreadyAwardedToday {
		sb.WriteString("\n💰 Already earned the quiz bonus today! Come back tomorrow!")
	}
	if summary.Milestone > 0 {
		fmt.Fprintf(&sb, "\n🏆 MILESTONE! You passed %d coins!", summary.Milestone)
	}
	if summary.BonusUnlocked {
		today := calendar.Today()
		fmt.Fprintf(&sb, "\n🔥 1.2x BONUS UNLOCKED! Today's cap: %d minutes!", b.ledger.EffectiveCap(today))
	}
	if summary.TriedEarly {
		sb.WriteString("\n📚 Brave try before finishing the week's words!")
	}

	return b.sendWithKeyboard(chatID, sb.String(), [][]MenuButton{
		{{Text: "🔄 Retry", CallbackData: "quiz_start"}, {Text: "📊 Stats", CallbackData: "stats"}},
		{{Text: "🏠 Menu", CallbackData: "menu"}},
	})
}

// showWeeklyReview renders a read-only pass over this week's words. Nothing
// here mutates state.
func (b *Bot) showWeeklyReview(chatID int64) error {
	weekly := b.engine.WeeklyWords()
	if len(weekly) == 0 {
		return b.send(chatID, "No words for this week yet!")
	}

	theme := b.engine.CurrentTheme()
	state := b.ledger.State()

	var sb strings.Builder
	fmt.Fprintf(&sb, "📖 REVIEW — %s %s\n", theme.Emoji, theme.Name)
	for _, w := range weekly {
		mark := "▫️"
		if state.HasLearned(w.Word) {
			mark = "✅"
		}
		fmt.Fprintf(&sb, "\n%s %s (%s)\n%s\n", mark, strings.ToUpper(w.Word), w.PartOfSpeech, w.Definition)
	}

	return b.sendWithKeyboard(chatID, sb.String(), [][]MenuButton{
		{{Text: "⚔️ Quiz", CallbackData: "quiz"}, {Text: "🏠 Menu", CallbackData: "menu"}},
	})
}

// startDrill picks a mastered word and awaits its spelling
func (b *Bot) startDrill(chatID int64) error {
	word, ok := b.engine.DrillWord()
	if !ok {
		return b.send(chatID, "Master some words first, then come back to drill them!")
	}

	b.drillWords[chatID] = word
	b.chatModes[chatID] = modeDrill

	text := fmt.Sprintf(
		"%s\n\n✏️ SPELLING DRILL\n\nType the word that means:\n%s\n\nHint: %s",
		b.rewardBar(), word.Definition, progression.SpellingHint(word.Word),
	)
	return b.send(chatID, text)
}

// handleDrillInput checks a typed drill spelling
func (b *Bot) handleDrillInput(chatID int64, answer string) error {
	word, ok := b.drillWords[chatID]
	if !ok {
		b.chatModes[chatID] = modeIdle
		return nil
	}

	result := b.engine.SubmitDrillSpelling(word, answer)
	if !result.Accepted {
		return nil
	}

	var sb strings.Builder
	if result.Correct {
		fmt.Fprintf(&sb, "✅ Perfect spelling! +%d coins", result.Currency)
		if result.Reward.MinuteAwarded {
			sb.WriteString("\n🎮 +1 MINUTE!")
		}
		if result.Milestone > 0 {
			fmt.Fprintf(&sb, "\n🏆 MILESTONE! You passed %d coins!", result.Milestone)
		}
	} else {
		fmt.Fprintf(&sb, "❌ Not quite! It's spelled: %s", result.CorrectWord)
	}
	if err := b.send(chatID, sb.String()); err != nil {
		return err
	}

	// Keep drilling until the learner leaves
	return b.startDrill(chatID)
}

// showSchoolReview renders the current supplementary bank session
func (b *Bot) showSchoolReview(chatID int64) error {
	bank := b.engine.CurrentSchoolBank()
	if len(bank) == 0 {
		return b.send(chatID, "No school words loaded yet. Ask a grown-up to /import a word list!")
	}

	state := b.ledger.State()
	var sb strings.Builder
	fmt.Fprintf(&sb, "🏫 SCHOOL REVIEW — bank %d, session %d/%d\n\n",
		state.SchoolBankIndex+1, state.SchoolSessionCount+1, b.ledger.Config().SchoolSessionsPerBank)
	for _, w := range bank {
		fmt.Fprintf(&sb, "• %s — %s\n", w.Word, w.Definition)
	}

	today := calendar.Today()
	buttons := [][]MenuButton{
		{{Text: "✅ Done reviewing!", CallbackData: "school_done"}},
	}
	if b.ledger.DayRecord(today).SchoolReviewDone {
		buttons = [][]MenuButton{
			{{Text: "💰 Claim bank reward", CallbackData: "school_claim"}},
			{{Text: "🏠 Menu", CallbackData: "menu"}},
		}
	}
	return b.sendWithKeyboard(chatID, sb.String(), buttons)
}

// handleSchoolDone records one completed school session
func (b *Bot) handleSchoolDone(chatID int64) error {
	today := calendar.Today()
	if b.ledger.DayRecord(today).SchoolReviewDone {
		return b.sendWithKeyboard(chatID, "Today's school review is already counted. See you tomorrow!", [][]MenuButton{
			{{Text: "💰 Claim bank reward", CallbackData: "school_claim"}},
			{{Text: "🏠 Menu", CallbackData: "menu"}},
		})
	}

	result := b.engine.CompleteSchoolSession()

	var sb strings.Builder
	sb.WriteString("✅ School review done for today!")
	if result.BankRotated {
		fmt.Fprintf(&sb, "\n🔄 New word bank unlocked: bank %d!", result.BankIndex+1)
	}
	return b.sendWithKeyboard(chatID, sb.String(), [][]MenuButton{
		{{Text: "💰 Claim bank reward", CallbackData: "school_claim"}},
		{{Text: "🏠 Menu", CallbackData: "menu"}},
	})
}

// handleSchoolClaim claims the once-per-bank reward
func (b *Bot) handleSchoolClaim(chatID int64) error {
	awarded, milestone := b.engine.ClaimSchoolReward()
	if awarded == 0 {
		return b.send(chatID, "Already claimed for this bank! Finish the sessions to unlock the next one.")
	}
	text := fmt.Sprintf("💰 +%d coins school reward! Balance: $%.2f", awarded, b.ledger.DisplayBalance())
	if milestone > 0 {
		text += fmt.Sprintf("\n🏆 MILESTONE! You passed %d coins!", milestone)
	}
	return b.send(chatID, text)
}

// showVault lists mastered words grouped by theme
func (b *Bot) showVault(chatID int64) error {
	state := b.ledger.State()
	if len(state.LearnedWords) == 0 {
		return b.send(chatID, "🔒 Your vault is empty! Start learning words to fill your collection!")
	}

	byTheme := make(map[string][]string)
	for _, w := range b.engine.MasteredWords() {
		byTheme[w.Theme] = append(byTheme[w.Theme], w.Word)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "🔒 WORD VAULT — %d words\n", len(state.LearnedWords))
	for _, theme := range b.themes {
		if learned := byTheme[theme.Name]; len(learned) > 0 {
			fmt.Fprintf(&sb, "\n%s %s: %s", theme.Emoji, theme.Name, strings.Join(learned, ", "))
		}
	}
	return b.send(chatID, sb.String())
}

// showStats renders the stats HQ view
func (b *Bot) showStats(chatID int64) error {
	state := b.ledger.State()
	today := calendar.Today()
	rec := b.ledger.DayRecord(today)

	avgScore := 0
	totalPossible := 0
	for _, s := range state.QuizScores {
		totalPossible += s.Total
	}
	if totalPossible > 0 {
		avgScore = state.TotalCorrect * 100 / totalPossible
	}

	var sb strings.Builder
	sb.WriteString("📊 STATS HQ\n\n")
	fmt.Fprintf(&sb, "💰 Balance: $%.2f\n", b.ledger.DisplayBalance())
	fmt.Fprintf(&sb, "🎮 Total minutes: %d\n", b.ledger.TotalMinutes())
	fmt.Fprintf(&sb, "🔥 Day streak: %d\n", state.Streak)
	fmt.Fprintf(&sb, "📚 Words mastered: %d\n", len(state.LearnedWords))
	fmt.Fprintf(&sb, "🎯 Avg quiz score: %d%%\n", avgScore)
	fmt.Fprintf(&sb, "\n📅 Today: %d/%d min", rec.Earned, b.ledger.EffectiveCap(today))
	if rec.BonusActive {
		sb.WriteString(" (🔥 1.2x bonus)")
	}

	if n := len(state.QuizScores); n > 0 {
		sb.WriteString("\n\nRecent quizzes:")
		start := n - b.config.RecentQuizScores
		if start < 0 {
			start = 0
		}
		for _, s := range state.QuizScores[start:] {
			fmt.Fprintf(&sb, "\n%s — %d/%d", s.Date, s.Score, s.Total)
		}
	}

	return b.sendWithKeyboard(chatID, sb.String(), [][]MenuButton{
		{{Text: "🏠 Menu", CallbackData: "menu"}, {Text: "🗑 Reset all", CallbackData: "reset"}},
	})
}

// confirmReset asks for explicit confirmation before wiping progress
func (b *Bot) confirmReset(chatID int64) error {
	return b.sendWithKeyboard(chatID,
		"⚠️ Are you sure? This resets ALL progress including earned minutes. This cannot be undone!",
		[][]MenuButton{
			{{Text: "Yes, reset everything", CallbackData: "reset_yes"}},
			{{Text: "No, keep my progress", CallbackData: "reset_no"}},
		})
}

// handleReset performs the irreversible reset
func (b *Bot) handleReset(chatID int64) error {
	b.ledger.Reset()
	b.engine.Restart()
	return b.sendWithKeyboard(chatID, "All progress has been reset. Fresh start! 🌱", b.mainMenuButtons())
}

// showAdminPanel renders the parental override panel
func (b *Bot) showAdminPanel(chatID int64, userID int64) error {
	if !b.isAdmin(userID) {
		return b.send(chatID, "This panel is for grown-ups only.")
	}

	today := calendar.Today()
	rec := b.ledger.DayRecord(today)
	text := fmt.Sprintf(
		"🔧 PARENT PANEL\nToday: %d/%d min | streak %d | $%.2f",
		rec.Earned, b.ledger.EffectiveCap(today), b.ledger.State().Streak, b.ledger.DisplayBalance(),
	)
	return b.sendWithKeyboard(chatID, text, [][]MenuButton{
		{{Text: "➕ Grant 1 minute", CallbackData: "admin:minute"}, {Text: "🔥 Activate bonus", CallbackData: "admin:bonus"}},
		{{Text: fmt.Sprintf("💰 Grant %d coins", b.config.AdminCoinGrant), CallbackData: "admin:coins"}, {Text: "⏱ Max out today", CallbackData: "admin:fill"}},
		{{Text: "🧹 Clear today", CallbackData: "admin:clear"}},
	})
}

// handleAdminAction applies a parental override
func (b *Bot) handleAdminAction(chatID int64, userID int64, action string) error {
	if !b.isAdmin(userID) {
		return b.send(chatID, "This panel is for grown-ups only.")
	}

	today := calendar.Today()
	switch action {
	case "minute":
		if b.ledger.AwardMinute(today) == 0 {
			return b.send(chatID, "Daily cap already reached, no minute granted.")
		}
		return b.showAdminPanel(chatID, userID)
	case "bonus":
		b.ledger.ActivateBonus(today)
		return b.showAdminPanel(chatID, userID)
	case "coins":
		b.ledger.AwardCurrency(b.config.AdminCoinGrant)
		return b.showAdminPanel(chatID, userID)
	case "fill":
		b.ledger.AdminSetMinutes(today, b.ledger.EffectiveCap(today))
		return b.showAdminPanel(chatID, userID)
	case "clear":
		b.ledger.AdminClearDay(today)
		return b.showAdminPanel(chatID, userID)
	default:
		return nil
	}
}

// handleImportCommand imports a dataset file referenced by path argument
func (b *Bot) handleImportCommand(message *tgbotapi.Message) error {
	chatID := message.Chat.ID
	if !b.isAdmin(message.From.ID) {
		return b.send(chatID, "Importing word lists is for grown-ups only.")
	}

	path := strings.TrimSpace(message.CommandArguments())
	if path == "" {
		return b.send(chatID, "Usage: /import <path to .xlsx or .csv file on the server>")
	}

	config := excel.DefaultImportConfig()
	config.FilePath = filepath.Clean(path)

	result, err := excel.ImportWords(config)
	if err != nil {
		return b.send(chatID, fmt.Sprintf("Import failed: %v", err))
	}

	text := fmt.Sprintf("Imported %d of %d rows (%d skipped)", result.Imported, result.TotalProcessed, result.Skipped)
	if len(result.Errors) > 0 {
		text += fmt.Sprintf("\n%d errors, first: %s", len(result.Errors), result.Errors[0])
	}
	return b.send(chatID, text)
}
