package bot

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/VCGamer/word-quest/internal/ai"
	"github.com/VCGamer/word-quest/internal/database"
	"github.com/VCGamer/word-quest/internal/progression"
	"github.com/VCGamer/word-quest/internal/quiz"
	"github.com/VCGamer/word-quest/internal/rewards"
	"github.com/VCGamer/word-quest/pkg/models"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// MenuButton represents a button in the menu
type MenuButton struct {
	Text         string
	CallbackData string
}

// createKeyboard creates a keyboard from menu buttons
func createKeyboard(buttons [][]MenuButton) tgbotapi.InlineKeyboardMarkup {
	var keyboard [][]tgbotapi.InlineKeyboardButton
	for _, row := range buttons {
		var keyboardRow []tgbotapi.InlineKeyboardButton
		for _, button := range row {
			keyboardRow = append(keyboardRow, tgbotapi.NewInlineKeyboardButtonData(button.Text, button.CallbackData))
		}
		keyboard = append(keyboard, keyboardRow)
	}
	return tgbotapi.NewInlineKeyboardMarkup(keyboard...)
}

// chatMode tracks what free-form text input from a chat currently means
type chatMode string

const (
	modeIdle     chatMode = "idle"
	modeSpelling chatMode = "spelling"
	modeDrill    chatMode = "drill"
)

// Bot represents the Telegram bot application
type Bot struct {
	apiMu  sync.Mutex // guards api: Start sets it while the scheduler may read
	api    *tgbotapi.BotAPI
	token  string
	ledger *rewards.Ledger
	engine *progression.Engine
	themes []models.Theme

	illustrator     *ai.Illustrator
	adminUserIDs    map[int64]bool
	reminderChatIDs []int64

	chatModes    map[int64]chatMode
	quizSessions map[int64]*quiz.Session
	drillWords   map[int64]models.Word

	config *BotConfig
}

// New creates a new bot instance
func New(ledger *rewards.Ledger, engine *progression.Engine, themes []models.Theme) (*Bot, error) {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable is not set")
	}

	if database.DB == nil {
		return nil, fmt.Errorf("database connection is not established")
	}

	bot := &Bot{
		token:        token,
		ledger:       ledger,
		engine:       engine,
		themes:       themes,
		illustrator:  ai.New(database.NewIllustrationRepository()),
		adminUserIDs: make(map[int64]bool),
		chatModes:    make(map[int64]chatMode),
		quizSessions: make(map[int64]*quiz.Session),
		drillWords:   make(map[int64]models.Word),
		config:       DefaultConfig(),
	}

	adminIDs := os.Getenv("ADMIN_USER_IDS")
	if adminIDs != "" {
		for _, idStr := range strings.Split(adminIDs, ",") {
			id, err := strconv.ParseInt(strings.TrimSpace(idStr), 10, 64)
			if err != nil {
				log.Printf("Warning: Invalid admin user ID: %s", idStr)
				continue
			}
			bot.adminUserIDs[id] = true
		}
	}

	reminderIDs := os.Getenv("REMINDER_CHAT_IDS")
	if reminderIDs != "" {
		for _, idStr := range strings.Split(reminderIDs, ",") {
			id, err := strconv.ParseInt(strings.TrimSpace(idStr), 10, 64)
			if err != nil {
				log.Printf("Warning: Invalid reminder chat ID: %s", idStr)
				continue
			}
			bot.reminderChatIDs = append(bot.reminderChatIDs, id)
		}
	}

	return bot, nil
}

// SendStudyReminder nudges the configured chats when daily minutes remain.
func (b *Bot) SendStudyReminder(earned, cap, streak int) error {
	if b.client() == nil || len(b.reminderChatIDs) == 0 {
		return nil
	}

	text := fmt.Sprintf(
		"⏰ Word Quest time!\n🎮 %d/%d minutes earned today\n🔥 Day streak: %d\n\nSend /learn to keep it going!",
		earned, cap, streak,
	)
	for _, chatID := range b.reminderChatIDs {
		if err := b.send(chatID, text); err != nil {
			return fmt.Errorf("unable to send reminder to chat %d: %v", chatID, err)
		}
	}
	return nil
}

// Start initializes the API client and processes updates until the context
// is cancelled
func (b *Bot) Start(ctx context.Context) error {
	botAPI, err := tgbotapi.NewBotAPI(b.token)
	if err != nil {
		return fmt.Errorf("unable to create bot: %v", err)
	}

	b.apiMu.Lock()
	b.api = botAPI
	b.apiMu.Unlock()
	log.Printf("Authorized on account %s", botAPI.Self.UserName)

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60

	updates := botAPI.GetUpdatesChan(updateConfig)

	for {
		select {
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.handleUpdate(update)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Stop stops receiving updates
func (b *Bot) Stop(ctx context.Context) error {
	if api := b.client(); api != nil {
		api.StopReceivingUpdates()
	}
	return nil
}

// client returns the API handle set by Start, or nil before startup
func (b *Bot) client() *tgbotapi.BotAPI {
	b.apiMu.Lock()
	defer b.apiMu.Unlock()
	return b.api
}

func (b *Bot) isAdmin(userID int64) bool {
	return b.adminUserIDs[userID]
}

// handleUpdate dispatches a single incoming update
func (b *Bot) handleUpdate(update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		if err := b.handleCallback(update.CallbackQuery); err != nil {
			log.Printf("Error handling callback %q: %v", update.CallbackQuery.Data, err)
		}
		return
	}

	if update.Message == nil {
		return
	}

	if update.Message.IsCommand() {
		if err := b.handleCommand(update.Message); err != nil {
			log.Printf("Error handling command %q: %v", update.Message.Command(), err)
		}
		return
	}

	if err := b.handleText(update.Message); err != nil {
		log.Printf("Error handling text input: %v", err)
	}
}

// handleCommand routes bot commands
func (b *Bot) handleCommand(message *tgbotapi.Message) error {
	chatID := message.Chat.ID

	switch message.Command() {
	case "start":
		return b.handleStart(message)
	case "learn":
		return b.showLearn(chatID)
	case "quiz":
		return b.showQuizGate(chatID)
	case "drill":
		return b.startDrill(chatID)
	case "school":
		return b.showSchoolReview(chatID)
	case "stats":
		return b.showStats(chatID)
	case "vault":
		return b.showVault(chatID)
	case "reset":
		return b.confirmReset(chatID)
	case "admin":
		return b.showAdminPanel(chatID, message.From.ID)
	case "import":
		return b.handleImportCommand(message)
	case "help":
		return b.showHelp(chatID)
	default:
		return b.send(chatID, "Unknown command. Try /help")
	}
}

// handleText routes free-form text according to the chat's current mode
func (b *Bot) handleText(message *tgbotapi.Message) error {
	chatID := message.Chat.ID

	switch b.chatModes[chatID] {
	case modeSpelling:
		return b.handleSpellingInput(chatID, message.Text)
	case modeDrill:
		return b.handleDrillInput(chatID, message.Text)
	default:
		return b.send(chatID, "Use the buttons or /help to see what I can do.")
	}
}

// send delivers a plain text message
func (b *Bot) send(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	_, err := b.client().Send(msg)
	return err
}

// sendWithKeyboard delivers a message with an inline keyboard
func (b *Bot) sendWithKeyboard(chatID int64, text string, buttons [][]MenuButton) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = createKeyboard(buttons)
	_, err := b.client().Send(msg)
	return err
}

// handleStart greets the learner and updates the visit streak
func (b *Bot) handleStart(message *tgbotapi.Message) error {
	streak := b.ledger.UpdateStreak()
	theme := b.engine.CurrentTheme()

	text := fmt.Sprintf(
		"Welcome to Word Quest! %s\n\nThis week's theme: %s %s\nDay streak: %d 🔥\n\nLearn words, pass the quiz, earn screen-time minutes!",
		"🎮", theme.Emoji, theme.Name, streak,
	)
	return b.sendWithKeyboard(chatID(message), text, b.mainMenuButtons())
}

func chatID(message *tgbotapi.Message) int64 {
	return message.Chat.ID
}

func (b *Bot) mainMenuButtons() [][]MenuButton {
	return [][]MenuButton{
		{{Text: "📖 Learn", CallbackData: "learn"}, {Text: "⚔️ Quiz", CallbackData: "quiz"}},
		{{Text: "✏️ Drill", CallbackData: "drill"}, {Text: "🏫 School Review", CallbackData: "school"}},
		{{Text: "🔒 Vault", CallbackData: "vault"}, {Text: "📊 Stats", CallbackData: "stats"}},
	}
}

// showHelp lists the available commands
func (b *Bot) showHelp(chatID int64) error {
	return b.send(chatID, `Commands:
/learn - study this week's words
/quiz - take the weekly quiz
/drill - spelling drill over mastered words
/school - school review session
/vault - browse mastered words
/stats - progress and earnings
/reset - reset ALL progress
/help - this message`)
}
