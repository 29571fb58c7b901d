package scheduler

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/VCGamer/word-quest/internal/calendar"
	"github.com/VCGamer/word-quest/internal/rewards"
	"github.com/go-co-op/gocron"
)

// Default window within which reminders may be sent
const (
	DefaultReminderStartHour = 8
	DefaultReminderEndHour   = 20
)

// Notifier interface for sending reminders
type Notifier interface {
	SendStudyReminder(earned, cap, streak int) error
}

// Scheduler manages scheduled tasks for the application
type Scheduler struct {
	scheduler *gocron.Scheduler
	ledger    *rewards.Ledger
	notifier  Notifier
}

// New creates a new scheduler instance
func New(ledger *rewards.Ledger, notifier Notifier) *Scheduler {
	s := gocron.NewScheduler(time.Local)
	return &Scheduler{
		scheduler: s,
		ledger:    ledger,
		notifier:  notifier,
	}
}

// Start begins running all scheduled tasks
func (s *Scheduler) Start() {
	// Hourly check whether the learner still has minutes to earn today
	s.scheduler.Every(1).Hour().Do(s.checkAndSendReminder)

	s.scheduler.StartAsync()
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// checkAndSendReminder nudges the learner when today's minutes goal is unmet
// and the reminder window allows it
func (s *Scheduler) checkAndSendReminder() {
	currentHour := time.Now().Hour()

	startHour := hourFromEnv("REMINDER_START_HOUR", DefaultReminderStartHour)
	endHour := hourFromEnv("REMINDER_END_HOUR", DefaultReminderEndHour)

	if currentHour < startHour || currentHour > endHour {
		log.Printf("Current hour %d is outside reminder hours (%d-%d), skipping reminder",
			currentHour, startHour, endHour)
		return
	}

	// One locked read: this runs on the gocron goroutine while the bot
	// loop mutates the ledger
	earned, cap, streak := s.ledger.TodayProgress(calendar.Today())

	// Nothing left to earn today, no nudge needed
	if earned >= cap {
		return
	}

	if err := s.notifier.SendStudyReminder(earned, cap, streak); err != nil {
		log.Printf("Error sending study reminder: %v", err)
	}
}

// hourFromEnv reads an hour override from the environment
func hourFromEnv(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	if h, err := strconv.Atoi(raw); err == nil && h >= 0 && h <= 23 {
		return h
	}
	return fallback
}
