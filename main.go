package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/VCGamer/word-quest/internal/bot"
	"github.com/VCGamer/word-quest/internal/database"
	"github.com/VCGamer/word-quest/internal/progression"
	"github.com/VCGamer/word-quest/internal/rewards"
	"github.com/VCGamer/word-quest/internal/scheduler"
	"github.com/VCGamer/word-quest/pkg/models"
)

func main() {
	// Optional .env for local runs; real deployments set the environment
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := database.Connect(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	words, err := database.NewWordRepository().GetAll()
	if err != nil {
		log.Fatalf("Failed to load word list: %v", err)
	}
	if len(words) == 0 {
		log.Println("Word list is empty; use /import to load a vocabulary file")
	}
	themes := models.DefaultThemes()

	ledger := rewards.New(rewards.DefaultConfig(), database.NewStateRepository())
	engine := progression.NewEngine(ledger, words, themes)

	b, err := bot.New(ledger, engine, themes)
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}

	if os.Getenv("ENABLE_SCHEDULER") != "false" {
		reminders := scheduler.New(ledger, b)
		reminders.Start()
		defer reminders.Stop()
	}

	done := make(chan struct{})

	go func() {
		sig := <-sigChan
		log.Printf("Received signal: %v\n", sig)
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()

		if err := b.Stop(shutdownCtx); err != nil {
			log.Printf("Error during shutdown: %v", err)
		}

		close(done)
	}()

	log.Println("Bot started. Press Ctrl+C to stop.")
	go func() {
		if err := b.Start(ctx); err != nil && err != context.Canceled {
			log.Printf("Bot error: %v", err)
		}
	}()

	<-done
	log.Println("Bot stopped successfully")
}
