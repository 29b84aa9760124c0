package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"homework_status_bot/internal/app"
	"homework_status_bot/internal/infra/config"
	"homework_status_bot/internal/infra/logger"
	"homework_status_bot/internal/infra/practicum"
	"homework_status_bot/internal/infra/scheduler"
	"homework_status_bot/internal/infra/telegram"
)

func main() {
	fmt.Println("Homework Status Bot starting...")

	cfg, err := config.Load()
	if err != nil {
		abortStartup(err)
	}

	logCloser, err := logger.Init(cfg)
	if err != nil {
		abortStartup(fmt.Errorf("could not initialize logger: %w", err))
	}
	defer logCloser.Close()

	mainLogger := logger.Component("main")
	mainLogger.Infof("Configuration loaded. LogLevel: %s, Environment: %s, Backend: %s, Chat ID: %s", cfg.LogLevel, cfg.Environment, cfg.BotBackend, cfg.TelegramChatID)

	botClient, err := telegram.NewClient(cfg.BotBackend, cfg.TelegramToken)
	if err != nil {
		logCloser.Close()
		abortStartup(fmt.Errorf("could not create Telegram bot: %w", err))
	}
	notifier := app.NewNotifier(botClient, cfg.TelegramChatID, logger.Component("notifier"))

	apiClient := practicum.NewClient(cfg.Endpoint, cfg.PracticumToken, cfg.HTTPTimeout, logger.Component("practicum"))
	pollService := app.NewPollService(apiClient, notifier, time.Now().Unix(), cfg.LookBack, logger.Component("poller"))

	waiter, err := scheduler.NewWaiter(cfg.PollSchedule, cfg.RetryTime)
	if err != nil {
		logCloser.Close()
		abortStartup(err)
	}
	pollScheduler := scheduler.NewPollScheduler(pollService, waiter, logger.Component("scheduler"))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pollScheduler.Start(ctx)
	mainLogger.Info("Application setup complete. Poller is running.")

	<-ctx.Done() // Block until a signal is received

	mainLogger.Info("Shutting down application...")
	pollScheduler.Stop()
	mainLogger.Info("Application shut down gracefully.")
}

// abortStartup logs why the bot cannot start to the usual log file and exits with 0.
// A missing variable gets one critical line of its own.
func abortStartup(err error) {
	fallback := &config.AppConfig{LogFile: "main.log", LogLevel: "info", Environment: strings.ToLower(os.Getenv("ENVIRONMENT"))}
	if name, ok := os.LookupEnv("LOG_FILE"); ok {
		fallback.LogFile = name
	}
	closer, initErr := logger.Init(fallback)

	mainLogger := logger.Component("main")
	var missing *config.MissingError
	if errors.As(err, &missing) {
		for _, name := range missing.Vars {
			logger.Critical(mainLogger, fmt.Sprintf("Missing required environment variable %s. Program stopped.", name))
		}
	} else {
		logger.Critical(mainLogger, fmt.Sprintf("Could not start: %v. Program stopped.", err))
	}
	if initErr == nil {
		closer.Close()
	}
	os.Exit(0)
}
