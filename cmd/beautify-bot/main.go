package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/neelspatel02/BeautifyBot/internal/bot"
	"github.com/neelspatel02/BeautifyBot/internal/brain"
	"github.com/neelspatel02/BeautifyBot/internal/config"
	"github.com/neelspatel02/BeautifyBot/internal/core/ports"
	"github.com/neelspatel02/BeautifyBot/internal/logging"
	"github.com/neelspatel02/BeautifyBot/internal/sites/reddit"
	"github.com/neelspatel02/BeautifyBot/internal/storage"
	"github.com/neelspatel02/BeautifyBot/internal/ui/telegram"
)

func main() {
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fallbackLog := logging.New("info", "console")
		fallbackLog.Fatal().Err(err).Msg("configuration error")
	}

	log := logging.New(cfg.Log.Level, cfg.Log.Format)
	log.Info().Msg("starting beautify-bot")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var store ports.Storage
	if cfg.Database.URL != "" {
		store, err = storage.NewPostgresStorage(ctx, cfg.Database.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("postgres storage init failed")
		}
		log.Info().Msg("storage: postgres")
	} else {
		store, err = storage.NewSQLiteStorage(ctx, cfg.Database.SQLitePath)
		if err != nil {
			log.Fatal().Err(err).Msg("sqlite storage init failed")
		}
		log.Info().Str("path", cfg.Database.SQLitePath).Msg("storage: sqlite")
	}
	defer store.Close()

	var myBrain ports.Brain
	if cfg.Gemini.APIKey != "" {
		myBrain, err = brain.NewGeminiBrain(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model,
			cfg.Gemini.MaxTokens, cfg.Gemini.Temperature)
		if err != nil {
			log.Fatal().Err(err).Msg("gemini brain init failed")
		}
		log.Info().Str("model", cfg.Gemini.Model).Msg("brain: gemini")
	} else {
		myBrain, err = brain.NewGroqBrain(cfg.Groq.APIKey, cfg.Groq.Model,
			cfg.Groq.MaxTokens, cfg.Groq.Temperature)
		if err != nil {
			log.Fatal().Err(err).Msg("groq brain init failed")
		}
		log.Info().Str("model", cfg.Groq.Model).Msg("brain: groq")
	}

	site := reddit.NewClient(reddit.Options{
		ClientID:     cfg.Reddit.ClientID,
		ClientSecret: cfg.Reddit.ClientSecret,
		Username:     cfg.Reddit.Username,
		Password:     cfg.Reddit.Password,
		UserAgent:    cfg.Reddit.UserAgent,
		Subreddit:    cfg.Bot.Subreddit,
		PollInterval: cfg.Bot.PollInterval,
	})
	if err := site.Initialize(ctx); err != nil {
		log.Fatal().Err(err).Msg("reddit init failed")
	}
	log.Info().Str("username", site.BotUsername()).Str("subreddit", cfg.Bot.Subreddit).Msg("connected to reddit")

	var notifier ports.Notifier
	if cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != "" {
		n, err := telegram.NewNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			log.Warn().Err(err).Msg("telegram notifier disabled")
		} else {
			notifier = n
			log.Info().Msg("telegram notifications enabled")
		}
	}

	responder := bot.NewResponder(site, log)
	processor := bot.NewProcessor(site, store, myBrain, responder,
		cfg.Bot.MinPostLength, cfg.Bot.MaxPostLength, log)
	supervisor := bot.NewSupervisor(site, processor, notifier,
		cfg.Bot.Trigger, cfg.Bot.CommentDelay, cfg.Bot.ReconnectDelay, log)

	err = supervisor.Run(ctx)
	if errors.Is(err, context.Canceled) {
		log.Info().Msg("bot stopped by interrupt")
		return
	}
	if err != nil {
		log.Fatal().Err(err).Msg("supervisor exited")
	}
}
