// Package config loads the bot configuration from environment variables,
// layered over built-in defaults with koanf. All components receive their
// settings from the Config struct; nothing reads the environment directly.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Reddit   RedditConfig   `koanf:"reddit"`
	Groq     GroqConfig     `koanf:"groq"`
	Gemini   GeminiConfig   `koanf:"gemini"`
	Bot      BotConfig      `koanf:"bot"`
	Database DatabaseConfig `koanf:"database"`
	Telegram TelegramConfig `koanf:"telegram"`
	Log      LogConfig      `koanf:"log"`
}

type RedditConfig struct {
	ClientID     string `koanf:"client_id"`
	ClientSecret string `koanf:"client_secret"`
	Username     string `koanf:"username"`
	Password     string `koanf:"password"`
	UserAgent    string `koanf:"user_agent"`
}

type GroqConfig struct {
	APIKey      string  `koanf:"api_key"`
	Model       string  `koanf:"model"`
	MaxTokens   int     `koanf:"max_tokens"`
	Temperature float64 `koanf:"temperature"`
}

type GeminiConfig struct {
	APIKey      string  `koanf:"api_key"`
	Model       string  `koanf:"model"`
	MaxTokens   int     `koanf:"max_tokens"`
	Temperature float64 `koanf:"temperature"`
}

type BotConfig struct {
	Subreddit      string        `koanf:"subreddit"`
	Trigger        string        `koanf:"trigger"`
	MinPostLength  int           `koanf:"min_post_length"`
	MaxPostLength  int           `koanf:"max_post_length"`
	CommentDelay   time.Duration `koanf:"comment_delay"`
	ReconnectDelay time.Duration `koanf:"reconnect_delay"`
	PollInterval   time.Duration `koanf:"poll_interval"`
}

type DatabaseConfig struct {
	// URL selects the Postgres store when set; otherwise the SQLite file
	// at SQLitePath is used.
	URL        string `koanf:"url"`
	SQLitePath string `koanf:"sqlite_path"`
}

type TelegramConfig struct {
	BotToken string `koanf:"bot_token"`
	ChatID   string `koanf:"chat_id"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

func defaultConfig() *Config {
	return &Config{
		Groq: GroqConfig{
			Model:       "llama-3.1-8b-instant",
			MaxTokens:   6000,
			Temperature: 0.2,
		},
		Gemini: GeminiConfig{
			Model:       "gemini-2.5-flash",
			MaxTokens:   6000,
			Temperature: 0.2,
		},
		Bot: BotConfig{
			Subreddit:      "test",
			Trigger:        "!beautify",
			MinPostLength:  1000,
			MaxPostLength:  15000,
			CommentDelay:   2 * time.Second,
			ReconnectDelay: 30 * time.Second,
			PollInterval:   5 * time.Second,
		},
		Database: DatabaseConfig{
			SQLitePath: "data/beautify-bot.db",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// envPrefixes limits which environment variables feed the config; anything
// else in the environment is ignored.
var envPrefixes = []string{
	"REDDIT_", "GROQ_", "GEMINI_", "BOT_", "DATABASE_", "TELEGRAM_", "LOG_",
}

// envTransform maps an environment variable name to a koanf path:
// REDDIT_CLIENT_ID -> reddit.client_id, BOT_MIN_POST_LENGTH -> bot.min_post_length.
func envTransform(name string) string {
	for _, prefix := range envPrefixes {
		if strings.HasPrefix(name, prefix) {
			section := strings.ToLower(strings.TrimSuffix(prefix, "_"))
			key := strings.ToLower(strings.TrimPrefix(name, prefix))
			return section + "." + key
		}
	}
	return ""
}

// Load builds the configuration from defaults overlaid with environment
// variables and validates it.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if err := k.Load(env.Provider("", ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first configuration problem that would prevent the
// bot from starting.
func (c *Config) Validate() error {
	missing := []string{}
	if c.Reddit.ClientID == "" {
		missing = append(missing, "REDDIT_CLIENT_ID")
	}
	if c.Reddit.ClientSecret == "" {
		missing = append(missing, "REDDIT_CLIENT_SECRET")
	}
	if c.Reddit.Username == "" {
		missing = append(missing, "REDDIT_USERNAME")
	}
	if c.Reddit.Password == "" {
		missing = append(missing, "REDDIT_PASSWORD")
	}
	if c.Reddit.UserAgent == "" {
		missing = append(missing, "REDDIT_USER_AGENT")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required settings: %s", strings.Join(missing, ", "))
	}

	if c.Groq.APIKey == "" && c.Gemini.APIKey == "" {
		return fmt.Errorf("either GROQ_API_KEY or GEMINI_API_KEY must be set")
	}
	if c.Bot.MinPostLength >= c.Bot.MaxPostLength {
		return fmt.Errorf("BOT_MIN_POST_LENGTH (%d) must be below BOT_MAX_POST_LENGTH (%d)",
			c.Bot.MinPostLength, c.Bot.MaxPostLength)
	}
	if c.Bot.CommentDelay < 0 || c.Bot.ReconnectDelay <= 0 || c.Bot.PollInterval <= 0 {
		return fmt.Errorf("bot delays must be positive")
	}
	return nil
}
