package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("REDDIT_CLIENT_ID", "cid")
	t.Setenv("REDDIT_CLIENT_SECRET", "csecret")
	t.Setenv("REDDIT_USERNAME", "BeautifyBot")
	t.Setenv("REDDIT_PASSWORD", "hunter2")
	t.Setenv("REDDIT_USER_AGENT", "beautify-bot/1.0 by BeautifyBot")
	t.Setenv("GROQ_API_KEY", "gsk_test")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "test", cfg.Bot.Subreddit)
	assert.Equal(t, "!beautify", cfg.Bot.Trigger)
	assert.Equal(t, 1000, cfg.Bot.MinPostLength)
	assert.Equal(t, 15000, cfg.Bot.MaxPostLength)
	assert.Equal(t, 2*time.Second, cfg.Bot.CommentDelay)
	assert.Equal(t, 30*time.Second, cfg.Bot.ReconnectDelay)
	assert.Equal(t, "llama-3.1-8b-instant", cfg.Groq.Model)
	assert.Equal(t, 6000, cfg.Groq.MaxTokens)
	assert.InDelta(t, 0.2, cfg.Groq.Temperature, 1e-9)
	assert.Equal(t, "data/beautify-bot.db", cfg.Database.SQLitePath)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadEnvOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("BOT_SUBREDDIT", "IMadeThis")
	t.Setenv("BOT_MIN_POST_LENGTH", "500")
	t.Setenv("BOT_COMMENT_DELAY", "5s")
	t.Setenv("DATABASE_URL", "postgres://bot@localhost/beautify")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "IMadeThis", cfg.Bot.Subreddit)
	assert.Equal(t, 500, cfg.Bot.MinPostLength)
	assert.Equal(t, 5*time.Second, cfg.Bot.CommentDelay)
	assert.Equal(t, "postgres://bot@localhost/beautify", cfg.Database.URL)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadMissingCredentials(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("REDDIT_CLIENT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REDDIT_CLIENT_SECRET")
}

func TestLoadRequiresAnAIKey(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("GROQ_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GROQ_API_KEY or GEMINI_API_KEY")
}

func TestLoadRejectsInvertedBounds(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("BOT_MIN_POST_LENGTH", "20000")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BOT_MIN_POST_LENGTH")
}

func TestEnvTransform(t *testing.T) {
	assert.Equal(t, "reddit.client_id", envTransform("REDDIT_CLIENT_ID"))
	assert.Equal(t, "bot.min_post_length", envTransform("BOT_MIN_POST_LENGTH"))
	assert.Equal(t, "database.url", envTransform("DATABASE_URL"))
	assert.Equal(t, "", envTransform("PATH"), "unrelated variables are ignored")
	assert.Equal(t, "", envTransform("HOME"))
}
