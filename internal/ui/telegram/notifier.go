// Package telegram pushes processing outcomes to the bot operator's chat.
package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/neelspatel02/BeautifyBot/internal/core/ports"
)

// Notifier is a one-way channel to the operator; it never waits for a
// response.
type Notifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewNotifier(token, chatIDStr string) (*Notifier, error) {
	chatID, err := strconv.ParseInt(chatIDStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid chat id: %w", err)
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	return &Notifier{bot: bot, chatID: chatID}, nil
}

var _ ports.Notifier = (*Notifier)(nil)

func (n *Notifier) Notify(ctx context.Context, title, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msgText := fmt.Sprintf("*[%s]*\n\n%s", escapeMarkdown(title), escapeMarkdown(body))
	msg := tgbotapi.NewMessage(n.chatID, msgText)
	msg.ParseMode = "Markdown"

	if _, err := n.bot.Send(msg); err != nil {
		return err
	}
	return nil
}

// escapeMarkdown keeps user-derived text from breaking Telegram's Markdown
// parser.
func escapeMarkdown(text string) string {
	replacer := strings.NewReplacer(
		"_", "\\_",
		"*", "\\*",
		"[", "\\[",
		"`", "\\`",
	)
	return replacer.Replace(text)
}
