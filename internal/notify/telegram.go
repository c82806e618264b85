package notify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"gopkg.in/telebot.v3"
)

var ErrTelegramChatMissing = errors.New("telegram chat id is not set")

// TelegramSender delivers reminders to a single chat through the Bot API.
// It only sends; no updates are polled.
type TelegramSender struct {
	bot  *telebot.Bot
	chat *telebot.Chat
}

type TelegramOption func(*telebot.Settings)

// WithAPIURL points the bot at a different Bot API server.
func WithAPIURL(url string) TelegramOption {
	return func(settings *telebot.Settings) {
		settings.URL = url
	}
}

func NewTelegramSender(token string, chatID int64, options ...TelegramOption) (*TelegramSender, error) {
	if chatID == 0 {
		return nil, ErrTelegramChatMissing
	}

	settings := telebot.Settings{
		Token:   token,
		Offline: true,
		Client:  &http.Client{Timeout: 15 * time.Second},
	}
	for _, option := range options {
		option(&settings)
	}

	bot, err := telebot.NewBot(settings)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	return &TelegramSender{bot: bot, chat: &telebot.Chat{ID: chatID}}, nil
}

func (sender *TelegramSender) SendReminder(ctx context.Context, message string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := sender.bot.Send(sender.chat, message, &telebot.SendOptions{DisableWebPagePreview: true}); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}
