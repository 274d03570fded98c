package error_notificator

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const (
	maxMessageLen = 4000
	sendTimeout   = 10 * time.Second
)

type TelegramInfra struct {
	bot   *tgbotapi.BotAPI
	chats []int64
}

// NewTelegramInfra connects to the bot API. endpoint overrides the API URL
// template and is empty in production.
func NewTelegramInfra(token, endpoint string, chats []int64) (*TelegramInfra, error) {
	if len(chats) == 0 {
		return nil, errors.New("no alert chats configured")
	}

	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}

	bot, err := tgbotapi.NewBotAPIWithClient(token, endpoint, &http.Client{Timeout: sendTimeout})
	if err != nil {
		return nil, fmt.Errorf("telegram bot: %w", err)
	}

	return &TelegramInfra{bot: bot, chats: chats}, nil
}

// Notify returns when every chat was tried or ctx is done, whichever comes
// first. The bot API client has no context support, so sends still in flight
// after ctx is done are bounded by the client timeout.
func (i *TelegramInfra) Notify(ctx context.Context, err error, details string) error {
	text := fmt.Sprintf("❗ Voice pipeline error\n\nError: %v\n\nDetails: %s", err, details)
	if r := []rune(text); len(r) > maxMessageLen {
		text = string(r[:maxMessageLen])
	}

	done := make(chan error, 1)
	go func() {
		done <- i.send(text)
	}()

	select {
	case sendErr := <-done:
		return sendErr
	case <-ctx.Done():
		return fmt.Errorf("telegram alert: %w", ctx.Err())
	}
}

func (i *TelegramInfra) send(text string) error {
	var errs []error
	for _, chatID := range i.chats {
		if _, err := i.bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
			errs = append(errs, fmt.Errorf("send to %d: %w", chatID, err))
		}
	}
	return errors.Join(errs...)
}

// LogInfra is used when no bot is configured.
type LogInfra struct {
	log *zap.Logger
}

func NewLogInfra(log *zap.Logger) *LogInfra {
	return &LogInfra{log: log}
}

func (i *LogInfra) Notify(ctx context.Context, err error, details string) error {
	i.log.Error("pipeline error", zap.Error(err), zap.String("details", details))
	return nil
}
