package notify

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/mklimuk/life-pilot/pkg/engine"
)

// TelegramNotifier sends run reports to one Telegram chat.
type TelegramNotifier struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

var _ Notifier = (*TelegramNotifier)(nil)

// NewTelegramNotifier creates a Telegram notifier.
func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("error creating Telegram bot: %w", err)
	}
	return &TelegramNotifier{api: api, chatID: chatID}, nil
}

// Notify sends the report to the configured chat.
func (n *TelegramNotifier) Notify(report *engine.Report) error {
	msg := tgbotapi.NewMessage(n.chatID, FormatReport(report))
	if _, err := n.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send Telegram message: %w", err)
	}
	return nil
}
