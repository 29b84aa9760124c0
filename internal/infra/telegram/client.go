// internal/infra/telegram/client.go
package telegram

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	domainTelegram "homework_status_bot/internal/domain/telegram"
	"homework_status_bot/internal/infra/config"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"gopkg.in/telebot.v3"
)

// NewClient builds a Bot API client through the configured library.
// No request is made until the first message is sent.
func NewClient(backend, token string) (domainTelegram.Client, error) {
	switch backend {
	case config.BackendTelebot, "":
		b, err := telebot.NewBot(telebot.Settings{Token: token, Offline: true})
		if err != nil {
			return nil, fmt.Errorf("failed to create telebot bot: %w", err)
		}
		return NewTelebotAdapter(b), nil
	case config.BackendTgBotAPI:
		api := &tgbotapi.BotAPI{Token: token, Client: &http.Client{}, Buffer: 100}
		api.SetAPIEndpoint(tgbotapi.APIEndpoint)
		return NewBotAPIAdapter(api), nil
	default:
		return nil, fmt.Errorf("unknown bot backend %q", backend)
	}
}

// chatRecipient passes the configured chat identifier through untouched.
type chatRecipient string

func (r chatRecipient) Recipient() string {
	return string(r)
}

// TelebotAdapter implements the Client interface using the gopkg.in/telebot.v3 library.
type TelebotAdapter struct {
	bot *telebot.Bot
}

func NewTelebotAdapter(b *telebot.Bot) *TelebotAdapter {
	return &TelebotAdapter{bot: b}
}

// SendMessage sends a plain text message to the chat.
func (tba *TelebotAdapter) SendMessage(chatID string, text string) (*domainTelegram.Delivery, error) {
	msg, err := tba.bot.Send(chatRecipient(chatID), text)
	if err != nil {
		return nil, err
	}
	delivery := &domainTelegram.Delivery{MessageID: msg.ID, SentAt: msg.Time()}
	if msg.Chat != nil {
		delivery.ChatID = msg.Chat.ID
	}
	return delivery, nil
}

// BotAPIAdapter implements the Client interface using go-telegram-bot-api.
type BotAPIAdapter struct {
	api *tgbotapi.BotAPI
}

func NewBotAPIAdapter(api *tgbotapi.BotAPI) *BotAPIAdapter {
	return &BotAPIAdapter{api: api}
}

func (a *BotAPIAdapter) SendMessage(chatID string, text string) (*domainTelegram.Delivery, error) {
	var cfg tgbotapi.MessageConfig
	if strings.HasPrefix(chatID, "@") {
		cfg = tgbotapi.NewMessageToChannel(chatID, text)
	} else {
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid chat id %q: %w", chatID, err)
		}
		cfg = tgbotapi.NewMessage(id, text)
	}

	msg, err := a.api.Send(cfg)
	if err != nil {
		return nil, err
	}
	delivery := &domainTelegram.Delivery{MessageID: msg.MessageID, SentAt: time.Unix(int64(msg.Date), 0)}
	if msg.Chat != nil {
		delivery.ChatID = msg.Chat.ID
	}
	return delivery, nil
}
