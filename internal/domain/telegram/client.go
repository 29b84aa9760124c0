package telegram

import "time"

// Delivery acknowledges a message accepted by the Bot API.
type Delivery struct {
	MessageID int
	ChatID    int64 // numeric id reported back by the API, 0 if absent
	SentAt    time.Time
}

//go:generate mockgen -source=client.go -destination=../../mocks/telegram/client_mock.go -package=telegram_mock

// Client defines an interface for sending messages via a Telegram bot.
// This helps in decoupling the application logic from the specific bot library.
type Client interface {
	// SendMessage delivers text to chatID, a numeric chat id or an @channel username.
	SendMessage(chatID string, text string) (*Delivery, error)
}
