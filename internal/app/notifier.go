// internal/app/notifier.go
package app

import (
	domainTelegram "homework_status_bot/internal/domain/telegram" // Import from domain

	"github.com/sirupsen/logrus"
)

// Notifier relays status messages to a single fixed chat.
type Notifier struct {
	telegramClient domainTelegram.Client // Use the interface from the domain package
	chatID         string
	logger         *logrus.Entry
}

func NewNotifier(tc domainTelegram.Client, chatID string, logger *logrus.Entry) *Notifier {
	return &Notifier{
		telegramClient: tc,
		chatID:         chatID,
		logger:         logger,
	}
}

// Notify sends message and returns the delivery acknowledgment.
// Send failures are logged and reported as a nil delivery; they never propagate.
func (n *Notifier) Notify(message string) *domainTelegram.Delivery {
	logCtx := n.logger.WithField("chat_id", n.chatID)

	delivery, err := n.telegramClient.SendMessage(n.chatID, message)
	if err != nil {
		logCtx.WithError(err).WithField("severity", "critical").Error("Failed to send status message")
		return nil
	}
	if delivery != nil {
		logCtx = logCtx.WithField("message_id", delivery.MessageID)
	}
	logCtx.Info("Status message sent")
	return delivery
}
