// Package messaging adapts the notification collaborator. Notifications go
// out over a webhook channel, an SMTP channel, or both; with neither
// configured the adapter runs in mock mode and only logs.
package messaging

import (
	"context"
	"fmt"

	"leadflow_backend/internal/leads/domain"
	"leadflow_backend/internal/leads/ports"
	"leadflow_backend/platform/config"
	"leadflow_backend/platform/logger"
)

// Severity tiers for lead notifications.
const (
	SeverityUrgent = "urgent"
	SeverityHigh   = "high"
	SeverityNormal = "normal"
)

// channel is one delivery transport for a notification.
type channel interface {
	Deliver(ctx context.Context, lead *domain.Lead, severity string) error
	Name() string
}

// Notifier fans a notification out to every configured channel.
type Notifier struct {
	channels []channel
	log      *logger.Logger
}

// New builds a notifier from configuration. Channels are independent: a
// webhook and SMTP can both be active.
func New(cfg config.MessagingConfig, log *logger.Logger) *Notifier {
	var channels []channel
	if cfg.IsMessagingEnabled() {
		channels = append(channels, newWebhookChannel(cfg.GetMessagingWebhookURL(), log))
	}
	if cfg.IsEmailEnabled() {
		channels = append(channels, newEmailChannel(cfg, log))
	}
	return &Notifier{channels: channels, log: log}
}

// Notify delivers the notification on every channel. Delivery is
// best-effort per channel; the first failure is returned after all channels
// have been attempted.
func (n *Notifier) Notify(ctx context.Context, lead *domain.Lead, severity string) error {
	if len(n.channels) == 0 {
		n.log.Info("mock notification",
			"email", lead.Email, "severity", severity, "score", lead.Score, "category", lead.Category)
		return nil
	}

	var firstErr error
	for _, ch := range n.channels {
		if err := ch.Deliver(ctx, lead, severity); err != nil {
			n.log.Error("notification channel failed", "channel", ch.Name(), "error", err)
			if firstErr == nil {
				firstErr = fmt.Errorf("%s channel: %w", ch.Name(), err)
			}
		}
	}
	return firstErr
}

// Mode reports mock operation when no channel is configured.
func (n *Notifier) Mode() string {
	if len(n.channels) == 0 {
		return ports.ModeMock
	}
	return ports.ModeLive
}

var _ ports.Notifier = (*Notifier)(nil)
