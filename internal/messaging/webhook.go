package messaging

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"leadflow_backend/internal/leads/domain"
	"leadflow_backend/platform/logger"
)

const webhookTimeout = 10 * time.Second

// webhookChannel posts notifications to an incoming-webhook URL
// (Slack-compatible payload shape).
type webhookChannel struct {
	url        string
	httpClient *http.Client
	log        *logger.Logger
}

func newWebhookChannel(url string, log *logger.Logger) *webhookChannel {
	return &webhookChannel{
		url:        url,
		httpClient: &http.Client{Timeout: webhookTimeout},
		log:        log,
	}
}

func (c *webhookChannel) Name() string { return "webhook" }

type webhookPayload struct {
	Text     string `json:"text"`
	Severity string `json:"severity"`
}

func (c *webhookChannel) Deliver(ctx context.Context, lead *domain.Lead, severity string) error {
	text := fmt.Sprintf("[%s] %s lead: %s (%s) scored %d, routed to %s",
		severity, lead.Category, lead.FullName(), lead.Company, lead.Score, lead.Territory.Territory)

	body, err := json.Marshal(webhookPayload{Text: text, Severity: severity})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook status %d", resp.StatusCode)
	}
	return nil
}
