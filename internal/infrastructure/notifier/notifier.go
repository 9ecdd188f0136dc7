package notifier

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/warzonebot/warzone-core/internal/domain"
)

// webhookNotifier posts game events to the front-end webhook. Delivery uses
// a retrying HTTP client; the outbox processor handles retries across
// process restarts, this client only smooths over transient hiccups.
type webhookNotifier struct {
	webhookURL string
	apiKey     string
	client     *retryablehttp.Client
}

// NewWebhookNotifier creates a notifier for the given webhook endpoint.
func NewWebhookNotifier(webhookURL, apiKey string) domain.EventNotifier {
	client := retryablehttp.NewClient()
	client.RetryMax = 3
	client.RetryWaitMin = 500 * time.Millisecond
	client.RetryWaitMax = 5 * time.Second
	client.HTTPClient.Timeout = 30 * time.Second
	client.Logger = nil

	return &webhookNotifier{
		webhookURL: webhookURL,
		apiKey:     apiKey,
		client:     client,
	}
}

type webhookPayload struct {
	EventID   string       `json:"event_id"`
	EventType string       `json:"event_type"`
	Data      domain.JSONB `json:"data"`
	CreatedAt time.Time    `json:"created_at"`
}

func (n *webhookNotifier) Notify(event *domain.OutboxEvent) error {
	payload := webhookPayload{
		EventID:   event.ID,
		EventType: event.Type,
		Data:      event.Data,
		CreatedAt: event.CreatedAt,
	}

	jsonBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal webhook payload: %w", err)
	}

	req, err := retryablehttp.NewRequest("POST", n.webhookURL, bytes.NewBuffer(jsonBytes))
	if err != nil {
		return fmt.Errorf("failed to create webhook request: %w", err)
	}

	req.Header.Set("x-api-key", n.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("webhook error: unexpected status %d - %s", resp.StatusCode, string(body))
	}

	return nil
}

type noopNotifier struct{}

func (noopNotifier) Notify(*domain.OutboxEvent) error { return nil }

// NewNoopNotifier returns a notifier that drops events. Used when no
// webhook URL is configured, so the outbox drains instead of retrying
// forever.
func NewNoopNotifier() domain.EventNotifier {
	return noopNotifier{}
}
