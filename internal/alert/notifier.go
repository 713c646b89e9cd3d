package alert

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/svsports/dugoutpulse/internal/model"
)

// Notifier delivers alert events to an external sink. Delivery is
// at-least-once; idempotence comes from the dedup ledger, not the sink.
type Notifier interface {
	Send(ctx context.Context, event model.AlertEvent) error
}

// SlackNotifier posts events to a Slack incoming webhook.
type SlackNotifier struct {
	webhookURL string
	client     *http.Client
}

func NewSlackNotifier(webhookURL string, timeout time.Duration) *SlackNotifier {
	return &SlackNotifier{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: timeout},
	}
}

func (n *SlackNotifier) Send(ctx context.Context, event model.AlertEvent) error {
	if n.webhookURL == "" {
		return fmt.Errorf("slack webhook not configured")
	}

	payload, err := json.Marshal(map[string]string{"text": event.Message})
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("webhook status %d", resp.StatusCode)
	}
	return nil
}

// LogNotifier writes events to the log instead of an external channel.
// Used for dry runs.
type LogNotifier struct {
	log zerolog.Logger
}

func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log.With().Str("component", "notifier").Logger()}
}

func (n *LogNotifier) Send(_ context.Context, event model.AlertEvent) error {
	n.log.Info().
		Str("athlete", event.Athlete).
		Str("criterion", string(event.Criterion)).
		Int("count", event.Count).
		Str("key", event.DedupKey).
		Msg(event.Message)
	return nil
}
