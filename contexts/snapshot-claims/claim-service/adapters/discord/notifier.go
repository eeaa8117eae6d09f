package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"claimerapi/contexts/snapshot-claims/claim-service/ports"
)

// Notifier posts verified-claim messages to a Discord-compatible webhook.
type Notifier struct {
	webhookURL string
	httpClient *http.Client
}

func NewNotifier(webhookURL string, timeout time.Duration) (*Notifier, error) {
	if strings.TrimSpace(webhookURL) == "" {
		return nil, errors.New("webhook url is required")
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Notifier{
		webhookURL: strings.TrimSpace(webhookURL),
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

type webhookMessage struct {
	Content string `json:"content"`
}

func (n *Notifier) NotifyClaimVerified(ctx context.Context, notification ports.ClaimVerifiedNotification) error {
	message := webhookMessage{
		Content: fmt.Sprintf("Snapshot claim verified: %s coins → %s",
			notification.ClaimedBalanceCoins,
			notification.DestinationAddress,
		),
	}
	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("encode webhook message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<16))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}
