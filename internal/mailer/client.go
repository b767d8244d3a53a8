package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// Subscription is the payload relayed to the marketing API.
type Subscription struct {
	Email  string `json:"email"`
	Name   string `json:"name,omitempty"`
	Source string `json:"source"`
}

// Client relays mailing-list subscriptions to a third-party marketing API.
// The relay is fire-and-forget from the caller's perspective: failures are
// logged here and surfaced upstream only as a generic error.
type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
	MaxElapsed time.Duration

	logger *zap.Logger
}

func NewClient(baseURL, apiKey string, logger *zap.Logger) *Client {
	return &Client{
		BaseURL:    baseURL,
		APIKey:     apiKey,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		MaxElapsed: 30 * time.Second,
		logger:     logger,
	}
}

// Subscribe posts the subscription, retrying transient failures with
// exponential backoff. 4xx responses are not retried: the payload will not
// get better.
func (c *Client) Subscribe(ctx context.Context, sub Subscription) error {
	if c.BaseURL == "" {
		c.logger.Warn("mailing-list relay not configured, dropping subscription",
			zap.String("source", sub.Source))
		return nil
	}

	operation := func() error {
		return c.post(ctx, sub)
	}

	policy := backoff.WithContext(backoff.NewExponentialBackOff(
		backoff.WithMaxElapsedTime(c.MaxElapsed),
	), ctx)

	if err := backoff.Retry(operation, policy); err != nil {
		c.logger.Error("mailing-list relay failed",
			zap.String("source", sub.Source), zap.Error(err))
		return fmt.Errorf("subscription could not be delivered")
	}

	c.logger.Info("subscription relayed", zap.String("source", sub.Source))
	return nil
}

func (c *Client) post(ctx context.Context, sub Subscription) error {
	jsonData, err := json.Marshal(sub)
	if err != nil {
		return backoff.Permanent(fmt.Errorf("failed to marshal request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v1/contacts", bytes.NewBuffer(jsonData))
	if err != nil {
		return backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("marketing api request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return backoff.Permanent(fmt.Errorf("marketing api rejected request: %d", resp.StatusCode))
	default:
		return fmt.Errorf("marketing api returned status: %d", resp.StatusCode)
	}
}
