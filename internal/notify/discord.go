package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/sony/gobreaker"

	"github.com/i474232898/pogo-weather/internal/httpx"
)

// DefaultDiscordBaseURL is the Discord REST API root.
const DefaultDiscordBaseURL = "https://discord.com/api"

// ErrWebhookNotConfigured is returned when the webhook id or token is missing.
var ErrWebhookNotConfigured = errors.New("discord webhook is not configured")

// DiscordParams holds parameters for creating a DiscordNotifier.
type DiscordParams struct {
	Client    *http.Client
	BaseURL   string
	WebhookID string
	Token     string
}

// DiscordNotifier posts messages to a single Discord webhook. Each Send makes
// one attempt.
type DiscordNotifier struct {
	baseURL   string
	webhookID string
	token     string
	httpCfg   httpx.ClientConfig
	circuit   *gobreaker.CircuitBreaker
}

// NewDiscordNotifier creates a webhook notifier.
func NewDiscordNotifier(p DiscordParams) *DiscordNotifier {
	baseURL := strings.TrimRight(p.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultDiscordBaseURL
	}
	return &DiscordNotifier{
		baseURL:   baseURL,
		webhookID: p.WebhookID,
		token:     p.Token,
		httpCfg:   httpx.ClientConfig{Client: p.Client},
		circuit:   httpx.NewBreaker("discord"),
	}
}

type webhookPayload struct {
	Username string `json:"username"`
	Content  string `json:"content"`
}

// Send posts content under the given username.
func (n *DiscordNotifier) Send(ctx context.Context, username, content string) error {
	if n.webhookID == "" || n.token == "" {
		return ErrWebhookNotConfigured
	}

	body, err := json.Marshal(webhookPayload{Username: username, Content: content})
	if err != nil {
		return fmt.Errorf("encode webhook payload: %w", err)
	}

	buildRequest := func() (*http.Request, error) {
		u := fmt.Sprintf("%s/webhooks/%s/%s", n.baseURL, url.PathEscape(n.webhookID), url.PathEscape(n.token))
		req, err := http.NewRequest(http.MethodPost, u, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		return req, nil
	}

	resp, err := httpx.Do(ctx, n.httpCfg, n.circuit, buildRequest)
	if err != nil {
		return fmt.Errorf("post discord webhook: %w", err)
	}
	resp.Body.Close()
	return nil
}
