package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/pogo-weather/internal/httpx"
)

func TestDiscordSend(t *testing.T) {
	var got webhookPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/webhooks/123/tok", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	n := NewDiscordNotifier(DiscordParams{
		Client:    srv.Client(),
		BaseURL:   srv.URL + "/api",
		WebhookID: "123",
		Token:     "tok",
	})
	require.NoError(t, n.Send(context.Background(), "PogoWeather", "Weather forecast for X\n"))
	assert.Equal(t, webhookPayload{Username: "PogoWeather", Content: "Weather forecast for X\n"}, got)
}

func TestDiscordSendFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	n := NewDiscordNotifier(DiscordParams{Client: srv.Client(), BaseURL: srv.URL, WebhookID: "1", Token: "t"})
	err := n.Send(context.Background(), "PogoWeather", "hi")
	assert.ErrorIs(t, err, httpx.ErrServerError)
}

func TestDiscordNotConfigured(t *testing.T) {
	n := NewDiscordNotifier(DiscordParams{Client: http.DefaultClient})
	assert.ErrorIs(t, n.Send(context.Background(), "u", "c"), ErrWebhookNotConfigured)
}
