package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/pogo-weather/internal/metrics"
	"github.com/i474232898/pogo-weather/internal/store"
	"github.com/i474232898/pogo-weather/internal/weather"
)

type stubFetcher struct{ err error }

func (f stubFetcher) FetchHourly(context.Context, string) (weather.ProviderResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	h := &weather.ProviderHour{DateTime: "2024-01-01T15:00:00-05:00", WeatherIcon: 1}
	return weather.ProviderResponse{{Key: "0", Hour: h}}, nil
}

type stubNotifier struct{ sent []string }

func (n *stubNotifier) Send(_ context.Context, _, content string) error {
	n.sent = append(n.sent, content)
	return nil
}

type fixedClock struct{}

func (fixedClock) Now() time.Time { return time.Date(2024, 1, 1, 14, 0, 0, 0, time.UTC) }

func newTestApp(t *testing.T, fetchErr error) (*fiber.App, *stubNotifier) {
	t.Helper()
	reg := prometheus.NewRegistry()
	notifier := &stubNotifier{}
	svc := weather.NewService(weather.ServiceParams{
		Catalog:  weather.NewCatalog(weather.Location{ID: "341249", Name: "Reston (RTC)", AlwaysFetch: true}),
		Fetcher:  stubFetcher{err: fetchErr},
		Store:    store.NewMemoryStore(0, 0),
		Notifier: notifier,
		Clock:    fixedClock{},
		Metrics:  metrics.NewCollector(reg),
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	app := fiber.New()
	RegisterRoutes(app, svc, reg)
	return app, notifier
}

func do(t *testing.T, app *fiber.App, method, target string) (*http.Response, []byte) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(method, target, nil))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func TestHealthAndLocations(t *testing.T) {
	app, _ := newTestApp(t, nil)

	resp, body := do(t, app, http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"status":"ok"`)

	resp, body = do(t, app, http.MethodGet, "/api/v1/locations")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"locationID":"341249"`)
}

func TestForecastValidation(t *testing.T) {
	app, _ := newTestApp(t, nil)

	resp, _ := do(t, app, http.MethodGet, "/api/v1/forecast/abc")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = do(t, app, http.MethodGet, "/api/v1/forecast/341249?hour=2024-01-01")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = do(t, app, http.MethodGet, "/api/v1/forecast/999")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = do(t, app, http.MethodGet, "/api/v1/forecast/341249?hour=2024-01-01T09")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRunsAndForecast(t *testing.T) {
	app, notifier := newTestApp(t, nil)

	resp, body := do(t, app, http.MethodPost, "/api/v1/runs/ingest")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var summary struct {
		Pipeline string `json:"pipeline"`
		Status   string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(body, &summary))
	assert.Equal(t, weather.PipelineIngest, summary.Pipeline)
	assert.Equal(t, "success", summary.Status)

	resp, body = do(t, app, http.MethodGet, "/api/v1/forecast/341249")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var forecast struct {
		Bucket   string                `json:"bucket"`
		Forecast weather.DisplayBucket `json:"forecast"`
		Message  string                `json:"message"`
	}
	require.NoError(t, json.Unmarshal(body, &forecast))
	assert.Equal(t, "341249-2024-01-01T14", forecast.Bucket)
	require.Len(t, forecast.Forecast.Hours, 1)
	assert.Equal(t, weather.ConditionClear, forecast.Forecast.Hours[0].Condition)
	assert.True(t, strings.HasPrefix(forecast.Message, "Weather forecast for Reston (RTC)\n"))

	resp, _ = do(t, app, http.MethodPost, "/api/v1/runs/report")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, notifier.sent, 1)

	resp, body = do(t, app, http.MethodGet, "/metrics")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "pogo_weather_fetches_total")
}

func TestRunFailureStatus(t *testing.T) {
	app, _ := newTestApp(t, errors.New("provider down"))

	resp, body := do(t, app, http.MethodPost, "/api/v1/runs/ingest")
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Contains(t, string(body), "FETCH_ERROR")
}
