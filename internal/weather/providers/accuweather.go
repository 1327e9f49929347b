package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/pogo-weather/internal/httpx"
	"github.com/i474232898/pogo-weather/internal/weather"
)

// DefaultAccuWeatherBaseURL is the public AccuWeather data service endpoint.
const DefaultAccuWeatherBaseURL = "http://dataservice.accuweather.com"

// ErrMissingAPIKey is returned when no AccuWeather key is configured.
var ErrMissingAPIKey = errors.New("accuweather api key is not configured")

// AccuWeatherParams holds parameters for creating an AccuWeatherProvider.
type AccuWeatherParams struct {
	Client  *http.Client
	APIKey  string
	BaseURL string
	Backoff httpx.BackoffConfig
}

// AccuWeatherProvider implements weather.ForecastFetcher against the
// 12-hour hourly forecast endpoint.
type AccuWeatherProvider struct {
	apiKey  string
	baseURL string
	httpCfg httpx.ClientConfig
	circuit *gobreaker.CircuitBreaker
}

// NewAccuWeatherProvider creates a provider. The zero Backoff makes exactly
// one attempt per fetch.
func NewAccuWeatherProvider(p AccuWeatherParams) *AccuWeatherProvider {
	baseURL := strings.TrimRight(p.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultAccuWeatherBaseURL
	}
	return &AccuWeatherProvider{
		apiKey:  p.APIKey,
		baseURL: baseURL,
		httpCfg: httpx.ClientConfig{
			Client:  p.Client,
			Backoff: p.Backoff,
		},
		circuit: httpx.NewBreaker("accuweather"),
	}
}

// Name returns the provider name.
func (p *AccuWeatherProvider) Name() string {
	return "accuweather"
}

// FetchHourly retrieves the next 12 hours of forecast for locationID.
func (p *AccuWeatherProvider) FetchHourly(ctx context.Context, locationID string) (weather.ProviderResponse, error) {
	if p.apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if locationID == "" {
		return nil, fmt.Errorf("accuweather location id is empty")
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("apikey", p.apiKey)
		values.Set("details", "true")
		values.Set("metric", "true")

		u := fmt.Sprintf("%s/forecasts/v1/hourly/12hour/%s?%s", p.baseURL, url.PathEscape(locationID), values.Encode())
		req, err := http.NewRequest(http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		return req, nil
	}

	started := time.Now()
	resp, err := httpx.Do(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return nil, fmt.Errorf("accuweather request for %s failed after %s: %w", locationID, time.Since(started).Round(time.Millisecond), err)
	}
	defer resp.Body.Close()

	var payload weather.ProviderResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode accuweather response for %s: %w", locationID, err)
	}
	return payload, nil
}
