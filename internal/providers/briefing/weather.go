package briefing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sandevgo/anjali/internal/core"
)

// WeatherClient reads current conditions from weatherapi.com.
type WeatherClient struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

func NewWeatherClient(baseURL, apiKey string, timeout time.Duration) *WeatherClient {
	return &WeatherClient{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
	}
}

func (w *WeatherClient) Configured() bool {
	return w.apiKey != ""
}

func (w *WeatherClient) CurrentWeather(ctx context.Context, city string) (core.Weather, error) {
	q := url.Values{}
	q.Set("key", w.apiKey)
	q.Set("q", city)
	q.Set("aqi", "no")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, w.baseURL+"/current.json?"+q.Encode(), nil)
	if err != nil {
		return core.Weather{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", core.AppUserAgent)

	resp, err := w.client.Do(req)
	if err != nil {
		return core.Weather{}, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return core.Weather{}, fmt.Errorf("weather api returned status %d", resp.StatusCode)
	}

	var data struct {
		Current struct {
			TempC     float64 `json:"temp_c"`
			Condition struct {
				Text string `json:"text"`
			} `json:"condition"`
		} `json:"current"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return core.Weather{}, fmt.Errorf("decode: %w", err)
	}

	return core.Weather{
		City:      city,
		TempC:     data.Current.TempC,
		Condition: data.Current.Condition.Text,
	}, nil
}
