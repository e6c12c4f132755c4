package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"

	"github.com/yclin/taipei-brief/internal/httpx"
	"github.com/yclin/taipei-brief/internal/weather"
)

// OpenMeteoProvider is the primary forecast source. No API key required.
type OpenMeteoProvider struct {
	name     string
	baseURL  string
	lat, lon float64
	timezone string
	httpCfg  httpx.ClientConfig
	circuit  *gobreaker.CircuitBreaker
}

func NewOpenMeteoProvider(cfg httpx.ClientConfig, lat, lon float64, timezone string) *OpenMeteoProvider {
	return &OpenMeteoProvider{
		name:     string(weather.SourceOpenMeteo),
		baseURL:  "https://api.open-meteo.com/v1/forecast",
		lat:      lat,
		lon:      lon,
		timezone: timezone,
		httpCfg:  cfg,
		circuit:  httpx.NewBreaker("openmeteo"),
	}
}

// WithBaseURL overrides the endpoint; used by tests.
func (p *OpenMeteoProvider) WithBaseURL(u string) *OpenMeteoProvider {
	p.baseURL = u
	return p
}

func (p *OpenMeteoProvider) Name() string {
	return p.name
}

func (p *OpenMeteoProvider) Fetch(ctx context.Context) (weather.Snapshot, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", strconv.FormatFloat(p.lat, 'f', 4, 64))
		values.Set("longitude", strconv.FormatFloat(p.lon, 'f', 4, 64))
		values.Set("current_weather", "true")
		values.Set("timezone", p.timezone)
		values.Set("daily", "temperature_2m_max,temperature_2m_min,precipitation_sum")
		values.Set("hourly", "precipitation_probability")

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := httpx.Do(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return weather.Snapshot{}, err
	}
	defer resp.Body.Close()

	var payload struct {
		CurrentWeather struct {
			Time        string   `json:"time"`
			Temperature *float64 `json:"temperature"`
			WindSpeed   *float64 `json:"windspeed"`
		} `json:"current_weather"`
		Daily struct {
			TemperatureMax   []*float64 `json:"temperature_2m_max"`
			TemperatureMin   []*float64 `json:"temperature_2m_min"`
			PrecipitationSum []*float64 `json:"precipitation_sum"`
		} `json:"daily"`
		Hourly struct {
			PrecipitationProbability []int `json:"precipitation_probability"`
		} `json:"hourly"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.Snapshot{}, fmt.Errorf("decoding open-meteo response: %w", err)
	}

	observed := parseLocalTime(payload.CurrentWeather.Time, p.timezone)

	snap := weather.Snapshot{
		ObservedAt:              observed,
		Source:                  weather.SourceOpenMeteo,
		TemperatureC:            payload.CurrentWeather.Temperature,
		WindSpeed:               payload.CurrentWeather.WindSpeed,
		HourlyPrecipProbability: payload.Hourly.PrecipitationProbability,
	}
	snap.DailyMaxC = firstOrNil(payload.Daily.TemperatureMax)
	snap.DailyMinC = firstOrNil(payload.Daily.TemperatureMin)
	snap.PrecipitationSum = firstOrNil(payload.Daily.PrecipitationSum)

	return snap, nil
}

// parseLocalTime handles Open-Meteo's zone-less "2006-01-02T15:04" stamps.
func parseLocalTime(s, timezone string) time.Time {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		loc = time.UTC
	}
	for _, layout := range []string{"2006-01-02T15:04", time.RFC3339} {
		if ts, err := time.ParseInLocation(layout, s, loc); err == nil {
			return ts
		}
	}
	return time.Now().In(loc)
}

func firstOrNil(vals []*float64) *float64 {
	if len(vals) == 0 {
		return nil
	}
	return vals[0]
}
