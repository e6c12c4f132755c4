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

// OpenWeatherProvider is the backup source, used only after the primary is
// exhausted. Its One Call response shape is normalized into the same Snapshot
// fields the primary produces.
type OpenWeatherProvider struct {
	name     string
	apiKey   string
	baseURL  string
	lat, lon float64
	httpCfg  httpx.ClientConfig
	circuit  *gobreaker.CircuitBreaker
}

func NewOpenWeatherProvider(cfg httpx.ClientConfig, apiKey string, lat, lon float64) *OpenWeatherProvider {
	return &OpenWeatherProvider{
		name:    string(weather.SourceOpenWeather),
		apiKey:  apiKey,
		baseURL: "https://api.openweathermap.org/data/2.5/onecall",
		lat:     lat,
		lon:     lon,
		httpCfg: cfg,
		circuit: httpx.NewBreaker("openweather"),
	}
}

// WithBaseURL overrides the endpoint; used by tests.
func (p *OpenWeatherProvider) WithBaseURL(u string) *OpenWeatherProvider {
	p.baseURL = u
	return p
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

func (p *OpenWeatherProvider) Fetch(ctx context.Context) (weather.Snapshot, error) {
	if p.apiKey == "" {
		return weather.Snapshot{}, fmt.Errorf("openweather api key is not configured")
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("lat", strconv.FormatFloat(p.lat, 'f', 4, 64))
		values.Set("lon", strconv.FormatFloat(p.lon, 'f', 4, 64))
		values.Set("units", "metric")
		values.Set("exclude", "minutely")
		values.Set("appid", p.apiKey)

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := httpx.Do(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return weather.Snapshot{}, err
	}
	defer resp.Body.Close()

	var payload struct {
		Current struct {
			Dt        int64    `json:"dt"`
			Temp      *float64 `json:"temp"`
			WindSpeed *float64 `json:"wind_speed"`
		} `json:"current"`
		Daily []struct {
			Temp struct {
				Max *float64 `json:"max"`
				Min *float64 `json:"min"`
			} `json:"temp"`
			Rain float64 `json:"rain"`
			Snow float64 `json:"snow"`
		} `json:"daily"`
		Hourly []struct {
			Pop float64 `json:"pop"` // 0.0-1.0
		} `json:"hourly"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.Snapshot{}, fmt.Errorf("decoding openweather response: %w", err)
	}

	snap := weather.Snapshot{
		ObservedAt:   time.Unix(payload.Current.Dt, 0),
		Source:       weather.SourceOpenWeather,
		TemperatureC: payload.Current.Temp,
		WindSpeed:    payload.Current.WindSpeed,
	}

	if len(payload.Daily) > 0 {
		d := payload.Daily[0]
		snap.DailyMaxC = d.Temp.Max
		snap.DailyMinC = d.Temp.Min
		sum := d.Rain + d.Snow
		snap.PrecipitationSum = &sum
	}

	// One Call has no hourly precipitation probability; pop is the closest
	// equivalent.
	if len(payload.Hourly) > 0 {
		probs := make([]int, 0, len(payload.Hourly))
		for _, h := range payload.Hourly {
			probs = append(probs, int(h.Pop*100))
		}
		snap.HourlyPrecipProbability = probs
	}

	return snap, nil
}
