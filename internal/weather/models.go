package weather

import (
	"fmt"
	"time"
)

// Source identifies which provider produced a snapshot.
type Source string

const (
	SourceOpenMeteo   Source = "open-meteo"
	SourceOpenWeather Source = "openweathermap"
)

// Snapshot is the normalized weather view for one fetch. Optional fields are
// nil when the provider omitted them; rendering must treat nil as unknown.
type Snapshot struct {
	ObservedAt time.Time `json:"observedAt"`
	Source     Source    `json:"source"`

	TemperatureC *float64 `json:"temperatureC,omitempty"`
	WindSpeed    *float64 `json:"windSpeed,omitempty"` // km/h as reported

	DailyMaxC        *float64 `json:"dailyMaxC,omitempty"`
	DailyMinC        *float64 `json:"dailyMinC,omitempty"`
	PrecipitationSum *float64 `json:"precipitationSum,omitempty"` // mm

	// HourlyPrecipProbability holds 0-100 percentages in hour order.
	HourlyPrecipProbability []int `json:"hourlyPrecipProbability,omitempty"`
}

// FromFallback reports whether the snapshot came from the backup provider.
func (s Snapshot) FromFallback() bool {
	return s.Source == SourceOpenWeather
}

// FetchError is the one fatal fetch failure in the pipeline: every configured
// weather source was exhausted. Err is the primary provider's error even when
// a fallback was attempted afterwards.
type FetchError struct {
	Provider string
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("weather fetch from %s failed: %v", e.Provider, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
