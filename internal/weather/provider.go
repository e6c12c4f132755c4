package weather

import "context"

// Provider abstracts a weather data source (Open-Meteo, OpenWeatherMap).
// Implementations normalize their response into a Snapshot.
type Provider interface {
	Name() string
	Fetch(ctx context.Context) (Snapshot, error)
}
