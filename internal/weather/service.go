package weather

import (
	"context"
	"log"
)

// Service fetches from the primary provider and, when configured, falls back
// to the secondary one after the primary is exhausted.
type Service struct {
	primary  Provider
	fallback Provider // nil when no fallback is configured
}

// NewService creates a Service. fallback may be nil.
func NewService(primary, fallback Provider) *Service {
	return &Service{primary: primary, fallback: fallback}
}

// Fetch returns a normalized snapshot. When both sources fail, the primary
// provider's error is the one surfaced, wrapped in *FetchError.
func (s *Service) Fetch(ctx context.Context) (Snapshot, error) {
	snap, primaryErr := s.primary.Fetch(ctx)
	if primaryErr == nil {
		return snap, nil
	}
	log.Printf("weather: primary provider %s failed: %v", s.primary.Name(), primaryErr)

	if s.fallback != nil {
		log.Printf("weather: attempting %s fallback", s.fallback.Name())
		snap, err := s.fallback.Fetch(ctx)
		if err == nil {
			return snap, nil
		}
		log.Printf("weather: fallback provider %s failed: %v", s.fallback.Name(), err)
	}

	return Snapshot{}, &FetchError{Provider: s.primary.Name(), Err: primaryErr}
}
