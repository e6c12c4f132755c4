package weather

import (
	"context"
	"errors"
	"testing"
)

type stubProvider struct {
	name string
	snap Snapshot
	err  error
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Fetch(ctx context.Context) (Snapshot, error) {
	return s.snap, s.err
}

func TestServicePrimarySucceeds(t *testing.T) {
	primary := &stubProvider{name: "primary", snap: Snapshot{Source: SourceOpenMeteo}}
	fallback := &stubProvider{name: "fallback", err: errors.New("should not be called")}

	svc := NewService(primary, fallback)
	snap, err := svc.Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.Source != SourceOpenMeteo {
		t.Fatalf("expected primary source, got %s", snap.Source)
	}
}

func TestServiceFallsBack(t *testing.T) {
	primary := &stubProvider{name: "primary", err: errors.New("primary down")}
	fallback := &stubProvider{name: "fallback", snap: Snapshot{Source: SourceOpenWeather}}

	svc := NewService(primary, fallback)
	snap, err := svc.Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !snap.FromFallback() {
		t.Fatalf("expected fallback snapshot, got source %s", snap.Source)
	}
}

func TestServiceSurfacesPrimaryError(t *testing.T) {
	primaryErr := errors.New("primary down")
	primary := &stubProvider{name: "primary", err: primaryErr}
	fallback := &stubProvider{name: "fallback", err: errors.New("fallback down too")}

	svc := NewService(primary, fallback)
	_, err := svc.Fetch(context.Background())

	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("expected *FetchError, got %T", err)
	}
	if !errors.Is(err, primaryErr) {
		t.Fatalf("expected the primary error to be surfaced, got %v", err)
	}
}

func TestServiceNoFallbackConfigured(t *testing.T) {
	primaryErr := errors.New("primary down")
	primary := &stubProvider{name: "primary", err: primaryErr}

	svc := NewService(primary, nil)
	_, err := svc.Fetch(context.Background())
	if !errors.Is(err, primaryErr) {
		t.Fatalf("expected primary error without fallback, got %v", err)
	}
}
