package content

import (
	"math/rand"
	"testing"
	"time"
)

func fakeEntries(n int) []Entry {
	entries := make([]Entry, 0, n)
	for i := 0; i < n; i++ {
		entries = append(entries, Entry{Key: string(rune('a' + i))})
	}
	return entries
}

func TestDailyBatchDeterministic(t *testing.T) {
	entries := fakeEntries(7)
	date := time.Date(2025, 11, 3, 9, 30, 0, 0, time.UTC)

	first := DailyBatch(entries, 3, date)
	second := DailyBatch(entries, 3, date)

	if len(first) != 3 {
		t.Fatalf("expected batch of 3, got %d", len(first))
	}
	for i := range first {
		if first[i].Key != second[i].Key {
			t.Fatalf("batch not deterministic at %d: %q vs %q", i, first[i].Key, second[i].Key)
		}
	}

	// Time of day must not matter, only the calendar date.
	evening := DailyBatch(entries, 3, date.Add(13*time.Hour))
	for i := range first {
		if first[i].Key != evening[i].Key {
			t.Fatalf("batch changed within the same day at %d", i)
		}
	}
}

func TestDailyBatchWrapsAround(t *testing.T) {
	entries := fakeEntries(5)

	// batchSize 3 over 5 entries has to wrap within two consecutive days.
	day1 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)

	b1 := DailyBatch(entries, 3, day1)
	b2 := DailyBatch(entries, 3, day2)

	if len(b1) != 3 || len(b2) != 3 {
		t.Fatalf("expected full batches, got %d and %d", len(b1), len(b2))
	}
	if b1[0].Key == b2[0].Key {
		t.Fatalf("consecutive days should start at different offsets")
	}
}

func TestRotationHandlesPre1970Dates(t *testing.T) {
	entries := fakeEntries(7)
	date := time.Date(1969, 7, 20, 12, 0, 0, 0, time.UTC)

	batch := DailyBatch(entries, 3, date)
	if len(batch) != 3 {
		t.Fatalf("expected batch of 3, got %d", len(batch))
	}

	if _, ok := QuoteOfDay(entries, date); !ok {
		t.Fatalf("expected a quote for a pre-epoch date")
	}
}

func TestDailyBatchEmptyList(t *testing.T) {
	if got := DailyBatch(nil, 5, time.Now()); got != nil {
		t.Fatalf("expected empty batch for empty list, got %v", got)
	}
}

func TestQuoteOfDayCycles(t *testing.T) {
	entries := fakeEntries(3)
	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	seen := make(map[string]bool)
	for i := 0; i < 3; i++ {
		e, ok := QuoteOfDay(entries, day.AddDate(0, 0, i))
		if !ok {
			t.Fatalf("expected a quote on day %d", i)
		}
		seen[e.Key] = true
	}
	if len(seen) != 3 {
		t.Fatalf("expected 3 distinct quotes over 3 days, got %d", len(seen))
	}

	if _, ok := QuoteOfDay(nil, day); ok {
		t.Fatalf("expected no quote from empty list")
	}
}

func TestSampleFreshExcludesRecent(t *testing.T) {
	entries := fakeEntries(10)
	rng := rand.New(rand.NewSource(1))
	recent := []string{"a", "b", "c"}

	selected, reset := SampleFresh(entries, 5, recent, rng)
	if reset {
		t.Fatalf("pool of 7 should cover a sample of 5 without reset")
	}
	if len(selected) != 5 {
		t.Fatalf("expected 5 entries, got %d", len(selected))
	}
	for _, e := range selected {
		for _, r := range recent {
			if e.Key == r {
				t.Fatalf("recently shown key %q was selected", r)
			}
		}
	}
}

func TestSampleFreshResetsWhenPoolTooSmall(t *testing.T) {
	entries := fakeEntries(6)
	rng := rand.New(rand.NewSource(1))
	recent := []string{"a", "b", "c", "d"}

	selected, reset := SampleFresh(entries, 5, recent, rng)
	if !reset {
		t.Fatalf("expected exclusion reset when only 2 fresh entries remain")
	}
	if len(selected) != 5 {
		t.Fatalf("expected 5 entries after reset, got %d", len(selected))
	}
}

func TestSampleFreshEmptyList(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	if got, _ := SampleFresh(nil, 3, nil, rng); got != nil {
		t.Fatalf("expected nil from empty list, got %v", got)
	}
}
