package content

import (
	"math/rand"
	"time"
)

// daysSinceEpoch counts whole calendar days from the Unix epoch in the date's
// own location, so the batch flips at local midnight. Negative for dates
// before 1970.
func daysSinceEpoch(date time.Time) int {
	y, m, d := date.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return int(midnight.Unix() / 86400)
}

// mod is the always-non-negative remainder, so pre-1970 dates still index
// into the list.
func mod(a, n int) int {
	return ((a % n) + n) % n
}

// DailyBatch deterministically selects batchSize entries for the given date,
// cycling through the list so consecutive days never overlap until the list
// wraps. Same date, same list, same batch. An empty list yields an empty
// batch.
func DailyBatch(entries []Entry, batchSize int, date time.Time) []Entry {
	if len(entries) == 0 || batchSize <= 0 {
		return nil
	}

	start := mod(daysSinceEpoch(date)*batchSize, len(entries))
	out := make([]Entry, 0, batchSize)
	for i := 0; i < batchSize; i++ {
		out = append(out, entries[(start+i)%len(entries)])
	}
	return out
}

// QuoteOfDay is the batchSize=1 rotation: one entry per day, cycling through
// the list.
func QuoteOfDay(entries []Entry, date time.Time) (Entry, bool) {
	if len(entries) == 0 {
		return Entry{}, false
	}
	idx := mod(daysSinceEpoch(date), len(entries))
	return entries[idx], true
}

// SampleFresh picks n entries at random, excluding keys shown in the recent
// history. When fewer than n entries remain outside the history, the
// exclusion is dropped for this run instead of failing; reset reports that so
// the caller can restart its history tracking.
func SampleFresh(entries []Entry, n int, recent []string, rng *rand.Rand) (selected []Entry, reset bool) {
	if len(entries) == 0 || n <= 0 {
		return nil, false
	}

	recentSet := make(map[string]bool, len(recent))
	for _, k := range recent {
		recentSet[k] = true
	}

	pool := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if !recentSet[e.Key] {
			pool = append(pool, e)
		}
	}
	if len(pool) < n {
		pool = append(pool[:0:0], entries...)
		reset = true
	}

	rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	if n > len(pool) {
		n = len(pool)
	}
	return pool[:n], reset
}
