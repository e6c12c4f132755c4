package weather

// OutlookKind classifies tomorrow's conditions into the tiers the report
// renders.
type OutlookKind int

const (
	OutlookUnknown OutlookKind = iota
	OutlookRain                // daily precipitation sum above the rain threshold
	OutlookHighProb            // max hourly probability at or above the high cutoff
	OutlookMediumProb
	OutlookClear
)

// Outlook is the derived next-day summary.
type Outlook struct {
	Kind OutlookKind

	// MaxProbability is the highest hourly precipitation probability, or -1
	// when no hourly data was available.
	MaxProbability int
}

// Thresholds holds the classification cutoffs. Values come from configuration;
// the zero value is not usable.
type Thresholds struct {
	RainMM    float64 // precipitation sum above this means rain
	HighPct   int
	MediumPct int
}

// Classify derives tomorrow's outlook from a snapshot. Missing data at any
// stage yields OutlookUnknown, never an error.
func Classify(snap Snapshot, t Thresholds) Outlook {
	out := Outlook{Kind: OutlookUnknown, MaxProbability: -1}

	if snap.PrecipitationSum != nil && *snap.PrecipitationSum > t.RainMM {
		out.Kind = OutlookRain
		if len(snap.HourlyPrecipProbability) > 0 {
			out.MaxProbability = maxOf(snap.HourlyPrecipProbability)
		}
		return out
	}

	if len(snap.HourlyPrecipProbability) == 0 {
		return out
	}

	maxp := maxOf(snap.HourlyPrecipProbability)
	out.MaxProbability = maxp
	switch {
	case maxp >= t.HighPct:
		out.Kind = OutlookHighProb
	case maxp >= t.MediumPct:
		out.Kind = OutlookMediumProb
	default:
		out.Kind = OutlookClear
	}
	return out
}

func maxOf(vals []int) int {
	m := vals[0]
	for _, v := range vals[1:] {
		if v > m {
			m = v
		}
	}
	return m
}
