package weather

import "testing"

func f(v float64) *float64 { return &v }

var testThresholds = Thresholds{RainMM: 0.1, HighPct: 60, MediumPct: 30}

func TestClassify(t *testing.T) {
	cases := []struct {
		name     string
		snap     Snapshot
		wantKind OutlookKind
		wantProb int
	}{
		{
			name:     "precip sum above threshold means rain",
			snap:     Snapshot{PrecipitationSum: f(5.0), HourlyPrecipProbability: []int{10, 20}},
			wantKind: OutlookRain,
			wantProb: 20,
		},
		{
			name:     "threshold is exclusive",
			snap:     Snapshot{PrecipitationSum: f(0.1), HourlyPrecipProbability: []int{10}},
			wantKind: OutlookClear,
			wantProb: 10,
		},
		{
			name:     "high probability tier",
			snap:     Snapshot{PrecipitationSum: f(0.0), HourlyPrecipProbability: []int{10, 75, 40}},
			wantKind: OutlookHighProb,
			wantProb: 75,
		},
		{
			name:     "medium probability tier at boundary",
			snap:     Snapshot{PrecipitationSum: f(0.0), HourlyPrecipProbability: []int{30}},
			wantKind: OutlookMediumProb,
			wantProb: 30,
		},
		{
			name:     "clear below medium",
			snap:     Snapshot{PrecipitationSum: f(0.0), HourlyPrecipProbability: []int{0, 29}},
			wantKind: OutlookClear,
			wantProb: 29,
		},
		{
			name:     "no hourly data is unknown",
			snap:     Snapshot{PrecipitationSum: f(0.0)},
			wantKind: OutlookUnknown,
			wantProb: -1,
		},
		{
			name:     "nothing known is unknown",
			snap:     Snapshot{},
			wantKind: OutlookUnknown,
			wantProb: -1,
		},
		{
			name:     "nil precip still classifies from hourly",
			snap:     Snapshot{HourlyPrecipProbability: []int{65}},
			wantKind: OutlookHighProb,
			wantProb: 65,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(tc.snap, testThresholds)
			if got.Kind != tc.wantKind {
				t.Fatalf("kind = %v, want %v", got.Kind, tc.wantKind)
			}
			if got.MaxProbability != tc.wantProb {
				t.Fatalf("max probability = %d, want %d", got.MaxProbability, tc.wantProb)
			}
		})
	}
}
