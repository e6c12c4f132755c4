package report

import (
	"strings"
	"testing"
	"time"

	"github.com/yclin/taipei-brief/internal/content"
	"github.com/yclin/taipei-brief/internal/news"
	"github.com/yclin/taipei-brief/internal/weather"
)

func f(v float64) *float64 { return &v }

func baseInput() Input {
	return Input{
		Weather: weather.Snapshot{
			ObservedAt:       time.Date(2025, 11, 3, 8, 0, 0, 0, time.UTC),
			Source:           weather.SourceOpenMeteo,
			TemperatureC:     f(23.4),
			WindSpeed:        f(12.0),
			DailyMaxC:        f(26.0),
			DailyMinC:        f(20.0),
			PrecipitationSum: f(0.0),
		},
		Outlook:             weather.Outlook{Kind: weather.OutlookClear, MaxProbability: 20},
		TempUnit:            "C",
		WindUnit:            "km/h",
		UmbrellaThresholdMM: 30,
	}
}

func TestClothingAdviceBoundaries(t *testing.T) {
	cases := []struct {
		name string
		max  float64
		min  float64
		want string
	}{
		{"hot", 32, 28, "短袖/薄外套"},
		{"boundary 28", 30, 26, "短袖/薄外套"}, // avg exactly 28
		{"mild", 26, 22, "長袖/薄外套"},
		{"boundary 20", 22, 18, "長袖/薄外套"}, // avg exactly 20
		{"cold", 18, 12, "外套/保暖衣物"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ClothingAdvice(f(tc.max), f(tc.min), 0, 30)
			if !strings.Contains(got, tc.want) {
				t.Fatalf("advice for %v/%v = %q, want %q", tc.max, tc.min, got, tc.want)
			}
		})
	}
}

func TestClothingAdviceUmbrella(t *testing.T) {
	with := ClothingAdvice(f(25), f(20), 30.1, 30)
	if !strings.Contains(with, "帶傘或雨具") {
		t.Fatalf("expected umbrella advice above threshold, got %q", with)
	}

	// Exactly at the threshold does not trigger it.
	without := ClothingAdvice(f(25), f(20), 30, 30)
	if strings.Contains(without, "帶傘或雨具") {
		t.Fatalf("did not expect umbrella advice at threshold, got %q", without)
	}
}

func TestClothingAdviceMissingTemps(t *testing.T) {
	got := ClothingAdvice(nil, nil, 40, 30)
	if !strings.Contains(got, "暫無建議") {
		t.Fatalf("expected placeholder advice, got %q", got)
	}
	if !strings.Contains(got, "帶傘或雨具") {
		t.Fatalf("umbrella advice should not depend on temperatures, got %q", got)
	}
}

func TestComposeSectionOrder(t *testing.T) {
	in := baseInput()
	in.Vocab = []content.Entry{{Key: "acquire", Fields: map[string]string{"chi": "獲得", "example": "Example."}}}
	in.Quote = content.Entry{Key: "q", Fields: map[string]string{"text": "千里之行，始於足下。", "author": "老子"}}
	in.QuoteOK = true
	in.Horoscope = content.Horoscopes
	in.News = []TopicNews{
		{Label: "台灣新聞重點", Items: []news.Headline{{Title: "頭條 - 中央社", Link: "https://example.com/1"}}},
	}

	msg := Compose(in)

	markers := []string{"時間：", "資料來源：", "現在天氣：", "明天天氣概況：", "穿衣建議：", "多益常考單字", "每日一句：", "今日運勢：", "台灣新聞重點"}
	last := -1
	for _, m := range markers {
		idx := strings.Index(msg, m)
		if idx < 0 {
			t.Fatalf("missing section %q in:\n%s", m, msg)
		}
		if idx < last {
			t.Fatalf("section %q out of order", m)
		}
		last = idx
	}
}

func TestComposeOmitsQuoteWhenUnset(t *testing.T) {
	msg := Compose(baseInput())
	if strings.Contains(msg, "每日一句：") {
		t.Fatalf("quote section should be absent without a quote, got:\n%s", msg)
	}
}

func TestComposeFallbackCaution(t *testing.T) {
	in := baseInput()
	in.Weather.Source = weather.SourceOpenWeather

	msg := Compose(in)
	if !strings.Contains(msg, "備援") {
		t.Fatalf("expected fallback annotation, got:\n%s", msg)
	}
	if !strings.Contains(msg, "備註：") {
		t.Fatalf("expected caution note for fallback source, got:\n%s", msg)
	}

	primary := Compose(baseInput())
	if strings.Contains(primary, "備註：") {
		t.Fatalf("caution note should only appear for the fallback source")
	}
}

func TestComposeOutlookProbability(t *testing.T) {
	in := baseInput()
	in.Outlook = weather.Outlook{Kind: weather.OutlookHighProb, MaxProbability: 75}
	if msg := Compose(in); !strings.Contains(msg, "降雨機率最高 75%") {
		t.Fatalf("expected probability in outlook, got:\n%s", msg)
	}

	in.Outlook = weather.Outlook{Kind: weather.OutlookUnknown, MaxProbability: -1}
	msg := Compose(in)
	if !strings.Contains(msg, "未知") {
		t.Fatalf("expected unknown outlook, got:\n%s", msg)
	}
	if strings.Contains(msg, "降雨機率最高") {
		t.Fatalf("no probability line expected when unknown, got:\n%s", msg)
	}
}

func TestComposeNoDataTopic(t *testing.T) {
	in := baseInput()
	in.News = []TopicNews{
		{Label: "A", Items: nil},
		{Label: "B", Items: []news.Headline{{Title: "頭條", Link: "https://example.com/x"}}},
	}

	msg := Compose(in)
	if !strings.Contains(msg, "無資料") {
		t.Fatalf("expected no-data marker for empty topic, got:\n%s", msg)
	}
	if !strings.Contains(msg, "1. <a href=\"https://example.com/x\">頭條</a>") {
		t.Fatalf("expected the non-empty topic to render normally, got:\n%s", msg)
	}
}

func TestComposeEscapesFreeText(t *testing.T) {
	in := baseInput()
	in.News = []TopicNews{
		{Label: "科技", Items: []news.Headline{{
			Title: `<script>alert("x")</script>`,
			Link:  `https://example.com/?a=1&b=2`,
		}}},
	}

	msg := Compose(in)
	if strings.Contains(msg, "<script>") {
		t.Fatalf("unescaped markup leaked into output:\n%s", msg)
	}
	if !strings.Contains(msg, "&amp;b=2") {
		t.Fatalf("expected escaped link, got:\n%s", msg)
	}
}

func TestComposeMissingWeatherRendersPlaceholders(t *testing.T) {
	in := baseInput()
	in.Weather.TemperatureC = nil
	in.Weather.WindSpeed = nil
	in.Weather.DailyMaxC = nil
	in.Weather.DailyMinC = nil
	in.Weather.PrecipitationSum = nil

	msg := Compose(in)
	if !strings.Contains(msg, "N/A") {
		t.Fatalf("expected N/A placeholders for unknown values, got:\n%s", msg)
	}
}

func TestComposeSummaryLineTruncates(t *testing.T) {
	long := strings.Repeat("字", 100)
	in := baseInput()
	in.News = []TopicNews{{Label: "A", Items: []news.Headline{{Title: long, Link: "https://example.com"}}}}

	msg := Compose(in)
	if !strings.Contains(msg, strings.Repeat("字", 80)+"...") {
		t.Fatalf("expected 80-rune truncation in digest line")
	}
}

func TestComposeUnitConversion(t *testing.T) {
	in := baseInput()
	in.TempUnit = "F"
	in.WindUnit = "m/s"

	msg := Compose(in)
	// 23.4C = 74.1F, 12 km/h = 3.3 m/s
	if !strings.Contains(msg, "74.1°F") {
		t.Fatalf("expected fahrenheit conversion, got:\n%s", msg)
	}
	if !strings.Contains(msg, "3.3 m/s") {
		t.Fatalf("expected wind unit conversion, got:\n%s", msg)
	}
}
