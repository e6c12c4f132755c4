// Package report turns fetched and derived values into the single HTML
// message delivered to Telegram. Composition is pure: no I/O, fully
// deterministic given its inputs.
package report

import (
	"fmt"
	"html"
	"strings"

	"github.com/yclin/taipei-brief/internal/content"
	"github.com/yclin/taipei-brief/internal/news"
	"github.com/yclin/taipei-brief/internal/weather"
)

// summaryRuneLimit caps each cleaned title in the digest line.
const summaryRuneLimit = 80

// TopicNews is the fetch result for one configured topic, in topic order.
type TopicNews struct {
	Label string
	Items []news.Headline
}

// Input carries everything Compose needs. Weather is the normalized snapshot;
// Outlook its derived classification.
type Input struct {
	Weather weather.Snapshot
	Outlook weather.Outlook

	Vocab     []content.Entry
	Quote     content.Entry
	QuoteOK   bool
	Horoscope map[string]string
	LunarNote string
	LunarOK   bool

	News []TopicNews

	TempUnit            string
	WindUnit            string
	UmbrellaThresholdMM float64
}

// Compose renders the full briefing. Sections appear in fixed order and are
// joined by a blank line. All interpolated free text is HTML-escaped.
func Compose(in Input) string {
	var sections []string

	sections = append(sections, fmt.Sprintf("<b>時間：</b>%s", in.Weather.ObservedAt.Format("2006-01-02 15:04")))

	sections = append(sections, sourceSection(in.Weather)...)

	sections = append(sections, fmt.Sprintf("<b>現在天氣：</b> 溫度 %s，風速 %s",
		formatTemp(in.Weather.TemperatureC, in.TempUnit),
		formatWind(in.Weather.WindSpeed, in.WindUnit)))

	sections = append(sections, outlookSection(in.Outlook))

	precip := 0.0
	if in.Weather.PrecipitationSum != nil {
		precip = *in.Weather.PrecipitationSum
	}
	sections = append(sections, fmt.Sprintf("<b>明天天氣與穿衣建議：</b> 最高 %s / 最低 %s；建議：%s",
		formatTemp(in.Weather.DailyMaxC, in.TempUnit),
		formatTemp(in.Weather.DailyMinC, in.TempUnit),
		ClothingAdvice(in.Weather.DailyMaxC, in.Weather.DailyMinC, precip, in.UmbrellaThresholdMM)))

	if in.LunarOK {
		sections = append(sections, fmt.Sprintf("<b>農民曆：</b> %s", html.EscapeString(in.LunarNote)))
	}

	if len(in.Vocab) > 0 {
		sections = append(sections, vocabSection(in.Vocab))
	}

	if in.QuoteOK {
		sections = append(sections, fmt.Sprintf("<b>每日一句：</b>「%s」（%s）",
			html.EscapeString(in.Quote.Fields["text"]),
			html.EscapeString(in.Quote.Fields["author"])))
	}

	if len(in.Horoscope) > 0 {
		sections = append(sections, fmt.Sprintf("<b>今日運勢：</b> 金牛：%s  巨蟹：%s",
			html.EscapeString(in.Horoscope["Taurus"]),
			html.EscapeString(in.Horoscope["Cancer"])))
	}

	for _, topic := range in.News {
		sections = append(sections, newsSection(topic))
	}

	return strings.Join(sections, "\n\n")
}

func sourceSection(snap weather.Snapshot) []string {
	if snap.FromFallback() {
		return []string{
			"<b>資料來源：</b> OpenWeatherMap（備援）",
			"<b>備註：</b> 本次資料為備援來源（OpenWeatherMap），數值可能與主來源略有差異，請以當地實際狀況為準。",
		}
	}
	return []string{"<b>資料來源：</b> Open-Meteo（主來源）"}
}

func outlookSection(out weather.Outlook) string {
	var summary string
	switch out.Kind {
	case weather.OutlookRain:
		summary = "雨天"
	case weather.OutlookHighProb:
		summary = "大雨機率高"
	case weather.OutlookMediumProb:
		summary = "有雨機率"
	case weather.OutlookClear:
		summary = "晴到多雲"
	default:
		summary = "未知"
	}

	if out.MaxProbability >= 0 {
		return fmt.Sprintf("<b>明天天氣概況：</b> %s（降雨機率最高 %d%%）", summary, out.MaxProbability)
	}
	return fmt.Sprintf("<b>明天天氣概況：</b> %s", summary)
}

func vocabSection(entries []content.Entry) string {
	lines := []string{fmt.Sprintf("<b>多益常考單字（%d）</b>", len(entries))}
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("- %s：%s；例句：%s",
			html.EscapeString(e.Key),
			html.EscapeString(e.Fields["chi"]),
			html.EscapeString(e.Fields["example"])))
	}
	return strings.Join(lines, "\n")
}

func newsSection(topic TopicNews) string {
	lines := []string{fmt.Sprintf("<b>%s</b>", html.EscapeString(topic.Label))}

	if len(topic.Items) == 0 {
		lines = append(lines, "無資料")
		return strings.Join(lines, "\n")
	}

	var cleaned []string
	for i, it := range topic.Items {
		title := news.CleanTitle(it.Title)
		lines = append(lines, fmt.Sprintf("%d. <a href=\"%s\">%s</a>",
			i+1, html.EscapeString(it.Link), html.EscapeString(title)))
		cleaned = append(cleaned, truncateRunes(title, summaryRuneLimit))
	}
	lines = append(lines, fmt.Sprintf("重點整理：%s", html.EscapeString(strings.Join(cleaned, " / "))))

	return strings.Join(lines, "\n")
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}

func formatTemp(c *float64, unit string) string {
	if c == nil {
		return "N/A"
	}
	v := *c
	if unit == "F" {
		v = v*9/5 + 32
	}
	return fmt.Sprintf("%.1f°%s", v, unit)
}

func formatWind(kmh *float64, unit string) string {
	if kmh == nil {
		return "N/A"
	}
	v := *kmh
	if unit == "m/s" {
		v = v / 3.6
	}
	return fmt.Sprintf("約 %.1f %s", v, unit)
}
