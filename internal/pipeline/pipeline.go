// Package pipeline runs one briefing iteration end to end: fetch weather,
// fetch news per topic, rotate reference content, compose. It contains no
// loop or sleep logic so a single run can be tested as a plain call.
package pipeline

import (
	"context"
	"log"
	"math/rand"
	"time"

	"github.com/yclin/taipei-brief/internal/config"
	"github.com/yclin/taipei-brief/internal/content"
	"github.com/yclin/taipei-brief/internal/news"
	"github.com/yclin/taipei-brief/internal/report"
	"github.com/yclin/taipei-brief/internal/weather"
)

// Runner owns the fetchers a single run needs. All fields are required
// except rng, which defaults to a time-seeded source.
type Runner struct {
	cfg     *config.AppConfig
	weather *weather.Service
	news    *news.Client
	rng     *rand.Rand

	// now is stubbed in tests.
	now func() time.Time
}

func NewRunner(cfg *config.AppConfig, ws *weather.Service, nc *news.Client) *Runner {
	return &Runner{
		cfg:     cfg,
		weather: ws,
		news:    nc,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		now:     time.Now,
	}
}

// RunOnce produces the composed briefing. The only fatal failure is weather:
// with no snapshot there is nothing worth reporting. News topics degrade
// independently to empty sections.
func (r *Runner) RunOnce(ctx context.Context) (string, weather.Source, error) {
	snap, err := r.weather.Fetch(ctx)
	if err != nil {
		return "", "", err
	}

	var topicNews []report.TopicNews
	for _, topic := range r.cfg.NewsTopics {
		items := r.news.Fetch(ctx, topic.Query, r.cfg.NewsMaxItems)
		topicNews = append(topicNews, report.TopicNews{Label: topic.Label, Items: items})
	}

	now := r.now()

	vocab := r.pickVocab(now)
	quote, quoteOK := content.QuoteOfDay(content.QuoteEntries, now)

	lunar, lunarOK := content.LunarNote(now)

	outlook := weather.Classify(snap, weather.Thresholds{
		RainMM:    r.cfg.RainThresholdMM,
		HighPct:   r.cfg.ProbHighPct,
		MediumPct: r.cfg.ProbMediumPct,
	})

	msg := report.Compose(report.Input{
		Weather:             snap,
		Outlook:             outlook,
		Vocab:               vocab,
		Quote:               quote,
		QuoteOK:             quoteOK,
		Horoscope:           content.Horoscopes,
		LunarNote:           lunar,
		LunarOK:             lunarOK,
		News:                topicNews,
		TempUnit:            r.cfg.TempUnit,
		WindUnit:            r.cfg.WindUnit,
		UmbrellaThresholdMM: r.cfg.UmbrellaThresholdMM,
	})

	log.Printf("pipeline: composed report from %s (%d topics)", snap.Source, len(topicNews))
	return msg, snap.Source, nil
}

// pickVocab selects the day's vocabulary batch. Date-derived rotation is
// stateless; the sampling rotation persists a history file to avoid repeats.
func (r *Runner) pickVocab(now time.Time) []content.Entry {
	if r.cfg.VocabRotation == "daily" {
		return content.DailyBatch(content.VocabEntries, r.cfg.VocabBatch, now)
	}

	history := content.LoadHistory(r.cfg.HistoryPath, r.cfg.HistoryWindow)
	vocab, poolReset := content.SampleFresh(content.VocabEntries, r.cfg.VocabBatch, history.Recent(), r.rng)
	if len(vocab) > 0 {
		if poolReset {
			history.Reset()
		}
		shown := make([]string, 0, len(vocab))
		for _, e := range vocab {
			shown = append(shown, e.Key)
		}
		history.Record(shown...)
		history.Save()
	}
	return vocab
}
