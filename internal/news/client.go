// Package news fetches recent headlines from Google News RSS search feeds.
// A failed or malformed fetch degrades to an empty result; news is never
// allowed to abort a run.
package news

import (
	"context"
	"encoding/xml"
	"fmt"
	"log"
	"net/http"
	"net/url"

	"github.com/sony/gobreaker"

	"github.com/yclin/taipei-brief/internal/httpx"
)

// Headline is one fetched item, unique only within its fetch batch.
type Headline struct {
	Title string
	Link  string
}

type rssFeed struct {
	XMLName xml.Name `xml:"rss"`
	Channel struct {
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
}

type rssItem struct {
	Title string `xml:"title"`
	Link  string `xml:"link"`
}

// Client queries the Google News search feed for one locale.
type Client struct {
	baseURL string
	httpCfg httpx.ClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewClient(cfg httpx.ClientConfig) *Client {
	return &Client{
		baseURL: "https://news.google.com/rss/search",
		httpCfg: cfg,
		circuit: httpx.NewBreaker("googlenews"),
	}
}

// WithBaseURL overrides the feed endpoint; used by tests.
func (c *Client) WithBaseURL(u string) *Client {
	c.baseURL = u
	return c
}

// Fetch returns up to maxItems headlines for the query. Any retrieval or
// parse failure is logged and yields an empty slice.
func (c *Client) Fetch(ctx context.Context, query string, maxItems int) []Headline {
	items, err := c.fetch(ctx, query, maxItems)
	if err != nil {
		log.Printf("news: fetch for %q failed: %v", query, err)
		return nil
	}
	return items
}

func (c *Client) fetch(ctx context.Context, query string, maxItems int) ([]Headline, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("q", query)
		values.Set("hl", "zh-TW")
		values.Set("gl", "TW")
		values.Set("ceid", "TW:zh-Hant")

		u := fmt.Sprintf("%s?%s", c.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := httpx.Do(ctx, c.httpCfg, c.circuit, buildRequest)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var feed rssFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("decoding feed: %w", err)
	}

	items := feed.Channel.Items
	if len(items) > maxItems {
		items = items[:maxItems]
	}

	out := make([]Headline, 0, len(items))
	for _, it := range items {
		out = append(out, Headline{Title: it.Title, Link: it.Link})
	}
	return out, nil
}
