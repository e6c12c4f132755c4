package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelvins/geocoder"
)

var (
	// ErrMissingToken is returned when send mode is requested without a
	// configured Telegram bot token.
	ErrMissingToken = errors.New("TELEGRAM_BOT_TOKEN is not set")

	// ErrMissingChatID is returned when send mode is requested without a
	// configured recipient chat id.
	ErrMissingChatID = errors.New("TELEGRAM_CHAT_ID is not set")
)

var validate = validator.New()

// Topic pairs a display label with the Google News search query behind it.
type Topic struct {
	Label string
	Query string
}

// AppConfig is built once at startup and passed into each component.
// No component reads the environment directly.
type AppConfig struct {
	TelegramToken  string
	TelegramChatID string

	// OpenWeatherAPIKey enables the fallback weather provider when set.
	OpenWeatherAPIKey string

	Latitude  float64 `validate:"gte=-90,lte=90"`
	Longitude float64 `validate:"gte=-180,lte=180"`
	Timezone  string  `validate:"required"`

	FetchTimeout   time.Duration `validate:"gt=0"`
	SendTimeout    time.Duration `validate:"gt=0"`
	FetchRetries   int           `validate:"gte=1"`
	RetryBaseDelay time.Duration `validate:"gt=0"`

	TempUnit string `validate:"oneof=C F"`
	WindUnit string `validate:"oneof=km/h m/s"`

	NewsTopics   []Topic `validate:"min=1"`
	NewsMaxItems int     `validate:"gte=1"`

	VocabBatch    int `validate:"gte=1"`
	HistoryWindow int `validate:"gte=1"`
	HistoryPath   string

	// VocabRotation picks how the daily batch is chosen: "sample" draws
	// randomly while avoiding recently used entries, "daily" derives the
	// batch from the calendar date so every run on a day agrees.
	VocabRotation string `validate:"oneof=sample daily"`

	// Outlook thresholds. Kept configurable; the defaults match the values
	// the report has always used.
	RainThresholdMM     float64
	UmbrellaThresholdMM float64
	ProbHighPct         int
	ProbMediumPct       int

	// Status server in loop mode.
	Port          string
	ReportHistory int `validate:"gte=1"`
}

// defaultTopics is the fixed topic set the briefing has always covered.
var defaultTopics = []Topic{
	{Label: "太子集團新聞重點", Query: "太子集團"},
	{Label: "台灣新聞重點", Query: "台灣"},
	{Label: "國際新聞重點", Query: "international OR world news"},
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{
		TelegramToken:     os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramChatID:    os.Getenv("TELEGRAM_CHAT_ID"),
		OpenWeatherAPIKey: os.Getenv("OPENWEATHER_API_KEY"),

		Timezone: getenvDefault("WEATHER_TIMEZONE", "Asia/Taipei"),
		TempUnit: getenvDefault("TEMP_UNIT", "C"),
		WindUnit: getenvDefault("WIND_UNIT", "km/h"),

		NewsMaxItems: getenvInt("NEWS_MAX_ITEMS", 5),

		VocabBatch:    getenvInt("VOCAB_BATCH", 5),
		HistoryWindow: getenvInt("HISTORY_WINDOW", 10),
		HistoryPath:   getenvDefault("HISTORY_PATH", "data/vocab_history.json"),
		VocabRotation: getenvDefault("VOCAB_ROTATION", "sample"),

		RainThresholdMM:     getenvFloat("RAIN_THRESHOLD_MM", 0.1),
		UmbrellaThresholdMM: getenvFloat("UMBRELLA_THRESHOLD_MM", 30),
		ProbHighPct:         getenvInt("PROB_HIGH", 60),
		ProbMediumPct:       getenvInt("PROB_MEDIUM", 30),

		Port:          getenvDefault("PORT", "8080"),
		ReportHistory: getenvInt("REPORT_HISTORY", 24),
	}

	var err error
	if cfg.FetchTimeout, err = getenvDuration("FETCH_TIMEOUT", 20*time.Second); err != nil {
		return nil, err
	}
	if cfg.SendTimeout, err = getenvDuration("SEND_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.RetryBaseDelay, err = getenvDuration("RETRY_BASE_DELAY", 5*time.Second); err != nil {
		return nil, err
	}
	cfg.FetchRetries = getenvInt("FETCH_RETRIES", 3)

	if err := loadLocation(cfg); err != nil {
		return nil, err
	}

	cfg.NewsTopics = parseTopics(os.Getenv("NEWS_TOPICS"))

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// RequireDelivery checks the credentials needed for send mode. Called before
// any network activity so a missing credential never reaches the wire.
func (c *AppConfig) RequireDelivery() error {
	if c.TelegramToken == "" {
		return ErrMissingToken
	}
	if c.TelegramChatID == "" {
		return ErrMissingChatID
	}
	return nil
}

// FallbackEnabled reports whether the secondary weather provider can be used.
func (c *AppConfig) FallbackEnabled() bool {
	return c.OpenWeatherAPIKey != ""
}

// loadLocation fills Latitude/Longitude. Explicit coordinates win; otherwise a
// configured city is geocoded; otherwise the Taipei defaults apply.
func loadLocation(cfg *AppConfig) error {
	latStr := os.Getenv("WEATHER_LAT")
	lonStr := os.Getenv("WEATHER_LON")
	if latStr != "" && lonStr != "" {
		lat, err := strconv.ParseFloat(latStr, 64)
		if err != nil {
			return fmt.Errorf("invalid WEATHER_LAT: %w", err)
		}
		lon, err := strconv.ParseFloat(lonStr, 64)
		if err != nil {
			return fmt.Errorf("invalid WEATHER_LON: %w", err)
		}
		cfg.Latitude, cfg.Longitude = lat, lon
		return nil
	}

	city := os.Getenv("WEATHER_LOCATION_CITY")
	apiKey := os.Getenv("GEOCODER_API_KEY")
	if city != "" && apiKey != "" {
		geocoder.ApiKey = apiKey
		addr := geocoder.Address{
			City:    city,
			Country: getenvDefault("WEATHER_LOCATION_COUNTRY", "TW"),
		}
		loc, err := geocoder.Geocoding(addr)
		if err != nil {
			return fmt.Errorf("geocoding %q failed: %w", city, err)
		}
		cfg.Latitude, cfg.Longitude = loc.Latitude, loc.Longitude
		return nil
	}

	// Taipei.
	cfg.Latitude, cfg.Longitude = 25.0330, 121.5654
	return nil
}

// parseTopics parses "label=query,label=query". A bare entry without "=" is
// used as both label and query. Empty input keeps the default set.
func parseTopics(raw string) []Topic {
	if strings.TrimSpace(raw) == "" {
		return defaultTopics
	}
	var topics []Topic
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if label, query, ok := strings.Cut(part, "="); ok {
			topics = append(topics, Topic{Label: strings.TrimSpace(label), Query: strings.TrimSpace(query)})
		} else {
			topics = append(topics, Topic{Label: part, Query: part})
		}
	}
	if len(topics) == 0 {
		return defaultTopics
	}
	return topics
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}

func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
