package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	_ "github.com/joho/godotenv/autoload"
)

const (
	ProviderGoogleAI = "googleai"
	ProviderOpenAI   = "openai"

	defaultNewsFeedURL = "https://news.google.com/rss/search?hl=en-US&gl=US&ceid=US:en&q="
)

// Config is built once at startup and handed to constructors. Nothing downstream
// reads the environment directly.
type Config struct {
	Port           int
	AllowedOrigins []string
	LogLevel       string

	YouTubeAPIKey string

	LLMProvider string
	LLMAPIKey   string
	LLMModel    string

	NewsAPIKey        string
	NewsFeedURL       string
	HackerNewsEnabled bool

	RateLimitRPS   float64
	RateLimitBurst int

	AnalyzeTimeout time.Duration
	HTTPTimeout    time.Duration
	UserAgent      string
}

func Load() *Config {
	provider := strings.ToLower(getEnv("LLM_PROVIDER", ProviderGoogleAI))

	cfg := &Config{
		Port:              getInt("PORT", 8080),
		AllowedOrigins:    splitList(os.Getenv("ALLOWED_ORIGINS")),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		YouTubeAPIKey:     os.Getenv("YOUTUBE_API_KEY"),
		LLMProvider:       provider,
		NewsAPIKey:        os.Getenv("NEWS_API_KEY"),
		NewsFeedURL:       getEnvAllowEmpty("NEWS_FEED_URL", defaultNewsFeedURL),
		HackerNewsEnabled: getBool("HACKERNEWS_ENABLED", false),
		RateLimitRPS:      getFloat("RATE_LIMIT_RPS", 3),
		RateLimitBurst:    getInt("RATE_LIMIT_BURST", 5),
		AnalyzeTimeout:    getDuration("ANALYZE_TIMEOUT", 60*time.Second),
		HTTPTimeout:       getDuration("HTTP_TIMEOUT", 15*time.Second),
		UserAgent:         getEnv("USER_AGENT", "TubeIdeas/1.0"),
	}

	switch provider {
	case ProviderOpenAI:
		cfg.LLMAPIKey = os.Getenv("OPENAI_API_KEY")
		cfg.LLMModel = getEnv("LLM_MODEL", "gpt-4-turbo-preview")
	default:
		cfg.LLMProvider = ProviderGoogleAI
		cfg.LLMAPIKey = getEnv("API_KEY", os.Getenv("GOOGLE_API_KEY"))
		cfg.LLMModel = getEnv("LLM_MODEL", "gemini-2.5-flash")
	}

	return cfg
}

// LLMKeyName is the environment variable holding the generative-model credential.
func (c *Config) LLMKeyName() string {
	if c.LLMProvider == ProviderOpenAI {
		return "OPENAI_API_KEY"
	}
	return "API_KEY"
}

// NewsBackend names the news source these settings select.
func (c *Config) NewsBackend() string {
	switch {
	case c.NewsAPIKey != "":
		return "newsapi"
	case c.NewsFeedURL != "":
		return "feed"
	default:
		return "disabled"
	}
}

// ConfigureLogger applies LogLevel to zerolog's global level.
func (c *Config) ConfigureLogger() {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || c.LogLevel == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getEnvAllowEmpty distinguishes "unset" from "set to empty" so a variable can
// switch a feature off.
func getEnvAllowEmpty(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return strings.TrimSpace(v)
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Str("value", v).Int("default", fallback).Msg("Invalid integer in environment, using default")
		return fallback
	}
	return n
}

func getFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Str("value", v).Float64("default", fallback).Msg("Invalid number in environment, using default")
		return fallback
	}
	return f
}

func getBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Str("value", v).Bool("default", fallback).Msg("Invalid boolean in environment, using default")
		return fallback
	}
	return b
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Str("value", v).Dur("default", fallback).Msg("Invalid duration in environment, using default")
		return fallback
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
