// Package config loads process configuration from the environment, with
// an optional .env file for local runs.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/kartvela/preseller/pkg/completion"
	"github.com/kartvela/preseller/pkg/match"
)

// Config is the full process configuration.
type Config struct {
	TelegramToken string

	Provider             completion.Provider
	OpenAIAPIKey         string
	OpenAIModel          string
	OpenRouterAPIKey     string
	OpenRouterModel      string
	LLMTimeout           time.Duration
	LLMRequestsPerSecond float64

	SheetID               string
	SheetName             string
	GoogleCredentialsFile string

	CustomersFile string
	ProductsFile  string
	DBPath        string

	BestThreshold      int
	ShortlistThreshold int
	ShortlistLimit     int
	Mode               match.Mode
}

// Load reads configuration from the environment. A .env file in the
// working directory is merged in when present.
func Load() (Config, error) {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := Config{
		TelegramToken: os.Getenv("TELEGRAM_TOKEN"),

		Provider:             completion.Provider(getEnv("LLM_PROVIDER", string(completion.ProviderOpenAI))),
		OpenAIAPIKey:         os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:          getEnv("OPENAI_MODEL", "gpt-4o"),
		OpenRouterAPIKey:     os.Getenv("OPENROUTER_API_KEY"),
		OpenRouterModel:      os.Getenv("OPENROUTER_MODEL"),
		LLMTimeout:           time.Duration(getEnvInt("LLM_TIMEOUT_SECONDS", 60)) * time.Second,
		LLMRequestsPerSecond: getEnvFloat("LLM_RPS", 1),

		SheetID:               os.Getenv("SHEET_ID"),
		SheetName:             getEnv("SHEET_NAME", "Orders"),
		GoogleCredentialsFile: getEnv("GOOGLE_CREDENTIALS_FILE", "credentials.json"),

		CustomersFile: getEnv("CUSTOMERS_FILE", "known_customers.txt"),
		ProductsFile:  getEnv("PRODUCTS_FILE", "known_products.txt"),
		DBPath:        getEnv("DB_PATH", "orders.db"),

		BestThreshold:      getEnvInt("MATCH_BEST_THRESHOLD", match.DefaultBestThreshold),
		ShortlistThreshold: getEnvInt("MATCH_SHORTLIST_THRESHOLD", match.DefaultShortlistThreshold),
		ShortlistLimit:     getEnvInt("MATCH_SHORTLIST_LIMIT", match.DefaultShortlistLimit),
		Mode:               match.Mode(getEnv("MATCH_MODE", string(match.ModePermissive))),
	}

	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if c.TelegramToken == "" {
		return fmt.Errorf("config: TELEGRAM_TOKEN is required")
	}
	switch c.Provider {
	case completion.ProviderOpenAI, completion.ProviderOpenRouter:
	default:
		return fmt.Errorf("config: unknown LLM_PROVIDER %q", c.Provider)
	}
	switch c.Mode {
	case match.ModePermissive, match.ModeStrict:
	default:
		return fmt.Errorf("config: unknown MATCH_MODE %q", c.Mode)
	}
	if c.BestThreshold < 0 || c.BestThreshold > 100 {
		return fmt.Errorf("config: MATCH_BEST_THRESHOLD must be in [0,100], got %d", c.BestThreshold)
	}
	if c.ShortlistThreshold < 0 || c.ShortlistThreshold > 100 {
		return fmt.Errorf("config: MATCH_SHORTLIST_THRESHOLD must be in [0,100], got %d", c.ShortlistThreshold)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}
