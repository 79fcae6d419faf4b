package config

import (
	"testing"

	"github.com/kartvela/preseller/pkg/match"
)

func setBase(t *testing.T) {
	t.Helper()
	t.Setenv("TELEGRAM_TOKEN", "123:abc")
	t.Setenv("OPENAI_API_KEY", "sk-test")
}

func TestLoadDefaults(t *testing.T) {
	setBase(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Provider != "openai" {
		t.Errorf("Provider = %q", cfg.Provider)
	}
	if cfg.OpenAIModel != "gpt-4o" {
		t.Errorf("OpenAIModel = %q", cfg.OpenAIModel)
	}
	if cfg.ShortlistLimit != match.DefaultShortlistLimit {
		t.Errorf("ShortlistLimit = %d", cfg.ShortlistLimit)
	}
	if cfg.ShortlistThreshold != match.DefaultShortlistThreshold {
		t.Errorf("ShortlistThreshold = %d", cfg.ShortlistThreshold)
	}
	if cfg.Mode != match.ModePermissive {
		t.Errorf("Mode = %q", cfg.Mode)
	}
	if cfg.CustomersFile != "known_customers.txt" || cfg.ProductsFile != "known_products.txt" {
		t.Errorf("reference file defaults: %q %q", cfg.CustomersFile, cfg.ProductsFile)
	}
}

func TestLoadOverrides(t *testing.T) {
	setBase(t)
	t.Setenv("MATCH_BEST_THRESHOLD", "80")
	t.Setenv("MATCH_MODE", "strict")
	t.Setenv("MATCH_SHORTLIST_LIMIT", "3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.BestThreshold != 80 {
		t.Errorf("BestThreshold = %d", cfg.BestThreshold)
	}
	if cfg.Mode != match.ModeStrict {
		t.Errorf("Mode = %q", cfg.Mode)
	}
	if cfg.ShortlistLimit != 3 {
		t.Errorf("ShortlistLimit = %d", cfg.ShortlistLimit)
	}
}

func TestLoadRequiresToken(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "")
	if _, err := Load(); err == nil {
		t.Fatal("missing token should fail validation")
	}
}

func TestLoadRejectsUnknownMode(t *testing.T) {
	setBase(t)
	t.Setenv("MATCH_MODE", "yolo")
	if _, err := Load(); err == nil {
		t.Fatal("unknown mode should fail validation")
	}
}

func TestLoadRejectsThresholdOutOfRange(t *testing.T) {
	setBase(t)
	t.Setenv("MATCH_BEST_THRESHOLD", "150")
	if _, err := Load(); err == nil {
		t.Fatal("out-of-range threshold should fail validation")
	}
}
