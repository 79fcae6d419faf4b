// Command presellerbot runs the Telegram order-extraction bot.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/kartvela/preseller/internal/bot"
	"github.com/kartvela/preseller/internal/config"
	"github.com/kartvela/preseller/internal/sheet"
	"github.com/kartvela/preseller/internal/store"
	"github.com/kartvela/preseller/pkg/completion"
	"github.com/kartvela/preseller/pkg/learner"
	"github.com/kartvela/preseller/pkg/parse"
	"github.com/kartvela/preseller/pkg/pipeline"
	"github.com/kartvela/preseller/pkg/refstore"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("configuration")
	}

	refs, err := refstore.OpenStore(cfg.CustomersFile, cfg.ProductsFile)
	if err != nil {
		// Matching degrades to "everything is unknown"; the bot still runs.
		log.Warn().Err(err).Msg("reference list unavailable, starting empty")
	}
	log.Info().
		Int("customers", refs.Customers.Len()).
		Int("products", refs.Products.Len()).
		Msg("reference lists loaded")

	completer := completion.NewService(completion.Config{
		Provider:          cfg.Provider,
		OpenAIAPIKey:      cfg.OpenAIAPIKey,
		OpenAIModel:       cfg.OpenAIModel,
		OpenRouterAPIKey:  cfg.OpenRouterAPIKey,
		OpenRouterModel:   cfg.OpenRouterModel,
		Timeout:           cfg.LLMTimeout,
		RequestsPerSecond: cfg.LLMRequestsPerSecond,
	})
	if !completer.IsConfigured() {
		log.Fatal().Str("provider", string(cfg.Provider)).Msg("LLM provider not configured")
	}

	parser := parse.NewService(completer, parse.Config{
		Mode:          cfg.Mode,
		BestThreshold: cfg.BestThreshold,
	}, log.With().Str("component", "parse").Logger())

	learn := learner.NewService(refs, log.With().Str("component", "learner").Logger())

	pipe := pipeline.NewService(refs, parser, learn, pipeline.Config{
		ShortlistLimit:     cfg.ShortlistLimit,
		ShortlistThreshold: cfg.ShortlistThreshold,
	}, log.With().Str("component", "pipeline").Logger())

	journal, err := store.NewSQLiteStoreWithDSN(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("order journal")
	}
	defer journal.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var appender sheet.RowAppender
	if cfg.SheetID != "" {
		a, err := sheet.NewAppender(ctx, cfg.SheetID, cfg.SheetName, cfg.GoogleCredentialsFile)
		if err != nil {
			log.Fatal().Err(err).Msg("sheets client")
		}
		appender = a
	} else {
		log.Warn().Msg("SHEET_ID not set, journaling locally only")
	}

	b, err := bot.NewService(cfg.TelegramToken, pipe, appender, journal,
		log.With().Str("component", "bot").Logger())
	if err != nil {
		log.Fatal().Err(err).Msg("telegram")
	}

	if err := b.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("bot stopped")
	}
	log.Info().Msg("shutdown complete")
}
