package parse

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/kartvela/preseller/pkg/match"
	"github.com/kartvela/preseller/pkg/order"
)

// maxAttempts caps outbound generation requests per message. The second
// attempt carries the stricter instruction; after that the message is a
// hard miss.
const maxAttempts = 2

// Completer is the outbound LLM dependency.
type Completer interface {
	IsConfigured() bool
	Complete(ctx context.Context, userPrompt, systemPrompt string) (string, error)
}

// Config holds parser tuning.
type Config struct {
	// Mode decides how out-of-list names are handled.
	Mode match.Mode
	// BestThreshold is the score strict mode needs to snap a name to a
	// reference entry.
	BestThreshold int
}

// Service coordinates LLM-assisted structured parsing of order messages.
type Service struct {
	completer Completer
	config    Config
	log       zerolog.Logger
}

// NewService creates a parser backed by the given completer.
func NewService(c Completer, config Config, log zerolog.Logger) *Service {
	if config.Mode == "" {
		config.Mode = match.ModePermissive
	}
	if config.BestThreshold <= 0 {
		config.BestThreshold = match.DefaultBestThreshold
	}
	return &Service{completer: c, config: config, log: log}
}

// Parse runs the two-attempt extraction for one message. Transport
// failures count toward the same budget as validation failures. On the
// second failure it returns ErrMalformedOutput; the caller reports the
// miss to the message author.
func (s *Service) Parse(ctx context.Context, req Request) ([]order.Entry, error) {
	if s.completer == nil || !s.completer.IsConfigured() {
		return nil, fmt.Errorf("parse: LLM provider not configured")
	}

	userPrompt := BuildUserPrompt(req)

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		system := SystemPrompt
		if attempt > 1 {
			system = SystemPrompt + "\n\n" + StrictInstruction
		}

		raw, err := s.completer.Complete(ctx, userPrompt, system)
		if err != nil {
			lastErr = err
			s.log.Warn().Err(err).Int("attempt", attempt).Msg("completion failed")
			continue
		}

		entries, err := ParseResponse(raw)
		if err != nil {
			lastErr = err
			s.log.Warn().Err(err).Int("attempt", attempt).Msg("response validation failed")
			continue
		}

		return s.finalize(entries, req), nil
	}

	return nil, fmt.Errorf("%w: %d attempts exhausted: %v", ErrMalformedOutput, maxAttempts, lastErr)
}

// finalize applies the matching mode and computes membership flags
// against the reference lists.
func (s *Service) finalize(entries []order.Entry, req Request) []order.Entry {
	for i := range entries {
		e := &entries[i]

		if s.config.Mode == match.ModeStrict {
			if !contains(req.Customers, e.Customer) {
				if best, ok := match.ResolveBest(e.Customer, req.Customers, s.config.BestThreshold); ok {
					e.Customer = best.Name
				}
			}
			if !contains(req.Products, e.Product) {
				if best, ok := match.ResolveBest(e.Product, req.Products, s.config.BestThreshold); ok {
					e.Product = best.Name
				}
			}
		}

		e.CustomerMatched = contains(req.Customers, e.Customer)
		e.ProductMatched = contains(req.Products, e.Product)
	}
	return entries
}

func contains(list []string, name string) bool {
	for _, n := range list {
		if n == name {
			return true
		}
	}
	return false
}
