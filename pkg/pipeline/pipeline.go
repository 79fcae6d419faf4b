// Package pipeline composes the per-message extraction flow: customer
// prefix isolation, shortlist construction, LLM-assisted parsing,
// new-entity learning and final normalization.
package pipeline

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/kartvela/preseller/pkg/learner"
	"github.com/kartvela/preseller/pkg/match"
	"github.com/kartvela/preseller/pkg/order"
	"github.com/kartvela/preseller/pkg/parse"
	"github.com/kartvela/preseller/pkg/refstore"
)

// Separator splits the customer-designating prefix from the order body.
const Separator = "."

// Parser is the structured-parsing dependency.
type Parser interface {
	Parse(ctx context.Context, req parse.Request) ([]order.Entry, error)
}

// Config holds pipeline tuning.
type Config struct {
	ShortlistLimit     int
	ShortlistThreshold int
}

// Result is the outcome for one processed message.
type Result struct {
	Entries []order.Entry
}

// Service runs the extraction pipeline for one message at a time. Safe
// for concurrent messages: the reference store serializes appends and
// the product dictionary is rebuilt under its own lock.
type Service struct {
	store   *refstore.Store
	parser  Parser
	learner *learner.Service
	config  Config
	log     zerolog.Logger

	mu       sync.Mutex
	dict     *match.Dictionary
	dictSize int
}

// NewService wires the pipeline.
func NewService(store *refstore.Store, p Parser, l *learner.Service, config Config, log zerolog.Logger) *Service {
	if config.ShortlistLimit <= 0 {
		config.ShortlistLimit = match.DefaultShortlistLimit
	}
	if config.ShortlistThreshold <= 0 {
		config.ShortlistThreshold = match.DefaultShortlistThreshold
	}
	return &Service{
		store:   store,
		parser:  p,
		learner: l,
		config:  config,
		log:     log,
	}
}

// CustomerTerm isolates the customer-designating prefix: the text before
// the first separator. No separator means an empty term and therefore an
// empty shortlist downstream.
func CustomerTerm(message string) string {
	idx := strings.Index(message, Separator)
	if idx < 0 {
		return ""
	}
	return strings.TrimSpace(message[:idx])
}

// Process runs one message through the full pipeline. A parse hard miss
// surfaces as an error; the transport layer turns it into an explicit
// could-not-process notice.
func (s *Service) Process(ctx context.Context, message string) (Result, error) {
	term := CustomerTerm(message)
	// An operator-declared customer is learned from the raw prefix
	// before the shortlist is built, so the same message already
	// resolves against it. The entry-level scan in Learn remains as a
	// second chance for markers elsewhere in the output.
	if name, ok := learner.StripMarker(term); ok {
		s.learner.LearnCustomer(name)
		term = name
	}

	customers := s.store.Customers.All()
	products := s.store.Products.All()

	shortlist := match.ResolveShortlist(term, customers, s.config.ShortlistLimit, s.config.ShortlistThreshold)

	req := parse.Request{
		Message:           message,
		CustomerShortlist: match.Names(shortlist),
		Customers:         customers,
		Products:          products,
		MentionedProducts: s.dictionary(products).Mentions(message),
	}

	entries, err := s.parser.Parse(ctx, req)
	if err != nil {
		return Result{}, err
	}

	entries = s.learner.Learn(entries)

	for i := range entries {
		entries[i] = order.Normalize(entries[i])
		// Learning may have grown the lists mid-message, so membership
		// is recomputed against the live store.
		entries[i].CustomerMatched = s.store.Customers.Contains(entries[i].Customer)
		entries[i].ProductMatched = s.store.Products.Contains(entries[i].Product)
	}

	s.log.Debug().
		Str("term", term).
		Int("shortlist", len(shortlist)).
		Int("entries", len(entries)).
		Msg("message processed")

	return Result{Entries: entries}, nil
}

// dictionary returns the product mention dictionary, rebuilding it when
// the product list has grown.
func (s *Service) dictionary(products []string) *match.Dictionary {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.dict != nil && s.dictSize == len(products) {
		return s.dict
	}

	d, err := match.NewDictionary(products)
	if err != nil {
		s.log.Warn().Err(err).Msg("product dictionary rebuild failed")
		if s.dict != nil {
			return s.dict
		}
		d, _ = match.NewDictionary(nil)
	}
	s.dict = d
	s.dictSize = len(products)
	return s.dict
}
