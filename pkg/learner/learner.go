// Package learner incorporates operator-declared new entities into the
// reference lists. A name carrying the case-insensitive "new" prefix
// marker is stripped, appended durably if unseen, and rewritten in the
// entry. This is the only mutation path for the reference store.
package learner

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/kartvela/preseller/pkg/order"
	"github.com/kartvela/preseller/pkg/refstore"
)

// Marker is the new-entity prefix token.
const Marker = "new"

// StripMarker reports whether s starts with the marker followed by
// whitespace, and returns the cleaned display name. A bare marker with
// no name, or a word merely starting with "new", is not a declaration.
func StripMarker(s string) (string, bool) {
	trimmed := strings.TrimSpace(s)
	if len(trimmed) <= len(Marker) {
		return s, false
	}
	if !strings.EqualFold(trimmed[:len(Marker)], Marker) {
		return s, false
	}

	rest := trimmed[len(Marker):]
	r, _ := utf8.DecodeRuneInString(rest)
	if !unicode.IsSpace(r) {
		return s, false
	}

	name := strings.TrimSpace(rest)
	if name == "" {
		return s, false
	}
	return name, true
}

// Service applies new-entity declarations to parsed entries.
type Service struct {
	store *refstore.Store
	log   zerolog.Logger
}

// NewService creates a learner over the given reference store.
func NewService(store *refstore.Store, log zerolog.Logger) *Service {
	return &Service{store: store, log: log}
}

// LearnCustomer persists one customer name directly. Used when the
// marker is detected in the raw message prefix, before any LLM call,
// so learning does not depend on the model echoing the marker back.
func (s *Service) LearnCustomer(name string) {
	s.appendTo(s.store.Customers, "customer", name)
}

// Learn scans each entry's customer and product for the marker,
// persists unseen names and rewrites the fields. Re-declaring a known
// name is a no-op. Append failures are logged; the entry still carries
// the cleaned name so the order itself is not lost.
func (s *Service) Learn(entries []order.Entry) []order.Entry {
	for i := range entries {
		e := &entries[i]

		if name, ok := StripMarker(e.Customer); ok {
			e.Customer = name
			s.appendTo(s.store.Customers, "customer", name)
			e.CustomerMatched = s.store.Customers.Contains(name)
		}

		if name, ok := StripMarker(e.Product); ok {
			e.Product = name
			s.appendTo(s.store.Products, "product", name)
			e.ProductMatched = s.store.Products.Contains(name)
		}
	}
	return entries
}

func (s *Service) appendTo(list *refstore.List, kind, name string) {
	added, err := list.Append(name)
	if err != nil {
		s.log.Error().Err(err).Str("kind", kind).Str("name", name).Msg("failed to persist new entity")
		return
	}
	if added {
		s.log.Info().Str("kind", kind).Str("name", name).Msg("learned new entity")
	}
}
