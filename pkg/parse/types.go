// Package parse turns one free-form order message into canonical order
// entries, using an LLM as the extraction engine. The response is treated
// as untrusted text: markdown fences are stripped, the payload must
// validate as structured data, and exactly one stricter retry is issued
// before the message is declared a hard miss.
package parse

import "errors"

// ErrMalformedOutput marks an LLM response that failed structural
// validation on both attempts.
var ErrMalformedOutput = errors.New("parse: malformed model output")

// Request bundles the inputs for parsing a single message.
type Request struct {
	// Message is the raw inbound text.
	Message string
	// CustomerShortlist is the ranked candidate set for the customer
	// prefix. May be empty when no separator was present.
	CustomerShortlist []string
	// Customers is the full customer reference list, used for
	// membership flags.
	Customers []string
	// Products is the full product reference list, embedded in the
	// prompt and used for membership flags.
	Products []string
	// MentionedProducts are products the message mentions verbatim,
	// surfaced to the model as a hint.
	MentionedProducts []string
}
