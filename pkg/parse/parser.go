package parse

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kartvela/preseller/pkg/order"
)

// flexString accepts both JSON strings and bare numbers; models emit
// quantities either way.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexString(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = flexString(n.String())
		return nil
	}

	if string(data) == "null" {
		*f = ""
		return nil
	}
	return fmt.Errorf("parse: invalid field value %s", data)
}

type rawEntry struct {
	Customer    flexString `json:"customer"`
	Product     flexString `json:"product"`
	AmountValue flexString `json:"amount_value"`
	AmountUnit  flexString `json:"amount_unit"`
	Comment     flexString `json:"comment"`
}

// ParseResponse validates the raw LLM response and normalizes it to a
// sequence of entries. Fence stripping is pure preprocessing applied
// before validation; a single object is tolerated and wrapped into a
// one-element sequence. Returns ErrMalformedOutput when the payload is
// not structured data.
func ParseResponse(raw string) ([]order.Entry, error) {
	cleaned := stripCodeFence(strings.TrimSpace(raw))
	if cleaned == "" {
		return nil, fmt.Errorf("%w: empty response", ErrMalformedOutput)
	}

	var items []rawEntry
	if err := json.Unmarshal([]byte(cleaned), &items); err != nil {
		// Some responses arrive as a single object instead of an array.
		var one rawEntry
		if err2 := json.Unmarshal([]byte(cleaned), &one); err2 != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
		}
		items = []rawEntry{one}
	}

	return filterEntries(items), nil
}

// stripCodeFence removes markdown code block wrappers (```json ... ```).
func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	lines := strings.Split(s, "\n")
	if len(lines) > 0 {
		lines = lines[1:]
	}
	if len(lines) > 0 && strings.HasPrefix(strings.TrimSpace(lines[len(lines)-1]), "```") {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

// filterEntries trims fields, defaults missing optionals to "" and
// drops records that carry no content at all.
func filterEntries(items []rawEntry) []order.Entry {
	out := make([]order.Entry, 0, len(items))
	for _, item := range items {
		e := order.Entry{
			Customer:    strings.TrimSpace(string(item.Customer)),
			Product:     strings.TrimSpace(string(item.Product)),
			AmountValue: strings.TrimSpace(string(item.AmountValue)),
			AmountUnit:  strings.TrimSpace(string(item.AmountUnit)),
			Comment:     strings.TrimSpace(string(item.Comment)),
		}
		if e.Customer == "" && e.Product == "" {
			continue
		}
		out = append(out, e)
	}
	return out
}
