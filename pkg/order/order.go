// Package order defines the canonical order entry and the normalization
// rules applied before an entry leaves the pipeline.
package order

import "strings"

// Units is the recognized amount-unit vocabulary.
// Empty string is a valid "unspecified" unit.
var Units = []string{"კგ", "ც", "ლ", "გრამი"}

// Entry is one resolved product order line.
type Entry struct {
	Customer        string `json:"customer"`
	Product         string `json:"product"`
	AmountValue     string `json:"amount_value"`
	AmountUnit      string `json:"amount_unit"`
	Comment         string `json:"comment"`
	CustomerMatched bool   `json:"customer_matched"`
	ProductMatched  bool   `json:"product_matched"`
}

// IsValidUnit reports whether u belongs to the unit vocabulary.
// The empty string is valid.
func IsValidUnit(u string) bool {
	if u == "" {
		return true
	}
	for _, known := range Units {
		if u == known {
			return true
		}
	}
	return false
}

// Sanitize prepares a value for a row-oriented record: newlines become
// spaces, carriage returns and tabs are removed, surrounding whitespace
// is trimmed.
func Sanitize(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\t", "")
	return strings.TrimSpace(s)
}

// Normalize sanitizes every field of the entry and clears an amount unit
// outside the vocabulary. Unmatched entries are kept as-is; an approximate
// record beats a silently dropped one.
func Normalize(e Entry) Entry {
	e.Customer = Sanitize(e.Customer)
	e.Product = Sanitize(e.Product)
	e.AmountValue = Sanitize(e.AmountValue)
	e.AmountUnit = Sanitize(e.AmountUnit)
	e.Comment = Sanitize(e.Comment)
	if !IsValidUnit(e.AmountUnit) {
		e.AmountUnit = ""
	}
	return e
}
