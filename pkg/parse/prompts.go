package parse

import (
	"strings"
	"unicode/utf8"

	"github.com/kartvela/preseller/pkg/order"
)

// MaxMessageLength is the maximum message size in bytes sent to the LLM.
const MaxMessageLength = 4000

// SystemPrompt instructs the LLM to return a structured JSON array only.
const SystemPrompt = `You are an assistant that extracts structured order data from messages in Georgian.
Return ONLY a valid JSON array of order objects.
No markdown, no explanation. Start with [ and end with ].`

// StrictInstruction is appended on the second attempt after a
// validation failure.
const StrictInstruction = `Output JSON array only. No explanation. Strict format.`

// BuildUserPrompt constructs the extraction prompt. The customer
// shortlist and product list are presented as the only valid choices.
func BuildUserPrompt(req Request) string {
	message := truncate(req.Message, MaxMessageLength)

	var sb strings.Builder
	sb.WriteString("Extract every ordered product from this message. ")
	sb.WriteString("Return a JSON array with one object per mentioned product.\n\n")

	if len(req.CustomerShortlist) > 0 {
		sb.WriteString("VALID CUSTOMERS (pick exactly one):\n")
		sb.WriteString(strings.Join(req.CustomerShortlist, "\n"))
		sb.WriteString("\n\n")
	} else {
		sb.WriteString("VALID CUSTOMERS: none known. Copy the customer text exactly as written in the message.\n\n")
	}

	if len(req.Products) > 0 {
		sb.WriteString("VALID PRODUCTS (use only these):\n")
		sb.WriteString(strings.Join(req.Products, "\n"))
		sb.WriteString("\n\n")
	}

	if len(req.MentionedProducts) > 0 {
		sb.WriteString("PRODUCTS MENTIONED VERBATIM IN THE MESSAGE:\n")
		sb.WriteString(strings.Join(req.MentionedProducts, "\n"))
		sb.WriteString("\n\n")
	}

	sb.WriteString("Each object:\n")
	sb.WriteString("- \"customer\": customer name (string)\n")
	sb.WriteString("- \"product\": product name (string)\n")
	sb.WriteString("- \"amount_value\": quantity as a string, e.g. \"10\"\n")
	sb.WriteString("- \"amount_unit\": one of: " + strings.Join(order.Units, ", ") + " — or \"\"\n")
	sb.WriteString("- \"comment\": free text, or \"\"\n\n")

	sb.WriteString("RULES:\n")
	sb.WriteString("1. One object per ordered product\n")
	sb.WriteString("2. Use \"\" for an unknown value, never omit a key\n")
	sb.WriteString("3. Do not invent customers or products outside the lists unless the message marks them with \"new\"\n")
	sb.WriteString("4. No prose, no markdown fences\n\n")

	sb.WriteString("MESSAGE:\n")
	sb.WriteString(message)

	return sb.String()
}

// truncate cuts s to at most max bytes on a rune boundary. Georgian
// text is three bytes per rune, so a plain byte slice can split a rune
// and hand the API invalid UTF-8.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
