package bot

import (
	"fmt"
	"strings"

	"github.com/kartvela/preseller/pkg/order"
)

// User-facing reply texts. Every processed message gets exactly one
// reply: success, partial success or an explicit failure notice.
const (
	replyGreeting = "გამარჯობა! გამომიგზავნე შეკვეთა ფორმატით:\nკლიენტი. პროდუქტი რაოდენობა ერთეული"

	replyParseFailed   = "❌ ვერ დავამუშავე შეტყობინება."
	replyPersistFailed = "⚠ მონაცემები ვერ ჩაიწერა."
)

// composeReply builds the acknowledgement for one processed message.
// Unknown-entity warnings come first, deduplicated by name, then the
// written/failed summary.
func composeReply(entries []order.Entry, written, failed int) string {
	var sb strings.Builder

	seen := make(map[string]bool)
	for _, e := range entries {
		if !e.CustomerMatched && e.Customer != "" && !seen["c:"+e.Customer] {
			seen["c:"+e.Customer] = true
			sb.WriteString("⚠ უცნობი კლიენტი: " + e.Customer + "\n")
		}
		if !e.ProductMatched && e.Product != "" && !seen["p:"+e.Product] {
			seen["p:"+e.Product] = true
			sb.WriteString("⚠ უცნობი პროდუქტი: " + e.Product + "\n")
		}
	}

	if written > 0 {
		sb.WriteString(fmt.Sprintf("✅ ჩავწერე %d პროდუქტ(ი) ცხრილში.", written))
	}
	if failed > 0 {
		if written > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("%s (%d)", replyPersistFailed, failed))
	}
	if written == 0 && failed == 0 {
		sb.WriteString(replyParseFailed)
	}

	return sb.String()
}
