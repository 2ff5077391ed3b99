package parsing

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"
)

// itemRule matches one receipt line shape and extracts a name and price
// from it. Rules are tried in a fixed order; the first rule that matches a
// line wins, so a line is never claimed by more than one rule.
type itemRule struct {
	re *regexp.Regexp
	// fixedName overrides the captured description; the tax rule uses it
	// to synthesize an item named "Tax" from a line that has no
	// description of its own.
	fixedName string
}

// The strict rules cover the high-confidence Walmart line formats: the tax
// line and the two quantity-item variants. The loose rule is a generic
// trailing-price fallback applied only when the strict rules find nothing
// in the entire document.
var (
	strictRules = []itemRule{
		{re: regexp.MustCompile(`^Tax\s+\$([\d.]+)$`), fixedName: "Tax"},
		{re: regexp.MustCompile(`^(.+?)\s+(?:Shopped|Unavailable)\s+Qty\s+\d+\s+\$([\d.]+)$`)},
		{re: regexp.MustCompile(`^(.+?)\s+Weight-adjusted\s+Qty\s+\d+\s+\$([\d.]+)$`)},
	}

	looseRule = itemRule{re: regexp.MustCompile(`(.+?)\s+\$([\d.]+)\s*$`)}
)

// nonItemKeywords reject loose-rule captures whose description names a
// summary line instead of a product.
var nonItemKeywords = []string{"subtotal", "total", "delivery", "tip"}

// match applies the rule to a single line. ok is false when the line does
// not match the rule's shape, or when the amount segment is not a valid
// number; the latter is skipped silently and only logged at debug level.
func (r itemRule) match(line string) (ReceiptItem, bool) {
	groups := r.re.FindStringSubmatch(line)
	if groups == nil {
		return ReceiptItem{}, false
	}

	name := r.fixedName
	amount := groups[1]
	if name == "" {
		name = strings.TrimSpace(groups[1])
		amount = groups[2]
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(amount), 64)
	if err != nil {
		slog.Debug("skipping line with unparseable amount", "line", line, "amount", amount)
		return ReceiptItem{}, false
	}

	return ReceiptItem{Name: name, Price: price}, true
}

// isNonItemName reports whether a captured description denotes a
// non-purchasable line (subtotal, total, delivery fee, tip).
func isNonItemName(name string) bool {
	lower := strings.ToLower(name)
	for _, keyword := range nonItemKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}
