package parsing

import "log/slog"

// RegexExtractor extracts items using the ordered line rules. It is the
// fallback stage of the pipeline: it never returns an error, and a receipt
// it cannot recognize yields an empty item list rather than a failure.
//
// Unlike the LLM stage, this stage synthesizes a "Tax" item from the
// dedicated tax line when one is present.
type RegexExtractor struct{}

// NewRegexExtractor creates a new RegexExtractor
func NewRegexExtractor() *RegexExtractor {
	return &RegexExtractor{}
}

// ExtractItems runs the strict rules across every line, accumulating
// matches in order. Only when the strict pass finds zero items does it
// re-run the lines against the loose trailing-price rule.
func (e *RegexExtractor) ExtractItems(receiptText string) (*Receipt, error) {
	lines := normalizeLines(receiptText)

	items := make([]ReceiptItem, 0)
	for _, line := range lines {
		if isMetadataLine(line) {
			continue
		}
		for _, rule := range strictRules {
			if item, ok := rule.match(line); ok {
				items = append(items, item)
				slog.Debug("extracted item", "name", item.Name, "price", item.Price)
				break
			}
		}
	}

	if len(items) == 0 {
		slog.Debug("no items found with strict rules, trying trailing-price fallback")
		for _, line := range lines {
			if isMetadataLine(line) {
				continue
			}
			item, ok := looseRule.match(line)
			if !ok || isNonItemName(item.Name) {
				continue
			}
			items = append(items, item)
			slog.Debug("extracted item with fallback rule", "name", item.Name, "price", item.Price)
		}
	}

	return &Receipt{Items: items}, nil
}

// Close is a no-op for the regex extractor
func (e *RegexExtractor) Close() error {
	return nil
}
