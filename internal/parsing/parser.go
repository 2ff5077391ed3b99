package parsing

import "log/slog"

// Parser is the extraction entry point. It tries the LLM stage first when
// one is configured and falls back to the regex stage on any failure. The
// regex stage cannot fail, so Parse always produces a result.
type Parser struct {
	llm   Extractor // nil when no credential is configured
	regex *RegexExtractor
}

// NewParser creates a Parser. llm may be nil, in which case only the regex
// stage runs.
func NewParser(llm Extractor) *Parser {
	return &Parser{
		llm:   llm,
		regex: NewRegexExtractor(),
	}
}

// Parse extracts the item list from raw receipt text. An LLM stage failure
// of any kind (network, malformed response, schema mismatch) is logged and
// swallowed; the caller always receives a structured result. A receipt
// neither stage recognizes yields an empty item list, not an error.
func (p *Parser) Parse(receiptText string) *Receipt {
	if p.llm != nil {
		receipt, err := p.llm.ExtractItems(receiptText)
		if err == nil {
			return receipt
		}
		slog.Error("llm extraction failed, falling back to regex rules", "error", err)
	}

	receipt, _ := p.regex.ExtractItems(receiptText)
	return receipt
}

// Close releases stage resources
func (p *Parser) Close() error {
	if p.llm != nil {
		return p.llm.Close()
	}
	return nil
}
