package parsing

// ReceiptItem is a single purchasable line item extracted from a receipt
type ReceiptItem struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Receipt contains the items extracted from one receipt, in order of
// first appearance in the source text
type Receipt struct {
	Items []ReceiptItem `json:"items"`
}

// Extractor defines the interface for a single extraction stage
type Extractor interface {
	// ExtractItems parses raw receipt text into a structured item list
	ExtractItems(receiptText string) (*Receipt, error)
	// Close closes the extractor and releases resources
	Close() error
}
