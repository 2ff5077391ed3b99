package parsing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// extractPrompt is the instruction set sent ahead of the receipt text. The
// model is asked for item entries only: headers, footers, payment details,
// subtotals, taxes and totals are all excluded. Unlike the regex stage,
// this stage therefore never emits a "Tax" item.
const extractPrompt = `You are a JSON extraction assistant specialized in parsing retail receipts.
Given the raw text of a Walmart PDF receipt, produce *only* valid JSON with this structure:

{
  "items": [
    { "name": "<exact item description>", "price": <numeric price> }
  ]
}

Rules:
1. Item entries only: extract each purchased line-item as its own object.
2. Fields:
   - name (string): the product description exactly as it appears (including multi-word names).
   - price (number): the item's price, stripped of "$" or commas.
3. Ignore everything else: store header/footer, address, date/time, payment method, subtotals, taxes, totals, coupons, returns, loyalty points - omit them.
4. No commentary: output only the JSON object above, nothing else.
5. Strict JSON: ensure parsable JSON (no trailing commas, no markdown).

Here's the receipt text to parse:
`

// GeminiExtractor implements the Extractor interface using Google Gemini
type GeminiExtractor struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiExtractor creates a new GeminiExtractor instance
func NewGeminiExtractor(apiKey string, modelName string) (*GeminiExtractor, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if modelName == "" {
		modelName = "gemini-1.5-pro"
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	return &GeminiExtractor{
		client: client,
		model:  client.GenerativeModel(modelName),
	}, nil
}

// ExtractItems sends the receipt text to Gemini and parses the JSON reply.
// One network call is made per invocation with no retry; any transport,
// decode or schema failure is returned as a stage error.
func (g *GeminiExtractor) ExtractItems(receiptText string) (*Receipt, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	resp, err := g.model.GenerateContent(ctx, genai.Text(extractPrompt+receiptText))
	if err != nil {
		return nil, fmt.Errorf("generating content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no response from gemini")
	}

	// Extract text response
	var responseText strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			responseText.WriteString(string(text))
		}
	}

	receipt, err := parseItemsJSON(responseText.String())
	if err != nil {
		return nil, fmt.Errorf("parsing receipt items: %w", err)
	}

	return receipt, nil
}

// Close closes the Gemini client
func (g *GeminiExtractor) Close() error {
	return g.client.Close()
}
