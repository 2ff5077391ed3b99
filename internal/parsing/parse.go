package parsing

import (
	"encoding/json"
	"fmt"
	"strings"
)

// parseItemsJSON parses the JSON response from the language model
func parseItemsJSON(text string) (*Receipt, error) {
	// Remove markdown code blocks if present; the model is asked for
	// strict JSON but may still wrap it in a fence
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	// Find the JSON object boundaries - look for first { and last }
	startIdx := strings.Index(text, "{")
	if startIdx == -1 {
		return nil, fmt.Errorf("no JSON object found in response")
	}

	endIdx := strings.LastIndex(text, "}")
	if endIdx == -1 || endIdx < startIdx {
		return nil, fmt.Errorf("invalid JSON object in response")
	}

	text = text[startIdx : endIdx+1]

	// Schema-check the raw value before binding it to the struct so a
	// shape mismatch is a stage failure, not a silently zeroed field
	var raw any
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("unmarshaling json: %w", err)
	}
	if err := ValidateOutput(raw); err != nil {
		return nil, fmt.Errorf("validating response: %w", err)
	}

	var receipt Receipt
	if err := json.Unmarshal([]byte(text), &receipt); err != nil {
		return nil, fmt.Errorf("unmarshaling json: %w", err)
	}

	return &receipt, nil
}
