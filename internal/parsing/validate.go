package parsing

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// receiptSchema is the response contract handed to callers: an object with
// an "items" array of {name, price} objects.
const receiptSchema = `{
	"type": "object",
	"required": ["items"],
	"properties": {
		"items": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["name", "price"],
				"properties": {
					"name": {"type": "string"},
					"price": {"type": "number"}
				}
			}
		}
	}
}`

var compiledSchema = jsonschema.MustCompileString("receipt.json", receiptSchema)

// ValidateOutput checks a decoded JSON value against the item schema. It
// does not mutate its input.
func ValidateOutput(v any) error {
	return compiledSchema.Validate(v)
}

// ValidateReceipt checks a parsed receipt against the response contract.
// It is the final gate before a result is handed to persistence or
// transport.
func ValidateReceipt(r *Receipt) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshaling receipt: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshaling receipt: %w", err)
	}
	return ValidateOutput(v)
}
