// Package validation validates inbound API payloads against JSON schemas.
package validation

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// ChatRequestSchema constrains the chat endpoint payload before dispatch.
var ChatRequestSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"message": map[string]interface{}{
			"type":      "string",
			"minLength": 1,
			"maxLength": 2000,
		},
		"language": map[string]interface{}{
			"type": "string",
		},
		"context": map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"userId": map[string]interface{}{
					"type":    "integer",
					"minimum": 1,
				},
				"location": map[string]interface{}{
					"type": "string",
				},
			},
		},
	},
	"required": []interface{}{"message"},
}

// TranslateRequestSchema constrains the translate endpoint payload.
var TranslateRequestSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"text": map[string]interface{}{
			"type": "string",
		},
		"source_lang": map[string]interface{}{
			"type": "string",
		},
		"target_lang": map[string]interface{}{
			"type": "string",
		},
	},
	"required": []interface{}{"text", "source_lang", "target_lang"},
}

// ValidateAgainstSchema checks a decoded payload against a schema and returns
// the list of violation messages.
func ValidateAgainstSchema(data map[string]interface{}, schema map[string]interface{}) ([]string, error) {
	schemaLoader := gojsonschema.NewGoLoader(schema)
	documentLoader := gojsonschema.NewGoLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("schema validation error: %w", err)
	}

	if result.Valid() {
		return nil, nil
	}

	violations := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		violations = append(violations, desc.String())
	}
	return violations, nil
}
