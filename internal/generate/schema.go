// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package generate

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const optionsSchema = `{
	"type": "object",
	"properties": {
		"A": {"type": "string"},
		"B": {"type": "string"},
		"C": {"type": "string"},
		"D": {"type": "string"}
	},
	"required": ["A", "B", "C", "D"],
	"additionalProperties": false
}`

var kindSchemas = map[string]string{
	"terms": `{
		"type": "object",
		"required": ["terms"],
		"properties": {
			"terms": {
				"type": "array",
				"items": {
					"type": "object",
					"required": ["term", "definition"],
					"properties": {
						"term": {"type": "string", "minLength": 1},
						"definition": {"type": "string", "minLength": 1},
						"category": {"type": "string"}
					}
				}
			}
		}
	}`,
	"questions": `{
		"type": "object",
		"required": ["questions"],
		"properties": {
			"questions": {
				"type": "array",
				"items": {
					"type": "object",
					"required": ["text", "options", "correct"],
					"properties": {
						"text": {"type": "string", "minLength": 1},
						"options": ` + optionsSchema + `,
						"correct": {"enum": ["A", "B", "C", "D"]}
					}
				}
			}
		}
	}`,
	"scenarios": `{
		"type": "object",
		"required": ["scenarios"],
		"properties": {
			"scenarios": {
				"type": "array",
				"items": {
					"type": "object",
					"required": ["title", "description", "options", "correct"],
					"properties": {
						"title": {"type": "string", "minLength": 1},
						"description": {"type": "string", "minLength": 1},
						"options": ` + optionsSchema + `,
						"correct": {"enum": ["A", "B", "C", "D"]}
					}
				}
			}
		}
	}`,
}

var compiledSchemas = map[string]*jsonschema.Schema{}

func init() {
	for kind, src := range kindSchemas {
		compiledSchemas[kind] = jsonschema.MustCompileString(kind+".schema.json", src)
	}
}

// ValidateShape checks a raw generated document against the expected shape
// for its kind before anything is written to disk.
func ValidateShape(kind string, data []byte) error {
	schema, ok := compiledSchemas[kind]
	if !ok {
		return fmt.Errorf("unknown content kind: %s", kind)
	}

	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return nil
}
