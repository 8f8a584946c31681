// File: internal/config/schema.go
package config

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// RuleOptionsSchema is the JSON Schema (Draft 2020-12) for the valid-expect
// rule options. Unrecognized keys are rejected outright so that typos in a
// config file surface as errors instead of silently falling back to defaults.
const RuleOptionsSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$id": "https://github.com/xkilldash9x/expectlint/valid-expect-options.schema.json",
  "title": "valid-expect rule options",
  "description": "Argument-count bounds for the expect() initiating call",
  "type": "object",
  "properties": {
    "min_args": {
      "type": "integer",
      "minimum": 1,
      "default": 1,
      "description": "Minimum number of arguments expect() must receive"
    },
    "max_args": {
      "type": "integer",
      "minimum": 1,
      "default": 2,
      "description": "Maximum number of arguments expect() may receive"
    }
  },
  "additionalProperties": false
}`

// compiledRuleOptionsSchema compiles the embedded schema once at startup.
// A compile failure here means the constant itself is broken, which is a
// programming error, so panicking is acceptable.
var compiledRuleOptionsSchema = mustCompileRuleOptionsSchema()

func mustCompileRuleOptionsSchema() *jsonschema.Schema {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader([]byte(RuleOptionsSchema)))
	if err != nil {
		panic(fmt.Sprintf("rule options schema is not valid JSON: %v", err))
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("valid-expect-options.schema.json", doc); err != nil {
		panic(fmt.Sprintf("failed to add rule options schema resource: %v", err))
	}
	schema, err := compiler.Compile("valid-expect-options.schema.json")
	if err != nil {
		panic(fmt.Sprintf("failed to compile rule options schema: %v", err))
	}
	return schema
}

// ValidateRuleOptions checks a raw options map (as read from the config
// file, before decoding into ValidExpectConfig) against the embedded schema.
// The round trip through encoding/json normalizes viper's map values into
// the types the validator understands.
func ValidateRuleOptions(raw map[string]any) error {
	if raw == nil {
		return nil
	}
	encoded, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("failed to encode rule options for validation: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(encoded))
	if err != nil {
		return fmt.Errorf("failed to decode rule options for validation: %w", err)
	}
	if err := compiledRuleOptionsSchema.Validate(inst); err != nil {
		return fmt.Errorf("invalid valid_expect options: %w", err)
	}
	return nil
}
