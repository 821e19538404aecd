package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// serveSchema is the contract (version 1.x) a serve payload must satisfy
// before the client trusts it. Kept deliberately structural: unknown
// fields are allowed, optional serving hints (choice_order, serve.id)
// may be absent and are handled by fallback rules downstream.
const serveSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["version", "item"],
  "properties": {
    "version": {"type": "string"},
    "session_id": {"type": "string"},
    "item": {
      "type": "object",
      "required": ["id"],
      "properties": {
        "id": {"type": "string", "minLength": 1},
        "type": {"type": "string"},
        "content": {"type": "object"},
        "steps": {
          "type": "array",
          "items": {
            "type": "object",
            "required": ["step_id"],
            "properties": {
              "step_id": {"type": "string", "minLength": 1},
              "choices": {"$ref": "#/$defs/choices"}
            }
          }
        }
      }
    },
    "choices": {"$ref": "#/$defs/choices"},
    "serve": {
      "type": "object",
      "properties": {
        "id": {"type": "string"},
        "choice_order": {"type": "array", "items": {"type": "string"}},
        "watermark": {"type": "string"}
      }
    }
  },
  "$defs": {
    "choices": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "text": {"type": "string"}
        }
      }
    }
  }
}`

var (
	compileOnce   sync.Once
	compiledServe *jsonschema.Schema
	compileErr    error
)

func compiledServeSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(strings.NewReader(serveSchema))
		if err != nil {
			compileErr = fmt.Errorf("parse serve schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("serve.json", doc); err != nil {
			compileErr = fmt.Errorf("add serve schema: %w", err)
			return
		}
		compiledServe, compileErr = c.Compile("serve.json")
	})
	return compiledServe, compileErr
}

// decodeServePayload validates raw bytes against the serve contract and
// decodes them into a ServePayload. Contract violations and major
// version mismatches are decode failures, not silent degradation.
func decodeServePayload(raw []byte) (*ServePayload, error) {
	schema, err := compiledServeSchema()
	if err != nil {
		return nil, &DecodeError{Err: err}
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, &DecodeError{Err: fmt.Errorf("invalid JSON: %w", err)}
	}
	if err := schema.Validate(doc); err != nil {
		return nil, &DecodeError{Err: fmt.Errorf("serve contract: %w", err)}
	}

	var payload ServePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, &DecodeError{Err: err}
	}
	if major := strings.SplitN(payload.Version, ".", 2)[0]; major != "1" {
		return nil, &DecodeError{Err: fmt.Errorf("unsupported contract version %q", payload.Version)}
	}
	return &payload, nil
}
