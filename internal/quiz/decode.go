package quiz

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// ErrInvalidShape is returned when a manifest or document does not match the
// expected structure.
var ErrInvalidShape = errors.New("invalid quiz resource shape")

const manifestSchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["filename"],
    "properties": {
      "filename": {"type": "string", "minLength": 1}
    }
  }
}`

const documentSchema = `{
  "type": "object",
  "properties": {
    "questions": {
      "type": ["array", "null"],
      "items": {"not": {"type": "null"}}
    }
  }
}`

var (
	schemasOnce sync.Once
	schemas     map[string]*jsonschema.Schema
	schemasErr  error
)

func compiledSchema(name string) (*jsonschema.Schema, error) {
	schemasOnce.Do(func() {
		schemas = make(map[string]*jsonschema.Schema)
		c := jsonschema.NewCompiler()
		defs := map[string]string{"manifest": manifestSchema, "document": documentSchema}
		for n, def := range defs {
			var parsed any
			if err := json.Unmarshal([]byte(def), &parsed); err != nil {
				schemasErr = fmt.Errorf("parse %s schema: %w", n, err)
				return
			}
			if err := c.AddResource(schemaURL(n), parsed); err != nil {
				schemasErr = fmt.Errorf("add %s schema: %w", n, err)
				return
			}
		}
		for n := range defs {
			s, err := c.Compile(schemaURL(n))
			if err != nil {
				schemasErr = fmt.Errorf("compile %s schema: %w", n, err)
				return
			}
			schemas[n] = s
		}
	})
	if schemasErr != nil {
		return nil, schemasErr
	}
	return schemas[name], nil
}

func schemaURL(name string) string {
	return fmt.Sprintf("schema://medtrix/%s.json", name)
}

func validate(name string, data []byte) error {
	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	s, err := compiledSchema(name)
	if err != nil {
		return err
	}
	if err := s.Validate(parsed); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidShape, name, err)
	}
	return nil
}

// DecodeManifest validates and decodes a manifest resource. Entries are
// returned as published. An empty manifest yields an empty, non-nil slice.
func DecodeManifest(data []byte) ([]ManifestEntry, error) {
	if err := validate("manifest", data); err != nil {
		return nil, err
	}
	entries := []ManifestEntry{}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	return entries, nil
}

// DecodeDocument validates a quiz document, decodes every question into
// its raw variants and normalizes it.
func DecodeDocument(data []byte) (*Document, error) {
	if err := validate("document", data); err != nil {
		return nil, err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}

	doc := &Document{}
	if raw, ok := fields["questions"]; ok && !bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		var elems []json.RawMessage
		if err := json.Unmarshal(raw, &elems); err != nil {
			return nil, fmt.Errorf("decode questions: %w", err)
		}
		doc.Questions = make([]Question, 0, len(elems))
		for i, e := range elems {
			rq, err := DecodeQuestion(e)
			if err != nil {
				return nil, fmt.Errorf("question %d: %w", i, err)
			}
			doc.Questions = append(doc.Questions, Normalize(rq))
		}
	}
	delete(fields, "questions")
	if len(fields) > 0 {
		doc.Meta = fields
	}
	return doc, nil
}
