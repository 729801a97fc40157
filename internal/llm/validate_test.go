package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func lessonTestSchema() *Schema {
	return &Schema{
		Name:        "test-lesson",
		Description: "A titled list of word pairs",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"title": map[string]any{"type": "string"},
				"pairs": map[string]any{
					"type":     "array",
					"minItems": 1,
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"source": map[string]any{"type": "string", "minLength": 1},
							"target": map[string]any{"type": "string", "minLength": 1},
						},
						"required":             []any{"source", "target"},
						"additionalProperties": false,
					},
				},
			},
			"required":             []any{"title", "pairs"},
			"additionalProperties": false,
		},
	}
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", `{"title":"Animals","pairs":[{"source":"cat","target":"mèo"}]}`, false},
		{"missing pairs", `{"title":"Animals"}`, true},
		{"empty pairs", `{"title":"Animals","pairs":[]}`, true},
		{"empty target", `{"title":"Animals","pairs":[{"source":"cat","target":""}]}`, true},
		{"wrong type", `{"title":"Animals","pairs":"cat - mèo"}`, true},
		{"extra property", `{"title":"Animals","pairs":[{"source":"cat","target":"mèo","note":"x"}]}`, true},
		{"malformed JSON", `{not json}`, true},
		{"empty", ``, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(lessonTestSchema(), json.RawMessage(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("validateResponse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var inv *ErrInvalidResponse
				if !errors.As(err, &inv) {
					t.Fatalf("expected ErrInvalidResponse, got: %T", err)
				}
			}
		})
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`anything`)); err != nil {
		t.Fatalf("expected no error with nil schema, got: %v", err)
	}
}

func TestValidateResponse_BadSchema(t *testing.T) {
	schema := &Schema{
		Name:       "test-broken",
		Definition: map[string]any{"type": "not-a-type"},
	}
	err := validateResponse(schema, json.RawMessage(`{}`))
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse for uncompilable schema, got: %v", err)
	}
}
