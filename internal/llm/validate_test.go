package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func wordListSchema() *Schema {
	return &Schema{
		Name:        "test-word-list",
		Description: "A short word list",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"words": map[string]any{
					"type":     "array",
					"minItems": 1,
					"maxItems": 3,
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"term":  map[string]any{"type": "string", "minLength": 1},
							"level": map[string]any{"type": "string", "enum": []string{"easy", "calm"}},
						},
						"required": []string{"term"},
					},
				},
			},
			"required": []string{"words"},
		},
	}
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", `{"words":[{"term":"hola","level":"easy"}]}`, false},
		{"optional field omitted", `{"words":[{"term":"ciao"}]}`, false},
		{"missing required", `{}`, true},
		{"empty term", `{"words":[{"term":""}]}`, true},
		{"wrong type", `{"words":"hola"}`, true},
		{"bad enum", `{"words":[{"term":"hola","level":"hard"}]}`, true},
		{"too few items", `{"words":[]}`, true},
		{"too many items", `{"words":[{"term":"a"},{"term":"b"},{"term":"c"},{"term":"d"}]}`, true},
		{"malformed", `{not json}`, true},
		{"empty", ``, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(wordListSchema(), json.RawMessage(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("validateResponse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var inv *ErrInvalidResponse
				if !errors.As(err, &inv) {
					t.Fatalf("expected ErrInvalidResponse, got %T", err)
				}
			}
		})
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`plain text`)); err != nil {
		t.Fatalf("expected no error with nil schema, got: %v", err)
	}
}

func TestCompileSchema_Cached(t *testing.T) {
	s := wordListSchema()
	first, err := compileSchema(s)
	if err != nil {
		t.Fatalf("compileSchema: %v", err)
	}
	second, err := compileSchema(s)
	if err != nil {
		t.Fatalf("compileSchema: %v", err)
	}
	if first != second {
		t.Fatal("expected the cached schema to be reused")
	}
}
