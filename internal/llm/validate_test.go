package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func testSchema() *Schema {
	return &Schema{
		Name:        "test-quiz-item",
		Description: "Un ítem de quiz de opción múltiple",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"pregunta": map[string]any{"type": "string"},
				"opciones": map[string]any{
					"type":     "array",
					"items":    map[string]any{"type": "string"},
					"minItems": 4,
					"maxItems": 4,
				},
				"respuesta_correcta": map[string]any{"type": "string"},
				"dificultad": map[string]any{
					"type": "string",
					"enum": []any{"baja", "media", "alta"},
				},
			},
			"required": []any{"pregunta", "opciones", "respuesta_correcta"},
		},
	}
}

const validItemJSON = `{
	"pregunta": "¿Cuánto es 1/2 + 1/4?",
	"opciones": ["3/4", "1/6", "2/6", "1/8"],
	"respuesta_correcta": "3/4",
	"dificultad": "media"
}`

func TestValidateResponse_ValidJSON(t *testing.T) {
	err := validateResponse(testSchema(), json.RawMessage(validItemJSON))
	if err != nil {
		t.Errorf("expected valid, got %v", err)
	}
}

func TestValidateResponse_ValidWithoutOptional(t *testing.T) {
	raw := json.RawMessage(`{
		"pregunta": "¿Cuánto es 2×3?",
		"opciones": ["6", "5", "8", "9"],
		"respuesta_correcta": "6"
	}`)
	if err := validateResponse(testSchema(), raw); err != nil {
		t.Errorf("expected valid without optional field, got %v", err)
	}
}

func TestValidateResponse_MissingRequired(t *testing.T) {
	raw := json.RawMessage(`{"pregunta": "¿Cuánto es 2×3?"}`)

	err := validateResponse(testSchema(), raw)

	var invResp *ErrInvalidResponse
	if !errors.As(err, &invResp) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}
	if string(invResp.Content) != string(raw) {
		t.Errorf("error should carry the offending content")
	}
}

func TestValidateResponse_WrongType(t *testing.T) {
	raw := json.RawMessage(`{
		"pregunta": 42,
		"opciones": ["a", "b", "c", "d"],
		"respuesta_correcta": "a"
	}`)

	var invResp *ErrInvalidResponse
	if !errors.As(validateResponse(testSchema(), raw), &invResp) {
		t.Error("expected ErrInvalidResponse for non-string pregunta")
	}
}

func TestValidateResponse_TooFewOptions(t *testing.T) {
	raw := json.RawMessage(`{
		"pregunta": "¿Cuánto es 2×3?",
		"opciones": ["6", "5"],
		"respuesta_correcta": "6"
	}`)

	var invResp *ErrInvalidResponse
	if !errors.As(validateResponse(testSchema(), raw), &invResp) {
		t.Error("expected ErrInvalidResponse for two options")
	}
}

func TestValidateResponse_InvalidEnum(t *testing.T) {
	raw := json.RawMessage(`{
		"pregunta": "¿Cuánto es 2×3?",
		"opciones": ["6", "5", "8", "9"],
		"respuesta_correcta": "6",
		"dificultad": "imposible"
	}`)

	var invResp *ErrInvalidResponse
	if !errors.As(validateResponse(testSchema(), raw), &invResp) {
		t.Error("expected ErrInvalidResponse for out-of-enum dificultad")
	}
}

func TestValidateResponse_MalformedJSON(t *testing.T) {
	raw := json.RawMessage(`{"pregunta": "truncat`)

	var invResp *ErrInvalidResponse
	if !errors.As(validateResponse(testSchema(), raw), &invResp) {
		t.Error("expected ErrInvalidResponse for malformed JSON")
	}
}

func TestValidateResponse_EmptyResponse(t *testing.T) {
	var invResp *ErrInvalidResponse
	if !errors.As(validateResponse(testSchema(), json.RawMessage("")), &invResp) {
		t.Error("expected ErrInvalidResponse for empty response")
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`not even json`)); err != nil {
		t.Errorf("nil schema should skip validation, got %v", err)
	}
}
