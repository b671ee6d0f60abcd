package suggest

import "github.com/edusabi/sabi/internal/llm"

// SuggestionSchema defines the JSON schema for next-step suggestions.
var SuggestionSchema = &llm.Schema{
	Name:        "next-step",
	Description: "Decisión pedagógica sobre el siguiente concepto a practicar",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"decision": map[string]any{
				"type":        "string",
				"enum":        []any{"repasar_prerrequisitos", "reintentar", "avanzar", "explorar_conectados"},
				"description": "El siguiente paso pedagógico",
			},
			"siguiente_concepto": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id":                  map[string]any{"type": "string"},
					"nombre":              map[string]any{"type": "string"},
					"dificultad_sugerida": map[string]any{"type": "string", "enum": []any{"baja", "media", "alta"}},
					"razon":               map[string]any{"type": "string"},
				},
				"required":             []any{"id", "nombre", "dificultad_sugerida", "razon"},
				"additionalProperties": false,
			},
			"alternativas": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id":     map[string]any{"type": "string"},
						"nombre": map[string]any{"type": "string"},
						"tipo":   map[string]any{"type": "string", "enum": []any{"prerrequisito", "avance", "exploracion"}},
						"razon":  map[string]any{"type": "string"},
					},
					"required":             []any{"id", "nombre", "tipo", "razon"},
					"additionalProperties": false,
				},
			},
			"confianza": map[string]any{
				"type":    "number",
				"minimum": 0,
				"maximum": 1,
			},
		},
		"required":             []any{"decision", "siguiente_concepto", "alternativas", "confianza"},
		"additionalProperties": false,
	},
}
