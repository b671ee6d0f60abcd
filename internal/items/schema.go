package items

import "github.com/edusabi/sabi/internal/llm"

// ItemSchema defines the JSON schema for LLM item generation responses.
// Field names match the bank file format.
var ItemSchema = &llm.Schema{
	Name:        "quiz-item",
	Description: "Un ítem de opción múltiple con 4 opciones y una sola respuesta correcta",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"pregunta": map[string]any{
				"type":        "string",
				"description": "El enunciado de la pregunta, claro y autocontenido",
			},
			"opciones": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"minItems":    4,
				"maxItems":    4,
				"description": "Exactamente 4 opciones, una sola correcta",
			},
			"respuesta_correcta": map[string]any{
				"type":        "string",
				"description": "El texto exacto de la opción correcta",
			},
			"explicacion": map[string]any{
				"type":        "string",
				"description": "Solución en 2-4 pasos claros",
			},
			"dificultad": map[string]any{
				"type":        "string",
				"enum":        []any{"baja", "media", "alta"},
				"description": "Dificultad del ítem",
			},
		},
		"required":             []any{"pregunta", "opciones", "respuesta_correcta", "explicacion", "dificultad"},
		"additionalProperties": false,
	},
}
