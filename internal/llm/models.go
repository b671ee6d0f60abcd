package llm

// Friendly model aliases per provider. Sabi makes many small calls per
// quiz bout (one item, one suggestion), so the aliases point at each
// provider's fast low-cost tier; the full model IDs in the pricing
// table work too, unmapped names pass through resolveModel as-is.
var (
	geminiModels = map[string]string{
		"gemini-flash":      "gemini-2.0-flash",
		"gemini-flash-lite": "gemini-2.0-flash-lite",
		"gemini-pro":        "gemini-2.0-pro",
	}

	openaiModels = map[string]string{
		"gpt-mini":    "gpt-4o-mini",
		"gpt-4o-mini": "gpt-4o-mini",
		"gpt-4o":      "gpt-4o",
	}

	anthropicModels = map[string]string{
		"claude-haiku":  "claude-haiku-4-5-20251001",
		"claude-sonnet": "claude-sonnet-4-20250514",
	}
)

// resolveModel maps a friendly alias to a provider model ID. Unknown
// names are returned unchanged so direct model IDs keep working.
func resolveModel(name string, models map[string]string) string {
	if id, ok := models[name]; ok {
		return id
	}
	return name
}
