package llm

import "context"

// Purpose labels Sabi attaches to its LLM calls. The logging middleware
// records the label in eventos_llm so usage can be broken down by what
// the tokens were spent on.
const (
	PurposeItemGen = "item-gen"
	PurposeSuggest = "suggest"
)

type contextKey string

const purposeKey contextKey = "llm_purpose"

// WithPurpose tags the context with a purpose label for event logging.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey, purpose)
}

// PurposeFrom returns the context's purpose label, or "unknown" for
// untagged calls.
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey).(string); ok {
		return v
	}
	return "unknown"
}
