package llm

import "context"

type contextKey string

const purposeKey contextKey = "purpose"

// WithPurpose tags requests made with ctx, e.g. "lesson-gen", so LLM request
// events can be grouped by what asked for them.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey, purpose)
}

// PurposeFrom returns the purpose set by WithPurpose, or "unknown".
func PurposeFrom(ctx context.Context) string {
	purpose, ok := ctx.Value(purposeKey).(string)
	if !ok || purpose == "" {
		return "unknown"
	}
	return purpose
}
