package llm

import "context"

// Purpose labels recorded with every request event.
const (
	PurposeLessonPlan = "lesson-plan"
	PurposeImage      = "image"
	PurposeAutofill   = "autofill"
	PurposeSuggest    = "suggest"
	PurposeChat       = "chat"
)

type purposeKey struct{}

// WithPurpose labels ctx so request logging can attribute the call.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the label set by WithPurpose, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok && v != "" {
		return v
	}
	return "unknown"
}
