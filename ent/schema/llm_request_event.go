package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// LLMRequestEvent records one model call made while authoring a lesson:
// plan generation, an illustration, autofill, a field suggestion or a chat
// turn. Rows are append-only.
type LLMRequestEvent struct {
	ent.Schema
}

func (LLMRequestEvent) Fields() []ent.Field {
	return []ent.Field{
		field.Int64("sequence").
			Unique().
			Immutable().
			Comment("Global order of completion; image calls for one plan finish out of row order"),
		field.Time("timestamp").
			Default(time.Now).
			Immutable(),
		field.String("provider").
			Comment("gemini, openai, openrouter, anthropic or mock"),
		field.String("model").
			Comment("Model ID the provider reported"),
		field.String("purpose").
			Comment("lesson-plan, image, autofill, suggest or chat"),
		field.Int("input_tokens").
			Default(0),
		field.Int("output_tokens").
			Default(0),
		field.Int64("latency_ms").
			Default(0),
		field.Bool("success"),
		field.String("error_message").
			Default(""),
		field.Text("request_body").
			Default("").
			Comment("Readable rendering of the request; attachment bytes are summarized"),
		field.Text("response_body").
			Default("").
			Comment("Raw response content; image bytes are summarized"),
	}
}

func (LLMRequestEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("timestamp"),
		index.Fields("purpose"),
		index.Fields("model"),
		index.Fields("success"),
	}
}
