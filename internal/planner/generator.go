package planner

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/lessoncraft/internal/lesson"
	"github.com/abhisek/lessoncraft/internal/llm"
)

// Generator runs the schema-constrained lesson-plan call.
type Generator struct {
	provider llm.Provider
	cfg      Config
}

// NewGenerator creates a generator. A nil provider is allowed; every call
// then fails with a GenerationError asking for credentials.
func NewGenerator(provider llm.Provider, cfg Config) *Generator {
	return &Generator{provider: provider, cfg: cfg}
}

// Generate produces a plan without images. File-grounded requests always
// use the pro tier; otherwise model is used as given (empty selects the
// provider default). Nothing is returned on failure.
func (g *Generator) Generate(ctx context.Context, req *Request, model string) (*lesson.Plan, error) {
	if g.provider == nil {
		return nil, GenerationFailure("generate", ErrNoProvider)
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeLessonPlan)
	if g.cfg.GenerateTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.cfg.GenerateTimeout)
		defer cancel()
	}

	if req.FileGrounded() {
		model = llm.TierPro
	}

	resp, err := g.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Messages:    []llm.Message{req.message()},
		Schema:      PlanSchema,
		Model:       model,
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
	})
	if err != nil {
		return nil, GenerationFailure("generate", fmt.Errorf("lesson plan generation: %w", err))
	}

	var plan lesson.Plan
	if err := json.Unmarshal(resp.Content, &plan); err != nil {
		return nil, GenerationFailure("generate", &llm.ErrInvalidResponse{
			Content: resp.Content,
			Err:     fmt.Errorf("parse lesson plan: %w", err),
		})
	}

	shape(&plan, req)
	return &plan, nil
}

// shape applies the values the model is never trusted with and clears
// everything the repository or the enrichment stage owns.
func shape(plan *lesson.Plan, req *Request) {
	plan.ID = ""
	plan.Status = ""
	plan.CreationDate = ""
	plan.LegacyActivities = nil

	plan.LessonDuration = req.Duration
	plan.Topic = req.Topic
	plan.Category = req.Category
	plan.UnitTopic = req.UnitTopic
	plan.TargetAudience = req.GradeLevel

	if !lesson.IsTeachingStyle(plan.TeachingStyle) {
		plan.TeachingStyle = ""
	}
	if !lesson.IsTone(plan.Tone) {
		plan.Tone = ""
	}

	for _, name := range lesson.PartNames {
		part := plan.Part(name)
		if len(part.Screens) > lesson.MaxScreens {
			part.Screens = part.Screens[:lesson.MaxScreens]
		}
		for i := range part.Screens {
			part.Screens[i].ImageURL = ""
		}
	}

	lesson.Normalize(plan)
}
