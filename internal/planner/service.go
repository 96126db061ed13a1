package planner

import (
	"context"
	"sync"

	"github.com/abhisek/lessoncraft/internal/lesson"
	"github.com/abhisek/lessoncraft/internal/llm"
	"github.com/abhisek/lessoncraft/internal/logger"
)

// Service runs the full pipeline: request assembly, structured generation
// and, when enabled, image enrichment.
type Service struct {
	gen      *Generator
	enricher *Enricher
	log      *logger.Logger

	mu      sync.Mutex
	run     int
	pending *lesson.Plan
	err     error
	ready   bool
}

// NewService creates a lesson-plan service. images may be nil when the
// provider has no image backend.
func NewService(provider llm.Provider, images llm.ImageGenerator, cfg Config, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		gen:      NewGenerator(provider, cfg),
		enricher: NewEnricher(images, cfg, log),
		log:      log,
	}
}

// Generate validates the form and produces a plan. Validation and
// attachment errors are returned before any backend call. The plan is
// returned without identity; the repository assigns it.
func (s *Service) Generate(ctx context.Context, form *lesson.FormData, opts Options) (*lesson.Plan, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}
	req, err := BuildRequest(form)
	if err != nil {
		return nil, err
	}

	plan, err := s.gen.Generate(ctx, req, opts.Model)
	if err != nil {
		s.log.Error("lesson plan generation failed", "unit_topic", form.UnitTopic, "file", req.FileGrounded(), "error", err)
		return nil, err
	}

	if opts.Images {
		n := s.enricher.Enrich(ctx, plan, plan.TargetAudience)
		s.log.Info("lesson plan enriched", "images", n)
	}
	return plan, nil
}

// Start runs Generate in the background. Only one plan is in flight at a
// time; a new call replaces any unconsumed result.
func (s *Service) Start(ctx context.Context, form *lesson.FormData, opts Options) {
	s.mu.Lock()
	s.run++
	run := s.run
	s.pending, s.err, s.ready = nil, nil, false
	s.mu.Unlock()

	go func() {
		plan, err := s.Generate(ctx, form, opts)
		s.mu.Lock()
		defer s.mu.Unlock()
		if run != s.run {
			return
		}
		s.pending = plan
		s.err = err
		s.ready = true
	}()
}

// Consume returns the background result once it is ready and clears the
// slot. done is false while generation is still running.
func (s *Service) Consume() (plan *lesson.Plan, done bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return nil, false, nil
	}
	plan, err = s.pending, s.err
	s.pending, s.err, s.ready = nil, nil, false
	return plan, true, err
}
