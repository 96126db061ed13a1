// Package assist implements the auxiliary generation calls behind the
// lesson form's helpers. Each call is one schema-constrained request on
// the fast tier.
package assist

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/abhisek/lessoncraft/internal/llm"
	"github.com/abhisek/lessoncraft/internal/logger"
	"github.com/abhisek/lessoncraft/internal/planner"
)

// Config holds settings shared by every assist call.
type Config struct {
	Model       string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

// DefaultConfig returns the defaults: fast tier, 45 second bound per call.
func DefaultConfig() Config {
	return Config{
		Model:       llm.TierFast,
		MaxTokens:   2048,
		Temperature: 0.8,
		Timeout:     45 * time.Second,
	}
}

// Service issues assist requests against a provider.
type Service struct {
	provider llm.Provider
	cfg      Config
	log      *logger.Logger
}

// NewService creates an assist service. A nil provider is allowed; every
// call then fails with a GenerationError asking for credentials.
func NewService(provider llm.Provider, cfg Config, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{provider: provider, cfg: cfg, log: log}
}

// call runs one schema-constrained request and decodes the result into out.
// op is both the telemetry purpose and the GenerationError operation.
func (s *Service) call(ctx context.Context, op, system, prompt string, schema *llm.Schema, out any) error {
	if s.provider == nil {
		return planner.GenerationFailure(op, planner.ErrNoProvider)
	}

	ctx = llm.WithPurpose(ctx, op)
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	resp, err := s.provider.Generate(ctx, llm.Request{
		System:      system,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: prompt}},
		Schema:      schema,
		Model:       s.cfg.Model,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		s.log.Error("assist request failed", "op", op, "error", err)
		return planner.GenerationFailure(op, fmt.Errorf("%s: %w", op, err))
	}

	if err := json.Unmarshal(resp.Content, out); err != nil {
		s.log.Error("assist response malformed", "op", op, "error", err)
		return planner.GenerationFailure(op, &llm.ErrInvalidResponse{
			Content: resp.Content,
			Err:     fmt.Errorf("parse %s response: %w", op, err),
		})
	}
	return nil
}
