package llm

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"

	"github.com/abhisek/lessoncraft/internal/logger"
)

// retryKind says whether a failed call may be tried again.
type retryKind int

const (
	retryNever retryKind = iota
	retryOnce
	retryAlways
)

// classify maps an error to its retry policy. Malformed output gets one
// more attempt since models often comply on a second try. Truncation,
// rejected credentials, attachments the provider cannot take and
// cancellation never get another.
func classify(err error) retryKind {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return retryNever
	}
	var maxTok *ErrMaxTokensExceeded
	var auth *ErrUnauthorized
	var unsupported *ErrUnsupportedAttachment
	if errors.As(err, &maxTok) || errors.As(err, &auth) || errors.As(err, &unsupported) {
		return retryNever
	}
	var inv *ErrInvalidResponse
	if errors.As(err, &inv) {
		return retryOnce
	}
	return retryAlways
}

// RetryProvider retries transient failures with exponential backoff and
// jitter. A wait that would outlast the caller's deadline is skipped and
// the provider error returned as is.
type RetryProvider struct {
	inner Provider
	cfg   RetryConfig
	log   *logger.Logger
}

// WithRetry wraps a Provider with retry logic. A nil logger is silent.
func WithRetry(p Provider, cfg RetryConfig, log *logger.Logger) Provider {
	if log == nil {
		log = logger.Nop()
	}
	return &RetryProvider{inner: p, cfg: cfg, log: log}
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	attempts := max(r.cfg.MaxAttempts, 1)
	retriedInvalid := false

	var err error
	for attempt := range attempts {
		var resp *Response
		resp, err = r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}

		switch classify(err) {
		case retryNever:
			return nil, err
		case retryOnce:
			if retriedInvalid {
				return nil, err
			}
			retriedInvalid = true
		}
		if attempt == attempts-1 {
			break
		}

		wait := r.backoff(attempt, err)
		if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < wait {
			r.log.Warn("not retrying, deadline too close", "purpose", PurposeFrom(ctx), "wait", wait, "error", err)
			return nil, err
		}
		r.log.Warn("retrying LLM request",
			"purpose", PurposeFrom(ctx),
			"attempt", attempt+1,
			"wait", wait,
			"error", err,
		)

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	return nil, err
}

func (r *RetryProvider) ModelID() string {
	return r.inner.ModelID()
}

// backoff is InitialWait * Multiplier^attempt capped at MaxWait, ±20%.
// A rate limit with a Retry-After hint waits exactly that long.
func (r *RetryProvider) backoff(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}

	wait := min(float64(r.cfg.InitialWait)*math.Pow(r.cfg.Multiplier, float64(attempt)), float64(r.cfg.MaxWait))
	wait += wait * 0.2 * (2*rand.Float64() - 1)
	return time.Duration(max(wait, 0))
}
