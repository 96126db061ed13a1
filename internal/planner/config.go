package planner

import "time"

// Config holds lesson-plan generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64

	// GenerateTimeout bounds the structured generation call, retries included.
	GenerateTimeout time.Duration
	// ImageTimeout bounds each individual image request.
	ImageTimeout time.Duration
	// MaxConcurrentImages caps in-flight image requests. Zero means no cap.
	MaxConcurrentImages int
}

// DefaultConfig returns sensible defaults for lesson-plan generation.
func DefaultConfig() Config {
	return Config{
		MaxTokens:       8192,
		Temperature:     0.7,
		GenerateTimeout: 120 * time.Second,
		ImageTimeout:    60 * time.Second,
	}
}

// Options are the per-call choices that come from user preferences.
type Options struct {
	// Model is the preferred model (tier or provider model ID). It is
	// ignored when a file is attached; file-grounded plans always use the
	// pro tier.
	Model string
	// Images enables the enrichment stage.
	Images bool
}
