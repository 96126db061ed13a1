package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/lessoncraft/internal/logger"
	"github.com/abhisek/lessoncraft/internal/store"
)

// LoggingProvider is a decorator that records every LLM request as an event.
type LoggingProvider struct {
	inner     Provider
	provider  string
	eventRepo store.EventRepo
	log       *logger.Logger
}

// WithLogging wraps a Provider with event logging. A nil repo or logger
// disables that sink.
func WithLogging(p Provider, provider string, repo store.EventRepo, log *logger.Logger) Provider {
	if log == nil {
		log = logger.Nop()
	}
	return &LoggingProvider{inner: p, provider: provider, eventRepo: repo, log: log}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	purpose := PurposeFrom(ctx)

	resp, err := l.inner.Generate(ctx, req)

	data := store.LLMRequestEventData{
		Provider:    l.provider,
		Model:       l.inner.ModelID(),
		Purpose:     purpose,
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: serializeRequest(req),
	}
	if req.Model != "" {
		data.Model = req.Model
	}

	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		data.Model = resp.Model
		data.ResponseBody = string(resp.Content)
	}

	if err != nil {
		data.ErrorMessage = err.Error()
	}

	l.record(ctx, data)
	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// LoggingImageGenerator records every image request as an event.
type LoggingImageGenerator struct {
	inner     ImageGenerator
	provider  string
	eventRepo store.EventRepo
	log       *logger.Logger
}

// WithImageLogging wraps an ImageGenerator with event logging.
func WithImageLogging(g ImageGenerator, provider string, repo store.EventRepo, log *logger.Logger) ImageGenerator {
	if log == nil {
		log = logger.Nop()
	}
	return &LoggingImageGenerator{inner: g, provider: provider, eventRepo: repo, log: log}
}

func (l *LoggingImageGenerator) GenerateImage(ctx context.Context, req ImageRequest) (*Image, error) {
	start := time.Now()

	img, err := l.inner.GenerateImage(ctx, req)

	data := store.LLMRequestEventData{
		Provider:    l.provider,
		Model:       req.Model,
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: req.Prompt,
	}
	switch {
	case err != nil:
		data.ErrorMessage = err.Error()
	case img == nil:
		data.ResponseBody = "(no image)"
	default:
		data.Model = img.Model
		data.ResponseBody = fmt.Sprintf("(%s, %d bytes)", img.MIMEType, len(img.Data))
	}

	l.record(ctx, data)
	return img, err
}

func (l *LoggingProvider) record(ctx context.Context, data store.LLMRequestEventData) {
	recordEvent(ctx, l.eventRepo, l.log, data)
}

func (l *LoggingImageGenerator) record(ctx context.Context, data store.LLMRequestEventData) {
	recordEvent(ctx, l.eventRepo, l.log, data)
}

// recordEvent logs the event but never fails the request if logging fails.
func recordEvent(ctx context.Context, repo store.EventRepo, log *logger.Logger, data store.LLMRequestEventData) {
	log.Debug("llm request",
		"provider", data.Provider,
		"model", data.Model,
		"purpose", data.Purpose,
		"latency_ms", data.LatencyMs,
		"input_tokens", data.InputTokens,
		"output_tokens", data.OutputTokens,
		"success", data.Success,
	)
	if repo == nil {
		return
	}
	if err := repo.AppendLLMRequest(context.WithoutCancel(ctx), data); err != nil {
		log.Warn("failed to record LLM request event", "purpose", data.Purpose, "error", err)
	}
}

// serializeRequest builds a readable representation of the LLM request.
// Attachment bytes are summarized rather than copied.
func serializeRequest(req Request) string {
	var b strings.Builder

	if req.System != "" {
		b.WriteString("[system]\n")
		b.WriteString(req.System)
		b.WriteString("\n\n")
	}

	for _, m := range req.Messages {
		b.WriteString(fmt.Sprintf("[%s]\n", m.Role))
		for _, a := range m.Attachments {
			b.WriteString(fmt.Sprintf("[attachment: %s, %s, %d bytes]\n", a.Name, a.MIMEType, len(a.Data)))
		}
		b.WriteString(m.Content)
		b.WriteString("\n\n")
	}

	if req.Schema != nil {
		schemaDef, err := json.Marshal(req.Schema.Definition)
		if err == nil {
			b.WriteString(fmt.Sprintf("[schema: %s]\n", req.Schema.Name))
			b.WriteString(string(schemaDef))
			b.WriteString("\n")
		}
	}

	return b.String()
}
