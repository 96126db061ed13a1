package planner

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/abhisek/lessoncraft/internal/lesson"
	"github.com/abhisek/lessoncraft/internal/llm"
	"github.com/abhisek/lessoncraft/internal/logger"
)

// audienceStyles maps an audience band to an illustration style. The first
// band whose keywords match the audience string wins.
var audienceStyles = []struct {
	keywords []string
	style    string
}{
	{[]string{"גן", "kindergarten", "preschool"},
		"Soft rounded shapes, bright primary colors, friendly cartoon characters, very simple compositions."},
	{[]string{"א-ב", "ג-ד", "יסודי", "elementary", "primary"},
		"Vibrant, colorful and whimsical storybook illustration with clear shapes and playful details."},
	{[]string{"ה-ו"},
		"Colorful, engaging illustration with more detail, like a modern educational picture book."},
	{[]string{"חטיבת ביניים", "middle"},
		"Dynamic graphic-novel inspired illustration, expressive but not childish."},
	{[]string{"תיכון", "high school"},
		"Clean, realistic digital illustration with a mature infographic feel."},
	{[]string{"מבוגרים", "adult", "university"},
		"Professional, minimal editorial illustration with a restrained palette."},
}

const defaultStyle = "Simple, vibrant, colorful, engaging and clear educational illustration."

// StyleFor returns the illustration style directive for an audience.
func StyleFor(audience string) string {
	a := strings.ToLower(audience)
	for _, band := range audienceStyles {
		for _, k := range band.keywords {
			if strings.Contains(a, k) {
				return band.style
			}
		}
	}
	return defaultStyle
}

func imagePrompt(description, audience string) string {
	return fmt.Sprintf(`An educational illustration for a classroom lesson screen for %s.
Description: "%s".
Style: %s
The image must be purely pictorial: it must not contain any text, letters, words or numbers.`,
		audience, description, StyleFor(audience))
}

// Enricher attaches generated illustrations to image screens.
type Enricher struct {
	images llm.ImageGenerator
	cfg    Config
	log    *logger.Logger
}

// NewEnricher creates an enricher. A nil generator turns Enrich into a no-op.
func NewEnricher(images llm.ImageGenerator, cfg Config, log *logger.Logger) *Enricher {
	if log == nil {
		log = logger.Nop()
	}
	return &Enricher{images: images, cfg: cfg, log: log}
}

type screenRef struct {
	part  lesson.PartName
	index int
}

// Enrich requests one image per image-type screen, all concurrently, and
// returns how many screens received one. A failed or empty request leaves
// that screen without an image and is only logged. Enrich never fails and
// never retries; it returns once every request has settled.
func (e *Enricher) Enrich(ctx context.Context, plan *lesson.Plan, audience string) int {
	if e.images == nil {
		return 0
	}

	var refs []screenRef
	for _, name := range lesson.PartNames {
		for i, s := range plan.Part(name).Screens {
			if s.Type == lesson.ScreenImage {
				refs = append(refs, screenRef{part: name, index: i})
			}
		}
	}
	if len(refs) == 0 {
		return 0
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeImage)
	g, gctx := errgroup.WithContext(ctx)
	if e.cfg.MaxConcurrentImages > 0 {
		g.SetLimit(e.cfg.MaxConcurrentImages)
	}

	var attached int32
	for _, ref := range refs {
		// Each goroutine owns exactly one screen slot.
		screen := &plan.Part(ref.part).Screens[ref.index]
		prompt := imagePrompt(screen.Description, audience)
		g.Go(func() error {
			url, err := e.one(gctx, prompt)
			if err != nil {
				e.log.Warn("image enrichment failed",
					"error", &lesson.EnrichmentError{Part: ref.part, Index: ref.index, Err: err})
				return nil
			}
			if url == "" {
				e.log.Warn("image enrichment returned no image", "part", ref.part, "screen", ref.index+1)
				return nil
			}
			screen.ImageURL = url
			atomic.AddInt32(&attached, 1)
			return nil
		})
	}
	_ = g.Wait()

	e.log.Debug("image enrichment finished", "requested", len(refs), "attached", attached)
	return int(attached)
}

func (e *Enricher) one(ctx context.Context, prompt string) (string, error) {
	if e.cfg.ImageTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.cfg.ImageTimeout)
		defer cancel()
	}
	img, err := e.images.GenerateImage(ctx, llm.ImageRequest{Prompt: prompt})
	if err != nil {
		return "", err
	}
	if img == nil || len(img.Data) == 0 {
		return "", nil
	}
	return DataURL(img.MIMEType, img.Data), nil
}

// DataURL encodes an image as an inline data URL.
func DataURL(mimeType string, data []byte) string {
	if mimeType == "" {
		mimeType = "image/png"
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
