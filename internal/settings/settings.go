// Package settings persists the user's preference bag.
package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/abhisek/lessoncraft/internal/llm"
	"github.com/abhisek/lessoncraft/internal/logger"
	"github.com/abhisek/lessoncraft/internal/planner"
	"github.com/abhisek/lessoncraft/internal/store"
)

// Key is the storage key of the preference bag.
const Key = "appSettings"

// Settings are the user preferences. Unknown keys in stored documents are
// ignored; missing keys take their defaults.
type Settings struct {
	CloseChatOnSuggestion bool   `json:"closeChatOnSuggestion"`
	ChatPosition          string `json:"chatPosition" validate:"oneof=left right"`
	IsChatFloating        bool   `json:"isChatFloating"`
	IsChatPinned          bool   `json:"isChatPinned"`
	IsChatCollapsed       bool   `json:"isChatCollapsed"`
	AIModel               string `json:"aiModel" validate:"required"`
	GenerateImages        bool   `json:"generateImages"`
	Theme                 string `json:"theme" validate:"oneof=light dark system"`
}

// Defaults returns the preferences used before anything is saved.
func Defaults() Settings {
	return Settings{
		CloseChatOnSuggestion: true,
		ChatPosition:          "right",
		IsChatFloating:        true,
		AIModel:               llm.TierFast,
		Theme:                 "light",
	}
}

// PlannerOptions threads the generation preferences into a planner call.
func (s Settings) PlannerOptions() planner.Options {
	return planner.Options{Model: s.AIModel, Images: s.GenerateImages}
}

// KV is the storage medium. Get returns store.ErrNotFound for a missing key.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// Store loads and saves the preference bag.
type Store struct {
	kv  KV
	log *logger.Logger

	mu      sync.Mutex
	current Settings
}

var validate = validator.New()

// Open loads the saved preferences merged over the defaults. A missing or
// unreadable document leaves the defaults in place and is never an error.
func Open(ctx context.Context, kv KV, log *logger.Logger) *Store {
	if log == nil {
		log = logger.Nop()
	}
	s := &Store{kv: kv, log: log, current: Defaults()}

	raw, err := kv.Get(ctx, Key)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return s
	case err != nil:
		log.Warn("failed to read settings, using defaults", "error", err)
		return s
	}

	merged := Defaults()
	if err := json.Unmarshal([]byte(raw), &merged); err != nil {
		log.Warn("failed to parse settings, using defaults", "error", err)
		return s
	}
	if err := validate.Struct(merged); err != nil {
		log.Warn("saved settings are invalid, using defaults", "error", err)
		return s
	}
	s.current = merged
	return s
}

// Get returns the current preferences.
func (s *Store) Get() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Set changes one preference by its JSON key and saves the whole bag.
func (s *Store) Set(ctx context.Context, key, value string) (Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.current
	if err := assign(&next, key, value); err != nil {
		return s.current, err
	}
	if err := validate.Struct(next); err != nil {
		return s.current, fmt.Errorf("invalid value %q for %s", value, key)
	}

	data, err := json.Marshal(next)
	if err != nil {
		return s.current, fmt.Errorf("encode settings: %w", err)
	}
	s.current = next
	if err := s.kv.Set(ctx, Key, string(data)); err != nil {
		s.log.Error("failed to save settings", "key", key, "error", err)
		return s.current, fmt.Errorf("save settings: %w", err)
	}
	return s.current, nil
}

func assign(s *Settings, key, value string) error {
	boolean := func(dst *bool) error {
		b, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("%s expects true or false, got %q", key, value)
		}
		*dst = b
		return nil
	}

	switch key {
	case "closeChatOnSuggestion":
		return boolean(&s.CloseChatOnSuggestion)
	case "isChatFloating":
		return boolean(&s.IsChatFloating)
	case "isChatPinned":
		return boolean(&s.IsChatPinned)
	case "isChatCollapsed":
		return boolean(&s.IsChatCollapsed)
	case "generateImages":
		return boolean(&s.GenerateImages)
	case "chatPosition":
		s.ChatPosition = strings.TrimSpace(value)
	case "aiModel":
		s.AIModel = strings.TrimSpace(value)
	case "theme":
		s.Theme = strings.TrimSpace(value)
	default:
		return fmt.Errorf("unknown setting %q (known: %s)", key, strings.Join(Keys(), ", "))
	}
	return nil
}

// Keys lists the setting names accepted by Set.
func Keys() []string {
	keys := []string{
		"closeChatOnSuggestion", "chatPosition", "isChatFloating", "isChatPinned",
		"isChatCollapsed", "aiModel", "generateImages", "theme",
	}
	sort.Strings(keys)
	return keys
}
