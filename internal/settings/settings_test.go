package settings

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lessoncraft/internal/llm"
	"github.com/abhisek/lessoncraft/internal/store"
)

type memKV struct {
	data    map[string]string
	failGet error
	failSet error
}

func (m *memKV) Get(_ context.Context, key string) (string, error) {
	if m.failGet != nil {
		return "", m.failGet
	}
	v, ok := m.data[key]
	if !ok {
		return "", store.ErrNotFound
	}
	return v, nil
}

func (m *memKV) Set(_ context.Context, key, value string) error {
	if m.failSet != nil {
		return m.failSet
	}
	m.data[key] = value
	return nil
}

func TestOpenDefaults(t *testing.T) {
	s := Open(context.Background(), &memKV{data: map[string]string{}}, nil)
	got := s.Get()
	assert.Equal(t, Defaults(), got)
	assert.True(t, got.CloseChatOnSuggestion)
	assert.Equal(t, "right", got.ChatPosition)
	assert.Equal(t, llm.TierFast, got.AIModel)
	assert.False(t, got.GenerateImages)
}

func TestOpenMergesOverDefaults(t *testing.T) {
	kv := &memKV{data: map[string]string{Key: `{"theme":"dark","generateImages":true,"legacyKey":1}`}}
	got := Open(context.Background(), kv, nil).Get()

	assert.Equal(t, "dark", got.Theme)
	assert.True(t, got.GenerateImages)
	assert.Equal(t, "right", got.ChatPosition, "missing keys keep their defaults")
	assert.True(t, got.IsChatFloating)
}

func TestOpenFallsBack(t *testing.T) {
	cases := map[string]*memKV{
		"corrupt":     {data: map[string]string{Key: `{"theme":`}},
		"invalid":     {data: map[string]string{Key: `{"theme":"neon"}`}},
		"read failed": {data: map[string]string{}, failGet: errors.New("locked")},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, Defaults(), Open(context.Background(), kv, nil).Get())
		})
	}
}

func TestSet(t *testing.T) {
	kv := &memKV{data: map[string]string{}}
	s := Open(context.Background(), kv, nil)
	ctx := context.Background()

	got, err := s.Set(ctx, "generateImages", "true")
	require.NoError(t, err)
	assert.True(t, got.GenerateImages)

	got, err = s.Set(ctx, "aiModel", llm.TierPro)
	require.NoError(t, err)
	assert.Equal(t, llm.TierPro, got.AIModel)

	opts := got.PlannerOptions()
	assert.Equal(t, llm.TierPro, opts.Model)
	assert.True(t, opts.Images)

	reopened := Open(ctx, kv, nil).Get()
	assert.Equal(t, got, reopened)
}

func TestSetRejects(t *testing.T) {
	kv := &memKV{data: map[string]string{}}
	s := Open(context.Background(), kv, nil)
	ctx := context.Background()

	for _, tc := range []struct{ key, value string }{
		{"theme", "neon"},
		{"chatPosition", "top"},
		{"isChatPinned", "maybe"},
		{"aiModel", " "},
		{"fontSize", "12"},
	} {
		_, err := s.Set(ctx, tc.key, tc.value)
		if err == nil {
			t.Errorf("Set(%q, %q) should fail", tc.key, tc.value)
		}
	}
	assert.Equal(t, Defaults(), s.Get())
	assert.Empty(t, kv.data, "rejected values are never written")
}

func TestSetWriteFailureKeepsValue(t *testing.T) {
	kv := &memKV{data: map[string]string{}, failSet: errors.New("disk full")}
	s := Open(context.Background(), kv, nil)

	_, err := s.Set(context.Background(), "theme", "dark")
	require.Error(t, err)
	assert.Equal(t, "dark", s.Get().Theme)
}
