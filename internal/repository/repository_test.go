package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/abhisek/lessoncraft/internal/lesson"
	"github.com/abhisek/lessoncraft/internal/logger"
	"github.com/abhisek/lessoncraft/internal/store"
)

type memKV struct {
	data    map[string]string
	writes  int
	failSet error
}

func newMemKV() *memKV { return &memKV{data: map[string]string{}} }

func (m *memKV) Get(_ context.Context, key string) (string, error) {
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
	m.writes++
	m.data[key] = value
	return nil
}

func observedLogger() (*logger.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	return &logger.Logger{SugaredLogger: zap.New(core).Sugar()}, logs
}

func newTestRepo(kv KV) *Repository {
	r := New(kv, nil)
	clock := time.Date(2026, 3, 1, 8, 30, 0, 0, time.UTC)
	seq := 0
	r.now = func() time.Time { return clock }
	r.newID = func() (string, error) {
		seq++
		return fmt.Sprintf("lesson-%d", seq), nil
	}
	return r
}

func plan(title string) *lesson.Plan {
	return &lesson.Plan{
		LessonTitle:    title,
		LessonDuration: 45,
		Opening: lesson.Part{Screens: []lesson.Screen{
			{Type: lesson.ScreenImage, Description: "ים", ImageURL: "data:image/png;base64,AAAA"},
		}},
		Main: lesson.Part{Screens: []lesson.Screen{
			{Type: lesson.ScreenVideo, Description: "סרטון"},
			{Type: lesson.ScreenImage, Description: "ענן", ImageURL: "data:image/png;base64,BBBB"},
		}},
	}
}

func stored(t *testing.T, kv *memKV) []*lesson.Plan {
	t.Helper()
	var plans []*lesson.Plan
	require.NoError(t, json.Unmarshal([]byte(kv.data[CollectionKey]), &plans))
	return plans
}

func TestCreate_StripsImagesOnlyInStorage(t *testing.T) {
	kv := newMemKV()
	r := newTestRepo(kv)

	got, err := r.Create(context.Background(), plan("מחזור המים"))
	require.NoError(t, err)

	assert.Equal(t, 2, got.ImageCount(), "returned plan keeps its images")
	assert.NotContains(t, kv.data[CollectionKey], "imageUrl")
	assert.NotContains(t, kv.data[CollectionKey], "base64")

	listed := r.List()
	require.Len(t, listed, 1)
	assert.Equal(t, 2, listed[0].ImageCount(), "memory keeps images for the session")
}

func TestCreate_AssignsIdentityAndPrepends(t *testing.T) {
	kv := newMemKV()
	r := newTestRepo(kv)
	ctx := context.Background()

	first, err := r.Create(ctx, plan("ראשון"))
	require.NoError(t, err)
	in := plan("שני")
	in.ID = "model-made-this-up"
	in.Status = lesson.StatusPublished
	second, err := r.Create(ctx, in)
	require.NoError(t, err)

	assert.Equal(t, "lesson-1", first.ID)
	assert.Equal(t, "lesson-2", second.ID)
	assert.Equal(t, lesson.StatusDraft, second.Status)
	assert.Equal(t, "2026-03-01T08:30:00.000Z", second.CreationDate)

	plans := stored(t, kv)
	require.Len(t, plans, 2)
	assert.Equal(t, "שני", plans[0].LessonTitle, "most recent first")
	assert.Equal(t, "ראשון", plans[1].LessonTitle)
}

func TestCreate_EmptyListsStayArrays(t *testing.T) {
	kv := newMemKV()
	r := newTestRepo(kv)

	got, err := r.Create(context.Background(), &lesson.Plan{LessonTitle: "ריק", LessonDuration: 45})
	require.NoError(t, err)

	raw := kv.data[CollectionKey]
	assert.NotContains(t, raw, "null")
	for _, key := range []string{`"contentGoals":[]`, `"skillGoals":[]`, `"learningObjectives":[]`, `"materials":[]`, `"screens":[]`} {
		assert.Contains(t, raw, key)
	}

	assert.NotNil(t, got.Main.Screens)
	fetched, err := r.Get(got.ID)
	require.NoError(t, err)
	for _, name := range lesson.PartNames {
		assert.NotNil(t, fetched.Part(name).Screens, "part %s", name)
	}
	assert.NotNil(t, fetched.Materials)
}

func TestUpdate_ReplacesInPlace(t *testing.T) {
	kv := newMemKV()
	r := newTestRepo(kv)
	ctx := context.Background()

	for _, title := range []string{"א", "ב", "ג"} {
		_, err := r.Create(ctx, plan(title))
		require.NoError(t, err)
	}
	_, err := r.Publish(ctx, "lesson-2")
	require.NoError(t, err)

	r.now = func() time.Time { return time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC) }
	regenerated := plan("ב מחודש")
	regenerated.ID = ""
	regenerated.CreationDate = ""

	got, err := r.Save(ctx, "lesson-2", regenerated)
	require.NoError(t, err)
	assert.Equal(t, "lesson-2", got.ID)
	assert.Equal(t, "2026-03-01T08:30:00.000Z", got.CreationDate)
	assert.Equal(t, lesson.StatusPublished, got.Status, "status survives regeneration")

	assert.Equal(t, 3, r.Len())
	titles := []string{}
	for _, p := range r.List() {
		titles = append(titles, p.LessonTitle)
	}
	assert.Equal(t, []string{"ג", "ב מחודש", "א"}, titles)
}

func TestSave_Routing(t *testing.T) {
	r := newTestRepo(newMemKV())
	ctx := context.Background()

	created, err := r.Save(ctx, "", plan("חדש"))
	require.NoError(t, err)
	assert.Equal(t, 1, r.Len())

	_, err = r.Save(ctx, created.ID, plan("עודכן"))
	require.NoError(t, err)
	assert.Equal(t, 1, r.Len())

	_, err = r.Save(ctx, "lesson-404", plan("x"))
	assert.ErrorIs(t, err, lesson.ErrPlanNotFound)
	assert.Equal(t, 1, r.Len())
}

func TestPublish_Idempotent(t *testing.T) {
	kv := newMemKV()
	r := newTestRepo(kv)
	ctx := context.Background()

	p, err := r.Create(ctx, plan("x"))
	require.NoError(t, err)
	writes := kv.writes

	got, err := r.Publish(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, lesson.StatusPublished, got.Status)
	assert.Equal(t, writes+1, kv.writes)

	got, err = r.Publish(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, lesson.StatusPublished, got.Status)
	assert.Equal(t, writes+1, kv.writes, "second publish writes nothing")

	assert.Equal(t, lesson.StatusPublished, stored(t, kv)[0].Status)

	_, err = r.Publish(ctx, "nope")
	assert.ErrorIs(t, err, lesson.ErrPlanNotFound)
}

func TestDelete(t *testing.T) {
	kv := newMemKV()
	r := newTestRepo(kv)
	ctx := context.Background()

	a, _ := r.Create(ctx, plan("א"))
	_, _ = r.Create(ctx, plan("ב"))

	require.NoError(t, r.Delete(ctx, a.ID))
	assert.Equal(t, 1, r.Len())
	assert.Len(t, stored(t, kv), 1)

	_, err := r.Get(a.ID)
	assert.ErrorIs(t, err, lesson.ErrPlanNotFound)
	assert.ErrorIs(t, r.Delete(ctx, a.ID), lesson.ErrPlanNotFound)
}

func TestListReturnsCopies(t *testing.T) {
	r := newTestRepo(newMemKV())
	p, err := r.Create(context.Background(), plan("x"))
	require.NoError(t, err)

	listed := r.List()
	listed[0].LessonTitle = "changed"
	listed[0].Opening.Screens[0].Description = "changed"

	again, err := r.Get(p.ID)
	require.NoError(t, err)
	assert.Equal(t, "x", again.LessonTitle)
	assert.Equal(t, "ים", again.Opening.Screens[0].Description)
}

func TestLoad(t *testing.T) {
	t.Run("missing key", func(t *testing.T) {
		r := Open(context.Background(), newMemKV(), nil)
		assert.Zero(t, r.Len())
	})

	t.Run("legacy documents", func(t *testing.T) {
		kv := newMemKV()
		kv.data[CollectionKey] = `[
			{"id":"lesson-9","topic":"ישן","lessonTitle":"שיעור ישן","lessonDuration":40,"creationDate":"2024-05-01T10:00:00.000Z",
			 "lessonActivities":[{"title":"פעילות","description":"d","duration":10,"type":"דיון"}]},
			null
		]`
		r := Open(context.Background(), kv, nil)
		require.Equal(t, 1, r.Len())

		p, err := r.Get("lesson-9")
		require.NoError(t, err)
		assert.Equal(t, lesson.StatusDraft, p.Status)
		assert.NotNil(t, p.Main.Screens)
		assert.Len(t, p.LegacyActivities, 1)
	})

	t.Run("corrupt document", func(t *testing.T) {
		kv := newMemKV()
		kv.data[CollectionKey] = `{not json`
		log, logs := observedLogger()

		r := Open(context.Background(), kv, log)
		assert.Zero(t, r.Len())
		assert.Equal(t, 1, logs.FilterMessage("failed to load lesson plans, starting empty").Len())

		_, err := r.Create(context.Background(), plan("חדש"))
		require.NoError(t, err)
		assert.Len(t, stored(t, kv), 1, "corrupt data is replaced on the next write")
	})
}

func TestWriteFailureKeepsMemory(t *testing.T) {
	kv := newMemKV()
	kv.failSet = errors.New("disk full")
	log, logs := observedLogger()
	r := New(kv, log)

	p, err := r.Create(context.Background(), plan("x"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(p.ID, "lesson-"))
	assert.Equal(t, 1, r.Len())

	entries := logs.FilterMessage("failed to persist lesson plans").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zap.ErrorLevel, entries[0].Level)
}
