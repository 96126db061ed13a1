// Package repository owns the in-memory lesson-plan collection and keeps it
// in sync with a string key-value store.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/lessoncraft/internal/lesson"
	"github.com/abhisek/lessoncraft/internal/logger"
	"github.com/abhisek/lessoncraft/internal/store"
)

// CollectionKey is the storage key holding the serialized collection.
const CollectionKey = "lessonPlans"

// KV is the storage medium. Get returns store.ErrNotFound for a missing key.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// Repository is the single writer of the lesson collection. Every mutation
// rewrites the whole collection, without images, before returning.
type Repository struct {
	kv  KV
	log *logger.Logger

	// now and newID are replaced in tests.
	now   func() time.Time
	newID func() (string, error)

	mu    sync.Mutex
	plans []*lesson.Plan
}

// New creates an empty repository over kv. Call Load to read the persisted
// collection.
func New(kv KV, log *logger.Logger) *Repository {
	if log == nil {
		log = logger.Nop()
	}
	return &Repository{
		kv:    kv,
		log:   log,
		now:   time.Now,
		newID: newID,
	}
}

// Open creates a repository and loads the persisted collection.
func Open(ctx context.Context, kv KV, log *logger.Logger) *Repository {
	r := New(kv, log)
	r.Load(ctx)
	return r
}

func newID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate lesson id: %w", err)
	}
	return "lesson-" + id.String(), nil
}

// Load replaces the in-memory collection with the persisted one. A missing
// key yields an empty collection; a read or parse failure is logged and
// also yields an empty collection.
func (r *Repository) Load(ctx context.Context) {
	plans, err := r.read(ctx)
	if err != nil {
		r.log.Error("failed to load lesson plans, starting empty",
			"error", &lesson.PersistenceError{Op: "load", Err: err})
		plans = nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.plans = plans
}

func (r *Repository) read(ctx context.Context) ([]*lesson.Plan, error) {
	raw, err := r.kv.Get(ctx, CollectionKey)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var plans []*lesson.Plan
	if err := json.Unmarshal([]byte(raw), &plans); err != nil {
		return nil, fmt.Errorf("parse %s: %w", CollectionKey, err)
	}

	out := plans[:0]
	for _, p := range plans {
		if p == nil {
			continue
		}
		out = append(out, lesson.Normalize(p))
	}
	return out, nil
}

// List returns copies of every plan, most recent first.
func (r *Repository) List() []*lesson.Plan {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*lesson.Plan, len(r.plans))
	for i, p := range r.plans {
		out[i] = p.Clone()
	}
	return out
}

// Len returns the number of plans in the collection.
func (r *Repository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.plans)
}

// Get returns a copy of the plan with the given id.
func (r *Repository) Get(id string) (*lesson.Plan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.index(id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", lesson.ErrPlanNotFound, id)
	}
	return r.plans[i].Clone(), nil
}

// Save routes a generated plan by the id of the form it came from: an empty
// id creates a new entry, anything else updates that entry in place.
func (r *Repository) Save(ctx context.Context, formID string, plan *lesson.Plan) (*lesson.Plan, error) {
	if formID == "" {
		return r.Create(ctx, plan)
	}
	return r.Update(ctx, formID, plan)
}

// Create assigns identity, draft status and the creation time to plan and
// prepends it to the collection. The returned copy keeps its images.
func (r *Repository) Create(ctx context.Context, plan *lesson.Plan) (*lesson.Plan, error) {
	id, err := r.newID()
	if err != nil {
		return nil, err
	}

	p := lesson.Normalize(plan.Clone())
	p.ID = id
	p.Status = lesson.StatusDraft
	p.CreationDate = r.now().UTC().Format(lesson.CreationDateLayout)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.plans = append([]*lesson.Plan{p}, r.plans...)
	r.persist(ctx)
	return p.Clone(), nil
}

// Update replaces the plan with the given id in place. The stored id,
// creation date and status are kept; the position does not change.
func (r *Repository) Update(ctx context.Context, id string, plan *lesson.Plan) (*lesson.Plan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.index(id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", lesson.ErrPlanNotFound, id)
	}
	prev := r.plans[i]

	p := lesson.Normalize(plan.Clone())
	p.ID = prev.ID
	p.CreationDate = prev.CreationDate
	p.Status = prev.Status
	r.plans[i] = p
	r.persist(ctx)
	return p.Clone(), nil
}

// Delete removes the plan with the given id. Confirmation is the caller's
// concern.
func (r *Repository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", lesson.ErrPlanNotFound, id)
	}
	r.plans = append(r.plans[:i], r.plans[i+1:]...)
	r.persist(ctx)
	return nil
}

// Publish marks the plan as published. Publishing a published plan changes
// nothing and writes nothing.
func (r *Repository) Publish(ctx context.Context, id string) (*lesson.Plan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.index(id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", lesson.ErrPlanNotFound, id)
	}
	p := r.plans[i]
	if !p.Published() {
		p.Status = lesson.StatusPublished
		r.persist(ctx)
	}
	return p.Clone(), nil
}

func (r *Repository) index(id string) int {
	for i, p := range r.plans {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// persist writes the whole collection without images. A failed write is
// logged; the in-memory collection stays authoritative. Caller holds mu.
func (r *Repository) persist(ctx context.Context) {
	stripped := make([]*lesson.Plan, len(r.plans))
	for i, p := range r.plans {
		stripped[i] = p.WithoutImages()
	}

	data, err := json.Marshal(stripped)
	if err == nil {
		err = r.kv.Set(context.WithoutCancel(ctx), CollectionKey, string(data))
	}
	if err != nil {
		r.log.Error("failed to persist lesson plans",
			"plans", len(stripped), "error", &lesson.PersistenceError{Op: "write", Err: err})
	}
}
