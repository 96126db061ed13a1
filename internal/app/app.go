// Package app holds the application controller: which view is active,
// which plan is displayed, and the submit, publish and delete flows that
// tie the planner to the repository.
package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/abhisek/lessoncraft/internal/lesson"
	"github.com/abhisek/lessoncraft/internal/logger"
	"github.com/abhisek/lessoncraft/internal/planner"
	"github.com/abhisek/lessoncraft/internal/repository"
	"github.com/abhisek/lessoncraft/internal/settings"
)

// View is the active screen.
type View string

const (
	ViewDashboard View = "dashboard"
	ViewForm      View = "form"
	ViewLoading   View = "loading"
	ViewDisplay   View = "display"
)

// Filter narrows the dashboard list by status.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterDraft     Filter = "draft"
	FilterPublished Filter = "published"
)

// Generator produces a plan from a form. *planner.Service implements it.
type Generator interface {
	Generate(ctx context.Context, form *lesson.FormData, opts planner.Options) (*lesson.Plan, error)
}

// Preferences supplies the generation preferences. *settings.Store
// implements it.
type Preferences interface {
	Get() settings.Settings
}

// Confirmer asks the user to approve a destructive action.
type Confirmer interface {
	Confirm(ctx context.Context, message string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, message string) (bool, error)

func (f ConfirmFunc) Confirm(ctx context.Context, message string) (bool, error) {
	return f(ctx, message)
}

// Options configures a Controller.
type Options struct {
	Generator   Generator
	Repository  *repository.Repository
	Preferences Preferences
	Confirmer   Confirmer
	Logger      *logger.Logger
}

// Controller is the application state machine.
type Controller struct {
	gen     Generator
	repo    *repository.Repository
	prefs   Preferences
	confirm Confirmer
	log     *logger.Logger

	mu      sync.Mutex
	view    View
	current *lesson.Plan
	errMsg  string
}

// New creates a controller on the dashboard view.
func New(opts Options) *Controller {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &Controller{
		gen:     opts.Generator,
		repo:    opts.Repository,
		prefs:   opts.Preferences,
		confirm: opts.Confirmer,
		log:     log,
		view:    ViewDashboard,
	}
}

// View returns the active view.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

// Current returns the displayed plan, or nil.
func (c *Controller) Current() *lesson.Plan {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return nil
	}
	return c.current.Clone()
}

// Error returns the user-visible message of the last failed submit.
func (c *Controller) Error() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errMsg
}

// Lessons returns the dashboard list.
func (c *Controller) Lessons(f Filter) []*lesson.Plan {
	all := c.repo.List()
	if f == "" || f == FilterAll {
		return all
	}
	out := all[:0]
	for _, p := range all {
		if p.Published() == (f == FilterPublished) {
			out = append(out, p)
		}
	}
	return out
}

// CreateNew opens an empty form.
func (c *Controller) CreateNew() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view, c.current, c.errMsg = ViewForm, nil, ""
}

// Edit opens the form prefilled from a stored plan. Submitting it
// regenerates that plan in place.
func (c *Controller) Edit(id string) (*lesson.FormData, error) {
	p, err := c.repo.Get(id)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view, c.current, c.errMsg = ViewForm, p, ""
	return lesson.FormFromPlan(p), nil
}

// Select displays a stored plan.
func (c *Controller) Select(id string) error {
	p, err := c.repo.Get(id)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view, c.current, c.errMsg = ViewDisplay, p, ""
	return nil
}

// Back returns to the dashboard.
func (c *Controller) Back() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view, c.current, c.errMsg = ViewDashboard, nil, ""
}

// Submit generates a plan from form and stores it: a form without an id
// creates a new plan, a form with one regenerates that plan. On failure
// nothing is stored and the error message is kept for display.
func (c *Controller) Submit(ctx context.Context, form *lesson.FormData) (*lesson.Plan, error) {
	opts := c.Begin()
	plan, err := c.gen.Generate(ctx, form, opts)
	return c.Finish(ctx, form, plan, err)
}

// Begin switches to the loading view and returns the generation options
// taken from the current preferences. Pair it with Finish when generation
// runs elsewhere, as with planner.Service.Start.
func (c *Controller) Begin() planner.Options {
	c.mu.Lock()
	c.view, c.errMsg = ViewLoading, ""
	c.mu.Unlock()

	if c.prefs == nil {
		return planner.Options{}
	}
	return c.prefs.Get().PlannerOptions()
}

// Finish completes a submit started with Begin. A failed edit returns to
// the form and a failed creation to the lesson list, both with the error
// banner set.
func (c *Controller) Finish(ctx context.Context, form *lesson.FormData, plan *lesson.Plan, err error) (*lesson.Plan, error) {
	if err == nil {
		plan, err = c.repo.Save(ctx, form.ID, plan)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.view = ViewDashboard
		if form.IsUpdate() {
			c.view = ViewForm
		}
		c.errMsg = "שגיאה ביצירת מערך השיעור: " + lesson.UserMessage(err)
		c.log.Warn("submit failed", "update", form.IsUpdate(), "error", err)
		return nil, err
	}
	c.view, c.current = ViewDisplay, plan
	return plan.Clone(), nil
}

// Publish marks a plan as published. The displayed copy follows when it is
// the same plan.
func (c *Controller) Publish(ctx context.Context, id string) (*lesson.Plan, error) {
	p, err := c.repo.Publish(ctx, id)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current != nil && c.current.ID == id {
		c.current.Status = p.Status
	}
	return p, nil
}

// ErrNotConfirmed is returned when the user declines a deletion.
var ErrNotConfirmed = errors.New("deletion not confirmed")

// Delete removes a plan after the user confirms. A controller without a
// Confirmer treats every deletion as confirmed. Deleting the displayed plan
// returns to the dashboard.
func (c *Controller) Delete(ctx context.Context, id string) error {
	p, err := c.repo.Get(id)
	if err != nil {
		return err
	}
	if c.confirm != nil {
		ok, err := c.confirm.Confirm(ctx, fmt.Sprintf("האם למחוק את מערך השיעור \"%s\"?", p.LessonTitle))
		if err != nil {
			return fmt.Errorf("confirm deletion: %w", err)
		}
		if !ok {
			return ErrNotConfirmed
		}
	}
	if err := c.repo.Delete(ctx, id); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current != nil && c.current.ID == id {
		c.view, c.current = ViewDashboard, nil
	}
	return nil
}
