package loader

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lessoncraft/internal/lesson"
	"github.com/abhisek/lessoncraft/internal/ui/theme"
)

type fakeSource struct {
	polls   int
	readyAt int
	plan    *lesson.Plan
	err     error
}

func (f *fakeSource) Consume() (*lesson.Plan, bool, error) {
	f.polls++
	if f.polls < f.readyAt {
		return nil, false, nil
	}
	return f.plan, true, f.err
}

func TestModelPollsUntilDone(t *testing.T) {
	src := &fakeSource{readyAt: 3, plan: &lesson.Plan{LessonTitle: "x"}}
	var m tea.Model = New(src, theme.For("light"))

	var cmd tea.Cmd
	for i := 0; i < 2; i++ {
		m, cmd = m.Update(tickMsg(time.Now()))
		if cmd == nil {
			t.Fatalf("tick %d: expected another tick", i)
		}
		if _, err := m.(Model).Result(); !errors.Is(err, ErrCancelled) {
			t.Fatalf("tick %d: result available too early", i)
		}
	}

	m, _ = m.Update(tickMsg(time.Now()))
	plan, err := m.(Model).Result()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan == nil || plan.LessonTitle != "x" {
		t.Fatalf("plan = %+v", plan)
	}
}

func TestModelPropagatesError(t *testing.T) {
	want := &lesson.GenerationError{Op: "generate", Message: "נכשל"}
	src := &fakeSource{readyAt: 1, err: want}
	m, _ := New(src, theme.For("light")).Update(tickMsg(time.Now()))

	if _, err := m.(Model).Result(); !errors.Is(err, want) {
		t.Fatalf("err = %v, want %v", err, want)
	}
}

func TestMessageRotates(t *testing.T) {
	if Message(0) != messages[0] {
		t.Errorf("first message = %q", Message(0))
	}
	if Message(messageInterval) != messages[1] {
		t.Errorf("second message = %q", Message(messageInterval))
	}
	if Message(time.Duration(len(messages))*messageInterval) != messages[0] {
		t.Error("messages should wrap around")
	}
}

func TestViewShowsProgress(t *testing.T) {
	m := New(&fakeSource{readyAt: 100}, theme.For("dark"))
	out := m.render()
	if !strings.Contains(out, "יוצרים עבורך שיעור") || !strings.Contains(out, messages[0]) {
		t.Errorf("view = %q", out)
	}
}

func TestWait(t *testing.T) {
	src := &fakeSource{readyAt: 2, plan: &lesson.Plan{}}
	plan, err := Wait(src)
	if err != nil || plan == nil {
		t.Fatalf("Wait = %v, %v", plan, err)
	}
}
