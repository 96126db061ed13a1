package render

import (
	"strings"
	"testing"

	"github.com/abhisek/lessoncraft/internal/lesson"
	"github.com/abhisek/lessoncraft/internal/ui/theme"
)

func samplePlan() *lesson.Plan {
	return lesson.Normalize(&lesson.Plan{
		ID:                 "lesson-1",
		LessonTitle:        "המסע של טיפת המים",
		TargetAudience:     "חטיבת ביניים",
		LessonDuration:     45,
		Topic:              "מחזור המים",
		LearningObjectives: []string{"לתאר אידוי"},
		Materials:          []string{"קומקום"},
		CreationDate:       "2026-03-01T08:30:00.000Z",
		Opening: lesson.Part{
			Content:    "הדגמה",
			SpaceUsage: lesson.SpaceWholeClass,
			Screens: []lesson.Screen{
				{Type: lesson.ScreenImage, Description: "ענן", ImageURL: "data:image/png;base64,AA=="},
				{Type: lesson.ScreenVideo, Description: "סרטון"},
			},
		},
		ImmersiveExperienceIdea: lesson.Idea{Title: "טיפה בענן", Description: "משחק תפקידים"},
	})
}

func TestPlan(t *testing.T) {
	out := Plan(samplePlan(), theme.For("light"), 0)

	for _, want := range []string{
		"המסע של טיפת המים",
		"45 דקות",
		"נושא: מחזור המים",
		"מטרות למידה",
		"• לתאר אידוי",
		"פתיחה",
		"ניצול המרחב: מליאה",
		"מסך 1 · תמונה: ענן",
		"[איור מצורף]",
		"מסך 2 · סרטון: סרטון",
		"טיפה בענן",
		string(lesson.StatusDraft),
	} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered plan is missing %q", want)
		}
	}
	if strings.Contains(out, "הערכה ומדידה") {
		t.Error("empty assessment should not be rendered")
	}
	if strings.Count(out, "[איור מצורף]") != 1 {
		t.Error("only screens with images are marked")
	}
}

func TestList(t *testing.T) {
	st := theme.For("dark")
	if out := List(nil, st); !strings.Contains(out, "אין עדיין") {
		t.Errorf("empty list = %q", out)
	}

	published := samplePlan()
	published.ID = "lesson-2"
	published.Status = lesson.StatusPublished

	out := List([]*lesson.Plan{samplePlan(), published}, st)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if !strings.Contains(lines[0], "lesson-1") || !strings.Contains(lines[0], string(lesson.StatusDraft)) {
		t.Errorf("line 0 = %q", lines[0])
	}
	if !strings.Contains(lines[1], string(lesson.StatusPublished)) {
		t.Errorf("line 1 = %q", lines[1])
	}
}
