package planner

import (
	"encoding/json"
	"testing"

	"github.com/abhisek/lessoncraft/internal/lesson"
	"github.com/abhisek/lessoncraft/internal/llm"
)

func testForm() *lesson.FormData {
	return &lesson.FormData{
		Category:   "מדעים",
		UnitTopic:  "מחזור המים",
		GradeLevel: "חטיבת ביניים",
		Duration:   "45",
	}
}

func screen(typ lesson.ScreenType, desc string) map[string]any {
	return map[string]any{"type": string(typ), "description": desc}
}

func part(screens ...map[string]any) map[string]any {
	if screens == nil {
		screens = []map[string]any{}
	}
	return map[string]any{
		"content":    "התלמידים צופים בהדגמה ודנים בה.",
		"spaceUsage": string(lesson.SpaceWholeClass),
		"screens":    screens,
	}
}

// rawPlan is a model answer that disagrees with the form on every value the
// pipeline overrides.
func rawPlan(t *testing.T, opening, main, summary map[string]any) json.RawMessage {
	t.Helper()
	doc := map[string]any{
		"lessonTitle":        "המסע של טיפת המים",
		"targetAudience":     "כולם",
		"lessonDuration":     999,
		"topic":              "נושא שהמודל המציא",
		"priorKnowledge":     "מצבי צבירה",
		"placementInContent": "שיעור פתיחה ליחידה",
		"contentGoals":       []string{"הכרת שלבי מחזור המים"},
		"skillGoals":         []string{"תצפית"},
		"generalDescription": "שיעור חווייתי",
		"teachingStyle":      "למידת חקר",
		"tone":               "חוויתי ומשחקי",
		"learningObjectives": []string{"התלמידים יתארו את שלבי מחזור המים"},
		"materials":          []string{"קומקום", "צלחת קרה"},
		"immersiveExperienceIdea": map[string]any{
			"title":       "טיפה בענן",
			"description": "משחק תפקידים",
		},
		"assessment": map[string]any{"title": "כרטיס יציאה", "description": "שלוש שאלות"},
		"opening":    opening,
		"main":       main,
		"summary":    summary,
	}
	b, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	return b
}

func plainPlan(t *testing.T) json.RawMessage {
	return rawPlan(t,
		part(screen(lesson.ScreenVideo, "סרטון על אידוי")),
		part(screen(lesson.ScreenImage, "ענן מעל ים")),
		part(),
	)
}

func mockFor(content json.RawMessage) *llm.MockProvider {
	return llm.NewMockProvider(llm.MockResponse{Content: content})
}
