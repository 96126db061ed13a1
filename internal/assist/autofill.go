package assist

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/abhisek/lessoncraft/internal/lesson"
	"github.com/abhisek/lessoncraft/internal/llm"
)

const autofillSystem = `את/ה עוזר/ת פדגוגי/ת יצירתי/ת שממלא/ת טופס ליצירת מערך שיעור.
התוכן צריך להיות ממוקד, מעשי ומתאים להקשר. כל התוכן חייב להיות בעברית. הפלט חייב להיות אובייקט JSON התואם לסכמה שסופקה.`

func text(desc string) map[string]any {
	return map[string]any{"type": "string", "description": desc}
}

func enum(desc string, values []any) map[string]any {
	return map[string]any{"type": "string", "enum": values, "description": desc}
}

func object(props map[string]any) map[string]any {
	required := make([]any, 0, len(props))
	for _, k := range slices.Sorted(maps.Keys(props)) {
		required = append(required, k)
	}
	return map[string]any{
		"type":                 "object",
		"properties":           props,
		"required":             required,
		"additionalProperties": false,
	}
}

func partPatchProp(which string) map[string]any {
	return object(map[string]any{
		"content":    text(fmt.Sprintf("תיאור קצר של מה שקורה ב%s.", which)),
		"spaceUsage": enum("אופן ניצול המרחב בכיתה.", lesson.EnumValues(lesson.SpaceUsages)),
		"screen": object(map[string]any{
			"type":        enum("סוג המסך.", lesson.EnumValues(lesson.ScreenTypes)),
			"description": text("מה מוצג במסך."),
		}),
	})
}

// AutofillSchema is the partial-form contract returned by Autofill. Every
// field is an independent mini-schema; vocabulary-bound fields are enums.
var AutofillSchema = &llm.Schema{
	Name:        "form-autofill",
	Description: "Suggested values for the lesson form",
	Definition: object(map[string]any{
		"objectives":         text("טקסט קצר וברור המתאר 2-3 מטרות עיקריות לשיעור."),
		"keyConcepts":        text("רשימה של 3-5 מושגי מפתח עיקריים, מופרדים בפסיקים."),
		"teachingStyle":      enum("סגנון ההוראה המתאים ביותר לנושא ולגיל.", lesson.EnumValues(lesson.TeachingStyles)),
		"tone":               enum("הטון המתאים ביותר לשיעור.", lesson.EnumValues(lesson.Tones)),
		"successMetrics":     text("דרך אחת או שתיים למדוד את הצלחת השיעור."),
		"inclusion":          text("רעיון אחד להתאמת השיעור לתלמידים שונים."),
		"priorKnowledge":     text("הידע הקודם הנדרש מהתלמידים."),
		"placementInContent": text("מיקום השיעור ברצף התוכני של היחידה."),
		"contentGoals":       text("מטרות התוכן של השיעור."),
		"skillGoals":         text("המיומנויות שהתלמידים יתרגלו."),
		"generalDescription": text("תיאור כללי של השיעור בשניים-שלושה משפטים."),
		"opening":            partPatchProp("פתיחת השיעור"),
		"main":               partPatchProp("גוף השיעור"),
		"summary":            partPatchProp("סיכום השיעור"),
		"immersiveExperience": object(map[string]any{
			"title":       text("שם קצר לחוויה האימרסיבית."),
			"description": text("תיאור החוויה האימרסיבית."),
		}),
	}),
}

// Autofill proposes values for most optional form fields from the unit
// topic and grade level. The caller merges the patch with lesson.MergeForm,
// which never clears fields the patch leaves empty.
func (s *Service) Autofill(ctx context.Context, form *lesson.FormData) (*lesson.FormPatch, error) {
	if strings.TrimSpace(form.UnitTopic) == "" {
		return nil, required("unitTopic")
	}
	if strings.TrimSpace(form.GradeLevel) == "" {
		return nil, required("gradeLevel")
	}

	var b strings.Builder
	b.WriteString("בהינתן נושא השיעור ושכבת הגיל, ספק תוכן מתאים לכל אחד משדות הטופס.\n\n--- פרטי השיעור ---\n")
	fmt.Fprintf(&b, "נושא היחידה: %s\n", form.UnitTopic)
	if t := strings.TrimSpace(form.Topic); t != "" {
		fmt.Fprintf(&b, "נושא השיעור: %s\n", t)
	}
	if c := strings.TrimSpace(form.Category); c != "" {
		fmt.Fprintf(&b, "תחום דעת: %s\n", c)
	}
	fmt.Fprintf(&b, "שכבת גיל: %s\n", form.GradeLevel)

	var patch lesson.FormPatch
	if err := s.call(ctx, llm.PurposeAutofill, autofillSystem, b.String(), AutofillSchema, &patch); err != nil {
		return nil, err
	}
	return &patch, nil
}

func required(field string) error {
	return &lesson.ValidationError{
		Field:   field,
		Message: fmt.Sprintf("יש למלא את השדה '%s'.", lesson.Label(field)),
	}
}
