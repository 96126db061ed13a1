package assist

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/lessoncraft/internal/lesson"
	"github.com/abhisek/lessoncraft/internal/llm"
)

const suggestSystem = `את/ה עוזר/ת פדגוגי/ת יצירתי/ת. המטרה שלך היא לספק הצעות תמציתיות ורלוונטיות עבור שדה בטופס מערך שיעור.
ספק 3-4 הצעות. **חשוב מאוד: כל ההצעות חייבות להיות בעברית בלבד.** הפלט חייב להיות אובייקט JSON התואם לסכמה שסופקה.`

// MaxSuggestions caps the list returned by Suggest.
const MaxSuggestions = 4

// SuggestSchema is the contract for a single-field suggestion list.
var SuggestSchema = &llm.Schema{
	Name:        "field-suggestions",
	Description: "Alternative values for one lesson form field",
	Definition: object(map[string]any{
		"suggestions": map[string]any{
			"type":        "array",
			"items":       map[string]any{"type": "string"},
			"minItems":    3,
			"maxItems":    MaxSuggestions,
			"description": "רשימה של 3-4 הצעות תמציתיות בעברית עבור השדה המבוקש.",
		},
	}),
}

// fieldPrompt is the per-field instruction. %s is replaced by the grade level.
var fieldPrompt = map[lesson.Field]string{
	lesson.FieldTopic:          "הצע נושאים יצירתיים לשיעורים המתאימים ל%s.",
	lesson.FieldObjectives:     "הצע מטרות למידה ברורות ומדידות.",
	lesson.FieldKeyConcepts:    "הצע מושגי מפתח לכיסוי בשיעור. רשום כל הצעה כמחרוזת אחת של מושגים מופרדים בפסיקים.",
	lesson.FieldTeachingStyle:  "הצע סגנונות הוראה מתאימים. בחר אך ורק מתוך הרשימה הזו: " + strings.Join(lesson.TeachingStyles, ", ") + ".",
	lesson.FieldTone:           "הצע טונים מתאימים לשיעור. בחר אך ורק מתוך הרשימה הזו: " + strings.Join(lesson.Tones, ", ") + ".",
	lesson.FieldSuccessMetrics: "הצע דרכים למדוד את הצלחת השיעור.",
	lesson.FieldInclusion:      "הצע אסטרטגיות הכללה והתאמה ללומדים מגוונים.",
	lesson.FieldImmersiveExperience: "הצע רעיונות לחוויה אימרסיבית בשיעור. כתוב כל הצעה בשתי שורות בדיוק:\n" +
		"Title: <שם קצר לחוויה>\nDescription: <תיאור החוויה>",
	lesson.FieldPriorKnowledge:     "הצע את הידע הקודם שהתלמידים צריכים כדי להשתתף בשיעור.",
	lesson.FieldContentGoals:       "הצע מטרות תוכן: מה התלמידים יידעו בסוף השיעור.",
	lesson.FieldSkillGoals:         "הצע מטרות מיומנות: אילו מיומנויות התלמידים יתרגלו.",
	lesson.FieldGeneralDescription: "הצע תיאורים כלליים קצרים של השיעור, בשניים-שלושה משפטים כל אחד.",
	lesson.FieldOpeningContent:     "הצע פעילויות פתיחה שמעוררות סקרנות ומחברות לנושא.",
	lesson.FieldMainContent:        "הצע פעילויות מרכזיות לגוף השיעור.",
	lesson.FieldSummaryContent:     "הצע פעילויות סיכום שמגבשות את הלמידה.",
}

// Suggest returns 3-4 short alternative values for one form field. The
// unit topic must be filled in first. For the immersive-experience field
// each value encodes a title and a description; lesson.ParseImmersive
// splits it.
func (s *Service) Suggest(ctx context.Context, field lesson.Field, form *lesson.FormData) ([]string, error) {
	if !field.Valid() {
		return nil, &lesson.ValidationError{
			Field:   string(field),
			Message: fmt.Sprintf("השדה '%s' אינו נתמך.", field),
		}
	}
	if strings.TrimSpace(form.UnitTopic) == "" {
		return nil, required("unitTopic")
	}

	var out struct {
		Suggestions []string `json:"suggestions"`
	}
	if err := s.call(ctx, llm.PurposeSuggest, suggestSystem, suggestPrompt(field, form), SuggestSchema, &out); err != nil {
		return nil, err
	}
	return clean(out.Suggestions, MaxSuggestions), nil
}

func suggestPrompt(field lesson.Field, form *lesson.FormData) string {
	var b strings.Builder
	b.WriteString("הקשר השיעור:\n")
	fmt.Fprintf(&b, "- נושא היחידה: %s\n", form.UnitTopic)
	fmt.Fprintf(&b, "- נושא: %s\n", orDefault(form.Topic, "לא צוין"))
	fmt.Fprintf(&b, "- שכבת גיל: %s\n", orDefault(form.GradeLevel, "לא צוין"))
	if current := strings.TrimSpace(field.Value(form)); current != "" {
		fmt.Fprintf(&b, "- ערך נוכחי בשדה: %s\n", current)
	}

	instr := fieldPrompt[field]
	if strings.Contains(instr, "%s") {
		instr = fmt.Sprintf(instr, orDefault(form.GradeLevel, "התלמידים"))
	}
	fmt.Fprintf(&b, "\nשדה לקבלת הצעות עבורו: '%s' (%s)\nהנחיה: %s", field, field.Label(), instr)
	return b.String()
}

// clean drops blank values and duplicates and keeps at most limit.
func clean(values []string, limit int) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
		if len(out) == limit {
			break
		}
	}
	return out
}

func orDefault(v, fallback string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return fallback
}
