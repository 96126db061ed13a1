package assist

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/lessoncraft/internal/lesson"
	"github.com/abhisek/lessoncraft/internal/llm"
)

// FallbackReply replaces an answer that carries neither text nor
// suggestions.
const FallbackReply = "מצטער, לא הצלחתי להבין את הבקשה. אפשר לנסח מחדש?"

const chatSystem = `את/ה יועץ/ת פדגוגי/ת מומחה/ית המובנה/ית בממשק ליצירת שיעורים. התפקיד שלך הוא לסייע למורה שיוצר/ת שיעור.
התשובות שלך חייבות להיות בעברית בלבד.

--- הנחיות לתגובה ---
1. נתח את שאלת המשתמש. האם זו שאלה כללית או בקשה להצעות עבור שדה ספציפי בטופס?
2. אם זו שאלה כללית: ענה תשובה מועילה ותמציתית בשדה "text" והשאר את "suggestions" ריק (null).
3. אם זו בקשה להצעות לשדה מסוים (למשל "תן לי רעיונות למטרות"): זהה את השדה המבוקש, צור 3 הצעות קצרות ורלוונטיות בשדה "suggestions" והשאר את "text" ריק (null).
4. עבור השדה immersiveExperience כתוב כל הצעה בשתי שורות: "Title: ..." ו-"Description: ...".
5. התשובה שלך חייבת להיות אובייקט JSON שתואם לסכמה שסופקה.`

// ChatSchema lets the model answer with free text or with a suggestion
// bundle for one form field. Both members are nullable.
var ChatSchema = &llm.Schema{
	Name:        "lesson-chat",
	Description: "Lesson assistant reply",
	Definition: object(map[string]any{
		"text": map[string]any{
			"type":        []any{"string", "null"},
			"description": "תגובה טקסטואלית לשאלת המשתמש. השתמש בשדה זה לתשובות כלליות.",
		},
		"suggestions": map[string]any{
			"type":        []any{"object", "null"},
			"description": "השתמש בשדה זה אם המשתמש מבקש הצעות לשדה ספציפי.",
			"properties": map[string]any{
				"field":     enum("מזהה השדה עבורו ניתנות ההצעות.", lesson.EnumValues(lesson.SuggestableFields)),
				"fieldName": text("שם השדה בעברית, כפי שהוא מופיע בטופס."),
				"values": map[string]any{
					"type":        "array",
					"items":       map[string]any{"type": "string"},
					"description": "מערך של 3 הצעות טקסט קצרות.",
				},
			},
			"required":             []any{"field", "fieldName", "values"},
			"additionalProperties": false,
		},
	}),
}

// ChatSuggestion is a set of candidate values for one form field.
type ChatSuggestion struct {
	Field     lesson.Field `json:"field"`
	FieldName string       `json:"fieldName"`
	Values    []string     `json:"values"`
}

// Reply is the assistant's answer. Text, Suggestions or both may be set;
// a Reply returned by Chat is never empty.
type Reply struct {
	Text        string          `json:"text,omitempty"`
	Suggestions *ChatSuggestion `json:"suggestions,omitempty"`
}

// Chat answers a free-text message in the context of the current form. The
// model decides whether the message is a question or a request for field
// suggestions.
func (s *Service) Chat(ctx context.Context, message string, form *lesson.FormData) (*Reply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, &lesson.ValidationError{Field: "message", Message: "יש לכתוב הודעה."}
	}

	var raw struct {
		Text        *string         `json:"text"`
		Suggestions *ChatSuggestion `json:"suggestions"`
	}
	if err := s.call(ctx, llm.PurposeChat, chatSystem, chatPrompt(message, form), ChatSchema, &raw); err != nil {
		return nil, err
	}

	reply := &Reply{}
	if raw.Text != nil {
		reply.Text = strings.TrimSpace(*raw.Text)
	}
	if sg := raw.Suggestions; sg != nil && sg.Field.Valid() {
		sg.Values = clean(sg.Values, MaxSuggestions)
		if len(sg.Values) > 0 {
			if sg.FieldName == "" {
				sg.FieldName = sg.Field.Label()
			}
			reply.Suggestions = sg
		}
	} else if sg != nil {
		s.log.Warn("chat suggestion for unknown field dropped", "field", sg.Field)
	}

	if reply.Text == "" && reply.Suggestions == nil {
		reply.Text = FallbackReply
	}
	return reply, nil
}

func chatPrompt(message string, form *lesson.FormData) string {
	const unset = "לא הוגדר"
	var b strings.Builder
	b.WriteString("--- הקשר השיעור הנוכחי (ייתכן שחלק מהשדות ריקים) ---\n")
	fmt.Fprintf(&b, "תחום דעת: %s\n", orDefault(form.Category, unset))
	fmt.Fprintf(&b, "נושא היחידה: %s\n", orDefault(form.UnitTopic, unset))
	fmt.Fprintf(&b, "שכבת גיל: %s\n", orDefault(form.GradeLevel, unset))
	for _, f := range lesson.SuggestableFields {
		fmt.Fprintf(&b, "%s (%s): %s\n", f.Label(), f, orDefault(f.Value(form), unset))
	}
	fmt.Fprintf(&b, "---\n\nהמשתמש שאל: \"%s\"", message)
	return b.String()
}
