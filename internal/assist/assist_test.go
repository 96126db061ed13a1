package assist

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lessoncraft/internal/lesson"
	"github.com/abhisek/lessoncraft/internal/llm"
	"github.com/abhisek/lessoncraft/internal/planner"
)

func newTestService(responses ...llm.MockResponse) (*Service, *llm.MockProvider) {
	mock := llm.NewMockProvider(responses...)
	return NewService(mock, DefaultConfig(), nil), mock
}

func reply(t *testing.T, v any) llm.MockResponse {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return llm.MockResponse{Content: b}
}

func form() *lesson.FormData {
	return &lesson.FormData{
		Category:   "היסטוריה",
		UnitTopic:  "מלחמת העצמאות",
		GradeLevel: "חטיבת ביניים",
	}
}

func TestSuggest_RequiresUnitTopic(t *testing.T) {
	svc, mock := newTestService()
	f := form()
	f.UnitTopic = ""

	_, err := svc.Suggest(context.Background(), lesson.FieldObjectives, f)

	var ve *lesson.ValidationError
	require.True(t, errors.As(err, &ve), "got %v", err)
	assert.Equal(t, "unitTopic", ve.Field)
	assert.Zero(t, mock.CallCount(), "no request is made without a unit topic")
}

func TestSuggest_UnknownField(t *testing.T) {
	svc, mock := newTestService()
	_, err := svc.Suggest(context.Background(), lesson.Field("color"), form())

	var ve *lesson.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Zero(t, mock.CallCount())
}

func TestSuggest_ReturnsCleanList(t *testing.T) {
	svc, mock := newTestService(reply(t, map[string]any{
		"suggestions": []string{" הבנת הרקע ", "", "ניתוח מקורות", "הבנת הרקע", "דיון בדילמות", "כתיבת יומן"},
	}))

	got, err := svc.Suggest(context.Background(), lesson.FieldObjectives, form())
	require.NoError(t, err)
	assert.Equal(t, []string{"הבנת הרקע", "ניתוח מקורות", "דיון בדילמות", "כתיבת יומן"}, got)

	call, _ := mock.LastCall()
	assert.Equal(t, SuggestSchema, call.Schema)
	assert.Equal(t, llm.TierFast, call.Model)
	assert.Contains(t, call.Messages[0].Content, "'objectives'")
	assert.Contains(t, call.Messages[0].Content, "מלחמת העצמאות")
}

func TestSuggest_EveryFieldHasPrompt(t *testing.T) {
	for _, f := range lesson.SuggestableFields {
		if _, ok := fieldPrompt[f]; !ok {
			t.Errorf("no suggestion prompt for %q", f)
		}
	}
	p := suggestPrompt(lesson.FieldTopic, form())
	assert.Contains(t, p, "המתאימים לחטיבת ביניים")
	assert.NotContains(t, p, "%!")
}

func TestSuggest_ImmersiveValuesParse(t *testing.T) {
	svc, mock := newTestService(reply(t, map[string]any{
		"suggestions": []string{
			"Title: חדר מצב 1948\nDescription: התלמידים מנהלים חדר מצב ומקבלים החלטות.",
			"מסע בזמן אל ירושלים הנצורה",
			"Title: עיתון המחתרת\nDescription: כתיבת עיתון מחתרת.",
		},
	}))

	got, err := svc.Suggest(context.Background(), lesson.FieldImmersiveExperience, form())
	require.NoError(t, err)
	require.Len(t, got, 3)

	call, _ := mock.LastCall()
	assert.Contains(t, call.Messages[0].Content, "Title:")

	first := lesson.ParseImmersive(got[0])
	assert.Equal(t, "חדר מצב 1948", first.Title)
	second := lesson.ParseImmersive(got[1])
	assert.Empty(t, second.Title)
	assert.Equal(t, "מסע בזמן אל ירושלים הנצורה", second.Description)
}

func TestAutofill_RequiresTopicAndGrade(t *testing.T) {
	svc, mock := newTestService()

	f := form()
	f.GradeLevel = ""
	_, err := svc.Autofill(context.Background(), f)
	var ve *lesson.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "gradeLevel", ve.Field)
	assert.Zero(t, mock.CallCount())
}

func TestAutofill_MergesWithoutClearing(t *testing.T) {
	svc, mock := newTestService(reply(t, map[string]any{
		"objectives":    "הבנת הגורמים למלחמה",
		"keyConcepts":   "",
		"teachingStyle": "למידה שיתופית",
		"tone":          "מעורר השראה",
		"opening": map[string]any{
			"content":    "סיפור אישי של לוחם",
			"spaceUsage": string(lesson.SpaceWholeClass),
			"screen":     map[string]any{"type": string(lesson.ScreenVideo), "description": "קטע ארכיון"},
		},
		"immersiveExperience": map[string]any{"title": "חדר מצב", "description": "סימולציה"},
	}))

	f := form()
	f.KeyConcepts = "הכרזת העצמאות"
	patch, err := svc.Autofill(context.Background(), f)
	require.NoError(t, err)

	lesson.MergeForm(f, patch)
	assert.Equal(t, "הבנת הגורמים למלחמה", f.Objectives)
	assert.Equal(t, "הכרזת העצמאות", f.KeyConcepts, "unaddressed fields are kept")
	assert.Equal(t, "למידה שיתופית", f.TeachingStyle)
	assert.Equal(t, "סימולציה", f.ImmersiveExperienceDescription)
	require.Len(t, f.Opening.Screens, 1)
	assert.Equal(t, string(lesson.ScreenVideo), f.Opening.Screens[0].Type)

	call, _ := mock.LastCall()
	assert.Equal(t, AutofillSchema, call.Schema)
	assert.Contains(t, call.Messages[0].Content, "שכבת גיל: חטיבת ביניים")
}

func TestAutofillSchema_RequiresEveryProperty(t *testing.T) {
	def := AutofillSchema.Definition
	props := def["properties"].(map[string]any)
	assert.Len(t, def["required"], len(props))
	assert.Equal(t, false, def["additionalProperties"])

	tone := props["tone"].(map[string]any)
	assert.Len(t, tone["enum"], len(lesson.Tones))
}

func TestChat_TextReply(t *testing.T) {
	svc, mock := newTestService(reply(t, map[string]any{"text": "כדאי להתחיל בשאלה פתוחה.", "suggestions": nil}))

	got, err := svc.Chat(context.Background(), "איך לפתוח את השיעור?", form())
	require.NoError(t, err)
	assert.Equal(t, "כדאי להתחיל בשאלה פתוחה.", got.Text)
	assert.Nil(t, got.Suggestions)

	call, _ := mock.LastCall()
	assert.Contains(t, call.Messages[0].Content, "איך לפתוח את השיעור?")
	assert.Contains(t, call.Messages[0].Content, "מטרות השיעור (objectives): לא הוגדר")
}

func TestChat_FieldSuggestions(t *testing.T) {
	svc, _ := newTestService(reply(t, map[string]any{
		"text": nil,
		"suggestions": map[string]any{
			"field":     "keyConcepts",
			"fieldName": "",
			"values":    []string{"עלייה", "מנדט", "חלוקה"},
		},
	}))

	got, err := svc.Chat(context.Background(), "תן לי מושגי מפתח", form())
	require.NoError(t, err)
	require.NotNil(t, got.Suggestions)
	assert.Equal(t, lesson.FieldKeyConcepts, got.Suggestions.Field)
	assert.Equal(t, lesson.FieldKeyConcepts.Label(), got.Suggestions.FieldName)
	assert.Len(t, got.Suggestions.Values, 3)

	f := form()
	for _, v := range got.Suggestions.Values {
		require.NoError(t, lesson.ApplySuggestion(f, got.Suggestions.Field, v))
	}
	assert.Equal(t, "עלייה, מנדט, חלוקה", f.KeyConcepts)
}

func TestChat_EmptyReplyFallsBack(t *testing.T) {
	cases := map[string]any{
		"nulls":         map[string]any{"text": nil, "suggestions": nil},
		"blank text":    map[string]any{"text": "  ", "suggestions": nil},
		"unknown field": map[string]any{"text": nil, "suggestions": map[string]any{"field": "color", "fieldName": "צבע", "values": []string{"אדום"}}},
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			svc, _ := newTestService(reply(t, body))
			got, err := svc.Chat(context.Background(), "?", form())
			require.NoError(t, err)
			assert.Equal(t, FallbackReply, got.Text)
			assert.Nil(t, got.Suggestions)
		})
	}
}

func TestChat_EmptyMessage(t *testing.T) {
	svc, mock := newTestService()
	_, err := svc.Chat(context.Background(), "   ", form())
	var ve *lesson.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Zero(t, mock.CallCount())
}

func TestAssist_Failures(t *testing.T) {
	t.Run("no provider", func(t *testing.T) {
		svc := NewService(nil, DefaultConfig(), nil)
		_, err := svc.Suggest(context.Background(), lesson.FieldTone, form())
		var ge *lesson.GenerationError
		require.True(t, errors.As(err, &ge))
		assert.Equal(t, planner.MissingKeyMessage, ge.Message)
	})

	t.Run("backend error", func(t *testing.T) {
		svc, _ := newTestService(llm.MockResponse{Err: errors.New("connection reset")})
		_, err := svc.Chat(context.Background(), "שלום", form())
		var ge *lesson.GenerationError
		require.True(t, errors.As(err, &ge))
		assert.Equal(t, "chat", ge.Op)
	})

	t.Run("malformed", func(t *testing.T) {
		svc, _ := newTestService(llm.MockResponse{Content: []byte(`[1,2`)})
		_, err := svc.Autofill(context.Background(), form())
		var inv *llm.ErrInvalidResponse
		require.True(t, errors.As(err, &inv))
	})
}
