package llm

import (
	"testing"

	"google.golang.org/genai"
)

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-flash", "gemini-2.5-flash"},
		{"gemini-pro", "gemini-2.5-pro"},
		{TierFast, "gemini-2.5-flash"},
		{TierPro, "gemini-2.5-pro"},
		{"gemini-2.0-flash", "gemini-2.0-flash"}, // Pass-through
	}
	for _, tt := range tests {
		got := resolveModel(tt.input, geminiModels)
		if got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestGeminiResolveOverride(t *testing.T) {
	p := &GeminiProvider{model: "gemini-2.5-flash"}
	if got := p.resolve(""); got != "gemini-2.5-flash" {
		t.Fatalf("resolve(\"\") = %q", got)
	}
	if got := p.resolve(TierPro); got != "gemini-2.5-pro" {
		t.Fatalf("resolve(pro) = %q", got)
	}
}

func TestBuildGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"lessonTitle":   map[string]any{"type": "string"},
			"duration":      map[string]any{"type": "integer"},
			"teachingStyle": map[string]any{"type": "string", "enum": []any{"הוראה ישירה", "למידה מבוססת חקר", "למידה שיתופית"}},
			"learningGoals": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
		"required": []any{"lessonTitle", "duration"},
	}

	schema := buildGeminiSchema(def)

	if schema.Type != genai.TypeObject {
		t.Fatalf("expected OBJECT type, got %s", schema.Type)
	}
	if len(schema.Properties) != 4 {
		t.Fatalf("expected 4 properties, got %d", len(schema.Properties))
	}
	if schema.Properties["lessonTitle"].Type != genai.TypeString {
		t.Fatalf("expected STRING for lessonTitle, got %s", schema.Properties["lessonTitle"].Type)
	}
	if schema.Properties["duration"].Type != genai.TypeInteger {
		t.Fatalf("expected INTEGER for duration, got %s", schema.Properties["duration"].Type)
	}
	if len(schema.Properties["teachingStyle"].Enum) != 3 {
		t.Fatalf("expected 3 enum values, got %d", len(schema.Properties["teachingStyle"].Enum))
	}
	if schema.Properties["learningGoals"].Type != genai.TypeArray {
		t.Fatalf("expected ARRAY for learningGoals, got %s", schema.Properties["learningGoals"].Type)
	}
	if schema.Properties["learningGoals"].Items.Type != genai.TypeString {
		t.Fatalf("expected STRING for learningGoals items, got %s", schema.Properties["learningGoals"].Items.Type)
	}
	if len(schema.Required) != 2 {
		t.Fatalf("expected 2 required fields, got %d", len(schema.Required))
	}
}

func TestBuildGeminiSchema_NullableAndBounds(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"text": map[string]any{"type": []any{"string", "null"}},
			"screens": map[string]any{
				"type":     "array",
				"maxItems": 3,
				"minItems": float64(1),
				"items":    map[string]any{"type": "object"},
			},
		},
	}

	schema := buildGeminiSchema(def)

	text := schema.Properties["text"]
	if text.Type != genai.TypeString {
		t.Fatalf("expected STRING for text, got %s", text.Type)
	}
	if text.Nullable == nil || !*text.Nullable {
		t.Fatal("expected text to be nullable")
	}
	screens := schema.Properties["screens"]
	if screens.MaxItems == nil || *screens.MaxItems != 3 {
		t.Fatalf("expected maxItems 3, got %v", screens.MaxItems)
	}
	if screens.MinItems == nil || *screens.MinItems != 1 {
		t.Fatalf("expected minItems 1, got %v", screens.MinItems)
	}
	if schema.Nullable != nil {
		t.Fatal("object should not be nullable")
	}
}

func TestBuildGeminiContents_Attachments(t *testing.T) {
	contents := buildGeminiContents([]Message{
		{
			Role:        RoleUser,
			Content:     "בנה שיעור",
			Attachments: []Attachment{{Name: "a.pdf", MIMEType: "application/pdf", Data: []byte("%PDF")}},
		},
		{Role: RoleAssistant, Content: "ok"},
	})

	if len(contents) != 2 {
		t.Fatalf("expected 2 contents, got %d", len(contents))
	}
	user := contents[0]
	if user.Role != "user" || len(user.Parts) != 2 {
		t.Fatalf("unexpected user content: role=%s parts=%d", user.Role, len(user.Parts))
	}
	if user.Parts[0].InlineData == nil || user.Parts[0].InlineData.MIMEType != "application/pdf" {
		t.Fatal("expected inline PDF part first")
	}
	if user.Parts[1].Text != "בנה שיעור" {
		t.Fatalf("expected prompt text last, got %q", user.Parts[1].Text)
	}
	if contents[1].Role != "model" {
		t.Fatalf("assistant role = %q, want model", contents[1].Role)
	}
}
