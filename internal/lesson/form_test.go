package lesson

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validForm() *FormData {
	return &FormData{
		Category:   "מדעים",
		UnitTopic:  "מחזור המים",
		GradeLevel: "כיתות ה-ו",
	}
}

func TestValidate_RequiredFields(t *testing.T) {
	tests := []struct {
		name  string
		clear func(*FormData)
		field string
	}{
		{"category", func(f *FormData) { f.Category = "" }, "category"},
		{"unit topic", func(f *FormData) { f.UnitTopic = "" }, "unitTopic"},
		{"grade level", func(f *FormData) { f.GradeLevel = "" }, "gradeLevel"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validForm()
			tt.clear(f)
			err := f.Validate()

			var ve *ValidationError
			require.True(t, errors.As(err, &ve), "got %v", err)
			assert.Equal(t, tt.field, ve.Field)
			assert.Contains(t, ve.Message, Label(tt.field))
		})
	}
}

func TestValidate_OK(t *testing.T) {
	f := validForm()
	f.TeachingStyle = "כיתה הפוכה"
	f.Opening = PartInput{
		SpaceUsage: "מליאה",
		Screens:    []ScreenInput{{Type: "תמונה", Description: "ענן"}, {}},
	}
	assert.NoError(t, f.Validate())
}

func TestValidate_Vocabulary(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*FormData)
	}{
		{"screen type", func(f *FormData) { f.Main.Screens = []ScreenInput{{Type: "וידאו"}} }},
		{"space usage", func(f *FormData) { f.Summary.SpaceUsage = "בחוץ" }},
		{"teaching style", func(f *FormData) { f.TeachingStyle = "הרצאה" }},
		{"tone", func(f *FormData) { f.Tone = "כועס" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validForm()
			tt.mutate(f)
			var ve *ValidationError
			assert.True(t, errors.As(f.Validate(), &ve))
		})
	}
}

func TestValidate_MaxScreens(t *testing.T) {
	f := validForm()
	f.Main.Screens = make([]ScreenInput, MaxScreens+1)
	err := f.Validate()

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "screens", ve.Field)
}

func TestFormFromPlan(t *testing.T) {
	p := &Plan{
		ID:                 "lesson-1",
		Topic:              "אידוי",
		UnitTopic:          "מחזור המים",
		Category:           "מדעים",
		TargetAudience:     "כיתות ה-ו",
		LessonDuration:     60,
		ContentGoals:       []string{"א", "ב"},
		LearningObjectives: []string{"ג"},
		Main: Part{
			Content:    "גוף",
			SpaceUsage: SpaceGroupWork,
			Screens:    []Screen{{Type: ScreenImage, Description: "ענן", ImageURL: "data:image/png;base64,AAA"}},
		},
	}

	f := FormFromPlan(p)
	assert.True(t, f.IsUpdate())
	assert.Equal(t, "60", f.Duration)
	assert.Equal(t, "כיתות ה-ו", f.GradeLevel)
	assert.Equal(t, "א\nב", f.ContentGoals)
	assert.Equal(t, "ג", f.Objectives)
	assert.Equal(t, []ScreenInput{{Type: "תמונה", Description: "ענן"}}, f.Main.Screens)
	assert.NoError(t, f.Validate())
}
