package lesson

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ScreenInput is a screen as entered in the form, before validation
// against the screen-type vocabulary.
type ScreenInput struct {
	Type        string `json:"type" validate:"omitempty,screentype"`
	Description string `json:"description"`
}

// PartInput is the form state of one lesson part.
type PartInput struct {
	Content    string        `json:"content"`
	SpaceUsage string        `json:"spaceUsage" validate:"omitempty,spaceusage"`
	Screens    []ScreenInput `json:"screens" validate:"max=3,dive"`
}

// FormData is the transient user input for a lesson plan. An empty ID means
// "create"; a non-empty ID means "regenerate plan ID in place".
type FormData struct {
	ID string `json:"id,omitempty"`

	Category           string `json:"category" validate:"required"`
	UnitTopic          string `json:"unitTopic" validate:"required"`
	GradeLevel         string `json:"gradeLevel" validate:"required"`
	Duration           string `json:"duration,omitempty"`
	PriorKnowledge     string `json:"priorKnowledge,omitempty"`
	PlacementInContent string `json:"placementInContent,omitempty"`
	ContentGoals       string `json:"contentGoals,omitempty"`
	SkillGoals         string `json:"skillGoals,omitempty"`
	GeneralDescription string `json:"generalDescription,omitempty"`

	Opening PartInput `json:"opening"`
	Main    PartInput `json:"main"`
	Summary PartInput `json:"summary"`

	Topic                          string `json:"topic,omitempty"`
	Objectives                     string `json:"objectives,omitempty"`
	KeyConcepts                    string `json:"keyConcepts,omitempty"`
	TeachingStyle                  string `json:"teachingStyle,omitempty" validate:"omitempty,teachingstyle"`
	Tone                           string `json:"tone,omitempty" validate:"omitempty,tone"`
	SuccessMetrics                 string `json:"successMetrics,omitempty"`
	Inclusion                      string `json:"inclusion,omitempty"`
	ImmersiveExperienceTitle       string `json:"immersiveExperienceTitle,omitempty"`
	ImmersiveExperienceDescription string `json:"immersiveExperienceDescription,omitempty"`

	File *File `json:"-"`
}

// fieldLabels are the Hebrew form labels used in user-visible messages.
var fieldLabels = map[string]string{
	"category":      "תחום דעת",
	"unitTopic":     "נושא היחידה",
	"gradeLevel":    "שכבת גיל",
	"topic":         "נושא השיעור",
	"teachingStyle": "סגנון הוראה",
	"tone":          "טון השיעור",
	"spaceUsage":    "אופן ניצול המרחב",
	"screens":       "מסכים",
	"type":          "סוג מסך",
}

// Label returns the Hebrew label of a form field, falling back to the
// field name itself.
func Label(field string) string {
	if l, ok := fieldLabels[field]; ok {
		return l
	}
	return field
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func formValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		mustRegister(v, "screentype", func(fl validator.FieldLevel) bool {
			return ScreenType(fl.Field().String()).Valid()
		})
		mustRegister(v, "spaceusage", func(fl validator.FieldLevel) bool {
			return SpaceUsage(fl.Field().String()).Valid()
		})
		mustRegister(v, "teachingstyle", func(fl validator.FieldLevel) bool {
			return IsTeachingStyle(fl.Field().String())
		})
		mustRegister(v, "tone", func(fl validator.FieldLevel) bool {
			return IsTone(fl.Field().String())
		})
		validate = v
	})
	return validate
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validation: %v", tag, err))
	}
}

// Validate checks required fields and vocabulary-bound fields. The first
// violation is returned as a *ValidationError.
func (f *FormData) Validate() error {
	err := formValidator().Struct(f)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &ValidationError{Message: "הטופס אינו תקין."}
	}
	fe := verrs[0]
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("יש למלא את השדה '%s'.", Label(field)),
		}
	case "max":
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("ניתן להגדיר עד %d מסכים לכל חלק בשיעור.", MaxScreens),
		}
	default:
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("הערך '%v' אינו חוקי בשדה '%s'.", fe.Value(), Label(field)),
		}
	}
}

// IsUpdate reports whether the form regenerates an existing plan.
func (f *FormData) IsUpdate() bool {
	return f.ID != ""
}

// Part returns the named part input, or nil for an unknown name.
func (f *FormData) Part(name PartName) *PartInput {
	switch name {
	case PartOpening:
		return &f.Opening
	case PartMain:
		return &f.Main
	case PartSummary:
		return &f.Summary
	}
	return nil
}

// Attach sets the form's file. Files that fail the size or type checks
// never reach the form; see NewFile.
func (f *FormData) Attach(file *File) {
	f.File = file
}

// AttachPath opens the file at path and attaches it. On error the form's
// current file is left untouched.
func (f *FormData) AttachPath(path string) error {
	file, err := OpenFile(path)
	if err != nil {
		return err
	}
	f.File = file
	return nil
}

// RemoveFile detaches any attached file.
func (f *FormData) RemoveFile() {
	f.File = nil
}

// FormFromPlan rebuilds form state from a stored plan for edit-and-regenerate.
func FormFromPlan(p *Plan) *FormData {
	f := &FormData{
		ID:                             p.ID,
		Category:                       p.Category,
		UnitTopic:                      p.UnitTopic,
		GradeLevel:                     p.TargetAudience,
		Duration:                       fmt.Sprintf("%d", p.LessonDuration),
		PriorKnowledge:                 p.PriorKnowledge,
		PlacementInContent:             p.PlacementInContent,
		ContentGoals:                   strings.Join(p.ContentGoals, "\n"),
		SkillGoals:                     strings.Join(p.SkillGoals, "\n"),
		GeneralDescription:             p.GeneralDescription,
		Topic:                          p.Topic,
		Objectives:                     strings.Join(p.LearningObjectives, "\n"),
		TeachingStyle:                  p.TeachingStyle,
		Tone:                           p.Tone,
		ImmersiveExperienceTitle:       p.ImmersiveExperienceIdea.Title,
		ImmersiveExperienceDescription: p.ImmersiveExperienceIdea.Description,
	}
	for _, name := range PartNames {
		src := p.Part(name)
		dst := f.Part(name)
		dst.Content = src.Content
		dst.SpaceUsage = string(src.SpaceUsage)
		for _, s := range src.Screens {
			dst.Screens = append(dst.Screens, ScreenInput{Type: string(s.Type), Description: s.Description})
		}
	}
	return f
}
