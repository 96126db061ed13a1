package lesson

import (
	"fmt"
	"strings"
)

// Field identifies a form field that the suggestion services can fill.
type Field string

const (
	FieldTopic               Field = "topic"
	FieldObjectives          Field = "objectives"
	FieldKeyConcepts         Field = "keyConcepts"
	FieldTeachingStyle       Field = "teachingStyle"
	FieldTone                Field = "tone"
	FieldSuccessMetrics      Field = "successMetrics"
	FieldInclusion           Field = "inclusion"
	FieldImmersiveExperience Field = "immersiveExperience"
	FieldPriorKnowledge      Field = "priorKnowledge"
	FieldContentGoals        Field = "contentGoals"
	FieldSkillGoals          Field = "skillGoals"
	FieldGeneralDescription  Field = "generalDescription"
	FieldOpeningContent      Field = "openingContent"
	FieldMainContent         Field = "mainContent"
	FieldSummaryContent      Field = "summaryContent"
)

// SuggestableFields lists every field the suggestion services accept.
var SuggestableFields = []Field{
	FieldTopic,
	FieldObjectives,
	FieldKeyConcepts,
	FieldTeachingStyle,
	FieldTone,
	FieldSuccessMetrics,
	FieldInclusion,
	FieldImmersiveExperience,
	FieldPriorKnowledge,
	FieldContentGoals,
	FieldSkillGoals,
	FieldGeneralDescription,
	FieldOpeningContent,
	FieldMainContent,
	FieldSummaryContent,
}

// MergeMode is how a chosen suggestion combines with the field's current value.
type MergeMode int

const (
	// MergeReplace overwrites single-value fields.
	MergeReplace MergeMode = iota
	// MergeAppendLine adds a "- " bullet line to list-like free text.
	MergeAppendLine
	// MergeAppendComma extends a comma-separated list.
	MergeAppendComma
)

var fieldMeta = map[Field]struct {
	label string
	mode  MergeMode
}{
	FieldTopic:               {"נושא השיעור", MergeReplace},
	FieldObjectives:          {"מטרות השיעור", MergeAppendLine},
	FieldKeyConcepts:         {"מושגי מפתח", MergeAppendComma},
	FieldTeachingStyle:       {"סגנון הוראה", MergeReplace},
	FieldTone:                {"טון השיעור", MergeReplace},
	FieldSuccessMetrics:      {"מדדי הצלחה", MergeAppendLine},
	FieldInclusion:           {"הכלה והתאמה", MergeAppendLine},
	FieldImmersiveExperience: {"חוויה אימרסיבית", MergeReplace},
	FieldPriorKnowledge:      {"ידע קודם", MergeAppendLine},
	FieldContentGoals:        {"מטרות תוכן", MergeAppendLine},
	FieldSkillGoals:          {"מטרות מיומנות", MergeAppendLine},
	FieldGeneralDescription:  {"תיאור כללי", MergeReplace},
	FieldOpeningContent:      {"תוכן הפתיחה", MergeReplace},
	FieldMainContent:         {"תוכן הגוף", MergeReplace},
	FieldSummaryContent:      {"תוכן הסיכום", MergeReplace},
}

// Valid reports whether f is a suggestable field.
func (f Field) Valid() bool {
	_, ok := fieldMeta[f]
	return ok
}

// Label returns the Hebrew label of the field.
func (f Field) Label() string {
	if m, ok := fieldMeta[f]; ok {
		return m.label
	}
	return string(f)
}

// MergeMode returns how suggestions are merged into the field.
func (f Field) MergeMode() MergeMode {
	return fieldMeta[f].mode
}

// Value returns the field's current text in form.
func (f Field) Value(form *FormData) string {
	if f == FieldImmersiveExperience {
		return FormatImmersive(form.ImmersiveExperienceTitle, form.ImmersiveExperienceDescription)
	}
	if p := f.target(form); p != nil {
		return *p
	}
	return ""
}

func (f Field) target(form *FormData) *string {
	switch f {
	case FieldTopic:
		return &form.Topic
	case FieldObjectives:
		return &form.Objectives
	case FieldKeyConcepts:
		return &form.KeyConcepts
	case FieldTeachingStyle:
		return &form.TeachingStyle
	case FieldTone:
		return &form.Tone
	case FieldSuccessMetrics:
		return &form.SuccessMetrics
	case FieldInclusion:
		return &form.Inclusion
	case FieldPriorKnowledge:
		return &form.PriorKnowledge
	case FieldContentGoals:
		return &form.ContentGoals
	case FieldSkillGoals:
		return &form.SkillGoals
	case FieldGeneralDescription:
		return &form.GeneralDescription
	case FieldOpeningContent:
		return &form.Opening.Content
	case FieldMainContent:
		return &form.Main.Content
	case FieldSummaryContent:
		return &form.Summary.Content
	}
	return nil
}

// ApplySuggestion merges a chosen suggestion into form according to the
// field's merge mode. The same rule applies whether the suggestion came from
// the field suggestion list or from the assistant chat.
func ApplySuggestion(form *FormData, field Field, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	switch field {
	case FieldImmersiveExperience:
		idea := ParseImmersive(value)
		form.ImmersiveExperienceTitle = idea.Title
		form.ImmersiveExperienceDescription = idea.Description
		return nil
	case FieldTeachingStyle:
		if !IsTeachingStyle(value) {
			return &ValidationError{Field: string(field), Message: fmt.Sprintf("'%s' אינו סגנון הוראה מוכר.", value)}
		}
	case FieldTone:
		if !IsTone(value) {
			return &ValidationError{Field: string(field), Message: fmt.Sprintf("'%s' אינו טון מוכר.", value)}
		}
	}

	target := field.target(form)
	if target == nil {
		return &ValidationError{Field: string(field), Message: fmt.Sprintf("השדה '%s' אינו נתמך.", field)}
	}
	*target = merge(*target, value, field.MergeMode())
	return nil
}

func merge(current, value string, mode MergeMode) string {
	current = strings.TrimSpace(current)
	if current == "" || mode == MergeReplace {
		return value
	}
	if hasEntry(current, value, mode) {
		return current
	}
	switch mode {
	case MergeAppendComma:
		return current + ", " + value
	default:
		return current + "\n- " + value
	}
}

// hasEntry reports whether value already appears as a whole entry of an
// appended field. Partial matches inside a longer entry do not count.
func hasEntry(current, value string, mode MergeMode) bool {
	value = strings.TrimSpace(value)
	sep := "\n"
	if mode == MergeAppendComma {
		sep = ","
	}
	for _, entry := range strings.Split(current, sep) {
		entry = strings.TrimSpace(entry)
		if mode != MergeAppendComma {
			entry = strings.TrimSpace(strings.TrimPrefix(entry, "-"))
		}
		if entry == value {
			return true
		}
	}
	return false
}

// PartPatch is the autofill result for one lesson part.
type PartPatch struct {
	Content    string      `json:"content"`
	SpaceUsage string      `json:"spaceUsage"`
	Screen     ScreenInput `json:"screen"`
}

// FormPatch is a partial form produced by autofill. Empty fields mean "not
// addressed" and never clear existing form values.
type FormPatch struct {
	Objectives          string    `json:"objectives"`
	KeyConcepts         string    `json:"keyConcepts"`
	TeachingStyle       string    `json:"teachingStyle"`
	Tone                string    `json:"tone"`
	SuccessMetrics      string    `json:"successMetrics"`
	Inclusion           string    `json:"inclusion"`
	PriorKnowledge      string    `json:"priorKnowledge"`
	PlacementInContent  string    `json:"placementInContent"`
	ContentGoals        string    `json:"contentGoals"`
	SkillGoals          string    `json:"skillGoals"`
	GeneralDescription  string    `json:"generalDescription"`
	Opening             PartPatch `json:"opening"`
	Main                PartPatch `json:"main"`
	Summary             PartPatch `json:"summary"`
	ImmersiveExperience Idea      `json:"immersiveExperience"`
}

// Part returns the named part patch, or nil for an unknown name.
func (p *FormPatch) Part(name PartName) *PartPatch {
	switch name {
	case PartOpening:
		return &p.Opening
	case PartMain:
		return &p.Main
	case PartSummary:
		return &p.Summary
	}
	return nil
}

// MergeForm is a field union: every non-empty value in patch overwrites the
// corresponding form value; everything else in form is left alone.
func MergeForm(form *FormData, patch *FormPatch) {
	if patch == nil {
		return
	}
	set(&form.Objectives, patch.Objectives)
	set(&form.KeyConcepts, patch.KeyConcepts)
	if IsTeachingStyle(patch.TeachingStyle) {
		form.TeachingStyle = patch.TeachingStyle
	}
	if IsTone(patch.Tone) {
		form.Tone = patch.Tone
	}
	set(&form.SuccessMetrics, patch.SuccessMetrics)
	set(&form.Inclusion, patch.Inclusion)
	set(&form.PriorKnowledge, patch.PriorKnowledge)
	set(&form.PlacementInContent, patch.PlacementInContent)
	set(&form.ContentGoals, patch.ContentGoals)
	set(&form.SkillGoals, patch.SkillGoals)
	set(&form.GeneralDescription, patch.GeneralDescription)
	set(&form.ImmersiveExperienceTitle, patch.ImmersiveExperience.Title)
	set(&form.ImmersiveExperienceDescription, patch.ImmersiveExperience.Description)

	for _, name := range PartNames {
		src := patch.Part(name)
		dst := form.Part(name)
		set(&dst.Content, src.Content)
		if SpaceUsage(src.SpaceUsage).Valid() {
			dst.SpaceUsage = src.SpaceUsage
		}
		mergeScreen(dst, src.Screen)
	}
}

func mergeScreen(dst *PartInput, s ScreenInput) {
	typ := strings.TrimSpace(s.Type)
	desc := strings.TrimSpace(s.Description)
	if typ == "" && desc == "" {
		return
	}
	if len(dst.Screens) == 0 {
		dst.Screens = append(dst.Screens, ScreenInput{})
	}
	first := &dst.Screens[0]
	if ScreenType(typ).Valid() {
		first.Type = typ
	}
	set(&first.Description, desc)
}

func set(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}
