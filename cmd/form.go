package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/lessoncraft/internal/lesson"
)

// formFlag maps a command-line flag to a form field.
type formFlag struct {
	name  string
	usage string
	field func(*lesson.FormData) *string
}

var formFlags = []formFlag{
	{"category", "Subject area (תחום דעת)", func(f *lesson.FormData) *string { return &f.Category }},
	{"unit-topic", "Unit topic (נושא היחידה)", func(f *lesson.FormData) *string { return &f.UnitTopic }},
	{"grade", "Grade level (שכבת גיל)", func(f *lesson.FormData) *string { return &f.GradeLevel }},
	{"duration", "Lesson length in minutes (default 45)", func(f *lesson.FormData) *string { return &f.Duration }},
	{"topic", "Lesson topic, used verbatim as the plan topic", func(f *lesson.FormData) *string { return &f.Topic }},
	{"prior-knowledge", "Required prior knowledge", func(f *lesson.FormData) *string { return &f.PriorKnowledge }},
	{"placement", "Placement of the lesson in the unit", func(f *lesson.FormData) *string { return &f.PlacementInContent }},
	{"content-goals", "Content goals", func(f *lesson.FormData) *string { return &f.ContentGoals }},
	{"skill-goals", "Skill goals", func(f *lesson.FormData) *string { return &f.SkillGoals }},
	{"description", "General description", func(f *lesson.FormData) *string { return &f.GeneralDescription }},
	{"objectives", "Learning objectives", func(f *lesson.FormData) *string { return &f.Objectives }},
	{"key-concepts", "Key concepts, comma separated", func(f *lesson.FormData) *string { return &f.KeyConcepts }},
	{"style", "Teaching style (one of the known styles)", func(f *lesson.FormData) *string { return &f.TeachingStyle }},
	{"tone", "Lesson tone (one of the known tones)", func(f *lesson.FormData) *string { return &f.Tone }},
	{"success-metrics", "Success metrics", func(f *lesson.FormData) *string { return &f.SuccessMetrics }},
	{"inclusion", "Inclusion and differentiation notes", func(f *lesson.FormData) *string { return &f.Inclusion }},
	{"immersive-title", "Immersive experience title", func(f *lesson.FormData) *string { return &f.ImmersiveExperienceTitle }},
	{"immersive-description", "Immersive experience description", func(f *lesson.FormData) *string { return &f.ImmersiveExperienceDescription }},
}

func addFormFlags(cmd *cobra.Command) {
	for _, ff := range formFlags {
		cmd.Flags().String(ff.name, "", ff.usage)
	}
	for _, name := range lesson.PartNames {
		cmd.Flags().String(string(name)+"-content", "", fmt.Sprintf("What happens in the %s part", name))
		cmd.Flags().String(string(name)+"-space", "", fmt.Sprintf("Space usage in the %s part", name))
		cmd.Flags().StringArray(string(name)+"-screen", nil, fmt.Sprintf("Screen for the %s part as type:description (repeatable, up to 3)", name))
	}
}

// applyFormFlags copies every flag the user set onto form.
func applyFormFlags(cmd *cobra.Command, form *lesson.FormData) error {
	for _, ff := range formFlags {
		if cmd.Flags().Changed(ff.name) {
			v, _ := cmd.Flags().GetString(ff.name)
			*ff.field(form) = v
		}
	}
	for _, name := range lesson.PartNames {
		part := form.Part(name)
		if f := string(name) + "-content"; cmd.Flags().Changed(f) {
			part.Content, _ = cmd.Flags().GetString(f)
		}
		if f := string(name) + "-space"; cmd.Flags().Changed(f) {
			part.SpaceUsage, _ = cmd.Flags().GetString(f)
		}
		if f := string(name) + "-screen"; cmd.Flags().Changed(f) {
			raw, _ := cmd.Flags().GetStringArray(f)
			screens, err := parseScreens(raw)
			if err != nil {
				return fmt.Errorf("--%s: %w", f, err)
			}
			part.Screens = screens
		}
	}
	return nil
}

func parseScreens(raw []string) ([]lesson.ScreenInput, error) {
	out := make([]lesson.ScreenInput, 0, len(raw))
	for _, r := range raw {
		typ, desc, ok := strings.Cut(r, ":")
		if !ok {
			return nil, fmt.Errorf("screen %q is not type:description", r)
		}
		out = append(out, lesson.ScreenInput{Type: strings.TrimSpace(typ), Description: strings.TrimSpace(desc)})
	}
	return out, nil
}

// formFromFlags builds the form for a command. With --id the stored plan
// is the starting point and flags override it.
func formFromFlags(cmd *cobra.Command, e *env) (*lesson.FormData, error) {
	form := &lesson.FormData{}
	if cmd.Flags().Lookup("id") != nil {
		if id, _ := cmd.Flags().GetString("id"); id != "" {
			p, err := e.repo.Get(id)
			if err != nil {
				return nil, err
			}
			form = lesson.FormFromPlan(p)
		}
	}
	if err := applyFormFlags(cmd, form); err != nil {
		return nil, err
	}
	if cmd.Flags().Lookup("file") != nil {
		if path, _ := cmd.Flags().GetString("file"); path != "" {
			if err := form.AttachPath(path); err != nil {
				return nil, err
			}
		}
	}
	return form, nil
}
