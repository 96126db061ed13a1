// Package render draws lesson plans for the terminal.
package render

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lessoncraft/internal/lesson"
	"github.com/abhisek/lessoncraft/internal/ui/theme"
)

var partTitles = map[lesson.PartName]string{
	lesson.PartOpening: "פתיחה",
	lesson.PartMain:    "גוף השיעור",
	lesson.PartSummary: "סיכום",
}

// Plan renders a full lesson plan. width bounds the wrapped text; zero
// disables wrapping.
func Plan(p *lesson.Plan, st theme.Styles, width int) string {
	body := st.Body
	if width > 0 {
		body = body.Width(width)
	}

	var sections []string
	sections = append(sections,
		st.Title.Render(p.LessonTitle),
		st.Subtitle.Render(fmt.Sprintf("%s • %d דקות • %s", p.TargetAudience, p.LessonDuration, p.Category)),
		status(p, st)+"  "+st.Hint.Render(p.ID),
	)
	if p.Topic != "" {
		sections = append(sections, body.Render("נושא: "+p.Topic))
	}
	if p.GeneralDescription != "" {
		sections = append(sections, body.Render(p.GeneralDescription))
	}

	sections = appendList(sections, st, body, "מטרות למידה", p.LearningObjectives)
	sections = appendList(sections, st, body, "מטרות תוכן", p.ContentGoals)
	sections = appendList(sections, st, body, "מטרות מיומנות", p.SkillGoals)
	sections = appendList(sections, st, body, "חומרים וציוד", p.Materials)

	if p.PriorKnowledge != "" {
		sections = append(sections, st.Section.Render("ידע קודם"), body.Render(p.PriorKnowledge))
	}

	sections = append(sections, st.Section.Render("מהלך השיעור"))
	for _, name := range lesson.PartNames {
		sections = append(sections, part(partTitles[name], p.Part(name), st, body))
	}
	for i, a := range p.LegacyActivities {
		sections = append(sections, st.Card.Render(
			st.Badge.Render(fmt.Sprintf("%d. %s (%d דק')", i+1, a.Title, a.Duration))+"\n"+body.Render(a.Description)))
	}

	sections = appendIdea(sections, st, body, "חוויה אימרסיבית", p.ImmersiveExperienceIdea)
	sections = appendIdea(sections, st, body, "הערכה ומדידה", p.Assessment)

	if p.TeachingStyle != "" || p.Tone != "" {
		sections = append(sections, st.Hint.Render(strings.Trim(p.TeachingStyle+" • "+p.Tone, " •")))
	}
	return strings.Join(sections, "\n")
}

func status(p *lesson.Plan, st theme.Styles) string {
	if p.Published() {
		return st.Published.Render(string(lesson.StatusPublished))
	}
	return st.Draft.Render(string(lesson.StatusDraft))
}

func appendList(sections []string, st theme.Styles, body lipgloss.Style, title string, items []string) []string {
	if len(items) == 0 {
		return sections
	}
	sections = append(sections, st.Section.Render(title))
	for _, it := range items {
		sections = append(sections, body.Render("• "+it))
	}
	return sections
}

func appendIdea(sections []string, st theme.Styles, body lipgloss.Style, title string, idea lesson.Idea) []string {
	if idea.Title == "" && idea.Description == "" {
		return sections
	}
	return append(sections,
		st.Section.Render(title),
		st.Badge.Render(idea.Title),
		body.Render(idea.Description),
	)
}

func part(title string, pt *lesson.Part, st theme.Styles, body lipgloss.Style) string {
	lines := []string{st.Badge.Render(title)}
	if pt.SpaceUsage != "" {
		lines = append(lines, st.Hint.Render("ניצול המרחב: "+string(pt.SpaceUsage)))
	}
	if pt.Content != "" {
		lines = append(lines, body.Render(pt.Content))
	}
	for i, s := range pt.Screens {
		line := fmt.Sprintf("מסך %d · %s: %s", i+1, s.Type, s.Description)
		if s.ImageURL != "" {
			line += " " + st.Published.Render("[איור מצורף]")
		}
		lines = append(lines, body.Render(line))
	}
	return st.Card.Render(strings.Join(lines, "\n"))
}

// List renders one line per plan for the dashboard.
func List(plans []*lesson.Plan, st theme.Styles) string {
	if len(plans) == 0 {
		return st.Hint.Render("אין עדיין מערכי שיעור.")
	}
	lines := make([]string, 0, len(plans))
	for _, p := range plans {
		date := p.CreationDate
		if t := p.CreatedAt(); !t.IsZero() {
			date = t.Local().Format("2006-01-02")
		}
		lines = append(lines, fmt.Sprintf("%s  %s  %s  %s",
			st.Hint.Render(p.ID),
			status(p, st),
			st.Body.Render(p.LessonTitle),
			st.Subtitle.Render(date),
		))
	}
	return strings.Join(lines, "\n")
}
