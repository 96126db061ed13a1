// Package export renders lesson plans for external calendars.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/lessoncraft/internal/lesson"
)

const (
	icsDateLayout = "20060102T150405Z"
	uidDomain     = "immersive-lesson-creator.com"
	prodID        = "-//ImmersiveLessonCreator//EN"
)

var icsEscaper = strings.NewReplacer(
	`\`, `\\`,
	`,`, `\,`,
	`;`, `\;`,
	"\r\n", `\n`,
	"\n", `\n`,
)

// ICS renders plans as one VCALENDAR with a VEVENT per plan. The first
// lesson starts at start and each following lesson begins when the
// previous one ends. now is the DTSTAMP of every event.
func ICS(plans []*lesson.Plan, start, now time.Time) string {
	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:" + prodID,
	}

	at := start.UTC()
	for _, p := range plans {
		minutes := p.LessonDuration
		if minutes <= 0 {
			minutes = lesson.DefaultDuration
		}
		end := at.Add(time.Duration(minutes) * time.Minute)

		lines = append(lines,
			"BEGIN:VEVENT",
			fmt.Sprintf("UID:%s@%s", p.ID, uidDomain),
			"DTSTAMP:"+now.UTC().Format(icsDateLayout),
			"DTSTART:"+at.Format(icsDateLayout),
			"DTEND:"+end.Format(icsDateLayout),
			"SUMMARY:"+escape(p.LessonTitle),
			"DESCRIPTION:"+escape(description(p)),
			"END:VEVENT",
		)
		at = end
	}

	lines = append(lines, "END:VCALENDAR")
	return strings.Join(lines, "\r\n")
}

func description(p *lesson.Plan) string {
	var b strings.Builder
	b.WriteString("מטרות למידה:")
	for _, o := range p.LearningObjectives {
		b.WriteString("\n- ")
		b.WriteString(o)
	}
	b.WriteString("\n\nנושא: ")
	b.WriteString(p.Topic)
	return b.String()
}

func escape(s string) string {
	return icsEscaper.Replace(s)
}
