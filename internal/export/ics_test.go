package export

import (
	"strings"
	"testing"
	"time"

	"github.com/abhisek/lessoncraft/internal/lesson"
)

func TestICS(t *testing.T) {
	start := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	plans := []*lesson.Plan{
		{
			ID:                 "lesson-1",
			LessonTitle:        "מים; אדים, ועננים",
			LessonDuration:     45,
			Topic:              "מחזור המים",
			LearningObjectives: []string{"לתאר אידוי", "להסביר עיבוי"},
		},
		{ID: "lesson-2", LessonTitle: "גשם", LessonDuration: 0},
	}

	got := ICS(plans, start, now)
	lines := strings.Split(got, "\r\n")

	want := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//ImmersiveLessonCreator//EN",
		"BEGIN:VEVENT",
		"UID:lesson-1@immersive-lesson-creator.com",
		"DTSTAMP:20260820T120000Z",
		"DTSTART:20260901T080000Z",
		"DTEND:20260901T084500Z",
		`SUMMARY:מים\; אדים\, ועננים`,
		`DESCRIPTION:מטרות למידה:\n- לתאר אידוי\n- להסביר עיבוי\n\nנושא: מחזור המים`,
		"END:VEVENT",
		"BEGIN:VEVENT",
		"UID:lesson-2@immersive-lesson-creator.com",
		"DTSTAMP:20260820T120000Z",
		"DTSTART:20260901T084500Z",
		"DTEND:20260901T093000Z",
		"SUMMARY:גשם",
		`DESCRIPTION:מטרות למידה:\n\nנושא: `,
		"END:VEVENT",
		"END:VCALENDAR",
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d:\n%s", len(lines), len(want), got)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
	if strings.Contains(strings.ReplaceAll(got, "\r\n", ""), "\n") {
		t.Error("bare LF found; every line must end with CRLF")
	}
}

func TestEscape(t *testing.T) {
	cases := map[string]string{
		`a\b`:       `a\\b`,
		"a,b;c":     `a\,b\;c`,
		"line\nnew": `line\nnew`,
		"crlf\r\nx": `crlf\nx`,
	}
	for in, want := range cases {
		if got := escape(in); got != want {
			t.Errorf("escape(%q) = %q, want %q", in, got, want)
		}
	}
}
