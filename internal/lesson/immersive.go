package lesson

import "strings"

const (
	immersiveTitlePrefix = "Title:"
	immersiveDescPrefix  = "Description:"
)

// FormatImmersive renders an immersive-experience idea as a single
// suggestion string: "Title: ...\nDescription: ...".
func FormatImmersive(title, description string) string {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	if title == "" && description == "" {
		return ""
	}
	return immersiveTitlePrefix + " " + title + "\n" + immersiveDescPrefix + " " + description
}

// ParseImmersive splits a suggestion of the form "Title: ...\nDescription: ..."
// into an Idea. Text without the markers becomes the description and the
// title stays empty. The description may span several lines.
func ParseImmersive(s string) Idea {
	s = strings.TrimSpace(s)
	ti := strings.Index(s, immersiveTitlePrefix)
	di := strings.Index(s, immersiveDescPrefix)
	if ti < 0 && di < 0 {
		return Idea{Description: s}
	}

	var idea Idea
	switch {
	case ti >= 0 && di > ti:
		idea.Title = strings.TrimSpace(s[ti+len(immersiveTitlePrefix) : di])
		idea.Description = strings.TrimSpace(s[di+len(immersiveDescPrefix):])
	case ti >= 0 && di < 0:
		rest := s[ti+len(immersiveTitlePrefix):]
		if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
			idea.Title = strings.TrimSpace(rest[:nl])
			idea.Description = strings.TrimSpace(rest[nl+1:])
		} else {
			idea.Title = strings.TrimSpace(rest)
		}
	case di >= 0 && ti < 0:
		idea.Description = strings.TrimSpace(s[di+len(immersiveDescPrefix):])
	default:
		// Description marker precedes the title marker.
		idea.Description = strings.TrimSpace(s[di+len(immersiveDescPrefix) : ti])
		idea.Title = strings.TrimSpace(s[ti+len(immersiveTitlePrefix):])
	}
	return idea
}
