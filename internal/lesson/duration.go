package lesson

import (
	"strconv"
	"strings"
	"unicode"
)

// DefaultDuration is the lesson length in minutes used when the form leaves
// the duration empty or unparseable.
const DefaultDuration = 45

// ParseDuration reads the leading base-10 integer of s, the way a browser's
// parseInt(s, 10) does: leading whitespace and a sign are accepted and any
// trailing text ("45 דקות") is ignored. Empty or non-numeric input yields
// DefaultDuration.
func ParseDuration(s string) int {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return DefaultDuration
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return DefaultDuration
	}
	return n
}
