// Package urlstate maps browsing state to and from the query string.
//
// The sanitizer here is a blocklist filter applied to values decoded from a
// public, user-editable address. It removes the usual markup and script
// vectors before the values reach the filter state, but it is not a parser
// and it is not output escaping: every renderer must still escape these
// strings for its own output context.
package urlstate

import (
	"regexp"
	"strings"
	"unicode"
)

const (
	// MaxValueLength caps every sanitized value, in runes.
	MaxValueLength = 200
	// MaxTags caps the active tag list.
	MaxTags = 10
)

var (
	controlCharsRegexp = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F\x7F]`)
	markupTagRegexp    = regexp.MustCompile(`<[^>]*>`)
	angleBracketRegexp = regexp.MustCompile(`[<>]`)
	scriptSchemeRegexp = regexp.MustCompile(`(?i)(?:javascript|data|vbscript):`)
	eventHandlerRegexp = regexp.MustCompile(`(?i)on\w+\s*=`)
)

// Sanitize strips control characters, markup, script URI schemes and inline
// event handler attributes, collapses whitespace and truncates the result to
// MaxValueLength runes.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	// Removing one fragment can join two halves into a new one
	// ("javajavascript:script:"), so strip until nothing changes.
	for {
		next := strip(s)
		if next == s {
			break
		}
		s = next
	}

	if r := []rune(s); len(r) > MaxValueLength {
		s = strings.TrimRightFunc(string(r[:MaxValueLength]), unicode.IsSpace)
	}
	return s
}

// Encodable reports whether s survives Sanitize unchanged, so that state
// holding s decodes back to the same value.
func Encodable(s string) bool {
	return Sanitize(s) == s
}

func strip(s string) string {
	s = controlCharsRegexp.ReplaceAllString(s, "")
	s = markupTagRegexp.ReplaceAllString(s, "")
	s = angleBracketRegexp.ReplaceAllString(s, "")
	s = scriptSchemeRegexp.ReplaceAllString(s, "")
	s = eventHandlerRegexp.ReplaceAllString(s, "")
	return strings.Join(strings.FieldsFunc(s, unicode.IsSpace), " ")
}

// SanitizeTags sanitizes every tag, drops empty and repeated ones and keeps
// at most MaxTags, in input order.
func SanitizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = Sanitize(t)
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
		if len(out) == MaxTags {
			break
		}
	}
	return out
}
