package ava

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	digitsPattern = regexp.MustCompile(`\d+`)
	thousands     = strings.NewReplacer(".", "", ",", "")

	// Tried in order against the whole page text when the supports badge is
	// missing. The last match of the first pattern that hits wins.
	pageVotePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d+)\s*apoyos?`),
		regexp.MustCompile(`(?i)apoyos?\s*[:\-]?\s*(\d+)`),
		regexp.MustCompile(`(?i)(\d+)\s*votos?`),
		regexp.MustCompile(`(?i)votos?\s*[:\-]?\s*(\d+)`),
	}
)

// page is what the browser extracts from a proposal page.
type page struct {
	Supports string `json:"supports"`
	Text     string `json:"text"`
}

// ParseVotes reads the support count from the text of the supports badge,
// falling back to the full page text. ok is false when neither holds a count.
func ParseVotes(supports, pageText string) (votes int, ok bool) {
	if s := strings.TrimSpace(supports); s != "" {
		if strings.Contains(strings.ToLower(s), "sin apoyos") {
			return 0, true
		}
		if d := digitsPattern.FindString(thousands.Replace(s)); d != "" {
			if n, err := strconv.Atoi(d); err == nil {
				return n, true
			}
		}
	}

	for _, re := range pageVotePatterns {
		matches := re.FindAllStringSubmatch(pageText, -1)
		if len(matches) == 0 {
			continue
		}
		if n, err := strconv.Atoi(matches[len(matches)-1][1]); err == nil {
			return n, true
		}
	}
	return 0, false
}
