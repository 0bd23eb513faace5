package urlstate

import (
	"net/url"
	"regexp"
	"sort"
)

// Threat is one suspicious pattern found in a raw parameter.
type Threat struct {
	Parameter string
	Value     string
	Pattern   string
	Severity  string
}

var threatPatterns = compileAll(
	`(?i)<script`,
	`(?i)javascript:`,
	`(?i)data:`,
	`(?i)vbscript:`,
	`(?i)on\w+\s*=`,
	`(?i)expression\s*\(`,
	`(?i)@import`,
	`(?i)binding\s*:`,
	`(?i)union\s+select`,
	`(?i)drop\s+table`,
	`(?i)insert\s+into`,
	`(?i)delete\s+from`,
	`(?i)update\s+set`,
	`(?i)exec\s*\(`,
	`(?i)eval\s*\(`,
	`(?i)system\s*\(`,
	`(?i)shell_exec`,
)

func compileAll(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		out[i] = regexp.MustCompile(p)
	}
	return out
}

// DetectThreats scans every value of every parameter. It only reports; the
// decoder sanitizes regardless of the outcome.
func DetectThreats(values url.Values) []Threat {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var threats []Threat
	for _, key := range keys {
		for _, v := range values[key] {
			for _, re := range threatPatterns {
				if re.MatchString(v) {
					threats = append(threats, Threat{
						Parameter: key,
						Value:     v,
						Pattern:   re.String(),
						Severity:  "high",
					})
				}
			}
		}
	}
	return threats
}
