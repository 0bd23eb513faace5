package urlstate

import (
	"net/url"
	"strconv"
	"strings"

	"participativos/models"
	"participativos/utils"
)

// Query-string parameter names.
const (
	ParamQuery    = "q"
	ParamCategory = "cat"
	ParamZone     = "z"
	ParamTags     = "tags"
	ParamSort     = "sort"

	sortAscToken = "votes_asc"
)

// Codec converts between FilterCriteria and query-string parameters.
type Codec struct {
	logger *utils.Logger
}

// NewCodec creates a Codec that reports rejected and suspicious values to
// logger.
func NewCodec(logger *utils.Logger) *Codec {
	return &Codec{logger: logger}
}

// Decode reads filter state from values. Every string is sanitized; a
// category or zone outside the valid sets falls back to "no filter" and is
// logged. Suspicious input is logged too but never blocks decoding.
func (c *Codec) Decode(values url.Values, validCategories []string, validZoneIDs []int) models.FilterCriteria {
	for _, th := range DetectThreats(values) {
		c.logger.Warn("[urlstate] Suspicious value in parameter %q matched %s (severity %s)",
			th.Parameter, th.Pattern, th.Severity)
	}

	criteria := models.DefaultCriteria()
	criteria.Query = Sanitize(values.Get(ParamQuery))
	criteria.Category = c.decodeCategory(values, validCategories)
	criteria.Zone = c.decodeZone(values, validZoneIDs)
	criteria.Tags = decodeTags(values.Get(ParamTags))
	if values.Get(ParamSort) == sortAscToken {
		criteria.Sort = models.SortAsc
	}
	return criteria
}

func (c *Codec) decodeCategory(values url.Values, valid []string) string {
	if !values.Has(ParamCategory) {
		return models.CategoryAll
	}
	raw := values.Get(ParamCategory)
	category := Sanitize(raw)
	if category == "" || category == models.CategoryAll {
		return models.CategoryAll
	}
	for _, v := range valid {
		if v == category {
			return category
		}
	}
	c.logger.Warn("[urlstate] Invalid category parameter %q, showing all categories", raw)
	return models.CategoryAll
}

func (c *Codec) decodeZone(values url.Values, valid []int) int {
	raw := strings.TrimSpace(values.Get(ParamZone))
	if raw == "" {
		return 0
	}
	id, ok := leadingInt(raw)
	if !ok {
		c.logger.Warn("[urlstate] Malformed zone parameter %q, showing all zones", raw)
		return 0
	}
	if id == 0 {
		return 0
	}
	if id > 0 {
		for _, v := range valid {
			if v == id {
				return id
			}
		}
	}
	c.logger.Warn("[urlstate] Unknown zone %d, showing all zones", id)
	return 0
}

func decodeTags(raw string) models.TagSet {
	if raw == "" {
		return models.TagSet{}
	}
	parts := strings.Split(raw, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return models.NewTagSet(SanitizeTags(parts)...)
}

// leadingInt parses an optional sign followed by digits at the start of s,
// ignoring whatever follows ("12abc" is 12).
func leadingInt(s string) (int, bool) {
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// Encode writes criteria as the minimal parameter set: a field equal to its
// default is omitted, so the default state encodes to no parameters at all.
func (c *Codec) Encode(criteria models.FilterCriteria) url.Values {
	values := url.Values{}

	if q := strings.TrimSpace(criteria.Query); q != "" {
		values.Set(ParamQuery, q)
	}
	if cat := strings.TrimSpace(criteria.Category); cat != "" && cat != models.CategoryAll {
		values.Set(ParamCategory, cat)
	}
	if criteria.Zone > 0 {
		values.Set(ParamZone, strconv.Itoa(criteria.Zone))
	}
	if tags := SanitizeTags(criteria.Tags); len(tags) > 0 {
		values.Set(ParamTags, strings.Join(tags, ","))
	}
	if criteria.Sort == models.SortAsc {
		values.Set(ParamSort, sortAscToken)
	}
	return values
}
