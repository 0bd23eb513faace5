package services

import (
	"slices"
	"strconv"
	"strings"

	"participativos/models"
)

// Filter returns the proposals of all that satisfy every predicate of c,
// ordered by votes (descending unless c.Sort is SortAsc). Equal vote counts
// are ordered by proposal id ascending, numerically when both ids are
// integers. all is never modified.
func Filter(all []*models.Proposal, c models.FilterCriteria) []*models.Proposal {
	query := strings.ToLower(strings.TrimSpace(c.Query))

	out := make([]*models.Proposal, 0, len(all))
	for _, p := range all {
		if p == nil {
			continue
		}
		if matchCategory(p, c.Category) &&
			matchZone(p, c.Zone) &&
			matchTags(p, c.Tags) &&
			matchQuery(p, query) {
			out = append(out, p)
		}
	}

	slices.SortStableFunc(out, func(a, b *models.Proposal) int {
		if a.Votes != b.Votes {
			if c.Sort == models.SortAsc {
				return a.Votes - b.Votes
			}
			return b.Votes - a.Votes
		}
		return compareIDs(a.ID, b.ID)
	})
	return out
}

func matchCategory(p *models.Proposal, category string) bool {
	switch category {
	case "", models.CategoryAll:
		return true
	case p.Category:
		return true
	case models.CategoryRailZone:
		return p.HasTag(models.RailTag)
	}
	return false
}

func matchZone(p *models.Proposal, zone int) bool {
	return zone == 0 || p.EffectiveZoneID() == zone
}

// matchTags is conjunctive: every active tag must be present.
func matchTags(p *models.Proposal, active models.TagSet) bool {
	for _, tag := range active {
		if !p.HasTag(tag) {
			return false
		}
	}
	return true
}

// matchQuery expects query already lower-cased.
func matchQuery(p *models.Proposal, query string) bool {
	if query == "" {
		return true
	}
	if strings.Contains(strings.ToLower(p.Title), query) ||
		strings.Contains(strings.ToLower(p.Summary), query) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

func compareIDs(a, b string) int {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	switch {
	case errA == nil && errB == nil:
		return na - nb
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	}
	return strings.Compare(a, b)
}
