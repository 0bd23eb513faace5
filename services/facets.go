package services

import (
	"sort"

	"participativos/categories"
	"participativos/models"
)

// CategoryOptions lists the selector entries: "Todas", the dataset categories
// in order of first appearance, then the virtual rail zone. Counts are over
// the whole dataset.
func CategoryOptions(ds *models.Dataset) []models.CategoryOption {
	perCategory := make(map[string]int, len(ds.Categories))
	rail := 0
	for _, p := range ds.Proposals {
		perCategory[p.Category]++
		if p.HasTag(models.RailTag) {
			rail++
		}
	}

	opts := make([]models.CategoryOption, 0, len(ds.Categories)+2)
	opts = append(opts, models.CategoryOption{Name: models.CategoryAll, Count: len(ds.Proposals)})
	for _, c := range ds.Categories {
		if c == models.CategoryRailZone {
			continue
		}
		opts = append(opts, models.CategoryOption{Name: c, Count: perCategory[c]})
	}
	opts = append(opts, models.CategoryOption{Name: models.CategoryRailZone, Count: rail})
	return opts
}

// ValidCategories is what the address decoder accepts for cat: every
// selectable category except the "Todas" sentinel.
func ValidCategories(ds *models.Dataset) []string {
	opts := CategoryOptions(ds)
	out := make([]string, 0, len(opts))
	for _, o := range opts[1:] {
		out = append(out, o.Name)
	}
	return out
}

// Zones lists the distinct effective zone ids, sorted by id. The label is the
// first non-empty zone name seen for that id.
func Zones(proposals []*models.Proposal) []models.ZoneOption {
	byID := make(map[int]*models.ZoneOption)
	for _, p := range proposals {
		id := p.EffectiveZoneID()
		if id <= 0 {
			continue
		}
		z, ok := byID[id]
		if !ok {
			z = &models.ZoneOption{ID: id}
			byID[id] = z
		}
		if z.Label == "" {
			z.Label = p.Zone
		}
		z.Count++
	}

	out := make([]models.ZoneOption, 0, len(byID))
	for _, z := range byID {
		out = append(out, *z)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ZoneIDs returns the ids of Zones(proposals).
func ZoneIDs(proposals []*models.Proposal) []int {
	zones := Zones(proposals)
	ids := make([]int, len(zones))
	for i, z := range zones {
		ids[i] = z.ID
	}
	return ids
}

// PopularTags counts tag usage across proposals, most used first, ties by
// name. limit <= 0 returns every tag.
func PopularTags(proposals []*models.Proposal, limit int) []models.TagCount {
	counts := make(map[string]int)
	for _, p := range proposals {
		for _, t := range p.Tags {
			counts[t]++
		}
	}

	out := make([]models.TagCount, 0, len(counts))
	for tag, n := range counts {
		out = append(out, models.TagCount{Tag: tag, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Tag < out[j].Tag
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Markers builds the map markers for the located proposals and the bounds
// that contain them all.
func Markers(proposals []*models.Proposal, registry *categories.Registry) ([]models.Marker, models.Bounds) {
	markers := make([]models.Marker, 0, len(proposals))
	bounds := models.Bounds{Empty: true}

	for _, p := range proposals {
		if !p.Located() {
			continue
		}
		style := registry.Style(p.Category)
		m := models.Marker{
			ProposalID: p.ID,
			Title:      p.Title,
			Category:   p.Category,
			Lat:        *p.Lat,
			Lng:        *p.Lng,
			Icon:       style.Icon,
			Color:      style.Color,
		}
		markers = append(markers, m)

		if bounds.Empty {
			bounds = models.Bounds{MinLat: m.Lat, MaxLat: m.Lat, MinLng: m.Lng, MaxLng: m.Lng}
			continue
		}
		bounds.MinLat = min(bounds.MinLat, m.Lat)
		bounds.MaxLat = max(bounds.MaxLat, m.Lat)
		bounds.MinLng = min(bounds.MinLng, m.Lng)
		bounds.MaxLng = max(bounds.MaxLng, m.Lng)
	}
	return markers, bounds
}
