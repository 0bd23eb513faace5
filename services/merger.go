package services

import (
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"participativos/models"
	"participativos/utils"
)

var (
	// floatRegexp captures the leading decimal number of a coordinate.
	floatRegexp = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?`)
	// intRegexp captures the leading integer of a vote count or zone id.
	intRegexp = regexp.MustCompile(`^[+-]?\d+`)
)

// misencodedCategories are substrings that identify a category label whose
// leading emoji was mangled by a bad re-encoding upstream.
var misencodedCategories = map[string]string{
	" Social y Equipamientos": "Social y Equipamientos",
}

const rejectedTitleMarker = "inadmitida"

// Merger joins the primary proposals file with the metadata file.
type Merger struct {
	logger *utils.Logger
}

// NewMerger creates a Merger with the given logger.
func NewMerger(logger *utils.Logger) *Merger {
	return &Merger{logger: logger}
}

// Merge left-joins raw with meta on the string form of code. The output has
// one proposal per raw record, in raw order; metadata without a raw record is
// dropped. When meta repeats a code the first record wins.
func (m *Merger) Merge(raw []*models.RawProposal, meta []*models.ProposalMetadata) *models.Dataset {
	index := make(map[string]*models.ProposalMetadata, len(meta))
	for _, md := range meta {
		if md == nil {
			continue
		}
		code := md.Code.String()
		if _, dup := index[code]; dup {
			m.logger.Debug("[merger] Duplicate metadata code %q ignored", code)
			continue
		}
		index[code] = md
	}

	ds := &models.Dataset{
		Proposals:  make([]*models.Proposal, 0, len(raw)),
		Categories: []string{},
	}
	seenIDs := make(map[string]struct{}, len(raw))
	seenCategories := make(map[string]struct{})

	for _, r := range raw {
		if r == nil {
			r = &models.RawProposal{}
		}
		p := m.mergeOne(r, index[r.Code.String()])

		if _, dup := seenIDs[p.ID]; dup {
			m.logger.Warn("[merger] Duplicate proposal code %q in primary data", p.ID)
		}
		seenIDs[p.ID] = struct{}{}

		if p.Category != "" {
			if _, ok := seenCategories[p.Category]; !ok {
				seenCategories[p.Category] = struct{}{}
				ds.Categories = append(ds.Categories, p.Category)
			}
		}
		ds.Proposals = append(ds.Proposals, p)
	}

	m.logger.Info("[merger] Merged %d proposals with %d metadata records (%d categories)",
		len(ds.Proposals), len(index), len(ds.Categories))
	return ds
}

func (m *Merger) mergeOne(r *models.RawProposal, md *models.ProposalMetadata) *models.Proposal {
	if md == nil {
		md = &models.ProposalMetadata{}
	}

	p := &models.Proposal{
		ID:              r.Code.String(),
		Title:           r.Title,
		FullDescription: r.Description,
		Summary:         md.Summary,
		Category:        deriveCategory(md.Category, r.Title),
		Tags:            normalizeTags(md.Tags),
		Urgent:          md.Urgent,
		Votes:           parsePositiveInt(r.Votes),
		Lat:             parseCoordinate(r.Latitude),
		Lng:             parseCoordinate(r.Longitude),
		Zone:            r.Zone,
		ExternalURL:     r.URL,
		ImageURL:        r.ImageURL,
	}
	if p.Summary == "" {
		p.Summary = models.DefaultSummary
	}
	if p.ExternalURL == "" {
		p.ExternalURL = models.DefaultExternalURL
	}
	p.ZoneID = parsePositiveInt(r.ZoneID)
	p.ZoneID = p.EffectiveZoneID()

	return p
}

// deriveCategory applies, in order: metadata category, the uncategorized
// sentinel, the rejected override from the title, and encoding repair.
func deriveCategory(metaCategory, title string) string {
	category := normalizeLabel(metaCategory)
	if category == "" {
		category = models.CategoryUncategorized
	}

	if category != models.CategoryRejected &&
		strings.Contains(strings.ToLower(title), rejectedTitleMarker) {
		category = models.CategoryRejected
	}

	for variant, canonical := range misencodedCategories {
		if strings.Contains(category, variant) {
			category = canonical
			break
		}
	}
	return category
}

// normalizeLabel trims a category or tag and collapses inner whitespace runs
// to one space, the same way address values are cleaned.
func normalizeLabel(s string) string {
	return strings.Join(strings.FieldsFunc(s, unicode.IsSpace), " ")
}

// normalizeTags normalizes every tag, dropping empty and repeated ones.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = normalizeLabel(t)
		if t != "" && !slices.Contains(out, t) {
			out = append(out, t)
		}
	}
	return out
}

// parseCoordinate reads the leading number of v. Absent, unparseable and
// non-finite values yield nil.
func parseCoordinate(v models.Loose) *float64 {
	match := floatRegexp.FindString(v.String())
	if match == "" {
		return nil
	}
	f, err := strconv.ParseFloat(match, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// parsePositiveInt reads the leading integer of v; anything else yields 0.
func parsePositiveInt(v models.Loose) int {
	match := intRegexp.FindString(v.String())
	if match == "" {
		return 0
	}
	n, err := strconv.Atoi(match)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
