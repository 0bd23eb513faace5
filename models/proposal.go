package models

import (
	"regexp"
	"strconv"
)

// Category sentinels shared by the merger, the filter engine and the UI.
const (
	CategoryAll           = "Todas"
	CategoryUncategorized = "Sin categoría"
	CategoryRejected      = "Inadmitidas"
	// CategoryRailZone is virtual: it matches proposals tagged RailTag rather
	// than a stored category value.
	CategoryRailZone = "Zona Vías"
	RailTag          = "Ferroviario"

	DefaultSummary     = "Sin resumen disponible"
	DefaultExternalURL = "#"
)

// RawProposal is one record of the primary proposals file, as published by
// the municipal site scraper.
type RawProposal struct {
	Code        Loose  `json:"code"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Votes       Loose  `json:"votes"`
	Latitude    Loose  `json:"latitude"`
	Longitude   Loose  `json:"longitude"`
	Zone        string `json:"zone"`
	ZoneID      Loose  `json:"zone_id"`
	URL         string `json:"url"`
	ImageURL    string `json:"image_url"`
}

// ProposalMetadata is one record of the secondary metadata file. It may be
// sparse or out of sync with the primary file.
type ProposalMetadata struct {
	Code     Loose    `json:"code"`
	Summary  string   `json:"summary"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
	Urgent   bool     `json:"urgent"`
}

// Proposal is the merged record every consumer works with.
type Proposal struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	FullDescription string   `json:"full_description"`
	Summary         string   `json:"summary"`
	Category        string   `json:"category"`
	Tags            []string `json:"tags"`
	Urgent          bool     `json:"urgent"`
	Votes           int      `json:"votes"`
	Lat             *float64 `json:"lat"`
	Lng             *float64 `json:"lng"`
	Zone            string   `json:"zone,omitempty"`
	ZoneID          int      `json:"zone_id,omitempty"`
	ExternalURL     string   `json:"external_url"`
	ImageURL        string   `json:"image_url,omitempty"`
}

// zonePrefixRegexp captures the "N." numbering of zone labels such as
// "3. Zona Este".
var zonePrefixRegexp = regexp.MustCompile(`^\s*(\d+)\.`)

// ZoneIDFromLabel returns the numeric prefix of a zone label, or 0.
func ZoneIDFromLabel(label string) int {
	m := zonePrefixRegexp.FindStringSubmatch(label)
	if len(m) < 2 {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// EffectiveZoneID is the stored zone id, falling back to the label prefix.
func (p *Proposal) EffectiveZoneID() int {
	if p.ZoneID > 0 {
		return p.ZoneID
	}
	return ZoneIDFromLabel(p.Zone)
}

// HasTag reports whether the proposal carries tag exactly.
func (p *Proposal) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Located reports whether both coordinates are known.
func (p *Proposal) Located() bool {
	return p.Lat != nil && p.Lng != nil
}

// Dataset is the merge output: proposals in primary-file order plus the
// distinct categories in order of first appearance.
type Dataset struct {
	Proposals  []*Proposal
	Categories []string
}

// EmptyDataset is what consumers get when loading fails.
func EmptyDataset() *Dataset {
	return &Dataset{Proposals: []*Proposal{}, Categories: []string{}}
}
