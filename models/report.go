package models

// InsightReport holds the computed analytics over the merged dataset.
type InsightReport struct {
	TotalProposals int
	TotalVotes     int
	AverageVotes   float64
	Located        int
	Urgent         int
	Rejected       int
	MostVoted      *Proposal
	TopVoted       []*Proposal
	ByCategory     map[string]int
	ByZone         map[string]int
}

// CategoryOption is one entry of the category selector.
type CategoryOption struct {
	Name  string
	Count int
}

// ZoneOption is one entry of the zone selector.
type ZoneOption struct {
	ID    int
	Label string
	Count int
}

// TagCount is a tag with the number of proposals carrying it.
type TagCount struct {
	Tag   string
	Count int
}

// Marker is a located proposal as the map shows it.
type Marker struct {
	ProposalID string
	Title      string
	Category   string
	Lat        float64
	Lng        float64
	Icon       string
	Color      string
}

// Bounds is the box the map fits to. Empty when there are no markers.
type Bounds struct {
	MinLat, MinLng float64
	MaxLat, MaxLng float64
	Empty          bool
}

// VoteUpdate is the outcome of refreshing one proposal's vote count.
type VoteUpdate struct {
	Code     string
	OldVotes int
	NewVotes int
	Err      error
}

// Changed reports whether the refresh produced a different count.
func (u VoteUpdate) Changed() bool {
	return u.Err == nil && u.OldVotes != u.NewVotes
}
