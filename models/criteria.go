package models

import "sort"

// SortOrder orders the visible proposals by vote count.
type SortOrder int

const (
	SortDesc SortOrder = iota
	SortAsc
)

func (s SortOrder) String() string {
	if s == SortAsc {
		return "asc"
	}
	return "desc"
}

// Toggle flips between descending and ascending.
func (s SortOrder) Toggle() SortOrder {
	if s == SortAsc {
		return SortDesc
	}
	return SortAsc
}

// TagSet is a deduplicated, sorted set of tags. The zero value is empty.
type TagSet []string

// NewTagSet builds a set from tags, dropping empty strings and duplicates.
func NewTagSet(tags ...string) TagSet {
	seen := make(map[string]struct{}, len(tags))
	out := make(TagSet, 0, len(tags))
	for _, t := range tags {
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

func (ts TagSet) Len() int { return len(ts) }

func (ts TagSet) Has(tag string) bool {
	i := sort.SearchStrings(ts, tag)
	return i < len(ts) && ts[i] == tag
}

// With returns a copy of the set including tag.
func (ts TagSet) With(tag string) TagSet {
	if ts.Has(tag) {
		return ts
	}
	return NewTagSet(append(append([]string{}, ts...), tag)...)
}

// Without returns a copy of the set excluding tag.
func (ts TagSet) Without(tag string) TagSet {
	out := make(TagSet, 0, len(ts))
	for _, t := range ts {
		if t != tag {
			out = append(out, t)
		}
	}
	return out
}

// Toggle adds tag when absent and removes it when present.
func (ts TagSet) Toggle(tag string) TagSet {
	if ts.Has(tag) {
		return ts.Without(tag)
	}
	return ts.With(tag)
}

// FilterCriteria is the complete filter state of one browsing session.
// Zero-valued fields other than Category mean "no filter"; use
// DefaultCriteria for the canonical starting point.
type FilterCriteria struct {
	Category string
	Zone     int
	Query    string
	Tags     TagSet
	Sort     SortOrder
}

// DefaultCriteria is the state the canonical, parameter-free address encodes.
func DefaultCriteria() FilterCriteria {
	return FilterCriteria{Category: CategoryAll, Tags: TagSet{}}
}

// IsDefault reports whether c filters nothing and sorts descending.
func (c FilterCriteria) IsDefault() bool {
	return (c.Category == "" || c.Category == CategoryAll) &&
		c.Zone == 0 && c.Query == "" && c.Tags.Len() == 0 && c.Sort == SortDesc
}
