package tui

import (
	"fmt"
	"strings"

	"participativos/models"
)

const (
	// Valladolid city centre, shown while nothing is located.
	defaultLat = 41.6523
	defaultLng = -4.7285

	defaultSpan = 0.06
	minSpan     = 0.005
	focusSpan   = 0.008
	fitPadding  = 0.08
)

// MapView draws proposal markers on a character grid. The viewport fits the
// markers' bounds unless it is centered on one proposal.
type MapView struct {
	markers []models.Marker
	bounds  models.Bounds
	focus   string
}

// NewMapView creates an empty map.
func NewMapView() *MapView {
	return &MapView{bounds: models.Bounds{Empty: true}}
}

// SetMarkers replaces the markers and fits the viewport to bounds. A focus
// on a proposal that is no longer shown is dropped.
func (v *MapView) SetMarkers(markers []models.Marker, bounds models.Bounds) {
	v.markers = markers
	v.bounds = bounds
	if _, ok := v.find(v.focus); !ok {
		v.focus = ""
	}
}

// CenterOn zooms to the marker of proposal id. It reports false when that
// proposal has no marker.
func (v *MapView) CenterOn(id string) bool {
	if _, ok := v.find(id); !ok {
		return false
	}
	v.focus = id
	return true
}

// Focus is the proposal the view is centered on, if any.
func (v *MapView) Focus() string {
	return v.focus
}

// Fit drops the focus and shows every marker again.
func (v *MapView) Fit() {
	v.focus = ""
}

// Len is the number of markers.
func (v *MapView) Len() int {
	return len(v.markers)
}

func (v *MapView) find(id string) (models.Marker, bool) {
	if id == "" {
		return models.Marker{}, false
	}
	for _, m := range v.markers {
		if m.ProposalID == id {
			return m, true
		}
	}
	return models.Marker{}, false
}

// Viewport is the lat/lng box currently on screen.
func (v *MapView) Viewport() models.Bounds {
	if m, ok := v.find(v.focus); ok {
		return around(m.Lat, m.Lng, focusSpan, focusSpan)
	}
	if v.bounds.Empty {
		return around(defaultLat, defaultLng, defaultSpan, defaultSpan)
	}

	b := v.bounds
	latSpan := max(b.MaxLat-b.MinLat, minSpan) * (1 + 2*fitPadding)
	lngSpan := max(b.MaxLng-b.MinLng, minSpan) * (1 + 2*fitPadding)
	return around((b.MinLat+b.MaxLat)/2, (b.MinLng+b.MaxLng)/2, latSpan, lngSpan)
}

func around(lat, lng, latSpan, lngSpan float64) models.Bounds {
	return models.Bounds{
		MinLat: lat - latSpan/2, MaxLat: lat + latSpan/2,
		MinLng: lng - lngSpan/2, MaxLng: lng + lngSpan/2,
	}
}

// Project maps a coordinate onto a width x height grid. ok is false when the
// point falls outside the viewport.
func (v *MapView) Project(lat, lng float64, width, height int) (x, y int, ok bool) {
	if width < 1 || height < 1 {
		return 0, 0, false
	}
	vp := v.Viewport()
	if lat < vp.MinLat || lat > vp.MaxLat || lng < vp.MinLng || lng > vp.MaxLng {
		return 0, 0, false
	}
	x = int((lng - vp.MinLng) / (vp.MaxLng - vp.MinLng) * float64(width-1))
	y = int((vp.MaxLat - lat) / (vp.MaxLat - vp.MinLat) * float64(height-1))
	return x, y, true
}

type cell struct {
	count int
	color string
	focus bool
}

// Render draws the grid. A cell holding several markers shows their count.
func (v *MapView) Render(width, height int) string {
	if width < 1 || height < 1 {
		return ""
	}
	grid := make([][]cell, height)
	for i := range grid {
		grid[i] = make([]cell, width)
	}

	for _, m := range v.markers {
		x, y, ok := v.Project(m.Lat, m.Lng, width, height)
		if !ok {
			continue
		}
		c := &grid[y][x]
		c.count++
		if c.color == "" || m.ProposalID == v.focus {
			c.color = m.Color
		}
		if m.ProposalID == v.focus {
			c.focus = true
		}
	}

	var b strings.Builder
	for y, row := range grid {
		for _, c := range row {
			b.WriteString(c.glyph())
		}
		if y < len(grid)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (c cell) glyph() string {
	switch {
	case c.count == 0:
		return InfoStyle.Render("·")
	case c.focus:
		return SelectedStyle.Render("◉")
	case c.count == 1:
		return categoryStyle(c.color).Render("●")
	case c.count < 10:
		return categoryStyle(c.color).Render(fmt.Sprintf("%d", c.count))
	default:
		return categoryStyle(c.color).Render("+")
	}
}
