package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"participativos/categories"
	"participativos/models"
)

func sampleDataset() *models.Dataset {
	return &models.Dataset{
		Proposals: sampleProposals(),
		Categories: []string{
			"Infancia y Juegos", "Movilidad Ciclista", "Grandes Infraestructuras",
			"Medio Ambiente", "Parques y Naturaleza",
		},
	}
}

func TestCategoryOptions(t *testing.T) {
	opts := CategoryOptions(sampleDataset())

	require.Len(t, opts, 7)
	assert.Equal(t, models.CategoryOption{Name: models.CategoryAll, Count: 5}, opts[0])
	assert.Equal(t, models.CategoryOption{Name: "Infancia y Juegos", Count: 1}, opts[1])
	assert.Equal(t, models.CategoryOption{Name: models.CategoryRailZone, Count: 1}, opts[6])
}

func TestValidCategoriesExcludesAll(t *testing.T) {
	valid := ValidCategories(sampleDataset())

	assert.NotContains(t, valid, models.CategoryAll)
	assert.Contains(t, valid, models.CategoryRailZone)
	assert.Contains(t, valid, "Medio Ambiente")
}

func TestZones(t *testing.T) {
	zones := Zones(sampleProposals())

	require.Len(t, zones, 3)
	assert.Equal(t, models.ZoneOption{ID: 1, Label: "1. Centro", Count: 1}, zones[0])
	assert.Equal(t, models.ZoneOption{ID: 3, Label: "3. Delicias", Count: 2}, zones[1])
	assert.Equal(t, models.ZoneOption{ID: 5, Label: "5. Rondilla", Count: 1}, zones[2])
	assert.Equal(t, []int{1, 3, 5}, ZoneIDs(sampleProposals()))
}

func TestPopularTags(t *testing.T) {
	tags := PopularTags(sampleProposals(), 0)

	require.NotEmpty(t, tags)
	assert.Equal(t, models.TagCount{Tag: "Parque", Count: 3}, tags[0])
	assert.Equal(t, models.TagCount{Tag: "Movilidad", Count: 2}, tags[1])
	// ties ordered by name
	assert.Equal(t, "Bici", tags[2].Tag)

	assert.Len(t, PopularTags(sampleProposals(), 2), 2)
}

func TestMarkersAndBounds(t *testing.T) {
	lat1, lng1 := 41.65, -4.72
	lat2, lng2 := 41.60, -4.75
	ps := []*models.Proposal{
		{ID: "1", Category: "Urbanismo", Lat: &lat1, Lng: &lng1},
		{ID: "2", Category: "Sin registro", Lat: &lat2, Lng: &lng2},
		{ID: "3", Category: "Urbanismo", Lat: &lat1},
	}

	markers, bounds := Markers(ps, categories.Default())

	require.Len(t, markers, 2)
	assert.Equal(t, "fa-solid fa-building", markers[0].Icon)
	assert.Equal(t, "#94a3b8", markers[1].Color)
	assert.False(t, bounds.Empty)
	assert.Equal(t, 41.60, bounds.MinLat)
	assert.Equal(t, 41.65, bounds.MaxLat)
	assert.Equal(t, -4.75, bounds.MinLng)
	assert.Equal(t, -4.72, bounds.MaxLng)
}

func TestMarkersEmpty(t *testing.T) {
	markers, bounds := Markers(nil, categories.Default())
	assert.Empty(t, markers)
	assert.True(t, bounds.Empty)
}
