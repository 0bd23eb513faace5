package tui

import (
	"context"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"participativos/models"
	"participativos/services"
	"participativos/urlstate"
	"participativos/utils"
)

type staticLoader struct{ ds *models.Dataset }

func (l staticLoader) Load(context.Context) *models.Dataset { return l.ds }

func coord(f float64) *float64 { return &f }

func testDataset() *models.Dataset {
	return &models.Dataset{
		Proposals: []*models.Proposal{
			{ID: "1", Title: "Carril bici Paseo Zorrilla", Category: "Movilidad", Tags: []string{"Bici", "Ferroviario"},
				Votes: 50, Lat: coord(41.64), Lng: coord(-4.73), Zone: "1. Centro", ZoneID: 1},
			{ID: "2", Title: "Parque infantil", Category: "Parques", Tags: []string{"Niños"},
				Votes: 30, Zone: "2. Este", ZoneID: 2},
			{ID: "3", Title: "Biblioteca de barrio", Category: "Cultura", Tags: []string{"Lectura"},
				Votes: 10, Lat: coord(41.66), Lng: coord(-4.72), Zone: "1. Centro", ZoneID: 1},
		},
		Categories: []string{"Movilidad", "Parques", "Cultura"},
	}
}

func quietLogger() *utils.Logger {
	logger := utils.NewLogger()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestModel(t *testing.T, rawURL string) Model {
	t.Helper()
	logger := quietLogger()

	addr, err := urlstate.ParseAddress(rawURL)
	require.NoError(t, err)

	m := NewModel(Options{
		Loader:  staticLoader{testDataset()},
		Codec:   urlstate.NewCodec(logger),
		Address: addr,
		Logger:  logger,
	})
	return send(t, m, m.Init()().(DatasetLoadedMsg))
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func visibleIDs(m Model) []string {
	out := make([]string, 0, len(m.Visible()))
	for _, p := range m.Visible() {
		out = append(out, p.ID)
	}
	return out
}

func TestLoadAppliesAndCanonicalizesAddress(t *testing.T) {
	m := newTestModel(t, "https://example.org/?cat=Movilidad&z=99&sort=votes_asc&utm=x")

	c := m.Criteria()
	assert.Equal(t, "Movilidad", c.Category)
	assert.Equal(t, 0, c.Zone)
	assert.Equal(t, models.SortAsc, c.Sort)
	assert.Equal(t, []string{"1"}, visibleIDs(m))
	assert.Equal(t, "cat=Movilidad&sort=votes_asc", m.address.RawQuery())
}

func TestLoadWithEmptyDatasetShowsError(t *testing.T) {
	addr, _ := urlstate.ParseAddress("/")
	m := NewModel(Options{Loader: staticLoader{nil}, Codec: urlstate.NewCodec(quietLogger()), Address: addr})
	m = send(t, m, DatasetLoadedMsg{})

	assert.Empty(t, m.Visible())
	assert.True(t, m.statusErr)
}

func TestKeysIgnoredUntilLoaded(t *testing.T) {
	addr, _ := urlstate.ParseAddress("/")
	m := NewModel(Options{Loader: staticLoader{testDataset()}, Codec: urlstate.NewCodec(quietLogger()), Address: addr})
	m = send(t, m, key("c"))

	assert.Equal(t, models.CategoryAll, m.Criteria().Category)
	assert.Contains(t, m.View(), "Cargando")
}

func TestSearchIsDebounced(t *testing.T) {
	m := newTestModel(t, "/")
	m = send(t, m, key("/"))
	require.Equal(t, PaneSearch, m.pane)

	m = send(t, m, key("b"))
	m = send(t, m, key("i"))
	assert.Equal(t, 2, m.searchSeq)
	assert.Equal(t, "", m.Criteria().Query, "query must not apply before the pause")

	m = send(t, m, searchSettledMsg{seq: 1})
	assert.Equal(t, "", m.Criteria().Query, "stale timer must be ignored")

	m = send(t, m, searchSettledMsg{seq: 2})
	assert.Equal(t, "bi", m.Criteria().Query)
	assert.Equal(t, []string{"1", "3"}, visibleIDs(m))
	assert.Equal(t, "q=bi", m.address.RawQuery())
}

func TestSearchEnterAppliesImmediately(t *testing.T) {
	m := newTestModel(t, "/")
	m = send(t, m, key("/"))
	m = send(t, m, key("parque"))
	m = send(t, m, key("enter"))

	assert.Equal(t, PaneList, m.pane)
	assert.Equal(t, "parque", m.Criteria().Query)
	assert.Equal(t, []string{"2"}, visibleIDs(m))

	// The pending timer from typing is now stale.
	before := m.Criteria()
	m = send(t, m, searchSettledMsg{seq: 1})
	assert.Equal(t, before, m.Criteria())
}

func TestCategoryCycleIncludesRailZone(t *testing.T) {
	m := newTestModel(t, "/")

	var seen []string
	for i := 0; i < 5; i++ {
		m = send(t, m, key("c"))
		seen = append(seen, m.Criteria().Category)
	}
	assert.Equal(t, []string{"Movilidad", "Parques", "Cultura", models.CategoryRailZone, models.CategoryAll}, seen)

	m = send(t, m, key("C"))
	assert.Equal(t, models.CategoryRailZone, m.Criteria().Category)
	assert.Equal(t, []string{"1"}, visibleIDs(m))
	assert.Equal(t, "cat=Zona+V%C3%ADas", m.address.RawQuery())
}

func TestZoneCycle(t *testing.T) {
	m := newTestModel(t, "/")
	m = send(t, m, key("z"))
	assert.Equal(t, 1, m.Criteria().Zone)
	assert.Equal(t, []string{"1", "3"}, visibleIDs(m))

	m = send(t, m, key("z"))
	m = send(t, m, key("z"))
	assert.Equal(t, 0, m.Criteria().Zone)
}

func TestSortToggle(t *testing.T) {
	m := newTestModel(t, "/")
	assert.Equal(t, []string{"1", "2", "3"}, visibleIDs(m))

	m = send(t, m, key("s"))
	assert.Equal(t, []string{"3", "2", "1"}, visibleIDs(m))
	assert.Equal(t, "sort=votes_asc", m.address.RawQuery())
}

func TestTagPaneToggleAndClear(t *testing.T) {
	m := newTestModel(t, "/")
	m = send(t, m, key("t"))
	require.Equal(t, PaneTags, m.pane)

	// Every tag is used once, so the pane is alphabetical: Bici first.
	m = send(t, m, key(" "))
	assert.Equal(t, models.TagSet{"Bici"}, m.Criteria().Tags)
	assert.Equal(t, []string{"1"}, visibleIDs(m))
	assert.Equal(t, "tags=Bici", m.address.RawQuery())

	m = send(t, m, key("x"))
	assert.Equal(t, 0, m.Criteria().Tags.Len())
	assert.False(t, m.address.HasActiveParams())
}

func TestTagLimit(t *testing.T) {
	m := newTestModel(t, "/")
	for i := 0; i < urlstate.MaxTags; i++ {
		m = m.toggleTag(string(rune('a' + i)))
	}
	require.Equal(t, urlstate.MaxTags, m.Criteria().Tags.Len())

	m = m.toggleTag("extra")
	assert.Equal(t, urlstate.MaxTags, m.Criteria().Tags.Len())
	assert.False(t, m.Criteria().Tags.Has("extra"))
	assert.True(t, m.statusErr)

	m = m.toggleTag("a")
	assert.Equal(t, urlstate.MaxTags-1, m.Criteria().Tags.Len())
}

func TestResetClearsAddress(t *testing.T) {
	m := newTestModel(t, "/?q=bici&cat=Movilidad&sort=votes_asc")
	require.True(t, m.address.HasActiveParams())

	m = send(t, m, key("r"))
	assert.True(t, m.Criteria().IsDefault())
	assert.False(t, m.address.HasActiveParams())
	assert.Equal(t, "", m.search.Value())
	assert.Len(t, m.Visible(), 3)
}

func TestCenterOnSelectedProposal(t *testing.T) {
	m := newTestModel(t, "/")

	m = send(t, m, key("m"))
	assert.Equal(t, ModeMap, m.mode)
	assert.Equal(t, "1", m.Map().Focus())

	m = send(t, m, key("tab"))
	m = send(t, m, key("j"))
	m = send(t, m, key("m"))
	assert.True(t, m.statusErr, "proposal 2 has no coordinates")
	assert.Equal(t, "1", m.Map().Focus())
}

func TestShareURL(t *testing.T) {
	m := newTestModel(t, "https://example.org/presupuestos/?cat=Cultura")
	m = send(t, m, key("u"))
	assert.True(t, strings.HasSuffix(m.status, "https://example.org/presupuestos/?cat=Cultura"), m.status)
}

func TestViewRendersList(t *testing.T) {
	m := newTestModel(t, "/")
	m = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m = send(t, m, key("enter"))

	out := m.View()
	assert.Contains(t, out, "Carril bici Paseo Zorrilla")
	assert.Contains(t, out, "3 resultados")
}

func TestDatasetLabelsSurviveTheAddress(t *testing.T) {
	logger := quietLogger()
	raw := []*models.RawProposal{
		{Code: models.LooseOf("1"), Title: "Huerto urbano", Votes: models.LooseOf("4"),
			Latitude: models.LooseOf("41.65"), Longitude: models.LooseOf("-4.72")},
		{Code: models.LooseOf("2"), Title: "Sensores", Votes: models.LooseOf("2")},
		{Code: models.LooseOf("3"), Title: "Fuente", Votes: models.LooseOf("1")},
	}
	meta := []*models.ProposalMetadata{
		{Code: models.LooseOf("1"), Category: "Medio Ambiente ", Tags: []string{"Zonas  verdes"}},
		{Code: models.LooseOf("2"), Category: "Tecnología data:", Tags: []string{"Big data: barrio"}},
		{Code: models.LooseOf("3"), Category: "Urbanismo"},
	}
	ds := services.NewMerger(logger).Merge(raw, meta)

	addr, err := urlstate.ParseAddress("/")
	require.NoError(t, err)
	codec := urlstate.NewCodec(logger)
	m := NewModel(Options{Loader: staticLoader{ds}, Codec: codec, Address: addr, Logger: logger})
	m = send(t, m, DatasetLoadedMsg{Dataset: ds})

	roundTrip := func(m Model) models.FilterCriteria {
		return codec.Decode(m.address.Params(), m.validCategories, m.zoneIDs)
	}

	m = send(t, m, key("c"))
	assert.Equal(t, "Medio Ambiente", m.Criteria().Category)
	assert.Equal(t, m.Criteria(), roundTrip(m))
	assert.Equal(t, []string{"1"}, visibleIDs(m))

	m = send(t, m, key("c"))
	assert.Equal(t, "Urbanismo", m.Criteria().Category, "a label that cannot be encoded is skipped")

	m = m.reset()
	m = m.toggleTag("Zonas verdes")
	assert.Equal(t, m.Criteria(), roundTrip(m))
	assert.Equal(t, []string{"1"}, visibleIDs(m))

	m = m.toggleTag("Big data: barrio")
	assert.True(t, m.statusErr)
	assert.False(t, m.Criteria().Tags.Has("Big data: barrio"))
	assert.Equal(t, m.Criteria(), roundTrip(m))
}

func TestFilterBarMarksActiveFilters(t *testing.T) {
	m := newTestModel(t, "/")
	assert.NotContains(t, m.View(), "filtros activos")

	m = send(t, m, key("s"))
	assert.Contains(t, m.View(), "filtros activos")
}
