package tui

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"participativos/categories"
	"participativos/models"
	"participativos/services"
	"participativos/urlstate"
	"participativos/utils"
)

const (
	popularTagLimit = 15
	defaultDebounce = 300 * time.Millisecond
)

// Pane is the part of the screen that receives key presses.
type Pane int

const (
	PaneList Pane = iota
	PaneSearch
	PaneTags
)

// Mode selects what the main area shows.
type Mode int

const (
	ModeList Mode = iota
	ModeMap
)

// Options wires a Model to its collaborators.
type Options struct {
	Context  context.Context
	Loader   DatasetLoader
	Codec    *urlstate.Codec
	Address  *urlstate.Address
	Registry *categories.Registry
	Debounce time.Duration
	Logger   *utils.Logger
}

// listView is the proposal list. It asks the map to center through onCenter
// and holds no reference to the map itself.
type listView struct {
	cursor   int
	onCenter func(id string) bool
}

// Model is the browser state. The filter criteria live here and nowhere
// else; every change goes through applyFilters.
type Model struct {
	ctx      context.Context
	loader   DatasetLoader
	codec    *urlstate.Codec
	address  *urlstate.Address
	registry *categories.Registry
	debounce time.Duration
	logger   *utils.Logger

	loaded          bool
	dataset         *models.Dataset
	categories      []models.CategoryOption
	zones           []models.ZoneOption
	validCategories []string
	zoneIDs         []int

	criteria models.FilterCriteria
	visible  []*models.Proposal

	search    textinput.Model
	searchSeq int

	pane        Pane
	mode        Mode
	list        listView
	mapView     *MapView
	tagCursor   int
	showAllTags bool
	showDetail  bool

	status    string
	statusErr bool
	width     int
	height    int
}

// NewModel creates a browser that loads its data on Init.
func NewModel(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	logger := opts.Logger
	if logger == nil {
		logger = utils.NewLogger()
		logger.SetOutput(io.Discard)
	}
	registry := opts.Registry
	if registry == nil {
		registry = categories.Default()
	}

	search := textinput.New()
	search.Prompt = "🔍 "
	search.Placeholder = "Buscar por título, resumen o etiqueta..."
	search.CharLimit = urlstate.MaxValueLength

	mv := NewMapView()
	return Model{
		ctx:      ctx,
		loader:   opts.Loader,
		codec:    opts.Codec,
		address:  opts.Address,
		registry: registry,
		debounce: debounce,
		logger:   logger,
		dataset:  models.EmptyDataset(),
		criteria: models.DefaultCriteria(),
		search:   search,
		list:     listView{onCenter: mv.CenterOn},
		mapView:  mv,
		width:    100,
		height:   30,
	}
}

// Init implements tea.Model interface
func (m Model) Init() tea.Cmd {
	return loadDataset(m.ctx, m.loader)
}

// Criteria is the active filter state.
func (m Model) Criteria() models.FilterCriteria {
	return m.criteria
}

// Visible is the filtered, sorted proposal list.
func (m Model) Visible() []*models.Proposal {
	return m.visible
}

// Map is the map view owned by this model.
func (m Model) Map() *MapView {
	return m.mapView
}

// applyFilters recomputes the visible list and the map markers, then
// rewrites the address in place.
func (m Model) applyFilters() Model {
	m.visible = services.Filter(m.dataset.Proposals, m.criteria)
	if m.list.cursor >= len(m.visible) {
		m.list.cursor = max(len(m.visible)-1, 0)
	}

	markers, bounds := services.Markers(m.visible, m.registry)
	m.mapView.SetMarkers(markers, bounds)

	m.address.Replace(m.codec.Encode(m.criteria))
	m.logger.Debug("[tui] %d of %d proposals match %s",
		len(m.visible), len(m.dataset.Proposals), m.address.String())
	return m
}

func (m Model) selected() *models.Proposal {
	if m.list.cursor < 0 || m.list.cursor >= len(m.visible) {
		return nil
	}
	return m.visible[m.list.cursor]
}

func (m Model) popularTags() []models.TagCount {
	limit := popularTagLimit
	if m.showAllTags {
		limit = 0
	}
	return services.PopularTags(m.dataset.Proposals, limit)
}

func (m Model) setStatus(msg string) Model {
	m.status, m.statusErr = msg, false
	return m
}

func (m Model) setError(msg string) Model {
	m.status, m.statusErr = msg, true
	return m
}
