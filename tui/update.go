package tui

import (
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"participativos/models"
	"participativos/services"
	"participativos/urlstate"
)

// Update implements tea.Model interface
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case DatasetLoadedMsg:
		return m.handleDatasetLoaded(msg)
	case searchSettledMsg:
		return m.handleSearchSettled(msg)
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}
	return m, nil
}

// handleDatasetLoaded validates the address against the loaded data and
// shows the first filtered view.
func (m Model) handleDatasetLoaded(msg DatasetLoadedMsg) (tea.Model, tea.Cmd) {
	ds := msg.Dataset
	if ds == nil {
		ds = models.EmptyDataset()
	}
	m.dataset = ds
	m.categories = services.CategoryOptions(ds)
	m.zones = services.Zones(ds.Proposals)
	m.validCategories = services.ValidCategories(ds)
	m.zoneIDs = services.ZoneIDs(ds.Proposals)
	for _, c := range ds.Categories {
		if !m.registry.Known(c) {
			m.logger.Debug("[tui] Category %q has no style, using the fallback", c)
		}
	}

	m.criteria = m.codec.Decode(m.address.Params(), m.validCategories, m.zoneIDs)
	m.search.SetValue(m.criteria.Query)
	m.loaded = true
	m = m.applyFilters()

	if len(ds.Proposals) == 0 {
		m = m.setError("No se pudieron cargar las propuestas")
	} else {
		m = m.setStatus(fmt.Sprintf("%d propuestas cargadas", len(ds.Proposals)))
	}
	return m, nil
}

// handleSearchSettled applies the search box once typing has paused. Stale
// timers are ignored.
func (m Model) handleSearchSettled(msg searchSettledMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.searchSeq {
		return m, nil
	}
	return m.commitSearch(), nil
}

func (m Model) commitSearch() Model {
	q := urlstate.Sanitize(m.search.Value())
	if q == m.criteria.Query {
		return m
	}
	m.criteria.Query = q
	m.list.cursor = 0
	return m.applyFilters()
}

// handleKeyPress routes keys to the focused pane.
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if !m.loaded {
		if msg.String() == "q" {
			return m, tea.Quit
		}
		return m, nil
	}

	switch m.pane {
	case PaneSearch:
		return m.handleSearchKey(msg)
	case PaneTags:
		return m.handleTagsKey(msg)
	}
	return m.handleListKey(msg)
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.pane = PaneList
		m.search.Blur()
		return m, nil
	case "enter":
		m.pane = PaneList
		m.search.Blur()
		m.searchSeq++
		return m.commitSearch(), nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() == before {
		return m, cmd
	}
	m.searchSeq++
	return m, tea.Batch(cmd, settleSearch(m.searchSeq, m.debounce))
}

func (m Model) handleTagsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	tags := m.popularTags()
	switch msg.String() {
	case "esc", "t", "q":
		m.pane = PaneList
	case "up", "k":
		if m.tagCursor > 0 {
			m.tagCursor--
		}
	case "down", "j":
		if m.tagCursor < len(tags)-1 {
			m.tagCursor++
		}
	case " ", "enter":
		if m.tagCursor < len(tags) {
			return m.toggleTag(tags[m.tagCursor].Tag), nil
		}
	case "a":
		m.showAllTags = !m.showAllTags
		if n := len(m.popularTags()); m.tagCursor >= n {
			m.tagCursor = max(n-1, 0)
		}
	case "x":
		return m.clearTags(), nil
	}
	return m, nil
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "/":
		m.pane = PaneSearch
		cmd := m.search.Focus()
		return m, cmd
	case "t":
		m.pane = PaneTags
	case "up", "k":
		if m.list.cursor > 0 {
			m.list.cursor--
		}
	case "down", "j":
		if m.list.cursor < len(m.visible)-1 {
			m.list.cursor++
		}
	case "home", "g":
		m.list.cursor = 0
	case "end", "G":
		m.list.cursor = max(len(m.visible)-1, 0)
	case "enter":
		m.showDetail = !m.showDetail
	case "tab":
		if m.mode == ModeList {
			m.mode = ModeMap
		} else {
			m.mode = ModeList
		}
	case "m":
		return m.centerSelected(), nil
	case "f":
		m.mapView.Fit()
	case "c":
		return m.cycleCategory(1), nil
	case "C":
		return m.cycleCategory(-1), nil
	case "z":
		return m.cycleZone(1), nil
	case "Z":
		return m.cycleZone(-1), nil
	case "x":
		return m.clearTags(), nil
	case "s":
		m.criteria.Sort = m.criteria.Sort.Toggle()
		return m.applyFilters().setStatus("Orden: " + sortLabel(m.criteria.Sort)), nil
	case "r":
		return m.reset(), nil
	case "u":
		return m.setStatus("Enlace: " + m.address.ShareURL()), nil
	}
	return m, nil
}

func (m Model) centerSelected() Model {
	p := m.selected()
	if p == nil {
		return m
	}
	if !m.list.onCenter(p.ID) {
		return m.setError("Esta propuesta no tiene ubicación")
	}
	m.mode = ModeMap
	return m.setStatus("Mapa centrado en: " + p.Title)
}

func (m Model) cycleCategory(step int) Model {
	if len(m.categories) == 0 {
		return m
	}
	i := 0
	for j, c := range m.categories {
		if c.Name == m.criteria.Category {
			i = j
			break
		}
	}
	// Labels that would not survive the address are skipped.
	for range m.categories {
		i = (i + step + len(m.categories)) % len(m.categories)
		if urlstate.Encodable(m.categories[i].Name) {
			break
		}
	}
	m.criteria.Category = m.categories[i].Name
	m.list.cursor = 0
	return m.applyFilters()
}

func (m Model) cycleZone(step int) Model {
	ids := append([]int{0}, m.zoneIDs...)
	i := 0
	for j, id := range ids {
		if id == m.criteria.Zone {
			i = j
			break
		}
	}
	i = (i + step + len(ids)) % len(ids)
	m.criteria.Zone = ids[i]
	m.list.cursor = 0
	return m.applyFilters()
}

func (m Model) toggleTag(tag string) Model {
	if !urlstate.Encodable(tag) {
		return m.setError(fmt.Sprintf("La etiqueta %q no se puede compartir en el enlace", tag))
	}
	if !m.criteria.Tags.Has(tag) && m.criteria.Tags.Len() >= urlstate.MaxTags {
		return m.setError(fmt.Sprintf("Máximo %d etiquetas activas", urlstate.MaxTags))
	}
	m.criteria.Tags = m.criteria.Tags.Toggle(tag)
	m.list.cursor = 0
	return m.applyFilters().setStatus("")
}

func (m Model) clearTags() Model {
	if m.criteria.Tags.Len() == 0 {
		return m
	}
	m.criteria.Tags = models.TagSet{}
	return m.applyFilters()
}

// reset returns to the default view and drops every address parameter.
func (m Model) reset() Model {
	m.criteria = models.DefaultCriteria()
	m.search.SetValue("")
	m.searchSeq++
	m.list.cursor = 0
	m.showDetail = false
	m.address.Clear()
	m.mapView.Fit()
	return m.applyFilters().setStatus("Filtros restablecidos")
}

func sortLabel(s models.SortOrder) string {
	if s == models.SortAsc {
		return "menos votadas primero"
	}
	return "más votadas primero"
}

func zoneLabel(zones []models.ZoneOption, id int) string {
	if id <= 0 {
		return "Todas"
	}
	for _, z := range zones {
		if z.ID == id {
			if z.Label != "" {
				return z.Label
			}
			break
		}
	}
	return "Zona " + strconv.Itoa(id)
}
