package tui

import (
	"fmt"
	"strings"

	"participativos/models"
)

const detailDescriptionRunes = 600

// View implements tea.Model interface
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("🏛  Presupuestos Participativos"))
	b.WriteString("\n")

	if !m.loaded {
		b.WriteString(InfoStyle.Render("Cargando propuestas..."))
		b.WriteString("\n\n")
		b.WriteString(InfoStyle.Render("Pulsa 'q' o Ctrl+C para salir"))
		return b.String()
	}

	b.WriteString(m.search.View())
	b.WriteString("\n")
	b.WriteString(m.filterBar())
	b.WriteString("\n")
	if tags := m.activeTagsLine(); tags != "" {
		b.WriteString(tags)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch {
	case m.pane == PaneTags:
		b.WriteString(m.tagsPane())
	case m.mode == ModeMap:
		b.WriteString(m.mapPane())
	default:
		b.WriteString(m.listPane())
	}
	b.WriteString("\n")

	if p := m.selected(); m.showDetail && p != nil {
		b.WriteString(BoxStyle.Width(max(m.width-4, 20)).Render(m.detail(p)))
		b.WriteString("\n")
	}

	if m.status != "" {
		if m.statusErr {
			b.WriteString(ErrorStyle.Render(m.status))
		} else {
			b.WriteString(StatusStyle.Render(m.status))
		}
		b.WriteString("\n")
	}
	b.WriteString(InfoStyle.Render(m.help()))
	return b.String()
}

func (m Model) filterBar() string {
	count := 0
	for _, c := range m.categories {
		if c.Name == m.criteria.Category {
			count = c.Count
			break
		}
	}
	bar := InfoStyle.Render(fmt.Sprintf("Categoría: %s (%d) · Zona: %s · Orden: %s · %d resultados",
		m.registry.Label(m.criteria.Category), count,
		zoneLabel(m.zones, m.criteria.Zone), sortLabel(m.criteria.Sort), len(m.visible)))
	if m.address.HasActiveParams() {
		bar += " " + StatusStyle.Render("● filtros activos")
	}
	return bar
}

func (m Model) activeTagsLine() string {
	if m.criteria.Tags.Len() == 0 {
		return ""
	}
	parts := make([]string, 0, m.criteria.Tags.Len())
	for _, t := range m.criteria.Tags {
		parts = append(parts, ActiveTagStyle.Render("#"+t))
	}
	return "Etiquetas: " + strings.Join(parts, " ")
}

// listRows is how many proposals fit on screen next to the other blocks.
func (m Model) listRows() int {
	rows := m.height - 12
	if m.showDetail {
		rows -= 10
	}
	return max(rows, 3)
}

func (m Model) listPane() string {
	if len(m.visible) == 0 {
		return InfoStyle.Render("No hay propuestas que coincidan con los filtros.")
	}

	rows := m.listRows()
	start := 0
	if m.list.cursor >= rows {
		start = m.list.cursor - rows + 1
	}
	end := min(start+rows, len(m.visible))

	var b strings.Builder
	for i := start; i < end; i++ {
		p := m.visible[i]
		line := m.row(p)
		if i == m.list.cursor {
			line = SelectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString(InfoStyle.Render(fmt.Sprintf("%d-%d de %d", start+1, end, len(m.visible))))
	return b.String()
}

func (m Model) row(p *models.Proposal) string {
	style := m.registry.Style(p.Category)
	urgent := " "
	if p.Urgent {
		urgent = "!"
	}
	located := " "
	if p.Located() {
		located = "◎"
	}
	titleWidth := max(m.width-30, 20)
	return fmt.Sprintf("%s %s%s %-*s %6d apoyos",
		style.Emoji, urgent, located, titleWidth, truncate(p.Title, titleWidth), p.Votes)
}

func (m Model) tagsPane() string {
	tags := m.popularTags()
	if len(tags) == 0 {
		return InfoStyle.Render("No hay etiquetas.")
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render("Etiquetas populares"))
	b.WriteString("\n")
	for i, tc := range tags {
		label := fmt.Sprintf("#%s (%d)", tc.Tag, tc.Count)
		switch {
		case m.criteria.Tags.Has(tc.Tag):
			label = ActiveTagStyle.Render(label)
		default:
			label = TagStyle.Render(label)
		}
		cursor := "  "
		if i == m.tagCursor {
			cursor = "> "
		}
		b.WriteString(cursor + label + "\n")
	}
	if m.showAllTags {
		b.WriteString(InfoStyle.Render("'a' para ver menos"))
	} else {
		b.WriteString(InfoStyle.Render("'a' para ver todas"))
	}
	return b.String()
}

func (m Model) mapPane() string {
	width := max(m.width-4, 20)
	height := max(m.height-14, 8)

	var b strings.Builder
	b.WriteString(BoxStyle.Render(m.mapView.Render(width, height)))
	b.WriteString("\n")

	legend := fmt.Sprintf("%d propuestas con ubicación", m.mapView.Len())
	if id := m.mapView.Focus(); id != "" {
		for _, p := range m.visible {
			if p.ID == id {
				legend = fmt.Sprintf("◉ %s · %d apoyos", p.Title, p.Votes)
				break
			}
		}
	}
	b.WriteString(InfoStyle.Render(legend))
	return b.String()
}

func (m Model) detail(p *models.Proposal) string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render(p.Title))
	b.WriteString("\n")
	if p.Urgent {
		b.WriteString(UrgentStyle.Render("Urgente"))
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "%s · %s · %d apoyos\n",
		categoryStyle(m.registry.Style(p.Category).Color).Render(m.registry.Label(p.Category)),
		zoneLabel(m.zones, p.EffectiveZoneID()), p.Votes)
	b.WriteString(p.Summary)
	b.WriteString("\n")
	if len(p.Tags) > 0 {
		b.WriteString(InfoStyle.Render("#" + strings.Join(p.Tags, " #")))
		b.WriteString("\n")
	}
	if p.FullDescription != "" {
		b.WriteString("\n")
		b.WriteString(truncate(p.FullDescription, detailDescriptionRunes))
		b.WriteString("\n")
	}
	if p.ExternalURL != "" && p.ExternalURL != models.DefaultExternalURL {
		b.WriteString(InfoStyle.Render(p.ExternalURL))
	}
	return b.String()
}

func (m Model) help() string {
	switch m.pane {
	case PaneSearch:
		return "Enter: aplicar · Esc: volver"
	case PaneTags:
		return "↑/↓: mover · Espacio: activar · a: todas · x: limpiar · Esc: volver"
	}
	return "/: buscar · c/C: categoría · z/Z: zona · t: etiquetas · x: limpiar etiquetas · s: orden · " +
		"Enter: detalle · m: ver en mapa · Tab: lista/mapa · u: enlace · r: restablecer · q: salir"
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 1 {
		return string(r[:max])
	}
	return string(r[:max-1]) + "…"
}
