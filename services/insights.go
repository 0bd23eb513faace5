package services

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"participativos/models"
	"participativos/utils"
)

const topVotedCount = 5

type InsightService struct {
	logger *utils.Logger
}

func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger}
}

func (s *InsightService) Generate(proposals []*models.Proposal) *models.InsightReport {
	report := &models.InsightReport{
		ByCategory: make(map[string]int),
		ByZone:     make(map[string]int),
	}

	if len(proposals) == 0 {
		return report
	}

	report.TotalProposals = len(proposals)

	for _, p := range proposals {
		report.TotalVotes += p.Votes
		if p.Located() {
			report.Located++
		}
		if p.Urgent {
			report.Urgent++
		}
		if p.Category == models.CategoryRejected {
			report.Rejected++
		}
		report.ByCategory[p.Category]++
		if p.Zone != "" {
			report.ByZone[p.Zone]++
		}
		if report.MostVoted == nil || p.Votes > report.MostVoted.Votes {
			report.MostVoted = p
		}
	}
	report.AverageVotes = round2(float64(report.TotalVotes) / float64(len(proposals)))

	report.TopVoted = Filter(proposals, models.DefaultCriteria())
	if len(report.TopVoted) > topVotedCount {
		report.TopVoted = report.TopVoted[:topVotedCount]
	}

	s.logger.Debug("[insights] Report over %d proposals, %d votes", report.TotalProposals, report.TotalVotes)
	return report
}

func (s *InsightService) Print(w io.Writer, r *models.InsightReport) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Fprintf(w, "\n\033[1;35m%s\033[0m\n", sep)
	fmt.Fprintf(w, "\033[1;35m  📊 PRESUPUESTOS PARTICIPATIVOS\033[0m\n")
	fmt.Fprintf(w, "\033[1;35m%s\033[0m\n\n", sep)

	fmt.Fprintf(w, "\033[1;33m  Resumen\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	fmt.Fprintf(w, "  Propuestas          : \033[1m%d\033[0m\n", r.TotalProposals)
	fmt.Fprintf(w, "  Apoyos totales      : \033[1m%d\033[0m\n", r.TotalVotes)
	fmt.Fprintf(w, "  Media de apoyos     : \033[1m%.2f\033[0m\n", r.AverageVotes)
	fmt.Fprintf(w, "  Con ubicación       : \033[1m%d\033[0m\n", r.Located)
	fmt.Fprintf(w, "  Urgentes            : \033[1m%d\033[0m\n", r.Urgent)
	fmt.Fprintf(w, "  Inadmitidas         : \033[1m%d\033[0m\n", r.Rejected)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "\033[1;33m  Más apoyadas\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	if len(r.TopVoted) == 0 {
		fmt.Fprintf(w, "  No hay propuestas\n")
	} else {
		for i, p := range r.TopVoted {
			fmt.Fprintf(w, "  \033[1m%d.\033[0m %-40s \033[1;32m%d\033[0m\n",
				i+1, truncate(p.Title, 38), p.Votes)
		}
	}
	fmt.Fprintln(w)

	printHistogram(w, "Por categoría", thin, r.ByCategory)
	printHistogram(w, "Por zona", thin, r.ByZone)

	fmt.Fprintf(w, "\033[1;35m%s\033[0m\n\n", sep)
}

func printHistogram(w io.Writer, title, thin string, counts map[string]int) {
	fmt.Fprintf(w, "\033[1;33m  %s\033[0m\n", title)
	fmt.Fprintf(w, "  %s\n", thin)
	if len(counts) == 0 {
		fmt.Fprintf(w, "  Sin datos\n\n")
		return
	}

	type keyCount struct {
		key   string
		count int
	}
	rows := make([]keyCount, 0, len(counts))
	for k, n := range counts {
		rows = append(rows, keyCount{k, n})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].count != rows[j].count {
			return rows[i].count > rows[j].count
		}
		return rows[i].key < rows[j].key
	})

	largest := rows[0].count
	for _, kc := range rows {
		width := kc.count * 20 / largest
		if width == 0 {
			width = 1
		}
		fmt.Fprintf(w, "  %-30s %s (%d)\n", truncate(kc.key, 28), strings.Repeat("█", width), kc.count)
	}
	fmt.Fprintln(w)
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
