package services

import (
	"bytes"
	"strings"
	"testing"

	"participativos/models"
)

func TestInsightCounts(t *testing.T) {
	svc := NewInsightService(newTestLogger())
	r := svc.Generate(sampleProposals())
	if r.TotalProposals != 5 {
		t.Errorf("TotalProposals: got %d, want 5", r.TotalProposals)
	}
	if r.TotalVotes != 275 {
		t.Errorf("TotalVotes: got %d, want 275", r.TotalVotes)
	}
	if r.AverageVotes != 55 {
		t.Errorf("AverageVotes: got %.2f, want 55", r.AverageVotes)
	}
}

func TestInsightMostVoted(t *testing.T) {
	svc := NewInsightService(newTestLogger())
	r := svc.Generate(sampleProposals())
	if r.MostVoted == nil {
		t.Fatal("MostVoted should not be nil")
	}
	if r.MostVoted.ID != "2" {
		t.Errorf("MostVoted: got %q, want %q", r.MostVoted.ID, "2")
	}
}

func TestInsightTopVoted(t *testing.T) {
	svc := NewInsightService(newTestLogger())
	ps := sampleProposals()
	ps = append(ps, &models.Proposal{ID: "11", Votes: 1}, &models.Proposal{ID: "12", Votes: 2})

	r := svc.Generate(ps)
	if len(r.TopVoted) != topVotedCount {
		t.Fatalf("TopVoted len: got %d, want %d", len(r.TopVoted), topVotedCount)
	}
	if r.TopVoted[0].Votes != 120 {
		t.Errorf("TopVoted[0].Votes: got %d, want 120", r.TopVoted[0].Votes)
	}
}

func TestInsightGrouping(t *testing.T) {
	svc := NewInsightService(newTestLogger())
	r := svc.Generate(sampleProposals())
	if r.ByZone["3. Delicias"] != 2 {
		t.Errorf("Delicias count: got %d, want 2", r.ByZone["3. Delicias"])
	}
	if r.ByCategory["Medio Ambiente"] != 1 {
		t.Errorf("Medio Ambiente count: got %d, want 1", r.ByCategory["Medio Ambiente"])
	}
}

func TestInsightEmptyInput(t *testing.T) {
	svc := NewInsightService(newTestLogger())
	r := svc.Generate(nil)
	if r.TotalProposals != 0 || r.MostVoted != nil {
		t.Errorf("expected empty report, got %+v", r)
	}
}

func TestInsightPrint(t *testing.T) {
	svc := NewInsightService(newTestLogger())
	var buf bytes.Buffer
	svc.Print(&buf, svc.Generate(sampleProposals()))

	out := buf.String()
	for _, want := range []string{"Carril bici Paseo Zorrilla", "Por categoría", "3. Delicias"} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q", want)
		}
	}
}
