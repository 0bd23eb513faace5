package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"participativos/models"
)

func TestProposalFileApplyVotesPreservesFields(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "proposals_data.json", `[
		{"code": 7, "title": "Parque <nuevo>", "votes": 5, "budget": "12.000 €"},
		{"code": "8", "title": "Carril bici", "votes": 12}
	]`)

	f, err := OpenProposalFile(path)
	if err != nil {
		t.Fatal(err)
	}
	raw, err := f.RawProposals()
	if err != nil {
		t.Fatal(err)
	}
	if len(raw) != 2 || raw[0].Code.String() != "7" {
		t.Fatalf("RawProposals: %+v", raw)
	}

	n, err := f.ApplyVotes([]models.VoteUpdate{
		{Code: "7", OldVotes: 5, NewVotes: 9},
		{Code: "8", OldVotes: 12, NewVotes: 12},
	})
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("changed: got %d, want 1", n)
	}
	if err := f.Save(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "12.000 €") || !strings.Contains(string(data), "<nuevo>") {
		t.Errorf("unknown fields or text were altered:\n%s", data)
	}

	var back []map[string]any
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if back[0]["votes"].(float64) != 9 || back[1]["votes"].(float64) != 12 {
		t.Errorf("votes after save: %v, %v", back[0]["votes"], back[1]["votes"])
	}
}

func TestProposalFileBackup(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "proposals_data.json", `[]`)
	f, err := OpenProposalFile(path)
	if err != nil {
		t.Fatal(err)
	}

	now := time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC)
	dst, err := f.Backup(filepath.Join(dir, "backups"), now)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(dst) != "proposals_data_backup_20250301_103000.json" {
		t.Errorf("backup name: got %q", filepath.Base(dst))
	}
	if data, _ := os.ReadFile(dst); string(data) != "[]" {
		t.Errorf("backup content: %q", data)
	}
}
