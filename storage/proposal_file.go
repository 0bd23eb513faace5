package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"participativos/models"
)

// ProposalFile is the primary proposals JSON file opened for a vote refresh.
// Records are kept as raw JSON objects so fields this program does not know
// about survive the rewrite.
type ProposalFile struct {
	path    string
	records []map[string]json.RawMessage
}

// OpenProposalFile reads and parses the file at path.
func OpenProposalFile(path string) (*ProposalFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("proposals: read %q: %w", path, err)
	}
	var records []map[string]json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("proposals: parse %q: %w", path, err)
	}
	return &ProposalFile{path: path, records: records}, nil
}

// RawProposals decodes every record.
func (f *ProposalFile) RawProposals() ([]*models.RawProposal, error) {
	out := make([]*models.RawProposal, 0, len(f.records))
	for i, rec := range f.records {
		data, err := json.Marshal(rec)
		if err != nil {
			return nil, fmt.Errorf("proposals: record %d: %w", i, err)
		}
		rp := &models.RawProposal{}
		if err := json.Unmarshal(data, rp); err != nil {
			return nil, fmt.Errorf("proposals: record %d: %w", i, err)
		}
		out = append(out, rp)
	}
	return out, nil
}

// ApplyVotes sets the votes field of every record whose code has a changed,
// error-free update. It returns the number of records modified.
func (f *ProposalFile) ApplyVotes(updates []models.VoteUpdate) (int, error) {
	byCode := make(map[string]int, len(updates))
	for _, u := range updates {
		if u.Changed() {
			byCode[u.Code] = u.NewVotes
		}
	}

	changed := 0
	for i, rec := range f.records {
		var code models.Loose
		if raw, ok := rec["code"]; ok {
			if err := json.Unmarshal(raw, &code); err != nil {
				return changed, fmt.Errorf("proposals: record %d code: %w", i, err)
			}
		}
		votes, ok := byCode[code.String()]
		if !ok {
			continue
		}
		rec["votes"] = json.RawMessage(fmt.Sprintf("%d", votes))
		changed++
	}
	return changed, nil
}

// Backup copies the file into dir with a timestamped name and returns the
// backup path.
func (f *ProposalFile) Backup(dir string, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("proposals: create backup dir: %w", err)
	}
	base := strings.TrimSuffix(filepath.Base(f.path), filepath.Ext(f.path))
	dst := filepath.Join(dir, fmt.Sprintf("%s_backup_%s.json", base, now.Format("20060102_150405")))

	src, err := os.Open(f.path)
	if err != nil {
		return "", fmt.Errorf("proposals: open for backup: %w", err)
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("proposals: create backup: %w", err)
	}
	if _, err := io.Copy(out, src); err != nil {
		_ = out.Close()
		return "", fmt.Errorf("proposals: copy backup: %w", err)
	}
	return dst, out.Close()
}

// Save rewrites the file atomically: indented, with non-ASCII text and
// markup characters left as is.
func (f *ProposalFile) Save() error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(f.records); err != nil {
		return fmt.Errorf("proposals: encode: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("proposals: write %q: %w", tmp, err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("proposals: replace %q: %w", f.path, err)
	}
	return nil
}
