package storage

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"participativos/models"
)

var csvHeader = []string{
	"id", "title", "category", "zone", "zone_id", "votes", "urgent",
	"lat", "lng", "tags", "summary", "external_url",
}

// CSVWriter exports proposals as CSV. It is safe for concurrent use.
type CSVWriter struct {
	mu     sync.Mutex
	closer io.Closer
	writer *csv.Writer
}

// NewCSVWriter creates (or truncates) the CSV file at the given path and
// writes the header row. Intermediate directories are created automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	w, err := NewCSVStream(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	w.closer = f
	return w, nil
}

// NewCSVStream writes CSV to an existing writer, such as stdout. Close
// flushes but does not close w.
func NewCSVStream(w io.Writer) (*CSVWriter, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	cw.Flush()
	return &CSVWriter{writer: cw}, cw.Error()
}

// Write appends one row per proposal.
func (c *CSVWriter) Write(proposals []*models.Proposal) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, p := range proposals {
		row := []string{
			p.ID,
			p.Title,
			p.Category,
			p.Zone,
			formatZoneID(p.ZoneID),
			strconv.Itoa(p.Votes),
			strconv.FormatBool(p.Urgent),
			formatCoordinate(p.Lat),
			formatCoordinate(p.Lng),
			strings.Join(p.Tags, "|"),
			p.Summary,
			p.ExternalURL,
		}
		if err := c.writer.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file, if this writer owns one.
func (c *CSVWriter) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.writer.Flush()
	if err := c.writer.Error(); err != nil {
		return err
	}
	if c.closer != nil {
		return c.closer.Close()
	}
	return nil
}

func formatCoordinate(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}

func formatZoneID(id int) string {
	if id <= 0 {
		return ""
	}
	return strconv.Itoa(id)
}
