package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"participativos/models"
	"participativos/utils"
)

const maxSourceBytes = 64 << 20

// Loader reads the proposals file and the metadata file. A source is either
// a local path or an http(s) URL.
type Loader struct {
	ProposalsSource string
	MetadataSource  string

	client *http.Client
	retry  *utils.RetryConfig
	logger *utils.Logger
}

// NewLoader creates a Loader. timeout bounds each HTTP request.
func NewLoader(proposalsSource, metadataSource string, timeout time.Duration, maxRetries int, logger *utils.Logger) *Loader {
	return &Loader{
		ProposalsSource: proposalsSource,
		MetadataSource:  metadataSource,
		client:          &http.Client{Timeout: timeout},
		retry: &utils.RetryConfig{
			MaxAttempts: maxRetries,
			BaseDelay:   500 * time.Millisecond,
			Logger:      logger,
		},
		logger: logger,
	}
}

// Load fetches both sources concurrently. It fails if either one fails.
func (l *Loader) Load(ctx context.Context) ([]*models.RawProposal, []*models.ProposalMetadata, error) {
	var (
		raw  []*models.RawProposal
		meta []*models.ProposalMetadata
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return l.decode(gctx, l.ProposalsSource, &raw)
	})
	g.Go(func() error {
		return l.decode(gctx, l.MetadataSource, &meta)
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	l.logger.Info("[loader] Loaded %d proposals and %d metadata records", len(raw), len(meta))
	return raw, meta, nil
}

func (l *Loader) decode(ctx context.Context, source string, into any) error {
	data, err := l.read(ctx, source)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf")), into); err != nil {
		return fmt.Errorf("loader: parse %q: %w", source, err)
	}
	return nil
}

func (l *Loader) read(ctx context.Context, source string) ([]byte, error) {
	if source == "" {
		return nil, fmt.Errorf("loader: empty source")
	}
	if !isRemote(source) {
		data, err := os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("loader: read %q: %w", source, err)
		}
		return data, nil
	}

	var data []byte
	err := l.retry.Do(ctx, "fetch "+source, func() error {
		var ferr error
		data, ferr = l.fetch(ctx, source)
		return ferr
	})
	return data, err
}

func (l *Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("loader: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("loader: GET %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("loader: GET %s: status %d", url, resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxSourceBytes))
	if err != nil {
		return nil, fmt.Errorf("loader: read body of %s: %w", url, err)
	}
	return data, nil
}

func isRemote(source string) bool {
	s := strings.ToLower(source)
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
