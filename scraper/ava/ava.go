package ava

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/chromedp"

	"participativos/config"
	"participativos/models"
	"participativos/utils"
)

const siteURL = "https://www10.ava.es"

const extractScript = `
(function() {
	var badge = document.querySelector('span.total-supports');
	return {
		supports: badge ? (badge.innerText || badge.textContent || '') : '',
		text: document.body ? document.body.innerText : ''
	};
})()
`

// fetchFunc loads one proposal page.
type fetchFunc func(ctx context.Context, url string) (*page, error)

// Refresher reads current support counts from the municipal proposal pages.
type Refresher struct {
	cfg     *config.Config
	logger  *utils.Logger
	pool    *utils.WorkerPool
	visited *utils.URLSet
	retry   *utils.RetryConfig
}

// New creates a ready-to-use Refresher.
func New(cfg *config.Config, logger *utils.Logger) *Refresher {
	return &Refresher{
		cfg:     cfg,
		logger:  logger,
		pool:    utils.NewWorkerPool(cfg.MaxConcurrency, cfg.RateLimitMs),
		visited: utils.NewURLSet(),
		retry: &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		},
	}
}

// Refresh visits every proposal page once and returns one update per visited
// proposal. Proposals without a page URL are skipped. A page that cannot be
// read yields an update with Err set and the old count left in place.
func (r *Refresher) Refresh(ctx context.Context, proposals []*models.RawProposal) ([]models.VoteUpdate, error) {
	chromeBin := r.cfg.ChromeBin
	if chromeBin == "" {
		chromeBin = findChromeBinary()
	}
	r.logger.Info("[ava] Using browser binary: %s", chromeBin)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.Flag("blink-settings", "imagesEnabled=false"),
		chromedp.UserAgent("Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 "+
			"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
	)
	if chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	// Suppress chromedp log noise
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancelBrowser()

	// Start the browser up front so workers share one process.
	if err := chromedp.Run(browserCtx); err != nil {
		return nil, fmt.Errorf("ava: start browser: %w", err)
	}

	return r.collect(browserCtx, proposals, r.fetchPage)
}

func (r *Refresher) collect(ctx context.Context, proposals []*models.RawProposal, fetch fetchFunc) ([]models.VoteUpdate, error) {
	var (
		mu      sync.Mutex
		updates = make([]models.VoteUpdate, 0, len(proposals))
	)

	for _, raw := range proposals {
		url := proposalURL(raw.URL)
		code := raw.Code.String()
		if url == "" || code == "" {
			r.logger.Debug("[ava] Skipping proposal %q without page URL", code)
			continue
		}
		if !r.visited.Add(url) {
			r.logger.Debug("[ava] Skipping duplicate: %s", url)
			continue
		}

		update := models.VoteUpdate{Code: code, OldVotes: currentVotes(raw)}
		err := r.pool.Submit(ctx, func() {
			var p *page
			err := r.retry.Do(ctx, "votes "+code, func() error {
				var ferr error
				p, ferr = fetch(ctx, url)
				return ferr
			})

			u := update
			if err != nil {
				u.NewVotes, u.Err = u.OldVotes, err
				r.logger.Warn("[ava] Proposal %s failed: %v", code, err)
			} else if n, ok := ParseVotes(p.Supports, p.Text); ok {
				u.NewVotes = n
			} else {
				u.NewVotes, u.Err = u.OldVotes, fmt.Errorf("ava: no vote count on %s", url)
				r.logger.Warn("[ava] No vote count found for proposal %s", code)
			}

			mu.Lock()
			updates = append(updates, u)
			mu.Unlock()
		})
		if err != nil {
			r.pool.Wait()
			return updates, fmt.Errorf("ava: refresh interrupted: %w", err)
		}
	}
	r.pool.Wait()

	changed := 0
	for _, u := range updates {
		if u.Changed() {
			changed++
		}
	}
	r.logger.Info("[ava] Refresh complete: %d visited, %d changed", len(updates), changed)
	return updates, nil
}

func (r *Refresher) fetchPage(browserCtx context.Context, url string) (*page, error) {
	ctx, cancel := chromedp.NewContext(browserCtx)
	defer cancel()

	ctx, cancelTimeout := context.WithTimeout(ctx, 30*time.Second)
	defer cancelTimeout()

	var p page
	err := chromedp.Run(ctx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Evaluate(extractScript, &p),
	)
	if err != nil {
		return nil, fmt.Errorf("chromedp votes extract: %w", err)
	}
	return &p, nil
}

func currentVotes(raw *models.RawProposal) int {
	var n int
	if _, err := fmt.Sscanf(raw.Votes.String(), "%d", &n); err != nil || n < 0 {
		return 0
	}
	return n
}

// proposalURL makes a record's url absolute against the municipal site.
func proposalURL(u string) string {
	u = strings.TrimSpace(u)
	if u == "" || u == models.DefaultExternalURL {
		return ""
	}
	if strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") {
		return u
	}
	return siteURL + "/" + strings.TrimPrefix(u, "/")
}

// findChromeBinary locates Chrome/Chromium binary.
func findChromeBinary() string {
	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
