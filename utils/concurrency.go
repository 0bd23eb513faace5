package utils

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"
)

// WorkerPool runs jobs on a bounded number of goroutines and spaces job
// starts at least interval apart.
type WorkerPool struct {
	sem      *semaphore.Weighted
	interval time.Duration
	wg       sync.WaitGroup

	mu        sync.Mutex
	lastStart time.Time
}

// NewWorkerPool creates a WorkerPool with the given concurrency and rate limit.
func NewWorkerPool(maxWorkers, rateLimitMs int) *WorkerPool {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	return &WorkerPool{
		sem:      semaphore.NewWeighted(int64(maxWorkers)),
		interval: time.Duration(rateLimitMs) * time.Millisecond,
	}
}

// Submit blocks until a worker slot is free, then runs job in its own
// goroutine. It returns ctx.Err() without running job if ctx ends first.
func (wp *WorkerPool) Submit(ctx context.Context, job func()) error {
	if err := wp.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	wp.wg.Add(1)

	go func() {
		defer wp.wg.Done()
		defer wp.sem.Release(1)

		wp.enforceRateLimit()
		job()
	}()
	return nil
}

// Wait blocks until all submitted jobs have completed.
func (wp *WorkerPool) Wait() {
	wp.wg.Wait()
}

func (wp *WorkerPool) enforceRateLimit() {
	wp.mu.Lock()
	defer wp.mu.Unlock()

	if !wp.lastStart.IsZero() {
		if elapsed := time.Since(wp.lastStart); elapsed < wp.interval {
			time.Sleep(wp.interval - elapsed)
		}
	}
	wp.lastStart = time.Now()
}

// URLSet is a thread-safe set for tracking visited URLs.
type URLSet struct {
	mu   sync.RWMutex
	seen map[string]struct{}
}

// NewURLSet creates an empty URLSet.
func NewURLSet() *URLSet {
	return &URLSet{seen: make(map[string]struct{})}
}

// Add returns true if the URL was newly added, false if already present.
func (s *URLSet) Add(url string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.seen[url]; exists {
		return false
	}
	s.seen[url] = struct{}{}
	return true
}

// Size returns the number of unique URLs tracked.
func (s *URLSet) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.seen)
}
