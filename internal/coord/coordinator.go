// Package coord drives the periodic public-source refresh cycle.
//
// The coordinator only produces refresh candidates; it never touches the
// live store. Candidates are handed to the UI event loop, which applies
// them against whatever the store looks like at that moment. A slow fetch
// therefore cannot clobber edits made while it was in flight.
package coord

import (
	"context"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/taransingh1995/GCC-Pulse/internal/fetch"
	"github.com/taransingh1995/GCC-Pulse/internal/logging"
	"github.com/taransingh1995/GCC-Pulse/internal/model"
	"github.com/taransingh1995/GCC-Pulse/internal/parse"
)

// fetchTimeout is the timeout for each individual source fetch.
const fetchTimeout = 30 * time.Second

// feedEntryLimit caps how many entry titles a feed source contributes
// per cycle.
const feedEntryLimit = 5

// RefreshDueMsg tells the UI a periodic refresh should run.
type RefreshDueMsg struct{}

// Candidate is one potential brief item produced by a refresh pass.
// Title is the page or feed-entry title; URL is the best link we have
// for it (canonical URL when the page advertises one).
type Candidate struct {
	Title string
	URL   string
}

// metaFetcher is the slice of fetch.Fetcher the coordinator uses.
// An interface so tests can stub the network.
type metaFetcher interface {
	FetchMeta(ctx context.Context, url string) (fetch.Meta, error)
	FetchFeedTitles(ctx context.Context, url string, limit int) ([]fetch.FeedEntry, error)
}

// Coordinator runs refresh cycles against the configured public sources.
type Coordinator struct {
	fetcher metaFetcher
	wg      sync.WaitGroup
}

// NewCoordinator creates a Coordinator backed by the real fetcher.
func NewCoordinator(f *fetch.Fetcher) *Coordinator {
	return NewCoordinatorWithFetcher(f)
}

// NewCoordinatorWithFetcher allows injecting a custom fetcher (for testing).
func NewCoordinatorWithFetcher(f metaFetcher) *Coordinator {
	return &Coordinator{fetcher: f}
}

// Start begins the refresh timer. Each tick sends RefreshDueMsg to the
// program; the UI decides whether to act on it. Context cancellation is
// the only stop mechanism.
func (c *Coordinator) Start(ctx context.Context, program *tea.Program, interval time.Duration) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				program.Send(RefreshDueMsg{})
			}
		}
	}()
}

// Wait blocks until the background goroutine exits.
// Call after canceling the context passed to Start.
func (c *Coordinator) Wait() {
	c.wg.Wait()
}

// RunOnce polls every source sequentially and returns the deduplicated
// candidate titles. Per-source failures are logged and skipped - one bad
// source never aborts the batch, and a batch where everything fails just
// returns zero candidates.
func (c *Coordinator) RunOnce(ctx context.Context, sources []model.PublicSource) []Candidate {
	var candidates []Candidate
	seen := make(map[string]bool)

	add := func(title, url string) {
		title = strings.TrimSpace(title)
		if title == "" || seen[title] {
			return
		}
		seen[title] = true
		candidates = append(candidates, Candidate{Title: title, URL: url})
	}

	for _, src := range sources {
		if ctx.Err() != nil {
			break
		}
		srcCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
		c.pollSource(srcCtx, src, add)
		cancel()
	}

	logging.Debug("Refresh cycle complete", "sources", len(sources), "candidates", len(candidates))
	return candidates
}

// pollSource fetches one source and feeds its titles to add. News-kind
// sources are tried as feeds first; anything that is not a feed falls
// back to the page-title scrape.
func (c *Coordinator) pollSource(ctx context.Context, src model.PublicSource, add func(title, url string)) {
	if src.Kind == model.KindNews {
		entries, err := c.fetcher.FetchFeedTitles(ctx, src.URL, feedEntryLimit)
		if err == nil && len(entries) > 0 {
			for _, e := range entries {
				link := e.Link
				if link == "" {
					link = src.URL
				}
				add(e.Title, link)
			}
			return
		}
	}

	meta, err := c.fetcher.FetchMeta(ctx, src.URL)
	if err != nil {
		logging.Warn("Source fetch failed", "source", src.Label, "error", err)
		return
	}

	url := meta.CanonicalURL
	if url == "" {
		url = src.URL
	}
	add(meta.Title, url)
}

// Apply merges refresh candidates into the store. Candidates whose title
// already exists as a brief headline are dropped (exact match only); the
// rest become synthetic brief items prepended in candidate order. When
// nothing survives dedup the input store is returned unchanged, so callers
// can skip the persistence write.
func Apply(s model.Store, candidates []Candidate, b *parse.Builder) (model.Store, int) {
	existing := make(map[string]bool, len(s.Brief))
	for _, item := range s.Brief {
		existing[item.Headline] = true
	}

	var fresh []model.BriefItem
	for _, c := range candidates {
		item := b.SyntheticBrief(c.Title, c.URL)
		if existing[item.Headline] {
			continue
		}
		existing[item.Headline] = true
		fresh = append(fresh, item)
	}

	if len(fresh) == 0 {
		return s, 0
	}

	next := s
	next.Brief = append(fresh, s.Brief...)
	return next, len(fresh)
}
