// Package fetch retrieves lightweight "page changed" signals from public
// source URLs: a page title and canonical URL per source, plus recent entry
// titles when the source turns out to be an RSS/Atom feed.
//
// Title extraction is a regex scan, not a full HTML parse - sources are
// public landing pages and only the <title>/og:title pair matters. Errors
// never escape as panics; every failure surfaces as an error return that
// callers are expected to swallow per source.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// userAgent identifies the app to the sources it polls.
const userAgent = "GCC-Pulse/0.1 (+https://github.com/taransingh1995/GCC-Pulse)"

// maxBodyBytes caps how much of a page is read for the regex scan.
const maxBodyBytes = 1 << 20

// Meta is the title/canonical pair extracted from a page. Either field may
// be empty when the page does not advertise it.
type Meta struct {
	Title        string
	CanonicalURL string
}

// Fetcher retrieves page metadata and feed titles. Requests are throttled
// by a shared limiter so a refresh batch stays polite.
type Fetcher struct {
	client  *http.Client
	limiter *rate.Limiter
}

// NewFetcher creates a Fetcher with the given per-request timeout.
func NewFetcher(timeout time.Duration) *Fetcher {
	return &Fetcher{
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Every(500*time.Millisecond), 1),
	}
}

var (
	titleRe     = regexp.MustCompile(`(?i)<title[^>]*>([^<]+)</title>`)
	ogTitleRe   = regexp.MustCompile(`(?i)property=["']og:title["'][^>]*content=["']([^"']+)["']`)
	canonicalRe = regexp.MustCompile(`(?i)<link[^>]*rel=["']canonical["'][^>]*href=["']([^"']+)["'][^>]*>`)
	wsRe        = regexp.MustCompile(`\s+`)
)

// FetchMeta retrieves url and extracts its title and canonical URL.
func (f *Fetcher) FetchMeta(ctx context.Context, url string) (Meta, error) {
	body, err := f.get(ctx, url)
	if err != nil {
		return Meta{}, err
	}

	return Meta{
		Title:        extractTitle(body),
		CanonicalURL: extractCanonical(body),
	}, nil
}

// get performs a rate-limited GET and returns up to maxBodyBytes of body.
func (f *Fetcher) get(ctx context.Context, url string) (string, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml,application/rss+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read body: %w", err)
	}
	return string(body), nil
}

// extractTitle returns the <title> text, falling back to og:title.
func extractTitle(html string) string {
	if m := titleRe.FindStringSubmatch(html); m != nil {
		return collapse(m[1])
	}
	if m := ogTitleRe.FindStringSubmatch(html); m != nil {
		return collapse(m[1])
	}
	return ""
}

// extractCanonical returns the rel=canonical href, or "".
func extractCanonical(html string) string {
	if m := canonicalRe.FindStringSubmatch(html); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

func collapse(s string) string {
	return strings.TrimSpace(wsRe.ReplaceAllString(s, " "))
}
