package fetch

import (
	"context"
	"fmt"
	"strings"

	"github.com/mmcdole/gofeed"
)

// FeedEntry is one recent entry title from an RSS/Atom source.
type FeedEntry struct {
	Title string
	Link  string
}

// FetchFeedTitles retrieves url, parses it as a feed, and returns up to
// limit entry titles in feed order. A document that does not parse as a
// feed returns an error - callers fall back to FetchMeta.
func (f *Fetcher) FetchFeedTitles(ctx context.Context, url string, limit int) ([]FeedEntry, error) {
	body, err := f.get(ctx, url)
	if err != nil {
		return nil, err
	}

	feed, err := gofeed.NewParser().ParseString(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	entries := make([]FeedEntry, 0, limit)
	for _, item := range feed.Items {
		title := collapse(item.Title)
		if title == "" {
			continue
		}
		entries = append(entries, FeedEntry{
			Title: title,
			Link:  strings.TrimSpace(item.Link),
		})
		if len(entries) == limit {
			break
		}
	}
	return entries, nil
}
