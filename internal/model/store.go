package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// snapshotPatch mirrors Store with pointer fields so Merge can tell a key
// that is present in the imported document (even as an empty list) from one
// that is absent. This is what gives collections their
// wholesale-replace-if-present semantics.
type snapshotPatch struct {
	Meta      *metaPatch      `json:"meta"`
	Settings  *settingsPatch  `json:"settings"`
	Watchlist *watchlistPatch `json:"watchlist"`
	Sources   []PublicSource  `json:"sources"`
	Ratings   *[]RatingItem   `json:"ratings"`
	Deals     *[]DealItem     `json:"deals"`
	Brief     *[]BriefItem    `json:"brief"`
}

type metaPatch struct {
	Version     *int    `json:"version"`
	LastSeenISO *string `json:"lastSeenIso"`
}

type settingsPatch struct {
	RefreshMinutes *int `json:"refreshMinutes"`
	MaxDaysToKeep  *int `json:"maxDaysToKeep"`
}

type watchlistPatch struct {
	Countries *[]string `json:"countries"`
	Issuers   *[]string `json:"issuers"`
	Banks     *[]string `json:"banks"`
}

// Merge applies an externally supplied JSON snapshot over current.
//
// Precedence: meta, settings and watchlist merge key-by-key (imported keys
// override, current keys fill gaps). Sources are replaced wholesale only
// when the imported list is non-empty. The three item collections are
// replaced wholesale whenever the key is present, even if the imported list
// is empty. No per-item reconciliation happens.
//
// A parse failure is returned to the caller; current is unchanged.
func Merge(current Store, doc []byte) (Store, error) {
	var patch snapshotPatch
	if err := json.Unmarshal(doc, &patch); err != nil {
		return current, fmt.Errorf("failed to parse import: %w", err)
	}

	next := current

	if patch.Meta != nil {
		if patch.Meta.Version != nil {
			next.Meta.Version = *patch.Meta.Version
		}
		if patch.Meta.LastSeenISO != nil {
			next.Meta.LastSeenISO = *patch.Meta.LastSeenISO
		}
	}
	if patch.Settings != nil {
		if patch.Settings.RefreshMinutes != nil {
			next.Settings.RefreshMinutes = *patch.Settings.RefreshMinutes
		}
		if patch.Settings.MaxDaysToKeep != nil {
			next.Settings.MaxDaysToKeep = *patch.Settings.MaxDaysToKeep
		}
	}
	if patch.Watchlist != nil {
		if patch.Watchlist.Countries != nil {
			next.Watchlist.Countries = *patch.Watchlist.Countries
		}
		if patch.Watchlist.Issuers != nil {
			next.Watchlist.Issuers = *patch.Watchlist.Issuers
		}
		if patch.Watchlist.Banks != nil {
			next.Watchlist.Banks = *patch.Watchlist.Banks
		}
	}
	if len(patch.Sources) > 0 {
		next.Sources = patch.Sources
	}
	if patch.Ratings != nil {
		next.Ratings = *patch.Ratings
	}
	if patch.Deals != nil {
		next.Deals = *patch.Deals
	}
	if patch.Brief != nil {
		next.Brief = *patch.Brief
	}

	return next, nil
}

// Pruned collects the items a Prune pass removed, so callers can archive
// them before they are gone.
type Pruned struct {
	Ratings []RatingItem
	Deals   []DealItem
	Brief   []BriefItem
}

// Count returns the total number of pruned items.
func (p Pruned) Count() int {
	return len(p.Ratings) + len(p.Deals) + len(p.Brief)
}

// Prune drops items older than the retention window
// (Settings.MaxDaysToKeep days before now) from all three collections.
//
// Pruning fails open: an item whose CreatedAtISO does not parse is kept, so
// malformed data is never silently lost.
func Prune(s Store, now time.Time) (Store, Pruned) {
	cutoff := now.Add(-time.Duration(s.Settings.MaxDaysToKeep) * 24 * time.Hour)

	keep := func(iso string) bool {
		t, ok := ParseISOTime(iso)
		if !ok {
			return true
		}
		return !t.Before(cutoff)
	}

	next := s
	var pruned Pruned

	next.Ratings = make([]RatingItem, 0, len(s.Ratings))
	for _, r := range s.Ratings {
		if keep(r.CreatedAtISO) {
			next.Ratings = append(next.Ratings, r)
		} else {
			pruned.Ratings = append(pruned.Ratings, r)
		}
	}
	next.Deals = make([]DealItem, 0, len(s.Deals))
	for _, d := range s.Deals {
		if keep(d.CreatedAtISO) {
			next.Deals = append(next.Deals, d)
		} else {
			pruned.Deals = append(pruned.Deals, d)
		}
	}
	next.Brief = make([]BriefItem, 0, len(s.Brief))
	for _, b := range s.Brief {
		if keep(b.CreatedAtISO) {
			next.Brief = append(next.Brief, b)
		} else {
			pruned.Brief = append(pruned.Brief, b)
		}
	}

	return next, pruned
}

// PrependRating returns a Store with item at the head of the ratings.
func PrependRating(s Store, item RatingItem) Store {
	next := s
	next.Ratings = append([]RatingItem{item}, s.Ratings...)
	return next
}

// PrependDeal returns a Store with item at the head of the deals.
func PrependDeal(s Store, item DealItem) Store {
	next := s
	next.Deals = append([]DealItem{item}, s.Deals...)
	return next
}

// PrependBrief returns a Store with item at the head of the brief.
func PrependBrief(s Store, item BriefItem) Store {
	next := s
	next.Brief = append([]BriefItem{item}, s.Brief...)
	return next
}
