package ui

import (
	"strings"

	"github.com/taransingh1995/GCC-Pulse/internal/model"
)

// matchAny reports whether any field contains the lowercased query.
func matchAny(query string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), query) {
			return true
		}
	}
	return false
}

// FilterRatings returns ratings matching the query, case-insensitive,
// preserving order. An empty query returns the input unchanged.
func FilterRatings(items []model.RatingItem, query string) []model.RatingItem {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return items
	}
	var out []model.RatingItem
	for _, it := range items {
		if matchAny(query, it.Entity, it.Country, string(it.Agency), it.Rating, it.Outlook, string(it.Action)) {
			out = append(out, it)
		}
	}
	return out
}

// FilterDeals returns deals matching the query, case-insensitive.
func FilterDeals(items []model.DealItem, query string) []model.DealItem {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return items
	}
	var out []model.DealItem
	for _, it := range items {
		if matchAny(query, it.Issuer, it.Country, it.Banks, string(it.Sector), string(it.Type), string(it.Status), it.Currency) {
			out = append(out, it)
		}
	}
	return out
}

// FilterBrief returns brief items matching the query, case-insensitive.
func FilterBrief(items []model.BriefItem, query string) []model.BriefItem {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return items
	}
	var out []model.BriefItem
	for _, it := range items {
		if matchAny(query, it.Headline, it.Summary, string(it.Bucket)) {
			out = append(out, it)
		}
	}
	return out
}

// Watchlisted reports whether any of the fields mentions a watchlist
// entry. Matching is a case-insensitive substring test so "Oman" in the
// country list marks an "Oman sovereign" entity.
func Watchlisted(wl model.Watchlist, fields ...string) bool {
	for _, f := range fields {
		lower := strings.ToLower(f)
		if lower == "" {
			continue
		}
		for _, list := range [][]string{wl.Countries, wl.Issuers, wl.Banks} {
			for _, entry := range list {
				if entry != "" && strings.Contains(lower, strings.ToLower(entry)) {
					return true
				}
			}
		}
	}
	return false
}
