package ui

import (
	"testing"

	"github.com/taransingh1995/GCC-Pulse/internal/model"
)

func TestFilterRatings(t *testing.T) {
	items := []model.RatingItem{
		{ID: "1", Entity: "Oman sovereign", Country: "Oman", Agency: model.AgencyMoodys},
		{ID: "2", Entity: "Qatar National Bank", Country: "Qatar", Agency: model.AgencySP},
		{ID: "3", Entity: "Emirates NBD", Country: "UAE", Agency: model.AgencyFitch, Outlook: "Stable"},
	}

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"empty query returns all", "", []string{"1", "2", "3"}},
		{"entity match", "oman", []string{"1"}},
		{"agency match", "fitch", []string{"3"}},
		{"outlook match", "stable", []string{"3"}},
		{"case insensitive", "QATAR", []string{"2"}},
		{"no match", "kuwait", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterRatings(items, tt.query)
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.want))
			}
			for i, it := range got {
				if it.ID != tt.want[i] {
					t.Errorf("got[%d].ID = %q, want %q", i, it.ID, tt.want[i])
				}
			}
		})
	}
}

func TestFilterDeals(t *testing.T) {
	items := []model.DealItem{
		{ID: "1", Issuer: "ADNOC", Banks: "HSBC, FAB", Type: model.DealLoan, Currency: "USD"},
		{ID: "2", Issuer: "PIF", Type: model.DealSukuk, Status: model.StatusPriced},
	}

	if got := FilterDeals(items, "hsbc"); len(got) != 1 || got[0].ID != "1" {
		t.Errorf("banks field should match, got %+v", got)
	}
	if got := FilterDeals(items, "sukuk"); len(got) != 1 || got[0].ID != "2" {
		t.Errorf("deal type should match, got %+v", got)
	}
}

func TestFilterBrief(t *testing.T) {
	items := []model.BriefItem{
		{ID: "1", Bucket: model.BucketOilEnergy, Headline: "OPEC+ extends cuts"},
		{ID: "2", Bucket: model.BucketRatesFX, Headline: "Fed holds", Summary: "Dollar steady"},
	}

	if got := FilterBrief(items, "opec"); len(got) != 1 || got[0].ID != "1" {
		t.Errorf("headline should match, got %+v", got)
	}
	if got := FilterBrief(items, "dollar"); len(got) != 1 || got[0].ID != "2" {
		t.Errorf("summary should match, got %+v", got)
	}
}

func TestWatchlisted(t *testing.T) {
	wl := model.Watchlist{
		Countries: []string{"Oman", "Qatar"},
		Issuers:   []string{"PIF"},
		Banks:     []string{"HSBC"},
	}

	tests := []struct {
		name   string
		fields []string
		want   bool
	}{
		{"country substring", []string{"Oman sovereign"}, true},
		{"issuer exact", []string{"PIF"}, true},
		{"bank inside list", []string{"led by HSBC and FAB"}, true},
		{"case insensitive", []string{"qatar petroleum"}, true},
		{"no match", []string{"Bahrain"}, false},
		{"empty fields", []string{"", ""}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Watchlisted(wl, tt.fields...); got != tt.want {
				t.Errorf("Watchlisted(%v) = %v, want %v", tt.fields, got, tt.want)
			}
		})
	}
}
