package model

import (
	"testing"
	"time"
)

func testNewID() NewID {
	n := 0
	return func(prefix string) string {
		n++
		return prefix + "_" + string(rune('a'+n))
	}
}

func TestDefaultStoreSeed(t *testing.T) {
	s := DefaultStore(testNewID(), time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))

	if s.Meta.Version != SchemaVersion {
		t.Errorf("Meta.Version = %d, want %d", s.Meta.Version, SchemaVersion)
	}
	if s.Settings.RefreshMinutes != 10 || s.Settings.MaxDaysToKeep != 30 {
		t.Errorf("unexpected default settings: %+v", s.Settings)
	}
	if len(s.Sources) != 6 {
		t.Errorf("len(Sources) = %d, want 6", len(s.Sources))
	}
	if len(s.Watchlist.Countries) != 6 {
		t.Errorf("len(Watchlist.Countries) = %d, want 6", len(s.Watchlist.Countries))
	}
	if len(s.Ratings) != 0 || len(s.Deals) != 0 || len(s.Brief) != 0 {
		t.Error("collections should start empty")
	}
}

func storeWithRatings(n int) Store {
	s := DefaultStore(testNewID(), time.Now())
	for i := 0; i < n; i++ {
		s.Ratings = append(s.Ratings, RatingItem{
			ID:           "rat_" + string(rune('a'+i)),
			Entity:       "Entity",
			Agency:       AgencyOther,
			Action:       ActionGeneric,
			CreatedAtISO: ISOTime(time.Now()),
		})
	}
	return s
}

func TestMergeCollectionsReplacedIfPresent(t *testing.T) {
	current := storeWithRatings(5)

	// A present-but-empty ratings key replaces the whole collection.
	next, err := Merge(current, []byte(`{"ratings": []}`))
	if err != nil {
		t.Fatalf("Merge() error: %v", err)
	}
	if len(next.Ratings) != 0 {
		t.Errorf("len(Ratings) = %d, want 0 (wholesale replace)", len(next.Ratings))
	}

	// An absent ratings key leaves the collection untouched.
	next, err = Merge(current, []byte(`{}`))
	if err != nil {
		t.Fatalf("Merge() error: %v", err)
	}
	if len(next.Ratings) != 5 {
		t.Errorf("len(Ratings) = %d, want 5 (key absent)", len(next.Ratings))
	}
}

func TestMergeSourcesKeptWhenImportedEmpty(t *testing.T) {
	current := DefaultStore(testNewID(), time.Now())

	next, err := Merge(current, []byte(`{"sources": []}`))
	if err != nil {
		t.Fatalf("Merge() error: %v", err)
	}
	if len(next.Sources) != len(current.Sources) {
		t.Errorf("empty imported sources should keep current list, got %d", len(next.Sources))
	}

	next, err = Merge(current, []byte(`{"sources": [{"id":"src_x","label":"X","url":"https://x.example","kind":"news"}]}`))
	if err != nil {
		t.Fatalf("Merge() error: %v", err)
	}
	if len(next.Sources) != 1 || next.Sources[0].ID != "src_x" {
		t.Errorf("non-empty imported sources should replace, got %+v", next.Sources)
	}
}

func TestMergeSettingsKeyByKey(t *testing.T) {
	current := DefaultStore(testNewID(), time.Now())

	next, err := Merge(current, []byte(`{"settings": {"maxDaysToKeep": 7}}`))
	if err != nil {
		t.Fatalf("Merge() error: %v", err)
	}
	if next.Settings.MaxDaysToKeep != 7 {
		t.Errorf("MaxDaysToKeep = %d, want 7", next.Settings.MaxDaysToKeep)
	}
	if next.Settings.RefreshMinutes != 10 {
		t.Errorf("RefreshMinutes = %d, want 10 (gap filled from current)", next.Settings.RefreshMinutes)
	}
}

func TestMergeMalformedDocument(t *testing.T) {
	current := storeWithRatings(2)

	next, err := Merge(current, []byte(`{not json`))
	if err == nil {
		t.Fatal("Merge() should fail on malformed JSON")
	}
	if len(next.Ratings) != 2 {
		t.Error("failed merge must leave current store unchanged")
	}
}

func TestPruneRetentionWindow(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	s := DefaultStore(testNewID(), now)
	s.Settings.MaxDaysToKeep = 30

	tests := []struct {
		name string
		iso  string
		kept bool
	}{
		{"fresh item", ISOTime(now.Add(-time.Hour)), true},
		{"exactly at cutoff", ISOTime(now.Add(-30 * 24 * time.Hour)), true},
		{"forty days old", ISOTime(now.Add(-40 * 24 * time.Hour)), false},
		{"unparseable timestamp", "n/a", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := s
			s.Brief = []BriefItem{{ID: "brf_1", Bucket: BucketOther, Headline: "h", CreatedAtISO: tt.iso}}
			next, pruned := Prune(s, now)
			if kept := len(next.Brief) == 1; kept != tt.kept {
				t.Errorf("kept = %v, want %v", kept, tt.kept)
			}
			wantPruned := 0
			if !tt.kept {
				wantPruned = 1
			}
			if pruned.Count() != wantPruned {
				t.Errorf("pruned.Count() = %d, want %d", pruned.Count(), wantPruned)
			}
		})
	}
}

func TestPruneDoesNotMutateInput(t *testing.T) {
	now := time.Now()
	s := DefaultStore(testNewID(), now)
	s.Deals = []DealItem{{ID: "deal_1", Issuer: "X", Sector: SectorOther, Type: DealLoan, Status: StatusOther, CreatedAtISO: ISOTime(now.Add(-100 * 24 * time.Hour))}}

	_, pruned := Prune(s, now)
	if len(s.Deals) != 1 {
		t.Error("Prune must not mutate its input")
	}
	if len(pruned.Deals) != 1 {
		t.Errorf("len(pruned.Deals) = %d, want 1", len(pruned.Deals))
	}
}

func TestParseISOTimeAcceptsExportFormat(t *testing.T) {
	// Browser exports carry millisecond precision.
	if _, ok := ParseISOTime("2026-08-28T10:00:00.000Z"); !ok {
		t.Error("millisecond-precision timestamps should parse")
	}
	if _, ok := ParseISOTime("n/a"); ok {
		t.Error("junk should not parse")
	}
}
