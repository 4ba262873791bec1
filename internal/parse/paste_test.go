package parse

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/taransingh1995/GCC-Pulse/internal/model"
)

func emptyStore() model.Store {
	return model.DefaultStore(func(prefix string) string { return prefix + "_seed" }, time.Unix(0, 0))
}

func TestSplitChunks(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"two chunks", "Chunk A body text here.\n\nChunk B body text here.", 2},
		{"blank line with spaces", "Chunk A body text here.\n   \nChunk B body text here.", 2},
		{"tiny chunks dropped", "short\n\nChunk B body text here.", 1},
		{"whitespace only", "   \n\n   \n", 0},
		{"single chunk no separator", "Chunk A body text here.\nsecond line", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SplitChunks(tt.text); len(got) != tt.want {
				t.Errorf("len(SplitChunks()) = %d, want %d (%v)", len(got), tt.want, got)
			}
		})
	}
}

func TestSplitChunksCap(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 30; i++ {
		fmt.Fprintf(&sb, "Chunk number %02d body text.\n\n", i)
	}

	got := SplitChunks(sb.String())
	if len(got) != maxChunks {
		t.Errorf("len = %d, want cap of %d", len(got), maxChunks)
	}
}

func TestIngestBrief(t *testing.T) {
	b := testBuilder()
	s := emptyStore()

	next, added := b.Ingest(s, KindBrief, "Chunk A body text here.\n\nChunk B body text here.")

	if added != 2 {
		t.Fatalf("added = %d, want 2", added)
	}
	if len(next.Brief) != 2 {
		t.Fatalf("len(Brief) = %d, want 2", len(next.Brief))
	}
	// Later chunks end up first because each item is prepended in turn.
	if next.Brief[0].Headline != "Chunk B body text here." {
		t.Errorf("Brief[0].Headline = %q, want chunk B", next.Brief[0].Headline)
	}
	if next.Brief[1].Headline != "Chunk A body text here." {
		t.Errorf("Brief[1].Headline = %q, want chunk A", next.Brief[1].Headline)
	}
	if len(s.Brief) != 0 {
		t.Error("Ingest must not mutate its input store")
	}
}

func TestIngestPrependsAboveExisting(t *testing.T) {
	b := testBuilder()
	s := emptyStore()
	s.Ratings = []model.RatingItem{{ID: "rat_old", Entity: "Old", Agency: model.AgencyOther, Action: model.ActionGeneric}}

	next, added := b.Ingest(s, KindRating, "S&P affirms Gulf Example Bank at BBB; outlook stable.")

	if added != 1 {
		t.Fatalf("added = %d, want 1", added)
	}
	if len(next.Ratings) != 2 || next.Ratings[1].ID != "rat_old" {
		t.Errorf("new items must sit above pre-existing ones: %+v", next.Ratings)
	}
}

func TestIngestDeals(t *testing.T) {
	b := testBuilder()
	s := emptyStore()

	next, added := b.Ingest(s, KindDeal, "QatarEnergy signed a USD 2bn 7 year loan with banks.")
	if added != 1 || len(next.Deals) != 1 {
		t.Fatalf("added = %d, len(Deals) = %d", added, len(next.Deals))
	}
	if next.Deals[0].Status != model.StatusSigned {
		t.Errorf("Status = %q, want Signed", next.Deals[0].Status)
	}
}
