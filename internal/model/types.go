// Package model defines the GCC Pulse data model.
//
// The Store struct is the single aggregate root: everything the app knows
// (settings, watchlist, configured sources, and the three intel collections)
// lives in one value that round-trips as a JSON snapshot. All operations on
// a Store are copy-on-write - they return a new value and never mutate
// nested slices in place. That discipline is what keeps the single-threaded
// event loop safe without locks.
//
// Optional string fields use "" for absence. No valid value of any optional
// field is the empty string, so the encoding is unambiguous.
package model

import "time"

// SchemaVersion is recorded in Meta.Version. There is no migration logic
// yet; the field exists so future versions can tell snapshots apart.
const SchemaVersion = 1

// Agency is a rating agency.
type Agency string

const (
	AgencySP     Agency = "S&P"
	AgencyMoodys Agency = "Moody's"
	AgencyFitch  Agency = "Fitch"
	AgencyOther  Agency = "Other"
)

// Sector classifies a deal issuer.
type Sector string

const (
	SectorSovereign Sector = "Sovereign"
	SectorFI        Sector = "FI"
	SectorCorp      Sector = "Corp"
	SectorGRE       Sector = "GRE"
	SectorOther     Sector = "Other"
)

// DealType is the instrument type of a deal.
type DealType string

const (
	DealLoan  DealType = "Loan"
	DealBond  DealType = "Bond"
	DealSukuk DealType = "Sukuk"
)

// DealStatus tracks where a deal sits in its lifecycle.
type DealStatus string

const (
	StatusRumor    DealStatus = "Rumor"
	StatusMandated DealStatus = "Mandated"
	StatusLaunched DealStatus = "Launched"
	StatusPriced   DealStatus = "Priced"
	StatusSigned   DealStatus = "Signed"
	StatusOther    DealStatus = "Other"
)

// RatingAction is the classified action of a rating item.
type RatingAction string

const (
	ActionDowngrade RatingAction = "Downgrade"
	ActionUpgrade   RatingAction = "Upgrade"
	ActionAffirmed  RatingAction = "Affirmed"
	ActionNewRating RatingAction = "New rating"
	ActionWatch     RatingAction = "Watch/Review"
	ActionGeneric   RatingAction = "Action"
)

// Bucket is the topic category of a brief item.
type Bucket string

const (
	BucketGeopolitics Bucket = "Geopolitics"
	BucketOilEnergy   Bucket = "Oil & Energy"
	BucketRatesFX     Bucket = "Rates & FX"
	BucketBanking     Bucket = "Banking & Liquidity"
	BucketPolicy      Bucket = "Policy/Regulation"
	BucketOther       Bucket = "Other"
)

// SourceKind categorizes a public source URL.
type SourceKind string

const (
	KindCalendar      SourceKind = "calendar"
	KindRatingActions SourceKind = "rating-actions"
	KindNews          SourceKind = "news"
)

// RatingItem is one parsed rating action.
//
// RationaleBullets holds at most 4 sentences, each truncated to 160 chars.
type RatingItem struct {
	ID               string       `json:"id"`
	Entity           string       `json:"entity"`
	Country          string       `json:"country,omitempty"`
	Agency           Agency       `json:"agency"`
	Rating           string       `json:"rating,omitempty"`
	Outlook          string       `json:"outlook,omitempty"`
	Action           RatingAction `json:"action"`
	ActionDate       string       `json:"actionDate,omitempty"`
	RationaleBullets []string     `json:"rationaleBullets"`
	Source           string       `json:"source,omitempty"`
	SourceURL        string       `json:"sourceUrl,omitempty"`
	CreatedAtISO     string       `json:"createdAtIso"`
}

// DealItem is one parsed loan/bond/sukuk deal. Sector, Type and Status are
// always assigned; Size, Currency and Tenor carry the raw matched text.
type DealItem struct {
	ID           string     `json:"id"`
	Issuer       string     `json:"issuer"`
	Country      string     `json:"country,omitempty"`
	Sector       Sector     `json:"sector"`
	Type         DealType   `json:"type"`
	Status       DealStatus `json:"status"`
	Size         string     `json:"size,omitempty"`
	Currency     string     `json:"currency,omitempty"`
	Tenor        string     `json:"tenor,omitempty"`
	Banks        string     `json:"banks,omitempty"`
	Notes        string     `json:"notes,omitempty"`
	Source       string     `json:"source,omitempty"`
	SourceURL    string     `json:"sourceUrl,omitempty"`
	CreatedAtISO string     `json:"createdAtIso"`
}

// BriefItem is one geo/markets brief entry. Headline is capped at 120
// chars, Summary at 200.
type BriefItem struct {
	ID               string `json:"id"`
	Bucket           Bucket `json:"bucket"`
	Headline         string `json:"headline"`
	Summary          string `json:"summary"`
	SyndicationAngle string `json:"syndicationAngle"`
	Source           string `json:"source,omitempty"`
	SourceURL        string `json:"sourceUrl,omitempty"`
	CreatedAtISO     string `json:"createdAtIso"`
}

// PublicSource is a configured URL polled by the refresh cycle.
// Pure configuration, no derived state.
type PublicSource struct {
	ID    string     `json:"id"`
	Label string     `json:"label"`
	URL   string     `json:"url"`
	Kind  SourceKind `json:"kind"`
}

// Meta holds snapshot bookkeeping.
type Meta struct {
	Version     int    `json:"version"`
	LastSeenISO string `json:"lastSeenIso,omitempty"`
}

// Settings are the durable user preferences carried in the snapshot.
type Settings struct {
	RefreshMinutes int `json:"refreshMinutes"`
	MaxDaysToKeep  int `json:"maxDaysToKeep"`
}

// Watchlist holds user-curated reference lists. They provide display and
// filter context only; the parser never consults them.
type Watchlist struct {
	Countries []string `json:"countries"`
	Issuers   []string `json:"issuers"`
	Banks     []string `json:"banks"`
}

// Store is the aggregate root. The three collections stay in
// reverse-chronological insertion order because new items are always
// prepended.
type Store struct {
	Meta      Meta           `json:"meta"`
	Settings  Settings       `json:"settings"`
	Watchlist Watchlist      `json:"watchlist"`
	Sources   []PublicSource `json:"sources"`
	Ratings   []RatingItem   `json:"ratings"`
	Deals     []DealItem     `json:"deals"`
	Brief     []BriefItem    `json:"brief"`
}

// ISOTime formats t as the UTC RFC 3339 string stored in CreatedAtISO.
func ISOTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// ParseISOTime parses a CreatedAtISO value. ok is false when the value is
// not a valid timestamp - callers decide what absence means (pruning, for
// one, fails open and keeps the item).
func ParseISOTime(s string) (time.Time, bool) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
