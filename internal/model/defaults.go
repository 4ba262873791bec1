package model

import "time"

// NewID generates an opaque item id. Injected into parsers and the refresh
// path so tests can stub it; see parse.Builder.
type NewID func(prefix string) string

// DefaultStore returns a freshly seeded Store: the curated public-source
// list, the GCC watchlist seed, and empty collections.
func DefaultStore(newID NewID, now time.Time) Store {
	sources := []PublicSource{
		{ID: newID("src"), Label: "S&P Ratings Actions (regulatory table)", URL: "https://www.spglobal.com/ratings/en/regulatory/ratings-actions", Kind: KindRatingActions},
		{ID: newID("src"), Label: "Moody's Ratings News (headlines)", URL: "https://ratings.moodys.com/ratings-news", Kind: KindRatingActions},
		{ID: newID("src"), Label: "Fitch Latest Rating Actions", URL: "https://www.fitchratings.com/latest-rating-actions", Kind: KindRatingActions},
		{ID: newID("src"), Label: "UAE MoF Issuance Programme (AED T-Bonds/T-Sukuk calendar)", URL: "https://mof.gov.ae/en/public-finance/public-debt/issuance-programme/", Kind: KindCalendar},
		{ID: newID("src"), Label: "KSA NDMC Local Sukuk Calendar", URL: "https://www.ndmc.gov.sa/en/IssuancePrograms/Pages/Issuance_Calendar.aspx", Kind: KindCalendar},
		{ID: newID("src"), Label: "IILM Indicative Sukuk Calendar", URL: "https://iilm.com/v2/en/indicative-issuance-calendar/", Kind: KindCalendar},
	}

	return Store{
		Meta:     Meta{Version: SchemaVersion, LastSeenISO: ISOTime(now)},
		Settings: Settings{RefreshMinutes: 10, MaxDaysToKeep: 30},
		Watchlist: Watchlist{
			Countries: []string{"UAE", "Saudi Arabia", "Qatar", "Kuwait", "Bahrain", "Oman"},
			Issuers: []string{
				"Saudi Aramco", "PIF", "SABIC", "Ma'aden", "STC",
				"ADNOC", "Emirates NBD", "First Abu Dhabi Bank", "DP World", "e& (Etisalat)",
				"QatarEnergy", "QNB", "Ooredoo", "Industries Qatar", "Qatar Airways",
				"Kuwait Petroleum Corporation (KPC)", "Kuwait Finance House", "National Bank of Kuwait", "Zain", "Boubyan Bank",
				"BAPCO", "ALBA", "Bahrain National Bank", "Gulf Air", "Bahrain Mumtalakat",
				"OQ", "Bank Muscat", "Omantel", "Oman LNG", "Nama Group",
			},
			Banks: []string{
				"First Abu Dhabi Bank", "Emirates NBD", "ADCB",
				"Saudi National Bank", "Al Rajhi", "Riyad Bank",
				"QNB", "Qatar Islamic Bank",
				"National Bank of Kuwait", "Kuwait Finance House",
				"National Bank of Bahrain", "BBK",
				"Bank Muscat", "Bank Dhofar",
			},
		},
		Sources: sources,
		Ratings: []RatingItem{},
		Deals:   []DealItem{},
		Brief:   []BriefItem{},
	}
}
