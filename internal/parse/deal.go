package parse

import (
	"regexp"
	"strings"

	"github.com/taransingh1995/GCC-Pulse/internal/model"
)

// Deal classifier tables. All evaluated top to bottom, first match wins.

var dealTypeRules = []struct {
	re *regexp.Regexp
	t  model.DealType
}{
	{regexp.MustCompile(`(?i)\bsukuk\b`), model.DealSukuk},
	{regexp.MustCompile(`(?i)\bbond|note|gmt[nn]\b`), model.DealBond},
}

var dealStatusRules = []struct {
	re     *regexp.Regexp
	status model.DealStatus
}{
	{regexp.MustCompile(`(?i)\bpriced\b`), model.StatusPriced},
	{regexp.MustCompile(`(?i)\bsigned\b`), model.StatusSigned},
	{regexp.MustCompile(`(?i)\blaunched\b`), model.StatusLaunched},
	{regexp.MustCompile(`(?i)\bmandat`), model.StatusMandated},
	{regexp.MustCompile(`(?i)\brumou?r\b`), model.StatusRumor},
}

var sectorRules = []struct {
	re     *regexp.Regexp
	sector model.Sector
}{
	{regexp.MustCompile(`(?i)\bsovereign|treasury|ministry of finance|ndmc\b`), model.SectorSovereign},
	{regexp.MustCompile(`(?i)\bbank|islamic bank|commercial bank\b`), model.SectorFI},
	{regexp.MustCompile(`(?i)\bholding|group|company|llc|pjsc\b`), model.SectorCorp},
	{regexp.MustCompile(`(?i)\bgov(?:ernment)?-related|gre\b`), model.SectorGRE},
}

// banksRe captures a bank/arranger mention plus up to 160 trailing chars.
var banksRe = regexp.MustCompile(`(?i)(led by|bookrunner|bookrunners|mla|arranger|coordinator)[:\s].{0,160}`)

// issuerStripRe removes deal-type keywords from the issuer line.
var issuerStripRe = regexp.MustCompile(`(?i)\b(loan|bond|sukuk|issue|issuance)\b`)

// Deal parses one pasted chunk into a DealItem. Type defaults to Loan,
// status and sector to Other.
func (b *Builder) Deal(text string) model.DealItem {
	issuer := strings.TrimSpace(issuerStripRe.ReplaceAllString(firstLine(text), ""))
	if issuer == "" {
		issuer = "Unknown issuer"
	}

	dealType := model.DealLoan
	for _, r := range dealTypeRules {
		if r.re.MatchString(text) {
			dealType = r.t
			break
		}
	}

	status := model.StatusOther
	for _, r := range dealStatusRules {
		if r.re.MatchString(text) {
			status = r.status
			break
		}
	}

	sector := model.SectorOther
	for _, r := range sectorRules {
		if r.re.MatchString(text) {
			sector = r.sector
			break
		}
	}

	banks := ""
	if m := banksRe.FindString(text); m != "" {
		banks = strings.TrimSpace(wsRe.ReplaceAllString(m, " "))
	}

	return model.DealItem{
		ID:           b.NewID("deal"),
		Issuer:       issuer,
		Country:      Country(text),
		Sector:       sector,
		Type:         dealType,
		Status:       status,
		Size:         first(Sizes(text)),
		Currency:     first(Currencies(text)),
		Tenor:        first(Tenors(text)),
		Banks:        banks,
		Source:       "Paste",
		CreatedAtISO: model.ISOTime(b.Now()),
	}
}
