package parse

import (
	"regexp"
	"strings"

	"github.com/taransingh1995/GCC-Pulse/internal/model"
)

// Field extractors. Each is a pure function over a whole pasted chunk,
// independent of the others. Multi-value extractors return distinct matches
// in first-seen order; callers that need a single value take the first, so
// the earliest occurrence in the text wins.

var (
	currencyRe = regexp.MustCompile(`(?i)\b(USD|US\$|AED|SAR|QAR|KWD|BHD|OMR|EUR|GBP)\b`)
	sizeRe     = regexp.MustCompile(`(?i)\b\d+(?:\.\d+)?\s?(?:bn|billion|mn|million)\b`)
	tenorRe    = regexp.MustCompile(`(?i)\b\d{1,2}\s?(?:year|yr|years|month|months|m)\b`)

	// Alternation order matters: longer grades first so "BBB+" is not
	// consumed as "BB" + junk.
	gradeRe   = regexp.MustCompile(`(?i)\b(AAA|AA\+|AA|AA-|A\+|A|A-|BBB\+|BBB|BBB-|BB\+|BB|BB-|B\+|B|B-|CCC\+|CCC|CCC-|CC|C|D)\b`)
	outlookRe = regexp.MustCompile(`(?i)\b(Stable|Positive|Negative|Developing)\b`)

	wsRe = regexp.MustCompile(`\s+`)
)

// agencyHints are tested in a fixed order; the order is the tie-break when
// a paste mentions more than one agency.
var agencyHints = []struct {
	agency model.Agency
	re     *regexp.Regexp
}{
	{model.AgencySP, regexp.MustCompile(`(?i)\bS&P\b|\bStandard\s*&\s*Poor'?s\b`)},
	{model.AgencyMoodys, regexp.MustCompile(`(?i)\bMoody'?s\b`)},
	{model.AgencyFitch, regexp.MustCompile(`(?i)\bFitch\b`)},
}

// PickAgency returns the first agency whose hint matches, or AgencyOther.
func PickAgency(text string) model.Agency {
	for _, h := range agencyHints {
		if h.re.MatchString(text) {
			return h.agency
		}
	}
	return model.AgencyOther
}

// collect runs re over text and returns the distinct matches in first-seen
// order, with internal whitespace collapsed.
func collect(re *regexp.Regexp, text string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, m := range re.FindAllString(text, -1) {
		m = strings.TrimSpace(wsRe.ReplaceAllString(m, " "))
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	return out
}

// Currencies returns distinct currency codes in first-seen order,
// upper-cased with US$ normalized to USD.
func Currencies(text string) []string {
	out := collect(currencyRe, text)
	for i, c := range out {
		out[i] = strings.ReplaceAll(strings.ToUpper(c), "US$", "USD")
	}
	return out
}

// Sizes returns distinct size mentions (number plus bn/billion/mn/million),
// as raw matched text - sizes are never parsed to numbers.
func Sizes(text string) []string {
	return collect(sizeRe, text)
}

// Tenors returns distinct tenor mentions (1-2 digits plus a period word).
func Tenors(text string) []string {
	return collect(tenorRe, text)
}

// Grade returns the first letter-grade token upper-cased, or "".
func Grade(text string) string {
	return strings.ToUpper(gradeRe.FindString(text))
}

var outlookCanon = map[string]string{
	"stable":     "Stable",
	"positive":   "Positive",
	"negative":   "Negative",
	"developing": "Developing",
}

// Outlook returns the first outlook word normalized to canonical casing,
// or "".
func Outlook(text string) string {
	m := outlookRe.FindString(text)
	if m == "" {
		return ""
	}
	return outlookCanon[strings.ToLower(m)]
}

// countryVariants are tested in list order; spaces in multi-word names
// match flexible whitespace.
var countryVariants = []struct {
	re        *regexp.Regexp
	canonical string
}{
	{regexp.MustCompile(`(?i)\bUAE\b`), "UAE"},
	{regexp.MustCompile(`(?i)\bUnited\s+Arab\s+Emirates\b`), "UAE"},
	{regexp.MustCompile(`(?i)\bSaudi\b`), "Saudi Arabia"},
	{regexp.MustCompile(`(?i)\bSaudi\s+Arabia\b`), "Saudi Arabia"},
	{regexp.MustCompile(`(?i)\bKSA\b`), "Saudi Arabia"},
	{regexp.MustCompile(`(?i)\bQatar\b`), "Qatar"},
	{regexp.MustCompile(`(?i)\bKuwait\b`), "Kuwait"},
	{regexp.MustCompile(`(?i)\bBahrain\b`), "Bahrain"},
	{regexp.MustCompile(`(?i)\bOman\b`), "Oman"},
}

// Country returns the canonical country name for the first matching
// variant, or "" when none match.
func Country(text string) string {
	for _, v := range countryVariants {
		if v.re.MatchString(text) {
			return v.canonical
		}
	}
	return ""
}

const (
	maxRationaleBullets = 4
	rationaleMaxChars   = 160
	headlineMaxChars    = 120
	summaryMaxChars     = 200
)

// rationaleKeys is the causal/financial/risk vocabulary a sentence must
// touch to qualify as a rationale bullet.
var rationaleKeys = regexp.MustCompile(`(?i)(due to|driven by|reflects|because|we expect|outlook|liquidity|leverage|cash flow|debt|fiscal|oil|growth|geopolit|sanction|risk)`)

// RationaleBullets picks up to 4 sentences that read like reasons, in
// document order. When nothing qualifies it falls back to the first two
// sentences regardless of content. Each bullet is capped at 160 chars.
func RationaleBullets(text string) []string {
	sentences := SplitSentences(text)

	var picked []string
	for _, s := range sentences {
		if rationaleKeys.MatchString(s) {
			picked = append(picked, s)
			if len(picked) == maxRationaleBullets {
				break
			}
		}
	}
	if len(picked) == 0 {
		if len(sentences) > 2 {
			sentences = sentences[:2]
		}
		picked = sentences
	}

	for i, s := range picked {
		picked[i] = Truncate(s, rationaleMaxChars)
	}
	return picked
}

// SplitSentences collapses whitespace and splits on ./!/? boundaries
// followed by whitespace.
func SplitSentences(text string) []string {
	text = strings.TrimSpace(wsRe.ReplaceAllString(text, " "))
	if text == "" {
		return nil
	}

	var out []string
	runes := []rune(text)
	start := 0
	for i := 0; i < len(runes)-1; i++ {
		c := runes[i]
		if (c == '.' || c == '!' || c == '?') && runes[i+1] == ' ' {
			if s := strings.TrimSpace(string(runes[start : i+1])); s != "" {
				out = append(out, s)
			}
			start = i + 1
		}
	}
	if tail := strings.TrimSpace(string(runes[start:])); tail != "" {
		out = append(out, tail)
	}
	return out
}

// Truncate caps s at max runes; longer input becomes max-3 runes plus a
// single ellipsis rune.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "…"
}

// firstLine returns the first non-empty trimmed line, or "".
func firstLine(text string) string {
	for _, l := range strings.Split(text, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			return l
		}
	}
	return ""
}

// first returns the first element of a multi-value extractor result, or "".
func first(xs []string) string {
	if len(xs) == 0 {
		return ""
	}
	return xs[0]
}
