package parse

import (
	"regexp"

	"github.com/taransingh1995/GCC-Pulse/internal/model"
)

// bucketRules route a brief to its topic bucket. Priority order:
// geopolitics beats energy beats rates beats banking beats policy.
var bucketRules = []struct {
	re     *regexp.Regexp
	bucket model.Bucket
}{
	{regexp.MustCompile(`(?i)israel|iran|yemen|houthi|gaza|sanction|conflict|war|shipping|red sea|strait|hormuz`), model.BucketGeopolitics},
	{regexp.MustCompile(`(?i)opec|oil|brent|wti|lng|gas|energy`), model.BucketOilEnergy},
	{regexp.MustCompile(`(?i)fed|rates|treasur|ust|inflation|fx|dollar|peg|swap`), model.BucketRatesFX},
	{regexp.MustCompile(`(?i)liquidity|deposit|credit growth|npl|capital adequacy|basel|bank`), model.BucketBanking},
	{regexp.MustCompile(`(?i)policy|regulat|tax|budget|fiscal|debt management`), model.BucketPolicy},
}

// syndicationAngles maps a bucket to its fixed commentary template.
// Buckets without an entry get the generic default.
var syndicationAngles = map[model.Bucket]string{
	model.BucketRatesFX:     "Watch funding windows and investor risk appetite; rate volatility can widen spreads and shorten tenors.",
	model.BucketOilEnergy:   "Energy price moves affect GCC fiscal buffers and sovereign/GRE curves; expect knock-on effects in new issue pricing.",
	model.BucketGeopolitics: "Risk-off periods can shut primary markets; consider timing, currency, and investor base diversification.",
	model.BucketBanking:     "Liquidity signals can impact FI issuance and loan pricing; monitor deposit trends and funding costs.",
}

const defaultAngle = "Assess market tone and timing; consider covenant/headroom and investor messaging."

// Brief parses one pasted chunk into a BriefItem.
func (b *Builder) Brief(text string) model.BriefItem {
	headline := firstLine(text)
	if headline == "" {
		headline = "Brief item"
	}
	headline = Truncate(headline, headlineMaxChars)

	bucket := model.BucketOther
	for _, r := range bucketRules {
		if r.re.MatchString(text) {
			bucket = r.bucket
			break
		}
	}

	summary := "Summary unavailable."
	if bullets := RationaleBullets(text); len(bullets) > 0 {
		summary = bullets[0]
	}
	summary = Truncate(summary, summaryMaxChars)

	angle, ok := syndicationAngles[bucket]
	if !ok {
		angle = defaultAngle
	}

	return model.BriefItem{
		ID:               b.NewID("brf"),
		Bucket:           bucket,
		Headline:         headline,
		Summary:          summary,
		SyndicationAngle: angle,
		Source:           "Paste",
		CreatedAtISO:     model.ISOTime(b.Now()),
	}
}

// SyntheticBrief builds the low-information brief a public-source refresh
// produces for a changed title. sourceURL is the canonical URL when the
// page advertised one, otherwise the configured source URL.
func (b *Builder) SyntheticBrief(title, sourceURL string) model.BriefItem {
	return model.BriefItem{
		ID:               b.NewID("brf"),
		Bucket:           model.BucketOther,
		Headline:         Truncate(title, headlineMaxChars),
		Summary:          "Public source updated. Open the link and paste key paragraphs into Paste-to-Parse for structured extraction.",
		SyndicationAngle: "If this affects GCC supply or risk appetite, consider timing and investor messaging.",
		Source:           "Public source",
		SourceURL:        sourceURL,
		CreatedAtISO:     model.ISOTime(b.Now()),
	}
}
