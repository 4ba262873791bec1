package parse

import (
	"regexp"
	"strings"

	"github.com/taransingh1995/GCC-Pulse/internal/model"
)

// actionRules classify the rating action. Evaluated top to bottom, first
// match wins - some texts contain several keywords ("affirms ... removes
// from watch"), so the order is part of the contract.
var actionRules = []struct {
	re     *regexp.Regexp
	action model.RatingAction
}{
	{regexp.MustCompile(`(?i)\bdowngrad`), model.ActionDowngrade},
	{regexp.MustCompile(`(?i)\bupgrad`), model.ActionUpgrade},
	{regexp.MustCompile(`(?i)\baffirm`), model.ActionAffirmed},
	{regexp.MustCompile(`(?i)\bassign`), model.ActionNewRating},
	{regexp.MustCompile(`(?i)\bwatch|creditwatch`), model.ActionWatch},
}

// agencyTokenRe strips agency names out of the entity line.
var agencyTokenRe = regexp.MustCompile(`(?i)\b(S&P|Moody'?s|Fitch)\b`)

// Rating parses one pasted chunk into a RatingItem.
func (b *Builder) Rating(text string) model.RatingItem {
	entity := strings.TrimSpace(agencyTokenRe.ReplaceAllString(firstLine(text), ""))
	if entity == "" {
		entity = "Unknown entity"
	}

	action := model.ActionGeneric
	for _, r := range actionRules {
		if r.re.MatchString(text) {
			action = r.action
			break
		}
	}

	return model.RatingItem{
		ID:               b.NewID("rat"),
		Entity:           entity,
		Country:          Country(text),
		Agency:           PickAgency(text),
		Rating:           Grade(text),
		Outlook:          Outlook(text),
		Action:           action,
		RationaleBullets: RationaleBullets(text),
		Source:           "Paste",
		CreatedAtISO:     model.ISOTime(b.Now()),
	}
}
