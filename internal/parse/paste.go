package parse

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/taransingh1995/GCC-Pulse/internal/model"
)

// Kind selects which record builder a paste feeds.
type Kind string

const (
	KindRating Kind = "rating"
	KindDeal   Kind = "deal"
	KindBrief  Kind = "brief"
)

const (
	// maxChunks bounds the work a single paste can cause.
	maxChunks = 20
	// minChunkChars guards against whitespace-only or accidental pastes.
	minChunkChars = 10
)

var chunkSplitRe = regexp.MustCompile(`\n\s*\n+`)

// SplitChunks splits a multi-item paste blob on blank lines, trims each
// chunk, drops chunks of 10 chars or fewer, and caps the result at 20.
func SplitChunks(text string) []string {
	var out []string
	for _, c := range chunkSplitRe.Split(text, -1) {
		c = strings.TrimSpace(c)
		if utf8.RuneCountInString(c) <= minChunkChars {
			continue
		}
		out = append(out, c)
		if len(out) == maxChunks {
			break
		}
	}
	return out
}

// Ingest parses every chunk of text as kind and prepends the results to
// the matching collection, newest first. Chunks are processed in document
// order, so among the new items a later chunk sits above an earlier one,
// and all new items sit above everything that was already there.
//
// Returns the updated Store and the number of items added.
func (b *Builder) Ingest(s model.Store, kind Kind, text string) (model.Store, int) {
	next := s
	added := 0

	for _, chunk := range SplitChunks(text) {
		switch kind {
		case KindRating:
			next = model.PrependRating(next, b.Rating(chunk))
		case KindDeal:
			next = model.PrependDeal(next, b.Deal(chunk))
		default:
			next = model.PrependBrief(next, b.Brief(chunk))
		}
		added++
	}

	return next, added
}
