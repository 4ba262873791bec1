// Package parse turns free-form pasted text into structured intel records.
//
// Everything here is a deterministic heuristic pass: fixed vocabularies,
// word-bounded patterns, and ordered classifier tables evaluated
// first-match-wins. False negatives are expected and fine - the parser is
// an aid, never an authority. Every builder is total: garbage in still
// produces a complete record with placeholder fields.
package parse

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/taransingh1995/GCC-Pulse/internal/model"
)

// Builder wires the clock and id source into the record builders. With Now
// and NewID stubbed, parsing the same text twice yields field-for-field
// identical results.
type Builder struct {
	Now   func() time.Time
	NewID model.NewID
}

// NewBuilder returns a Builder using the wall clock and random ids.
func NewBuilder() *Builder {
	return &Builder{Now: time.Now, NewID: RandomID}
}

// RandomID generates an opaque id like "rat_9f2c1ab04d17_18f3a2c".
func RandomID(prefix string) string {
	var b [6]byte
	rand.Read(b[:])
	return fmt.Sprintf("%s_%s_%x", prefix, hex.EncodeToString(b[:]), time.Now().UnixMilli())
}
