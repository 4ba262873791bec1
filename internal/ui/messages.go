// Package ui provides the Bubble Tea TUI for GCC Pulse.
package ui

import (
	"github.com/taransingh1995/GCC-Pulse/internal/coord"
)

// RefreshComplete is sent when a refresh cycle has polled every source.
// The candidates have not been applied yet - the event loop merges them
// against the store it holds at receipt time. There is no error variant:
// a cycle where every source fails just delivers zero candidates.
type RefreshComplete struct {
	Candidates []coord.Candidate
}

// ExportComplete is sent when a snapshot export finishes.
type ExportComplete struct {
	Path string
	Err  error
}

// ArchiveComplete is sent when pruned items have been written to the
// archive database. The prune itself already happened on the event loop;
// this only reports the background write.
type ArchiveComplete struct {
	Count int
	Err   error
}
