// Package store persists the GCC Pulse state as a single JSON snapshot on
// disk, and implements the export/import round trip.
//
// Loading never fails the caller: a missing or corrupt snapshot keeps the
// prior in-memory state. Importing is different - a malformed import file
// is a user action that must fail visibly.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/taransingh1995/GCC-Pulse/internal/logging"
	"github.com/taransingh1995/GCC-Pulse/internal/model"
)

// SnapshotFile is the fixed snapshot filename inside the data dir.
const SnapshotFile = "store.json"

// Snapshot is the persistence handle injected into whatever orchestrates
// the UI. Constructed once at session start.
type Snapshot struct {
	path string
}

// New returns a Snapshot handle for the given data directory.
func New(dataDir string) *Snapshot {
	return &Snapshot{path: filepath.Join(dataDir, SnapshotFile)}
}

// Path returns the snapshot file path.
func (s *Snapshot) Path() string {
	return s.path
}

// Load reads the persisted snapshot. ok is false when there is no usable
// snapshot (missing file or parse failure) - the caller keeps whatever
// Store it already has.
func (s *Snapshot) Load() (model.Store, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logging.Warn("Failed to read snapshot", "path", s.path, "error", err)
		}
		return model.Store{}, false
	}

	var st model.Store
	if err := json.Unmarshal(data, &st); err != nil {
		logging.Warn("Snapshot is corrupt, keeping prior state", "path", s.path, "error", err)
		return model.Store{}, false
	}
	return st, true
}

// Save writes the full Store to disk. The write goes through a temp file
// and rename so a crash mid-write never leaves a torn snapshot.
func (s *Snapshot) Save(st model.Store) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}
	return nil
}

// ExportFileName returns the dated export filename,
// gcc-pulse-export-YYYY-MM-DD.json.
func ExportFileName(now time.Time) string {
	return fmt.Sprintf("gcc-pulse-export-%s.json", now.Format("2006-01-02"))
}

// Export writes a pretty-printed snapshot of st to path.
func Export(st model.Store, path string) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode export: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}

// ImportFile reads a JSON document from path and merges it over current
// per the snapshot merge rules. Parse errors propagate so the caller can
// surface them.
func ImportFile(current model.Store, path string) (model.Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return current, fmt.Errorf("failed to read import file: %w", err)
	}
	return model.Merge(current, data)
}
