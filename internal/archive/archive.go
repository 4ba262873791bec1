// Package archive keeps a SQLite record of items the retention pass removed
// from the live snapshot.
//
// The live store is a small JSON document that the retention window keeps
// bounded; the archive is where pruned items land so history is never lost.
// Each pruned item is stored as its JSON payload keyed by id, so a row
// survives schema drift in the live model.
package archive

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/taransingh1995/GCC-Pulse/internal/logging"
	"github.com/taransingh1995/GCC-Pulse/internal/model"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)
)

// Archive is the append-only store of pruned items.
type Archive struct {
	db *sql.DB
}

// Open creates or opens the archive database at the given path.
func Open(dbPath string) (*Archive, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable WAL mode for better concurrent access
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	a := &Archive{db: db}
	if err := a.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return a, nil
}

func (a *Archive) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS pruned_items (
		id TEXT PRIMARY KEY,
		kind TEXT NOT NULL,
		created_at TEXT,
		archived_at DATETIME NOT NULL,
		payload TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_pruned_kind ON pruned_items(kind);
	CREATE INDEX IF NOT EXISTS idx_pruned_archived ON pruned_items(archived_at DESC);
	`
	_, err := a.db.Exec(schema)
	return err
}

// ArchivePruned writes the output of a retention pass in a single
// transaction. Re-archiving an id is a no-op, so repeated prune runs over
// overlapping data stay idempotent.
//
// Returns the number of rows inserted.
func (a *Archive) ArchivePruned(pruned model.Pruned, now time.Time) (int, error) {
	if pruned.Count() == 0 {
		return 0, nil
	}

	tx, err := a.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	// Rollback is safe to call even after commit - it's a no-op
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR IGNORE INTO pruned_items (id, kind, created_at, archived_at, payload)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	var saved int
	insert := func(id, kind, createdAt string, item any) error {
		payload, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("failed to encode item %s: %w", id, err)
		}
		result, err := stmt.Exec(id, kind, createdAt, now.UTC(), string(payload))
		if err != nil {
			return fmt.Errorf("failed to insert item %s: %w", id, err)
		}
		if n, _ := result.RowsAffected(); n > 0 {
			saved++
		}
		return nil
	}

	for _, r := range pruned.Ratings {
		if err := insert(r.ID, "rating", r.CreatedAtISO, r); err != nil {
			return 0, err
		}
	}
	for _, d := range pruned.Deals {
		if err := insert(d.ID, "deal", d.CreatedAtISO, d); err != nil {
			return 0, err
		}
	}
	for _, b := range pruned.Brief {
		if err := insert(b.ID, "brief", b.CreatedAtISO, b); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	logging.Debug("Archived pruned items", "count", saved)
	return saved, nil
}

// Count returns how many items the archive holds.
func (a *Archive) Count() (int, error) {
	var count int
	if err := a.db.QueryRow("SELECT COUNT(*) FROM pruned_items").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count archive: %w", err)
	}
	return count, nil
}

// Close closes the underlying database.
func (a *Archive) Close() error {
	return a.db.Close()
}
