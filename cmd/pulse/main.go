package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/jessevdk/go-flags"

	"github.com/taransingh1995/GCC-Pulse/internal/archive"
	"github.com/taransingh1995/GCC-Pulse/internal/coord"
	"github.com/taransingh1995/GCC-Pulse/internal/fetch"
	"github.com/taransingh1995/GCC-Pulse/internal/logging"
	"github.com/taransingh1995/GCC-Pulse/internal/model"
	"github.com/taransingh1995/GCC-Pulse/internal/parse"
	"github.com/taransingh1995/GCC-Pulse/internal/store"
	"github.com/taransingh1995/GCC-Pulse/internal/ui"
)

// Version is set at build time via -ldflags.
var Version = "dev"

type options struct {
	DataDir  string `long:"data-dir" description:"Data directory (default: ~/.gcc-pulse)"`
	LogLevel string `long:"log-level" description:"Log level: debug, info, warn, error" default:"info"`
	Export   string `long:"export" value-name:"PATH" description:"Write a snapshot export to PATH and exit (default name when PATH is '-')"`
	Import   string `long:"import" value-name:"PATH" description:"Merge an exported snapshot into the store and exit"`
	Prune    bool   `long:"prune" description:"Run the retention pass, archive removed items and exit"`
	Version  bool   `short:"v" long:"version" description:"Print version and exit"`
}

func main() {
	var opts options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			return
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Println("gcc-pulse", Version)
		return
	}

	dataDir := opts.DataDir
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to get home directory: %v\n", err)
			os.Exit(1)
		}
		dataDir = filepath.Join(homeDir, ".gcc-pulse")
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "failed to create data directory: %v\n", err)
		os.Exit(1)
	}

	level, err := log.ParseLevel(opts.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	if err := logging.Init(dataDir, level); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logging: %v\n", err)
		os.Exit(1)
	}
	defer logging.Close()

	snap := store.New(dataDir)
	st, ok := snap.Load()
	if !ok {
		st = model.DefaultStore(parse.RandomID, time.Now())
		if err := snap.Save(st); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write initial snapshot: %v\n", err)
			os.Exit(1)
		}
		logging.Info("Created fresh store with seed sources and watchlist")
	}

	switch {
	case opts.Import != "":
		runImport(snap, st, opts.Import)
		return
	case opts.Export != "":
		runExport(st, opts.Export)
		return
	case opts.Prune:
		runPrune(snap, st, dataDir)
		return
	}

	runTUI(snap, st, dataDir)
}

// runImport merges an exported snapshot into the store and persists it.
func runImport(snap *store.Snapshot, st model.Store, path string) {
	merged, err := store.ImportFile(st, path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "import failed: %v\n", err)
		os.Exit(1)
	}
	if err := snap.Save(merged); err != nil {
		fmt.Fprintf(os.Stderr, "failed to save merged store: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Imported %s: %d ratings, %d deals, %d brief items\n",
		path, len(merged.Ratings), len(merged.Deals), len(merged.Brief))
}

// runExport writes a pretty-printed snapshot export. PATH "-" picks the
// dated default file name in the working directory.
func runExport(st model.Store, path string) {
	if path == "-" {
		path = store.ExportFileName(time.Now())
	}
	if err := store.Export(st, path); err != nil {
		fmt.Fprintf(os.Stderr, "export failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Exported to", path)
}

// runPrune applies the retention window once, archiving what it removes.
func runPrune(snap *store.Snapshot, st model.Store, dataDir string) {
	next, pruned := model.Prune(st, time.Now())
	if pruned.Count() == 0 {
		fmt.Println("Nothing outside the retention window")
		return
	}

	arch, err := archive.Open(filepath.Join(dataDir, "archive.db"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open archive: %v\n", err)
		os.Exit(1)
	}
	defer arch.Close()

	saved, err := arch.ArchivePruned(pruned, time.Now())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to archive pruned items: %v\n", err)
		os.Exit(1)
	}
	if err := snap.Save(next); err != nil {
		fmt.Fprintf(os.Stderr, "failed to save pruned store: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Pruned %d item(s), archived %d\n", pruned.Count(), saved)
}

func runTUI(snap *store.Snapshot, st model.Store, dataDir string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	arch, err := archive.Open(filepath.Join(dataDir, "archive.db"))
	if err != nil {
		logging.Warn("Archive unavailable, pruned items will not be kept", "error", err)
		arch = nil
	} else {
		defer arch.Close()
	}

	builder := parse.NewBuilder()
	fetcher := fetch.NewFetcher(30 * time.Second)
	coordinator := coord.NewCoordinator(fetcher)

	cfg := ui.Config{
		Store:   st,
		Builder: builder,

		Save: snap.Save,
		Export: func(s model.Store) tea.Cmd {
			return func() tea.Msg {
				path := filepath.Join(dataDir, store.ExportFileName(time.Now()))
				return ui.ExportComplete{Path: path, Err: store.Export(s, path)}
			}
		},
		Refresh: func(sources []model.PublicSource) tea.Cmd {
			return func() tea.Msg {
				return ui.RefreshComplete{Candidates: coordinator.RunOnce(ctx, sources)}
			}
		},
	}
	if arch != nil {
		cfg.Archive = func(p model.Pruned) tea.Cmd {
			return func() tea.Msg {
				n, err := arch.ArchivePruned(p, time.Now())
				return ui.ArchiveComplete{Count: n, Err: err}
			}
		}
	}

	program := tea.NewProgram(ui.NewApp(cfg), tea.WithAltScreen())

	// The refresh interval is read once at startup; edits in the settings
	// pane persist but apply on the next launch.
	interval := time.Duration(st.Settings.RefreshMinutes) * time.Minute
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	coordinator.Start(ctx, program, interval)

	if _, err := program.Run(); err != nil {
		logging.Error("Program exited with error", "error", err)
	}

	cancel()
	coordinator.Wait()
}
