package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/taransingh1995/GCC-Pulse/internal/coord"
	"github.com/taransingh1995/GCC-Pulse/internal/model"
	"github.com/taransingh1995/GCC-Pulse/internal/parse"
)

// Tab identifies one of the top-level panes.
type Tab int

const (
	TabRatings Tab = iota
	TabDeals
	TabBrief
	TabPaste
	TabSettings
)

// Config wires the command functions the App needs. The App owns the store
// value; network and archive IO run as commands that report back via
// messages. Save is the exception: it runs synchronously on the event
// loop, so snapshot writes land in mutation order and none is ever in
// flight when the program exits. The snapshot is one small JSON document,
// so the blocking write is cheap.
type Config struct {
	Store   model.Store
	Builder *parse.Builder

	Save    func(s model.Store) error
	Export  func(s model.Store) tea.Cmd
	Refresh func(sources []model.PublicSource) tea.Cmd
	Archive func(p model.Pruned) tea.Cmd
}

// App is the root Bubble Tea model. It holds the live store value; every
// mutation swaps in a new store and schedules a snapshot write.
type App struct {
	cfg   Config
	store model.Store

	tab    Tab
	cursor int

	filter    textinput.Model
	filtering bool

	pasteKind  parse.Kind
	pasteInput textarea.Model

	settingsCursor int
	settingsInput  textinput.Model
	editingSetting bool

	status     string
	err        error
	width      int
	height     int
	ready      bool
	refreshing bool
}

// NewApp creates the root model around an already-loaded store.
func NewApp(cfg Config) App {
	filter := textinput.New()
	filter.Prompt = "/ "
	filter.Placeholder = "filter"

	paste := textarea.New()
	paste.Placeholder = "Paste agency text, deal chatter or headlines here..."

	settings := textinput.New()
	settings.CharLimit = 5

	return App{
		cfg:           cfg,
		store:         cfg.Store,
		pasteKind:     parse.KindRating,
		filter:        filter,
		pasteInput:    paste,
		settingsInput: settings,
	}
}

func (a App) Init() tea.Cmd {
	return nil
}

// Update handles messages and returns the updated model and any commands.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.pasteInput.SetWidth(msg.Width - 4)
		a.pasteInput.SetHeight(msg.Height - 8)
		a.ready = true
		return a, nil

	case coord.RefreshDueMsg:
		return a.startRefresh()

	case RefreshComplete:
		a.refreshing = false
		next, added := coord.Apply(a.store, msg.Candidates, a.cfg.Builder)
		if added == 0 {
			a.status = "Refresh: no new items"
			return a, nil
		}
		a.store = next
		a.status = fmt.Sprintf("Refresh: %d new brief item(s)", added)

		// Retention runs on the same path so the store never grows
		// unbounded between manual prunes.
		var cmds []tea.Cmd
		if pruned, pr := model.Prune(a.store, time.Now()); pr.Count() > 0 {
			a.store = pruned
			a.clampCursor()
			if a.cfg.Archive != nil {
				cmds = append(cmds, a.cfg.Archive(pr))
			}
		}
		a.saveNow()
		return a, tea.Batch(cmds...)

	case ExportComplete:
		if msg.Err != nil {
			a.err = msg.Err
		} else {
			a.status = "Exported to " + msg.Path
		}
		return a, nil

	case ArchiveComplete:
		if msg.Err != nil {
			a.err = msg.Err
		} else if msg.Count > 0 {
			a.status = fmt.Sprintf("Archived %d pruned item(s)", msg.Count)
		}
		return a, nil
	}

	return a, nil
}

// saveNow writes the current store synchronously. Calling it inside
// Update keeps writes in mutation order; a failure surfaces on the
// error bar.
func (a *App) saveNow() {
	if a.cfg.Save == nil {
		return
	}
	if err := a.cfg.Save(a.store); err != nil {
		a.err = err
	}
}

// startRefresh kicks off a refresh cycle unless one is already running.
func (a App) startRefresh() (tea.Model, tea.Cmd) {
	if a.refreshing || a.cfg.Refresh == nil {
		return a, nil
	}
	a.refreshing = true
	return a, a.cfg.Refresh(a.store.Sources)
}

// handleKeyMsg processes keyboard input. Focused text widgets consume
// keys first; global keys apply only when nothing is capturing input.
func (a App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.err != nil {
		a.err = nil
	}

	if a.filtering {
		return a.handleFilterKey(msg)
	}
	if a.editingSetting {
		return a.handleSettingKey(msg)
	}
	if a.tab == TabPaste && a.pasteInput.Focused() {
		return a.handlePasteKey(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return a, tea.Quit

	case "tab":
		a.setTab((a.tab + 1) % Tab(len(tabLabels)))
		return a, nil

	case "shift+tab":
		a.setTab((a.tab + Tab(len(tabLabels)) - 1) % Tab(len(tabLabels)))
		return a, nil

	case "1", "2", "3", "4", "5":
		n, _ := strconv.Atoi(msg.String())
		a.setTab(Tab(n - 1))
		return a, nil

	case "j", "down":
		if a.tab == TabSettings {
			if a.settingsCursor < 1 {
				a.settingsCursor++
			}
		} else if a.cursor < a.listLen()-1 {
			a.cursor++
		}
		return a, nil

	case "k", "up":
		if a.tab == TabSettings {
			if a.settingsCursor > 0 {
				a.settingsCursor--
			}
		} else if a.cursor > 0 {
			a.cursor--
		}
		return a, nil

	case "g", "home":
		a.cursor = 0
		return a, nil

	case "G", "end":
		if n := a.listLen(); n > 0 {
			a.cursor = n - 1
		}
		return a, nil

	case "/":
		if a.tab == TabRatings || a.tab == TabDeals || a.tab == TabBrief {
			a.filtering = true
			a.filter.Focus()
		}
		return a, nil

	case "esc":
		if a.filter.Value() != "" {
			a.filter.Reset()
			a.cursor = 0
		}
		return a, nil

	case "r":
		return a.startRefresh()

	case "e":
		if a.cfg.Export != nil {
			return a, a.cfg.Export(a.store)
		}
		return a, nil

	case "P":
		return a.pruneNow()

	case "enter":
		switch a.tab {
		case TabPaste:
			return a, a.pasteInput.Focus()
		case TabSettings:
			a.editingSetting = true
			a.settingsInput.SetValue(strconv.Itoa(a.settingValue(a.settingsCursor)))
			return a, a.settingsInput.Focus()
		}
		return a, nil

	case "i":
		if a.tab == TabPaste {
			return a, a.pasteInput.Focus()
		}
		return a, nil

	case "ctrl+k":
		if a.tab == TabPaste {
			a.cyclePasteKind()
		}
		return a, nil
	}

	return a, nil
}

// handleFilterKey routes keys while the filter input is focused.
func (a App) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.filter.Reset()
		a.filter.Blur()
		a.filtering = false
		a.cursor = 0
		return a, nil
	case "enter":
		a.filter.Blur()
		a.filtering = false
		return a, nil
	}

	var cmd tea.Cmd
	a.filter, cmd = a.filter.Update(msg)
	a.cursor = 0
	return a, cmd
}

// handleSettingKey routes keys while a setting is being edited.
func (a App) handleSettingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.editingSetting = false
		a.settingsInput.Blur()
		return a, nil
	case "enter":
		return a.commitSetting()
	}

	var cmd tea.Cmd
	a.settingsInput, cmd = a.settingsInput.Update(msg)
	return a, cmd
}

// handlePasteKey routes keys while the paste textarea is focused.
func (a App) handlePasteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.pasteInput.Blur()
		return a, nil
	case "ctrl+c":
		return a, tea.Quit
	case "ctrl+k":
		a.cyclePasteKind()
		return a, nil
	case "ctrl+s":
		return a.submitPaste()
	}

	var cmd tea.Cmd
	a.pasteInput, cmd = a.pasteInput.Update(msg)
	return a, cmd
}

// submitPaste parses the textarea contents into records of the selected
// kind and prepends them to the store.
func (a App) submitPaste() (tea.Model, tea.Cmd) {
	text := a.pasteInput.Value()
	if strings.TrimSpace(text) == "" {
		return a, nil
	}

	next, added := a.cfg.Builder.Ingest(a.store, a.pasteKind, text)
	if added == 0 {
		a.status = "No parseable paragraphs found"
		return a, nil
	}

	a.store = next
	a.pasteInput.Reset()
	a.status = fmt.Sprintf("Parsed %d %s item(s)", added, a.pasteKind)
	a.saveNow()
	return a, nil
}

// pruneNow runs the retention pass on the event loop and hands removed
// items to the archive writer.
func (a App) pruneNow() (tea.Model, tea.Cmd) {
	next, pruned := model.Prune(a.store, time.Now())
	if pruned.Count() == 0 {
		a.status = "Prune: nothing outside the retention window"
		return a, nil
	}

	a.store = next
	a.clampCursor()
	a.status = fmt.Sprintf("Pruned %d item(s)", pruned.Count())
	a.saveNow()

	if a.cfg.Archive != nil {
		return a, a.cfg.Archive(pruned)
	}
	return a, nil
}

// commitSetting validates and applies the edited settings value.
func (a App) commitSetting() (tea.Model, tea.Cmd) {
	a.editingSetting = false
	a.settingsInput.Blur()

	v, err := strconv.Atoi(strings.TrimSpace(a.settingsInput.Value()))
	if err != nil || v <= 0 {
		a.status = "Settings values must be positive integers"
		return a, nil
	}

	switch a.settingsCursor {
	case 0:
		a.store.Settings.RefreshMinutes = v
	case 1:
		a.store.Settings.MaxDaysToKeep = v
	}
	a.status = "Settings saved"
	a.saveNow()
	return a, nil
}

func (a *App) setTab(t Tab) {
	if t == a.tab {
		return
	}
	a.tab = t
	a.cursor = 0
	a.status = ""
	a.filter.Reset()
}

func (a *App) cyclePasteKind() {
	switch a.pasteKind {
	case parse.KindRating:
		a.pasteKind = parse.KindDeal
	case parse.KindDeal:
		a.pasteKind = parse.KindBrief
	default:
		a.pasteKind = parse.KindRating
	}
}

func (a *App) clampCursor() {
	if n := a.listLen(); a.cursor >= n {
		if n > 0 {
			a.cursor = n - 1
		} else {
			a.cursor = 0
		}
	}
}

func (a App) settingValue(idx int) int {
	if idx == 0 {
		return a.store.Settings.RefreshMinutes
	}
	return a.store.Settings.MaxDaysToKeep
}

// listLen is the number of rows the current tab shows after filtering.
func (a App) listLen() int {
	switch a.tab {
	case TabRatings:
		return len(FilterRatings(a.store.Ratings, a.filter.Value()))
	case TabDeals:
		return len(FilterDeals(a.store.Deals, a.filter.Value()))
	case TabBrief:
		return len(FilterBrief(a.store.Brief, a.filter.Value()))
	}
	return 0
}

// View renders the UI.
func (a App) View() string {
	if !a.ready {
		return "Loading..."
	}

	contentHeight := a.height - 3
	if a.err != nil {
		contentHeight--
	}
	if a.filtering || a.filter.Value() != "" {
		contentHeight--
	}

	var b strings.Builder
	b.WriteString(renderTabs(a.tab, a.width))

	switch a.tab {
	case TabRatings:
		items := FilterRatings(a.store.Ratings, a.filter.Value())
		b.WriteString(renderRatings(items, a.cursor, a.store.Watchlist, a.width, contentHeight))
	case TabDeals:
		items := FilterDeals(a.store.Deals, a.filter.Value())
		b.WriteString(renderDeals(items, a.cursor, a.store.Watchlist, a.width, contentHeight))
	case TabBrief:
		items := FilterBrief(a.store.Brief, a.filter.Value())
		b.WriteString(renderBrief(items, a.cursor, a.width, contentHeight))
	case TabPaste:
		b.WriteString(PaneTitle.Render("Paste-to-Parse  [kind: "+string(a.pasteKind)+"]") + "\n")
		b.WriteString(a.pasteInput.View() + "\n")
	case TabSettings:
		b.WriteString(renderSettings(a.store.Settings, a.settingsCursor, a.editingSetting, a.settingsInput.View(), a.width))
	}

	if a.filtering || a.filter.Value() != "" {
		b.WriteString(FilterBar.Width(a.width).Render(a.filter.View()) + "\n")
	}
	if a.err != nil {
		b.WriteString(ErrorStyle.Width(a.width).Render("Error: "+a.err.Error()+" (press any key to dismiss)") + "\n")
	}
	b.WriteString(renderStatusBar(a.tab, a.status, a.refreshing, a.width))

	return b.String()
}

// CurrentStore returns the store the app holds (for testing).
func (a App) CurrentStore() model.Store {
	return a.store
}

// CurrentTab returns the active tab (for testing).
func (a App) CurrentTab() Tab {
	return a.tab
}

// Cursor returns the current cursor position (for testing).
func (a App) Cursor() int {
	return a.cursor
}

// PasteKind returns the selected paste kind (for testing).
func (a App) PasteKind() parse.Kind {
	return a.pasteKind
}
