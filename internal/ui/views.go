package ui

import (
	"fmt"
	"strings"

	"github.com/taransingh1995/GCC-Pulse/internal/model"
)

// tabLabels in display order. Index matches the Tab constants.
var tabLabels = []string{"Ratings", "Deals", "Brief", "Paste", "Settings"}

// renderTabs renders the tab bar.
func renderTabs(active Tab, width int) string {
	var parts []string
	for i, label := range tabLabels {
		name := fmt.Sprintf("%d %s", i+1, label)
		if Tab(i) == active {
			parts = append(parts, ActiveTab.Render(name))
		} else {
			parts = append(parts, InactiveTab.Render(name))
		}
	}
	return fitWidth(strings.Join(parts, " "), width) + "\n"
}

// fitWidth truncates s to width runes. Styled strings are left alone when
// the terminal is wide enough, which is the common case.
func fitWidth(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width])
}

// rowMark returns the watchlist marker column for a row.
func rowMark(watched bool) string {
	if watched {
		return WatchlistMark.Render("*")
	}
	return " "
}

// renderRatings renders the ratings list. The selected row expands to show
// rationale bullets and the source.
func renderRatings(items []model.RatingItem, cursor int, wl model.Watchlist, width, height int) string {
	if len(items) == 0 {
		return HelpStyle.Render("No rating actions yet. Paste agency text in the Paste tab.")
	}

	var b strings.Builder
	for i, it := range items {
		line := fmt.Sprintf("%s%s %s  %s %s  %s",
			rowMark(Watchlisted(wl, it.Entity, it.Country)),
			KindBadge.Render(string(it.Agency)),
			it.Entity, it.Rating, it.Outlook, it.Action)
		if i == cursor {
			b.WriteString(SelectedItem.Render(fitWidth(line, width-2)) + "\n")
			for _, bullet := range it.RationaleBullets {
				b.WriteString(DetailText.Render(fitWidth("- "+bullet, width-6)) + "\n")
			}
			b.WriteString(DetailText.Render(fitWidth(sourceLine(it.Source, it.SourceURL, it.CreatedAtISO), width-6)) + "\n")
		} else {
			b.WriteString(NormalItem.Render(fitWidth(line, width-2)) + "\n")
		}
	}
	return clipHeight(b.String(), height)
}

// renderDeals renders the deal pipeline list.
func renderDeals(items []model.DealItem, cursor int, wl model.Watchlist, width, height int) string {
	if len(items) == 0 {
		return HelpStyle.Render("No deals tracked yet. Paste syndicate chatter in the Paste tab.")
	}

	var b strings.Builder
	for i, it := range items {
		line := fmt.Sprintf("%s%s%s %s  %s %s %s",
			rowMark(Watchlisted(wl, it.Issuer, it.Country, it.Banks)),
			KindBadge.Render(string(it.Type)),
			KindBadge.Render(string(it.Status)),
			it.Issuer, it.Currency, it.Size, it.Tenor)
		if i == cursor {
			b.WriteString(SelectedItem.Render(fitWidth(line, width-2)) + "\n")
			if it.Banks != "" {
				b.WriteString(DetailText.Render(fitWidth("Banks: "+it.Banks, width-6)) + "\n")
			}
			b.WriteString(DetailText.Render(fitWidth(fmt.Sprintf("Sector: %s  Country: %s", it.Sector, orDash(it.Country)), width-6)) + "\n")
			b.WriteString(DetailText.Render(fitWidth(sourceLine(it.Source, it.SourceURL, it.CreatedAtISO), width-6)) + "\n")
		} else {
			b.WriteString(NormalItem.Render(fitWidth(line, width-2)) + "\n")
		}
	}
	return clipHeight(b.String(), height)
}

// renderBrief renders the geo/markets brief list.
func renderBrief(items []model.BriefItem, cursor int, width, height int) string {
	if len(items) == 0 {
		return HelpStyle.Render("No brief items yet. Press 'r' to poll public sources.")
	}

	var b strings.Builder
	for i, it := range items {
		line := fmt.Sprintf("%s %s", KindBadge.Render(string(it.Bucket)), it.Headline)
		if i == cursor {
			b.WriteString(SelectedItem.Render(fitWidth(line, width-2)) + "\n")
			b.WriteString(DetailText.Render(fitWidth(it.Summary, width-6)) + "\n")
			b.WriteString(DetailText.Render(fitWidth("Angle: "+it.SyndicationAngle, width-6)) + "\n")
			b.WriteString(DetailText.Render(fitWidth(sourceLine(it.Source, it.SourceURL, it.CreatedAtISO), width-6)) + "\n")
		} else {
			b.WriteString(NormalItem.Render(fitWidth(line, width-2)) + "\n")
		}
	}
	return clipHeight(b.String(), height)
}

func sourceLine(source, url, createdAt string) string {
	parts := []string{}
	if source != "" {
		parts = append(parts, source)
	}
	if url != "" {
		parts = append(parts, url)
	}
	parts = append(parts, createdAt)
	return strings.Join(parts, "  ")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// clipHeight keeps at most height lines of the rendered block.
func clipHeight(s string, height int) string {
	if height <= 0 {
		return s
	}
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n") + "\n"
}

// renderSettings renders the settings pane. One row per setting; the row
// being edited shows the live input.
func renderSettings(settings model.Settings, cursor int, editing bool, input string, width int) string {
	rows := []struct {
		label string
		value int
	}{
		{"Refresh interval (minutes)", settings.RefreshMinutes},
		{"Retention window (days)", settings.MaxDaysToKeep},
	}

	var b strings.Builder
	b.WriteString(PaneTitle.Render("Settings") + "\n\n")
	for i, row := range rows {
		line := fmt.Sprintf("%s: %d", row.label, row.value)
		if i == cursor && editing {
			line = fmt.Sprintf("%s: %s", row.label, input)
		}
		if i == cursor {
			b.WriteString(SelectedItem.Render(fitWidth(line, width-2)) + "\n")
		} else {
			b.WriteString(NormalItem.Render(fitWidth(line, width-2)) + "\n")
		}
	}
	b.WriteString("\n" + HelpStyle.Render("enter: edit - interval changes take effect on next launch"))
	return b.String()
}

// renderStatusBar renders the bottom bar: key hints on the left, the last
// status message on the right.
func renderStatusBar(tab Tab, status string, refreshing bool, width int) string {
	hints := "q quit  tab switch  j/k move  / filter  r refresh  e export  P prune"
	if tab == TabPaste {
		hints = "q quit  tab switch  i edit  ctrl+k kind  ctrl+s parse"
	}
	if tab == TabSettings {
		hints = "q quit  tab switch  j/k move  enter edit"
	}

	text := StatusBarKey.Render(hints)
	if refreshing {
		status = "Refreshing sources..."
	}
	if status != "" {
		text += StatusBarText.Render("  |  " + status)
	}
	return StatusBar.Width(width).Render(text)
}
