// Package tui renders run results for the terminal (lipgloss styling) and
// as plain text for report files.
package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cpmkit/cpmkit/internal/domain"
)

var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
	skipCol = lipgloss.Color("#4B5563") // dark gray
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	warnStyle     = lipgloss.NewStyle().Foreground(warning)
	skipStyle     = lipgloss.NewStyle().Foreground(skipCol)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// RenderExtraction renders the extract run for the terminal: totals,
// conflicts with their resolutions, and per-category counts.
func RenderExtraction(report *domain.ExtractionReport) string {
	var b strings.Builder

	title := headerStyle.Render("cpmkit")
	subtitle := dimStyle.Render("Package Version Extraction")
	totals := fmt.Sprintf("%d packages   %d conflicts",
		len(report.Packages), len(report.Conflicts))
	totalsStyle := passStyle
	if len(report.Conflicts) > 0 {
		totalsStyle = warnStyle
	}
	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + totalsStyle.Bold(true).Render(totals)))
	b.WriteString("\n\n")

	if len(report.Conflicts) > 0 {
		b.WriteString("  " + titleStyle.Render("Version Conflicts") + "\n\n")
		for _, conflict := range report.Conflicts {
			b.WriteString(fmt.Sprintf("    %s %s\n",
				warnStyle.Render("●"), conflict.Name))
			for _, version := range conflict.Versions {
				marker := "  "
				style := dimStyle
				if version == conflict.Resolution {
					marker = "→ "
					style = passStyle
				}
				b.WriteString(fmt.Sprintf("       %s%s %s\n",
					faintStyle.Render(marker), style.Render(version),
					faintStyle.Render(fmt.Sprintf("(seen in %d files)", len(report.Sources[conflict.Name])))))
			}
		}
		b.WriteString("\n")
		b.WriteString("  " + separatorLine + "\n\n")
	}

	b.WriteString("  " + titleStyle.Render("Packages by Category") + "\n\n")
	for _, line := range categoryCounts(report.Categories) {
		b.WriteString(fmt.Sprintf("    %s %s %s\n",
			dimStyle.Render("●"),
			padRight(line.label, 24),
			dimStyle.Render(fmt.Sprintf("%d", line.count))))
	}
	b.WriteString("\n")
	return b.String()
}

type categoryCount struct {
	label string
	count int
}

func categoryCounts(categories map[string]string) []categoryCount {
	counts := make(map[string]int)
	for _, label := range categories {
		counts[label]++
	}
	lines := make([]categoryCount, 0, len(counts))
	for label, count := range counts {
		lines = append(lines, categoryCount{label: label, count: count})
	}
	sort.Slice(lines, func(i, j int) bool {
		a, b := lines[i], lines[j]
		if (a.label == domain.CatchAllCategory) != (b.label == domain.CatchAllCategory) {
			return b.label == domain.CatchAllCategory
		}
		return a.label < b.label
	})
	return lines
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
