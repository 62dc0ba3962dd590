package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cpmkit/cpmkit/internal/domain"
)

// RenderLogSummary renders aggregated build log findings for the terminal:
// error counts grouped by priority and the most problematic packages.
func RenderLogSummary(summary *domain.LogSummary) string {
	var b strings.Builder

	title := headerStyle.Render("cpmkit")
	subtitle := dimStyle.Render("Build Log Analysis")
	totals := fmt.Sprintf("%d files   %d errors", summary.FilesAnalyzed, summary.TotalErrors)
	totalsStyle := passStyle
	if summary.TotalErrors > 0 {
		totalsStyle = failStyle
	}
	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + totalsStyle.Bold(true).Render(totals)))
	b.WriteString("\n\n")

	for _, priority := range []int{domain.PriorityBlocking, domain.PriorityBuildIssue, domain.PriorityWarning} {
		group := codesByPriority(summary, priority)
		if len(group) == 0 {
			continue
		}
		heading := domain.PriorityName(priority)
		style := failStyle
		switch priority {
		case domain.PriorityBuildIssue:
			style = warnStyle
		case domain.PriorityWarning:
			style = dimStyle
		}
		b.WriteString("  " + style.Bold(true).Render(heading) + "\n")
		for _, code := range group {
			entry, _ := domain.PatternFor(code)
			fmt.Fprintf(&b, "    %s %s %s\n",
				style.Render(padRight(code, 9)),
				dimStyle.Render(fmt.Sprintf("%3d", summary.CodeCounts[code])),
				faintStyle.Render(entry.Description))
		}
		b.WriteString("\n")
	}

	if len(summary.TopPackages) > 0 {
		b.WriteString("  " + separatorLine + "\n\n")
		b.WriteString("  " + titleStyle.Render("Most Problematic Packages") + "\n\n")
		top := summary.TopPackages
		if len(top) > 10 {
			top = top[:10]
		}
		for _, tally := range top {
			fmt.Fprintf(&b, "    %s %s %s\n",
				warnStyle.Render("●"),
				padRight(tally.Name, 40),
				dimStyle.Render(fmt.Sprintf("%d issue(s)", tally.Count)))
		}
	}
	b.WriteString("\n")
	return b.String()
}

// codesByPriority returns the error codes observed at a priority level,
// ordered by descending count.
func codesByPriority(summary *domain.LogSummary, priority int) []string {
	var codes []string
	for code := range summary.CodeCounts {
		if entry, ok := domain.PatternFor(code); ok && entry.Priority == priority {
			codes = append(codes, code)
		}
	}
	sort.Slice(codes, func(i, j int) bool {
		if summary.CodeCounts[codes[i]] != summary.CodeCounts[codes[j]] {
			return summary.CodeCounts[codes[i]] > summary.CodeCounts[codes[j]]
		}
		return codes[i] < codes[j]
	})
	return codes
}
