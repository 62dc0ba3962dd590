package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cpmkit/cpmkit/internal/domain"
)

var categoryTitles = map[string]string{
	domain.CategoryProps:       "Directory.Packages.props Validation",
	domain.CategoryProjects:    "Project Files Validation",
	domain.CategoryConsistency: "Package Consistency Validation",
	domain.CategoryBuild:       "Build Validation",
}

var bandColors = map[string]lipgloss.Color{
	domain.BandExcellent: success,
	domain.BandGood:      lipgloss.Color("#A3E635"), // lime
	domain.BandNeedsWork: warning,
	domain.BandPoor:      danger,
}

// RenderValidation renders the validation report for the terminal.
func RenderValidation(report *domain.ValidationReport) string {
	var b strings.Builder

	title := headerStyle.Render("cpmkit")
	subtitle := dimStyle.Render("CPM Migration Validation")
	bandStyled := lipgloss.NewStyle().
		Bold(true).
		Foreground(bandColor(report.Band)).
		Render(fmt.Sprintf("%s  %.1f%%", report.Band, report.Score))
	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + bandStyled))
	b.WriteString("\n\n")

	for _, category := range report.Categories {
		name := categoryTitles[category.Name]
		if name == "" {
			name = category.Name
		}
		fmt.Fprintf(&b, "  %s %s\n", statusTag(category.Status), titleStyle.Render(name))
		for _, detail := range category.Details {
			fmt.Fprintf(&b, "       %s\n", dimStyle.Render(detail))
		}
		b.WriteString("\n")
	}

	b.WriteString("  " + separatorLine + "\n\n")
	b.WriteString("  " + titleStyle.Render("Recommendations") + "\n\n")
	for _, rec := range report.Recommendations {
		fmt.Fprintf(&b, "    %s %s\n", dimStyle.Render("•"), rec)
	}

	if report.CommitHash != "" {
		hash := report.CommitHash
		if len(hash) > 7 {
			hash = hash[:7]
		}
		b.WriteString("\n  " + faintStyle.Render("commit "+hash) + "\n")
	}
	b.WriteString("\n")
	return b.String()
}

func statusTag(status string) string {
	switch status {
	case domain.StatusPass:
		return passStyle.Render("✓ PASS")
	case domain.StatusWarn:
		return warnStyle.Render("⚠ WARN")
	case domain.StatusFail:
		return failStyle.Render("✗ FAIL")
	case domain.StatusSkip:
		return skipStyle.Render("- SKIP")
	default:
		return skipStyle.Render("? UNKNOWN")
	}
}

func bandColor(band string) lipgloss.Color {
	if c, ok := bandColors[band]; ok {
		return c
	}
	return fg
}
