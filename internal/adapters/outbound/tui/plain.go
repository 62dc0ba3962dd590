package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cpmkit/cpmkit/internal/domain"
)

// Plain renderers produce the unstyled text written to report files.
// Section headers and alignment are fixed so reports diff cleanly run
// over run.

const headerRule = "============================================================"

// PlainExtraction renders the extraction report as plain text.
func PlainExtraction(report *domain.ExtractionReport) string {
	var b strings.Builder
	b.WriteString(headerRule + "\n")
	b.WriteString("PACKAGE VERSION EXTRACTION REPORT\n")
	b.WriteString(headerRule + "\n")
	fmt.Fprintf(&b, "Total unique packages found: %d\n", len(report.Packages))
	fmt.Fprintf(&b, "Packages with version conflicts: %d\n\n", len(report.Conflicts))

	if len(report.Conflicts) > 0 {
		b.WriteString("VERSION CONFLICTS DETECTED:\n")
		b.WriteString(strings.Repeat("-", 30) + "\n")
		for _, conflict := range report.Conflicts {
			fmt.Fprintf(&b, "%s:\n", conflict.Name)
			for _, version := range conflict.Versions {
				fmt.Fprintf(&b, "  %s (used in %d files)\n", version, len(report.Sources[conflict.Name]))
			}
			fmt.Fprintf(&b, "  RECOMMENDED: %s\n\n", conflict.Resolution)
		}
	}

	b.WriteString("PACKAGES BY CATEGORY:\n")
	b.WriteString(strings.Repeat("-", 20) + "\n")
	for _, line := range categoryCounts(report.Categories) {
		fmt.Fprintf(&b, "%s: %d packages\n", line.label, line.count)
	}
	return b.String()
}

// PlainValidation renders the validation report as plain text.
func PlainValidation(report *domain.ValidationReport) string {
	var b strings.Builder
	b.WriteString(headerRule + "\n")
	b.WriteString("CENTRAL PACKAGE MANAGEMENT MIGRATION VALIDATION REPORT\n")
	b.WriteString(headerRule + "\n")
	fmt.Fprintf(&b, "Overall Status: %s (%.1f%%)\n", report.Band, report.Score)
	if report.CommitHash != "" {
		fmt.Fprintf(&b, "Commit: %s\n", report.CommitHash)
	}
	b.WriteString("\n")

	for _, category := range report.Categories {
		name := categoryTitles[category.Name]
		if name == "" {
			name = category.Name
		}
		fmt.Fprintf(&b, "%s: %s\n", name, plainStatus(category.Status))
		for _, detail := range category.Details {
			fmt.Fprintf(&b, "  %s\n", detail)
		}
		b.WriteString("\n")
	}

	b.WriteString("RECOMMENDATIONS:\n")
	b.WriteString(strings.Repeat("-", 15) + "\n")
	for _, rec := range report.Recommendations {
		fmt.Fprintf(&b, "• %s\n", rec)
	}
	return b.String()
}

func plainStatus(status string) string {
	switch status {
	case domain.StatusPass:
		return "✓ PASS"
	case domain.StatusWarn:
		return "⚠ WARN"
	case domain.StatusFail:
		return "✗ FAIL"
	case domain.StatusSkip:
		return "- SKIP"
	default:
		return "? UNKNOWN"
	}
}

// PlainLogSummary renders aggregated log findings as plain text.
func PlainLogSummary(summary *domain.LogSummary) string {
	var b strings.Builder
	b.WriteString(headerRule + "\n")
	b.WriteString("CENTRAL PACKAGE MANAGEMENT MIGRATION - BUILD LOG ANALYSIS\n")
	b.WriteString(headerRule + "\n")
	fmt.Fprintf(&b, "Total files analyzed: %d\n", summary.FilesAnalyzed)
	fmt.Fprintf(&b, "Total errors found: %d\n\n", summary.TotalErrors)

	b.WriteString("ERROR SUMMARY BY PRIORITY:\n")
	b.WriteString(strings.Repeat("-", 30) + "\n")
	for _, priority := range []int{domain.PriorityBlocking, domain.PriorityBuildIssue, domain.PriorityWarning} {
		codes := codesByPriority(summary, priority)
		if len(codes) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n%s:\n", domain.PriorityName(priority))
		for _, code := range codes {
			entry, _ := domain.PatternFor(code)
			fmt.Fprintf(&b, "  %s: %3d - %s\n", code, summary.CodeCounts[code], entry.Description)
		}
	}

	if len(summary.TopPackages) > 0 {
		b.WriteString("\nMOST PROBLEMATIC PACKAGES:\n")
		b.WriteString(strings.Repeat("-", 30) + "\n")
		top := summary.TopPackages
		if len(top) > 10 {
			top = top[:10]
		}
		for _, tally := range top {
			fmt.Fprintf(&b, "  %s: %d issues\n", tally.Name, tally.Count)
		}
	}

	if recs := logRecommendations(summary); len(recs) > 0 {
		b.WriteString("\nRECOMMENDATIONS:\n")
		b.WriteString(strings.Repeat("-", 15) + "\n")
		for _, rec := range recs {
			fmt.Fprintf(&b, "• %s\n", rec)
		}
	}
	return b.String()
}

var logAdvice = map[string]string{
	"NU1103":  "NU1103 errors: Consider direct assembly references for problematic packages",
	"NU1605":  "NU1605 errors: Update package versions to resolve conflicts",
	"NU1202":  "NU1202 errors: Use framework-compatible package versions",
	"NU1010":  "NU1010 errors: Add missing PackageVersion entries to Directory.Packages.props",
	"MSB4062": "MSB4062 errors: Add <GenerateAssemblyInfo>false</GenerateAssemblyInfo> to projects",
	"NU1506":  "NU1506 warnings: Remove duplicate PackageVersion entries",
}

func logRecommendations(summary *domain.LogSummary) []string {
	var codes []string
	for code := range summary.CodeCounts {
		if _, ok := logAdvice[code]; ok && summary.CodeCounts[code] > 0 {
			codes = append(codes, code)
		}
	}
	sort.Strings(codes)
	recs := make([]string, 0, len(codes))
	for _, code := range codes {
		recs = append(recs, logAdvice[code])
	}
	return recs
}
