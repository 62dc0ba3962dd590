package domain

import (
	"regexp"
	"sort"
)

// Error priorities for build log findings.
const (
	PriorityBlocking   = 1
	PriorityBuildIssue = 2
	PriorityWarning    = 3
)

// PriorityName returns the report heading for a priority level.
func PriorityName(priority int) string {
	switch priority {
	case PriorityBlocking:
		return "BLOCKING ERRORS"
	case PriorityBuildIssue:
		return "BUILD ISSUES"
	default:
		return "WARNINGS"
	}
}

// ErrorPattern is one entry of the static NuGet/MSBuild error table.
type ErrorPattern struct {
	Code        string
	Pattern     *regexp.Regexp
	Description string
	Priority    int
}

// ErrorPatterns is the fixed table of error codes recognized in build logs.
// The set is domain knowledge from the packages.config migration, not
// runtime configuration. Patterns are case-insensitive and line-oriented;
// the first capture group, when present, is the affected package name.
var ErrorPatterns = []ErrorPattern{
	{
		Code:        "NU1103",
		Pattern:     regexp.MustCompile(`(?im)NU1103.*Unable to find package.*?'([^']+)'.*?version.*?'([^']+)'`),
		Description: "Unable to find package",
		Priority:    PriorityBlocking,
	},
	{
		Code:        "NU1605",
		Pattern:     regexp.MustCompile(`(?im)NU1605.*Detected package downgrade.*?'([^']+)'.*?from.*?'([^']+)'.*?to.*?'([^']+)'`),
		Description: "Detected package downgrade",
		Priority:    PriorityBlocking,
	},
	{
		Code:        "NU1202",
		Pattern:     regexp.MustCompile(`(?im)NU1202.*Package.*?'([^']+)'.*?version.*?'([^']+)'.*?is not compatible.*?'([^']+)'`),
		Description: "Package not compatible with framework",
		Priority:    PriorityBlocking,
	},
	{
		Code:        "NU1010",
		Pattern:     regexp.MustCompile(`(?im)NU1010.*Package reference.*?'([^']+)'.*?does not contain a version`),
		Description: "Package reference without version",
		Priority:    PriorityBlocking,
	},
	{
		Code:        "NU1008",
		Pattern:     regexp.MustCompile(`(?im)NU1008.*Package.*?'([^']+)'.*?version.*?'([^']+)'.*?has a known.*?vulnerability`),
		Description: "Package has known vulnerability",
		Priority:    PriorityWarning,
	},
	{
		Code:        "NU1506",
		Pattern:     regexp.MustCompile(`(?im)NU1506.*There are.*?duplicate.*?'([^']+)'.*?package version`),
		Description: "Duplicate package version",
		Priority:    PriorityWarning,
	},
	{
		Code:        "MSB4062",
		Pattern:     regexp.MustCompile(`(?im)MSB4062.*The.*?'([^']+)'.*?task.*?could not be loaded.*?duplicate.*?attribute`),
		Description: "Duplicate assembly attributes",
		Priority:    PriorityBuildIssue,
	},
}

// LogError is one matched occurrence of a known error code.
type LogError struct {
	Code          string   `json:"code"`
	Description   string   `json:"description"`
	Priority      int      `json:"priority"`
	MatchedGroups []string `json:"details"`
}

// PackageName returns the affected package for this error, taken from the
// first captured group, or "" when the pattern has no groups.
func (e LogError) PackageName() string {
	if len(e.MatchedGroups) == 0 {
		return ""
	}
	return e.MatchedGroups[0]
}

// LogAnalysis holds every match found in a single log file.
type LogAnalysis struct {
	File             string              `json:"file"`
	Errors           map[string][]LogError `json:"errors"`
	Summary          map[string]int      `json:"summary"`
	PackagesAffected []string            `json:"packages_affected"`
	TotalErrors      int                 `json:"total_errors"`
}

// MatchLog applies every pattern in the error table against the log text.
// Non-overlapping matches each yield one LogError.
func MatchLog(file, content string) *LogAnalysis {
	result := &LogAnalysis{
		File:    file,
		Errors:  make(map[string][]LogError),
		Summary: make(map[string]int),
	}
	seen := make(map[string]bool)

	for _, entry := range ErrorPatterns {
		matches := entry.Pattern.FindAllStringSubmatch(content, -1)
		for _, m := range matches {
			logErr := LogError{
				Code:          entry.Code,
				Description:   entry.Description,
				Priority:      entry.Priority,
				MatchedGroups: m[1:],
			}
			result.Errors[entry.Code] = append(result.Errors[entry.Code], logErr)
			result.Summary[entry.Code]++
			result.TotalErrors++
			if pkg := logErr.PackageName(); pkg != "" && !seen[pkg] {
				seen[pkg] = true
				result.PackagesAffected = append(result.PackagesAffected, pkg)
			}
		}
	}
	return result
}

// PackageTally ranks how often a package shows up across analyzed logs.
type PackageTally struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// LogSummary aggregates analyses of many log files.
type LogSummary struct {
	FilesAnalyzed int            `json:"files_analyzed"`
	TotalErrors   int            `json:"total_errors"`
	CodeCounts    map[string]int `json:"code_counts"`
	TopPackages   []PackageTally `json:"top_packages"`
}

// AggregateLogs sums per-code counts across files and ranks recurring
// packages by occurrence, breaking count ties by first-seen order.
func AggregateLogs(analyses []*LogAnalysis) *LogSummary {
	summary := &LogSummary{
		FilesAnalyzed: len(analyses),
		CodeCounts:    make(map[string]int),
	}
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	order := 0

	for _, a := range analyses {
		summary.TotalErrors += a.TotalErrors
		for code, n := range a.Summary {
			summary.CodeCounts[code] += n
		}
		for _, pkg := range a.PackagesAffected {
			if _, ok := firstSeen[pkg]; !ok {
				firstSeen[pkg] = order
				order++
			}
			counts[pkg]++
		}
	}

	for pkg, n := range counts {
		summary.TopPackages = append(summary.TopPackages, PackageTally{Name: pkg, Count: n})
	}
	sort.Slice(summary.TopPackages, func(i, j int) bool {
		a, b := summary.TopPackages[i], summary.TopPackages[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return firstSeen[a.Name] < firstSeen[b.Name]
	})
	return summary
}

// PatternFor looks up a table entry by code.
func PatternFor(code string) (ErrorPattern, bool) {
	for _, entry := range ErrorPatterns {
		if entry.Code == code {
			return entry, true
		}
	}
	return ErrorPattern{}, false
}
