package domain

import (
	"sort"
	"strconv"
	"strings"
)

// versionSegments splits a version string on '.' and '-' so that
// "2.0.0-beta" becomes ["2", "0", "0", "beta"].
func versionSegments(v string) []string {
	return strings.FieldsFunc(v, func(r rune) bool {
		return r == '.' || r == '-'
	})
}

// CompareVersions orders two version strings segment-wise: segments that
// parse fully as integers compare numerically, all others compare as plain
// strings. A numeric segment orders before a non-numeric one, and a shorter
// version orders before a longer one with the same prefix, so "1.2.0"
// precedes "1.2.0-beta". Returns -1, 0 or 1.
func CompareVersions(a, b string) int {
	as, bs := versionSegments(a), versionSegments(b)
	for i := 0; i < len(as) && i < len(bs); i++ {
		if c := compareSegment(as[i], bs[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(as) < len(bs):
		return -1
	case len(as) > len(bs):
		return 1
	default:
		return 0
	}
}

func compareSegment(a, b string) int {
	an, aok := parseNumeric(a)
	bn, bok := parseNumeric(b)
	switch {
	case aok && bok:
		switch {
		case an < bn:
			return -1
		case an > bn:
			return 1
		default:
			return 0
		}
	case aok:
		// Numeric segments order before non-numeric ones.
		return -1
	case bok:
		return 1
	default:
		return strings.Compare(a, b)
	}
}

func parseNumeric(s string) (int64, bool) {
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// MaxVersion returns the maximum version under CompareVersions.
// The input must be non-empty.
func MaxVersion(versions []string) string {
	maxV := versions[0]
	for _, v := range versions[1:] {
		if CompareVersions(v, maxV) > 0 {
			maxV = v
		}
	}
	return maxV
}

// SortVersions sorts versions in ascending segment-wise order.
func SortVersions(versions []string) {
	sort.Slice(versions, func(i, j int) bool {
		return CompareVersions(versions[i], versions[j]) < 0
	})
}

func sortConflicts(conflicts []ConflictRecord) {
	sort.Slice(conflicts, func(i, j int) bool {
		return conflicts[i].Name < conflicts[j].Name
	})
}
