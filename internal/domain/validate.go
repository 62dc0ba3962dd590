package domain

import "math"

// Validation statuses per category.
const (
	StatusPass    = "PASS"
	StatusWarn    = "WARN"
	StatusFail    = "FAIL"
	StatusSkip    = "SKIP"
	StatusUnknown = "UNKNOWN"
)

// Validation category names, in report order.
const (
	CategoryProps       = "directory_packages_props"
	CategoryProjects    = "project_files"
	CategoryConsistency = "package_consistency"
	CategoryBuild       = "build_validation"
)

// Overall bands.
const (
	BandExcellent = "EXCELLENT"
	BandGood      = "GOOD"
	BandNeedsWork = "NEEDS_WORK"
	BandPoor      = "POOR"
)

// categoryWeights is the fixed weighting of the four validation stages.
var categoryWeights = map[string]int{
	CategoryProps:       25,
	CategoryProjects:    30,
	CategoryConsistency: 25,
	CategoryBuild:       20,
}

// statusScores maps a category status to its score contribution.
var statusScores = map[string]int{
	StatusPass: 100,
	StatusWarn: 75,
	StatusFail: 0,
	StatusSkip: 0,
}

// CategoryResult is the outcome of one validation stage.
type CategoryResult struct {
	Name    string   `json:"name"`
	Status  string   `json:"status"`
	Details []string `json:"details"`
}

// ValidationReport aggregates the four stages into a weighted overall score.
type ValidationReport struct {
	Categories      []CategoryResult `json:"categories"`
	Score           float64          `json:"score"`
	Band            string           `json:"band"`
	Recommendations []string         `json:"recommendations"`
	CommitHash      string           `json:"commit_hash,omitempty"`
}

// Category returns the result for a named stage, or an UNKNOWN placeholder.
func (r *ValidationReport) Category(name string) CategoryResult {
	for _, c := range r.Categories {
		if c.Name == name {
			return c
		}
	}
	return CategoryResult{Name: name, Status: StatusUnknown}
}

// Passed reports whether the overall band gates as success for automation.
func (r *ValidationReport) Passed() bool {
	return r.Band == BandExcellent || r.Band == BandGood
}

// ComputeOverall fills Score, Band and Recommendations from the categories.
func (r *ValidationReport) ComputeOverall() {
	var totalScore, totalWeight int
	for _, c := range r.Categories {
		weight, ok := categoryWeights[c.Name]
		if !ok {
			continue
		}
		totalScore += statusScores[c.Status] * weight
		totalWeight += weight
	}
	if totalWeight > 0 {
		r.Score = math.Round(float64(totalScore)/float64(totalWeight)*10) / 10
	}
	r.Band = BandFor(r.Score)
	r.Recommendations = recommend(r)
}

// BandFor maps a weighted score to its band.
func BandFor(score float64) string {
	switch {
	case score >= 90:
		return BandExcellent
	case score >= 75:
		return BandGood
	case score >= 50:
		return BandNeedsWork
	default:
		return BandPoor
	}
}

func recommend(r *ValidationReport) []string {
	var recs []string
	if r.Category(CategoryProps).Status == StatusFail {
		recs = append(recs, "Fix Directory.Packages.props issues before proceeding")
	}
	if r.Category(CategoryProjects).Status == StatusFail {
		recs = append(recs,
			"Remove Version attributes from PackageReference elements",
			"Delete remaining packages.config files")
	}
	if r.Category(CategoryConsistency).Status == StatusFail {
		recs = append(recs, "Add missing PackageVersion entries to Directory.Packages.props")
	}
	if r.Category(CategoryBuild).Status == StatusFail {
		recs = append(recs, "Resolve build errors before completing migration")
	}
	switch {
	case r.Score >= 90:
		recs = append(recs,
			"Migration is complete and successful",
			"Consider cleanup of unused PackageVersion entries")
	case r.Score >= 75:
		recs = append(recs, "Migration is mostly complete - address remaining warnings")
	default:
		recs = append(recs, "Migration requires additional work - focus on failed validations")
	}
	return recs
}
