package domain_test

import (
	"testing"

	"github.com/cpmkit/cpmkit/internal/domain"
	"github.com/stretchr/testify/assert"
)

func reportWith(props, projects, consistency, build string) *domain.ValidationReport {
	r := &domain.ValidationReport{
		Categories: []domain.CategoryResult{
			{Name: domain.CategoryProps, Status: props},
			{Name: domain.CategoryProjects, Status: projects},
			{Name: domain.CategoryConsistency, Status: consistency},
			{Name: domain.CategoryBuild, Status: build},
		},
	}
	r.ComputeOverall()
	return r
}

func TestComputeOverall_AllPass(t *testing.T) {
	r := reportWith(domain.StatusPass, domain.StatusPass, domain.StatusPass, domain.StatusPass)

	assert.Equal(t, 100.0, r.Score)
	assert.Equal(t, domain.BandExcellent, r.Band)
	assert.True(t, r.Passed())
}

func TestComputeOverall_AllFail(t *testing.T) {
	r := reportWith(domain.StatusFail, domain.StatusFail, domain.StatusFail, domain.StatusFail)

	assert.Equal(t, 0.0, r.Score)
	assert.Equal(t, domain.BandPoor, r.Band)
	assert.False(t, r.Passed())
}

func TestComputeOverall_WeightedMix(t *testing.T) {
	// PASS(25) + PASS(30) + PASS(25) + SKIP(20): 8000/100 = 80.0 -> GOOD.
	r := reportWith(domain.StatusPass, domain.StatusPass, domain.StatusPass, domain.StatusSkip)

	assert.Equal(t, 80.0, r.Score)
	assert.Equal(t, domain.BandGood, r.Band)
	assert.True(t, r.Passed())
}

func TestComputeOverall_WarnContribution(t *testing.T) {
	// WARN scores 75: (75*25 + 100*30 + 100*25 + 100*20)/100 = 93.75 -> 93.8.
	r := reportWith(domain.StatusWarn, domain.StatusPass, domain.StatusPass, domain.StatusPass)

	assert.Equal(t, 93.8, r.Score)
	assert.Equal(t, domain.BandExcellent, r.Band)
}

func TestBandFor_Boundaries(t *testing.T) {
	assert.Equal(t, domain.BandExcellent, domain.BandFor(90))
	assert.Equal(t, domain.BandGood, domain.BandFor(75))
	assert.Equal(t, domain.BandNeedsWork, domain.BandFor(50))
	assert.Equal(t, domain.BandPoor, domain.BandFor(49.9))
}

func TestRecommendations_FollowFailures(t *testing.T) {
	r := reportWith(domain.StatusPass, domain.StatusFail, domain.StatusPass, domain.StatusSkip)

	assert.Contains(t, r.Recommendations, "Remove Version attributes from PackageReference elements")
	assert.Contains(t, r.Recommendations, "Delete remaining packages.config files")
}

func TestCategory_UnknownPlaceholder(t *testing.T) {
	r := &domain.ValidationReport{}
	assert.Equal(t, domain.StatusUnknown, r.Category(domain.CategoryBuild).Status)
}
