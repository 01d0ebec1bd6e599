package sindex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silvistat/sindex/internal/errors"
)

func modelForKey(t *testing.T, r *Registry, key string) Model {
	t.Helper()
	cv, err := r.Curve(findCurve(t, r, key))
	require.NoError(t, err)
	m, err := newModel(cv)
	require.NoError(t, err)
	return m
}

func TestHeightMonotonicInAge(t *testing.T) {
	r := loadTestRegistry(t)

	for _, key := range []string{"at-chen", "ba-nigh", "ba-kurucz", "dr-nigh-courtin", "fd-bruce", "sb-ker-bowling", "sw-goudie"} {
		t.Run(key, func(t *testing.T) {
			m := modelForKey(t, r, key)

			prev := 0.0
			for age := 1.0; age <= 120; age += 1 {
				h, err := m.HeightAtAge(age, 20.0)
				require.NoError(t, err, "age %.0f", age)
				assert.GreaterOrEqual(t, h, prev, "height must not decrease at age %.0f", age)
				prev = h
			}
		})
	}
}

func TestHeightAtAgeEdges(t *testing.T) {
	r := loadTestRegistry(t)
	m := modelForKey(t, r, "sw-goudie")

	h, err := m.HeightAtAge(0, 20.0)
	require.NoError(t, err)
	assert.InDelta(t, BreastHeight, h, 1e-9, "zero breast-height age is breast height")

	_, err = m.HeightAtAge(-1, 20.0)
	assert.True(t, errors.IsKind(err, errors.KindNoAnswer))

	_, err = m.HeightAtAge(50, 1.3)
	assert.True(t, errors.IsKind(err, errors.KindSiteIndexTooSmall))
}

func TestSiteIndexRoundTripIterate(t *testing.T) {
	r := loadTestRegistry(t)

	for _, key := range []string{"ba-nigh", "ba-kurucz", "fd-bruce", "sw-goudie", "sb-ker-bowling"} {
		t.Run(key, func(t *testing.T) {
			m := modelForKey(t, r, key)

			for _, siteIndex := range []float64{8.0, 15.0, 24.0, 35.0} {
				h, err := m.HeightAtAge(50, siteIndex)
				require.NoError(t, err)

				recovered, err := m.SiteIndexFromHeightAge(h, 50, EstimateIterate)
				require.NoError(t, err, "site index %.1f", siteIndex)
				assert.InDelta(t, siteIndex, recovered, 0.01, "site index %.1f", siteIndex)
			}
		})
	}
}

func TestSiteIndexDirectMatchesIterate(t *testing.T) {
	r := loadTestRegistry(t)
	m := modelForKey(t, r, "sw-goudie")

	direct, err := m.SiteIndexFromHeightAge(14.0, 50, EstimateDirect)
	require.NoError(t, err)

	iterated, err := m.SiteIndexFromHeightAge(14.0, 50, EstimateIterate)
	require.NoError(t, err)

	assert.InDelta(t, direct, iterated, 0.01)
}

func TestPolymorphicFamilyHasNoDirectInverse(t *testing.T) {
	r := loadTestRegistry(t)
	m := modelForKey(t, r, "fd-bruce")

	_, err := m.SiteIndexFromHeightAge(20.0, 50, EstimateDirect)
	assert.True(t, errors.IsKind(err, errors.KindNoDirectInverse))

	_, err = m.SiteIndexFromHeightAge(20.0, 50, EstimateIterate)
	assert.NoError(t, err)
}

func TestSiteIndexTooSmallFromTinyHeights(t *testing.T) {
	r := loadTestRegistry(t)
	m := modelForKey(t, r, "ba-nigh")

	// A mature stand barely above breast height implies a site index at or
	// below breast height.
	_, err := m.SiteIndexFromHeightAge(1.301, 80, EstimateIterate)
	assert.True(t, errors.IsKind(err, errors.KindSiteIndexTooSmall))
}

func TestAgeFromHeightSiteIndex(t *testing.T) {
	r := loadTestRegistry(t)

	for _, key := range []string{"ba-nigh", "ba-kurucz", "sb-ker-bowling"} {
		t.Run(key, func(t *testing.T) {
			m := modelForKey(t, r, key)

			h, err := m.HeightAtAge(42, 20.0)
			require.NoError(t, err)

			age, err := m.AgeFromHeightSiteIndex(h, 20.0)
			require.NoError(t, err)
			assert.InDelta(t, 42.0, age, 0.05)
		})
	}
}

func TestAgeAboveAsymptote(t *testing.T) {
	r := loadTestRegistry(t)
	m := modelForKey(t, r, "ba-nigh")

	// No age produces 60 m on a poor site.
	_, err := m.AgeFromHeightSiteIndex(60.0, 8.0)
	assert.True(t, errors.IsKind(err, errors.KindNoAnswer))
}

func TestYearsToBreastHeight(t *testing.T) {
	r := loadTestRegistry(t)

	for idx := 0; idx < r.CurveCount(); idx++ {
		cv, err := r.Curve(idx)
		require.NoError(t, err)
		m, err := newModel(cv)
		require.NoError(t, err)

		t.Run(cv.Key, func(t *testing.T) {
			years, err := m.YearsToBreastHeight(20.0)
			require.NoError(t, err, "every curve defines a years-to-breast-height fit")
			assert.Positive(t, years)

			for _, siteIndex := range []float64{1.3, 1.0, 0.0, -5.0} {
				_, err := m.YearsToBreastHeight(siteIndex)
				assert.True(t, errors.IsKind(err, errors.KindSiteIndexTooSmall), "site index %.1f", siteIndex)
			}
		})
	}
}

func TestGrowthInterceptRange(t *testing.T) {
	r := loadTestRegistry(t)
	m := modelForKey(t, r, "fd-nigh-gi")

	// Inside the fitted range the fit inverts cleanly.
	siteIndex, err := m.SiteIndexFromHeightAge(6.0, 10, EstimateDirect)
	require.NoError(t, err)
	assert.Greater(t, siteIndex, BreastHeight)

	h, err := m.HeightAtAge(10, siteIndex)
	require.NoError(t, err)
	assert.InDelta(t, 6.0, h, 0.01)

	// Below the minimum fitted age.
	_, err = m.SiteIndexFromHeightAge(2.0, 0.25, EstimateDirect)
	assert.True(t, errors.IsKind(err, errors.KindNoAnswer))

	// Beyond the growth intercept range.
	_, err = m.SiteIndexFromHeightAge(20.0, 45, EstimateDirect)
	assert.True(t, errors.IsKind(err, errors.KindNoAnswer))
}
